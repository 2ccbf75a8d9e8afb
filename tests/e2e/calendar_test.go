package e2e

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

type CalendarItem struct {
	ID             string `json:"id"`
	BrandProfileID string `json:"brand_profile_id"`
	Date           string `json:"date"`
	Theme          string `json:"theme"`
	Type           string `json:"type"`
	Status         string `json:"status"`
}

type ScheduledPost struct {
	ID             string `json:"id"`
	BrandProfileID string `json:"brand_profile_id"`
	PostID         string `json:"post_id,omitempty"`
	Content        string `json:"content"`
	ScheduledAt    string `json:"scheduled_at"`
	Status         string `json:"status"`
}

type DayItem struct {
	IsScheduledPost bool           `json:"is_scheduled_post"`
	Item            *CalendarItem  `json:"calendar_item,omitempty"`
	ScheduledPost   *ScheduledPost `json:"scheduled_post,omitempty"`
}

type DayBucket struct {
	Date  string    `json:"date"`
	Items []DayItem `json:"items"`
}

type MonthResponse struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Days  []DayBucket `json:"days"`
}

func createTestItem(t *testing.T, profileID string, date time.Time) CalendarItem {
	t.Helper()

	resp := doJSON(t, http.MethodPost, "/calendar/items", map[string]interface{}{
		"brand_profile_id": profileID,
		"date":             date.Format(time.RFC3339),
		"theme":            "Retour de chantier #e2e",
		"type":             "storytelling",
		"objective":        "notoriété",
	})
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusCreated)

	var item CalendarItem
	decode(t, resp, &item)
	return item
}

func deleteTestItem(t *testing.T, id string) {
	t.Helper()

	resp := doJSON(t, http.MethodDelete, fmt.Sprintf("/calendar/items/%s", id), nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Logf("Warning: Failed to delete calendar item %s: status %d", id, resp.StatusCode)
	}
}

// TestCalendarItemCRUD tests /calendar/items
func TestCalendarItemCRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	profileID := ensureBrandProfile(t)

	t.Run("create and fetch", func(t *testing.T) {
		item := createTestItem(t, profileID, time.Now().AddDate(0, 1, 0))
		defer deleteTestItem(t, item.ID)

		if item.Status != "draft" {
			t.Errorf("Expected status 'draft', got '%s'", item.Status)
		}

		resp := doJSON(t, http.MethodGet, fmt.Sprintf("/calendar/items/%s", item.ID), nil)
		defer resp.Body.Close()
		expectStatus(t, resp, http.StatusOK)

		var fetched CalendarItem
		decode(t, resp, &fetched)
		if fetched.Theme != item.Theme {
			t.Errorf("Expected theme '%s', got '%s'", item.Theme, fetched.Theme)
		}

		t.Logf("Created calendar item: ID=%s", item.ID)
	})

	t.Run("bulk create", func(t *testing.T) {
		base := time.Now().AddDate(0, 1, 0)
		resp := doJSON(t, http.MethodPost, "/calendar/items/bulk", map[string]interface{}{
			"items": []map[string]interface{}{
				{"brand_profile_id": profileID, "date": base.Format(time.RFC3339), "theme": "Slot 1 #e2e", "type": "educational"},
				{"brand_profile_id": profileID, "date": base.AddDate(0, 0, 2).Format(time.RFC3339), "theme": "Slot 2 #e2e", "type": "promotional"},
			},
		})
		defer resp.Body.Close()
		expectStatus(t, resp, http.StatusCreated)

		var created struct {
			Items []CalendarItem `json:"items"`
		}
		decode(t, resp, &created)

		if len(created.Items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(created.Items))
		}
		for _, it := range created.Items {
			deleteTestItem(t, it.ID)
		}
	})

	t.Run("create without theme fails", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/calendar/items", map[string]interface{}{
			"brand_profile_id": profileID,
			"date":             time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
		})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})
}

// TestCalendarMonthView tests GET /calendar/months/{ym}
func TestCalendarMonthView(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	profileID := ensureBrandProfile(t)

	t.Run("item appears in its day bucket", func(t *testing.T) {
		date := time.Now().AddDate(0, 1, 0)
		item := createTestItem(t, profileID, date)
		defer deleteTestItem(t, item.ID)

		ym := date.Format("2006-01")
		resp := doJSON(t, http.MethodGet,
			fmt.Sprintf("/calendar/months/%s?brand_profile_id=%s", ym, profileID), nil)
		defer resp.Body.Close()
		expectStatus(t, resp, http.StatusOK)

		var month MonthResponse
		decode(t, resp, &month)

		if len(month.Days) < 28 {
			t.Fatalf("Expected a full month of buckets, got %d", len(month.Days))
		}

		found := false
		for _, day := range month.Days {
			for _, di := range day.Items {
				if di.Item != nil && di.Item.ID == item.ID {
					found = true
					if di.IsScheduledPost {
						t.Error("Calendar item must not carry the scheduled-post discriminant")
					}
				}
			}
		}
		if !found {
			t.Error("Expected calendar item in its month bucket")
		}

		t.Logf("Month view %s: %d day buckets", ym, len(month.Days))
	})

	t.Run("invalid month segment fails", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet,
			fmt.Sprintf("/calendar/months/2026-13?brand_profile_id=%s", profileID), nil)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})
}

// TestScheduledPostCancel tests POST /scheduled-posts and its cancel flow
func TestScheduledPostCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	profileID := ensureBrandProfile(t)

	t.Run("schedule then cancel is idempotent", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/scheduled-posts", map[string]interface{}{
			"brand_profile_id": profileID,
			"content":          "Publication planifiée #e2e",
			"scheduled_at":     time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
			"access_token":     "e2e-token",
		})
		defer resp.Body.Close()
		expectStatus(t, resp, http.StatusCreated)

		var sp ScheduledPost
		decode(t, resp, &sp)
		if sp.Status != "scheduled" {
			t.Fatalf("Expected status 'scheduled', got '%s'", sp.Status)
		}

		for i := 0; i < 2; i++ {
			cancelResp := doJSON(t, http.MethodPost, fmt.Sprintf("/scheduled-posts/%s/cancel", sp.ID), nil)
			expectStatus(t, cancelResp, http.StatusOK)

			var cancelled ScheduledPost
			decode(t, cancelResp, &cancelled)
			cancelResp.Body.Close()

			if cancelled.Status != "cancelled" {
				t.Errorf("Expected status 'cancelled' on call %d, got '%s'", i+1, cancelled.Status)
			}
		}

		t.Logf("Scheduled and cancelled post: ID=%s", sp.ID)
	})

	t.Run("schedule in the past fails", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/scheduled-posts", map[string]interface{}{
			"brand_profile_id": profileID,
			"content":          "Trop tard #e2e",
			"scheduled_at":     time.Now().Add(-time.Hour).Format(time.RFC3339),
			"access_token":     "e2e-token",
		})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("schedule without token fails", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/scheduled-posts", map[string]interface{}{
			"brand_profile_id": profileID,
			"content":          "Sans jeton #e2e",
			"scheduled_at":     time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
		})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})
}
