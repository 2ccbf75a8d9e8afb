package e2e

import (
	"net/http"
	"testing"
)

type PrefillPayload struct {
	Topic      string `json:"topic,omitempty"`
	Content    string `json:"content,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
	SourceKind string `json:"source_kind,omitempty"`
}

// TestPrefillOneShot tests the PUT /prefill and GET /prefill handoff
func TestPrefillOneShot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	t.Run("claim empties the mailbox", func(t *testing.T) {
		putResp := doJSON(t, http.MethodPut, "/prefill", PrefillPayload{
			Topic:      "Le bois massif en ville",
			SourceURL:  "https://exemple.fr/bois",
			SourceKind: "watch_item",
		})
		putResp.Body.Close()
		expectStatus(t, putResp, http.StatusNoContent)

		claimResp := doJSON(t, http.MethodGet, "/prefill", nil)
		defer claimResp.Body.Close()
		expectStatus(t, claimResp, http.StatusOK)

		var payload PrefillPayload
		decode(t, claimResp, &payload)
		if payload.Topic != "Le bois massif en ville" {
			t.Errorf("Expected deposited topic, got '%s'", payload.Topic)
		}

		// Second read must find nothing
		secondResp := doJSON(t, http.MethodGet, "/prefill", nil)
		defer secondResp.Body.Close()

		if secondResp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404 after claim, got %d", secondResp.StatusCode)
		}
	})

	t.Run("second deposit overwrites the first", func(t *testing.T) {
		first := doJSON(t, http.MethodPut, "/prefill", PrefillPayload{Topic: "Premier sujet"})
		first.Body.Close()
		expectStatus(t, first, http.StatusNoContent)

		second := doJSON(t, http.MethodPut, "/prefill", PrefillPayload{Topic: "Second sujet"})
		second.Body.Close()
		expectStatus(t, second, http.StatusNoContent)

		claimResp := doJSON(t, http.MethodGet, "/prefill", nil)
		defer claimResp.Body.Close()
		expectStatus(t, claimResp, http.StatusOK)

		var payload PrefillPayload
		decode(t, claimResp, &payload)
		if payload.Topic != "Second sujet" {
			t.Errorf("Expected 'Second sujet', got '%s'", payload.Topic)
		}
	})

	t.Run("empty deposit fails", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, "/prefill", PrefillPayload{})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})
}
