package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
)

const (
	baseURL = "http://localhost:8080/api/v1"
	userID  = "e2e-user"
)

// doJSON sends a request with the identity header and an optional JSON body
func doJSON(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("X-User-ID", userID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		respBody, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d: %s", want, resp.StatusCode, string(respBody))
	}
}

// ensureBrandProfile creates or refreshes the test user's profile and
// returns its ID. Most endpoints need one.
func ensureBrandProfile(t *testing.T) string {
	t.Helper()

	resp := doJSON(t, http.MethodPut, "/brand-profile", map[string]interface{}{
		"company_name":         "Atelier Nord",
		"sector":               "architecture",
		"targets":              []string{"promoteurs", "collectivités"},
		"business_objectives":  []string{"notoriété"},
		"tone":                 "expert",
		"values":               []string{"sobriété"},
		"forbidden_words":      []string{"synergie"},
		"publishing_frequency": "3-per-week",
	})
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)

	var profile struct {
		ID string `json:"id"`
	}
	decode(t, resp, &profile)
	if profile.ID == "" {
		t.Fatal("Expected profile ID to be set")
	}
	return profile.ID
}

func deleteTestPost(t *testing.T, id string) {
	t.Helper()

	resp := doJSON(t, http.MethodDelete, fmt.Sprintf("/posts/%s", id), nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Logf("Warning: Failed to delete post %s: status %d", id, resp.StatusCode)
	}
}
