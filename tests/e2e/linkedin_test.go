package e2e

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// TestLinkedInOAuthStart tests GET /linkedin/auth-url
func TestLinkedInOAuthStart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	resp := doJSON(t, http.MethodGet, "/linkedin/auth-url", nil)
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)

	var out struct {
		AuthURL string `json:"authUrl"`
		State   string `json:"state"`
	}
	decode(t, resp, &out)

	if out.State == "" {
		t.Error("Expected a server-issued state")
	}
	if !strings.Contains(out.AuthURL, "state="+out.State) {
		t.Errorf("Expected auth URL to carry the state, got '%s'", out.AuthURL)
	}
	if !strings.Contains(out.AuthURL, "response_type=code") {
		t.Errorf("Expected an authorization code URL, got '%s'", out.AuthURL)
	}
}

// TestLinkedInExchangeValidation tests POST /linkedin/exchange rejection paths
func TestLinkedInExchangeValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	t.Run("forged state is rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/linkedin/exchange", map[string]string{
			"code":  "some-code",
			"state": uuid.New().String(),
		})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400 for unknown state, got %d", resp.StatusCode)
		}
	})

	t.Run("state cannot be replayed", func(t *testing.T) {
		startResp := doJSON(t, http.MethodGet, "/linkedin/auth-url", nil)
		var out struct {
			State string `json:"state"`
		}
		decode(t, startResp, &out)
		startResp.Body.Close()

		// A bogus code consumes the state but never yields a token, so the
		// connection stays down and the state cannot be reused.
		first := doJSON(t, http.MethodPost, "/linkedin/exchange", map[string]string{
			"code":  "bogus-code",
			"state": out.State,
		})
		first.Body.Close()
		if first.StatusCode == http.StatusOK {
			t.Fatal("Expected exchange with a bogus code to fail")
		}

		second := doJSON(t, http.MethodPost, "/linkedin/exchange", map[string]string{
			"code":  "bogus-code",
			"state": out.State,
		})
		defer second.Body.Close()

		if second.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400 for replayed state, got %d", second.StatusCode)
		}
	})

	t.Run("missing code is rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/linkedin/exchange", map[string]string{
			"state": uuid.New().String(),
		})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400 for missing code, got %d", resp.StatusCode)
		}
	})
}

// TestLinkedInProfileRequiresToken tests GET /linkedin/profile without a token
func TestLinkedInProfileRequiresToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	resp := doJSON(t, http.MethodGet, "/linkedin/profile", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without a token, got %d", resp.StatusCode)
	}
}
