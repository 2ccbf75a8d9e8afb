package http

import (
	"net/http"

	"github.com/pierrel/linkpulse/internal/httpx/response"
)

// userIDHeader carries the authenticated user identity set by the fronting
// auth layer. The service trusts it; authentication itself is out of scope
// here.
const userIDHeader = "X-User-ID"

// requireUser extracts the user identity from the request. When absent it
// writes a 401 and reports false.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid := r.Header.Get(userIDHeader)
	if uid == "" {
		response.Unauthorized(w, "missing user identity")
		return "", false
	}
	return uid, true
}
