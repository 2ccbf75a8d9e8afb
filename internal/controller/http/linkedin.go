package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pierrel/linkpulse/internal/cache"
	"github.com/pierrel/linkpulse/internal/httpx/response"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/linkedin"
)

// LinkedInClient defines the interface for LinkedIn API operations
type LinkedInClient interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*linkedin.TokenOutput, error)
	GetProfile(ctx context.Context, accessToken string) (*linkedin.Profile, error)
	ListPosts(ctx context.Context, accessToken, authorURN string, count int) ([]linkedin.UGCPost, error)
	GetPostStats(ctx context.Context, accessToken, postID string) (*linkedin.PostStats, error)
}

// oauthStateTTL bounds how long an issued OAuth state stays valid
const oauthStateTTL = 10 * time.Minute

// LinkedInHandler handles HTTP requests for the LinkedIn connection
type LinkedInHandler struct {
	client LinkedInClient
	cache  *cache.Cache
}

// NewLinkedInHandler creates a new LinkedIn handler
func NewLinkedInHandler(client LinkedInClient, c *cache.Cache) *LinkedInHandler {
	return &LinkedInHandler{client: client, cache: c}
}

// RegisterRoutes registers LinkedIn routes
func (h *LinkedInHandler) RegisterRoutes(r chi.Router) {
	r.Route("/linkedin", func(r chi.Router) {
		r.Get("/auth-url", h.AuthURL())
		r.Post("/exchange", h.Exchange())
		r.Get("/profile", h.Profile())
		r.Get("/posts", h.Posts())
		r.Get("/posts/{id}/stats", h.PostStats())
	})
}

// AuthURLResponse represents the response for starting the OAuth flow
type AuthURLResponse struct {
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
}

// AuthURL handles GET /linkedin/auth-url. The issued state is held
// server-side and consumed exactly once at exchange.
func (h *LinkedInHandler) AuthURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := uuid.New().String()

		if err := h.cache.Set(r.Context(), stateKey(state), true, oauthStateTTL); err != nil {
			response.InternalError(w, "internal server error")
			return
		}

		response.OK(w, AuthURLResponse{
			AuthURL: h.client.AuthURL(state),
			State:   state,
		})
	}
}

func stateKey(state string) string {
	return "oauth:state:" + state
}

// ExchangeRequest represents the request body for the code exchange
type ExchangeRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// ExchangeResponse represents the response of a successful code exchange
type ExchangeResponse struct {
	AccessToken string            `json:"accessToken"`
	ExpiresIn   int               `json:"expiresIn"`
	Profile     *linkedin.Profile `json:"profile"`
}

// Exchange handles POST /linkedin/exchange
func (h *LinkedInHandler) Exchange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExchangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if req.Code == "" {
			response.BadRequest(w, "code is required")
			return
		}

		var known bool
		if err := h.cache.GetDel(r.Context(), stateKey(req.State), &known); err != nil {
			if errors.Is(err, cache.ErrMiss) {
				response.BadRequest(w, "invalid or expired state")
				return
			}
			response.InternalError(w, "internal server error")
			return
		}

		token, err := h.client.ExchangeCode(r.Context(), req.Code)
		if err != nil {
			handleLinkedInError(w, err)
			return
		}

		profile, err := h.client.GetProfile(r.Context(), token.AccessToken)
		if err != nil {
			handleLinkedInError(w, err)
			return
		}

		response.OK(w, ExchangeResponse{
			AccessToken: token.AccessToken,
			ExpiresIn:   token.ExpiresIn,
			Profile:     profile,
		})
	}
}

// accessToken extracts the member token from the Authorization header
func accessToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// Profile handles GET /linkedin/profile. Doubles as token verification: a
// revoked token comes back as 401 "Token expired".
func (h *LinkedInHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := accessToken(r)
		if token == "" {
			response.Unauthorized(w, "missing access token")
			return
		}

		profile, err := h.client.GetProfile(r.Context(), token)
		if err != nil {
			handleLinkedInError(w, err)
			return
		}

		response.OK(w, map[string]interface{}{"profile": profile})
	}
}

// Posts handles GET /linkedin/posts
func (h *LinkedInHandler) Posts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := accessToken(r)
		if token == "" {
			response.Unauthorized(w, "missing access token")
			return
		}

		count := 10
		if c := r.URL.Query().Get("count"); c != "" {
			ci, err := strconv.Atoi(c)
			if err != nil || ci < 1 {
				response.BadRequest(w, "invalid count")
				return
			}
			count = ci
		}

		profile, err := h.client.GetProfile(r.Context(), token)
		if err != nil {
			handleLinkedInError(w, err)
			return
		}

		posts, err := h.client.ListPosts(r.Context(), token, profile.URN(), count)
		if err != nil {
			handleLinkedInError(w, err)
			return
		}

		response.OK(w, map[string]interface{}{"posts": posts})
	}
}

// PostStats handles GET /linkedin/posts/{id}/stats
func (h *LinkedInHandler) PostStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := accessToken(r)
		if token == "" {
			response.Unauthorized(w, "missing access token")
			return
		}

		stats, err := h.client.GetPostStats(r.Context(), token, chi.URLParam(r, "id"))
		if err != nil {
			handleLinkedInError(w, err)
			return
		}

		response.OK(w, map[string]interface{}{"stats": stats})
	}
}

func handleLinkedInError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, linkedin.ErrTokenExpired):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, linkedin.ErrRateLimited):
		response.TooManyRequests(w, err.Error())
	default:
		var apiErr *linkedin.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			response.Error(w, apiErr.Status, apiErr.Message)
			return
		}
		response.InternalError(w, "internal server error")
	}
}
