package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pierrel/linkpulse/internal/domain/assistant"
	brandentity "github.com/pierrel/linkpulse/internal/domain/brand/entity"
	watchentity "github.com/pierrel/linkpulse/internal/domain/watch/entity"
	"github.com/pierrel/linkpulse/internal/httpx/response"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/claude"
)

// AssistantService defines the interface for AI generation operations
type AssistantService interface {
	GeneratePost(ctx context.Context, in assistant.GeneratePostInput) (*assistant.GeneratePostOutput, error)
	GenerateCalendar(ctx context.Context, in assistant.GenerateCalendarInput) (*assistant.GenerateCalendarOutput, error)
	DailyInspiration(ctx context.Context, in assistant.DailyInspirationInput) (*assistant.DailyInspirationOutput, error)
	AssistPost(ctx context.Context, in assistant.AssistPostInput) (*assistant.AssistPostOutput, error)
}

// ProfileResolver loads the brand profile conditioning a generation request
type ProfileResolver interface {
	GetByID(ctx context.Context, id string) (*brandentity.Profile, error)
}

// AssistantHandler handles HTTP requests for AI generation
type AssistantHandler struct {
	service  AssistantService
	profiles ProfileResolver
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(s AssistantService, p ProfileResolver) *AssistantHandler {
	return &AssistantHandler{service: s, profiles: p}
}

// RegisterRoutes registers assistant routes
func (h *AssistantHandler) RegisterRoutes(r chi.Router) {
	r.Post("/generate/post", h.GeneratePost())
	r.Post("/generate/calendar", h.GenerateCalendar())
	r.Get("/inspiration/daily", h.DailyInspiration())
	r.Post("/assist/post", h.AssistPost())
}

// resolveProfile loads the profile or writes the error response
func (h *AssistantHandler) resolveProfile(w http.ResponseWriter, r *http.Request, id string) (*brandentity.Profile, bool) {
	if id == "" {
		response.BadRequest(w, "brand_profile_id is required")
		return nil, false
	}
	profile, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		handleBrandError(w, err)
		return nil, false
	}
	return profile, true
}

// GeneratePostRequest represents the request body for post generation
type GeneratePostRequest struct {
	BrandProfileID string `json:"brand_profile_id"`
	Topic          string `json:"topic"`
	Length         string `json:"length"`
	PostType       string `json:"post_type"`
	PostCategory   string `json:"post_category"`
	EmojiStyle     string `json:"emoji_style"`
	Registre       string `json:"registre"`
	Langue         string `json:"langue"`
	IncludeCTA     bool   `json:"include_cta"`
}

// GeneratePost handles POST /generate/post
func (h *AssistantHandler) GeneratePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GeneratePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		profile, ok := h.resolveProfile(w, r, req.BrandProfileID)
		if !ok {
			return
		}

		out, err := h.service.GeneratePost(r.Context(), assistant.GeneratePostInput{
			Topic:        req.Topic,
			Length:       req.Length,
			PostType:     req.PostType,
			PostCategory: req.PostCategory,
			EmojiStyle:   req.EmojiStyle,
			Registre:     req.Registre,
			Langue:       req.Langue,
			IncludeCTA:   req.IncludeCTA,
			BrandProfile: profile,
		})
		if err != nil {
			handleAssistantError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// GenerateCalendarRequest represents the request body for calendar generation
type GenerateCalendarRequest struct {
	BrandProfileID string `json:"brand_profile_id"`
	StartDate      string `json:"start_date"` // YYYY-MM-DD
	WeeksCount     int    `json:"weeks_count"`
	WatchItems     []struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	} `json:"watch_items,omitempty"`
}

// GenerateCalendar handles POST /generate/calendar. The generated slots are
// returned for review; the client persists the kept ones through the bulk
// calendar endpoint.
func (h *AssistantHandler) GenerateCalendar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateCalendarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		profile, ok := h.resolveProfile(w, r, req.BrandProfileID)
		if !ok {
			return
		}

		startDate := time.Now()
		if req.StartDate != "" {
			t, err := parseDate(req.StartDate, time.UTC)
			if err != nil {
				response.BadRequest(w, "invalid start_date format")
				return
			}
			startDate = t
		}

		watchItems := make([]watchentity.Item, len(req.WatchItems))
		for i, wi := range req.WatchItems {
			watchItems[i] = watchentity.Item{Title: wi.Title, Summary: wi.Summary}
		}

		out, err := h.service.GenerateCalendar(r.Context(), assistant.GenerateCalendarInput{
			StartDate:    startDate,
			WeeksCount:   req.WeeksCount,
			WatchItems:   watchItems,
			BrandProfile: profile,
		})
		if err != nil {
			handleAssistantError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// DailyInspiration handles GET /inspiration/daily?brand_profile_id=...
func (h *AssistantHandler) DailyInspiration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := h.resolveProfile(w, r, r.URL.Query().Get("brand_profile_id"))
		if !ok {
			return
		}

		out, err := h.service.DailyInspiration(r.Context(), assistant.DailyInspirationInput{
			BrandProfile: profile,
		})
		if err != nil {
			handleAssistantError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// AssistPostRequest represents the request body for post editing assistance
type AssistPostRequest struct {
	BrandProfileID string `json:"brand_profile_id,omitempty"`
	Content        string `json:"content"`
	Action         string `json:"action"`
}

// AssistPost handles POST /assist/post. The profile is optional here, the
// assistant works on any pasted content.
func (h *AssistantHandler) AssistPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AssistPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		var profile *brandentity.Profile
		if req.BrandProfileID != "" {
			p, err := h.profiles.GetByID(r.Context(), req.BrandProfileID)
			if err == nil {
				profile = p
			}
		}

		out, err := h.service.AssistPost(r.Context(), assistant.AssistPostInput{
			Content:      req.Content,
			Action:       req.Action,
			BrandProfile: profile,
		})
		if err != nil {
			handleAssistantError(w, err)
			return
		}

		response.OK(w, out)
	}
}

func handleAssistantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assistant.ErrTopicRequired),
		errors.Is(err, assistant.ErrContentRequired),
		errors.Is(err, assistant.ErrProfileRequired),
		errors.Is(err, assistant.ErrUnknownStructure):
		response.BadRequest(w, err.Error())
	case errors.Is(err, claude.ErrRateLimited):
		response.TooManyRequests(w, "rate limit exceeded, try again shortly")
	case errors.Is(err, claude.ErrCreditsExhausted):
		response.PaymentRequired(w, "upstream credits exhausted")
	default:
		response.InternalError(w, "internal server error")
	}
}
