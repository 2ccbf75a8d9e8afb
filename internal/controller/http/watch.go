package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	brandentity "github.com/pierrel/linkpulse/internal/domain/brand/entity"
	"github.com/pierrel/linkpulse/internal/domain/watch/entity"
	"github.com/pierrel/linkpulse/internal/domain/watch/service"
	"github.com/pierrel/linkpulse/internal/httpx/response"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/claude"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/perplexity"
)

// WatchService defines the interface for watch feed operations
type WatchService interface {
	Search(ctx context.Context, profileID, query string, profile *brandentity.Profile) (*service.SearchOutput, error)
	Analyze(ctx context.Context, item *entity.Item, profile *brandentity.Profile) (*service.AnalyzeOutput, error)
	SaveItem(ctx context.Context, item *entity.Item) (*entity.Item, error)
	ListItems(ctx context.Context, profileID string, limit int) ([]entity.Item, error)
	DeleteItem(ctx context.Context, id string) error
	CreateTopic(ctx context.Context, profileID, query string) (*entity.Topic, error)
	ListTopics(ctx context.Context, profileID string) ([]entity.Topic, error)
	DeleteTopic(ctx context.Context, id string) error
	History(ctx context.Context, profileID string, limit int) ([]entity.HistoryEntry, error)
	SaveInspiration(ctx context.Context, insp *entity.SavedInspiration) (*entity.SavedInspiration, error)
	ListInspirations(ctx context.Context, profileID string) ([]entity.SavedInspiration, error)
	DeleteInspiration(ctx context.Context, id string) error
}

// WatchHandler handles HTTP requests for the watch feed
type WatchHandler struct {
	service  WatchService
	profiles ProfileResolver
}

// NewWatchHandler creates a new watch handler
func NewWatchHandler(s WatchService, p ProfileResolver) *WatchHandler {
	return &WatchHandler{service: s, profiles: p}
}

// RegisterRoutes registers watch routes
func (h *WatchHandler) RegisterRoutes(r chi.Router) {
	r.Route("/watch", func(r chi.Router) {
		r.Post("/search", h.Search())
		r.Post("/analyze", h.Analyze())
		r.Post("/items", h.SaveItem())
		r.Get("/items", h.ListItems())
		r.Delete("/items/{id}", h.DeleteItem())
		r.Post("/topics", h.CreateTopic())
		r.Get("/topics", h.ListTopics())
		r.Delete("/topics/{id}", h.DeleteTopic())
		r.Get("/history", h.History())
	})
	r.Route("/inspirations", func(r chi.Router) {
		r.Post("/", h.SaveInspiration())
		r.Get("/", h.ListInspirations())
		r.Delete("/{id}", h.DeleteInspiration())
	})
}

// SearchRequest represents the request body for running a watch query
type SearchRequest struct {
	BrandProfileID string `json:"brand_profile_id"`
	Query          string `json:"query"`
}

// Search handles POST /watch/search
func (h *WatchHandler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		// profile context sharpens the search but is not required
		profile, _ := h.profiles.GetByID(r.Context(), req.BrandProfileID)

		out, err := h.service.Search(r.Context(), req.BrandProfileID, req.Query, profile)
		if err != nil {
			handleWatchError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// AnalyzeRequest represents the request body for analyzing a watch item
type AnalyzeRequest struct {
	BrandProfileID string `json:"brand_profile_id"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	URL            string `json:"url,omitempty"`
}

// Analyze handles POST /watch/analyze
func (h *WatchHandler) Analyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		profile, _ := h.profiles.GetByID(r.Context(), req.BrandProfileID)

		out, err := h.service.Analyze(r.Context(), &entity.Item{
			BrandProfileID: req.BrandProfileID,
			Title:          req.Title,
			Summary:        req.Summary,
			URL:            req.URL,
		}, profile)
		if err != nil {
			handleWatchError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// SaveItemRequest represents the request body for saving a watch item
type SaveItemRequest struct {
	BrandProfileID string `json:"brand_profile_id"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	URL            string `json:"url,omitempty"`
	Source         string `json:"source,omitempty"`
	Category       string `json:"category,omitempty"`
	Relevance      string `json:"relevance,omitempty"`
}

// SaveItem handles POST /watch/items
func (h *WatchHandler) SaveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		item, err := h.service.SaveItem(r.Context(), &entity.Item{
			BrandProfileID: req.BrandProfileID,
			Title:          req.Title,
			Summary:        req.Summary,
			URL:            req.URL,
			Source:         req.Source,
			Category:       req.Category,
			Relevance:      req.Relevance,
		})
		if err != nil {
			handleWatchError(w, err)
			return
		}

		response.Created(w, item)
	}
}

// requireProfileID reads the brand_profile_id query parameter or writes a 400
func requireProfileID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("brand_profile_id")
	if id == "" {
		response.BadRequest(w, "brand_profile_id is required")
		return "", false
	}
	return id, true
}

// ListItems handles GET /watch/items?brand_profile_id=...
func (h *WatchHandler) ListItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, ok := requireProfileID(w, r)
		if !ok {
			return
		}

		limit := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			li, err := strconv.Atoi(l)
			if err != nil || li < 1 {
				response.BadRequest(w, "invalid limit")
				return
			}
			limit = li
		}

		items, err := h.service.ListItems(r.Context(), profileID, limit)
		if err != nil {
			handleWatchError(w, err)
			return
		}

		response.OK(w, map[string]interface{}{"items": items})
	}
}

// DeleteItem handles DELETE /watch/items/{id}
func (h *WatchHandler) DeleteItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleWatchError(w, err)
			return
		}
		response.NoContent(w)
	}
}

// CreateTopicRequest represents the request body for saving a watch topic
type CreateTopicRequest struct {
	BrandProfileID string `json:"brand_profile_id"`
	Query          string `json:"query"`
}

// CreateTopic handles POST /watch/topics
func (h *WatchHandler) CreateTopic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTopicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		topic, err := h.service.CreateTopic(r.Context(), req.BrandProfileID, req.Query)
		if err != nil {
			handleWatchError(w, err)
			return
		}

		response.Created(w, topic)
	}
}

// ListTopics handles GET /watch/topics?brand_profile_id=...
func (h *WatchHandler) ListTopics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, ok := requireProfileID(w, r)
		if !ok {
			return
		}

		topics, err := h.service.ListTopics(r.Context(), profileID)
		if err != nil {
			handleWatchError(w, err)
			return
		}

		response.OK(w, map[string]interface{}{"topics": topics})
	}
}

// DeleteTopic handles DELETE /watch/topics/{id}
func (h *WatchHandler) DeleteTopic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.DeleteTopic(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleWatchError(w, err)
			return
		}
		response.NoContent(w)
	}
}

// History handles GET /watch/history?brand_profile_id=...
func (h *WatchHandler) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, ok := requireProfileID(w, r)
		if !ok {
			return
		}

		limit := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			li, err := strconv.Atoi(l)
			if err != nil || li < 1 {
				response.BadRequest(w, "invalid limit")
				return
			}
			limit = li
		}

		entries, err := h.service.History(r.Context(), profileID, limit)
		if err != nil {
			handleWatchError(w, err)
			return
		}

		response.OK(w, map[string]interface{}{"history": entries})
	}
}

// SaveInspirationRequest represents the request body for bookmarking an
// inspiration suggestion
type SaveInspirationRequest struct {
	BrandProfileID string `json:"brand_profile_id"`
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
}

// SaveInspiration handles POST /inspirations
func (h *WatchHandler) SaveInspiration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveInspirationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		insp, err := h.service.SaveInspiration(r.Context(), &entity.SavedInspiration{
			BrandProfileID: req.BrandProfileID,
			Kind:           entity.InspirationKind(req.Kind),
			Title:          req.Title,
			Description:    req.Description,
		})
		if err != nil {
			handleWatchError(w, err)
			return
		}

		response.Created(w, insp)
	}
}

// ListInspirations handles GET /inspirations?brand_profile_id=...
func (h *WatchHandler) ListInspirations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, ok := requireProfileID(w, r)
		if !ok {
			return
		}

		inspirations, err := h.service.ListInspirations(r.Context(), profileID)
		if err != nil {
			handleWatchError(w, err)
			return
		}

		response.OK(w, map[string]interface{}{"inspirations": inspirations})
	}
}

// DeleteInspiration handles DELETE /inspirations/{id}
func (h *WatchHandler) DeleteInspiration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.DeleteInspiration(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleWatchError(w, err)
			return
		}
		response.NoContent(w)
	}
}

func handleWatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrItemNotFound),
		errors.Is(err, entity.ErrTopicNotFound),
		errors.Is(err, entity.ErrInspirationNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, entity.ErrEmptyProfileID),
		errors.Is(err, entity.ErrEmptyTitle),
		errors.Is(err, entity.ErrEmptyQuery),
		errors.Is(err, entity.ErrInvalidInspirationKind):
		response.BadRequest(w, err.Error())
	case errors.Is(err, perplexity.ErrRateLimited), errors.Is(err, claude.ErrRateLimited):
		response.TooManyRequests(w, "rate limit exceeded, try again shortly")
	case errors.Is(err, perplexity.ErrCreditsExhausted), errors.Is(err, claude.ErrCreditsExhausted):
		response.PaymentRequired(w, "upstream credits exhausted")
	default:
		response.InternalError(w, "internal server error")
	}
}
