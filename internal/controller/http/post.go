package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	calendarentity "github.com/pierrel/linkpulse/internal/domain/calendar/entity"
	calendarservice "github.com/pierrel/linkpulse/internal/domain/calendar/service"
	"github.com/pierrel/linkpulse/internal/domain/post/entity"
	"github.com/pierrel/linkpulse/internal/domain/post/service"
	"github.com/pierrel/linkpulse/internal/httpx/response"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/linkedin"
)

// PostService defines the interface for post draft operations
type PostService interface {
	CreatePost(ctx context.Context, in service.CreateInput) (*entity.Post, error)
	UpdatePost(ctx context.Context, in service.UpdateInput) (*entity.Post, error)
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context, in service.ListInput) (*service.ListOutput, error)
}

// PostPolicy defines the interface for post operations that reach LinkedIn
type PostPolicy interface {
	PublishNow(ctx context.Context, postID, accessToken string) (*entity.Post, error)
}

// PostScheduler queues a draft's content for deferred publishing
type PostScheduler interface {
	SchedulePost(ctx context.Context, in calendarservice.ScheduleInput) (*calendarentity.ScheduledPost, error)
}

// PostHandler handles HTTP requests for post drafts
type PostHandler struct {
	service   PostService
	policy    PostPolicy
	scheduler PostScheduler
}

// NewPostHandler creates a new post handler
func NewPostHandler(s PostService, p PostPolicy, sched PostScheduler) *PostHandler {
	return &PostHandler{service: s, policy: p, scheduler: sched}
}

// RegisterRoutes registers post routes
func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Route("/posts", func(r chi.Router) {
		r.Post("/", h.Create())
		r.Get("/", h.List())
		r.Get("/{id}", h.Get())
		r.Put("/{id}", h.Update())
		r.Delete("/{id}", h.Delete())
		r.Post("/{id}/publish", h.Publish())
		r.Post("/{id}/schedule", h.Schedule())
	})
}

// CreatePostRequest represents the request body for creating a draft
type CreatePostRequest struct {
	BrandProfileID   string   `json:"brand_profile_id"`
	Content          string   `json:"content"`
	Variants         []string `json:"variants"`
	Suggestions      []string `json:"suggestions"`
	ReadabilityScore int      `json:"readability_score"`
	Length           string   `json:"length"`
	Tone             string   `json:"tone"`
	Hashtags         []string `json:"hashtags"`
	Keywords         []string `json:"keywords"`
	ImageURL         string   `json:"image_url"`
}

// Create handles POST /posts
func (h *PostHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		var length entity.PostLength
		if req.Length != "" {
			l, err := entity.ParseLength(req.Length)
			if err != nil {
				response.BadRequest(w, err.Error())
				return
			}
			length = l
		}

		post, err := h.service.CreatePost(r.Context(), service.CreateInput{
			BrandProfileID:   req.BrandProfileID,
			Content:          req.Content,
			Variants:         req.Variants,
			Suggestions:      req.Suggestions,
			ReadabilityScore: req.ReadabilityScore,
			Length:           length,
			Tone:             req.Tone,
			Hashtags:         req.Hashtags,
			Keywords:         req.Keywords,
			ImageURL:         req.ImageURL,
		})
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.Created(w, post)
	}
}

// UpdatePostRequest represents the request body for updating a draft
type UpdatePostRequest struct {
	Content     *string  `json:"content,omitempty"`
	Variants    []string `json:"variants,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Hashtags    []string `json:"hashtags,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Status      *string  `json:"status,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// Update handles PUT /posts/{id}
func (h *PostHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		var status *entity.PostStatus
		if req.Status != nil {
			s, err := entity.ParseStatus(*req.Status)
			if err != nil {
				response.BadRequest(w, err.Error())
				return
			}
			status = &s
		}

		post, err := h.service.UpdatePost(r.Context(), service.UpdateInput{
			ID:          id,
			Content:     req.Content,
			Variants:    req.Variants,
			Suggestions: req.Suggestions,
			Hashtags:    req.Hashtags,
			Keywords:    req.Keywords,
			Status:      status,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.OK(w, post)
	}
}

// Get handles GET /posts/{id}
func (h *PostHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handlePostError(w, err)
			return
		}
		response.OK(w, post)
	}
}

// Delete handles DELETE /posts/{id}
func (h *PostHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
			handlePostError(w, err)
			return
		}
		response.NoContent(w)
	}
}

// ListPostsResponse represents the response for listing drafts
type ListPostsResponse struct {
	Posts []entity.Post `json:"posts"`
	Total int64         `json:"total"`
}

// List handles GET /posts
func (h *PostHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var status *entity.PostStatus
		if s := q.Get("status"); s != "" {
			ps, err := entity.ParseStatus(s)
			if err != nil {
				response.BadRequest(w, err.Error())
				return
			}
			status = &ps
		}

		limit := 50
		offset := 0
		if l := q.Get("limit"); l != "" {
			li, err := strconv.Atoi(l)
			if err != nil || li < 1 {
				response.BadRequest(w, "invalid limit")
				return
			}
			if li > 100 {
				li = 100
			}
			limit = li
		}
		if o := q.Get("offset"); o != "" {
			oi, err := strconv.Atoi(o)
			if err != nil || oi < 0 {
				response.BadRequest(w, "invalid offset")
				return
			}
			offset = oi
		}

		out, err := h.service.ListPosts(r.Context(), service.ListInput{
			BrandProfileID: q.Get("brand_profile_id"),
			Status:         status,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.OK(w, ListPostsResponse{Posts: out.Posts, Total: out.Total})
	}
}

// PublishPostRequest represents the request body for publishing a draft now
type PublishPostRequest struct {
	AccessToken string `json:"access_token"`
}

// Publish handles POST /posts/{id}/publish
func (h *PostHandler) Publish() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req PublishPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		post, err := h.policy.PublishNow(r.Context(), id, req.AccessToken)
		if err != nil {
			handlePostError(w, err)
			return
		}

		response.OK(w, post)
	}
}

// SchedulePostRequest represents the request body for queueing a draft
type SchedulePostRequest struct {
	ScheduledAt string `json:"scheduled_at"` // RFC3339 format
	AccessToken string `json:"access_token"`
}

// Schedule handles POST /posts/{id}/schedule: snapshots the draft's current
// content into a publish job for the worker
func (h *PostHandler) Schedule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req SchedulePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			response.BadRequest(w, "invalid scheduled_at format, use RFC3339")
			return
		}

		post, err := h.service.GetPost(r.Context(), id)
		if err != nil {
			handlePostError(w, err)
			return
		}
		if !post.IsEditable() {
			handlePostError(w, entity.ErrPostNotEditable)
			return
		}

		sp, err := h.scheduler.SchedulePost(r.Context(), calendarservice.ScheduleInput{
			BrandProfileID: post.BrandProfileID,
			PostID:         post.ID,
			Content:        post.Content,
			ImageURL:       post.ImageURL,
			ScheduledAt:    scheduledAt,
			AccessToken:    req.AccessToken,
		})
		if err != nil {
			handleCalendarError(w, err)
			return
		}

		response.Created(w, sp)
	}
}

func handlePostError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrPostNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrPostNotEditable:
		response.Error(w, http.StatusConflict, err.Error())
	case entity.ErrEmptyProfileID, entity.ErrEmptyContent, entity.ErrContentTooLong,
		entity.ErrInvalidLength, entity.ErrInvalidStatus, entity.ErrInvalidReadability,
		entity.ErrEmptyAccessToken:
		response.BadRequest(w, err.Error())
	case linkedin.ErrTokenExpired:
		response.Unauthorized(w, err.Error())
	case linkedin.ErrRateLimited:
		response.TooManyRequests(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
