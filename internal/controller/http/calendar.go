package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pierrel/linkpulse/internal/domain/calendar/entity"
	"github.com/pierrel/linkpulse/internal/domain/calendar/service"
	"github.com/pierrel/linkpulse/internal/httpx/response"
)

// CalendarService defines the interface for calendar item and month-view
// operations
type CalendarService interface {
	CreateItem(ctx context.Context, in service.ItemInput) (*entity.Item, error)
	CreateItems(ctx context.Context, inputs []service.ItemInput) ([]entity.Item, error)
	UpdateItem(ctx context.Context, in service.UpdateItemInput) (*entity.Item, error)
	GetItem(ctx context.Context, id string) (*entity.Item, error)
	DeleteItem(ctx context.Context, id string) error
	MonthBuckets(ctx context.Context, profileID string, year int, month time.Month) ([]service.DayBucket, error)
	ListScheduledPosts(ctx context.Context, profileID string) ([]entity.ScheduledPost, error)
}

// CalendarPolicy defines the interface for scheduled-post use-cases
type CalendarPolicy interface {
	SchedulePost(ctx context.Context, in service.ScheduleInput) (*entity.ScheduledPost, error)
	CancelScheduledPost(ctx context.Context, id string) (*entity.ScheduledPost, error)
}

// CalendarHandler handles HTTP requests for the editorial calendar
type CalendarHandler struct {
	service CalendarService
	policy  CalendarPolicy
	loc     *time.Location
}

// NewCalendarHandler creates a new calendar handler. Bare dates in request
// bodies are read in loc, the same zone the month view buckets by.
func NewCalendarHandler(s CalendarService, p CalendarPolicy, loc *time.Location) *CalendarHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarHandler{service: s, policy: p, loc: loc}
}

// RegisterRoutes registers calendar routes
func (h *CalendarHandler) RegisterRoutes(r chi.Router) {
	r.Route("/calendar", func(r chi.Router) {
		r.Post("/items", h.CreateItem())
		r.Post("/items/bulk", h.CreateItems())
		r.Get("/items/{id}", h.GetItem())
		r.Put("/items/{id}", h.UpdateItem())
		r.Delete("/items/{id}", h.DeleteItem())
		r.Get("/months/{ym}", h.Month())
	})
	r.Route("/scheduled-posts", func(r chi.Router) {
		r.Post("/", h.Schedule())
		r.Get("/", h.ListScheduled())
		r.Post("/{id}/cancel", h.Cancel())
	})
}

// ItemRequest represents one calendar item in requests
type ItemRequest struct {
	BrandProfileID string `json:"brand_profile_id"`
	Date           string `json:"date"` // RFC3339 or YYYY-MM-DD
	Theme          string `json:"theme"`
	Type           string `json:"type"`
	Objective      string `json:"objective"`
	Status         string `json:"status"`
	PostID         string `json:"post_id,omitempty"`
}

func (req *ItemRequest) toInput(loc *time.Location) (service.ItemInput, error) {
	date, err := parseDate(req.Date, loc)
	if err != nil {
		return service.ItemInput{}, err
	}

	itemType, err := entity.ParseItemType(req.Type)
	if err != nil {
		return service.ItemInput{}, err
	}

	var status entity.ItemStatus
	if req.Status != "" {
		status, err = entity.ParseItemStatus(req.Status)
		if err != nil {
			return service.ItemInput{}, err
		}
	}

	return service.ItemInput{
		BrandProfileID: req.BrandProfileID,
		Date:           date,
		Theme:          req.Theme,
		Type:           itemType,
		Objective:      req.Objective,
		Status:         status,
		PostID:         req.PostID,
	}, nil
}

// parseDate accepts RFC3339 timestamps and bare calendar dates. A bare date
// means midnight in loc so it lands in the same local-day bucket the month
// view uses.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}

// CreateItem handles POST /calendar/items
func (h *CalendarHandler) CreateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		in, err := req.toInput(h.loc)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		item, err := h.service.CreateItem(r.Context(), in)
		if err != nil {
			handleCalendarError(w, err)
			return
		}

		response.Created(w, item)
	}
}

// BulkItemsRequest represents the request body for bulk-inserting generated
// items
type BulkItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

// CreateItems handles POST /calendar/items/bulk
func (h *CalendarHandler) CreateItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkItemsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if len(req.Items) == 0 {
			response.BadRequest(w, "at least one item is required")
			return
		}

		inputs := make([]service.ItemInput, len(req.Items))
		for i := range req.Items {
			in, err := req.Items[i].toInput(h.loc)
			if err != nil {
				response.BadRequest(w, err.Error())
				return
			}
			inputs[i] = in
		}

		items, err := h.service.CreateItems(r.Context(), inputs)
		if err != nil {
			handleCalendarError(w, err)
			return
		}

		response.Created(w, map[string]interface{}{"items": items})
	}
}

// UpdateItemRequest represents the request body for updating a calendar item
type UpdateItemRequest struct {
	Date      *string `json:"date,omitempty"`
	Theme     *string `json:"theme,omitempty"`
	Type      *string `json:"type,omitempty"`
	Objective *string `json:"objective,omitempty"`
	Status    *string `json:"status,omitempty"`
	PostID    *string `json:"post_id,omitempty"`
}

// UpdateItem handles PUT /calendar/items/{id}
func (h *CalendarHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		in := service.UpdateItemInput{
			ID:        id,
			Theme:     req.Theme,
			Objective: req.Objective,
			PostID:    req.PostID,
		}

		if req.Date != nil {
			date, err := parseDate(*req.Date, h.loc)
			if err != nil {
				response.BadRequest(w, "invalid date format")
				return
			}
			in.Date = &date
		}
		if req.Type != nil {
			t, err := entity.ParseItemType(*req.Type)
			if err != nil {
				response.BadRequest(w, err.Error())
				return
			}
			in.Type = &t
		}
		if req.Status != nil {
			s, err := entity.ParseItemStatus(*req.Status)
			if err != nil {
				response.BadRequest(w, err.Error())
				return
			}
			in.Status = &s
		}

		item, err := h.service.UpdateItem(r.Context(), in)
		if err != nil {
			handleCalendarError(w, err)
			return
		}

		response.OK(w, item)
	}
}

// GetItem handles GET /calendar/items/{id}
func (h *CalendarHandler) GetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := h.service.GetItem(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleCalendarError(w, err)
			return
		}
		response.OK(w, item)
	}
}

// DeleteItem handles DELETE /calendar/items/{id}
func (h *CalendarHandler) DeleteItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleCalendarError(w, err)
			return
		}
		response.NoContent(w)
	}
}

// MonthResponse represents the month view: one bucket per calendar day
type MonthResponse struct {
	Year  int                 `json:"year"`
	Month int                 `json:"month"`
	Days  []service.DayBucket `json:"days"`
}

// Month handles GET /calendar/months/{ym}?brand_profile_id=...
// {ym} is YYYY-MM.
func (h *CalendarHandler) Month() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID := r.URL.Query().Get("brand_profile_id")
		if profileID == "" {
			response.BadRequest(w, "brand_profile_id is required")
			return
		}

		parts := strings.SplitN(chi.URLParam(r, "ym"), "-", 2)
		if len(parts) != 2 {
			response.BadRequest(w, "invalid month, use YYYY-MM")
			return
		}
		year, err := strconv.Atoi(parts[0])
		if err != nil || year < 2000 || year > 2200 {
			response.BadRequest(w, "invalid year")
			return
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			response.BadRequest(w, "invalid month")
			return
		}

		days, err := h.service.MonthBuckets(r.Context(), profileID, year, time.Month(month))
		if err != nil {
			handleCalendarError(w, err)
			return
		}

		response.OK(w, MonthResponse{Year: year, Month: month, Days: days})
	}
}

// ScheduleRequest represents the request body for queueing a publish job
type ScheduleRequest struct {
	BrandProfileID string `json:"brand_profile_id"`
	PostID         string `json:"post_id,omitempty"`
	Content        string `json:"content"`
	ImageURL       string `json:"image_url,omitempty"`
	ScheduledAt    string `json:"scheduled_at"` // RFC3339 format
	AccessToken    string `json:"access_token"`
}

// Schedule handles POST /scheduled-posts
func (h *CalendarHandler) Schedule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			response.BadRequest(w, "invalid scheduled_at format, use RFC3339")
			return
		}

		sp, err := h.policy.SchedulePost(r.Context(), service.ScheduleInput{
			BrandProfileID: req.BrandProfileID,
			PostID:         req.PostID,
			Content:        req.Content,
			ImageURL:       req.ImageURL,
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

// ListScheduled handles GET /scheduled-posts?brand_profile_id=...
func (h *CalendarHandler) ListScheduled() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID := r.URL.Query().Get("brand_profile_id")
		if profileID == "" {
			response.BadRequest(w, "brand_profile_id is required")
			return
		}

		posts, err := h.service.ListScheduledPosts(r.Context(), profileID)
		if err != nil {
			handleCalendarError(w, err)
			return
		}

		response.OK(w, map[string]interface{}{"scheduled_posts": posts})
	}
}

// Cancel handles POST /scheduled-posts/{id}/cancel
func (h *CalendarHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sp, err := h.policy.CancelScheduledPost(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleCalendarError(w, err)
			return
		}
		response.OK(w, sp)
	}
}

func handleCalendarError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrItemNotFound, entity.ErrScheduledPostNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrScheduledPostNotCancellable:
		response.Error(w, http.StatusConflict, err.Error())
	case entity.ErrEmptyProfileID, entity.ErrEmptyTheme, entity.ErrEmptyDate,
		entity.ErrEmptyContent, entity.ErrEmptyAccessToken,
		entity.ErrInvalidItemType, entity.ErrInvalidItemStatus,
		entity.ErrScheduledTimeInPast:
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
