package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pierrel/linkpulse/internal/domain/prefill"
	"github.com/pierrel/linkpulse/internal/httpx/response"
)

// PrefillService defines the interface for the one-shot editor handoff
type PrefillService interface {
	Put(ctx context.Context, userID string, p prefill.Payload) error
	Claim(ctx context.Context, userID string) (*prefill.Payload, error)
}

// PrefillHandler handles HTTP requests for the prefill mailbox
type PrefillHandler struct {
	service PrefillService
}

// NewPrefillHandler creates a new prefill handler
func NewPrefillHandler(s PrefillService) *PrefillHandler {
	return &PrefillHandler{service: s}
}

// RegisterRoutes registers prefill routes
func (h *PrefillHandler) RegisterRoutes(r chi.Router) {
	r.Route("/prefill", func(r chi.Router) {
		r.Put("/", h.Put())
		r.Get("/", h.Claim())
	})
}

// PrefillRequest represents the request body for depositing a prefill
type PrefillRequest struct {
	Topic      string `json:"topic,omitempty"`
	Content    string `json:"content,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
	SourceKind string `json:"source_kind,omitempty"`
}

// Put handles PUT /prefill. A second deposit before the first is claimed
// overwrites it.
func (h *PrefillHandler) Put() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req PrefillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		if req.Topic == "" && req.Content == "" {
			response.BadRequest(w, "topic or content is required")
			return
		}

		if err := h.service.Put(r.Context(), uid, prefill.Payload{
			Topic:      req.Topic,
			Content:    req.Content,
			SourceURL:  req.SourceURL,
			SourceKind: req.SourceKind,
		}); err != nil {
			response.InternalError(w, "internal server error")
			return
		}

		response.NoContent(w)
	}
}

// Claim handles GET /prefill: returns the waiting payload and clears it, so
// the next read sees 404
func (h *PrefillHandler) Claim() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUser(w, r)
		if !ok {
			return
		}

		payload, err := h.service.Claim(r.Context(), uid)
		if err != nil {
			if errors.Is(err, prefill.ErrEmpty) {
				response.NotFound(w, err.Error())
				return
			}
			response.InternalError(w, "internal server error")
			return
		}

		response.OK(w, payload)
	}
}
