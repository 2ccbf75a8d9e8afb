package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pierrel/linkpulse/internal/domain/brand/entity"
	"github.com/pierrel/linkpulse/internal/domain/brand/service"
	"github.com/pierrel/linkpulse/internal/httpx/response"
)

// BrandService defines the interface for brand profile operations
// Interface is defined by consumer (handler), not provider (service)
type BrandService interface {
	Upsert(ctx context.Context, in service.UpsertInput) (*entity.Profile, error)
	GetByUser(ctx context.Context, userID string) (*entity.Profile, error)
}

// BrandHandler handles HTTP requests for the brand profile
type BrandHandler struct {
	service BrandService
}

// NewBrandHandler creates a new brand profile handler
func NewBrandHandler(s BrandService) *BrandHandler {
	return &BrandHandler{service: s}
}

// RegisterRoutes registers brand profile routes
func (h *BrandHandler) RegisterRoutes(r chi.Router) {
	r.Route("/brand-profile", func(r chi.Router) {
		r.Get("/", h.Get())
		r.Put("/", h.Upsert())
	})
}

// CharterRequest represents the editorial charter in requests
type CharterRequest struct {
	Audience     string   `json:"audience"`
	Positioning  string   `json:"positioning"`
	Tone         string   `json:"tone"`
	DoList       []string `json:"do_list"`
	DontList     []string `json:"dont_list"`
	KPIs         []string `json:"kpis"`
	WritingStyle string   `json:"writing_style"`
}

// UpsertBrandRequest represents the request body for saving the profile
type UpsertBrandRequest struct {
	CompanyName         string          `json:"company_name"`
	Sector              string          `json:"sector"`
	Targets             []string        `json:"targets"`
	BusinessObjectives  []string        `json:"business_objectives"`
	Tone                string          `json:"tone"`
	Values              []string        `json:"values"`
	ForbiddenWords      []string        `json:"forbidden_words"`
	PublishingFrequency string          `json:"publishing_frequency"`
	Charter             *CharterRequest `json:"editorial_charter,omitempty"`
}

// Upsert handles PUT /brand-profile
func (h *BrandHandler) Upsert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req UpsertBrandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		var charter *entity.EditorialCharter
		if req.Charter != nil {
			charter = &entity.EditorialCharter{
				Audience:     req.Charter.Audience,
				Positioning:  req.Charter.Positioning,
				Tone:         req.Charter.Tone,
				DoList:       req.Charter.DoList,
				DontList:     req.Charter.DontList,
				KPIs:         req.Charter.KPIs,
				WritingStyle: req.Charter.WritingStyle,
			}
		}

		profile, err := h.service.Upsert(r.Context(), service.UpsertInput{
			UserID:              uid,
			CompanyName:         req.CompanyName,
			Sector:              req.Sector,
			Targets:             req.Targets,
			BusinessObjectives:  req.BusinessObjectives,
			Tone:                entity.Tone(req.Tone),
			Values:              req.Values,
			ForbiddenWords:      req.ForbiddenWords,
			PublishingFrequency: entity.PublishingFrequency(req.PublishingFrequency),
			Charter:             charter,
		})
		if err != nil {
			handleBrandError(w, err)
			return
		}

		response.OK(w, profile)
	}
}

// Get handles GET /brand-profile
func (h *BrandHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUser(w, r)
		if !ok {
			return
		}

		profile, err := h.service.GetByUser(r.Context(), uid)
		if err != nil {
			handleBrandError(w, err)
			return
		}

		response.OK(w, profile)
	}
}

func handleBrandError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrProfileNotFound:
		response.NotFound(w, err.Error())
	case entity.ErrEmptyUserID, entity.ErrEmptyCompanyName,
		entity.ErrInvalidTone, entity.ErrInvalidFrequency:
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
