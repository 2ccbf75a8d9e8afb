package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pierrel/linkpulse/internal/httpx/response"
	"github.com/pierrel/linkpulse/internal/storage"
)

// MaxUploadSize is the maximum allowed upload size (10MB, image assets only)
const MaxUploadSize = 10 << 20

// ImageUploader defines the interface for storing post image assets
type ImageUploader interface {
	UploadImage(ctx context.Context, userID string, in ImageUploadInput) (*ImageUploadOutput, error)
}

// ImageUploadInput represents input for an image upload
type ImageUploadInput struct {
	Reader      io.Reader
	ContentType string
	Size        int64
	Filename    string
}

// ImageUploadOutput represents output from an image upload
type ImageUploadOutput struct {
	URL  string
	Key  string
	Size int64
}

// MediaHandler handles post image upload HTTP requests
type MediaHandler struct {
	uploader ImageUploader
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(uploader ImageUploader) *MediaHandler {
	return &MediaHandler{uploader: uploader}
}

// RegisterRoutes registers media routes
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Post("/media/upload", h.Upload())
}

// UploadResponse represents the response from the upload endpoint
type UploadResponse struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// Upload handles POST /media/upload
func (h *MediaHandler) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUser(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			response.BadRequest(w, "file too large or invalid multipart form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "missing file in request")
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")

		result, err := h.uploader.UploadImage(r.Context(), uid, ImageUploadInput{
			Reader:      file,
			ContentType: contentType,
			Size:        header.Size,
			Filename:    header.Filename,
		})
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedImageType) {
				response.BadRequest(w, fmt.Sprintf("unsupported image type: %s", contentType))
				return
			}
			slog.Error("image upload failed", "error", err)
			response.InternalError(w, "failed to upload file")
			return
		}

		response.Created(w, UploadResponse{
			URL:  result.URL,
			Key:  result.Key,
			Size: result.Size,
		})
	}
}
