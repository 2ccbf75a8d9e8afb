package dao

import (
	"context"
	"time"

	"github.com/pierrel/linkpulse/internal/domain/post/entity"
)

// PostFilter contains filters for listing posts
type PostFilter struct {
	BrandProfileID string
	Status         *entity.PostStatus
}

// ListOptions contains pagination and sorting options
type ListOptions struct {
	Limit  int
	Offset int
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create inserts a new post
	Create(ctx context.Context, p *entity.Post) error

	// GetByID retrieves a post by its ID, nil when absent
	GetByID(ctx context.Context, id string) (*entity.Post, error)

	// Update updates an existing post
	Update(ctx context.Context, p *entity.Post) error

	// Delete removes a post by ID
	Delete(ctx context.Context, id string) error

	// List retrieves posts with filtering and pagination, newest first
	List(ctx context.Context, filter PostFilter, opts ListOptions) ([]entity.Post, error)

	// Count returns the total number of posts matching the filter
	Count(ctx context.Context, filter PostFilter) (int64, error)

	// SetPublished marks a post published with its LinkedIn post ID
	SetPublished(ctx context.Context, id, linkedinPostID string, publishedAt time.Time) error
}
