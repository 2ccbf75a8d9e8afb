package dao

import (
	"context"
	"time"

	"github.com/pierrel/linkpulse/internal/domain/calendar/entity"
)

// ItemRepository defines the interface for calendar item data access
type ItemRepository interface {
	// Create inserts a new calendar item
	Create(ctx context.Context, item *entity.Item) error

	// CreateBatch inserts a set of generated items in one transaction
	CreateBatch(ctx context.Context, items []entity.Item) error

	// GetByID retrieves an item by its ID, nil when absent
	GetByID(ctx context.Context, id string) (*entity.Item, error)

	// Update updates an existing item
	Update(ctx context.Context, item *entity.Item) error

	// Delete removes an item by ID
	Delete(ctx context.Context, id string) error

	// ListRange retrieves a profile's items with dates in [from, to)
	ListRange(ctx context.Context, profileID string, from, to time.Time) ([]entity.Item, error)
}

// ScheduledPostRepository defines the interface for publish-job data access
type ScheduledPostRepository interface {
	// Create inserts a new scheduled post
	Create(ctx context.Context, sp *entity.ScheduledPost) error

	// GetByID retrieves a scheduled post by its ID, nil when absent
	GetByID(ctx context.Context, id string) (*entity.ScheduledPost, error)

	// ListRange retrieves a profile's scheduled posts in [from, to)
	ListRange(ctx context.Context, profileID string, from, to time.Time) ([]entity.ScheduledPost, error)

	// List retrieves all of a profile's scheduled posts, soonest first
	List(ctx context.Context, profileID string) ([]entity.ScheduledPost, error)

	// GetDueForPublishing retrieves scheduled posts with scheduled_at <= now
	GetDueForPublishing(ctx context.Context, now time.Time) ([]entity.ScheduledPost, error)

	// UpdateStatus updates the status and error message
	UpdateStatus(ctx context.Context, id string, status entity.ScheduledPostStatus, errorMsg string) error

	// SetPublished marks a job published with its LinkedIn post ID
	SetPublished(ctx context.Context, id, linkedinPostID string, publishedAt time.Time) error
}
