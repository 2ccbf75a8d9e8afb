package dao

import (
	"context"

	"github.com/pierrel/linkpulse/internal/domain/watch/entity"
)

// ItemRepository defines the interface for watch item data access
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, profileID string, limit int) ([]entity.Item, error)
	Delete(ctx context.Context, id string) error
}

// TopicRepository defines the interface for watch topic data access
type TopicRepository interface {
	Create(ctx context.Context, topic *entity.Topic) error
	List(ctx context.Context, profileID string) ([]entity.Topic, error)
	Delete(ctx context.Context, id string) error
}

// HistoryRepository defines the interface for watch history data access
type HistoryRepository interface {
	Create(ctx context.Context, e *entity.HistoryEntry) error
	List(ctx context.Context, profileID string, limit int) ([]entity.HistoryEntry, error)
}

// InspirationRepository defines the interface for saved inspiration data access
type InspirationRepository interface {
	Create(ctx context.Context, s *entity.SavedInspiration) error
	List(ctx context.Context, profileID string) ([]entity.SavedInspiration, error)
	Delete(ctx context.Context, id string) error
}
