package dao

import (
	"context"

	"github.com/pierrel/linkpulse/internal/domain/brand/entity"
)

// ProfileRepository defines the interface for brand profile data access
type ProfileRepository interface {
	// Create inserts a new profile
	Create(ctx context.Context, p *entity.Profile) error

	// GetByID retrieves a profile by its ID
	GetByID(ctx context.Context, id string) (*entity.Profile, error)

	// GetByUser retrieves the single profile for a user, nil when absent
	GetByUser(ctx context.Context, userID string) (*entity.Profile, error)

	// Update updates an existing profile
	Update(ctx context.Context, p *entity.Profile) error
}
