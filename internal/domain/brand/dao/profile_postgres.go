package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pierrel/linkpulse/internal/domain/brand/entity"
)

// ProfilePostgres implements ProfileRepository for PostgreSQL
type ProfilePostgres struct {
	pool *pgxpool.Pool
}

// NewProfilePostgres creates a new PostgreSQL profile repository
func NewProfilePostgres(pool *pgxpool.Pool) *ProfilePostgres {
	return &ProfilePostgres{pool: pool}
}

// Create inserts a new brand profile
func (r *ProfilePostgres) Create(ctx context.Context, p *entity.Profile) error {
	charter, err := marshalCharter(p.Charter)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO brand_profiles (id, user_id, company_name, sector, targets, business_objectives,
		       tone, "values", forbidden_words, publishing_frequency, editorial_charter, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.CompanyName,
		p.Sector,
		p.Targets,
		p.BusinessObjectives,
		p.Tone,
		p.Values,
		p.ForbiddenWords,
		p.PublishingFrequency,
		charter,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting brand profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfilePostgres) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByUser retrieves the single profile owned by a user.
// Returns nil, nil when the user has none yet (onboarding not finished).
func (r *ProfilePostgres) GetByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	return r.getOne(ctx, `WHERE user_id = $1`, userID)
}

func (r *ProfilePostgres) getOne(ctx context.Context, where string, arg interface{}) (*entity.Profile, error) {
	query := `
		SELECT id, user_id, company_name, sector, targets, business_objectives,
		       tone, "values", forbidden_words, publishing_frequency, editorial_charter, created_at, updated_at
		FROM brand_profiles
	` + where

	row := r.pool.QueryRow(ctx, query, arg)

	var p entity.Profile
	var charter []byte

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.CompanyName,
		&p.Sector,
		&p.Targets,
		&p.BusinessObjectives,
		&p.Tone,
		&p.Values,
		&p.ForbiddenWords,
		&p.PublishingFrequency,
		&charter,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning brand profile: %w", err)
	}

	if len(charter) > 0 {
		var c entity.EditorialCharter
		if err := json.Unmarshal(charter, &c); err != nil {
			return nil, fmt.Errorf("decoding editorial charter: %w", err)
		}
		p.Charter = &c
	}

	return &p, nil
}

// Update updates an existing brand profile
func (r *ProfilePostgres) Update(ctx context.Context, p *entity.Profile) error {
	charter, err := marshalCharter(p.Charter)
	if err != nil {
		return err
	}

	query := `
		UPDATE brand_profiles
		SET company_name = $2, sector = $3, targets = $4, business_objectives = $5,
		    tone = $6, "values" = $7, forbidden_words = $8, publishing_frequency = $9,
		    editorial_charter = $10, updated_at = $11
		WHERE id = $1
	`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.CompanyName,
		p.Sector,
		p.Targets,
		p.BusinessObjectives,
		p.Tone,
		p.Values,
		p.ForbiddenWords,
		p.PublishingFrequency,
		charter,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating brand profile: %w", err)
	}

	return nil
}

func marshalCharter(c *entity.EditorialCharter) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding editorial charter: %w", err)
	}
	return data, nil
}
