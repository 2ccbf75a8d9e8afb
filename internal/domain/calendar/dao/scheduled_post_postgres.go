package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pierrel/linkpulse/internal/domain/calendar/entity"
)

// ScheduledPostPostgres implements ScheduledPostRepository for PostgreSQL
type ScheduledPostPostgres struct {
	pool *pgxpool.Pool
}

// NewScheduledPostPostgres creates a new PostgreSQL scheduled post repository
func NewScheduledPostPostgres(pool *pgxpool.Pool) *ScheduledPostPostgres {
	return &ScheduledPostPostgres{pool: pool}
}

const scheduledPostColumns = `id, brand_profile_id, post_id, content, image_url, scheduled_at,
	       status, linkedin_post_id, error_message, access_token, published_at, created_at, updated_at`

// Create inserts a new scheduled post
func (r *ScheduledPostPostgres) Create(ctx context.Context, sp *entity.ScheduledPost) error {
	query := `
		INSERT INTO scheduled_posts (id, brand_profile_id, post_id, content, image_url, scheduled_at,
		       status, access_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		sp.ID,
		sp.BrandProfileID,
		nullable(sp.PostID),
		sp.Content,
		nullable(sp.ImageURL),
		sp.ScheduledAt,
		sp.Status,
		sp.AccessToken,
		sp.CreatedAt,
		sp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting scheduled post: %w", err)
	}

	return nil
}

// GetByID retrieves a scheduled post by ID
func (r *ScheduledPostPostgres) GetByID(ctx context.Context, id string) (*entity.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE id = $1`

	sp, err := scanScheduledPost(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning scheduled post: %w", err)
	}

	return sp, nil
}

// ListRange retrieves a profile's scheduled posts in [from, to)
func (r *ScheduledPostPostgres) ListRange(ctx context.Context, profileID string, from, to time.Time) ([]entity.ScheduledPost, error) {
	query := `
		SELECT ` + scheduledPostColumns + `
		FROM scheduled_posts
		WHERE brand_profile_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at ASC
	`

	return r.queryMany(ctx, query, profileID, from, to)
}

// List retrieves all of a profile's scheduled posts, soonest first
func (r *ScheduledPostPostgres) List(ctx context.Context, profileID string) ([]entity.ScheduledPost, error) {
	query := `
		SELECT ` + scheduledPostColumns + `
		FROM scheduled_posts
		WHERE brand_profile_id = $1
		ORDER BY scheduled_at ASC
	`

	return r.queryMany(ctx, query, profileID)
}

// GetDueForPublishing retrieves jobs due to fire
func (r *ScheduledPostPostgres) GetDueForPublishing(ctx context.Context, now time.Time) ([]entity.ScheduledPost, error) {
	query := `
		SELECT ` + scheduledPostColumns + `
		FROM scheduled_posts
		WHERE status = 'scheduled' AND scheduled_at <= $1
		ORDER BY scheduled_at ASC
	`

	return r.queryMany(ctx, query, now)
}

// UpdateStatus updates the status and error message
func (r *ScheduledPostPostgres) UpdateStatus(ctx context.Context, id string, status entity.ScheduledPostStatus, errorMsg string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $2, error_message = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, status, nullable(errorMsg), time.Now())
	if err != nil {
		return fmt.Errorf("updating scheduled post status: %w", err)
	}

	return nil
}

// SetPublished marks a scheduled post as published
func (r *ScheduledPostPostgres) SetPublished(ctx context.Context, id, linkedinPostID string, publishedAt time.Time) error {
	query := `
		UPDATE scheduled_posts
		SET status = 'published', linkedin_post_id = $2, published_at = $3, error_message = NULL, updated_at = $4
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, linkedinPostID, publishedAt, time.Now())
	if err != nil {
		return fmt.Errorf("setting scheduled post published: %w", err)
	}

	return nil
}

func (r *ScheduledPostPostgres) queryMany(ctx context.Context, query string, args ...interface{}) ([]entity.ScheduledPost, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scheduled posts: %w", err)
	}
	defer rows.Close()

	var posts []entity.ScheduledPost
	for rows.Next() {
		sp, err := scanScheduledPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		posts = append(posts, *sp)
	}

	return posts, nil
}

func scanScheduledPost(row rowScanner) (*entity.ScheduledPost, error) {
	var sp entity.ScheduledPost
	var postID, imageURL, linkedinPostID, errorMessage *string
	var publishedAt *time.Time

	err := row.Scan(
		&sp.ID,
		&sp.BrandProfileID,
		&postID,
		&sp.Content,
		&imageURL,
		&sp.ScheduledAt,
		&sp.Status,
		&linkedinPostID,
		&errorMessage,
		&sp.AccessToken,
		&publishedAt,
		&sp.CreatedAt,
		&sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if postID != nil {
		sp.PostID = *postID
	}
	if imageURL != nil {
		sp.ImageURL = *imageURL
	}
	if linkedinPostID != nil {
		sp.LinkedInPostID = *linkedinPostID
	}
	if errorMessage != nil {
		sp.ErrorMessage = *errorMessage
	}
	sp.PublishedAt = publishedAt

	return &sp, nil
}
