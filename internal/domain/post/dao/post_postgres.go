package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pierrel/linkpulse/internal/domain/post/entity"
)

const postColumns = `id, brand_profile_id, content, variants, suggestions, readability_score,
	       length, tone, hashtags, keywords, status, image_url, linkedin_post_id,
	       published_at, created_at, updated_at`

// PostPostgres implements PostRepository for PostgreSQL
type PostPostgres struct {
	pool *pgxpool.Pool
}

// NewPostPostgres creates a new PostgreSQL post repository
func NewPostPostgres(pool *pgxpool.Pool) *PostPostgres {
	return &PostPostgres{pool: pool}
}

// Create inserts a new post
func (r *PostPostgres) Create(ctx context.Context, p *entity.Post) error {
	query := `
		INSERT INTO posts (id, brand_profile_id, content, variants, suggestions, readability_score,
		       length, tone, hashtags, keywords, status, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.BrandProfileID,
		p.Content,
		p.Variants,
		p.Suggestions,
		p.ReadabilityScore,
		p.Length,
		p.Tone,
		p.Hashtags,
		p.Keywords,
		p.Status,
		nullable(p.ImageURL),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by ID
func (r *PostPostgres) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning post: %w", err)
	}

	return p, nil
}

// Update updates an existing post
func (r *PostPostgres) Update(ctx context.Context, p *entity.Post) error {
	query := `
		UPDATE posts
		SET content = $2, variants = $3, suggestions = $4, readability_score = $5,
		    length = $6, tone = $7, hashtags = $8, keywords = $9, status = $10,
		    image_url = $11, updated_at = $12
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Content,
		p.Variants,
		p.Suggestions,
		p.ReadabilityScore,
		p.Length,
		p.Tone,
		p.Hashtags,
		p.Keywords,
		p.Status,
		nullable(p.ImageURL),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}

	return nil
}

// Delete removes a post
func (r *PostPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// List retrieves posts with filtering, newest first
func (r *PostPostgres) List(ctx context.Context, filter PostFilter, opts ListOptions) ([]entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.BrandProfileID != "" {
		query += fmt.Sprintf(" AND brand_profile_id = $%d", argNum)
		args = append(args, filter.BrandProfileID)
		argNum++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, *filter.Status)
		argNum++
	}

	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, opts.Limit)
		argNum++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, opts.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	var posts []entity.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		posts = append(posts, *p)
	}

	return posts, nil
}

// Count returns the total count of posts matching the filter
func (r *PostPostgres) Count(ctx context.Context, filter PostFilter) (int64, error) {
	query := "SELECT COUNT(*) FROM posts WHERE 1=1"
	args := []interface{}{}
	argNum := 1

	if filter.BrandProfileID != "" {
		query += fmt.Sprintf(" AND brand_profile_id = $%d", argNum)
		args = append(args, filter.BrandProfileID)
		argNum++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, *filter.Status)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}

	return count, nil
}

// SetPublished marks a post as published
func (r *PostPostgres) SetPublished(ctx context.Context, id, linkedinPostID string, publishedAt time.Time) error {
	query := `
		UPDATE posts
		SET status = 'published', linkedin_post_id = $2, published_at = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, linkedinPostID, publishedAt, time.Now())
	if err != nil {
		return fmt.Errorf("setting published: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*entity.Post, error) {
	var p entity.Post
	var imageURL, linkedinPostID *string
	var publishedAt *time.Time

	err := row.Scan(
		&p.ID,
		&p.BrandProfileID,
		&p.Content,
		&p.Variants,
		&p.Suggestions,
		&p.ReadabilityScore,
		&p.Length,
		&p.Tone,
		&p.Hashtags,
		&p.Keywords,
		&p.Status,
		&imageURL,
		&linkedinPostID,
		&publishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL != nil {
		p.ImageURL = *imageURL
	}
	if linkedinPostID != nil {
		p.LinkedInPostID = *linkedinPostID
	}
	p.PublishedAt = publishedAt

	return &p, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
