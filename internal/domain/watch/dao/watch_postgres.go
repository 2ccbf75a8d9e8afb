package dao

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pierrel/linkpulse/internal/domain/watch/entity"
)

// ItemPostgres implements ItemRepository for PostgreSQL
type ItemPostgres struct {
	pool *pgxpool.Pool
}

// NewItemPostgres creates a new PostgreSQL watch item repository
func NewItemPostgres(pool *pgxpool.Pool) *ItemPostgres {
	return &ItemPostgres{pool: pool}
}

// Create inserts a new watch item
func (r *ItemPostgres) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO watch_items (id, brand_profile_id, title, summary, url, source, category, relevance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.BrandProfileID,
		item.Title,
		item.Summary,
		item.URL,
		item.Source,
		item.Category,
		item.Relevance,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting watch item: %w", err)
	}

	return nil
}

// GetByID retrieves a watch item by ID
func (r *ItemPostgres) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `
		SELECT id, brand_profile_id, title, summary, url, source, category, relevance, created_at
		FROM watch_items
		WHERE id = $1
	`

	var item entity.Item
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.BrandProfileID,
		&item.Title,
		&item.Summary,
		&item.URL,
		&item.Source,
		&item.Category,
		&item.Relevance,
		&item.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning watch item: %w", err)
	}

	return &item, nil
}

// List retrieves a profile's saved watch items, newest first
func (r *ItemPostgres) List(ctx context.Context, profileID string, limit int) ([]entity.Item, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, brand_profile_id, title, summary, url, source, category, relevance, created_at
		FROM watch_items
		WHERE brand_profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying watch items: %w", err)
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var item entity.Item
		err := rows.Scan(
			&item.ID,
			&item.BrandProfileID,
			&item.Title,
			&item.Summary,
			&item.URL,
			&item.Source,
			&item.Category,
			&item.Relevance,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// Delete removes a watch item
func (r *ItemPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM watch_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting watch item: %w", err)
	}
	return nil
}

// TopicPostgres implements TopicRepository for PostgreSQL
type TopicPostgres struct {
	pool *pgxpool.Pool
}

// NewTopicPostgres creates a new PostgreSQL watch topic repository
func NewTopicPostgres(pool *pgxpool.Pool) *TopicPostgres {
	return &TopicPostgres{pool: pool}
}

// Create inserts a new watch topic
func (r *TopicPostgres) Create(ctx context.Context, topic *entity.Topic) error {
	query := `
		INSERT INTO watch_topics (id, brand_profile_id, query, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, topic.ID, topic.BrandProfileID, topic.Query, topic.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting watch topic: %w", err)
	}

	return nil
}

// List retrieves a profile's watch topics
func (r *TopicPostgres) List(ctx context.Context, profileID string) ([]entity.Topic, error) {
	query := `
		SELECT id, brand_profile_id, query, created_at
		FROM watch_topics
		WHERE brand_profile_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("querying watch topics: %w", err)
	}
	defer rows.Close()

	var topics []entity.Topic
	for rows.Next() {
		var t entity.Topic
		if err := rows.Scan(&t.ID, &t.BrandProfileID, &t.Query, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		topics = append(topics, t)
	}

	return topics, nil
}

// Delete removes a watch topic
func (r *TopicPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM watch_topics WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting watch topic: %w", err)
	}
	return nil
}

// HistoryPostgres implements HistoryRepository for PostgreSQL
type HistoryPostgres struct {
	pool *pgxpool.Pool
}

// NewHistoryPostgres creates a new PostgreSQL watch history repository
func NewHistoryPostgres(pool *pgxpool.Pool) *HistoryPostgres {
	return &HistoryPostgres{pool: pool}
}

// Create appends a history entry with the result snapshot as jsonb
func (r *HistoryPostgres) Create(ctx context.Context, e *entity.HistoryEntry) error {
	snapshot, err := json.Marshal(e.Snapshot)
	if err != nil {
		return fmt.Errorf("encoding history snapshot: %w", err)
	}

	query := `
		INSERT INTO watch_history (id, brand_profile_id, query, snapshot, citations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.pool.Exec(ctx, query, e.ID, e.BrandProfileID, e.Query, snapshot, e.Citations, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting watch history: %w", err)
	}

	return nil
}

// List retrieves a profile's run history, newest first
func (r *HistoryPostgres) List(ctx context.Context, profileID string, limit int) ([]entity.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, brand_profile_id, query, snapshot, citations, created_at
		FROM watch_history
		WHERE brand_profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying watch history: %w", err)
	}
	defer rows.Close()

	var entries []entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		var snapshot []byte
		if err := rows.Scan(&e.ID, &e.BrandProfileID, &e.Query, &snapshot, &e.Citations, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if len(snapshot) > 0 {
			if err := json.Unmarshal(snapshot, &e.Snapshot); err != nil {
				return nil, fmt.Errorf("decoding history snapshot: %w", err)
			}
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// InspirationPostgres implements InspirationRepository for PostgreSQL
type InspirationPostgres struct {
	pool *pgxpool.Pool
}

// NewInspirationPostgres creates a new PostgreSQL saved inspiration repository
func NewInspirationPostgres(pool *pgxpool.Pool) *InspirationPostgres {
	return &InspirationPostgres{pool: pool}
}

// Create inserts a new saved inspiration
func (r *InspirationPostgres) Create(ctx context.Context, s *entity.SavedInspiration) error {
	query := `
		INSERT INTO saved_inspirations (id, brand_profile_id, kind, title, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, s.ID, s.BrandProfileID, s.Kind, s.Title, s.Description, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting saved inspiration: %w", err)
	}

	return nil
}

// List retrieves a profile's saved inspirations
func (r *InspirationPostgres) List(ctx context.Context, profileID string) ([]entity.SavedInspiration, error) {
	query := `
		SELECT id, brand_profile_id, kind, title, description, created_at
		FROM saved_inspirations
		WHERE brand_profile_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("querying saved inspirations: %w", err)
	}
	defer rows.Close()

	var saved []entity.SavedInspiration
	for rows.Next() {
		var s entity.SavedInspiration
		if err := rows.Scan(&s.ID, &s.BrandProfileID, &s.Kind, &s.Title, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		saved = append(saved, s)
	}

	return saved, nil
}

// Delete removes a saved inspiration
func (r *InspirationPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM saved_inspirations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting saved inspiration: %w", err)
	}
	return nil
}
