package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pierrel/linkpulse/internal/domain/calendar/entity"
)

// ItemPostgres implements ItemRepository for PostgreSQL
type ItemPostgres struct {
	pool *pgxpool.Pool
}

// NewItemPostgres creates a new PostgreSQL calendar item repository
func NewItemPostgres(pool *pgxpool.Pool) *ItemPostgres {
	return &ItemPostgres{pool: pool}
}

const itemColumns = `id, brand_profile_id, date, theme, type, objective, status, post_id, created_at, updated_at`

// Create inserts a new calendar item
func (r *ItemPostgres) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO calendar_items (id, brand_profile_id, date, theme, type, objective, status, post_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.BrandProfileID,
		item.Date,
		item.Theme,
		item.Type,
		item.Objective,
		item.Status,
		nullable(item.PostID),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting calendar item: %w", err)
	}

	return nil
}

// CreateBatch inserts generated items in a single transaction so a failed
// generation never leaves a partial month behind.
func (r *ItemPostgres) CreateBatch(ctx context.Context, items []entity.Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO calendar_items (id, brand_profile_id, date, theme, type, objective, status, post_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for i := range items {
		item := &items[i]
		_, err := tx.Exec(ctx, query,
			item.ID,
			item.BrandProfileID,
			item.Date,
			item.Theme,
			item.Type,
			item.Objective,
			item.Status,
			nullable(item.PostID),
			item.CreatedAt,
			item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting calendar item batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing calendar item batch: %w", err)
	}

	return nil
}

// GetByID retrieves a calendar item by ID
func (r *ItemPostgres) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM calendar_items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning calendar item: %w", err)
	}

	return item, nil
}

// Update updates an existing calendar item
func (r *ItemPostgres) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE calendar_items
		SET date = $2, theme = $3, type = $4, objective = $5, status = $6, post_id = $7, updated_at = $8
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Date,
		item.Theme,
		item.Type,
		item.Objective,
		item.Status,
		nullable(item.PostID),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating calendar item: %w", err)
	}

	return nil
}

// Delete removes a calendar item
func (r *ItemPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM calendar_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting calendar item: %w", err)
	}
	return nil
}

// ListRange retrieves items for a profile with dates in [from, to)
func (r *ItemPostgres) ListRange(ctx context.Context, profileID string, from, to time.Time) ([]entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM calendar_items
		WHERE brand_profile_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC
	`

	rows, err := r.pool.Query(ctx, query, profileID, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying calendar items: %w", err)
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		items = append(items, *item)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*entity.Item, error) {
	var item entity.Item
	var postID *string

	err := row.Scan(
		&item.ID,
		&item.BrandProfileID,
		&item.Date,
		&item.Theme,
		&item.Type,
		&item.Objective,
		&item.Status,
		&postID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if postID != nil {
		item.PostID = *postID
	}

	return &item, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
