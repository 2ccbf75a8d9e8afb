package entity

import (
	"time"
)

// Item is a news/trend entry surfaced by a search-augmented LLM call, raw
// material for post ideas
type Item struct {
	ID             string    `json:"id"`
	BrandProfileID string    `json:"brand_profile_id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	URL            string    `json:"url,omitempty"`
	Source         string    `json:"source,omitempty"`
	Category       string    `json:"category,omitempty"`
	Relevance      string    `json:"relevance,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validate validates the watch item
func (i *Item) Validate() error {
	if i.BrandProfileID == "" {
		return ErrEmptyProfileID
	}
	if i.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Topic is a saved recurring watch query
type Topic struct {
	ID             string    `json:"id"`
	BrandProfileID string    `json:"brand_profile_id"`
	Query          string    `json:"query"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryEntry is a rerun log row: the query and a snapshot of what it
// returned at the time
type HistoryEntry struct {
	ID             string    `json:"id"`
	BrandProfileID string    `json:"brand_profile_id"`
	Query          string    `json:"query"`
	Snapshot       []Item    `json:"snapshot"`
	Citations      []string  `json:"citations,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// InspirationKind discriminates saved daily-inspiration suggestions
type InspirationKind string

const (
	InspirationKindTheme   InspirationKind = "theme"
	InspirationKindAccount InspirationKind = "account"
	InspirationKindNews    InspirationKind = "news"
)

// SavedInspiration is a user bookmark of a suggestion surfaced by the
// daily-inspiration feed
type SavedInspiration struct {
	ID             string          `json:"id"`
	BrandProfileID string          `json:"brand_profile_id"`
	Kind           InspirationKind `json:"kind"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Validate validates the saved inspiration
func (s *SavedInspiration) Validate() error {
	if s.BrandProfileID == "" {
		return ErrEmptyProfileID
	}
	if s.Title == "" {
		return ErrEmptyTitle
	}
	switch s.Kind {
	case InspirationKindTheme, InspirationKindAccount, InspirationKindNews:
		return nil
	default:
		return ErrInvalidInspirationKind
	}
}
