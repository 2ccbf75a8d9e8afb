package entity

import (
	"time"
)

// ItemType represents the editorial category of a planned slot
type ItemType string

const (
	ItemTypeEducational  ItemType = "educational"
	ItemTypeStorytelling ItemType = "storytelling"
	ItemTypePromotional  ItemType = "promotional"
	ItemTypeEngagement   ItemType = "engagement"
	ItemTypeNews         ItemType = "news"
)

// ItemStatus represents the state of a planned slot
type ItemStatus string

const (
	ItemStatusDraft     ItemStatus = "draft"
	ItemStatusScheduled ItemStatus = "scheduled"
	ItemStatusPublished ItemStatus = "published"
)

// Item is a planned content slot, independent of whether a post draft
// exists yet. PostID is an optional, unenforced link: an item and a
// scheduled post covering the same content stay two separate records.
type Item struct {
	ID             string     `json:"id"`
	BrandProfileID string     `json:"brand_profile_id"`
	Date           time.Time  `json:"date"`
	Theme          string     `json:"theme"`
	Type           ItemType   `json:"type"`
	Objective      string     `json:"objective"`
	Status         ItemStatus `json:"status"`
	PostID         string     `json:"post_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Validate validates the calendar item
func (i *Item) Validate() error {
	if i.BrandProfileID == "" {
		return ErrEmptyProfileID
	}
	if i.Theme == "" {
		return ErrEmptyTheme
	}
	if i.Date.IsZero() {
		return ErrEmptyDate
	}
	if !isValidItemType(i.Type) {
		return ErrInvalidItemType
	}
	if !isValidItemStatus(i.Status) {
		return ErrInvalidItemStatus
	}
	return nil
}

func isValidItemType(t ItemType) bool {
	switch t {
	case ItemTypeEducational, ItemTypeStorytelling, ItemTypePromotional, ItemTypeEngagement, ItemTypeNews:
		return true
	default:
		return false
	}
}

func isValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemStatusDraft, ItemStatusScheduled, ItemStatusPublished:
		return true
	default:
		return false
	}
}

// ParseItemType parses a calendar item type string
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "educational":
		return ItemTypeEducational, nil
	case "storytelling":
		return ItemTypeStorytelling, nil
	case "promotional":
		return ItemTypePromotional, nil
	case "engagement":
		return ItemTypeEngagement, nil
	case "news":
		return ItemTypeNews, nil
	default:
		return "", ErrInvalidItemType
	}
}

// ParseItemStatus parses a calendar item status string
func ParseItemStatus(s string) (ItemStatus, error) {
	switch s {
	case "draft":
		return ItemStatusDraft, nil
	case "scheduled":
		return ItemStatusScheduled, nil
	case "published":
		return ItemStatusPublished, nil
	default:
		return "", ErrInvalidItemStatus
	}
}
