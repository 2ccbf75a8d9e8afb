package entity

import (
	"time"
)

// PostStatus represents the lifecycle state of a draft
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusReady     PostStatus = "ready"
	PostStatusPublished PostStatus = "published"
)

// PostLength represents the requested body length band
type PostLength string

const (
	PostLengthShort  PostLength = "short"
	PostLengthMedium PostLength = "medium"
	PostLengthLong   PostLength = "long"
)

// Post is a generated or hand-written LinkedIn post draft.
// The readability score comes from the model, it is never computed locally.
type Post struct {
	ID               string     `json:"id"`
	BrandProfileID   string     `json:"brand_profile_id"`
	Content          string     `json:"content"`
	Variants         []string   `json:"variants"`
	Suggestions      []string   `json:"suggestions"`
	ReadabilityScore int        `json:"readability_score"`
	Length           PostLength `json:"length"`
	Tone             string     `json:"tone"`
	Hashtags         []string   `json:"hashtags"`
	Keywords         []string   `json:"keywords"`
	Status           PostStatus `json:"status"`
	ImageURL         string     `json:"image_url,omitempty"`
	LinkedInPostID   string     `json:"linkedin_post_id,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsEditable returns true while the post has not been published
func (p *Post) IsEditable() bool {
	return p.Status != PostStatusPublished
}

// Validate validates the post fields
func (p *Post) Validate() error {
	if p.BrandProfileID == "" {
		return ErrEmptyProfileID
	}
	if p.Content == "" {
		return ErrEmptyContent
	}
	// LinkedIn body limit
	if len([]rune(p.Content)) > 3000 {
		return ErrContentTooLong
	}
	if !isValidLength(p.Length) {
		return ErrInvalidLength
	}
	if p.ReadabilityScore < 0 || p.ReadabilityScore > 100 {
		return ErrInvalidReadability
	}
	return nil
}

func isValidLength(l PostLength) bool {
	switch l {
	case PostLengthShort, PostLengthMedium, PostLengthLong:
		return true
	default:
		return false
	}
}

// ParseStatus parses a post status string
func ParseStatus(s string) (PostStatus, error) {
	switch s {
	case "draft":
		return PostStatusDraft, nil
	case "ready":
		return PostStatusReady, nil
	case "published":
		return PostStatusPublished, nil
	default:
		return "", ErrInvalidStatus
	}
}

// ParseLength parses a post length string
func ParseLength(s string) (PostLength, error) {
	switch s {
	case "short":
		return PostLengthShort, nil
	case "medium":
		return PostLengthMedium, nil
	case "long":
		return PostLengthLong, nil
	default:
		return "", ErrInvalidLength
	}
}
