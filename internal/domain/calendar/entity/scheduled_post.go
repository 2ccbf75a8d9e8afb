package entity

import (
	"time"
)

// ScheduledPostStatus represents the state of a LinkedIn publish job
type ScheduledPostStatus string

const (
	ScheduledPostStatusScheduled ScheduledPostStatus = "scheduled"
	ScheduledPostStatusPublished ScheduledPostStatus = "published"
	ScheduledPostStatusFailed    ScheduledPostStatus = "failed"
	ScheduledPostStatusCancelled ScheduledPostStatus = "cancelled"
)

// ScheduledPost is a queued LinkedIn publish job, distinct from a calendar
// Item. The access token is captured at scheduling time so the worker can
// publish without the member's session.
type ScheduledPost struct {
	ID             string              `json:"id"`
	BrandProfileID string              `json:"brand_profile_id"`
	PostID         string              `json:"post_id,omitempty"`
	Content        string              `json:"content"`
	ImageURL       string              `json:"image_url,omitempty"`
	ScheduledAt    time.Time           `json:"scheduled_at"`
	Status         ScheduledPostStatus `json:"status"`
	LinkedInPostID string              `json:"linkedin_post_id,omitempty"`
	ErrorMessage   string              `json:"error_message,omitempty"`
	AccessToken    string              `json:"-"`
	PublishedAt    *time.Time          `json:"published_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// IsCancellable returns true while the job has not fired
func (s *ScheduledPost) IsCancellable() bool {
	return s.Status == ScheduledPostStatusScheduled
}

// Validate validates the scheduled post
func (s *ScheduledPost) Validate() error {
	if s.BrandProfileID == "" {
		return ErrEmptyProfileID
	}
	if s.Content == "" {
		return ErrEmptyContent
	}
	if s.ScheduledAt.IsZero() {
		return ErrEmptyDate
	}
	if s.AccessToken == "" {
		return ErrEmptyAccessToken
	}
	if s.Status == ScheduledPostStatusScheduled && s.ScheduledAt.Before(time.Now()) {
		return ErrScheduledTimeInPast
	}
	return nil
}
