package entity

import "errors"

// Domain errors for the calendar
var (
	// Validation errors
	ErrEmptyProfileID      = errors.New("brand profile ID is required")
	ErrEmptyTheme          = errors.New("calendar item theme is required")
	ErrEmptyDate           = errors.New("date is required")
	ErrEmptyContent        = errors.New("content is required")
	ErrEmptyAccessToken    = errors.New("linkedin access token is required")
	ErrInvalidItemType     = errors.New("invalid calendar item type")
	ErrInvalidItemStatus   = errors.New("invalid calendar item status")
	ErrScheduledTimeInPast = errors.New("scheduled time must be in the future")

	// Business logic errors
	ErrItemNotFound                = errors.New("calendar item not found")
	ErrScheduledPostNotFound       = errors.New("scheduled post not found")
	ErrScheduledPostNotCancellable = errors.New("published post cannot be cancelled")
)
