package entity

import "errors"

// Domain errors for the watch feed
var (
	ErrEmptyProfileID         = errors.New("brand profile ID is required")
	ErrEmptyTitle             = errors.New("title is required")
	ErrEmptyQuery             = errors.New("query is required")
	ErrInvalidInspirationKind = errors.New("invalid inspiration kind")
	ErrItemNotFound           = errors.New("watch item not found")
	ErrTopicNotFound          = errors.New("watch topic not found")
	ErrInspirationNotFound    = errors.New("saved inspiration not found")
)
