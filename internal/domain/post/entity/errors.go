package entity

import "errors"

// Domain errors for posts
var (
	// Validation errors
	ErrEmptyProfileID     = errors.New("brand profile ID is required")
	ErrEmptyContent       = errors.New("post content is required")
	ErrContentTooLong     = errors.New("post content exceeds maximum length of 3000 characters")
	ErrInvalidLength      = errors.New("invalid post length")
	ErrInvalidStatus      = errors.New("invalid post status")
	ErrInvalidReadability = errors.New("readability score must be between 0 and 100")
	ErrEmptyAccessToken   = errors.New("linkedin access token is required")

	// Business logic errors
	ErrPostNotFound    = errors.New("post not found")
	ErrPostNotEditable = errors.New("published post cannot be edited")
)
