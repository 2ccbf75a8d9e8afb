package entity

import "errors"

// Domain errors for brand profiles
var (
	ErrEmptyUserID      = errors.New("user ID is required")
	ErrEmptyCompanyName = errors.New("company name is required")
	ErrInvalidTone      = errors.New("invalid brand tone")
	ErrInvalidFrequency = errors.New("invalid publishing frequency")
	ErrProfileNotFound  = errors.New("brand profile not found")
)
