package assistant

import "errors"

var (
	ErrTopicRequired    = errors.New("topic is required")
	ErrContentRequired  = errors.New("content is required")
	ErrProfileRequired  = errors.New("brand profile is required")
	ErrUnknownStructure = errors.New("unknown post type or category")
)
