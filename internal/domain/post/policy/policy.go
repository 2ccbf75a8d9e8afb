package policy

import (
	"context"

	"github.com/pierrel/linkpulse/internal/domain/post/entity"
	"github.com/pierrel/linkpulse/internal/domain/post/service"
)

// LinkedInPublisher defines the interface for LinkedIn publishing operations.
// Defined here (consumer) not in the upstream package (provider).
type LinkedInPublisher interface {
	Publish(ctx context.Context, in PublishInput) (*PublishOutput, error)
}

// PublishInput represents input for publishing
type PublishInput struct {
	AccessToken string
	Text        string
	ImageURL    string
}

// PublishOutput represents output from publishing
type PublishOutput struct {
	LinkedInPostID string
}

// Policy orchestrates post use-cases that cross the LinkedIn boundary
type Policy struct {
	svc *service.Service
	li  LinkedInPublisher
}

// New creates a new post policy
func New(svc *service.Service, li LinkedInPublisher) *Policy {
	return &Policy{svc: svc, li: li}
}

// PublishNow publishes a draft to LinkedIn immediately and flips it to
// published with the returned LinkedIn post id
func (p *Policy) PublishNow(ctx context.Context, postID, accessToken string) (*entity.Post, error) {
	post, err := p.svc.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status == entity.PostStatusPublished {
		return nil, entity.ErrPostNotEditable
	}
	if accessToken == "" {
		return nil, entity.ErrEmptyAccessToken
	}

	result, err := p.li.Publish(ctx, PublishInput{
		AccessToken: accessToken,
		Text:        post.Content,
		ImageURL:    post.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	if err := p.svc.MarkAsPublished(ctx, post.ID, result.LinkedInPostID); err != nil {
		return nil, err
	}

	return p.svc.GetPost(ctx, postID)
}
