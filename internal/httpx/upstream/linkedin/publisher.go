package linkedin

import (
	"context"
	"fmt"
)

// Publisher wraps the Client with the publish flow used by the scheduled-post
// worker: resolve the member URN from the stored token, then create the post.
type Publisher struct {
	client *Client
}

// NewPublisher creates a new publisher
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
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

// Publish verifies the token, resolves the author and creates the post.
// ErrTokenExpired propagates unchanged so callers can record the exact
// failure reason on the scheduled row.
func (p *Publisher) Publish(ctx context.Context, in PublishInput) (*PublishOutput, error) {
	profile, err := p.client.GetProfile(ctx, in.AccessToken)
	if err != nil {
		return nil, err
	}

	out, err := p.client.CreatePost(ctx, CreatePostInput{
		AccessToken: in.AccessToken,
		AuthorURN:   profile.URN(),
		Text:        in.Text,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	if out.ID == "" {
		return nil, fmt.Errorf("linkedin returned no post id")
	}

	return &PublishOutput{LinkedInPostID: out.ID}, nil
}
