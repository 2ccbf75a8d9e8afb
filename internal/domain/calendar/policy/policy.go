package policy

import (
	"context"
	"errors"
	"time"

	"github.com/pierrel/linkpulse/internal/domain/calendar/entity"
	"github.com/pierrel/linkpulse/internal/domain/calendar/service"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/linkedin"
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

// PostMarker lets the policy flip the originating draft to published when a
// scheduled job that references one fires.
type PostMarker interface {
	MarkAsPublished(ctx context.Context, id, linkedinPostID string) error
}

// Policy orchestrates calendar use-cases
type Policy struct {
	svc   *service.Service
	li    LinkedInPublisher
	posts PostMarker
}

// New creates a new calendar policy
func New(svc *service.Service, li LinkedInPublisher, posts PostMarker) *Policy {
	return &Policy{
		svc:   svc,
		li:    li,
		posts: posts,
	}
}

// SchedulePost queues a publish job for a future time
func (p *Policy) SchedulePost(ctx context.Context, in service.ScheduleInput) (*entity.ScheduledPost, error) {
	if in.ScheduledAt.Before(time.Now()) {
		return nil, entity.ErrScheduledTimeInPast
	}
	return p.svc.Schedule(ctx, in)
}

// CancelScheduledPost soft-cancels a queued job; repeat calls are no-ops
func (p *Policy) CancelScheduledPost(ctx context.Context, id string) (*entity.ScheduledPost, error) {
	return p.svc.Cancel(ctx, id)
}

// PublishScheduledPost fires one job: publish to LinkedIn, then record the
// outcome on the row. A token rejected by LinkedIn records "Token expired"
// so the member knows to reconnect; nothing is retried.
func (p *Policy) PublishScheduledPost(ctx context.Context, id string) (*entity.ScheduledPost, error) {
	sp, err := p.svc.GetScheduledPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if sp.Status != entity.ScheduledPostStatusScheduled {
		return sp, nil
	}

	result, err := p.li.Publish(ctx, PublishInput{
		AccessToken: sp.AccessToken,
		Text:        sp.Content,
		ImageURL:    sp.ImageURL,
	})
	if err != nil {
		msg := err.Error()
		if errors.Is(err, linkedin.ErrTokenExpired) {
			msg = "Token expired"
		}
		_ = p.svc.MarkAsFailed(ctx, id, msg)
		return nil, err
	}

	if err := p.svc.MarkAsPublished(ctx, id, result.LinkedInPostID); err != nil {
		return nil, err
	}

	if sp.PostID != "" && p.posts != nil {
		_ = p.posts.MarkAsPublished(ctx, sp.PostID, result.LinkedInPostID)
	}

	return p.svc.GetScheduledPost(ctx, id)
}

// BatchResult summarizes one worker pass over the due jobs
type BatchResult struct {
	Published int
	Failed    int
}

// ProcessDueScheduledPosts fires every job whose scheduled time has passed.
// Called by the worker loop; individual failures are recorded per row and do
// not stop the batch.
func (p *Policy) ProcessDueScheduledPosts(ctx context.Context) (BatchResult, error) {
	var res BatchResult

	due, err := p.svc.GetDueForPublishing(ctx)
	if err != nil {
		return res, err
	}

	for _, sp := range due {
		if _, err := p.PublishScheduledPost(ctx, sp.ID); err != nil {
			// Failure is already recorded on the row
			res.Failed++
			continue
		}
		res.Published++
	}

	return res, nil
}
