package policy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pierrel/linkpulse/internal/domain/post/dao"
	"github.com/pierrel/linkpulse/internal/domain/post/entity"
	"github.com/pierrel/linkpulse/internal/domain/post/service"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/linkedin"
)

// memRepo is a minimal in-memory PostRepository
type memRepo struct {
	posts map[string]entity.Post
}

func newMemRepo() *memRepo {
	return &memRepo{posts: make(map[string]entity.Post)}
}

func (m *memRepo) Create(_ context.Context, p *entity.Post) error {
	m.posts[p.ID] = *p
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memRepo) Update(_ context.Context, p *entity.Post) error {
	m.posts[p.ID] = *p
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	delete(m.posts, id)
	return nil
}

func (m *memRepo) List(_ context.Context, _ dao.PostFilter, _ dao.ListOptions) ([]entity.Post, error) {
	return nil, nil
}

func (m *memRepo) Count(_ context.Context, _ dao.PostFilter) (int64, error) {
	return 0, nil
}

func (m *memRepo) SetPublished(_ context.Context, id, linkedinPostID string, publishedAt time.Time) error {
	p := m.posts[id]
	p.Status = entity.PostStatusPublished
	p.LinkedInPostID = linkedinPostID
	p.PublishedAt = &publishedAt
	m.posts[id] = p
	return nil
}

type fakePublisher struct {
	out   *PublishOutput
	err   error
	calls int
	last  PublishInput
}

func (f *fakePublisher) Publish(_ context.Context, in PublishInput) (*PublishOutput, error) {
	f.calls++
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func newTestPolicy(pub *fakePublisher) (*Policy, *service.Service) {
	svc := service.New(newMemRepo())
	return New(svc, pub), svc
}

func createDraft(t *testing.T, svc *service.Service) *entity.Post {
	t.Helper()
	p, err := svc.CreatePost(context.Background(), service.CreateInput{
		BrandProfileID: "bp-1",
		Content:        "Trois leçons de notre dernier chantier.",
		ImageURL:       "https://cdn.example.com/chantier.png",
	})
	require.NoError(t, err)
	return p
}

func TestPublishNow(t *testing.T) {
	pub := &fakePublisher{out: &PublishOutput{LinkedInPostID: "urn:li:share:5"}}
	p, svc := newTestPolicy(pub)
	draft := createDraft(t, svc)

	got, err := p.PublishNow(context.Background(), draft.ID, "tok")
	require.NoError(t, err)

	assert.Equal(t, entity.PostStatusPublished, got.Status)
	assert.Equal(t, "urn:li:share:5", got.LinkedInPostID)
	assert.NotNil(t, got.PublishedAt)
	assert.Equal(t, draft.Content, pub.last.Text)
	assert.Equal(t, draft.ImageURL, pub.last.ImageURL)
}

func TestPublishNowRequiresToken(t *testing.T) {
	pub := &fakePublisher{}
	p, svc := newTestPolicy(pub)
	draft := createDraft(t, svc)

	_, err := p.PublishNow(context.Background(), draft.ID, "")
	assert.ErrorIs(t, err, entity.ErrEmptyAccessToken)
	assert.Zero(t, pub.calls)
}

func TestPublishNowRejectsAlreadyPublished(t *testing.T) {
	pub := &fakePublisher{out: &PublishOutput{LinkedInPostID: "urn:li:share:5"}}
	p, svc := newTestPolicy(pub)
	draft := createDraft(t, svc)

	_, err := p.PublishNow(context.Background(), draft.ID, "tok")
	require.NoError(t, err)

	_, err = p.PublishNow(context.Background(), draft.ID, "tok")
	assert.ErrorIs(t, err, entity.ErrPostNotEditable)
	assert.Equal(t, 1, pub.calls, "second publish never reaches LinkedIn")
}

func TestPublishNowTokenExpired(t *testing.T) {
	pub := &fakePublisher{err: linkedin.ErrTokenExpired}
	p, svc := newTestPolicy(pub)
	draft := createDraft(t, svc)

	_, err := p.PublishNow(context.Background(), draft.ID, "stale")
	assert.ErrorIs(t, err, linkedin.ErrTokenExpired)

	got, err := svc.GetPost(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PostStatusDraft, got.Status, "draft stays editable after a failed publish")
}

func TestPublishNowMissingPost(t *testing.T) {
	p, _ := newTestPolicy(&fakePublisher{})

	_, err := p.PublishNow(context.Background(), "nope", "tok")
	assert.ErrorIs(t, err, entity.ErrPostNotFound)
}
