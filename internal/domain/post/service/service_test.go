package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pierrel/linkpulse/internal/domain/post/dao"
	"github.com/pierrel/linkpulse/internal/domain/post/entity"
)

type fakePostRepo struct {
	posts map[string]entity.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]entity.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	f.posts[p.ID] = *p
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePostRepo) Update(_ context.Context, p *entity.Post) error {
	f.posts[p.ID] = *p
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) List(_ context.Context, filter dao.PostFilter, opts dao.ListOptions) ([]entity.Post, error) {
	var out []entity.Post
	for _, p := range f.posts {
		if filter.BrandProfileID != "" && p.BrandProfileID != filter.BrandProfileID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePostRepo) Count(_ context.Context, filter dao.PostFilter) (int64, error) {
	posts, _ := f.List(context.Background(), filter, dao.ListOptions{})
	return int64(len(posts)), nil
}

func (f *fakePostRepo) SetPublished(_ context.Context, id, linkedinPostID string, publishedAt time.Time) error {
	p := f.posts[id]
	p.Status = entity.PostStatusPublished
	p.LinkedInPostID = linkedinPostID
	p.PublishedAt = &publishedAt
	f.posts[id] = p
	return nil
}

func createDraft(t *testing.T, svc *Service) *entity.Post {
	t.Helper()
	p, err := svc.CreatePost(context.Background(), CreateInput{
		BrandProfileID: "bp-1",
		Content:        "Trois leçons de notre dernier chantier bois massif.",
	})
	require.NoError(t, err)
	return p
}

func TestCreatePostDefaults(t *testing.T) {
	svc := New(newFakePostRepo())

	p := createDraft(t, svc)
	assert.Equal(t, entity.PostStatusDraft, p.Status)
	assert.Equal(t, entity.PostLengthMedium, p.Length)
	assert.NotEmpty(t, p.ID)
}

func TestCreatePostValidation(t *testing.T) {
	svc := New(newFakePostRepo())
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, CreateInput{Content: "texte"})
	assert.ErrorIs(t, err, entity.ErrEmptyProfileID)

	_, err = svc.CreatePost(ctx, CreateInput{BrandProfileID: "bp-1"})
	assert.ErrorIs(t, err, entity.ErrEmptyContent)

	_, err = svc.CreatePost(ctx, CreateInput{
		BrandProfileID: "bp-1",
		Content:        strings.Repeat("a", 3001),
	})
	assert.ErrorIs(t, err, entity.ErrContentTooLong)
}

func TestUpdatePostCannotSetPublishedStatus(t *testing.T) {
	svc := New(newFakePostRepo())
	p := createDraft(t, svc)

	published := entity.PostStatusPublished
	_, err := svc.UpdatePost(context.Background(), UpdateInput{
		ID:     p.ID,
		Status: &published,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)
}

func TestUpdatePublishedPostRejected(t *testing.T) {
	repo := newFakePostRepo()
	svc := New(repo)
	p := createDraft(t, svc)

	require.NoError(t, svc.MarkAsPublished(context.Background(), p.ID, "urn:li:share:1"))

	content := "nouvelle version"
	_, err := svc.UpdatePost(context.Background(), UpdateInput{
		ID:      p.ID,
		Content: &content,
	})
	assert.ErrorIs(t, err, entity.ErrPostNotEditable)
}

func TestUpdatePostPartialFields(t *testing.T) {
	svc := New(newFakePostRepo())
	p := createDraft(t, svc)

	ready := entity.PostStatusReady
	hashtags := []string{"#bois", "#construction"}
	updated, err := svc.UpdatePost(context.Background(), UpdateInput{
		ID:       p.ID,
		Status:   &ready,
		Hashtags: hashtags,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PostStatusReady, updated.Status)
	assert.Equal(t, hashtags, updated.Hashtags)
	assert.Equal(t, p.Content, updated.Content, "untouched fields keep their value")
}

func TestDeleteMissingPost(t *testing.T) {
	svc := New(newFakePostRepo())

	err := svc.DeletePost(context.Background(), "nope")
	assert.ErrorIs(t, err, entity.ErrPostNotFound)
}

func TestListPostsStatusFilter(t *testing.T) {
	repo := newFakePostRepo()
	svc := New(repo)
	ctx := context.Background()

	a := createDraft(t, svc)
	createDraft(t, svc)
	require.NoError(t, svc.MarkAsPublished(ctx, a.ID, "urn:li:share:1"))

	draft := entity.PostStatusDraft
	out, err := svc.ListPosts(ctx, ListInput{BrandProfileID: "bp-1", Status: &draft})
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Posts, 1)
	assert.Equal(t, entity.PostStatusDraft, out.Posts[0].Status)
}
