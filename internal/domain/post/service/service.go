package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pierrel/linkpulse/internal/domain/post/dao"
	"github.com/pierrel/linkpulse/internal/domain/post/entity"
)

// Service handles business logic for post drafts
type Service struct {
	posts dao.PostRepository
}

// New creates a new post service
func New(posts dao.PostRepository) *Service {
	return &Service{posts: posts}
}

// CreateInput represents input for creating a post draft
type CreateInput struct {
	BrandProfileID   string
	Content          string
	Variants         []string
	Suggestions      []string
	ReadabilityScore int
	Length           entity.PostLength
	Tone             string
	Hashtags         []string
	Keywords         []string
	ImageURL         string
}

// CreatePost creates a new draft, either from the generator output or the
// free-write editor.
func (s *Service) CreatePost(ctx context.Context, in CreateInput) (*entity.Post, error) {
	now := time.Now()

	length := in.Length
	if length == "" {
		length = entity.PostLengthMedium
	}

	p := &entity.Post{
		ID:               uuid.New().String(),
		BrandProfileID:   in.BrandProfileID,
		Content:          in.Content,
		Variants:         in.Variants,
		Suggestions:      in.Suggestions,
		ReadabilityScore: in.ReadabilityScore,
		Length:           length,
		Tone:             in.Tone,
		Hashtags:         in.Hashtags,
		Keywords:         in.Keywords,
		Status:           entity.PostStatusDraft,
		ImageURL:         in.ImageURL,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateInput represents input for updating a post draft
type UpdateInput struct {
	ID          string
	Content     *string
	Variants    []string
	Suggestions []string
	Hashtags    []string
	Keywords    []string
	Status      *entity.PostStatus
	ImageURL    *string
}

// UpdatePost updates an editable post. The published status is set only via
// MarkAsPublished, never through this path.
func (s *Service) UpdatePost(ctx context.Context, in UpdateInput) (*entity.Post, error) {
	p, err := s.posts.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, entity.ErrPostNotFound
	}

	if !p.IsEditable() {
		return nil, entity.ErrPostNotEditable
	}

	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Variants != nil {
		p.Variants = in.Variants
	}
	if in.Suggestions != nil {
		p.Suggestions = in.Suggestions
	}
	if in.Hashtags != nil {
		p.Hashtags = in.Hashtags
	}
	if in.Keywords != nil {
		p.Keywords = in.Keywords
	}
	if in.Status != nil {
		if *in.Status == entity.PostStatusPublished {
			return nil, entity.ErrInvalidStatus
		}
		p.Status = *in.Status
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}

	p.UpdatedAt = time.Now()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetPost retrieves a post by ID
func (s *Service) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, entity.ErrPostNotFound
	}
	return p, nil
}

// DeletePost deletes a post draft
func (s *Service) DeletePost(ctx context.Context, id string) error {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return entity.ErrPostNotFound
	}

	return s.posts.Delete(ctx, id)
}

// ListInput represents input for listing posts
type ListInput struct {
	BrandProfileID string
	Status         *entity.PostStatus
	Limit          int
	Offset         int
}

// ListOutput represents output from listing posts
type ListOutput struct {
	Posts []entity.Post
	Total int64
}

// ListPosts retrieves posts with filtering
func (s *Service) ListPosts(ctx context.Context, in ListInput) (*ListOutput, error) {
	filter := dao.PostFilter{
		BrandProfileID: in.BrandProfileID,
		Status:         in.Status,
	}

	opts := dao.ListOptions{
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	posts, err := s.posts.List(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Posts: posts, Total: total}, nil
}

// MarkAsPublished marks a post as published on LinkedIn. This is the only
// transition into the published status.
func (s *Service) MarkAsPublished(ctx context.Context, id, linkedinPostID string) error {
	return s.posts.SetPublished(ctx, id, linkedinPostID, time.Now())
}
