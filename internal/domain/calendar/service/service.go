package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pierrel/linkpulse/internal/domain/calendar/dao"
	"github.com/pierrel/linkpulse/internal/domain/calendar/entity"
)

// Service handles business logic for the editorial calendar: planned slots,
// queued publish jobs and the month-view reconciliation between the two.
type Service struct {
	items     dao.ItemRepository
	scheduled dao.ScheduledPostRepository
	loc       *time.Location
}

// New creates a new calendar service. Day bucketing uses loc for
// calendar-day equality, not UTC.
func New(items dao.ItemRepository, scheduled dao.ScheduledPostRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		items:     items,
		scheduled: scheduled,
		loc:       loc,
	}
}

// ItemInput represents input for creating a calendar item
type ItemInput struct {
	BrandProfileID string
	Date           time.Time
	Theme          string
	Type           entity.ItemType
	Objective      string
	Status         entity.ItemStatus
	PostID         string
}

// CreateItem creates a single planned slot
func (s *Service) CreateItem(ctx context.Context, in ItemInput) (*entity.Item, error) {
	item := newItem(in)

	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// CreateItems bulk-creates generated slots in one transaction
func (s *Service) CreateItems(ctx context.Context, inputs []ItemInput) ([]entity.Item, error) {
	items := make([]entity.Item, len(inputs))
	for i, in := range inputs {
		item := newItem(in)
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items[i] = *item
	}

	if err := s.items.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return items, nil
}

func newItem(in ItemInput) *entity.Item {
	now := time.Now()

	status := in.Status
	if status == "" {
		status = entity.ItemStatusDraft
	}

	return &entity.Item{
		ID:             uuid.New().String(),
		BrandProfileID: in.BrandProfileID,
		Date:           in.Date,
		Theme:          in.Theme,
		Type:           in.Type,
		Objective:      in.Objective,
		Status:         status,
		PostID:         in.PostID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UpdateItemInput represents input for updating a calendar item
type UpdateItemInput struct {
	ID        string
	Date      *time.Time
	Theme     *string
	Type      *entity.ItemType
	Objective *string
	Status    *entity.ItemStatus
	PostID    *string
}

// UpdateItem updates an existing planned slot
func (s *Service) UpdateItem(ctx context.Context, in UpdateItemInput) (*entity.Item, error) {
	item, err := s.items.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, entity.ErrItemNotFound
	}

	if in.Date != nil {
		item.Date = *in.Date
	}
	if in.Theme != nil {
		item.Theme = *in.Theme
	}
	if in.Type != nil {
		item.Type = *in.Type
	}
	if in.Objective != nil {
		item.Objective = *in.Objective
	}
	if in.Status != nil {
		item.Status = *in.Status
	}
	if in.PostID != nil {
		item.PostID = *in.PostID
	}

	item.UpdatedAt = time.Now()

	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// GetItem retrieves a calendar item by ID
func (s *Service) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, entity.ErrItemNotFound
	}
	return item, nil
}

// DeleteItem removes a planned slot
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return entity.ErrItemNotFound
	}
	return s.items.Delete(ctx, id)
}

// ScheduleInput represents input for queueing a LinkedIn publish job
type ScheduleInput struct {
	BrandProfileID string
	PostID         string
	Content        string
	ImageURL       string
	ScheduledAt    time.Time
	AccessToken    string
}

// Schedule queues a publish job for a future time
func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (*entity.ScheduledPost, error) {
	now := time.Now()

	sp := &entity.ScheduledPost{
		ID:             uuid.New().String(),
		BrandProfileID: in.BrandProfileID,
		PostID:         in.PostID,
		Content:        in.Content,
		ImageURL:       in.ImageURL,
		ScheduledAt:    in.ScheduledAt,
		Status:         entity.ScheduledPostStatusScheduled,
		AccessToken:    in.AccessToken,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := sp.Validate(); err != nil {
		return nil, err
	}

	if err := s.scheduled.Create(ctx, sp); err != nil {
		return nil, err
	}

	return sp, nil
}

// Cancel soft-deletes a publish job. Cancelling an already cancelled job is
// a no-op success; rows are never removed.
func (s *Service) Cancel(ctx context.Context, id string) (*entity.ScheduledPost, error) {
	sp, err := s.scheduled.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, entity.ErrScheduledPostNotFound
	}

	if sp.Status == entity.ScheduledPostStatusCancelled {
		return sp, nil
	}
	if sp.Status == entity.ScheduledPostStatusPublished {
		return nil, entity.ErrScheduledPostNotCancellable
	}

	if err := s.scheduled.UpdateStatus(ctx, id, entity.ScheduledPostStatusCancelled, ""); err != nil {
		return nil, err
	}

	sp.Status = entity.ScheduledPostStatusCancelled
	return sp, nil
}

// GetScheduledPost retrieves a publish job by ID
func (s *Service) GetScheduledPost(ctx context.Context, id string) (*entity.ScheduledPost, error) {
	sp, err := s.scheduled.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, entity.ErrScheduledPostNotFound
	}
	return sp, nil
}

// ListScheduledPosts retrieves all publish jobs for a profile
func (s *Service) ListScheduledPosts(ctx context.Context, profileID string) ([]entity.ScheduledPost, error) {
	return s.scheduled.List(ctx, profileID)
}

// GetDueForPublishing retrieves publish jobs whose time has come
func (s *Service) GetDueForPublishing(ctx context.Context) ([]entity.ScheduledPost, error) {
	return s.scheduled.GetDueForPublishing(ctx, time.Now())
}

// MarkAsPublished marks a publish job as done with its LinkedIn post ID
func (s *Service) MarkAsPublished(ctx context.Context, id, linkedinPostID string) error {
	return s.scheduled.SetPublished(ctx, id, linkedinPostID, time.Now())
}

// MarkAsFailed marks a publish job as failed with an error message
func (s *Service) MarkAsFailed(ctx context.Context, id, errorMsg string) error {
	return s.scheduled.UpdateStatus(ctx, id, entity.ScheduledPostStatusFailed, errorMsg)
}

// DayItem is one entry in a day bucket. Exactly one of Item and
// ScheduledPost is set, matching the discriminant; the two kinds are never
// merged even when they land on the same day.
type DayItem struct {
	IsScheduledPost bool                  `json:"is_scheduled_post"`
	Item            *entity.Item          `json:"calendar_item,omitempty"`
	ScheduledPost   *entity.ScheduledPost `json:"scheduled_post,omitempty"`
}

// DayBucket holds all display items for one calendar day
type DayBucket struct {
	Date  time.Time `json:"date"`
	Items []DayItem `json:"items"`
}

// MonthBuckets returns the per-day display buckets for a month: the union of
// calendar items and non-cancelled scheduled posts whose date falls on each
// local calendar day. Each qualifying record appears exactly once.
func (s *Service) MonthBuckets(ctx context.Context, profileID string, year int, month time.Month) ([]DayBucket, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)

	items, err := s.items.ListRange(ctx, profileID, from, to)
	if err != nil {
		return nil, err
	}

	scheduled, err := s.scheduled.ListRange(ctx, profileID, from, to)
	if err != nil {
		return nil, err
	}

	days := to.AddDate(0, 0, -1).Day()
	buckets := make([]DayBucket, days)
	for d := 0; d < days; d++ {
		buckets[d].Date = from.AddDate(0, 0, d)
	}

	for i := range items {
		day := items[i].Date.In(s.loc).Day()
		buckets[day-1].Items = append(buckets[day-1].Items, DayItem{
			Item: &items[i],
		})
	}

	for i := range scheduled {
		if scheduled[i].Status == entity.ScheduledPostStatusCancelled {
			continue
		}
		day := scheduled[i].ScheduledAt.In(s.loc).Day()
		buckets[day-1].Items = append(buckets[day-1].Items, DayItem{
			IsScheduledPost: true,
			ScheduledPost:   &scheduled[i],
		})
	}

	return buckets, nil
}
