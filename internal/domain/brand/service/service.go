package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pierrel/linkpulse/internal/domain/brand/dao"
	"github.com/pierrel/linkpulse/internal/domain/brand/entity"
)

// Service handles business logic for brand profiles
type Service struct {
	profiles dao.ProfileRepository
}

// New creates a new brand profile service
func New(profiles dao.ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// UpsertInput represents input for creating or updating the user's profile
type UpsertInput struct {
	UserID              string
	CompanyName         string
	Sector              string
	Targets             []string
	BusinessObjectives  []string
	Tone                entity.Tone
	Values              []string
	ForbiddenWords      []string
	PublishingFrequency entity.PublishingFrequency
	Charter             *entity.EditorialCharter
}

// Upsert creates the user's profile at onboarding completion or updates it
// from settings. There is exactly one profile per user. Concurrent writers
// are last-write-wins, same as the row-scoped store this replaces.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*entity.Profile, error) {
	existing, err := s.profiles.GetByUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Profile{
		UserID:              in.UserID,
		CompanyName:         in.CompanyName,
		Sector:              in.Sector,
		Targets:             in.Targets,
		BusinessObjectives:  in.BusinessObjectives,
		Tone:                in.Tone,
		Values:              in.Values,
		ForbiddenWords:      in.ForbiddenWords,
		PublishingFrequency: in.PublishingFrequency,
		Charter:             in.Charter,
		UpdatedAt:           now,
	}

	if existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = uuid.New().String()
		p.CreatedAt = now
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.profiles.Update(ctx, p); err != nil {
			return nil, err
		}
	} else {
		if err := s.profiles.Create(ctx, p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// GetByUser retrieves the user's profile
func (s *Service) GetByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, entity.ErrProfileNotFound
	}
	return p, nil
}

// GetByID retrieves a profile by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, entity.ErrProfileNotFound
	}
	return p, nil
}
