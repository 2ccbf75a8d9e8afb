// Package prefill implements a one-shot handoff mailbox between surfaces:
// one flow deposits draft content (a watch item turned into a post idea, an
// inspiration suggestion) and the post editor picks it up exactly once.
package prefill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pierrel/linkpulse/internal/cache"
)

// ErrEmpty is returned when no prefill is waiting for the user
var ErrEmpty = errors.New("no prefill waiting")

// mailboxTTL bounds how long an unclaimed prefill survives
const mailboxTTL = 24 * time.Hour

// Payload is the draft content handed to the post editor
type Payload struct {
	Topic      string `json:"topic,omitempty"`
	Content    string `json:"content,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
	SourceKind string `json:"source_kind,omitempty"`
}

// Service stores and claims prefill payloads
type Service struct {
	cache *cache.Cache
}

func NewService(c *cache.Cache) *Service {
	return &Service{cache: c}
}

func key(userID string) string {
	return "prefill:" + userID
}

// Put deposits a payload for the user, replacing any unclaimed one
func (s *Service) Put(ctx context.Context, userID string, p Payload) error {
	if err := s.cache.Set(ctx, key(userID), p, mailboxTTL); err != nil {
		return fmt.Errorf("storing prefill: %w", err)
	}
	return nil
}

// Claim returns the waiting payload and removes it atomically, so a second
// claim sees an empty mailbox
func (s *Service) Claim(ctx context.Context, userID string) (*Payload, error) {
	var p Payload
	if err := s.cache.GetDel(ctx, key(userID), &p); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("claiming prefill: %w", err)
	}
	return &p, nil
}
