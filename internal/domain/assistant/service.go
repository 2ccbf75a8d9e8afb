package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pierrel/linkpulse/internal/cache"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/claude"
	"github.com/pierrel/linkpulse/internal/llmjson"
)

// LLMClient is the completion surface the service needs from the model
// upstream
type LLMClient interface {
	Complete(ctx context.Context, in claude.CompleteInput) (string, error)
}

// InspirationCache holds each profile's inspiration feed until local midnight
type InspirationCache interface {
	Get(ctx context.Context, key string, out interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service orchestrates prompt building, model calls and response parsing for
// the content generation endpoints
type Service struct {
	llm   LLMClient
	cache InspirationCache
	loc   *time.Location
}

func NewService(llm LLMClient, c InspirationCache, loc *time.Location) *Service {
	return &Service{llm: llm, cache: c, loc: loc}
}

// GeneratePost generates a LinkedIn post from a topic and the brand profile.
// When the model answers with prose instead of the expected JSON object, the
// raw text is returned as the post content with a neutral readability score
// rather than failing the request.
func (s *Service) GeneratePost(ctx context.Context, in GeneratePostInput) (*GeneratePostOutput, error) {
	if strings.TrimSpace(in.Topic) == "" {
		return nil, ErrTopicRequired
	}
	if in.BrandProfile == nil {
		return nil, ErrProfileRequired
	}

	system, err := BuildPostPrompt(in)
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Complete(ctx, claude.CompleteInput{
		System: system,
		User:   fmt.Sprintf("Rédige un post sur le sujet suivant : %s", in.Topic),
	})
	if err != nil {
		return nil, err
	}

	var out GeneratePostOutput
	if err := llmjson.Extract(raw, &out); err != nil {
		slog.Warn("unparseable generation response, falling back to raw text")
		return &GeneratePostOutput{
			Content:          raw,
			ReadabilityScore: 75,
		}, nil
	}

	if out.ReadabilityScore < 0 {
		out.ReadabilityScore = 0
	}
	if out.ReadabilityScore > 100 {
		out.ReadabilityScore = 100
	}

	return &out, nil
}

// calendar fallback rotates through these types when the model response
// cannot be parsed
var fallbackSlotTypes = []string{"educational", "storytelling", "promotional", "engagement"}

// GenerateCalendar generates editorial calendar slots for the requested
// period. An unparseable model response degrades to deterministic slots
// spread across the period at the profile's publishing cadence.
func (s *Service) GenerateCalendar(ctx context.Context, in GenerateCalendarInput) (*GenerateCalendarOutput, error) {
	if in.BrandProfile == nil {
		return nil, ErrProfileRequired
	}
	if in.WeeksCount <= 0 {
		in.WeeksCount = 4
	}

	raw, err := s.llm.Complete(ctx, claude.CompleteInput{
		System: BuildCalendarPrompt(in),
		User:   "Génère le calendrier éditorial.",
	})
	if err != nil {
		return nil, err
	}

	var out GenerateCalendarOutput
	if err := llmjson.Extract(raw, &out); err != nil || len(out.Items) == 0 {
		slog.Warn("unparseable calendar response, falling back to deterministic slots")
		return s.fallbackCalendar(in), nil
	}

	return &out, nil
}

// fallbackCalendar spreads publishing slots evenly across the period at the
// profile's weekly cadence
func (s *Service) fallbackCalendar(in GenerateCalendarInput) *GenerateCalendarOutput {
	perWeek := in.BrandProfile.PublishingFrequency.PostsPerWeek()
	if perWeek <= 0 {
		perWeek = 1
	}
	step := 7 / perWeek
	if step < 1 {
		step = 1
	}

	out := &GenerateCalendarOutput{}
	start := in.StartDate.In(s.loc)
	for week := 0; week < in.WeeksCount; week++ {
		for slot := 0; slot < perWeek; slot++ {
			date := start.AddDate(0, 0, week*7+slot*step)
			out.Items = append(out.Items, CalendarSlot{
				Date:      date.Format("2006-01-02"),
				Theme:     fmt.Sprintf("Post %s semaine %d", fallbackSlotTypes[slot%len(fallbackSlotTypes)], week+1),
				Type:      fallbackSlotTypes[slot%len(fallbackSlotTypes)],
				Objective: "À définir",
			})
		}
	}

	return out
}

// staticInspiration is served when the model answer cannot be parsed so the
// feed is never empty
var staticInspiration = DailyInspirationOutput{
	Themes: []InspirationEntry{
		{Title: "Les coulisses de votre métier", Description: "Montrez une journée type ou un process interne que vos clients ne voient jamais."},
		{Title: "Une erreur formatrice", Description: "Racontez une erreur passée et ce qu'elle a changé dans votre façon de travailler."},
		{Title: "Décryptage d'une tendance", Description: "Prenez position sur une évolution récente de votre secteur."},
	},
	Accounts: []InspirationEntry{
		{Title: "Leaders de votre secteur", Description: "Identifiez trois voix reconnues de votre domaine et analysez ce qui fait leur succès."},
	},
	News: []InspirationEntry{
		{Title: "Actualité sectorielle", Description: "Relayez une actualité récente de votre secteur avec votre analyse."},
	},
}

// DailyInspiration returns the inspiration feed for a profile. The result is
// cached until local midnight so every request within a day sees the same
// feed.
func (s *Service) DailyInspiration(ctx context.Context, in DailyInspirationInput) (*DailyInspirationOutput, error) {
	if in.BrandProfile == nil {
		return nil, ErrProfileRequired
	}

	now := time.Now().In(s.loc)
	key := fmt.Sprintf("inspiration:%s:%s", in.BrandProfile.ID, now.Format("2006-01-02"))

	var cached DailyInspirationOutput
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("inspiration cache read failed", "error", err)
	}

	raw, err := s.llm.Complete(ctx, claude.CompleteInput{
		System: BuildInspirationPrompt(in),
		User:   "Propose l'inspiration du jour.",
	})
	if err != nil {
		return nil, err
	}

	var out DailyInspirationOutput
	if err := llmjson.Extract(raw, &out); err != nil {
		slog.Warn("unparseable inspiration response, serving static feed")
		return &staticInspiration, nil
	}

	if err := s.cache.Set(ctx, key, out, cache.TTLUntilMidnight(now, s.loc)); err != nil {
		slog.Warn("inspiration cache write failed", "error", err)
	}

	return &out, nil
}

// AssistPost rewrites an existing post according to the requested action.
// Inputs are deliberately permissive: only the content is required and an
// unknown action degrades to a generic improvement.
func (s *Service) AssistPost(ctx context.Context, in AssistPostInput) (*AssistPostOutput, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrContentRequired
	}

	raw, err := s.llm.Complete(ctx, claude.CompleteInput{
		System: BuildAssistPrompt(in),
		User:   in.Content,
	})
	if err != nil {
		return nil, err
	}

	var out AssistPostOutput
	if err := llmjson.Extract(raw, &out); err != nil {
		return &AssistPostOutput{Content: raw}, nil
	}

	return &out, nil
}
