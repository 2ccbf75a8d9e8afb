package assistant

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pierrel/linkpulse/internal/cache"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/claude"
)

// fakeLLM returns canned text or a canned error
type fakeLLM struct {
	text string
	err  error

	lastSystem string
	lastUser   string
}

func (f *fakeLLM) Complete(_ context.Context, in claude.CompleteInput) (string, error) {
	f.lastSystem = in.System
	f.lastUser = in.User
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// memCache is a map-backed InspirationCache that records write TTLs
type memCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *memCache) Get(_ context.Context, key string, out interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(data, out)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.ttls[key] = ttl
	return nil
}

func newTestService(llm LLMClient) *Service {
	return NewService(llm, newMemCache(), time.UTC)
}

func TestGeneratePostParsesModelJSON(t *testing.T) {
	llm := &fakeLLM{text: `{"content": "Mon post", "variants": ["v1"], "readabilityScore": 88, "hashtags": ["#archi"]}`}
	svc := newTestService(llm)

	out, err := svc.GeneratePost(context.Background(), GeneratePostInput{
		Topic:        "la rénovation",
		PostType:     PostTypeInstructif,
		PostCategory: PostCategoryConseil,
		BrandProfile: testProfile(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Mon post", out.Content)
	assert.Equal(t, 88, out.ReadabilityScore)
	assert.Equal(t, []string{"v1"}, out.Variants)
	assert.Contains(t, llm.lastUser, "la rénovation")
}

func TestGeneratePostFallbackOnProse(t *testing.T) {
	raw := "Voici un post sans la moindre structure JSON, juste du texte."
	svc := newTestService(&fakeLLM{text: raw})

	out, err := svc.GeneratePost(context.Background(), GeneratePostInput{
		Topic:        "sujet",
		PostType:     PostTypeInstructif,
		PostCategory: PostCategoryConseil,
		BrandProfile: testProfile(),
	})
	require.NoError(t, err, "unparseable output must degrade, not fail")

	assert.Equal(t, raw, out.Content)
	assert.Equal(t, 75, out.ReadabilityScore)
	assert.Empty(t, out.Variants)
}

func TestGeneratePostValidation(t *testing.T) {
	svc := newTestService(&fakeLLM{})

	_, err := svc.GeneratePost(context.Background(), GeneratePostInput{
		PostType:     PostTypeInstructif,
		PostCategory: PostCategoryConseil,
		BrandProfile: testProfile(),
	})
	assert.ErrorIs(t, err, ErrTopicRequired)

	_, err = svc.GeneratePost(context.Background(), GeneratePostInput{Topic: "sujet"})
	assert.ErrorIs(t, err, ErrProfileRequired)
}

func TestGeneratePostUpstreamErrorPropagates(t *testing.T) {
	svc := newTestService(&fakeLLM{err: claude.ErrRateLimited})

	_, err := svc.GeneratePost(context.Background(), GeneratePostInput{
		Topic:        "sujet",
		PostType:     PostTypeInstructif,
		PostCategory: PostCategoryConseil,
		BrandProfile: testProfile(),
	})
	assert.ErrorIs(t, err, claude.ErrRateLimited)
}

func TestGenerateCalendarParsesModelJSON(t *testing.T) {
	svc := newTestService(&fakeLLM{text: `{"items": [{"date": "2026-03-02", "theme": "lancement", "type": "promotional", "objective": "visibilité"}]}`})

	out, err := svc.GenerateCalendar(context.Background(), GenerateCalendarInput{
		StartDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		WeeksCount:   2,
		BrandProfile: testProfile(),
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "promotional", out.Items[0].Type)
}

func TestGenerateCalendarFallbackSlots(t *testing.T) {
	svc := newTestService(&fakeLLM{text: "désolé, pas de JSON aujourd'hui"})

	profile := testProfile() // 3-per-week
	out, err := svc.GenerateCalendar(context.Background(), GenerateCalendarInput{
		StartDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		WeeksCount:   2,
		BrandProfile: profile,
	})
	require.NoError(t, err)

	// cadence 3/week over 2 weeks
	require.Len(t, out.Items, 6)
	assert.Equal(t, "2026-03-02", out.Items[0].Date)
	for _, slot := range out.Items {
		_, err := time.Parse("2006-01-02", slot.Date)
		assert.NoError(t, err)
		assert.NotEmpty(t, slot.Type)
	}
}

func TestDailyInspirationUpstreamErrorPropagates(t *testing.T) {
	svc := newTestService(&fakeLLM{err: claude.ErrRateLimited})

	_, err := svc.DailyInspiration(context.Background(), DailyInspirationInput{
		BrandProfile: testProfile(),
	})
	assert.ErrorIs(t, err, claude.ErrRateLimited)
}

func TestDailyInspirationCachesUntilMidnight(t *testing.T) {
	llm := &fakeLLM{text: `{"themes": [{"title": "Chantier ouvert", "description": "Faites visiter."}], "accounts": [], "news": []}`}
	c := newMemCache()
	svc := NewService(llm, c, time.UTC)

	out, err := svc.DailyInspiration(context.Background(), DailyInspirationInput{
		BrandProfile: testProfile(),
	})
	require.NoError(t, err)
	require.Len(t, out.Themes, 1)
	assert.Equal(t, "Chantier ouvert", out.Themes[0].Title)

	require.Len(t, c.ttls, 1)
	for _, ttl := range c.ttls {
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, 24*time.Hour)
	}

	// Second call within the day must come from the cache, not the model
	llm.err = claude.ErrRateLimited
	again, err := svc.DailyInspiration(context.Background(), DailyInspirationInput{
		BrandProfile: testProfile(),
	})
	require.NoError(t, err)
	assert.Equal(t, out.Themes, again.Themes)
}

func TestDailyInspirationStaticFallbackOnProse(t *testing.T) {
	c := newMemCache()
	svc := NewService(&fakeLLM{text: "trois idées en vrac, sans structure"}, c, time.UTC)

	out, err := svc.DailyInspiration(context.Background(), DailyInspirationInput{
		BrandProfile: testProfile(),
	})
	require.NoError(t, err, "unparseable output must degrade, not fail")

	assert.Equal(t, staticInspiration.Themes, out.Themes)
	assert.Empty(t, c.entries, "the static feed must not be cached")
}

func TestDailyInspirationRequiresProfile(t *testing.T) {
	svc := newTestService(&fakeLLM{})

	_, err := svc.DailyInspiration(context.Background(), DailyInspirationInput{})
	assert.ErrorIs(t, err, ErrProfileRequired)
}

func TestAssistPostReturnsRawOnProse(t *testing.T) {
	raw := "Version améliorée du post, en texte brut."
	svc := newTestService(&fakeLLM{text: raw})

	out, err := svc.AssistPost(context.Background(), AssistPostInput{
		Content: "mon brouillon",
		Action:  "improve",
	})
	require.NoError(t, err)
	assert.Equal(t, raw, out.Content)
}

func TestAssistPostRequiresContent(t *testing.T) {
	svc := newTestService(&fakeLLM{})

	_, err := svc.AssistPost(context.Background(), AssistPostInput{Action: "improve"})
	assert.ErrorIs(t, err, ErrContentRequired)
}

func TestAssistPostUnknownActionFallsBackToImprove(t *testing.T) {
	llm := &fakeLLM{text: `{"content": "ok"}`}
	svc := newTestService(llm)

	_, err := svc.AssistPost(context.Background(), AssistPostInput{
		Content: "brouillon",
		Action:  "transmogrify",
	})
	require.NoError(t, err)
	assert.Contains(t, llm.lastSystem, assistActions["improve"])
}
