package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pierrel/linkpulse/internal/cache"
	brandentity "github.com/pierrel/linkpulse/internal/domain/brand/entity"
	"github.com/pierrel/linkpulse/internal/domain/watch/dao"
	"github.com/pierrel/linkpulse/internal/domain/watch/entity"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/claude"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/perplexity"
	"github.com/pierrel/linkpulse/internal/llmjson"
)

// Searcher is the search-augmented completion surface the watch feed needs
type Searcher interface {
	Search(ctx context.Context, in perplexity.SearchInput) (*perplexity.SearchOutput, error)
}

// Analyzer is the plain completion surface used to turn a watch item into
// post angles
type Analyzer interface {
	Complete(ctx context.Context, in claude.CompleteInput) (string, error)
}

const (
	watchCacheTTL   = 30 * time.Minute
	defaultListSize = 20
)

// Service provides business logic for the watch feed
type Service struct {
	items        dao.ItemRepository
	topics       dao.TopicRepository
	history      dao.HistoryRepository
	inspirations dao.InspirationRepository
	searcher     Searcher
	analyzer     Analyzer
	cache        *cache.Cache
}

func NewService(
	items dao.ItemRepository,
	topics dao.TopicRepository,
	history dao.HistoryRepository,
	inspirations dao.InspirationRepository,
	searcher Searcher,
	analyzer Analyzer,
	c *cache.Cache,
) *Service {
	return &Service{
		items:        items,
		topics:       topics,
		history:      history,
		inspirations: inspirations,
		searcher:     searcher,
		analyzer:     analyzer,
		cache:        c,
	}
}

// SearchOutput is one watch query result: the surfaced items plus the raw
// source citations
type SearchOutput struct {
	Items     []entity.Item `json:"items"`
	Citations []string      `json:"citations,omitempty"`
}

type searchPayload struct {
	Items []struct {
		Title     string `json:"title"`
		Summary   string `json:"summary"`
		URL       string `json:"url"`
		Source    string `json:"source"`
		Category  string `json:"category"`
		Relevance string `json:"relevance"`
	} `json:"items"`
}

const searchSystemPrompt = `Tu es un outil de veille sectorielle pour un créateur de contenu LinkedIn.
À partir de la requête de l'utilisateur, identifie les actualités et tendances récentes les plus pertinentes.
Réponds uniquement avec un objet JSON : {"items": [{"title": "...", "summary": "...", "url": "...", "source": "...", "category": "...", "relevance": "high|medium|low"}]}`

// Search runs a watch query for a profile. Results are cached per query so
// repeated lookups within the TTL do not hit the upstream, and each upstream
// run is appended to the profile's watch history.
func (s *Service) Search(ctx context.Context, profileID, query string, profile *brandentity.Profile) (*SearchOutput, error) {
	if profileID == "" {
		return nil, entity.ErrEmptyProfileID
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, entity.ErrEmptyQuery
	}

	key := fmt.Sprintf("watch:%s:%s", profileID, strings.ToLower(query))
	var cached SearchOutput
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("watch cache read failed", "error", err)
	}

	user := query
	if profile != nil {
		user = fmt.Sprintf("Secteur : %s. Cibles : %s.\nRequête : %s",
			profile.Sector, strings.Join(profile.Targets, ", "), query)
	}

	result, err := s.searcher.Search(ctx, perplexity.SearchInput{
		System: searchSystemPrompt,
		User:   user,
	})
	if err != nil {
		return nil, err
	}

	out := s.parseSearchResult(profileID, result)

	if err := s.cache.Set(ctx, key, out, watchCacheTTL); err != nil {
		slog.Warn("watch cache write failed", "error", err)
	}

	hist := &entity.HistoryEntry{
		ID:             uuid.New().String(),
		BrandProfileID: profileID,
		Query:          query,
		Snapshot:       out.Items,
		Citations:      out.Citations,
		CreatedAt:      time.Now(),
	}
	if err := s.history.Create(ctx, hist); err != nil {
		slog.Warn("watch history append failed", "error", err)
	}

	return out, nil
}

// parseSearchResult extracts items from the model text. When the text is not
// the expected JSON the citations become the items, so a successful upstream
// call never yields an empty feed.
func (s *Service) parseSearchResult(profileID string, result *perplexity.SearchOutput) *SearchOutput {
	out := &SearchOutput{Citations: result.Citations}

	var payload searchPayload
	if err := llmjson.Extract(result.Text, &payload); err == nil && len(payload.Items) > 0 {
		for _, it := range payload.Items {
			out.Items = append(out.Items, entity.Item{
				ID:             uuid.New().String(),
				BrandProfileID: profileID,
				Title:          it.Title,
				Summary:        it.Summary,
				URL:            it.URL,
				Source:         it.Source,
				Category:       it.Category,
				Relevance:      it.Relevance,
				CreatedAt:      time.Now(),
			})
		}
		return out
	}

	slog.Warn("unparseable watch response, templating items from citations")
	for _, url := range result.Citations {
		out.Items = append(out.Items, entity.Item{
			ID:             uuid.New().String(),
			BrandProfileID: profileID,
			Title:          url,
			Summary:        result.Text,
			URL:            url,
			CreatedAt:      time.Now(),
		})
	}

	return out
}

// AnalyzeOutput carries post angles derived from one watch item
type AnalyzeOutput struct {
	Angles []string `json:"angles"`
}

// Analyze turns a watch item into concrete post angles for the profile
func (s *Service) Analyze(ctx context.Context, item *entity.Item, profile *brandentity.Profile) (*AnalyzeOutput, error) {
	if item == nil || item.Title == "" {
		return nil, entity.ErrEmptyTitle
	}

	system := "Tu es un stratège de contenu LinkedIn. À partir d'une actualité, propose trois angles de post distincts.\n" +
		`Réponds uniquement avec un objet JSON : {"angles": ["...", "...", "..."]}`
	if profile != nil {
		system += fmt.Sprintf("\nL'entreprise : %s, secteur %s.", profile.CompanyName, profile.Sector)
	}

	raw, err := s.analyzer.Complete(ctx, claude.CompleteInput{
		System: system,
		User:   fmt.Sprintf("%s\n\n%s", item.Title, item.Summary),
	})
	if err != nil {
		return nil, err
	}

	var out AnalyzeOutput
	if err := llmjson.Extract(raw, &out); err != nil || len(out.Angles) == 0 {
		return &AnalyzeOutput{Angles: []string{raw}}, nil
	}

	return &out, nil
}

// SaveItem persists a watch item picked from a search result
func (s *Service) SaveItem(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("saving watch item: %w", err)
	}
	return item, nil
}

// ListItems returns the saved watch items for a profile
func (s *Service) ListItems(ctx context.Context, profileID string, limit int) ([]entity.Item, error) {
	if limit <= 0 {
		limit = defaultListSize
	}
	return s.items.List(ctx, profileID, limit)
}

// DeleteItem removes a saved watch item
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("getting watch item: %w", err)
	}
	if item == nil {
		return entity.ErrItemNotFound
	}
	return s.items.Delete(ctx, id)
}

// CreateTopic saves a recurring watch query
func (s *Service) CreateTopic(ctx context.Context, profileID, query string) (*entity.Topic, error) {
	if profileID == "" {
		return nil, entity.ErrEmptyProfileID
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, entity.ErrEmptyQuery
	}

	topic := &entity.Topic{
		ID:             uuid.New().String(),
		BrandProfileID: profileID,
		Query:          query,
		CreatedAt:      time.Now(),
	}
	if err := s.topics.Create(ctx, topic); err != nil {
		return nil, fmt.Errorf("saving watch topic: %w", err)
	}
	return topic, nil
}

// ListTopics returns the saved watch topics for a profile
func (s *Service) ListTopics(ctx context.Context, profileID string) ([]entity.Topic, error) {
	return s.topics.List(ctx, profileID)
}

// DeleteTopic removes a saved watch topic
func (s *Service) DeleteTopic(ctx context.Context, id string) error {
	return s.topics.Delete(ctx, id)
}

// History returns the most recent watch runs for a profile
func (s *Service) History(ctx context.Context, profileID string, limit int) ([]entity.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultListSize
	}
	return s.history.List(ctx, profileID, limit)
}

// SaveInspiration bookmarks one daily-inspiration suggestion
func (s *Service) SaveInspiration(ctx context.Context, insp *entity.SavedInspiration) (*entity.SavedInspiration, error) {
	if err := insp.Validate(); err != nil {
		return nil, err
	}
	insp.ID = uuid.New().String()
	insp.CreatedAt = time.Now()

	if err := s.inspirations.Create(ctx, insp); err != nil {
		return nil, fmt.Errorf("saving inspiration: %w", err)
	}
	return insp, nil
}

// ListInspirations returns the bookmarked suggestions for a profile
func (s *Service) ListInspirations(ctx context.Context, profileID string) ([]entity.SavedInspiration, error) {
	return s.inspirations.List(ctx, profileID)
}

// DeleteInspiration removes a bookmarked suggestion
func (s *Service) DeleteInspiration(ctx context.Context, id string) error {
	return s.inspirations.Delete(ctx, id)
}
