package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	brandentity "github.com/pierrel/linkpulse/internal/domain/brand/entity"
	"github.com/pierrel/linkpulse/internal/domain/watch/entity"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/claude"
	"github.com/pierrel/linkpulse/internal/httpx/upstream/perplexity"
)

type fakeAnalyzer struct {
	text       string
	err        error
	lastSystem string
}

func (f *fakeAnalyzer) Complete(_ context.Context, in claude.CompleteInput) (string, error) {
	f.lastSystem = in.System
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestParseSearchResultItemsJSON(t *testing.T) {
	svc := &Service{}

	out := svc.parseSearchResult("bp-1", &perplexity.SearchOutput{
		Text: `Voici les résultats :
{"items": [
  {"title": "Le bois massif gagne du terrain", "summary": "Les promoteurs s'y mettent.", "url": "https://exemple.fr/bois", "source": "exemple.fr", "category": "tendance", "relevance": "high"},
  {"title": "Nouvelle RE2020", "summary": "Seuils carbone abaissés.", "url": "https://exemple.fr/re2020", "source": "exemple.fr", "category": "reglementation", "relevance": "medium"}
]}`,
		Citations: []string{"https://exemple.fr/bois", "https://exemple.fr/re2020"},
	})

	require.Len(t, out.Items, 2)
	assert.Equal(t, "Le bois massif gagne du terrain", out.Items[0].Title)
	assert.Equal(t, "bp-1", out.Items[0].BrandProfileID)
	assert.Equal(t, "high", out.Items[0].Relevance)
	assert.NotEmpty(t, out.Items[0].ID)
	assert.Equal(t, []string{"https://exemple.fr/bois", "https://exemple.fr/re2020"}, out.Citations)
}

func TestParseSearchResultCitationsFallback(t *testing.T) {
	svc := &Service{}

	raw := "Le marché du bois massif progresse fortement cette année."
	out := svc.parseSearchResult("bp-1", &perplexity.SearchOutput{
		Text:      raw,
		Citations: []string{"https://exemple.fr/a", "https://exemple.fr/b"},
	})

	require.Len(t, out.Items, 2, "each citation becomes one item")
	assert.Equal(t, "https://exemple.fr/a", out.Items[0].Title)
	assert.Equal(t, "https://exemple.fr/a", out.Items[0].URL)
	assert.Equal(t, raw, out.Items[0].Summary)
}

func TestAnalyzeParsesAngles(t *testing.T) {
	analyzer := &fakeAnalyzer{text: `{"angles": ["Retour d'expérience", "Chiffres clés", "Contre-pied"]}`}
	svc := &Service{analyzer: analyzer}

	out, err := svc.Analyze(context.Background(), &entity.Item{
		Title:   "Le bois massif gagne du terrain",
		Summary: "Les promoteurs s'y mettent.",
	}, &brandentity.Profile{CompanyName: "Atelier Nord", Sector: "architecture"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Retour d'expérience", "Chiffres clés", "Contre-pied"}, out.Angles)
	assert.Contains(t, analyzer.lastSystem, "Atelier Nord")
}

func TestAnalyzeRawTextFallback(t *testing.T) {
	analyzer := &fakeAnalyzer{text: "Angle 1 : parlez de votre dernier chantier."}
	svc := &Service{analyzer: analyzer}

	out, err := svc.Analyze(context.Background(), &entity.Item{Title: "Actu"}, nil)
	require.NoError(t, err)

	require.Len(t, out.Angles, 1)
	assert.Equal(t, analyzer.text, out.Angles[0])
}

func TestAnalyzeRequiresItem(t *testing.T) {
	svc := &Service{analyzer: &fakeAnalyzer{}}

	_, err := svc.Analyze(context.Background(), nil, nil)
	assert.ErrorIs(t, err, entity.ErrEmptyTitle)

	_, err = svc.Analyze(context.Background(), &entity.Item{}, nil)
	assert.ErrorIs(t, err, entity.ErrEmptyTitle)
}

func TestAnalyzePropagatesUpstreamError(t *testing.T) {
	svc := &Service{analyzer: &fakeAnalyzer{err: claude.ErrRateLimited}}

	_, err := svc.Analyze(context.Background(), &entity.Item{Title: "Actu"}, nil)
	assert.True(t, errors.Is(err, claude.ErrRateLimited))
}

func TestCreateTopicValidation(t *testing.T) {
	svc := &Service{}

	_, err := svc.CreateTopic(context.Background(), "", "requête")
	assert.ErrorIs(t, err, entity.ErrEmptyProfileID)

	_, err = svc.CreateTopic(context.Background(), "bp-1", "   ")
	assert.ErrorIs(t, err, entity.ErrEmptyQuery)
}
