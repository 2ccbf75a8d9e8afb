package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Content string `json:"content"`
	Score   int    `json:"score"`
}

func TestExtractPlainObject(t *testing.T) {
	var p payload
	err := Extract(`{"content": "hello", "score": 80}`, &p)
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Content)
	assert.Equal(t, 80, p.Score)
}

func TestExtractObjectWrappedInProse(t *testing.T) {
	raw := "Voici le post demandé :\n```json\n{\"content\": \"bonjour\", \"score\": 75}\n```\nBonne journée."

	var p payload
	err := Extract(raw, &p)
	require.NoError(t, err)
	assert.Equal(t, "bonjour", p.Content)
	assert.Equal(t, 75, p.Score)
}

func TestExtractNestedObject(t *testing.T) {
	raw := `réponse : {"items": [{"date": "2026-01-05", "theme": "lancement"}]}`

	var out struct {
		Items []struct {
			Date  string `json:"date"`
			Theme string `json:"theme"`
		} `json:"items"`
	}
	err := Extract(raw, &out)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "2026-01-05", out.Items[0].Date)
}

func TestExtractBracesInsideStrings(t *testing.T) {
	raw := `{"content": "un set {a, b} et une accolade \" } citée"}`

	var p payload
	err := Extract(raw, &p)
	require.NoError(t, err)
	assert.Contains(t, p.Content, "{a, b}")
}

func TestExtractNoObject(t *testing.T) {
	var p payload
	assert.ErrorIs(t, Extract("pas de JSON ici", &p), ErrNoObject)
}

func TestExtractUnbalanced(t *testing.T) {
	var p payload
	assert.ErrorIs(t, Extract(`{"content": "truncated`, &p), ErrNoObject)
}
