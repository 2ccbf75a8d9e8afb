package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	brandentity "github.com/pierrel/linkpulse/internal/domain/brand/entity"
)

func testProfile() *brandentity.Profile {
	return &brandentity.Profile{
		ID:                  "bp-1",
		UserID:              "u-1",
		CompanyName:         "Atelier Nord",
		Sector:              "architecture",
		Targets:             []string{"promoteurs", "collectivités"},
		Tone:                brandentity.ToneExpert,
		ForbiddenWords:      []string{"synergie"},
		PublishingFrequency: brandentity.FrequencyThreePerWeek,
	}
}

func TestBuildPostPromptSelectsExactlyOneStructure(t *testing.T) {
	prompt, err := BuildPostPrompt(GeneratePostInput{
		Topic:        "la rénovation énergétique",
		PostType:     PostTypeInstructif,
		PostCategory: PostCategoryConseil,
		BrandProfile: testProfile(),
	})
	require.NoError(t, err)

	// the selected pair's block is present in full
	assert.Contains(t, prompt, structureBlocks["instructif.conseil"])

	// and no other pair's block leaks in
	count := 0
	for key, block := range structureBlocks {
		if strings.Contains(prompt, block) {
			count++
			assert.Equal(t, "instructif.conseil", key, "unexpected structure block in prompt")
		}
	}
	assert.Equal(t, 1, count)
}

func TestInstructifConseilStructureShape(t *testing.T) {
	block := structureBlocks["instructif.conseil"]

	// hook, problem, numbered steps, example, CTA, in that order
	order := []string{"Hook", "problème", "Étapes numérotées", "Exemple", "CTA"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(block, marker)
		require.GreaterOrEqual(t, idx, 0, "missing %q", marker)
		assert.Greater(t, idx, last, "%q out of order", marker)
		last = idx
	}
}

func TestBuildPostPromptUnknownPair(t *testing.T) {
	_, err := BuildPostPrompt(GeneratePostInput{
		Topic:        "sujet",
		PostType:     "lyrique",
		PostCategory: PostCategoryConseil,
		BrandProfile: testProfile(),
	})
	assert.ErrorIs(t, err, ErrUnknownStructure)
}

func TestBuildPostPromptRegistre(t *testing.T) {
	base := GeneratePostInput{
		Topic:        "sujet",
		PostType:     PostTypeInspirant,
		PostCategory: PostCategoryQuestion,
		BrandProfile: testProfile(),
	}

	base.Registre = "tu"
	prompt, err := BuildPostPrompt(base)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Tutoie le lecteur.")
	assert.NotContains(t, prompt, "Vouvoie")

	base.Registre = "vous"
	prompt, err = BuildPostPrompt(base)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Vouvoie le lecteur.")
}

func TestBuildPostPromptBrandContext(t *testing.T) {
	prompt, err := BuildPostPrompt(GeneratePostInput{
		Topic:        "sujet",
		PostType:     PostTypeInstructif,
		PostCategory: PostCategoryConseil,
		EmojiStyle:   "sobre",
		Length:       "long",
		BrandProfile: testProfile(),
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Atelier Nord")
	assert.Contains(t, prompt, "synergie")
	assert.Contains(t, prompt, emojiStyles["sobre"])
	assert.Contains(t, prompt, lengthBands["long"])
	assert.Contains(t, prompt, toneInstructions[brandentity.ToneExpert])
}

func TestBuildCalendarPromptCadence(t *testing.T) {
	prompt := BuildCalendarPrompt(GenerateCalendarInput{
		StartDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		WeeksCount:   4,
		BrandProfile: testProfile(),
	})

	assert.Contains(t, prompt, "3 posts par semaine")
	assert.Contains(t, prompt, "2026-03-02")
}
