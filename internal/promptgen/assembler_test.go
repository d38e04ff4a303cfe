package promptgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-ai/server/internal/styleprofile"
	"github.com/atelier-ai/server/internal/templates"
	"github.com/atelier-ai/server/internal/tokenscore"
	"github.com/atelier-ai/server/internal/vlt"
)

// stubRand fixes both the explore/exploit sample and the shuffle order
type stubRand struct {
	f float64
}

func (s stubRand) Float64() float64 { return s.f }
func (s stubRand) IntN(n int) int   { return 0 }

func boolPtr(b bool) *bool { return &b }

func testSpec() *vlt.Spec {
	return &vlt.Spec{
		ImageID:     "img-1",
		GarmentType: "dress",
		Attributes: map[string]string{
			vlt.AttrSilhouette:  "bias-cut",
			vlt.AttrFabrication: "silk",
		},
		Colors: map[string]string{
			vlt.ColorPrimary: "emerald",
			vlt.ColorFinish:  "satin sheen",
		},
		Style: map[string]string{
			vlt.StyleAesthetic: "fluid evening",
			vlt.StyleMood:      "glamorous",
		},
		Confidence: 0.92,
	}
}

func testProfile() *styleprofile.Profile {
	return &styleprofile.Profile{
		UserID:        "user-1",
		Version:       1,
		DominantStyle: "Fluid Evening",
		Clusters: []styleprofile.Cluster{
			{ID: "dresses/fluid-evening", Label: "Fluid Evening", Weight: 1.0, MemberCount: 5},
		},
	}
}

func TestGenerate_ExploitRanksScoredPoolTokens(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	ctx := context.Background()

	// push three fluid-evening pool tokens to distinct scores
	for i := 0; i < 5; i++ {
		_, err := store.Apply(ctx, "user-1", "liquid silk charmeuse", 1.0, tokenscore.NoBonus)
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := store.Apply(ctx, "user-1", "cascading drape", 1.0, tokenscore.NoBonus)
		require.NoError(t, err)
	}
	_, err := store.Apply(ctx, "user-1", "delicate beadwork", 1.0, tokenscore.NoBonus)
	require.NoError(t, err)

	// a token outside the selected template's pools must never be picked
	_, err = store.Apply(ctx, "user-1", "heritage tweed", 1.0, tokenscore.NoBonus)
	require.NoError(t, err)

	asm := New(store)

	result, err := asm.Generate(ctx, testSpec(), testProfile(), Options{
		UserID:      "user-1",
		ExploreMode: boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, "fluid-evening", result.TemplateID)
	assert.False(t, result.ExploreMode)
	assert.Equal(t, []string{"liquid silk charmeuse", "cascading drape", "delicate beadwork"}, result.Segments.Learned)
	assert.Empty(t, result.Segments.Exploratory)
}

func TestGenerate_ExploitTieBreaksByPoolOrder(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	ctx := context.Background()

	// identical score and observation count; "cascading drape" precedes
	// "haute couture" in the pool, so it must rank first
	_, err := store.Apply(ctx, "user-1", "haute couture", 1.0, tokenscore.NoBonus)
	require.NoError(t, err)
	_, err = store.Apply(ctx, "user-1", "cascading drape", 1.0, tokenscore.NoBonus)
	require.NoError(t, err)

	asm := New(store)

	result, err := asm.Generate(ctx, testSpec(), testProfile(), Options{
		UserID:      "user-1",
		ExploreMode: boolPtr(false),
		TopN:        2,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"cascading drape", "haute couture"}, result.Segments.Learned)
}

func TestGenerate_ExploreDrawsFromOtherTemplates(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	asm := New(store)

	current, ok := templates.ByID("fluid-evening")
	require.True(t, ok)

	result, err := asm.Generate(context.Background(), testSpec(), testProfile(), Options{
		UserID:      "user-1",
		ExploreMode: boolPtr(true),
	})

	require.NoError(t, err)
	assert.True(t, result.ExploreMode)
	require.Len(t, result.Segments.Exploratory, DefaultExploreCount)

	for _, token := range result.Segments.Exploratory {
		assert.False(t, current.InPools(token),
			"exploratory token %q must come from another template's pools", token)
		assert.NotContains(t, result.Segments.Core, token)
		assert.NotContains(t, result.Segments.Learned, token)
	}
}

func TestGenerate_ExplorePrefersUnscoredTokens(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	ctx := context.Background()

	// score every modifier of every template except one
	unscored := "heritage tweed"

	for _, tmpl := range templates.All() {
		for _, token := range tmpl.Modifiers() {
			if token == unscored {
				continue
			}

			_, err := store.Apply(ctx, "user-1", token, 0.5, tokenscore.NoBonus)
			require.NoError(t, err)
		}
	}

	asm := NewWithRand(store, stubRand{})

	result, err := asm.Generate(ctx, testSpec(), testProfile(), Options{
		UserID:       "user-1",
		ExploreMode:  boolPtr(true),
		ExploreCount: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{unscored}, result.Segments.Exploratory,
		"the only unscored candidate must win the exploratory slot")
}

func TestGenerate_UserModifierNeverRedrawnAsExploratory(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	ctx := context.Background()

	// leave exactly one unscored candidate outside the current template, then
	// claim it as a user modifier; exploration must skip it
	unscored := "heritage tweed"

	for _, tmpl := range templates.All() {
		for _, token := range tmpl.Modifiers() {
			if token == unscored {
				continue
			}

			_, err := store.Apply(ctx, "user-1", token, 0.5, tokenscore.NoBonus)
			require.NoError(t, err)
		}
	}

	asm := NewWithRand(store, stubRand{})

	result, err := asm.Generate(ctx, testSpec(), testProfile(), Options{
		UserID:        "user-1",
		ExploreMode:   boolPtr(true),
		ExploreCount:  3,
		UserModifiers: []string{unscored},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{unscored}, result.Segments.User)
	assert.NotContains(t, result.Segments.Exploratory, unscored,
		"a user-authored token must stay in the unscored user segment")
}

func TestGenerate_NilProfileDegradesWithoutError(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	asm := New(store)

	result, err := asm.Generate(context.Background(), testSpec(), nil, Options{
		UserID:      "user-1",
		ExploreMode: boolPtr(false),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Segments.Core)
	assert.Contains(t, result.MainPrompt, "dress")
	assert.Contains(t, result.MainPrompt, "glamorous", "degraded core must carry analysis mood")
	assert.NotEmpty(t, result.NegativePrompt)
}

func TestGenerate_ExplicitModeOverridesRandomSource(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	ctx := context.Background()

	// rand says explore (0.0 < 0.2), caller says exploit
	asm := NewWithRand(store, stubRand{f: 0.0})

	result, err := asm.Generate(ctx, testSpec(), testProfile(), Options{
		UserID:      "user-1",
		ExploreMode: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, result.ExploreMode)

	// rand says exploit (0.9 >= 0.2), caller says explore
	asm = NewWithRand(store, stubRand{f: 0.9})

	result, err = asm.Generate(ctx, testSpec(), testProfile(), Options{
		UserID:      "user-1",
		ExploreMode: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, result.ExploreMode)
}

func TestGenerate_SampledModeFollowsRandomSource(t *testing.T) {
	store := tokenscore.NewMemoryStore()

	asm := NewWithRand(store, stubRand{f: 0.1})
	result, err := asm.Generate(context.Background(), testSpec(), testProfile(), Options{UserID: "user-1"})
	require.NoError(t, err)
	assert.True(t, result.ExploreMode)

	asm = NewWithRand(store, stubRand{f: 0.5})
	result, err = asm.Generate(context.Background(), testSpec(), testProfile(), Options{UserID: "user-1"})
	require.NoError(t, err)
	assert.False(t, result.ExploreMode)
}

func TestGenerate_UserModifiersTrimmedVerbatim(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	asm := New(store)

	result, err := asm.Generate(context.Background(), testSpec(), testProfile(), Options{
		UserID:        "user-1",
		ExploreMode:   boolPtr(false),
		UserModifiers: []string{"  with pearl buttons ", "", "   ", "photographed on film"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"with pearl buttons", "photographed on film"}, result.Segments.User)
}

func TestGenerate_TemplateOverrideWins(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	asm := New(store)

	result, err := asm.Generate(context.Background(), testSpec(), testProfile(), Options{
		UserID:      "user-1",
		ExploreMode: boolPtr(false),
		TemplateID:  "experimental-edge",
	})

	require.NoError(t, err)
	assert.Equal(t, "experimental-edge", result.TemplateID)
}

func TestGenerate_MainPromptJoinsAllSegments(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Apply(ctx, "user-1", "haute couture", 1.0, tokenscore.NoBonus)
	require.NoError(t, err)

	asm := New(store)

	result, err := asm.Generate(ctx, testSpec(), testProfile(), Options{
		UserID:        "user-1",
		ExploreMode:   boolPtr(false),
		UserModifiers: []string{"soft pastel palette"},
	})

	require.NoError(t, err)

	for _, token := range result.Segments.All() {
		assert.Contains(t, result.MainPrompt, token)
	}
}
