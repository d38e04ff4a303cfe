package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-ai/server/internal/promptgen"
	"github.com/atelier-ai/server/internal/templates"
	"github.com/atelier-ai/server/internal/tokenscore"
	"github.com/atelier-ai/server/internal/vlt"
)

func TestEventReward_Table(t *testing.T) {
	cases := []struct {
		event  Event
		reward float64
	}{
		{Event{Type: TypeSave}, 1.0},
		{Event{Type: TypeShare}, 0.9},
		{Event{Type: TypeRemix}, 0.8},
		{Event{Type: TypeViewLong}, 0.5},
		{Event{Type: TypeViewShort}, 0.1},
		{Event{Type: TypeDislike}, -0.5},
		{Event{Type: TypeIrrelevant}, -1.0},
		{Event{Type: TypeView, TimeViewedSeconds: 12}, 0.5},
		{Event{Type: TypeView, TimeViewedSeconds: 5}, 0.1},
		{Event{Type: TypeView, TimeViewedSeconds: 0.4}, 0.1},
	}

	for _, tc := range cases {
		r, err := tc.event.Reward()
		require.NoError(t, err)
		assert.Equal(t, tc.reward, r, "type %s viewed %.1fs", tc.event.Type, tc.event.TimeViewedSeconds)
	}
}

func TestEventReward_UnknownType(t *testing.T) {
	_, err := Event{Type: "applaud"}.Reward()
	assert.Error(t, err)
	assert.False(t, Event{Type: "applaud"}.Valid())
}

func TestRecord_ScoresOnlyLearnedAndExploratory(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	proc := NewProcessor(store)
	ctx := context.Background()

	segments := promptgen.Segments{
		Core:        []string{"professional fashion photography", "emerald silk dress"},
		Learned:     []string{"liquid silk charmeuse", "cascading drape"},
		Exploratory: []string{"heritage tweed"},
		User:        []string{"with pearl buttons"},
	}

	deltas, err := proc.Record(ctx, Event{UserID: "user-1", GenerationID: "gen-1", Type: TypeSave}, segments)

	require.NoError(t, err)
	require.Len(t, deltas, 3)

	scores, err := store.Scores(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, scores, 3)

	for _, sc := range scores {
		assert.NotContains(t, segments.Core, sc.Token, "core tokens must never be scored")
		assert.NotContains(t, segments.User, sc.Token, "user tokens must never be scored")
	}
}

func TestRecord_FirstSaveHitsLiteralExample(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	proc := NewProcessor(store)

	deltas, err := proc.Record(context.Background(),
		Event{UserID: "user-1", GenerationID: "gen-1", Type: TypeSave},
		promptgen.Segments{Learned: []string{"haute couture"}},
	)

	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.InDelta(t, 0.55, deltas[0].NewScore, 1e-9)
	assert.Equal(t, 1, deltas[0].Observation)
	assert.Equal(t, "learned", deltas[0].Segment)
}

func TestRecord_DiscoveryBonusBeatsPlainLearned(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	proc := NewProcessor(store)

	deltas, err := proc.Record(context.Background(),
		Event{UserID: "user-1", GenerationID: "gen-1", Type: TypeSave},
		promptgen.Segments{
			Learned:     []string{"plain-token"},
			Exploratory: []string{"discovered-token"},
		},
	)

	require.NoError(t, err)
	require.Len(t, deltas, 2)

	var plain, discovered Delta
	for _, d := range deltas {
		switch d.Token {
		case "plain-token":
			plain = d
		case "discovered-token":
			discovered = d
		}
	}

	assert.Greater(t, discovered.NewScore, plain.NewScore,
		"identical reward from identical baseline must move the exploratory token further")
}

func TestRecord_RepeatedSavesConvergeBelowOne(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	proc := NewProcessor(store)
	ctx := context.Background()

	segments := promptgen.Segments{Learned: []string{"sculptural minimalism"}}
	prev := 0.0

	for i := 0; i < 40; i++ {
		deltas, err := proc.Record(ctx, Event{UserID: "user-1", GenerationID: "gen-1", Type: TypeSave}, segments)
		require.NoError(t, err)

		assert.Greater(t, deltas[0].NewScore, prev)
		assert.Less(t, deltas[0].NewScore, 1.0)
		prev = deltas[0].NewScore
	}
}

// generate -> save -> generate again: exploitation must re-select at least
// one of the rewarded tokens
func TestExploitationReselectsRewardedTokens(t *testing.T) {
	store := tokenscore.NewMemoryStore()
	proc := NewProcessor(store)
	asm := promptgen.New(store)
	ctx := context.Background()

	// a new user: every pool token sits at the 0.5 baseline
	current, ok := templates.ByID("fluid-evening")
	require.True(t, ok)

	for _, token := range current.Modifiers() {
		_, err := store.Apply(ctx, "user-1", token, 0.5, tokenscore.NoBonus)
		require.NoError(t, err)
	}

	off := false
	opts := promptgen.Options{UserID: "user-1", ExploreMode: &off, TemplateID: "fluid-evening"}

	first, err := asm.Generate(ctx, fluidSpec(), nil, opts)
	require.NoError(t, err)
	require.NotEmpty(t, first.Segments.Learned)

	_, err = proc.Record(ctx, Event{UserID: "user-1", GenerationID: "gen-1", Type: TypeSave}, first.Segments)
	require.NoError(t, err)

	second, err := asm.Generate(ctx, fluidSpec(), nil, opts)
	require.NoError(t, err)

	overlap := 0
	for _, token := range second.Segments.Learned {
		for _, prev := range first.Segments.Learned {
			if token == prev {
				overlap++
				break
			}
		}
	}

	assert.GreaterOrEqual(t, overlap, 1, "exploitation must re-select high scorers")

	// a third pass with exploration on may surface entirely new tokens
	on := true
	third, err := asm.Generate(ctx, fluidSpec(), nil,
		promptgen.Options{UserID: "user-1", ExploreMode: &on, TemplateID: "fluid-evening"})
	require.NoError(t, err)

	for _, token := range third.Segments.Exploratory {
		assert.NotContains(t, first.Segments.Learned, token)
	}
}

func fluidSpec() *vlt.Spec {
	return &vlt.Spec{
		ImageID:     "img-1",
		GarmentType: "gown",
		Attributes:  map[string]string{vlt.AttrFabrication: "silk"},
		Colors:      map[string]string{vlt.ColorPrimary: "champagne"},
		Style:       map[string]string{vlt.StyleAesthetic: "fluid evening"},
		Confidence:  0.9,
	}
}
