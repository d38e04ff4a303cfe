package tokenscore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_FirstObservationStartsAtBaseline(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// 0.5 + 0.1 * (1.0 - 0.5) = 0.55
	sc, err := store.Apply(ctx, "user-1", "haute couture", 1.0, NoBonus)

	require.NoError(t, err)
	assert.InDelta(t, 0.55, sc.Score, 1e-9)
	assert.Equal(t, 1, sc.ObservationCount)
	assert.False(t, sc.LastUpdatedAt.IsZero())
}

func TestApply_RepeatedSavesApproachOneMonotonically(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	prev := Baseline

	for i := 0; i < 50; i++ {
		sc, err := store.Apply(ctx, "user-1", "liquid silk charmeuse", 1.0, NoBonus)
		require.NoError(t, err)

		assert.Greater(t, sc.Score, prev, "score must increase on every save")
		assert.Less(t, sc.Score, 1.0, "score must never reach 1.0 in the limit")

		prev = sc.Score
	}
}

func TestApply_DiscoveryBonusMovesFurther(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	plain, err := store.Apply(ctx, "user-1", "plain-token", 1.0, NoBonus)
	require.NoError(t, err)

	boosted, err := store.Apply(ctx, "user-1", "discovered-token", 1.0, DiscoveryBonus)
	require.NoError(t, err)

	assert.Greater(t, boosted.Score, plain.Score,
		"exploratory token must move further per event than an exploited one")
}

func TestApply_NegativeRewardClampsAtZero(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var last Score
	var err error

	for i := 0; i < 200; i++ {
		last, err = store.Apply(ctx, "user-1", "cluttered background", -1.0, DiscoveryBonus)
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, last.Score, 0.0, "score must never go below zero")
}

func TestScores_IsolatedPerUser(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Apply(ctx, "user-a", "heritage tweed", 1.0, NoBonus)
	require.NoError(t, err)

	_, err = store.Apply(ctx, "user-b", "raw-edge finish", -0.5, NoBonus)
	require.NoError(t, err)

	a, err := store.Scores(ctx, "user-a")
	require.NoError(t, err)
	b, err := store.Scores(ctx, "user-b")
	require.NoError(t, err)

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, "heritage tweed", a[0].Token)
	assert.Equal(t, "raw-edge finish", b[0].Token)
}

func TestApply_ConcurrentUpdatesLoseNothing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup

	for i := 0; i < writers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := store.Apply(ctx, "user-1", "sculptural volume", 0.8, NoBonus)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	scores, err := store.Scores(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, writers, scores[0].ObservationCount)
}

func TestBlend_ExampleLiteral(t *testing.T) {
	// reward table: save -> +1.0; alpha 0.1; 0.5 + 0.1*(1.0-0.5) = 0.55
	assert.InDelta(t, 0.55, blend(0.5, 1.0, NoBonus), 1e-9)
}

func TestBlend_ClampsBothEnds(t *testing.T) {
	assert.Equal(t, 1.0, blend(0.999, 10.0, DiscoveryBonus))
	assert.Equal(t, 0.0, blend(0.001, -10.0, DiscoveryBonus))
}
