package styleprofile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-ai/server/internal/vlt"
)

// in-memory Store for profiler tests
type fakeStore struct {
	saved   []*Profile
	saveErr error
}

func (f *fakeStore) SaveVersion(_ context.Context, p *Profile) (int, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}

	f.saved = append(f.saved, p)

	return len(f.saved), nil
}

func (f *fakeStore) Latest(_ context.Context, userID string) (*Profile, error) {
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].UserID == userID {
			return f.saved[i], nil
		}
	}

	return nil, nil
}

func (f *fakeStore) Version(_ context.Context, userID string, version int) (*Profile, error) {
	for _, p := range f.saved {
		if p.UserID == userID && p.Version == version {
			return p, nil
		}
	}

	return nil, nil
}

func record(imageID, garment, aesthetic, silhouette, color string, confidence float64) *vlt.Spec {
	return &vlt.Spec{
		ImageID:     imageID,
		GarmentType: garment,
		Attributes:  map[string]string{vlt.AttrSilhouette: silhouette},
		Colors:      map[string]string{vlt.ColorPrimary: color},
		Style:       map[string]string{vlt.StyleAesthetic: aesthetic},
		Confidence:  confidence,
	}
}

func TestBuildProfile_WeightsSumToOneSortedDescending(t *testing.T) {
	store := &fakeStore{}
	profiler := New(store)

	records := []*vlt.Spec{
		record("1", "dress", "minimalist", "structured", "black", 0.9),
		record("2", "dress", "minimalist", "structured", "black", 0.9),
		record("3", "dress", "minimalist", "tailored", "white", 0.8),
		record("4", "blazer", "classic", "fitted", "navy", 0.85),
		record("5", "skirt", "romantic", "flowing", "blush", 0.7),
	}

	profile, err := profiler.BuildProfile(context.Background(), "user-1", records)

	require.NoError(t, err)
	require.NotNil(t, profile)

	var sum float64
	for i, cluster := range profile.Clusters {
		sum += cluster.Weight

		if i > 0 {
			assert.LessOrEqual(t, cluster.Weight, profile.Clusters[i-1].Weight,
				"clusters must be sorted by weight descending")
		}
	}

	assert.InDelta(t, 1.0, sum, 1e-9, "cluster weights must sum to 1")
	assert.Equal(t, 3, profile.Clusters[0].MemberCount, "dominant cluster holds the three dresses")
	assert.Equal(t, 5, profile.ImagesAnalyzed)
	assert.Equal(t, 1, profile.Version)
	require.Len(t, store.saved, 1)
}

func TestBuildProfile_TieBreaksByClusterID(t *testing.T) {
	profiler := New(&fakeStore{})

	// two clusters of equal size and equal weight
	records := []*vlt.Spec{
		record("1", "dress", "romantic", "flowing", "blush", 0.9),
		record("2", "dress", "romantic", "flowing", "blush", 0.9),
		record("3", "blazer", "classic", "fitted", "navy", 0.9),
		record("4", "blazer", "classic", "fitted", "navy", 0.9),
	}

	profile, err := profiler.BuildProfile(context.Background(), "user-1", records)

	require.NoError(t, err)
	require.Len(t, profile.Clusters, 2)
	assert.Less(t, profile.Clusters[0].ID, profile.Clusters[1].ID,
		"equal weight and member count must fall back to lexicographic id")
}

func TestBuildProfile_UnusableRecordsExcludedNotDefaulted(t *testing.T) {
	profiler := NewWithMinRecords(&fakeStore{}, 2)

	records := []*vlt.Spec{
		record("1", "dress", "minimalist", "structured", "black", 0.9),
		record("2", "dress", "minimalist", "structured", "black", 0.9),
		{ImageID: "3"},                       // no garment type, no aesthetic
		{ImageID: "4", GarmentType: "coat"},  // no aesthetic
		{ImageID: "5", Style: map[string]string{vlt.StyleAesthetic: "edgy"}}, // no garment type
	}

	profile, err := profiler.BuildProfile(context.Background(), "user-1", records)

	require.NoError(t, err)
	assert.Equal(t, 2, profile.ImagesAnalyzed, "only usable records count")
}

func TestBuildProfile_InsufficientData(t *testing.T) {
	profiler := New(&fakeStore{}) // default minimum of 3

	records := []*vlt.Spec{
		record("1", "dress", "minimalist", "structured", "black", 0.9),
		record("2", "dress", "minimalist", "structured", "black", 0.9),
	}

	profile, err := profiler.BuildProfile(context.Background(), "user-1", records)

	assert.Nil(t, profile)

	var insufficientErr *InsufficientDataError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 2, insufficientErr.Usable)
	assert.Equal(t, 3, insufficientErr.Required)
}

func TestBuildProfile_PersistFailurePropagates(t *testing.T) {
	profiler := New(&fakeStore{saveErr: errors.New("connection refused")})

	records := []*vlt.Spec{
		record("1", "dress", "minimalist", "structured", "black", 0.9),
		record("2", "dress", "minimalist", "structured", "black", 0.9),
		record("3", "dress", "minimalist", "structured", "black", 0.9),
	}

	_, err := profiler.BuildProfile(context.Background(), "user-1", records)

	assert.Error(t, err)
}

func TestGetProfile_ColdStartReturnsNilNil(t *testing.T) {
	profiler := New(&fakeStore{})

	profile, err := profiler.GetProfile(context.Background(), "never-analyzed")

	require.NoError(t, err, "a missing profile is a valid state, not a failure")
	assert.Nil(t, profile)
}

func TestGetProfileVersion_ReturnsTheRequestedVersion(t *testing.T) {
	store := &fakeStore{}
	profiler := New(store)

	records := []*vlt.Spec{
		record("1", "dress", "minimalist", "structured", "black", 0.9),
		record("2", "dress", "minimalist", "structured", "black", 0.9),
		record("3", "dress", "minimalist", "tailored", "white", 0.8),
	}

	// two analyses produce two immutable versions
	first, err := profiler.BuildProfile(context.Background(), "user-1", records)
	require.NoError(t, err)
	second, err := profiler.BuildProfile(context.Background(), "user-1", records)
	require.NoError(t, err)
	require.Greater(t, second.Version, first.Version)

	got, err := profiler.GetProfileVersion(context.Background(), "user-1", first.Version)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.Version, got.Version)

	latest, err := profiler.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, second.Version, latest.Version)

	missing, err := profiler.GetProfileVersion(context.Background(), "user-1", 99)
	require.NoError(t, err, "an absent version is a valid state, not a failure")
	assert.Nil(t, missing)

	_, err = profiler.GetProfileVersion(context.Background(), "user-1", 0)
	assert.Error(t, err)
}

func TestBuildProfile_DominantAttributesAndSignature(t *testing.T) {
	profiler := New(&fakeStore{})

	records := []*vlt.Spec{
		record("1", "dress", "minimalist", "structured", "black", 0.9),
		record("2", "dress", "minimalist", "structured", "black", 0.8),
		record("3", "dress", "minimalist", "flowing", "white", 0.7),
	}

	profile, err := profiler.BuildProfile(context.Background(), "user-1", records)

	require.NoError(t, err)
	require.Len(t, profile.Clusters, 1)

	dominant := profile.Clusters[0].DominantAttributes
	assert.Equal(t, "structured", dominant[vlt.AttrSilhouette])
	assert.Equal(t, "black", dominant["color"])
	assert.Equal(t, "minimalist", dominant["style_"+vlt.StyleAesthetic])

	assert.Equal(t, []string{"black", "white"}, profile.SignatureElements.TopColors)
	assert.InDelta(t, 0.8, profile.Confidence, 1e-9)
	assert.InDelta(t, 1.0, profile.Statistics.LargestClusterShare, 1e-9)
}

func TestStyleName_FamilyTable(t *testing.T) {
	cases := []struct {
		dominant map[string]string
		want     string
	}{
		{map[string]string{"style_aesthetic": "minimalist"}, "Minimalist Tailoring"},
		{map[string]string{"silhouette": "fluid", "fabrication": "silk"}, "Fluid Evening"},
		{map[string]string{"style_aesthetic": "avant-garde"}, "Experimental Edge"},
		{map[string]string{"fabrication": "jersey"}, "Sporty Chic"},
		{map[string]string{"style_aesthetic": "bohemian"}, "Romantic Bohemian"},
		{map[string]string{"fabrication": "denim"}, "Urban Contemporary"},
		{map[string]string{"style_overall": "business"}, "Classic Refined"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StyleName(tc.dominant), "dominant %v", tc.dominant)
	}
}

func TestStyleName_DescriptiveFallback(t *testing.T) {
	name := StyleName(map[string]string{
		"style_aesthetic": "nautical",
		"silhouette":      "column",
	})

	assert.Equal(t, "Nautical Mix", name)
}
