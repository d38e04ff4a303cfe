package styleprofile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/atelier-ai/server/internal/logger"
	"github.com/atelier-ai/server/internal/vlt"
)

const defaultMinRecords = 3

// Profiler builds versioned style profiles from analyzed portfolio images
type Profiler struct {
	store      Store
	minRecords int
}

func New(store Store) *Profiler {
	return &Profiler{
		store:      store,
		minRecords: defaultMinRecords,
	}
}

// creates a profiler with a custom minimum usable-record count
func NewWithMinRecords(store Store, minRecords int) *Profiler {
	if minRecords < 1 {
		minRecords = 1
	}

	return &Profiler{
		store:      store,
		minRecords: minRecords,
	}
}

// BuildProfile groups a designer's analyzed images into style clusters and
// persists the result as a new profile version. Records missing required
// attributes are excluded, not defaulted. Returns InsufficientDataError when
// fewer than the configured minimum remain after filtering.
func (p *Profiler) BuildProfile(ctx context.Context, userID string, records []*vlt.Spec) (*Profile, error) {
	usable := make([]*vlt.Spec, 0, len(records))
	for _, r := range records {
		if r.Usable() {
			usable = append(usable, r)
		}
	}

	if dropped := len(records) - len(usable); dropped > 0 {
		logger.Debug("excluded unusable analysis records",
			"user_id", userID,
			"dropped", dropped,
		)
	}

	if len(usable) < p.minRecords {
		return nil, &InsufficientDataError{Usable: len(usable), Required: p.minRecords}
	}

	clusters := buildClusters(usable)

	profile := &Profile{
		UserID:            userID,
		Clusters:          clusters,
		DominantStyle:     clusters[0].Label,
		SignatureElements: signatureElements(usable),
		Confidence:        averageConfidence(usable),
		ImagesAnalyzed:    len(usable),
		Statistics:        computeStatistics(usable, clusters),
	}

	version, err := p.store.SaveVersion(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to persist style profile: %w", err)
	}

	profile.Version = version

	logger.Info("style profile built",
		"user_id", userID,
		"version", version,
		"clusters", len(clusters),
		"dominant_style", profile.DominantStyle,
	)

	return profile, nil
}

// GetProfile returns the latest profile for the user, or (nil, nil) when no
// profile exists yet. Cold start is a valid state, not a failure.
func (p *Profiler) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	profile, err := p.store.Latest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load style profile: %w", err)
	}

	return profile, nil
}

// GetProfileVersion returns one historical profile version, or (nil, nil)
// when the user never reached that version. Old versions are immutable, so
// this is how clients diff how a designer's style drifted.
func (p *Profiler) GetProfileVersion(ctx context.Context, userID string, version int) (*Profile, error) {
	if version < 1 {
		return nil, fmt.Errorf("profile version must be positive, got %d", version)
	}

	profile, err := p.store.Version(ctx, userID, version)
	if err != nil {
		return nil, fmt.Errorf("failed to load style profile version: %w", err)
	}

	return profile, nil
}

// groups records by garment-family + aesthetic, weights each group by its
// share of the portfolio, and sorts descending by weight (ties: larger
// member count, then lexicographic cluster id)
func buildClusters(records []*vlt.Spec) []Cluster {
	groups := make(map[string][]*vlt.Spec)

	for _, r := range records {
		key := garmentFamily(r.GarmentType) + "/" + slug(r.Aesthetic())
		groups[key] = append(groups[key], r)
	}

	clusters := make([]Cluster, 0, len(groups))
	total := float64(len(records))

	for id, members := range groups {
		dominant := dominantAttributes(members)

		clusters = append(clusters, Cluster{
			ID:                 id,
			Label:              StyleName(dominant),
			DominantAttributes: dominant,
			Weight:             float64(len(members)) / total,
			MemberCount:        len(members),
		})
	}

	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].Weight != clusters[j].Weight {
			return clusters[i].Weight > clusters[j].Weight
		}

		if clusters[i].MemberCount != clusters[j].MemberCount {
			return clusters[i].MemberCount > clusters[j].MemberCount
		}

		return clusters[i].ID < clusters[j].ID
	})

	return clusters
}

// finds the most frequent value for each attribute across a cluster's
// members (ties broken by lexicographic order for determinism)
func dominantAttributes(members []*vlt.Spec) map[string]string {
	counts := make(map[string]map[string]int)

	bump := func(key, value string) {
		if value == "" {
			return
		}

		if counts[key] == nil {
			counts[key] = make(map[string]int)
		}

		counts[key][value]++
	}

	for _, m := range members {
		for k, v := range m.Attributes {
			bump(k, v)
		}

		bump("color", m.PrimaryColor())

		for k, v := range m.Style {
			bump("style_"+k, v)
		}
	}

	dominant := make(map[string]string, len(counts))

	for key, values := range counts {
		best, bestCount := "", 0
		for value, n := range values {
			if n > bestCount || (n == bestCount && value < best) {
				best, bestCount = value, n
			}
		}

		dominant[key] = best
	}

	return dominant
}

func signatureElements(records []*vlt.Spec) SignatureElements {
	colors := make(map[string]int)
	silhouettes := make(map[string]int)

	for _, r := range records {
		if c := r.PrimaryColor(); c != "" {
			colors[c]++
		}

		if s := r.Attribute(vlt.AttrSilhouette); s != "" {
			silhouettes[s]++
		}
	}

	return SignatureElements{
		TopColors:      topValues(colors, 3),
		TopSilhouettes: topValues(silhouettes, 3),
	}
}

func computeStatistics(records []*vlt.Spec, clusters []Cluster) Statistics {
	garments := make(map[string]int)
	colors := make(map[string]int)
	styles := make(map[string]int)

	for _, r := range records {
		garments[r.GarmentType]++

		if c := r.PrimaryColor(); c != "" {
			colors[c]++
		}

		if s := r.Style[vlt.StyleOverall]; s != "" {
			styles[s]++
		}
	}

	return Statistics{
		GarmentDistribution: garments,
		ColorDistribution:   colors,
		StyleDistribution:   styles,
		DiversityScore:      float64(len(clusters)) / float64(len(records)),
		LargestClusterShare: clusters[0].Weight,
	}
}

func averageConfidence(records []*vlt.Spec) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Confidence
	}

	return sum / float64(len(records))
}

// returns the n most frequent keys, ties broken lexicographically
func topValues(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}

		return keys[i] < keys[j]
	})

	if len(keys) > n {
		keys = keys[:n]
	}

	return keys
}

// collapses garment types into coarse families for cluster grouping
func garmentFamily(garmentType string) string {
	g := strings.ToLower(strings.TrimSpace(garmentType))

	switch {
	case strings.Contains(g, "gown"), strings.Contains(g, "dress"), strings.Contains(g, "jumpsuit"):
		return "dresses"
	case strings.Contains(g, "suit"), strings.Contains(g, "blazer"), strings.Contains(g, "trouser"),
		strings.Contains(g, "pant"), strings.Contains(g, "waistcoat"):
		return "tailoring"
	case strings.Contains(g, "coat"), strings.Contains(g, "jacket"), strings.Contains(g, "parka"),
		strings.Contains(g, "trench"):
		return "outerwear"
	case strings.Contains(g, "skirt"):
		return "skirts"
	case strings.Contains(g, "top"), strings.Contains(g, "blouse"), strings.Contains(g, "shirt"),
		strings.Contains(g, "sweater"), strings.Contains(g, "knit"), strings.Contains(g, "cardigan"):
		return "tops"
	default:
		return g
	}
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
