package styleprofile

import (
	"context"
	"fmt"
	"time"
)

// StyleCluster is one aesthetic grouping of a designer's portfolio. Clusters
// are owned by their profile and have no independent lifecycle.
type Cluster struct {
	ID                 string            `json:"id"`    // garment-family/aesthetic, stable per grouping
	Label              string            `json:"label"` // display name, e.g. "Minimalist Tailoring"
	DominantAttributes map[string]string `json:"dominant_attributes"`
	Weight             float64           `json:"weight"` // share of portfolio images, 0-1
	MemberCount        int               `json:"member_count"`
}

// aggregate distributions computed alongside the clusters
type Statistics struct {
	GarmentDistribution map[string]int `json:"garment_distribution"`
	ColorDistribution   map[string]int `json:"color_distribution"`
	StyleDistribution   map[string]int `json:"style_distribution"`
	DiversityScore      float64        `json:"diversity_score"`
	LargestClusterShare float64        `json:"largest_cluster_share"`
}

// the designer's recurring signature elements across the portfolio
type SignatureElements struct {
	TopColors      []string `json:"top_colors"`
	TopSilhouettes []string `json:"top_silhouettes"`
}

// Profile is a designer's learned aesthetic summary. Profiles are versioned
// and replaced wholesale on re-analysis, never partially mutated.
type Profile struct {
	UserID            string            `json:"user_id"`
	Version           int               `json:"version"`
	Clusters          []Cluster         `json:"clusters"` // most dominant first
	DominantStyle     string            `json:"dominant_style"`
	SignatureElements SignatureElements `json:"signature_elements"`
	Confidence        float64           `json:"confidence"`
	ImagesAnalyzed    int               `json:"images_analyzed"`
	Statistics        Statistics        `json:"statistics"`
	CreatedAt         time.Time         `json:"created_at"`
}

// persistence contract for versioned profiles
type Store interface {
	// persists p as a new version and returns the version assigned
	SaveVersion(ctx context.Context, p *Profile) (int, error)

	// returns the latest profile for the user, or (nil, nil) when none exists
	Latest(ctx context.Context, userID string) (*Profile, error)

	// returns one specific profile version, or (nil, nil) when the user has
	// no such version
	Version(ctx context.Context, userID string, version int) (*Profile, error)
}

// returned when too few usable analysis records exist to build a profile.
// Local and user-correctable: upload more images, do not retry automatically.
type InsufficientDataError struct {
	Usable   int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient analysis data: %d usable records, %d required", e.Usable, e.Required)
}
