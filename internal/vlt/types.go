// Package vlt holds the shapes produced by the external vision/garment
// analysis service. The service itself is an external collaborator; records
// arrive fully formed in API requests.
package vlt

import "strings"

// attribute keys used across attribute maps
const (
	AttrSilhouette  = "silhouette"
	AttrNeckline    = "neckline"
	AttrSleeve      = "sleeveLength"
	AttrLength      = "length"
	AttrWaistline   = "waistline"
	AttrFabrication = "fabrication"

	ColorPrimary = "primary"
	ColorFinish  = "finish"

	StyleOverall   = "overall"
	StyleFormality = "formality"
	StyleAesthetic = "aesthetic"
	StyleMood      = "mood"
)

// Spec is a single-image garment analysis record
type Spec struct {
	ImageID     string            `json:"image_id"`
	GarmentType string            `json:"garment_type"`
	Attributes  map[string]string `json:"attributes"` // silhouette, neckline, sleeveLength, length, waistline, fabrication
	Colors      map[string]string `json:"colors"`     // primary, finish
	Style       map[string]string `json:"style"`      // overall, formality, aesthetic, mood
	Confidence  float64           `json:"confidence"`
	Embedding   []float32         `json:"embedding,omitempty"`
}

// returns the aesthetic label, falling back to the overall style
func (s *Spec) Aesthetic() string {
	if s == nil {
		return ""
	}

	if v := s.Style[StyleAesthetic]; v != "" {
		return v
	}

	return s.Style[StyleOverall]
}

// returns a named attribute, empty when absent
func (s *Spec) Attribute(key string) string {
	if s == nil {
		return ""
	}

	return s.Attributes[key]
}

// returns the primary color, empty when absent
func (s *Spec) PrimaryColor() string {
	if s == nil {
		return ""
	}

	return s.Colors[ColorPrimary]
}

// Usable reports whether the record carries the attributes clustering
// requires. Records failing this check are excluded, not defaulted.
func (s *Spec) Usable() bool {
	if s == nil {
		return false
	}

	return strings.TrimSpace(s.GarmentType) != "" && strings.TrimSpace(s.Aesthetic()) != ""
}
