package templates

import (
	"strings"

	"github.com/atelier-ai/server/internal/styleprofile"
	"github.com/atelier-ai/server/internal/vlt"
)

// maps style family names (as produced by profile clustering) to template ids
var nameToID = map[string]string{
	"minimalist tailoring": "minimalist-tailoring",
	"fluid evening":        "fluid-evening",
	"experimental edge":    "experimental-edge",
	"sporty chic":          "sporty-chic",
	"romantic bohemian":    "romantic-bohemian",
	"urban contemporary":   "urban-contemporary",
	"classic refined":      "classic-refined",
}

// keyword fallback for raw aesthetic labels that are not style family names
var aestheticKeywords = []struct {
	id       string
	keywords []string
}{
	{"minimalist-tailoring", []string{"minimalist", "clean", "tailored", "structured", "professional"}},
	{"fluid-evening", []string{"elegant", "evening", "sophisticated", "glamorous", "fluid"}},
	{"experimental-edge", []string{"experimental", "avant", "edgy", "deconstructed", "unconventional"}},
	{"sporty-chic", []string{"sporty", "athletic", "athleisure", "active"}},
	{"romantic-bohemian", []string{"romantic", "bohemian", "boho", "feminine", "artistic"}},
	{"classic-refined", []string{"classic", "refined", "traditional", "heritage", "polished"}},
	{"urban-contemporary", []string{"contemporary", "modern", "urban", "casual", "versatile"}},
}

// Select resolves the template for a generation. Pure, deterministic lookup:
// explicit override first, then the profile's dominant cluster, then the raw
// per-image aesthetic, then the default template.
func Select(profile *styleprofile.Profile, fallback *vlt.Spec, overrideID string) Template {
	if overrideID != "" {
		if t, ok := ByID(overrideID); ok {
			return t
		}
	}

	if profile != nil && len(profile.Clusters) > 0 {
		if t, ok := byLabel(profile.Clusters[0].Label); ok {
			return t
		}

		if t, ok := byAesthetic(profile.DominantStyle); ok {
			return t
		}
	}

	if fallback != nil {
		if t, ok := byAesthetic(fallback.Aesthetic()); ok {
			return t
		}
	}

	return Default()
}

func byLabel(label string) (Template, bool) {
	id, ok := nameToID[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return Template{}, false
	}

	return ByID(id)
}

func byAesthetic(label string) (Template, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return Template{}, false
	}

	if t, ok := byLabel(l); ok {
		return t, true
	}

	for _, entry := range aestheticKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(l, kw) {
				return ByID(entry.id)
			}
		}
	}

	return Template{}, false
}
