package styleprofile

import "strings"

// Maps a cluster's dominant attributes to one of the platform's style family
// names. Rules are checked in priority order; the first family whose cues
// match wins. Falls back to a descriptive two-word name.

type namingRule struct {
	name string
	cues map[string][]string // dominant-attribute key -> substrings that match
}

var namingRules = []namingRule{
	{
		name: "Minimalist Tailoring",
		cues: map[string][]string{
			"style_aesthetic": {"minimalist", "clean"},
			"silhouette":      {"structured", "tailored"},
			"style_overall":   {"professional"},
			"style_formality": {"formal"},
			"fabrication":     {"wool", "suiting"},
		},
	},
	{
		name: "Fluid Evening",
		cues: map[string][]string{
			"style_aesthetic": {"elegant", "sophisticated"},
			"silhouette":      {"fluid", "flowing", "a-line"},
			"style_overall":   {"evening", "formal"},
			"fabrication":     {"silk", "charmeuse"},
			"color":           {"glossy"},
		},
	},
	{
		name: "Experimental Edge",
		cues: map[string][]string{
			"style_aesthetic": {"experimental", "avant", "edgy"},
			"silhouette":      {"deconstructed", "asymmetric"},
			"fabrication":     {"technical", "innovative"},
			"style_overall":   {"unconventional"},
		},
	},
	{
		name: "Sporty Chic",
		cues: map[string][]string{
			"style_aesthetic": {"sporty", "athletic", "casual"},
			"silhouette":      {"relaxed", "loose"},
			"style_overall":   {"sporty", "casual"},
			"fabrication":     {"jersey", "knit"},
		},
	},
	{
		name: "Romantic Bohemian",
		cues: map[string][]string{
			"style_aesthetic": {"romantic", "bohemian", "feminine"},
			"silhouette":      {"flowing", "draped"},
			"style_overall":   {"boho", "artistic"},
			"fabrication":     {"chiffon", "lace"},
		},
	},
	{
		name: "Urban Contemporary",
		cues: map[string][]string{
			"style_aesthetic": {"contemporary", "modern", "urban"},
			"style_overall":   {"versatile", "smart-casual"},
			"fabrication":     {"cotton", "denim"},
		},
	},
	{
		name: "Classic Refined",
		cues: map[string][]string{
			"style_aesthetic": {"classic", "refined", "traditional"},
			"silhouette":      {"fitted", "traditional"},
			"style_overall":   {"business", "polished"},
		},
	},
}

// derives a style family name from a cluster's dominant attributes
func StyleName(dominant map[string]string) string {
	lower := func(key string) string {
		return strings.ToLower(dominant[key])
	}

	for _, rule := range namingRules {
		for key, subs := range rule.cues {
			value := lower(key)
			if value == "" {
				continue
			}

			for _, sub := range subs {
				if strings.Contains(value, sub) {
					return rule.name
				}
			}
		}
	}

	return descriptiveName(dominant)
}

// builds a two-word fallback name from whatever attributes are present
func descriptiveName(dominant map[string]string) string {
	aesthetic := strings.ToLower(dominant["style_aesthetic"])
	overall := strings.ToLower(dominant["style_overall"])
	silhouette := strings.ToLower(dominant["silhouette"])
	fabrication := strings.ToLower(dominant["fabrication"])

	first := "Contemporary"
	if aesthetic != "" {
		first = titleCase(aesthetic)
	} else if overall != "" {
		first = titleCase(overall)
	}

	second := "Mix"
	switch {
	case silhouette == "tailored" || silhouette == "structured":
		second = "Tailoring"
	case silhouette == "fluid" || silhouette == "flowing" || silhouette == "draped":
		second = "Flow"
	case fabrication != "":
		second = titleCase(fabrication)
	}

	return first + " " + second
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
