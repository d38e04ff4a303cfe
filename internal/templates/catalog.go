package templates

// The catalogue mirrors the platform's supported aesthetic families. Slot
// categories are ordered the way the final prompt reads: quality, composition,
// garment, style, lighting.

const DefaultTemplateID = "urban-contemporary"

var catalog = []Template{
	{
		ID:   "minimalist-tailoring",
		Name: "Minimalist Tailoring",
		Structure: []Slot{
			{Category: "quality", Phrases: []string{"professional fashion photography", "editorial quality", "8k detail"}},
			{Category: "composition", Phrases: []string{"full-body studio shot", "clean seamless backdrop", "centered composition"}},
			{Category: "garment", Phrases: []string{"precisely tailored", "structured shoulders", "clean lines"}},
			{Category: "style", Phrases: []string{"minimalist aesthetic", "understated elegance", "monochrome palette"}},
			{Category: "lighting", Phrases: []string{"soft diffused studio lighting", "high-key lighting"}},
		},
		ModifierPools: ModifierPools{
			HighReward:   []string{"architectural silhouette", "razor-sharp lapels", "immaculate wool suiting", "sculptural minimalism"},
			MediumReward: []string{"matte fabric finish", "tonal layering", "hidden closures", "precise topstitching"},
		},
	},
	{
		ID:   "fluid-evening",
		Name: "Fluid Evening",
		Structure: []Slot{
			{Category: "quality", Phrases: []string{"professional fashion photography", "haute couture editorial", "8k detail"}},
			{Category: "composition", Phrases: []string{"full-length gown shot", "dramatic three-quarter angle", "flowing motion captured"}},
			{Category: "garment", Phrases: []string{"bias-cut drape", "liquid silhouette", "floor-sweeping hem"}},
			{Category: "style", Phrases: []string{"evening elegance", "red-carpet glamour", "sophisticated allure"}},
			{Category: "lighting", Phrases: []string{"cinematic rim lighting", "warm golden-hour glow"}},
		},
		ModifierPools: ModifierPools{
			HighReward:   []string{"liquid silk charmeuse", "cascading drape", "haute couture", "luminous satin sheen"},
			MediumReward: []string{"delicate beadwork", "plunging back", "fluid train", "champagne palette"},
		},
	},
	{
		ID:   "experimental-edge",
		Name: "Experimental Edge",
		Structure: []Slot{
			{Category: "quality", Phrases: []string{"avant-garde fashion photography", "conceptual editorial", "8k detail"}},
			{Category: "composition", Phrases: []string{"dynamic asymmetric framing", "stark industrial backdrop", "unconventional pose"}},
			{Category: "garment", Phrases: []string{"deconstructed construction", "asymmetric hemline", "exaggerated proportions"}},
			{Category: "style", Phrases: []string{"avant-garde aesthetic", "conceptual fashion", "boundary-pushing design"}},
			{Category: "lighting", Phrases: []string{"hard directional lighting", "dramatic chiaroscuro"}},
		},
		ModifierPools: ModifierPools{
			HighReward:   []string{"deconstructed tailoring", "raw-edge finish", "sculptural volume", "technical fabric innovation"},
			MediumReward: []string{"exposed seams", "asymmetric closure", "unexpected cutouts", "industrial hardware"},
		},
	},
	{
		ID:   "sporty-chic",
		Name: "Sporty Chic",
		Structure: []Slot{
			{Category: "quality", Phrases: []string{"professional fashion photography", "athleisure editorial", "8k detail"}},
			{Category: "composition", Phrases: []string{"street-style full-body shot", "urban outdoor setting", "movement captured mid-stride"}},
			{Category: "garment", Phrases: []string{"relaxed athletic fit", "performance detailing", "layered separates"}},
			{Category: "style", Phrases: []string{"athleisure aesthetic", "effortless sport luxe", "modern casual"}},
			{Category: "lighting", Phrases: []string{"bright natural daylight", "crisp outdoor lighting"}},
		},
		ModifierPools: ModifierPools{
			HighReward:   []string{"technical jersey", "sport luxe layering", "bonded seams", "sleek performance knit"},
			MediumReward: []string{"drawstring detailing", "contrast piping", "mesh panels", "elasticated cuffs"},
		},
	},
	{
		ID:   "romantic-bohemian",
		Name: "Romantic Bohemian",
		Structure: []Slot{
			{Category: "quality", Phrases: []string{"professional fashion photography", "dreamy editorial", "8k detail"}},
			{Category: "composition", Phrases: []string{"golden-field outdoor shot", "wind-caught fabric", "soft-focus background"}},
			{Category: "garment", Phrases: []string{"flowing tiered skirt", "billowing sleeves", "draped layers"}},
			{Category: "style", Phrases: []string{"bohemian romance", "artistic femininity", "free-spirited styling"}},
			{Category: "lighting", Phrases: []string{"soft golden-hour backlight", "hazy romantic glow"}},
		},
		ModifierPools: ModifierPools{
			HighReward:   []string{"hand-embroidered chiffon", "delicate lacework", "ethereal layering", "vintage florals"},
			MediumReward: []string{"ruffled trim", "crochet inserts", "tasselled ties", "faded botanical print"},
		},
	},
	{
		ID:   "urban-contemporary",
		Name: "Urban Contemporary",
		Structure: []Slot{
			{Category: "quality", Phrases: []string{"professional fashion photography", "contemporary editorial", "8k detail"}},
			{Category: "composition", Phrases: []string{"city-street full-body shot", "architectural backdrop", "candid editorial pose"}},
			{Category: "garment", Phrases: []string{"versatile modern cut", "smart-casual layering", "refined everyday wear"}},
			{Category: "style", Phrases: []string{"contemporary urban aesthetic", "polished street style", "modern versatility"}},
			{Category: "lighting", Phrases: []string{"overcast soft daylight", "neutral city light"}},
		},
		ModifierPools: ModifierPools{
			HighReward:   []string{"premium cotton twill", "elevated denim", "clean urban layering", "modern proportions"},
			MediumReward: []string{"utility pockets", "contrast stitching", "relaxed drape", "muted earth tones"},
		},
	},
	{
		ID:   "classic-refined",
		Name: "Classic Refined",
		Structure: []Slot{
			{Category: "quality", Phrases: []string{"professional fashion photography", "timeless editorial", "8k detail"}},
			{Category: "composition", Phrases: []string{"classic studio portrait", "elegant neutral backdrop", "poised stance"}},
			{Category: "garment", Phrases: []string{"impeccably fitted", "traditional construction", "polished finish"}},
			{Category: "style", Phrases: []string{"timeless refinement", "heritage elegance", "business polish"}},
			{Category: "lighting", Phrases: []string{"balanced softbox lighting", "classic portrait lighting"}},
		},
		ModifierPools: ModifierPools{
			HighReward:   []string{"heritage tweed", "mother-of-pearl buttons", "hand-finished seams", "timeless tailoring"},
			MediumReward: []string{"subtle herringbone", "silk lining", "classic double vents", "refined neutrals"},
		},
	},
}

// returns the full template catalogue in stable order
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// looks up a template by id
func ByID(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}

	return Template{}, false
}

// returns the designated default template
func Default() Template {
	t, _ := ByID(DefaultTemplateID)
	return t
}
