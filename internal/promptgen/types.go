// Package promptgen assembles generation prompts from a template, the user's
// learned token scores, and the per-image garment analysis. The assembled
// prompt is partitioned into four segments; downstream feedback scoring
// depends on that partition being preserved verbatim.
package promptgen

const (
	// probability of taking the explore branch when the caller does not
	// force a mode
	ExploreProbability = 0.2

	// learned tokens included per prompt unless overridden
	DefaultTopN = 3

	// exploratory tokens drawn from other templates' pools
	DefaultExploreCount = 2
)

// Segments is the token partition of one assembled prompt. Core tokens are
// structural, learned tokens come from the user's score table, exploratory
// tokens are discovery candidates, user tokens are caller-authored. Only
// learned and exploratory tokens are ever scored.
type Segments struct {
	Core        []string `json:"core"`
	Learned     []string `json:"learned"`
	Exploratory []string `json:"exploratory"`
	User        []string `json:"user"`
}

// All returns every token across the four segments in prompt order
func (s Segments) All() []string {
	out := make([]string, 0, len(s.Core)+len(s.Learned)+len(s.Exploratory)+len(s.User))
	out = append(out, s.Core...)
	out = append(out, s.Learned...)
	out = append(out, s.Exploratory...)
	out = append(out, s.User...)
	return out
}

// Result is one assembled prompt plus the breakdown callers must persist
type Result struct {
	MainPrompt     string   `json:"main_prompt"`
	NegativePrompt string   `json:"negative_prompt"`
	TemplateID     string   `json:"template_id"`
	ExploreMode    bool     `json:"explore_mode"`
	Segments       Segments `json:"segments"`
}

// Options controls one assembly run. ExploreMode nil means "sample"; a
// non-nil value forces the branch regardless of the random source.
type Options struct {
	UserID        string
	ExploreMode   *bool
	UserModifiers []string
	TemplateID    string // explicit template override, empty for automatic selection
	TopN          int    // 0 means DefaultTopN
	ExploreCount  int    // 0 means DefaultExploreCount
}
