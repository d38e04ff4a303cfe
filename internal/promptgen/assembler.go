package promptgen

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/atelier-ai/server/internal/logger"
	"github.com/atelier-ai/server/internal/styleprofile"
	"github.com/atelier-ai/server/internal/templates"
	"github.com/atelier-ai/server/internal/tokenscore"
	"github.com/atelier-ai/server/internal/vlt"
)

// Assembler builds prompts from templates, learned token scores, and garment
// analysis. It reads the score store but never writes to it.
type Assembler struct {
	scores tokenscore.Store
	rng    RandSource
}

func New(scores tokenscore.Store) *Assembler {
	return &Assembler{scores: scores, rng: systemRand{}}
}

// NewWithRand injects a random source; tests use this to make the
// explore/exploit decision and the exploratory draw deterministic
func NewWithRand(scores tokenscore.Store, rng RandSource) *Assembler {
	return &Assembler{scores: scores, rng: rng}
}

// Generate assembles one prompt. A nil profile is a designed fallback, not an
// error: the core segment degrades to a richer description built from the
// analysis record alone.
func (a *Assembler) Generate(ctx context.Context, spec *vlt.Spec, profile *styleprofile.Profile, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	exploreCount := opts.ExploreCount
	if exploreCount <= 0 {
		exploreCount = DefaultExploreCount
	}

	tmpl := templates.Select(profile, spec, opts.TemplateID)

	if profile == nil {
		log.Warn("assembling prompt without style profile, degrading to analysis-based core",
			"user_id", opts.UserID,
			"template_id", tmpl.ID,
		)
	}

	core := a.coreSegment(tmpl, spec, profile)

	explore := opts.ExploreMode != nil && *opts.ExploreMode
	if opts.ExploreMode == nil {
		explore = a.rng.Float64() < ExploreProbability
	}

	scores, err := a.scores.Scores(ctx, opts.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load token scores: %w", err)
	}

	learned := learnedSegment(tmpl, scores, topN)
	user := userSegment(opts.UserModifiers)

	var exploratory []string
	if explore {
		exploratory = a.exploratorySegment(tmpl, core, learned, user, scores, exploreCount)
	}

	segments := Segments{
		Core:        core,
		Learned:     learned,
		Exploratory: exploratory,
		User:        user,
	}

	return &Result{
		MainPrompt:     strings.Join(segments.All(), ", "),
		NegativePrompt: negativePrompt(),
		TemplateID:     tmpl.ID,
		ExploreMode:    explore,
		Segments:       segments,
	}, nil
}

// fills the template's structural slots with analysis and profile attributes.
// Core tokens anchor output consistency: always present, never scored, never
// randomized.
func (a *Assembler) coreSegment(tmpl templates.Template, spec *vlt.Spec, profile *styleprofile.Profile) []string {
	core := make([]string, 0, len(tmpl.Structure)+4)

	for _, slot := range tmpl.Structure {
		switch slot.Category {
		case "garment":
			if desc := garmentDescription(spec); desc != "" {
				core = append(core, desc)
				continue
			}

			core = append(core, firstPhrase(slot))
		case "style":
			if profile != nil && profile.DominantStyle != "" {
				core = append(core, strings.ToLower(profile.DominantStyle)+" aesthetic")
				continue
			}

			core = append(core, firstPhrase(slot))
		default:
			core = append(core, firstPhrase(slot))
		}
	}

	// without a profile, lean harder on the per-image analysis so the core
	// is richer than a bare template skeleton
	if profile == nil && spec != nil {
		for _, extra := range []string{
			spec.Aesthetic(),
			spec.Style[vlt.StyleMood],
			spec.Colors[vlt.ColorFinish],
			spec.Attribute(vlt.AttrFabrication),
		} {
			extra = strings.TrimSpace(extra)
			if extra != "" && !contains(core, extra) {
				core = append(core, extra)
			}
		}
	}

	return core
}

// builds the garment phrase from the analysis record, e.g.
// "emerald bias-cut silk dress"
func garmentDescription(spec *vlt.Spec) string {
	if spec == nil {
		return ""
	}

	parts := make([]string, 0, 4)

	for _, p := range []string{
		spec.PrimaryColor(),
		spec.Attribute(vlt.AttrSilhouette),
		spec.Attribute(vlt.AttrFabrication),
		spec.GarmentType,
	} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, " ")
}

// ranks the user's scored tokens within the current template's modifier pools
// and takes the top n. Ties break on observation count, then pool insertion
// order, so the ranking is fully deterministic.
func learnedSegment(tmpl templates.Template, scores []tokenscore.Score, n int) []string {
	eligible := make([]tokenscore.Score, 0, len(scores))

	for _, sc := range scores {
		if tmpl.InPools(sc.Token) {
			eligible = append(eligible, sc)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Score != eligible[j].Score {
			return eligible[i].Score > eligible[j].Score
		}

		if eligible[i].ObservationCount != eligible[j].ObservationCount {
			return eligible[i].ObservationCount > eligible[j].ObservationCount
		}

		return tmpl.PoolIndex(eligible[i].Token) < tmpl.PoolIndex(eligible[j].Token)
	})

	if len(eligible) > n {
		eligible = eligible[:n]
	}

	out := make([]string, len(eligible))
	for i, sc := range eligible {
		out[i] = sc.Token
	}

	return out
}

// draws discovery candidates from other templates' modifier pools. Unscored
// tokens are preferred: the point of exploration is surfacing net-new
// candidates, not re-rolling ones the user has already judged.
func (a *Assembler) exploratorySegment(current templates.Template, core, learned, user []string, scores []tokenscore.Score, n int) []string {
	scored := make(map[string]bool, len(scores))
	for _, sc := range scores {
		scored[sc.Token] = true
	}

	// user tokens are excluded too: a caller-authored phrase that happens to
	// match a pool entry must not be re-drawn into a scorable segment
	taken := make(map[string]bool, len(core)+len(learned)+len(user))
	for _, t := range core {
		taken[t] = true
	}
	for _, t := range learned {
		taken[t] = true
	}
	for _, t := range user {
		taken[t] = true
	}

	var fresh, seen []string

	for _, tmpl := range templates.All() {
		if tmpl.ID == current.ID {
			continue
		}

		for _, token := range tmpl.Modifiers() {
			if taken[token] || current.InPools(token) {
				continue
			}

			taken[token] = true

			if scored[token] {
				seen = append(seen, token)
			} else {
				fresh = append(fresh, token)
			}
		}
	}

	shuffle(a.rng, fresh)
	shuffle(a.rng, seen)

	candidates := append(fresh, seen...)
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	return candidates
}

// user modifiers are trusted free text: trimmed, empties dropped, otherwise
// passed through verbatim
func userSegment(modifiers []string) []string {
	var out []string

	for _, m := range modifiers {
		m = strings.TrimSpace(m)
		if m != "" {
			out = append(out, m)
		}
	}

	return out
}

func firstPhrase(slot templates.Slot) string {
	if len(slot.Phrases) == 0 {
		return ""
	}

	return slot.Phrases[0]
}

func contains(tokens []string, token string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t, token) {
			return true
		}
	}

	return false
}
