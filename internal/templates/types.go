package templates

// one ordered structural slot of a template (category plus candidate phrases)
type Slot struct {
	Category string   `json:"category"`
	Phrases  []string `json:"phrases"`
}

// curated modifier phrase pools, ordered by expected reward
type ModifierPools struct {
	HighReward   []string `json:"high_reward"`
	MediumReward []string `json:"medium_reward"`
}

// Template is a slot-and-modifier skeleton for one aesthetic family.
// Templates are static reference data: versionless, read-only.
type Template struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Structure     []Slot        `json:"structure"`
	ModifierPools ModifierPools `json:"modifier_pools"`
}

// returns all modifier phrases in pool insertion order (high before medium)
func (t Template) Modifiers() []string {
	out := make([]string, 0, len(t.ModifierPools.HighReward)+len(t.ModifierPools.MediumReward))
	out = append(out, t.ModifierPools.HighReward...)
	out = append(out, t.ModifierPools.MediumReward...)
	return out
}

// reports whether token belongs to either modifier pool
func (t Template) InPools(token string) bool {
	for _, m := range t.ModifierPools.HighReward {
		if m == token {
			return true
		}
	}

	for _, m := range t.ModifierPools.MediumReward {
		if m == token {
			return true
		}
	}

	return false
}

// returns the position of token in pool insertion order, or -1
func (t Template) PoolIndex(token string) int {
	for i, m := range t.Modifiers() {
		if m == token {
			return i
		}
	}

	return -1
}
