package promptgen

import "math/rand/v2"

// RandSource is the only source of randomness in prompt assembly. It exists
// as an interface so tests can force the explore/exploit branch and make
// exploratory draws deterministic.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) IntN(n int) int   { return rand.IntN(n) }

// shuffles in place using the assembler's random source
func shuffle(r RandSource, tokens []string) {
	for i := len(tokens) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
}
