package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	Intn    func(n int) int
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Intn:    random.Intn,
	}
}

// Score returns a credibility score in [0, 2800].
func (r Randomizer) Score() float64 {
	return float64(r.Intn(2801)) //nolint:mnd // observed Ethos range
}

// Amount returns a vote amount in [0, max).
func (r Randomizer) Amount(max float64) float64 {
	return r.Float64() * max
}
