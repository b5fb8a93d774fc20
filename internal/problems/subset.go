package problems

import (
	"fmt"
	"math/rand"
	"strings"
)

// Subset selects items (compounds) by a 0/1 genome, maximizing
// (g·efficacy) / (g·toxicity + 1) × (g·bioavailability).
type Subset struct {
	Efficacy        []float64
	Toxicity        []float64
	Bioavailability []float64
}

// NewSubset validates that the three weight vectors are non-empty and equal length.
func NewSubset(efficacy, toxicity, bioavailability []float64) (*Subset, error) {
	n := len(efficacy)
	if n == 0 {
		return nil, fmt.Errorf("subset: no items")
	}
	if len(toxicity) != n || len(bioavailability) != n {
		return nil, fmt.Errorf("subset: weight vectors differ in length (%d, %d, %d)", n, len(toxicity), len(bioavailability))
	}
	return &Subset{Efficacy: efficacy, Toxicity: toxicity, Bioavailability: bioavailability}, nil
}

// RandomWeights draws n uniform weights in [0, 1).
func RandomWeights(n int, rng *rand.Rand) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = rng.Float64()
	}
	return w
}

func (s *Subset) Length() int { return len(s.Efficacy) }

func (s *Subset) NewGenome(rng *rand.Rand) []uint8 {
	g := make([]uint8, len(s.Efficacy))
	for i := range g {
		g[i] = uint8(rng.Intn(2))
	}
	return g
}

func (s *Subset) Evaluate(g []uint8) float64 {
	efficacy := dot(g, s.Efficacy)
	toxicity := dot(g, s.Toxicity)
	bio := dot(g, s.Bioavailability)
	return efficacy / (toxicity + 1) * bio
}

// MutateLocus flips the bit.
func (s *Subset) MutateLocus(g []uint8, locus int, _ *rand.Rand) {
	g[locus] = 1 - g[locus]
}

func dot(bits []uint8, w []float64) float64 {
	var sum float64
	for i, b := range bits {
		sum += float64(b) * w[i]
	}
	return sum
}

// FormatBits renders a bit genome as a string of '0' and '1'.
func FormatBits(g []uint8) string {
	var sb strings.Builder
	for _, b := range g {
		sb.WriteByte('0' + b)
	}
	return sb.String()
}

// ParseBits is the inverse of FormatBits.
func ParseBits(s string) ([]uint8, error) {
	g := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0', '1':
			g[i] = s[i] - '0'
		default:
			return nil, fmt.Errorf("subset: invalid bit %q at %d", s[i], i)
		}
	}
	return g, nil
}
