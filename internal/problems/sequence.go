package problems

import (
	"fmt"
	"math/rand"
)

// DefaultAlphabet is the four-symbol code alphabet.
const DefaultAlphabet = "ATCG"

// Sequence evolves a fixed-length code string over a small alphabet.
type Sequence struct {
	Size     int
	Alphabet []byte
}

// NewSequence validates length and alphabet. An empty alphabet means DefaultAlphabet.
func NewSequence(length int, alphabet string) (*Sequence, error) {
	if length <= 0 {
		return nil, fmt.Errorf("sequence: length must be positive, got %d", length)
	}
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	return &Sequence{Size: length, Alphabet: []byte(alphabet)}, nil
}

func (s *Sequence) Length() int { return s.Size }

func (s *Sequence) NewGenome(rng *rand.Rand) []byte {
	g := make([]byte, s.Size)
	for i := range g {
		g[i] = s.symbol(rng)
	}
	return g
}

// Evaluate scores (Σ code mod 100) − (Σ code mod 50) + 10, where code is the
// symbol's ordinal value.
func (s *Sequence) Evaluate(g []byte) float64 {
	sum := 0
	for _, c := range g {
		sum += int(c)
	}
	return float64(sum%100 - sum%50 + 10)
}

func (s *Sequence) MutateLocus(g []byte, locus int, rng *rand.Rand) {
	g[locus] = s.symbol(rng)
}

// Contains reports whether c belongs to the alphabet.
func (s *Sequence) Contains(c byte) bool {
	for _, a := range s.Alphabet {
		if a == c {
			return true
		}
	}
	return false
}

func (s *Sequence) symbol(rng *rand.Rand) byte {
	return s.Alphabet[rng.Intn(len(s.Alphabet))]
}
