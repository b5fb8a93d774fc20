package ga

import "math/rand"

// Problem is the capability set the engine needs from a concrete optimization
// problem. Genomes are fixed-length slices of E.
type Problem[E any] interface {
	// Length is the genome length, fixed for the lifetime of a run.
	Length() int
	// NewGenome draws one random genome respecting the problem's domain.
	NewGenome(rng *rand.Rand) []E
	// Evaluate scores a genome. It must not modify it.
	Evaluate(genome []E) float64
	// MutateLocus replaces genome[locus] with a fresh value from the domain.
	MutateLocus(genome []E, locus int, rng *rand.Rand)
}

// CloneGenome returns a copy of g that shares no storage with it.
func CloneGenome[E any](g []E) []E {
	out := make([]E, len(g))
	copy(out, g)
	return out
}
