package ga

import "math/rand"

// SinglePointCrossover cuts both parents at one index drawn uniformly from
// [minCut, len-1] and swaps the suffixes. The parents are not modified.
// With nothing to cut (len-minCut <= 0) the children are plain copies.
func SinglePointCrossover[E any](p1, p2 []E, minCut int, rng *rand.Rand) ([]E, []E) {
	size := len(p1)
	if size-minCut <= 0 {
		return CloneGenome(p1), CloneGenome(p2)
	}
	point := minCut + rng.Intn(size-minCut)

	c1 := make([]E, size)
	c2 := make([]E, size)

	copy(c1[:point], p1[:point])
	copy(c1[point:], p2[point:])
	copy(c2[:point], p2[:point])
	copy(c2[point:], p1[point:])

	return c1, c2
}
