package ga

import (
	"fmt"
	"math/rand"
)

// thresholdFallback is the sample size used when no individual beats the mean.
const thresholdFallback = 5

// Select builds the parent pool according to policy. The result is never empty
// unless the population is, in which case ErrSelectionExhausted is returned.
func Select[E any](pop *Population[E], policy SelectionPolicy, dir Direction, rng *rand.Rand) ([]*Individual[E], error) {
	if pop == nil || pop.Size() == 0 {
		return nil, ErrSelectionExhausted
	}

	switch policy {
	case Truncation:
		return TruncationSelect(pop, dir), nil
	case Threshold:
		return ThresholdSelect(pop, dir, rng), nil
	default:
		return nil, fmt.Errorf("%w: unknown selection policy %d", ErrInvalidConfiguration, policy)
	}
}

// TruncationSelect returns the better floor(P/2) individuals, best first.
// A population of one yields that single individual.
func TruncationSelect[E any](pop *Population[E], dir Direction) []*Individual[E] {
	ranked := pop.Ranked(dir)
	n := len(ranked) / 2
	if n == 0 {
		n = len(ranked)
	}
	return ranked[:n]
}

// ThresholdSelect keeps every individual strictly better than the mean fitness.
// If none qualifies, a uniform sample of min(5, P) individuals is returned.
func ThresholdSelect[E any](pop *Population[E], dir Direction, rng *rand.Rand) []*Individual[E] {
	mean := Summarize(pop.Fitnesses(), dir).Mean

	var pool []*Individual[E]
	for _, ind := range pop.Individuals {
		if dir.Better(ind.Fitness, mean) {
			pool = append(pool, ind)
		}
	}
	if len(pool) > 0 {
		return pool
	}

	k := thresholdFallback
	if k > pop.Size() {
		k = pop.Size()
	}
	pool = make([]*Individual[E], k)
	for i, idx := range rng.Perm(pop.Size())[:k] {
		pool[i] = pop.Individuals[idx]
	}
	return pool
}

// PickParents draws two parents uniformly from the pool, with replacement.
func PickParents[E any](pool []*Individual[E], rng *rand.Rand) (*Individual[E], *Individual[E]) {
	p1 := pool[rng.Intn(len(pool))]
	p2 := pool[rng.Intn(len(pool))]
	return p1, p2
}
