package ga

import "math/rand"

// Mutate applies the mutation scheme to genome in place and returns it.
// A rate of 0 leaves the genome untouched.
func Mutate[E any](genome []E, rate float64, scheme MutationScheme, problem Problem[E], rng *rand.Rand) []E {
	if rate <= 0 || len(genome) == 0 {
		return genome
	}

	switch scheme {
	case PerLocus:
		for i := range genome {
			if rng.Float64() < rate {
				problem.MutateLocus(genome, i, rng)
			}
		}
	default:
		if rng.Float64() < rate {
			problem.MutateLocus(genome, rng.Intn(len(genome)), rng)
		}
	}
	return genome
}
