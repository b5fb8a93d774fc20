package ga

import "math"

// Stats summarizes the fitness distribution of one generation.
type Stats struct {
	Mean  float64
	Std   float64
	Best  float64
	Worst float64
}

// Summarize computes population statistics for the given direction.
func Summarize(fitnesses []float64, dir Direction) Stats {
	n := len(fitnesses)
	if n == 0 {
		return Stats{}
	}

	var sum float64
	best, worst := fitnesses[0], fitnesses[0]
	for _, f := range fitnesses {
		sum += f
		if dir.Better(f, best) {
			best = f
		}
		if dir.Better(worst, f) {
			worst = f
		}
	}
	mean := sum / float64(n)

	var sumSq float64
	for _, f := range fitnesses {
		d := f - mean
		sumSq += d * d
	}

	return Stats{
		Mean:  mean,
		Std:   math.Sqrt(sumSq / float64(n)),
		Best:  best,
		Worst: worst,
	}
}
