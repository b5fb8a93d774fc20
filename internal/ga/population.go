package ga

import (
	"fmt"
	"sort"
)

// Individual is one genome together with its cached fitness.
type Individual[E any] struct {
	Genome    []E
	Fitness   float64
	Evaluated bool
}

// Clone creates a deep copy of an individual
func (ind *Individual[E]) Clone() *Individual[E] {
	return &Individual[E]{
		Genome:    CloneGenome(ind.Genome),
		Fitness:   ind.Fitness,
		Evaluated: ind.Evaluated,
	}
}

// Population manages the individuals of the current generation
type Population[E any] struct {
	Individuals []*Individual[E]
}

// NewPopulation creates size individuals, each drawn independently from factory.
// The size must be even and at least 2 so that parents can be paired.
func NewPopulation[E any](size int, factory func() []E) (*Population[E], error) {
	if size < 2 || size%2 != 0 {
		return nil, fmt.Errorf("%w: population size must be even and >= 2, got %d", ErrInvalidConfiguration, size)
	}

	p := &Population[E]{Individuals: make([]*Individual[E], size)}
	for i := 0; i < size; i++ {
		// Copy so a factory that reuses a buffer cannot alias genomes.
		p.Individuals[i] = &Individual[E]{Genome: CloneGenome(factory())}
	}
	return p, nil
}

// Size returns the population size
func (p *Population[E]) Size() int {
	return len(p.Individuals)
}

// Evaluate scores every individual with the problem's fitness function.
func (p *Population[E]) Evaluate(problem Problem[E]) {
	for _, ind := range p.Individuals {
		ind.Fitness = problem.Evaluate(ind.Genome)
		ind.Evaluated = true
	}
}

// Ranked returns the individuals ordered best first. Ties keep population order.
// The population itself is not reordered.
func (p *Population[E]) Ranked(dir Direction) []*Individual[E] {
	ranked := make([]*Individual[E], len(p.Individuals))
	copy(ranked, p.Individuals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return dir.Better(ranked[i].Fitness, ranked[j].Fitness)
	})
	return ranked
}

// Best returns the first individual with the best fitness, or nil if empty.
func (p *Population[E]) Best(dir Direction) *Individual[E] {
	if len(p.Individuals) == 0 {
		return nil
	}
	best := p.Individuals[0]
	for _, ind := range p.Individuals[1:] {
		if dir.Better(ind.Fitness, best.Fitness) {
			best = ind
		}
	}
	return best
}

// Fitnesses returns the fitness of every individual in population order.
func (p *Population[E]) Fitnesses() []float64 {
	out := make([]float64, len(p.Individuals))
	for i, ind := range p.Individuals {
		out[i] = ind.Fitness
	}
	return out
}
