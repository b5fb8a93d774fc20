package ga

import (
	"fmt"
	"strings"
)

// Direction is the fitness polarity of a run.
type Direction int

const (
	Maximize Direction = iota
	Minimize
)

func (d Direction) String() string {
	switch d {
	case Maximize:
		return "maximize"
	case Minimize:
		return "minimize"
	default:
		return "unknown"
	}
}

// Better reports whether a is strictly better than b.
func (d Direction) Better(a, b float64) bool {
	if d == Minimize {
		return a < b
	}
	return a > b
}

// ParseDirection parses "maximize"/"max" or "minimize"/"min".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "maximize", "max":
		return Maximize, nil
	case "minimize", "min":
		return Minimize, nil
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidConfiguration, s)
}

// SelectionPolicy chooses how the parent pool is built.
type SelectionPolicy int

const (
	// Truncation keeps the better half of the population.
	Truncation SelectionPolicy = iota
	// Threshold keeps everything strictly better than the mean fitness.
	Threshold
)

func (p SelectionPolicy) String() string {
	switch p {
	case Truncation:
		return "truncation"
	case Threshold:
		return "threshold"
	default:
		return "unknown"
	}
}

// ParseSelectionPolicy parses "truncation" or "threshold".
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "truncation":
		return Truncation, nil
	case "threshold":
		return Threshold, nil
	}
	return 0, fmt.Errorf("%w: unknown selection policy %q", ErrInvalidConfiguration, s)
}

// MutationScheme controls how often the mutation rate is tested.
type MutationScheme int

const (
	// PerGenome tests the rate once and mutates a single random locus.
	PerGenome MutationScheme = iota
	// PerLocus tests the rate independently for every locus.
	PerLocus
)

func (m MutationScheme) String() string {
	switch m {
	case PerGenome:
		return "per_genome"
	case PerLocus:
		return "per_locus"
	default:
		return "unknown"
	}
}

// ParseMutationScheme parses "per_genome" or "per_locus".
func ParseMutationScheme(s string) (MutationScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "per_genome", "genome":
		return PerGenome, nil
	case "per_locus", "locus":
		return PerLocus, nil
	}
	return 0, fmt.Errorf("%w: unknown mutation scheme %q", ErrInvalidConfiguration, s)
}

// Config holds the engine parameters of a single run.
type Config struct {
	PopulationSize  int
	MaxGenerations  int
	MutationRate    float64
	Mutation        MutationScheme
	CrossoverMinCut int // 0 allows a cut before the first locus
	Selection       SelectionPolicy
	Direction       Direction
	Elitism         bool
	KeepTrace       bool
}

// Validate checks the configuration against a genome length.
func (c Config) Validate(genomeLength int) error {
	switch {
	case c.PopulationSize < 4 || c.PopulationSize%2 != 0:
		return fmt.Errorf("%w: population size must be an even number >= 4, got %d", ErrInvalidConfiguration, c.PopulationSize)
	case genomeLength <= 0:
		return fmt.Errorf("%w: genome length must be positive, got %d", ErrInvalidConfiguration, genomeLength)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate must be in [0,1], got %g", ErrInvalidConfiguration, c.MutationRate)
	case c.MaxGenerations < 1:
		return fmt.Errorf("%w: max generations must be >= 1, got %d", ErrInvalidConfiguration, c.MaxGenerations)
	case c.CrossoverMinCut != 0 && c.CrossoverMinCut != 1:
		return fmt.Errorf("%w: crossover min cut must be 0 or 1, got %d", ErrInvalidConfiguration, c.CrossoverMinCut)
	case c.Direction != Maximize && c.Direction != Minimize:
		return fmt.Errorf("%w: unknown direction %d", ErrInvalidConfiguration, c.Direction)
	case c.Selection != Truncation && c.Selection != Threshold:
		return fmt.Errorf("%w: unknown selection policy %d", ErrInvalidConfiguration, c.Selection)
	case c.Mutation != PerGenome && c.Mutation != PerLocus:
		return fmt.Errorf("%w: unknown mutation scheme %d", ErrInvalidConfiguration, c.Mutation)
	}
	return nil
}
