package ga

import (
	"context"
	"math/rand"
)

// State is the lifecycle stage of an Engine.
type State int

const (
	StateInitialized State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// StopReason records why a run ended.
type StopReason int

const (
	StopNone StopReason = iota
	StopMaxGenerations
	StopConverged
	StopObserver
	StopCanceled
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopMaxGenerations:
		return "max_generations"
	case StopConverged:
		return "converged"
	case StopObserver:
		return "observer"
	case StopCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Record is the per-generation report handed to observers.
type Record[E any] struct {
	Generation  int
	Best        []E
	BestFitness float64
	Stats       Stats
	Fitnesses   []float64
}

// Result is what a finished run exposes.
type Result[E any] struct {
	Best           []E
	BestFitness    float64
	BestGeneration int
	Generations    int
	Reason         StopReason
	Trace          []Record[E]
}

// Observer receives every generation record and returns false to stop the run.
type Observer[E any] func(Record[E]) bool

// Engine drives the generational loop for one problem.
type Engine[E any] struct {
	cfg     Config
	problem Problem[E]
	rng     *rand.Rand

	pop        *Population[E]
	generation int
	state      State
	reason     StopReason

	best    *Individual[E]
	bestGen int
	until   func(Record[E]) bool
	trace   []Record[E]
}

// New validates cfg against the problem and returns an engine in StateInitialized.
func New[E any](cfg Config, problem Problem[E], rng *rand.Rand) (*Engine[E], error) {
	if err := cfg.Validate(problem.Length()); err != nil {
		return nil, err
	}
	return &Engine[E]{
		cfg:     cfg,
		problem: problem,
		rng:     rng,
		state:   StateInitialized,
	}, nil
}

// Until installs a convergence predicate checked after each generation.
func (e *Engine[E]) Until(fn func(Record[E]) bool) {
	e.until = fn
}

// Config returns the engine configuration
func (e *Engine[E]) Config() Config { return e.cfg }

// State returns the current lifecycle state
func (e *Engine[E]) State() State { return e.state }

// Generation returns the index of the last evaluated generation (0 before the first step).
func (e *Engine[E]) Generation() int { return e.generation }

// Population returns the current, evaluated population.
func (e *Engine[E]) Population() *Population[E] { return e.pop }

// Best returns a copy of the best individual seen in any generation.
func (e *Engine[E]) Best() (*Individual[E], bool) {
	if e.best == nil {
		return nil, false
	}
	return e.best.Clone(), true
}

// Step runs one generation and returns its record. The first call builds the
// initial population; later calls breed from the previous generation first.
func (e *Engine[E]) Step() (Record[E], error) {
	switch e.state {
	case StateTerminated:
		return Record[E]{}, ErrTerminated
	case StateInitialized:
		pop, err := NewPopulation(e.cfg.PopulationSize, func() []E {
			return e.problem.NewGenome(e.rng)
		})
		if err != nil {
			return Record[E]{}, err
		}
		e.pop = pop
		e.state = StateRunning
	default:
		if err := e.breed(); err != nil {
			e.terminate(StopNone)
			return Record[E]{}, err
		}
	}
	e.generation++

	e.pop.Evaluate(e.problem)
	rec := e.record()

	if e.best == nil || e.cfg.Direction.Better(rec.BestFitness, e.best.Fitness) {
		e.best = &Individual[E]{Genome: CloneGenome(rec.Best), Fitness: rec.BestFitness, Evaluated: true}
		e.bestGen = e.generation
	}
	if e.cfg.KeepTrace {
		e.trace = append(e.trace, rec)
	}

	switch {
	case e.generation >= e.cfg.MaxGenerations:
		e.terminate(StopMaxGenerations)
	case e.until != nil && e.until(rec):
		e.terminate(StopConverged)
	}
	return rec, nil
}

// Run steps until termination, cancellation, or until observe returns false.
// ctx and observe are only consulted between generations.
func (e *Engine[E]) Run(ctx context.Context, observe Observer[E]) (Result[E], error) {
	for e.state != StateTerminated {
		if err := ctx.Err(); err != nil {
			e.terminate(StopCanceled)
			break
		}
		rec, err := e.Step()
		if err != nil {
			return e.Result(), err
		}
		if observe != nil && !observe(rec) && e.state != StateTerminated {
			e.terminate(StopObserver)
		}
	}
	return e.Result(), nil
}

// Result reports the best-ever genome and the run outcome so far.
func (e *Engine[E]) Result() Result[E] {
	res := Result[E]{
		Generations: e.generation,
		Reason:      e.reason,
		Trace:       e.trace,
	}
	if e.best != nil {
		res.Best = CloneGenome(e.best.Genome)
		res.BestFitness = e.best.Fitness
		res.BestGeneration = e.bestGen
	}
	return res
}

func (e *Engine[E]) terminate(reason StopReason) {
	e.state = StateTerminated
	e.reason = reason
}

func (e *Engine[E]) record() Record[E] {
	fitnesses := e.pop.Fitnesses()
	best := e.pop.Best(e.cfg.Direction)
	return Record[E]{
		Generation:  e.generation,
		Best:        CloneGenome(best.Genome),
		BestFitness: best.Fitness,
		Stats:       Summarize(fitnesses, e.cfg.Direction),
		Fitnesses:   fitnesses,
	}
}

// breed replaces the population with exactly PopulationSize offspring.
func (e *Engine[E]) breed() error {
	pool, err := Select(e.pop, e.cfg.Selection, e.cfg.Direction, e.rng)
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		return ErrSelectionExhausted
	}

	size := e.cfg.PopulationSize
	next := make([]*Individual[E], 0, size+1)

	// Slot 0 keeps the current best unmutated
	if e.cfg.Elitism {
		next = append(next, e.pop.Best(e.cfg.Direction).Clone())
	}

	for len(next) < size {
		p1, p2 := PickParents(pool, e.rng)
		c1, c2 := SinglePointCrossover(p1.Genome, p2.Genome, e.cfg.CrossoverMinCut, e.rng)
		c1 = Mutate(c1, e.cfg.MutationRate, e.cfg.Mutation, e.problem, e.rng)
		c2 = Mutate(c2, e.cfg.MutationRate, e.cfg.Mutation, e.problem, e.rng)
		next = append(next, &Individual[E]{Genome: c1}, &Individual[E]{Genome: c2})
	}

	e.pop = &Population[E]{Individuals: next[:size]}
	return nil
}
