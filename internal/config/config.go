package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"gademo/internal/ga"
	"gademo/internal/problems"
)

// Problem names one of the four demonstration problems.
type Problem string

const (
	ProblemLayout     Problem = "layout"
	ProblemAssignment Problem = "assignment"
	ProblemSubset     Problem = "subset"
	ProblemSequence   Problem = "sequence"
)

// Config is the root configuration structure
type Config struct {
	Seed       int64            `yaml:"seed" json:"seed"`
	GA         GAConfig         `yaml:"ga" json:"ga"`
	Layout     LayoutConfig     `yaml:"layout" json:"layout"`
	Assignment AssignmentConfig `yaml:"assignment" json:"assignment"`
	Subset     SubsetConfig     `yaml:"subset" json:"subset"`
	Sequence   SequenceConfig   `yaml:"sequence" json:"sequence"`
	Logging    LogConfig        `yaml:"logging" json:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics" json:"metrics"`
	Display    DisplayConfig    `yaml:"display" json:"display"`
}

// GAConfig defines genetic algorithm parameters.
// MutationRate and Elitism are pointers so that an explicit 0/false survives defaults.
type GAConfig struct {
	PopulationSize  int      `yaml:"population_size" json:"population_size"`
	MaxGenerations  int      `yaml:"max_generations" json:"max_generations"`
	MutationRate    *float64 `yaml:"mutation_rate" json:"mutation_rate"`
	MutationScheme  string   `yaml:"mutation_scheme" json:"mutation_scheme"`     // per_genome|per_locus
	CrossoverMinCut *int     `yaml:"crossover_min_cut" json:"crossover_min_cut"` // 0|1
	SelectionPolicy string   `yaml:"selection_policy" json:"selection_policy"`   // truncation|threshold
	Direction       string   `yaml:"direction" json:"direction"`                 // maximize|minimize
	Elitism         *bool    `yaml:"elitism" json:"elitism"`
	KeepTrace       bool     `yaml:"keep_trace" json:"keep_trace"`
	TargetFitness   *float64 `yaml:"target_fitness" json:"target_fitness,omitempty"` // stop once reached
}

// LayoutConfig defines the placement area and items
type LayoutConfig struct {
	AreaWidth  float64 `yaml:"area_width" json:"area_width"`
	AreaHeight float64 `yaml:"area_height" json:"area_height"`
	ItemWidth  float64 `yaml:"item_width" json:"item_width"`
	ItemHeight float64 `yaml:"item_height" json:"item_height"`
	Items      int     `yaml:"items" json:"items"`
}

// AssignmentConfig defines the task/resource cost table.
// Costs is indexed [resource][task]; when empty it is generated from the seed.
type AssignmentConfig struct {
	Tasks     int     `yaml:"tasks" json:"tasks"`
	Resources int     `yaml:"resources" json:"resources"`
	Costs     [][]int `yaml:"costs" json:"costs,omitempty"`
}

// SubsetConfig defines the candidate compounds
type SubsetConfig struct {
	Items           int       `yaml:"items" json:"items"`
	Efficacy        []float64 `yaml:"efficacy" json:"efficacy,omitempty"`
	Toxicity        []float64 `yaml:"toxicity" json:"toxicity,omitempty"`
	Bioavailability []float64 `yaml:"bioavailability" json:"bioavailability,omitempty"`
}

// SequenceConfig defines the code string
type SequenceConfig struct {
	Length   int    `yaml:"length" json:"length"`
	Alphabet string `yaml:"alphabet" json:"alphabet"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Quiet        bool   `yaml:"quiet" json:"quiet"`
	CSVPath      string `yaml:"csv_path" json:"csv_path"`
	JSONPath     string `yaml:"json_path" json:"json_path"`
	ChampionPath string `yaml:"champion_path" json:"champion_path"`
}

// MetricsConfig defines the Prometheus endpoint; empty Addr disables it
type MetricsConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// DisplayConfig defines the terminal display
type DisplayConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	DelayMS int  `yaml:"delay_ms" json:"delay_ms"`
}

// Load reads a YAML config file and applies the defaults of the given problem.
// An empty path yields the defaults alone.
func Load(path string, problem Problem) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyDefaults(cfg, problem); err != nil {
		return nil, err
	}
	return cfg, nil
}

// preset holds the engine defaults that differ between problems.
type preset struct {
	population  int
	generations int
	rate        float64
	scheme      string
	minCut      int
	policy      string
	direction   string
	elitism     bool
	delayMS     int
}

var presets = map[Problem]preset{
	ProblemLayout:     {200, 100, 0.1, "per_genome", 0, "truncation", "maximize", false, 0},
	ProblemAssignment: {50, 100, 0.1, "per_genome", 1, "truncation", "minimize", true, 33},
	ProblemSubset:     {50, 100, 0.1, "per_genome", 1, "truncation", "maximize", true, 100},
	ProblemSequence:   {50, 50, 0.01, "per_locus", 1, "threshold", "maximize", true, 500},
}

func applyDefaults(cfg *Config, problem Problem) error {
	p, ok := presets[problem]
	if !ok {
		return fmt.Errorf("%w: unknown problem %q", ga.ErrInvalidConfiguration, problem)
	}

	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.GA.PopulationSize == 0 {
		cfg.GA.PopulationSize = p.population
	}
	if cfg.GA.MaxGenerations == 0 {
		cfg.GA.MaxGenerations = p.generations
	}
	if cfg.GA.MutationRate == nil {
		rate := p.rate
		cfg.GA.MutationRate = &rate
	}
	if cfg.GA.MutationScheme == "" {
		cfg.GA.MutationScheme = p.scheme
	}
	if cfg.GA.CrossoverMinCut == nil {
		cut := p.minCut
		cfg.GA.CrossoverMinCut = &cut
	}
	if cfg.GA.SelectionPolicy == "" {
		cfg.GA.SelectionPolicy = p.policy
	}
	if cfg.GA.Direction == "" {
		cfg.GA.Direction = p.direction
	}
	if cfg.GA.Elitism == nil {
		elitism := p.elitism
		cfg.GA.Elitism = &elitism
	}
	if cfg.Display.DelayMS == 0 {
		cfg.Display.DelayMS = p.delayMS
	}

	switch problem {
	case ProblemLayout:
		if cfg.Layout.AreaWidth == 0 {
			cfg.Layout.AreaWidth = 100
		}
		if cfg.Layout.AreaHeight == 0 {
			cfg.Layout.AreaHeight = 100
		}
		if cfg.Layout.ItemWidth == 0 {
			cfg.Layout.ItemWidth = 5
		}
		if cfg.Layout.ItemHeight == 0 {
			cfg.Layout.ItemHeight = 10
		}
		if cfg.Layout.Items == 0 {
			cfg.Layout.Items = 20
		}
	case ProblemAssignment:
		if len(cfg.Assignment.Costs) > 0 {
			cfg.Assignment.Resources = len(cfg.Assignment.Costs)
			cfg.Assignment.Tasks = len(cfg.Assignment.Costs[0])
		}
		if cfg.Assignment.Tasks == 0 {
			cfg.Assignment.Tasks = 10
		}
		if cfg.Assignment.Resources == 0 {
			cfg.Assignment.Resources = 5
		}
	case ProblemSubset:
		if len(cfg.Subset.Efficacy) > 0 {
			cfg.Subset.Items = len(cfg.Subset.Efficacy)
		}
		if cfg.Subset.Items == 0 {
			cfg.Subset.Items = 15
		}
	case ProblemSequence:
		if cfg.Sequence.Length == 0 {
			cfg.Sequence.Length = 6
		}
		if cfg.Sequence.Alphabet == "" {
			cfg.Sequence.Alphabet = problems.DefaultAlphabet
		}
	}

	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = fmt.Sprintf("runs/%s.csv", problem)
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = fmt.Sprintf("runs/%s.jsonl", problem)
	}
	if cfg.Logging.ChampionPath == "" {
		cfg.Logging.ChampionPath = fmt.Sprintf("artifacts/%s_champion.json", problem)
	}
	return nil
}

// Resolve draws any problem table the config leaves empty, in a fixed order,
// from rng. Call it once with the run's random source before building the engine.
func (c *Config) Resolve(problem Problem, rng *rand.Rand) {
	switch problem {
	case ProblemAssignment:
		if len(c.Assignment.Costs) == 0 {
			c.Assignment.Costs = problems.RandomCosts(c.Assignment.Resources, c.Assignment.Tasks, rng)
		}
	case ProblemSubset:
		if len(c.Subset.Efficacy) == 0 {
			c.Subset.Efficacy = problems.RandomWeights(c.Subset.Items, rng)
		}
		if len(c.Subset.Toxicity) == 0 {
			c.Subset.Toxicity = problems.RandomWeights(c.Subset.Items, rng)
		}
		if len(c.Subset.Bioavailability) == 0 {
			c.Subset.Bioavailability = problems.RandomWeights(c.Subset.Items, rng)
		}
	}
}

// Engine converts the GA section into engine parameters.
func (c *Config) Engine() (ga.Config, error) {
	scheme, err := ga.ParseMutationScheme(c.GA.MutationScheme)
	if err != nil {
		return ga.Config{}, err
	}
	policy, err := ga.ParseSelectionPolicy(c.GA.SelectionPolicy)
	if err != nil {
		return ga.Config{}, err
	}
	dir, err := ga.ParseDirection(c.GA.Direction)
	if err != nil {
		return ga.Config{}, err
	}

	out := ga.Config{
		PopulationSize: c.GA.PopulationSize,
		MaxGenerations: c.GA.MaxGenerations,
		Mutation:       scheme,
		Selection:      policy,
		Direction:      dir,
		KeepTrace:      c.GA.KeepTrace,
	}
	if c.GA.MutationRate != nil {
		out.MutationRate = *c.GA.MutationRate
	}
	if c.GA.CrossoverMinCut != nil {
		out.CrossoverMinCut = *c.GA.CrossoverMinCut
	}
	if c.GA.Elitism != nil {
		out.Elitism = *c.GA.Elitism
	}
	return out, nil
}

// Validate checks the engine section against the problem's genome length.
func (c *Config) Validate(problem Problem) error {
	engine, err := c.Engine()
	if err != nil {
		return err
	}
	return engine.Validate(c.GenomeLength(problem))
}

// GenomeLength returns the genome length implied by the problem section.
func (c *Config) GenomeLength(problem Problem) int {
	switch problem {
	case ProblemLayout:
		return c.Layout.Items
	case ProblemAssignment:
		return c.Assignment.Tasks
	case ProblemSubset:
		return c.Subset.Items
	case ProblemSequence:
		return c.Sequence.Length
	}
	return 0
}

// Reached reports whether fitness meets the configured target, if any.
func (c *Config) Reached(fitness float64) bool {
	if c.GA.TargetFitness == nil {
		return false
	}
	target := *c.GA.TargetFitness
	if dir, err := ga.ParseDirection(c.GA.Direction); err == nil && dir == ga.Minimize {
		return fitness <= target
	}
	return fitness >= target
}
