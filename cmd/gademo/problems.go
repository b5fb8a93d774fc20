package main

import (
	"math/rand"

	"github.com/spf13/cobra"

	"gademo/internal/config"
	"gademo/internal/problems"
	"gademo/internal/render"
)

var (
	layoutOpts   runOptions
	layoutItems  int
	assignOpts   runOptions
	assignTasks  int
	assignRes    int
	subsetOpts   runOptions
	subsetItems  int
	sequenceOpts runOptions
	sequenceLen  int
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Place items in an area, maximizing the shading score",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &layoutOpts, config.ProblemLayout)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("items") {
			cfg.Layout.Items = layoutItems
		}
		rng := rand.New(rand.NewSource(cfg.Seed))

		lc := cfg.Layout
		l, err := problems.NewLayout(lc.AreaWidth, lc.AreaHeight, lc.ItemWidth, lc.ItemHeight, lc.Items)
		if err != nil {
			return err
		}
		return runDemo(cmd, cfg, rng, demo[problems.Point]{
			name:    config.ProblemLayout,
			problem: l,
			format:  problems.FormatLayout,
			draw: func(c render.Canvas, best []problems.Point, _ []float64) {
				render.DrawLayout(c, l, best)
			},
		})
	},
}

var assignCmd = &cobra.Command{
	Use:     "assign",
	Aliases: []string{"assignment"},
	Short:   "Assign tasks to resources, minimizing total cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &assignOpts, config.ProblemAssignment)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("tasks") || cmd.Flags().Changed("resources") {
			if cmd.Flags().Changed("tasks") {
				cfg.Assignment.Tasks = assignTasks
			}
			if cmd.Flags().Changed("resources") {
				cfg.Assignment.Resources = assignRes
			}
			// A configured table no longer matches the requested shape
			cfg.Assignment.Costs = nil
		}
		rng := rand.New(rand.NewSource(cfg.Seed))
		cfg.Resolve(config.ProblemAssignment, rng)

		a, err := problems.NewAssignment(cfg.Assignment.Costs)
		if err != nil {
			return err
		}
		return runDemo(cmd, cfg, rng, demo[int]{
			name:    config.ProblemAssignment,
			problem: a,
			format:  problems.FormatAssignment,
			draw: func(c render.Canvas, best []int, _ []float64) {
				render.DrawAssignment(c, a, best)
			},
		})
	},
}

var subsetCmd = &cobra.Command{
	Use:   "subset",
	Short: "Select compounds, maximizing efficacy against toxicity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &subsetOpts, config.ProblemSubset)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("items") {
			cfg.Subset.Items = subsetItems
			cfg.Subset.Efficacy, cfg.Subset.Toxicity, cfg.Subset.Bioavailability = nil, nil, nil
		}
		rng := rand.New(rand.NewSource(cfg.Seed))
		cfg.Resolve(config.ProblemSubset, rng)

		s, err := problems.NewSubset(cfg.Subset.Efficacy, cfg.Subset.Toxicity, cfg.Subset.Bioavailability)
		if err != nil {
			return err
		}
		return runDemo(cmd, cfg, rng, demo[uint8]{
			name:    config.ProblemSubset,
			problem: s,
			format:  problems.FormatBits,
			draw: func(c render.Canvas, best []uint8, _ []float64) {
				render.DrawSubset(c, s, best)
			},
		})
	},
}

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Evolve a code string over a four-symbol alphabet",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &sequenceOpts, config.ProblemSequence)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("length") {
			cfg.Sequence.Length = sequenceLen
		}
		rng := rand.New(rand.NewSource(cfg.Seed))

		s, err := problems.NewSequence(cfg.Sequence.Length, cfg.Sequence.Alphabet)
		if err != nil {
			return err
		}
		return runDemo(cmd, cfg, rng, demo[byte]{
			name:    config.ProblemSequence,
			problem: s,
			format:  func(g []byte) string { return string(g) },
			draw:    render.DrawSequence,
		})
	},
}

func init() {
	addRunFlags(layoutCmd, &layoutOpts)
	layoutCmd.Flags().IntVar(&layoutItems, "items", 0, "Number of items to place")

	addRunFlags(assignCmd, &assignOpts)
	assignCmd.Flags().IntVar(&assignTasks, "tasks", 0, "Number of tasks")
	assignCmd.Flags().IntVar(&assignRes, "resources", 0, "Number of resources")

	addRunFlags(subsetCmd, &subsetOpts)
	subsetCmd.Flags().IntVar(&subsetItems, "items", 0, "Number of candidate compounds")

	addRunFlags(sequenceCmd, &sequenceOpts)
	sequenceCmd.Flags().IntVar(&sequenceLen, "length", 0, "Sequence length")

	rootCmd.AddCommand(layoutCmd, assignCmd, subsetCmd, sequenceCmd)
}
