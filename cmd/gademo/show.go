package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gademo/internal/config"
	"gademo/internal/ga"
	"gademo/internal/logging"
	"gademo/internal/problems"
	"gademo/internal/render"
)

var (
	showNoDisplay bool
)

var showCmd = &cobra.Command{
	Use:   "show <champion.json>",
	Short: "Re-score and display a saved champion",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showNoDisplay, "no-display", false, "Print the summary only")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	champion, err := logging.LoadChampion(args[0])
	if err != nil {
		return fmt.Errorf("load champion: %w", err)
	}

	cfg := &config.Config{}
	if len(champion.Instance) > 0 {
		if err := json.Unmarshal(champion.Instance, cfg); err != nil {
			return fmt.Errorf("decode problem instance: %w", err)
		}
	}

	switch config.Problem(champion.Problem) {
	case config.ProblemLayout:
		lc := cfg.Layout
		l, err := problems.NewLayout(lc.AreaWidth, lc.AreaHeight, lc.ItemWidth, lc.ItemHeight, lc.Items)
		if err != nil {
			return err
		}
		return showChampion(cmd, champion, l, problems.ParseLayout, func(c render.Canvas, g []problems.Point) {
			render.DrawLayout(c, l, g)
		})
	case config.ProblemAssignment:
		a, err := problems.NewAssignment(cfg.Assignment.Costs)
		if err != nil {
			return err
		}
		return showChampion(cmd, champion, a, problems.ParseAssignment, func(c render.Canvas, g []int) {
			render.DrawAssignment(c, a, g)
		})
	case config.ProblemSubset:
		s, err := problems.NewSubset(cfg.Subset.Efficacy, cfg.Subset.Toxicity, cfg.Subset.Bioavailability)
		if err != nil {
			return err
		}
		return showChampion(cmd, champion, s, problems.ParseBits, func(c render.Canvas, g []uint8) {
			render.DrawSubset(c, s, g)
		})
	case config.ProblemSequence:
		s, err := problems.NewSequence(cfg.Sequence.Length, cfg.Sequence.Alphabet)
		if err != nil {
			return err
		}
		parse := func(str string) ([]byte, error) { return []byte(str), nil }
		return showChampion(cmd, champion, s, parse, func(c render.Canvas, g []byte) {
			render.DrawSequence(c, g, nil)
		})
	default:
		return fmt.Errorf("unknown problem %q in champion", champion.Problem)
	}
}

// showChampion re-evaluates the saved genome against its problem instance and
// displays it until a key is pressed.
func showChampion[E any](cmd *cobra.Command, c *logging.Champion, p ga.Problem[E], parse func(string) ([]E, error), draw func(render.Canvas, []E)) error {
	genome, err := parse(c.Genome)
	if err != nil {
		return fmt.Errorf("parse genome: %w", err)
	}
	if len(genome) != p.Length() {
		return fmt.Errorf("genome has %d loci, problem expects %d", len(genome), p.Length())
	}
	fitness := p.Evaluate(genome)

	if !showNoDisplay {
		screen, err := render.OpenTerminal()
		if err != nil {
			return err
		}
		d := render.NewDisplay(screen, c.Problem, 0)
		d.Frame(render.Status(c.Generation, fitness, fitness)+"  (any key to exit)", func(cv render.Canvas) {
			draw(cv, genome)
		})
		d.WaitKey()
		d.Close()
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.Summary(c.Problem,
		render.Field{Label: "Run", Value: c.RunID},
		render.Field{Label: "Generation", Value: strconv.Itoa(c.Generation)},
		render.Field{Label: "Saved fitness", Value: strconv.FormatFloat(c.Fitness, 'f', -1, 64)},
		render.Field{Label: "Re-scored fitness", Value: strconv.FormatFloat(fitness, 'f', -1, 64)},
		render.Field{Label: "Genome", Value: c.Genome},
	))
	return nil
}
