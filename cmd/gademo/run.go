package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"gademo/internal/config"
	"gademo/internal/ga"
	"gademo/internal/logging"
	"gademo/internal/metrics"
	"gademo/internal/render"
)

// runOptions are the flags shared by every problem command.
type runOptions struct {
	configPath  string
	seed        int64
	generations int
	population  int
	rate        float64
	display     bool
	delayMS     int
	quiet       bool
	metricsAddr string
}

func addRunFlags(cmd *cobra.Command, o *runOptions) {
	cmd.Flags().StringVar(&o.configPath, "config", "", "Path to YAML config (defaults apply when empty)")
	cmd.Flags().Int64Var(&o.seed, "seed", 0, "Random seed")
	cmd.Flags().IntVar(&o.generations, "generations", 0, "Max generations")
	cmd.Flags().IntVar(&o.population, "pop", 0, "Population size (even, >= 4)")
	cmd.Flags().Float64Var(&o.rate, "rate", 0, "Mutation rate in [0,1]")
	cmd.Flags().BoolVar(&o.display, "display", false, "Show the run in the terminal")
	cmd.Flags().IntVar(&o.delayMS, "delay", 0, "Delay between frames in milliseconds")
	cmd.Flags().BoolVar(&o.quiet, "quiet", false, "Suppress per-generation log lines")
	cmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
}

// loadConfig reads the config for problem and applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command, o *runOptions, problem config.Problem) (*config.Config, error) {
	cfg, err := config.Load(o.configPath, problem)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("seed") {
		cfg.Seed = o.seed
	}
	if f.Changed("generations") {
		cfg.GA.MaxGenerations = o.generations
	}
	if f.Changed("pop") {
		cfg.GA.PopulationSize = o.population
	}
	if f.Changed("rate") {
		rate := o.rate
		cfg.GA.MutationRate = &rate
	}
	if f.Changed("display") {
		cfg.Display.Enabled = o.display
	}
	if f.Changed("delay") {
		cfg.Display.DelayMS = o.delayMS
	}
	if f.Changed("quiet") {
		cfg.Logging.Quiet = o.quiet
	}
	if f.Changed("metrics-addr") {
		cfg.Metrics.Addr = o.metricsAddr
	}
	return cfg, nil
}

// demo binds one concrete problem to the shared runner.
type demo[E any] struct {
	name    config.Problem
	problem ga.Problem[E]
	format  func([]E) string
	draw    func(c render.Canvas, best []E, history []float64)
}

// runDemo runs the engine to completion, feeding every generation record to
// the log sink, metrics and (optionally) the terminal display.
func runDemo[E any](cmd *cobra.Command, cfg *config.Config, rng *rand.Rand, d demo[E]) error {
	log := slog.Default()
	if err := cfg.Validate(d.name); err != nil {
		return err
	}
	engineCfg, err := cfg.Engine()
	if err != nil {
		return err
	}
	eng, err := ga.New(engineCfg, d.problem, rng)
	if err != nil {
		return err
	}
	if cfg.GA.TargetFitness != nil {
		eng.Until(func(rec ga.Record[E]) bool { return cfg.Reached(rec.BestFitness) })
	}

	runID := logging.NewRunID()
	log = log.With("run_id", runID, "problem", string(d.name))
	log.Info("starting run",
		"seed", cfg.Seed,
		"population", engineCfg.PopulationSize,
		"generations", engineCfg.MaxGenerations,
		"mutation_rate", engineCfg.MutationRate,
		"selection", engineCfg.Selection.String(),
		"direction", engineCfg.Direction.String(),
		"elitism", engineCfg.Elitism,
		"genome_length", d.problem.Length(),
	)

	sink, err := logging.NewLogger(runID, string(d.name), cfg.Logging.CSVPath, cfg.Logging.JSONPath, slog.Default())
	if err != nil {
		return err
	}
	if err := sink.Init(); err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Warn("closing generation log failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg, string(d.name))
	if cfg.Metrics.Addr != "" {
		metrics.Serve(ctx, cfg.Metrics.Addr, reg, log)
	}

	var display *render.Display
	closeDisplay := func() {
		if display != nil {
			display.Close()
			display = nil
		}
	}
	if cfg.Display.Enabled {
		screen, err := render.OpenTerminal()
		if err != nil {
			log.Warn("display unavailable, running headless", "error", err)
		} else {
			display = render.NewDisplay(screen, string(d.name), time.Duration(cfg.Display.DelayMS)*time.Millisecond)
			// Log lines would tear the screen
			sink.SetQuiet(true)
		}
	}
	defer closeDisplay()
	if cfg.Logging.Quiet {
		sink.SetQuiet(true)
	}

	var history []float64
	last := time.Now()
	observe := func(rec ga.Record[E]) bool {
		now := time.Now()
		history = append(history, rec.BestFitness)

		bestEver := rec.BestFitness
		if b, ok := eng.Best(); ok {
			bestEver = b.Fitness
		}
		m.Observe(rec.Generation, rec.Stats, len(rec.Fitnesses), bestEver, now.Sub(last))
		last = now

		// Sink and display failures stop the run after this generation;
		// the best-ever genome is still reported.
		if err := sink.LogGeneration(logging.Summarize(rec, d.format)); err != nil {
			log.Error("writing generation log failed, stopping", "generation", rec.Generation, "error", err)
			return false
		}
		if display != nil {
			return display.Frame(render.Status(rec.Generation, rec.BestFitness, rec.Stats.Mean), func(c render.Canvas) {
				d.draw(c, rec.Best, history)
			})
		}
		return true
	}

	start := time.Now()
	res, err := eng.Run(ctx, observe)
	elapsed := time.Since(start)
	closeDisplay()
	if err != nil {
		return fmt.Errorf("run %s: %w", d.name, err)
	}

	best := d.format(res.Best)
	sink.LogResult(res.Generations, res.Reason.String(), res.BestFitness, best, elapsed)

	instance, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal problem instance: %w", err)
	}
	champion := logging.Champion{
		RunID:      runID,
		Problem:    string(d.name),
		Generation: res.BestGeneration,
		Fitness:    res.BestFitness,
		Genome:     best,
		Instance:   instance,
	}
	if err := logging.SaveChampion(cfg.Logging.ChampionPath, champion); err != nil {
		log.Warn("failed to save champion", "path", cfg.Logging.ChampionPath, "error", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.Summary(string(d.name),
		render.Field{Label: "Run", Value: runID},
		render.Field{Label: "Generations", Value: strconv.Itoa(res.Generations)},
		render.Field{Label: "Stopped", Value: res.Reason.String()},
		render.Field{Label: "Best fitness", Value: strconv.FormatFloat(res.BestFitness, 'f', -1, 64)},
		render.Field{Label: "Found in generation", Value: strconv.Itoa(res.BestGeneration)},
		render.Field{Label: "Best", Value: best},
		render.Field{Label: "Elapsed", Value: elapsed.Round(time.Millisecond).String()},
	))
	return nil
}
