package logging

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"gademo/internal/ga"
)

// NewRunID returns a fresh identifier used to correlate logs and artifacts of one run.
func NewRunID() string {
	return uuid.NewString()
}

// Logger writes per-generation summaries to CSV, JSONL and the structured log
type Logger struct {
	runID    string
	problem  string
	csvPath  string
	jsonPath string
	log      *slog.Logger
	quiet    bool

	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	initialized bool
}

// NewLogger creates a new logger. Empty paths disable the matching file sink.
func NewLogger(runID, problem, csvPath, jsonPath string, log *slog.Logger) (*Logger, error) {
	if log == nil {
		log = slog.Default()
	}
	l := &Logger{
		runID:    runID,
		problem:  problem,
		csvPath:  csvPath,
		jsonPath: jsonPath,
		log:      log.With("run_id", runID, "problem", problem),
	}

	// Ensure directories exist
	for _, p := range []string{csvPath, jsonPath} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	return l, nil
}

// SetQuiet suppresses the per-generation console line; files are still written.
func (l *Logger) SetQuiet(quiet bool) {
	l.quiet = quiet
}

// Init opens the log files and writes the CSV header
func (l *Logger) Init() error {
	var err error

	if l.csvPath != "" {
		l.csvFile, err = os.Create(l.csvPath)
		if err != nil {
			return fmt.Errorf("create csv log: %w", err)
		}
		l.csvWriter = csv.NewWriter(l.csvFile)

		header := []string{"run_id", "generation", "best_fitness", "mean_fitness", "std_fitness", "worst_fitness", "best"}
		if err := l.csvWriter.Write(header); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}

	if l.jsonPath != "" {
		l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("create json log: %w", err)
		}
	}

	l.initialized = true
	return nil
}

// Close flushes and closes all log files
func (l *Logger) Close() error {
	var errs []error
	if l.csvWriter != nil {
		l.csvWriter.Flush()
		errs = append(errs, l.csvWriter.Error())
	}
	if l.csvFile != nil {
		errs = append(errs, l.csvFile.Close())
	}
	if l.jsonFile != nil {
		errs = append(errs, l.jsonFile.Close())
	}
	l.initialized = false
	return errors.Join(errs...)
}

// GenerationSummary holds per-generation statistics
type GenerationSummary struct {
	RunID        string    `json:"run_id"`
	Problem      string    `json:"problem"`
	Generation   int       `json:"generation"`
	BestFitness  float64   `json:"best_fitness"`
	MeanFitness  float64   `json:"mean_fitness"`
	StdFitness   float64   `json:"std_fitness"`
	WorstFitness float64   `json:"worst_fitness"`
	Best         string    `json:"best"`
	Timestamp    time.Time `json:"timestamp"`
}

// Summarize turns a generation record into a summary row; format renders the best genome.
func Summarize[E any](rec ga.Record[E], format func([]E) string) GenerationSummary {
	s := GenerationSummary{
		Generation:   rec.Generation,
		BestFitness:  rec.BestFitness,
		MeanFitness:  rec.Stats.Mean,
		StdFitness:   rec.Stats.Std,
		WorstFitness: rec.Stats.Worst,
		Timestamp:    time.Now().UTC(),
	}
	if format != nil {
		s.Best = format(rec.Best)
	}
	return s
}

// LogGeneration logs a generation summary
func (l *Logger) LogGeneration(s GenerationSummary) error {
	s.RunID = l.runID
	s.Problem = l.problem

	if !l.quiet {
		l.log.Info("generation",
			"gen", s.Generation,
			"best", s.BestFitness,
			"mean", s.MeanFitness,
			"std", s.StdFitness,
			"genome", s.Best,
		)
	}

	if !l.initialized {
		return nil
	}

	if l.csvWriter != nil {
		row := []string{
			s.RunID,
			strconv.Itoa(s.Generation),
			strconv.FormatFloat(s.BestFitness, 'f', -1, 64),
			strconv.FormatFloat(s.MeanFitness, 'f', 4, 64),
			strconv.FormatFloat(s.StdFitness, 'f', 4, 64),
			strconv.FormatFloat(s.WorstFitness, 'f', -1, 64),
			s.Best,
		}
		if err := l.csvWriter.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
		l.csvWriter.Flush()
		if err := l.csvWriter.Error(); err != nil {
			return fmt.Errorf("flush csv: %w", err)
		}
	}

	if l.jsonFile != nil {
		line, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		if _, err := l.jsonFile.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("write json line: %w", err)
		}
	}
	return nil
}

// LogResult logs the outcome of a finished run
func (l *Logger) LogResult(generations int, reason string, bestFitness float64, best string, elapsed time.Duration) {
	l.log.Info("run complete",
		"generations", generations,
		"reason", reason,
		"best_fitness", bestFitness,
		"best", best,
		"elapsed", elapsed,
	)
}
