package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/limaJavier/satbridge/internal/metrics"
	"github.com/limaJavier/satbridge/pkg/cnf"
	"github.com/limaJavier/satbridge/pkg/sat"
)

type ResultType int

const (
	satisfiable ResultType = iota
	unsatisfiable
	failed
)

var resultTypes = map[ResultType]string{
	satisfiable:   "satisfiable",
	unsatisfiable: "unsatisfiable",
	failed:        "failed",
}

type TestMetadata struct {
	Name      string
	Variables int32
	Clauses   int
	Formula   *cnf.Cnf
}

type BenchmarkResult struct {
	Engine   string
	Test     TestMetadata
	Duration int64
	Result   ResultType
	Kind     string
}

func newBenchCmd(a *app) *cobra.Command {
	var directory, outFile, metricsFile string
	var engines []string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run every DIMACS file of a directory through a set of engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if directory == "" {
				return fmt.Errorf("a test directory must be specified")
			}
			engines = lo.Uniq(lo.Map(engines, func(engine string, _ int) string {
				return strings.ToLower(strings.TrimSpace(engine))
			}))
			if invalid, ok := lo.Find(engines, func(engine string) bool {
				return !slices.Contains(sat.EngineNames, engine)
			}); ok {
				return fmt.Errorf("%v is not a valid engine", invalid)
			}

			tests, err := getTests(directory)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			collector, err := metrics.Register(registry)
			if err != nil {
				return err
			}

			results, err := benchmark(a, engines, tests, collector)
			if err != nil {
				return err
			}
			if err := toCsv(outFile, results); err != nil {
				return err
			}
			if metricsFile != "" {
				return writeMetrics(metricsFile, registry)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&directory, "dir", "", "Directory holding the .cnf files")
	cmd.Flags().StringVar(&outFile, "out", "benchmark_results.csv", "Path to the CSV file where results are written")
	cmd.Flags().StringSliceVar(&engines, "engines", []string{"gophersat", "gini"}, "Engines to benchmark")
	cmd.Flags().StringVar(&metricsFile, "metrics", "", "Optional path where the collected metrics are written in text format")
	return cmd
}

func getTests(directory string) ([]TestMetadata, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	tests := make([]TestMetadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cnf" {
			continue
		}
		filename := filepath.Join(directory, entry.Name())
		instance, formula, err := readFormula(filename)
		if err != nil {
			return nil, err
		}
		tests = append(tests, TestMetadata{
			Name:      filename,
			Variables: instance.Variables,
			Clauses:   len(instance.Clauses),
			Formula:   formula,
		})
	}
	return tests, nil
}

func benchmark(a *app, engines []string, tests []TestMetadata, observer sat.Observer) ([]BenchmarkResult, error) {
	options, err := a.config.SolverOptions(a.logger)
	if err != nil {
		return nil, err
	}
	options.Observer = observer

	results := make([]BenchmarkResult, 0, len(engines)*len(tests))
	for _, engine := range engines {
		// Every engine gets its own solver, so cached verdicts never cross engines
		options.Engine = engine
		solver, err := cnf.NewSolver(options)
		if err != nil {
			return nil, err
		}

		for _, test := range tests {
			a.logger.WithFields(log.Fields{"engine": engine, "test": test.Name}).Info("benchmarking")
			results = append(results, measure(solver, engine, test))
		}
	}
	return results, nil
}

func measure(solver cnf.Solver, engine string, test TestMetadata) BenchmarkResult {
	start := time.Now()
	ok, err := solver.IsSatisfiable(test.Formula)
	result := BenchmarkResult{
		Engine:   engine,
		Test:     test,
		Duration: time.Since(start).Milliseconds(),
	}

	var solverErr *sat.SolverError
	switch {
	case errors.As(err, &solverErr):
		result.Result, result.Kind = failed, solverErr.Kind.String()
	case err != nil:
		result.Result, result.Kind = failed, sat.InternalError.String()
	case ok:
		result.Result = satisfiable
	default:
		result.Result = unsatisfiable
	}
	return result
}

func (result BenchmarkResult) label() string {
	if result.Result == failed {
		return fmt.Sprintf("%v(%v)", resultTypes[failed], result.Kind)
	}
	return resultTypes[result.Result]
}

func toCsv(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"Engine", "File", "Variables", "Clauses", "Duration(ms)", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Engine,
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Variables),
			fmt.Sprintf("%d", result.Test.Clauses),
			fmt.Sprintf("%d", result.Duration),
			result.label(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeMetrics(path string, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("cannot gather metrics: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create metrics file: %w", err)
	}
	defer file.Close()

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(file, family); err != nil {
			return fmt.Errorf("cannot write metrics: %w", err)
		}
	}
	return nil
}
