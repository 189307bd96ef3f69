package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDirectory = "../../pkg/sat/testdata"

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSolve(t *testing.T) {
	tests := []struct {
		file   string
		engine string
		shape  string
		code   int
		output string
	}{
		{"sat_chain.cnf", "gophersat", "flat", exitSatisfiable, "SATISFIABLE\n"},
		{"sat_unused_variables.cnf", "gini", "nested", exitSatisfiable, "SATISFIABLE\n"},
		{"unsat_contradiction.cnf", "gini", "flat", exitUnsatisfiable, "UNSATISFIABLE\n"},
		{"unsat_pigeonhole_3_2.cnf", "gophersat", "nested", exitUnsatisfiable, "UNSATISFIABLE\n"},
	}

	for _, test := range tests {
		t.Run(test.file+"/"+test.engine, func(t *testing.T) {
			code, stdout, _ := run(t, "solve",
				"--file", filepath.Join(testDirectory, test.file),
				"--engine", test.engine,
				"--shape", test.shape,
				"--log-level", "error",
			)
			assert.Equal(t, test.code, code)
			assert.Equal(t, test.output, stdout)
		})
	}
}

func TestSolveFailures(t *testing.T) {
	code, stdout, _ := run(t, "solve", "--log-level", "error")
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout)

	code, _, _ = run(t, "solve", "--file", filepath.Join(t.TempDir(), "missing.cnf"))
	assert.Equal(t, exitFailure, code)

	code, _, _ = run(t, "solve", "--file", filepath.Join(testDirectory, "sat_chain.cnf"), "--engine", "picosat")
	assert.Equal(t, exitFailure, code)
}

func TestSolveResourceLimitFromConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"maxVariables": 2, "logLevel": "error"}`), 0o644))

	code, stdout, stderr := run(t, "solve", "--config", configPath, "--file", filepath.Join(testDirectory, "sat_chain.cnf"))

	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "ResourceLimit")
}

func TestBench(t *testing.T) {
	outDirectory := t.TempDir()
	outFile := filepath.Join(outDirectory, "results.csv")
	metricsFile := filepath.Join(outDirectory, "metrics.txt")

	code, _, _ := run(t, "bench",
		"--dir", testDirectory,
		"--out", outFile,
		"--engines", "gophersat,gini",
		"--metrics", metricsFile,
		"--log-level", "error",
	)
	require.Equal(t, 0, code)

	file, err := os.Open(outFile)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 1+2*4)
	assert.Equal(t, []string{"Engine", "File", "Variables", "Clauses", "Duration(ms)", "Result"}, records[0])
	for _, record := range records[1:] {
		expected := "satisfiable"
		if strings.HasPrefix(filepath.Base(record[1]), "unsat") {
			expected = "unsatisfiable"
		}
		assert.Equal(t, expected, record[5], record[1])
	}

	exposition, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(exposition), `satbridge_calls_total{engine="gini",outcome="unsat"} 2`)
	assert.Contains(t, string(exposition), `satbridge_calls_total{engine="gophersat",outcome="sat"} 2`)
}

func TestBenchRejectsUnknownEngine(t *testing.T) {
	code, _, _ := run(t, "bench", "--dir", testDirectory, "--out", filepath.Join(t.TempDir(), "r.csv"), "--engines", "gini,picosat")
	assert.Equal(t, exitFailure, code)
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "satisfiable", BenchmarkResult{Result: satisfiable}.label())
	assert.Equal(t, "failed(OutOfBounds)", BenchmarkResult{Result: failed, Kind: "OutOfBounds"}.label())
}

func copyTestFile(t *testing.T, name, destination string) {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(testDirectory, name))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(destination, content, 0o644))
}

func TestBenchCachedConfig(t *testing.T) {
	directory := t.TempDir()
	copyTestFile(t, "sat_chain.cnf", filepath.Join(directory, "first.cnf"))
	copyTestFile(t, "sat_chain.cnf", filepath.Join(directory, "second.cnf"))

	outDirectory := t.TempDir()
	configPath := filepath.Join(outDirectory, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"cached": true, "cacheSize": 8, "logLevel": "error"}`), 0o644))
	metricsFile := filepath.Join(outDirectory, "metrics.txt")

	code, _, _ := run(t, "bench",
		"--config", configPath,
		"--dir", directory,
		"--out", filepath.Join(outDirectory, "results.csv"),
		"--engines", "gini",
		"--metrics", metricsFile,
	)
	require.Equal(t, 0, code)

	// The second file is answered from the cache and never reaches the engine
	exposition, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(exposition), `satbridge_calls_total{engine="gini",outcome="sat"} 1`)
}

func TestSolveWithBaseFormula(t *testing.T) {
	directory := t.TempDir()
	basePath := filepath.Join(directory, "base.cnf")
	require.NoError(t, os.WriteFile(basePath, []byte("c 1 VARIABLE_1\np cnf 1 1\n-1 0\n"), 0o644))
	configPath := filepath.Join(directory, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"base": "`+basePath+`", "logLevel": "error"}`), 0o644))

	code, stdout, _ := run(t, "solve", "--config", configPath, "--file", filepath.Join(testDirectory, "sat_chain.cnf"))
	assert.Equal(t, exitUnsatisfiable, code)
	assert.Equal(t, "UNSATISFIABLE\n", stdout)

	code, _, _ = run(t, "solve", "--config", configPath, "--file", filepath.Join(testDirectory, "sat_unused_variables.cnf"))
	assert.Equal(t, exitSatisfiable, code)
}
