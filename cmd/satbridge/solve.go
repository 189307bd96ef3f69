package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/limaJavier/satbridge/pkg/cnf"
	"github.com/limaJavier/satbridge/pkg/sat"
)

func newSolveCmd(a *app) *cobra.Command {
	var filePath, engineName, shapeName string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Decide a DIMACS CNF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("an input file must be specified")
			}
			if cmd.Flags().Changed("engine") {
				a.config.Engine = engineName
			}
			if cmd.Flags().Changed("shape") {
				a.config.Shape = shapeName
			}
			if err := a.config.Validate(); err != nil {
				return err
			}

			options, err := a.config.SolverOptions(a.logger)
			if err != nil {
				return err
			}
			solver, err := cnf.NewSolver(options)
			if err != nil {
				return err
			}
			_, formula, err := readFormula(filePath)
			if err != nil {
				return err
			}

			satisfiable, err := solver.IsSatisfiable(formula)
			if err != nil {
				kind, _ := sat.KindOf(err)
				return fmt.Errorf("cannot solve \"%v\" (%v): %w", filePath, kind, err)
			}

			if satisfiable {
				fmt.Fprintln(a.stdout, "SATISFIABLE")
				a.exitCode = exitSatisfiable
			} else {
				fmt.Fprintln(a.stdout, "UNSATISFIABLE")
				a.exitCode = exitUnsatisfiable
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to the DIMACS CNF file")
	cmd.Flags().StringVar(&engineName, "engine", "gophersat", fmt.Sprintf("Engine to use. Allowed values are: %v", sat.EngineNames))
	cmd.Flags().StringVar(&shapeName, "shape", "flat", "Clause shape used to cross the boundary: \"flat\" or \"nested\"")
	return cmd
}

// readFormula parses a DIMACS file into its numbered instance and the equivalent named formula.
func readFormula(filePath string) (sat.SAT, *cnf.Cnf, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return sat.SAT{}, nil, fmt.Errorf("cannot open input file: %w", err)
	}
	defer file.Close()

	instance, names, err := sat.ParseDIMACSNamed(file)
	if err != nil {
		return sat.SAT{}, nil, fmt.Errorf("cannot parse input file \"%v\": %w", filePath, err)
	}
	formula, err := cnf.FromSAT(instance, names)
	if err != nil {
		return sat.SAT{}, nil, fmt.Errorf("invalid input file \"%v\": %w", filePath, err)
	}
	return instance, formula, nil
}
