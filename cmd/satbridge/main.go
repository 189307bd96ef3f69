package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/limaJavier/satbridge/internal/config"
)

// Exit codes follow the SAT competition convention.
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
	exitFailure       = 1
)

type app struct {
	configPath string
	logLevel   string
	config     config.Config
	logger     *log.Logger
	stdout     io.Writer
	exitCode   int
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	logger := log.New()
	logger.SetOutput(stderr)
	a := &app{logger: logger, stdout: stdout}

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Error("satbridge failed")
		return exitFailure
	}
	return a.exitCode
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "satbridge",
		Short: "Decide CNF satisfiability through a bounds-checked boundary",
		Long: `satbridge validates CNF instances and hands them to an in-process or external SAT engine.
Exit codes are 10 for satisfiable and 20 for unsatisfiable instances.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.config = cfg

			level := cfg.LogLevel
			if cmd.Flags().Changed("log-level") {
				level = a.logLevel
			}
			parsed, err := log.ParseLevel(level)
			if err != nil {
				return err
			}
			a.logger.SetLevel(parsed)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a JSON configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Logging level (panic, fatal, error, warn, info, debug, trace)")

	rootCmd.AddCommand(newSolveCmd(a))
	rootCmd.AddCommand(newBenchCmd(a))
	return rootCmd
}
