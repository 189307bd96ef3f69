package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/limaJavier/satbridge/pkg/cnf"
	"github.com/limaJavier/satbridge/pkg/sat"
)

// Config is the on-disk configuration of satbridge. Every field is optional.
type Config struct {
	Engine          string            `mapstructure:"engine"`
	Shape           string            `mapstructure:"shape"`
	MaxVariables    int               `mapstructure:"maxVariables"`
	MaxClauseLength int               `mapstructure:"maxClauseLength"`
	SolveBudget     time.Duration     `mapstructure:"solveBudget"`
	Cached          bool              `mapstructure:"cached"`
	CacheSize       int               `mapstructure:"cacheSize"`
	// Base is a DIMACS file conjoined with every query.
	Base            string            `mapstructure:"base"`
	LogLevel        string            `mapstructure:"logLevel"`
	Paths           map[string]string `mapstructure:"paths"`
}

func Default() Config {
	return Config{
		Engine:   "gophersat",
		Shape:    sat.ShapeFlat.String(),
		LogLevel: logrus.InfoLevel.String(),
		Paths:    map[string]string{},
	}
}

// Load reads a JSON file on top of the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("cannot read config file: %w", err)
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return config, fmt.Errorf("cannot parse config file \"%v\": %w", path, err)
	}

	if err := Decode(inputJson, &config); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// Decode applies a generic key-value map onto config. Durations may be given as strings
// ("250ms") or as integer nanoseconds.
func Decode(input map[string]any, config *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           config,
	})
	if err != nil {
		return fmt.Errorf("cannot create config decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	// Engine names are case-insensitive
	config.Paths = lo.MapKeys(config.Paths, func(_ string, name string) string {
		return strings.ToLower(name)
	})
	return nil
}

func (c Config) Validate() error {
	if !lo.Contains(sat.EngineNames, strings.ToLower(c.Engine)) {
		return fmt.Errorf("%v is not a valid engine", c.Engine)
	}
	if _, err := sat.ParseShape(c.Shape); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxVariables < 0 || c.MaxClauseLength < 0 || c.SolveBudget < 0 || c.CacheSize < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	return nil
}

func (c Config) Limits() sat.Limits {
	return sat.Limits{
		MaxVariables:    c.MaxVariables,
		MaxClauseLength: c.MaxClauseLength,
		SolveBudget:     c.SolveBudget,
	}
}

// SolverOptions translates the configuration into the options of cnf.NewSolver, reading the
// base formula when one is configured.
func (c Config) SolverOptions(logger logrus.FieldLogger) (cnf.Options, error) {
	shape, err := sat.ParseShape(c.Shape)
	if err != nil {
		return cnf.Options{}, err
	}
	options := cnf.Options{
		Engine:    strings.ToLower(c.Engine),
		Shape:     shape,
		Limits:    c.Limits(),
		Paths:     c.Paths,
		Cached:    c.Cached,
		CacheSize: c.CacheSize,
		Logger:    logger,
	}
	if c.Base != "" {
		base, err := cnf.ReadDIMACSFile(c.Base)
		if err != nil {
			return cnf.Options{}, fmt.Errorf("cannot load base formula: %w", err)
		}
		options.Base = base
	}
	return options, nil
}
