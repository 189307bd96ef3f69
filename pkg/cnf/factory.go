package cnf

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/limaJavier/satbridge/pkg/sat"
)

// Options describe how NewSolver assembles a Solver.
type Options struct {
	Engine string
	Shape  sat.Shape
	Limits sat.Limits
	// Paths maps external engine names to executables.
	Paths map[string]string
	// Base is conjoined with every query when non-nil.
	Base      *Cnf
	Cached    bool
	CacheSize int
	Logger    logrus.FieldLogger
	Observer  sat.Observer
}

// NewSolver assembles engine, bridge, base formula and optional cache as options describe.
func NewSolver(options Options) (Solver, error) {
	bridge, err := NewBridge(options)
	if err != nil {
		return nil, err
	}

	var solver Solver = NewSingleShotSolver(bridge, options.Base)
	if options.Cached {
		solver = NewCachedSolver(solver, options.CacheSize)
	}
	return solver, nil
}

// NewBridge resolves options.Engine and wraps it in a sat.Bridge with the configured shape,
// logger and observer.
func NewBridge(options Options) (*sat.Bridge, error) {
	engine, err := sat.EngineByName(options.Engine, options.Limits, options.Paths)
	if err != nil {
		return nil, fmt.Errorf("cannot create solver: %w", err)
	}

	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if external, ok := engine.(*sat.ExternalEngine); ok {
		external.WithLogger(logger)
	}

	bridgeOptions := []sat.Option{sat.WithShape(options.Shape), sat.WithLogger(logger)}
	if options.Observer != nil {
		bridgeOptions = append(bridgeOptions, sat.WithObserver(options.Observer))
	}
	logger.WithFields(logrus.Fields{
		"engine": engine.Name(),
		"shape":  options.Shape.String(),
		"cached": options.Cached,
		"base":   options.Base != nil,
	}).Debug("creating SAT solver")

	return sat.NewBridge(engine, bridgeOptions...), nil
}
