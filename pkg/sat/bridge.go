package sat

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Observer is notified once per Bridge call, after the verdict or error is known.
type Observer interface {
	Observe(engine string, satisfiable bool, err error, duration time.Duration)
}

// Bridge validates caller-supplied CNF instances and hands them to an engine, one fresh
// session per call. A Bridge keeps no per-call state and is safe for concurrent use.
type Bridge struct {
	engine   Engine
	shape    Shape
	logger   logrus.FieldLogger
	observer Observer
}

type Option func(*Bridge)

// WithShape selects the encoding SolveSAT uses to cross the boundary.
func WithShape(shape Shape) Option {
	return func(b *Bridge) { b.shape = shape }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *Bridge) { b.logger = logger }
}

func WithObserver(observer Observer) Option {
	return func(b *Bridge) { b.observer = observer }
}

func NewBridge(engine Engine, options ...Option) *Bridge {
	bridge := &Bridge{
		engine: engine,
		shape:  ShapeFlat,
		logger: logrus.StandardLogger(),
	}
	for _, option := range options {
		option(bridge)
	}
	return bridge
}

func (b *Bridge) Engine() Engine {
	return b.engine
}

func (b *Bridge) Shape() Shape {
	return b.shape
}

// Solve decides the instance encoded in buffer as numClauses length-prefixed clauses. Only the
// first capacity elements of buffer are ever read, and buffer is not retained.
func (b *Bridge) Solve(numVars, numClauses int32, buffer []int32, capacity int32) (bool, error) {
	start := time.Now()
	satisfiable, err := b.solveFlat(numVars, numClauses, buffer, capacity)
	b.report(ShapeFlat, numVars, numClauses, start, satisfiable, err)
	return satisfiable, err
}

func (b *Bridge) solveFlat(numVars, numClauses int32, buffer []int32, capacity int32) (bool, error) {
	if err := validateParameters(numVars, numClauses); err != nil {
		return false, err
	}
	view, err := NewBuffer(buffer, capacity)
	if err != nil {
		return false, err
	}
	return solveWith(b.engine, numVars, newFlatDecoder(view, numVars, numClauses))
}

// SolveNested decides an instance given as one slice per clause. It yields the same verdict
// as Solve for the same content, including rejecting an empty clause list.
func (b *Bridge) SolveNested(numVars int32, clauses [][]int32) (bool, error) {
	start := time.Now()
	satisfiable, err := b.solveNested(numVars, clauses)
	b.report(ShapeNested, numVars, int32(min(len(clauses), math.MaxInt32)), start, satisfiable, err)
	return satisfiable, err
}

func (b *Bridge) solveNested(numVars int32, clauses [][]int32) (bool, error) {
	if err := validateVariables(numVars); err != nil {
		return false, err
	}
	if len(clauses) == 0 {
		return false, invalidParameterf("clause list is empty")
	}
	return solveWith(b.engine, numVars, newNestedDecoder(clauses, numVars))
}

// SolveSAT crosses the boundary with the configured shape.
func (b *Bridge) SolveSAT(instance SAT) (bool, error) {
	if b.shape == ShapeNested {
		return b.SolveNested(instance.Variables, instance.Clauses)
	}

	buffer, err := instance.Flatten()
	if err != nil {
		return false, err
	}
	return b.Solve(instance.Variables, int32(len(instance.Clauses)), buffer, int32(len(buffer)))
}

func (b *Bridge) report(shape Shape, numVars, numClauses int32, start time.Time, satisfiable bool, err error) {
	duration := time.Since(start)
	entry := b.logger.WithFields(logrus.Fields{
		"engine":   b.engine.Name(),
		"shape":    shape.String(),
		"vars":     numVars,
		"clauses":  numClauses,
		"duration": duration,
	})
	if err != nil {
		kind, _ := KindOf(err)
		entry.WithField("kind", kind.String()).WithError(err).Warn("solver call failed")
	} else {
		entry.WithField("satisfiable", satisfiable).Debug("solver call finished")
	}

	if b.observer != nil {
		b.observer.Observe(b.engine.Name(), satisfiable, err, duration)
	}
}
