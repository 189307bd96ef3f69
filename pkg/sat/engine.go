package sat

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Outcome is the raw answer of an engine's solve call.
type Outcome int

const (
	Indeterminate Outcome = iota
	Satisfiable
	Unsatisfiable
)

func (outcome Outcome) String() string {
	switch outcome {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "INDETERMINATE"
	}
}

// EngineLit is a zero-indexed variable plus its polarity, the representation engines receive.
type EngineLit struct {
	Var     int
	Negated bool
}

func toEngineLit(literal int32) EngineLit {
	if literal < 0 {
		return EngineLit{Var: int(-literal) - 1, Negated: true}
	}
	return EngineLit{Var: int(literal) - 1}
}

// Session is one single-use solving state. It is driven in order: NewVars, AddClause for each
// clause, then Solve exactly once.
type Session interface {
	NewVars(n int) error
	// AddClause must not retain lits after returning.
	AddClause(lits []EngineLit) error
	Solve() (Outcome, error)
}

// Engine constructs fresh sessions. Implementations must allow concurrent NewSession calls.
type Engine interface {
	Name() string
	NewSession() (Session, error)
}

// Limits bound what in-process engines accept. Zero values disable a limit.
type Limits struct {
	MaxVariables    int
	MaxClauseLength int
	// SolveBudget is honored by engines that can stop a running search (gini). The search then
	// runs on its own goroutine, where an engine panic is not recovered and ends the process.
	SolveBudget time.Duration
}

func (l Limits) allowVariables(n int) error {
	if l.MaxVariables > 0 && n > l.MaxVariables {
		return &EngineFailure{Reason: TooManyVariables, Err: fmt.Errorf("%d variables requested, limit is %d", n, l.MaxVariables)}
	}
	return nil
}

func (l Limits) allowClause(length int) error {
	if l.MaxClauseLength > 0 && length > l.MaxClauseLength {
		return &EngineFailure{Reason: TooLongClause, Err: fmt.Errorf("clause of %d literals, limit is %d", length, l.MaxClauseLength)}
	}
	return nil
}

func checkAllocated(lits []EngineLit, numVars int) error {
	for _, lit := range lits {
		if lit.Var < 0 || lit.Var >= numVars {
			return &EngineFailure{Reason: EngineFault, Err: fmt.Errorf("variable %d was not allocated", lit.Var)}
		}
	}
	return nil
}

// EngineNames lists every name accepted by EngineByName.
var EngineNames = []string{"gophersat", "gini", "kissat", "cadical", "cryptominisat", "slime", "ortoolsat"}

// EngineByName resolves a configured engine. paths maps external engine names to their
// executables; missing entries fall back to the bare name, resolved through PATH. Names and
// path keys are matched case-insensitively.
func EngineByName(name string, limits Limits, paths map[string]string) (Engine, error) {
	name = strings.ToLower(name)
	paths = lo.MapKeys(paths, func(_ string, key string) string { return strings.ToLower(key) })
	path := lo.ValueOr(paths, name, name)

	switch name {
	case "", "gophersat":
		return NewGophersatEngine(limits), nil
	case "gini":
		return NewGiniEngine(limits), nil
	case "kissat":
		return NewKissatEngine(path), nil
	case "cadical":
		return NewCadicalEngine(path), nil
	case "cryptominisat":
		return NewCryptominisatEngine(path), nil
	case "slime":
		return NewSlimeEngine(path), nil
	case "ortoolsat":
		return NewOrtoolsatEngine(path), nil
	default:
		return nil, fmt.Errorf("unknown engine %q: allowed values are %v", name, EngineNames)
	}
}
