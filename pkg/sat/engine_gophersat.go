package sat

import (
	"github.com/crillab/gophersat/solver"
)

type gophersatEngine struct {
	limits Limits
}

// NewGophersatEngine returns the default in-process engine, built on gophersat's CDCL solver.
func NewGophersatEngine(limits Limits) Engine {
	return &gophersatEngine{limits: limits}
}

func (engine *gophersatEngine) Name() string {
	return "gophersat"
}

func (engine *gophersatEngine) NewSession() (Session, error) {
	return &gophersatSession{limits: engine.limits}, nil
}

type gophersatSession struct {
	limits   Limits
	numVars  int
	clauses  [][]int
	consumed bool
}

func (session *gophersatSession) NewVars(n int) error {
	if err := session.limits.allowVariables(session.numVars + n); err != nil {
		return err
	}
	session.numVars += n
	return nil
}

func (session *gophersatSession) AddClause(lits []EngineLit) error {
	if err := session.limits.allowClause(len(lits)); err != nil {
		return err
	}
	if err := checkAllocated(lits, session.numVars); err != nil {
		return err
	}

	clause := make([]int, len(lits))
	for i, lit := range lits {
		clause[i] = lit.Var + 1
		if lit.Negated {
			clause[i] = -clause[i]
		}
	}
	session.clauses = append(session.clauses, clause)
	return nil
}

func (session *gophersatSession) Solve() (Outcome, error) {
	if session.consumed {
		return Indeterminate, &EngineFailure{Reason: EngineFault}
	}
	session.consumed = true

	problem := solver.ParseSlice(session.clauses)
	session.clauses = nil
	switch solver.New(problem).Solve() {
	case solver.Sat:
		return Satisfiable, nil
	case solver.Unsat:
		return Unsatisfiable, nil
	default:
		return Indeterminate, nil
	}
}
