package sat

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

const (
	giniSatisfiable   = 1
	giniUnsatisfiable = -1
)

type giniEngine struct {
	limits Limits
}

// NewGiniEngine returns an engine backed by gini. When limits.SolveBudget is set, a search
// that outlives the budget is abandoned and reported as Indeterminate.
func NewGiniEngine(limits Limits) Engine {
	return &giniEngine{limits: limits}
}

func (engine *giniEngine) Name() string {
	return "gini"
}

func (engine *giniEngine) NewSession() (Session, error) {
	return &giniSession{limits: engine.limits, g: gini.New()}, nil
}

type giniSession struct {
	limits   Limits
	g        *gini.Gini
	numVars  int
	empty    bool
	consumed bool
}

func (session *giniSession) NewVars(n int) error {
	if err := session.limits.allowVariables(session.numVars + n); err != nil {
		return err
	}
	session.numVars += n
	return nil
}

func (session *giniSession) AddClause(lits []EngineLit) error {
	if err := session.limits.allowClause(len(lits)); err != nil {
		return err
	}
	if err := checkAllocated(lits, session.numVars); err != nil {
		return err
	}
	if len(lits) == 0 {
		session.empty = true
		return nil
	}

	for _, lit := range lits {
		v := z.Var(lit.Var + 1)
		if lit.Negated {
			session.g.Add(v.Neg())
		} else {
			session.g.Add(v.Pos())
		}
	}
	session.g.Add(z.LitNull)
	return nil
}

func (session *giniSession) Solve() (Outcome, error) {
	if session.consumed {
		return Indeterminate, &EngineFailure{Reason: EngineFault}
	}
	session.consumed = true
	if session.empty {
		return Unsatisfiable, nil
	}

	var result int
	if session.limits.SolveBudget > 0 {
		result = session.g.GoSolve().Try(session.limits.SolveBudget)
	} else {
		result = session.g.Solve()
	}

	switch result {
	case giniSatisfiable:
		return Satisfiable, nil
	case giniUnsatisfiable:
		return Unsatisfiable, nil
	default:
		return Indeterminate, nil
	}
}
