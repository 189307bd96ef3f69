package cnf

import "fmt"

// Formula is a propositional formula tree built from atoms, constants, negation and binary
// conjunction and disjunction.
type Formula interface {
	// Evaluate computes the truth value under assignment. Missing atoms are false.
	Evaluate(assignment map[string]bool) bool
	String() string
	formula()
}

type Atom struct {
	Name string
}

type Constant bool

type Negation struct {
	Formula Formula
}

type Conjunction struct {
	Left, Right Formula
}

type Disjunction struct {
	Left, Right Formula
}

const (
	True  = Constant(true)
	False = Constant(false)
)

func NewAtom(name string) Atom {
	return Atom{Name: name}
}

func Negate(formula Formula) Negation {
	return Negation{Formula: formula}
}

// And folds its operands into left-nested conjunctions. It returns True without operands.
func And(operands ...Formula) Formula {
	return fold(operands, True, func(left, right Formula) Formula { return Conjunction{Left: left, Right: right} })
}

// Or folds its operands into left-nested disjunctions. It returns False without operands.
func Or(operands ...Formula) Formula {
	return fold(operands, False, func(left, right Formula) Formula { return Disjunction{Left: left, Right: right} })
}

func fold(operands []Formula, empty Formula, combine func(left, right Formula) Formula) Formula {
	if len(operands) == 0 {
		return empty
	}
	result := operands[0]
	for _, operand := range operands[1:] {
		result = combine(result, operand)
	}
	return result
}

func (a Atom) Evaluate(assignment map[string]bool) bool { return assignment[a.Name] }
func (a Atom) String() string                           { return a.Name }
func (Atom) formula()                                   {}

func (c Constant) Evaluate(map[string]bool) bool { return bool(c) }
func (Constant) formula()                        {}

func (c Constant) String() string {
	if c {
		return "1"
	}
	return "0"
}

func (n Negation) Evaluate(assignment map[string]bool) bool { return !n.Formula.Evaluate(assignment) }
func (n Negation) String() string                           { return "!" + n.Formula.String() }
func (Negation) formula()                                   {}

func (c Conjunction) Evaluate(assignment map[string]bool) bool {
	return c.Left.Evaluate(assignment) && c.Right.Evaluate(assignment)
}

func (c Conjunction) String() string {
	return fmt.Sprintf("(%v && %v)", c.Left, c.Right)
}

func (Conjunction) formula() {}

func (d Disjunction) Evaluate(assignment map[string]bool) bool {
	return d.Left.Evaluate(assignment) || d.Right.Evaluate(assignment)
}

func (d Disjunction) String() string {
	return fmt.Sprintf("(%v || %v)", d.Left, d.Right)
}

func (Disjunction) formula() {}
