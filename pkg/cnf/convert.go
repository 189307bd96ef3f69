package cnf

import (
	"errors"
	"fmt"
	"strings"
)

// Names of the atoms that stand in for the constants in converted formulas.
const (
	PseudoTrue  = "PSEUDO_TRUE"
	PseudoFalse = "PSEUDO_FALSE"
)

// ErrConversion is wrapped by every error a Converter returns.
var ErrConversion = errors.New("cannot convert formula to CNF")

// Strategy selects how disjunctions are distributed during conversion.
type Strategy int

const (
	// Recursive distributes every disjunction, yielding an equivalent formula whose size may
	// grow exponentially.
	Recursive Strategy = iota
	// RecursiveReplacing introduces a fresh helper variable whenever both sides of a
	// disjunction are compound. The result is equisatisfiable rather than equivalent.
	RecursiveReplacing
)

func (strategy Strategy) String() string {
	switch strategy {
	case Recursive:
		return "recursive"
	case RecursiveReplacing:
		return "recursive-replacing"
	default:
		return fmt.Sprintf("Strategy(%d)", int(strategy))
	}
}

func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToLower(value) {
	case "", "recursive":
		return Recursive, nil
	case "recursive-replacing":
		return RecursiveReplacing, nil
	default:
		return 0, fmt.Errorf("unknown conversion strategy %q", value)
	}
}

// Converter turns formulas into CNF.
type Converter interface {
	Convert(Formula) (*Cnf, error)
}

// NewConverter returns a converter for strategy. Replacing converters number their helper
// variables temp_1, temp_2, ... across calls and are not safe for concurrent use.
func NewConverter(strategy Strategy) (Converter, error) {
	switch strategy {
	case Recursive:
		return &recursiveConverter{}, nil
	case RecursiveReplacing:
		return &recursiveConverter{replacing: true}, nil
	default:
		return nil, fmt.Errorf("unknown conversion strategy %v", strategy)
	}
}

// Convert converts formula with a fresh converter for strategy.
func Convert(formula Formula, strategy Strategy) (*Cnf, error) {
	converter, err := NewConverter(strategy)
	if err != nil {
		return nil, err
	}
	return converter.Convert(formula)
}

type recursiveConverter struct {
	replacing bool
	helpers   int
}

func (c *recursiveConverter) Convert(formula Formula) (*Cnf, error) {
	result := New()
	hasConstants, err := containsConstants(formula)
	if err != nil {
		return nil, err
	}
	if hasConstants {
		result.AddRow(Not(PseudoFalse))
		result.AddRow(Var(PseudoTrue))
	}

	converted, err := c.convert(formula)
	if err != nil {
		return nil, err
	}
	return result.Combine(converted), nil
}

func containsConstants(formula Formula) (bool, error) {
	switch f := formula.(type) {
	case Constant:
		return true, nil
	case Atom:
		return false, nil
	case Negation:
		return containsConstants(f.Formula)
	case Conjunction:
		return anyConstants(f.Left, f.Right)
	case Disjunction:
		return anyConstants(f.Left, f.Right)
	default:
		return false, unexpected(formula)
	}
}

func anyConstants(left, right Formula) (bool, error) {
	found, err := containsConstants(left)
	if err != nil || found {
		return found, err
	}
	return containsConstants(right)
}

func unexpected(formula Formula) error {
	return fmt.Errorf("%w: unexpected element %T", ErrConversion, formula)
}

func (c *recursiveConverter) convert(formula Formula) (*Cnf, error) {
	switch f := formula.(type) {
	case Atom:
		return New([]Variable{Var(f.Name)}), nil
	case Constant:
		if f {
			return New([]Variable{Var(PseudoTrue)}), nil
		}
		return New([]Variable{Var(PseudoFalse)}), nil
	case Conjunction:
		left, err := c.convert(f.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.convert(f.Right)
		if err != nil {
			return nil, err
		}
		return left.Combine(right), nil
	case Disjunction:
		return c.convertOr(f)
	case Negation:
		return c.convertNot(f)
	default:
		return nil, unexpected(formula)
	}
}

// convertOr distributes (P1 ^ ... ^ Pm) v (Q1 ^ ... ^ Qn) into every Pi v Qj.
func (c *recursiveConverter) convertOr(disjunction Disjunction) (*Cnf, error) {
	if c.replacing {
		leftComplex, err := isComplex(disjunction.Left)
		if err != nil {
			return nil, err
		}
		rightComplex, err := isComplex(disjunction.Right)
		if err != nil {
			return nil, err
		}
		if leftComplex && rightComplex {
			c.helpers++
			helper := NewAtom(fmt.Sprintf("temp_%d", c.helpers))
			return c.convert(Conjunction{
				Left:  Disjunction{Left: Negate(helper), Right: disjunction.Left},
				Right: Disjunction{Left: helper, Right: disjunction.Right},
			})
		}
	}

	left, err := c.convert(disjunction.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.convert(disjunction.Right)
	if err != nil {
		return nil, err
	}

	result := New()
	for _, p := range left.rows {
		for _, q := range right.rows {
			row := make([]Variable, 0, len(p)+len(q))
			row = append(row, p...)
			row = append(row, q...)
			result.rows = append(result.rows, row)
		}
	}
	return result, nil
}

func (c *recursiveConverter) convertNot(negation Negation) (*Cnf, error) {
	switch inner := negation.Formula.(type) {
	case Atom:
		return New([]Variable{Not(inner.Name)}), nil
	case Constant:
		return c.convert(!inner)
	case Negation:
		return c.convert(inner.Formula)
	case Disjunction:
		// De Morgan
		return c.convert(Conjunction{Left: Negate(inner.Left), Right: Negate(inner.Right)})
	case Conjunction:
		return c.convert(Disjunction{Left: Negate(inner.Left), Right: Negate(inner.Right)})
	default:
		return nil, unexpected(negation.Formula)
	}
}

// isComplex reports whether formula contains a binary operator below any negations.
func isComplex(formula Formula) (bool, error) {
	switch f := formula.(type) {
	case Atom, Constant:
		return false, nil
	case Negation:
		return isComplex(f.Formula)
	case Conjunction, Disjunction:
		return true, nil
	default:
		return false, unexpected(formula)
	}
}
