package cnf

import (
	"slices"
	"strings"

	"github.com/mitchellh/hashstructure"
	"github.com/samber/lo"
)

// Variable is a named propositional variable, possibly negated, as it appears in a row.
type Variable struct {
	Name    string
	Negated bool
}

func Var(name string) Variable {
	return Variable{Name: name}
}

func Not(name string) Variable {
	return Variable{Name: name, Negated: true}
}

func (v Variable) String() string {
	if v.Negated {
		return "!" + v.Name
	}
	return v.Name
}

// Cnf is a conjunction of rows; every row is a disjunction of variables.
type Cnf struct {
	rows [][]Variable
}

func New(rows ...[]Variable) *Cnf {
	cnf := &Cnf{rows: make([][]Variable, 0, len(rows))}
	for _, row := range rows {
		cnf.AddRow(row...)
	}
	return cnf
}

func (c *Cnf) AddRow(row ...Variable) {
	c.rows = append(c.rows, slices.Clone(row))
}

func (c *Cnf) Row(i int) []Variable {
	return c.rows[i]
}

func (c *Cnf) RowCount() int {
	return len(c.rows)
}

// VarNames returns every variable name in the formula, sorted and without duplicates.
func (c *Cnf) VarNames() []string {
	names := lo.Uniq(lo.FlatMap(c.rows, func(row []Variable, _ int) []string {
		return lo.Map(row, func(v Variable, _ int) string { return v.Name })
	}))
	slices.Sort(names)
	return names
}

// Combine returns a new formula holding the rows of c followed by the rows of other.
func (c *Cnf) Combine(other *Cnf) *Cnf {
	return New(append(slices.Clone(c.rows), other.rows...)...)
}

func (c *Cnf) Clone() *Cnf {
	return New(c.rows...)
}

func (c *Cnf) String() string {
	var builder strings.Builder
	for _, row := range c.rows {
		builder.WriteString("[")
		builder.WriteString(strings.Join(lo.Map(row, func(v Variable, _ int) string { return v.String() }), ", "))
		builder.WriteString("]\n")
	}
	return builder.String()
}

// Equal compares two formulas as sets of rows and rows as sets of variables, since neither
// order matters for satisfiability.
func (c *Cnf) Equal(other *Cnf) bool {
	return slices.Equal(c.canonical(), other.canonical())
}

func (c *Cnf) canonical() []string {
	rows := lo.Map(c.rows, func(row []Variable, _ int) string {
		literals := lo.Uniq(lo.Map(row, func(v Variable, _ int) string { return v.String() }))
		slices.Sort(literals)
		return strings.Join(literals, "\x00")
	})
	rows = lo.Uniq(rows)
	slices.Sort(rows)
	return rows
}

// hash is insensitive to the order of rows and of variables within a row.
func (c *Cnf) hash() (uint64, error) {
	return hashstructure.Hash(c.rows, &hashstructure.HashOptions{SlicesAsSets: true})
}
