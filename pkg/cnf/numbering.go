package cnf

import (
	"maps"
)

// Numbering assigns 1-based variable indices to names. Indices are stable once assigned.
type Numbering struct {
	indices map[string]int32
	max     int32
}

// NewNumbering extends base (which may be nil) with every name it does not know yet, in the
// order given. base itself is not modified.
func NewNumbering(base *Numbering, names []string) *Numbering {
	numbering := &Numbering{indices: make(map[string]int32, len(names))}
	if base != nil {
		maps.Copy(numbering.indices, base.indices)
		numbering.max = base.max
	}
	for _, name := range names {
		if _, ok := numbering.indices[name]; !ok {
			numbering.max++
			numbering.indices[name] = numbering.max
		}
	}
	return numbering
}

func (n *Numbering) Index(name string) (int32, bool) {
	index, ok := n.indices[name]
	return index, ok
}

// Len is the highest index assigned.
func (n *Numbering) Len() int32 {
	return n.max
}

// Clauses translates the rows of cnf into signed literals. Every name must be numbered.
func (n *Numbering) Clauses(cnf *Cnf) [][]int32 {
	clauses := make([][]int32, len(cnf.rows))
	for i, row := range cnf.rows {
		clause := make([]int32, len(row))
		for j, variable := range row {
			clause[j] = n.indices[variable.Name]
			if variable.Negated {
				clause[j] = -clause[j]
			}
		}
		clauses[i] = clause
	}
	return clauses
}
