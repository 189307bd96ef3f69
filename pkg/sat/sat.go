package sat

import (
	"math"

	"github.com/samber/lo"
)

// SAT is a CNF instance: variables are numbered 1..Variables and every clause is a slice of
// signed literals, negative meaning negated.
type SAT struct {
	Variables int32
	Clauses   [][]int32
}

// SATSolver decides the satisfiability of a whole instance.
type SATSolver interface {
	SolveSAT(SAT) (bool, error)
}

// Flatten encodes the clauses in the length-prefixed wire format.
func (s SAT) Flatten() ([]int32, error) {
	size := lo.SumBy(s.Clauses, func(clause []int32) int64 { return int64(len(clause)) + 1 })
	if size > math.MaxInt32 {
		return nil, &SolverError{Kind: ResourceLimit, Message: "flattened instance exceeds the int32 buffer capacity"}
	}

	buffer := make([]int32, 0, size)
	for _, clause := range s.Clauses {
		buffer = append(buffer, int32(len(clause)))
		buffer = append(buffer, clause...)
	}
	return buffer, nil
}
