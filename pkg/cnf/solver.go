package cnf

import (
	"slices"
	"sync"

	"github.com/limaJavier/satbridge/pkg/sat"
)

// Solver decides whether a named formula is satisfiable.
type Solver interface {
	IsSatisfiable(*Cnf) (bool, error)
}

// SingleShotSolver numbers a formula and hands it to a SATSolver in one call. An optional base
// formula is conjoined with every query; its numbering is computed once and reused.
type SingleShotSolver struct {
	solver    sat.SATSolver
	base      [][]int32
	numbering *Numbering
}

func NewSingleShotSolver(solver sat.SATSolver, base *Cnf) *SingleShotSolver {
	s := &SingleShotSolver{solver: solver}
	if base != nil {
		s.numbering = NewNumbering(nil, base.VarNames())
		s.base = s.numbering.Clauses(base)
	}
	return s
}

func (s *SingleShotSolver) IsSatisfiable(cnf *Cnf) (bool, error) {
	numbering := NewNumbering(s.numbering, cnf.VarNames())
	clauses := append(slices.Clone(s.base), numbering.Clauses(cnf)...)
	if len(clauses) == 0 {
		// The empty conjunction is true
		return true, nil
	}

	// Rows without any variable still need one allocated variable to cross the boundary
	return s.solver.SolveSAT(sat.SAT{
		Variables: max(numbering.Len(), 1),
		Clauses:   clauses,
	})
}

type cacheEntry struct {
	cnf         *Cnf
	satisfiable bool
}

// CachedSolver memoizes the verdicts of another Solver. With a positive size, new verdicts are
// no longer stored once size entries are cached. Failed calls are never cached.
type CachedSolver struct {
	solver  Solver
	size    int
	mu      sync.Mutex
	entries map[uint64][]cacheEntry
	count   int
}

func NewCachedSolver(solver Solver, size int) *CachedSolver {
	return &CachedSolver{
		solver:  solver,
		size:    size,
		entries: make(map[uint64][]cacheEntry),
	}
}

func (s *CachedSolver) IsSatisfiable(cnf *Cnf) (bool, error) {
	key, err := cnf.hash()
	if err != nil {
		return s.solver.IsSatisfiable(cnf)
	}
	if satisfiable, ok := s.lookup(key, cnf); ok {
		return satisfiable, nil
	}

	satisfiable, err := s.solver.IsSatisfiable(cnf)
	if err != nil {
		return false, err
	}
	s.store(key, cnf, satisfiable)
	return satisfiable, nil
}

// Len is the number of cached verdicts.
func (s *CachedSolver) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func (s *CachedSolver) lookup(key uint64, cnf *Cnf) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries[key] {
		if entry.cnf.Equal(cnf) {
			return entry.satisfiable, true
		}
	}
	return false, false
}

func (s *CachedSolver) store(key uint64, cnf *Cnf, satisfiable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.size > 0 && s.count >= s.size {
		return
	}
	for _, entry := range s.entries[key] {
		if entry.cnf.Equal(cnf) {
			return
		}
	}
	s.entries[key] = append(s.entries[key], cacheEntry{cnf: cnf.Clone(), satisfiable: satisfiable})
	s.count++
}
