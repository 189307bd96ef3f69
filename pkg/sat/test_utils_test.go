package sat

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

func GenerateSATInstance(variables int32, clauses int) SAT {
	satInstance := SAT{
		Variables: variables,
		Clauses:   make([][]int32, clauses),
	}

	for i := range clauses {
		satInstance.Clauses[i] = make([]int32, 0, variables)
		for j := range variables {
			if rand.Float32() < 0.3 {
				var sign int32 = 1
				if rand.Float32() < 0.5 {
					sign = -1
				}
				satInstance.Clauses[i] = append(satInstance.Clauses[i], sign*(1+j))
			}
		}

		if len(satInstance.Clauses[i]) == 0 {
			var sign int32 = 1
			if rand.Float32() < 0.5 {
				sign = -1
			}
			satInstance.Clauses[i] = append(satInstance.Clauses[i], sign*(1+rand.Int32N(variables)))
		}
	}

	return satInstance
}

// bruteForceSatisfiable enumerates every assignment; only usable for small instances.
func bruteForceSatisfiable(satInstance SAT) bool {
	for assignment := uint64(0); assignment < 1<<uint(satInstance.Variables); assignment++ {
		satisfied := true
		for _, clause := range satInstance.Clauses {
			clauseSatisfied := false
			for _, literal := range clause {
				value := assignment&(1<<uint(abs32(literal)-1)) != 0
				if value == (literal > 0) {
					clauseSatisfied = true
					break
				}
			}
			if !clauseSatisfied {
				satisfied = false
				break
			}
		}
		if satisfied {
			return true
		}
	}
	return false
}

func abs32(value int32) int32 {
	if value < 0 {
		return -value
	}
	return value
}

// recordingEngine is a scripted Engine that records every call made on its sessions.
type recordingEngine struct {
	mu         sync.Mutex
	calls      []string
	submitted  [][]EngineLit
	sessions   int
	varsErr    error
	clauseErr  error
	failAt     int
	outcome    Outcome
	solveErr   error
	panicValue any
}

func (engine *recordingEngine) Name() string {
	return "recording"
}

func (engine *recordingEngine) NewSession() (Session, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.sessions++
	engine.calls = append(engine.calls, "construct")
	return &recordingSession{engine: engine}, nil
}

func (engine *recordingEngine) record(call string) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.calls = append(engine.calls, call)
}

type recordingSession struct {
	engine  *recordingEngine
	clauses int
}

func (session *recordingSession) NewVars(n int) error {
	session.engine.record(fmt.Sprintf("vars %d", n))
	return session.engine.varsErr
}

func (session *recordingSession) AddClause(lits []EngineLit) error {
	engine := session.engine
	engine.record(fmt.Sprintf("clause %d", session.clauses))
	session.clauses++
	if engine.clauseErr != nil && session.clauses == engine.failAt {
		return engine.clauseErr
	}
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.submitted = append(engine.submitted, append([]EngineLit(nil), lits...))
	return nil
}

func (session *recordingSession) Solve() (Outcome, error) {
	session.engine.record("solve")
	if session.engine.panicValue != nil {
		panic(session.engine.panicValue)
	}
	return session.engine.outcome, session.engine.solveErr
}
