package sat

import (
	"fmt"
)

// solveWith drives one fresh session of engine through allocate, submit-all and solve. The
// first failure stops the pipeline; nothing is decoded or submitted after it.
func solveWith(engine Engine, numVars int32, decoder clauseDecoder) (satisfiable bool, err error) {
	defer func() {
		// Engine panics surface as internal errors.
		if recovered := recover(); recovered != nil {
			satisfiable = false
			err = internalError(fmt.Sprintf("engine %s panicked", engine.Name()), fmt.Errorf("%v", recovered))
		}
	}()

	session, err := engine.NewSession()
	if err != nil {
		return false, internalError("cannot construct solver session", err)
	}

	if err := session.NewVars(int(numVars)); err != nil {
		return false, classify("cannot allocate variables", err, TooManyVariables)
	}

	var (
		literals []int32
		lits     []EngineLit
		clause   int
	)
	for {
		var ok bool
		literals, ok, err = decoder.next(literals[:0])
		if err != nil {
			return false, err
		} else if !ok {
			break
		}

		lits = lits[:0]
		for _, literal := range literals {
			lits = append(lits, toEngineLit(literal))
		}
		if err := session.AddClause(lits); err != nil {
			return false, classify(fmt.Sprintf("cannot add clause %d", clause), err, TooLongClause)
		}
		clause++
	}

	outcome, err := session.Solve()
	if err != nil {
		return false, internalError("solve failed", err)
	}
	switch outcome {
	case Satisfiable:
		return true, nil
	case Unsatisfiable:
		return false, nil
	default:
		return false, internalError("solve returned an indeterminate result", nil)
	}
}
