package cnf

import (
	"fmt"
	"io"
	"os"

	"github.com/limaJavier/satbridge/pkg/sat"
)

// FromSAT names the variables of a numbered instance. Variables without an entry in names are
// called VARIABLE_<n>.
func FromSAT(instance sat.SAT, names map[int32]string) (*Cnf, error) {
	cnf := &Cnf{rows: make([][]Variable, 0, len(instance.Clauses))}
	for i, clause := range instance.Clauses {
		row := make([]Variable, len(clause))
		for j, literal := range clause {
			number := max(literal, -literal)
			if number <= 0 || number > instance.Variables {
				return nil, fmt.Errorf("literal %d of clause %d is outside 1..%d", literal, i, instance.Variables)
			}
			name, ok := names[number]
			if !ok {
				name = fmt.Sprintf("VARIABLE_%d", number)
			}
			row[j] = Variable{Name: name, Negated: literal < 0}
		}
		cnf.rows = append(cnf.rows, row)
	}
	return cnf, nil
}

// ReadDIMACS parses a DIMACS file into a named formula, taking variable names from its
// "c <variable> <name>" comments.
func ReadDIMACS(reader io.Reader) (*Cnf, error) {
	instance, names, err := sat.ParseDIMACSNamed(reader)
	if err != nil {
		return nil, err
	}
	return FromSAT(instance, names)
}

func ReadDIMACSFile(path string) (*Cnf, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open DIMACS file: %w", err)
	}
	defer file.Close()

	cnf, err := ReadDIMACS(file)
	if err != nil {
		return nil, fmt.Errorf("cannot parse DIMACS file \"%v\": %w", path, err)
	}
	return cnf, nil
}
