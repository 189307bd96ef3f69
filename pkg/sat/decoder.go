package sat

import (
	"fmt"
	"slices"
	"strings"
)

// Shape selects how clauses are delimited in the caller's input.
type Shape int

const (
	// ShapeFlat is a single buffer where every clause is prefixed by its length.
	ShapeFlat Shape = iota
	// ShapeNested is one slice per clause; the container supplies the boundaries.
	ShapeNested
)

func (shape Shape) String() string {
	switch shape {
	case ShapeFlat:
		return "flat"
	case ShapeNested:
		return "nested"
	default:
		return fmt.Sprintf("Shape(%d)", int(shape))
	}
}

func ParseShape(value string) (Shape, error) {
	switch strings.ToLower(value) {
	case "", "flat":
		return ShapeFlat, nil
	case "nested":
		return ShapeNested, nil
	default:
		return 0, fmt.Errorf("unknown clause shape %q", value)
	}
}

// clauseDecoder yields validated clauses one at a time. Every literal returned has already
// passed the domain check.
type clauseDecoder interface {
	// next appends the next clause to dst. ok is false once the input is exhausted.
	next(dst []int32) (clause []int32, ok bool, err error)
}

type flatDecoder struct {
	buffer    Buffer
	numVars   int32
	numClause int32
	decoded   int32
	cursor    int32
}

func newFlatDecoder(buffer Buffer, numVars, numClauses int32) *flatDecoder {
	return &flatDecoder{buffer: buffer, numVars: numVars, numClause: numClauses}
}

func (d *flatDecoder) read() (int32, error) {
	value, err := d.buffer.At(d.cursor)
	if err != nil {
		return 0, err
	}
	d.cursor++
	return value, nil
}

func (d *flatDecoder) next(dst []int32) ([]int32, bool, error) {
	if d.decoded == d.numClause {
		return dst, false, nil
	}
	index := d.decoded
	d.decoded++

	length, err := d.read()
	if err != nil {
		return dst, false, err
	}
	if err := validateLength(index, length); err != nil {
		return dst, false, err
	}

	// Never trust the declared length for allocation; at most what is left can be read.
	dst = slices.Grow(dst, int(min(length, d.buffer.Capacity()-d.cursor)))
	for range length {
		literal, err := d.read()
		if err != nil {
			return dst, false, err
		}
		if err := validateLiteral(literal, d.numVars); err != nil {
			return dst, false, err
		}
		dst = append(dst, literal)
	}
	return dst, true, nil
}

type nestedDecoder struct {
	clauses [][]int32
	numVars int32
	index   int
}

func newNestedDecoder(clauses [][]int32, numVars int32) *nestedDecoder {
	return &nestedDecoder{clauses: clauses, numVars: numVars}
}

func (d *nestedDecoder) next(dst []int32) ([]int32, bool, error) {
	if d.index == len(d.clauses) {
		return dst, false, nil
	}
	clause := d.clauses[d.index]
	d.index++

	for _, literal := range clause {
		if err := validateLiteral(literal, d.numVars); err != nil {
			return dst, false, err
		}
		dst = append(dst, literal)
	}
	return dst, true, nil
}
