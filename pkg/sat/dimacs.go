package sat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// ParseDIMACS reads a DIMACS-CNF instance. Clauses are terminated by 0 and may span lines.
// The variable count is taken from the problem line; literals are not range checked here.
func ParseDIMACS(reader io.Reader) (SAT, error) {
	sat, _, err := ParseDIMACSNamed(reader)
	return sat, err
}

// ParseDIMACSNamed is ParseDIMACS that also collects variable names declared by comment lines
// of the form "c <variable> <name>", as written by Kconfig and feature-model exporters.
func ParseDIMACSNamed(reader io.Reader) (SAT, map[int32]string, error) {
	var (
		sat         SAT
		names       map[int32]string
		clause      []int32
		seenProblem bool
		line        int
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(text, "c") {
			if variable, name, ok := parseNameComment(text); ok {
				if names == nil {
					names = make(map[int32]string)
				}
				names[variable] = name
			}
			continue
		}
		// Skip blank lines and the optional end marker
		if text == "" || text == "%" {
			continue
		}
		// Problem line
		if strings.HasPrefix(text, "p") {
			fields := strings.Fields(text)
			if seenProblem || len(fields) != 4 || fields[1] != "cnf" {
				return SAT{}, nil, fmt.Errorf("invalid problem line %d: %s", line, text)
			}
			variables, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				return SAT{}, nil, fmt.Errorf("invalid variable count: %w", err)
			}
			clauses, err := strconv.ParseInt(fields[3], 10, 32)
			if err != nil {
				return SAT{}, nil, fmt.Errorf("invalid clause count: %w", err)
			}
			if variables < 0 || clauses < 0 {
				return SAT{}, nil, fmt.Errorf("negative counts in problem line %d: %s", line, text)
			}
			sat.Variables = int32(variables)
			sat.Clauses = make([][]int32, 0, min(clauses, 1<<16))
			seenProblem = true
			continue
		}
		if !seenProblem {
			return SAT{}, nil, fmt.Errorf("clause before problem line at line %d", line)
		}

		for _, field := range strings.Fields(text) {
			literal, err := strconv.ParseInt(field, 10, 32)
			if err != nil {
				return SAT{}, nil, fmt.Errorf("invalid literal '%s' at line %d: %w", field, line, err)
			}
			if literal == 0 {
				sat.Clauses = append(sat.Clauses, clause)
				clause = nil
				continue
			}
			clause = append(clause, int32(literal))
		}
	}
	if err := scanner.Err(); err != nil {
		return SAT{}, nil, fmt.Errorf("error reading input: %w", err)
	}
	if !seenProblem {
		return SAT{}, nil, fmt.Errorf("missing problem line")
	}
	// Tolerate a last clause without its terminating 0
	if len(clause) > 0 {
		sat.Clauses = append(sat.Clauses, clause)
	}
	return sat, names, nil
}

func parseNameComment(text string) (int32, string, bool) {
	fields := strings.Fields(text)
	if len(fields) != 3 || fields[0] != "c" {
		return 0, "", false
	}
	// Kconfig marks tristate variables with a trailing $
	variable, err := strconv.ParseInt(strings.TrimSuffix(fields[1], "$"), 10, 32)
	if err != nil || variable <= 0 {
		return 0, "", false
	}
	return int32(variable), fields[2], true
}
