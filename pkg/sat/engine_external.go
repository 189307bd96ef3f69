package sat

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// SAT competition exit codes
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// ExternalEngine runs a competition-style solver executable once per session. The instance is
// fed as DIMACS either through standard input or through a temporary file argument.
type ExternalEngine struct {
	name      string
	path      string
	args      []string
	fileInput bool
	logger    logrus.FieldLogger
}

func NewExternalEngine(name, path string, args ...string) *ExternalEngine {
	return &ExternalEngine{
		name:   name,
		path:   path,
		args:   args,
		logger: logrus.StandardLogger(),
	}
}

// WithFileInput makes the engine pass a temporary DIMACS file instead of using stdin.
func (engine *ExternalEngine) WithFileInput() *ExternalEngine {
	engine.fileInput = true
	return engine
}

func (engine *ExternalEngine) WithLogger(logger logrus.FieldLogger) *ExternalEngine {
	engine.logger = logger
	return engine
}

func NewKissatEngine(path string) Engine {
	return NewExternalEngine("kissat", path, "-q", "--relaxed")
}

func NewCadicalEngine(path string) Engine {
	return NewExternalEngine("cadical", path, "-q")
}

func NewCryptominisatEngine(path string) Engine {
	return NewExternalEngine("cryptominisat", path, "--verb", "0")
}

func NewSlimeEngine(path string) Engine {
	return NewExternalEngine("slime", path).WithFileInput()
}

func NewOrtoolsatEngine(path string) Engine {
	return NewExternalEngine("ortoolsat", path).WithFileInput()
}

func (engine *ExternalEngine) Name() string {
	return engine.name
}

func (engine *ExternalEngine) NewSession() (Session, error) {
	return &externalSession{engine: engine}, nil
}

type externalSession struct {
	engine   *ExternalEngine
	instance SAT
	consumed bool
}

func (session *externalSession) NewVars(n int) error {
	total := int64(session.instance.Variables) + int64(n)
	if total > math.MaxInt32 {
		return &EngineFailure{Reason: TooManyVariables, Err: fmt.Errorf("%d variables do not fit in a DIMACS header", total)}
	}
	session.instance.Variables = int32(total)
	return nil
}

func (session *externalSession) AddClause(lits []EngineLit) error {
	if err := checkAllocated(lits, int(session.instance.Variables)); err != nil {
		return err
	}
	clause := make([]int32, len(lits))
	for i, lit := range lits {
		clause[i] = int32(lit.Var + 1)
		if lit.Negated {
			clause[i] = -clause[i]
		}
	}
	session.instance.Clauses = append(session.instance.Clauses, clause)
	return nil
}

func (session *externalSession) Solve() (Outcome, error) {
	if session.consumed {
		return Indeterminate, &EngineFailure{Reason: EngineFault}
	}
	session.consumed = true

	engine := session.engine
	dimacs := session.instance.ToDIMACS()
	session.instance = SAT{}

	cmd := exec.Command(engine.path, engine.args...)
	if engine.fileInput {
		tmpFile, err := os.CreateTemp("", "dimacs-*.cnf")
		if err != nil {
			return Indeterminate, fmt.Errorf("failed to create temporary file: %w", err)
		}
		defer os.Remove(tmpFile.Name())

		if _, err := tmpFile.WriteString(dimacs); err != nil {
			tmpFile.Close()
			return Indeterminate, fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
		}
		if err := tmpFile.Close(); err != nil {
			return Indeterminate, fmt.Errorf("failed to close temporary file: %w", err)
		}
		cmd.Args = append(cmd.Args, tmpFile.Name())
	} else {
		cmd.Stdin = strings.NewReader(dimacs)
	}

	cmd.Stdout = io.Discard // Models are not extracted
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cmd.ProcessState == nil {
		// The process never started
		return Indeterminate, fmt.Errorf("an error occurred starting %v: %w", engine.name, err)
	}

	switch cmd.ProcessState.ExitCode() {
	case exitSatisfiable:
		return Satisfiable, nil
	case exitUnsatisfiable:
		return Unsatisfiable, nil
	default:
		engine.logger.WithFields(logrus.Fields{
			"engine":   engine.name,
			"exitCode": cmd.ProcessState.ExitCode(),
			"stderr":   stderr.String(),
		}).Warn("external engine finished without a verdict")
		if err != nil {
			return Indeterminate, fmt.Errorf("an error occurred during %v execution: %w", engine.name, err)
		}
		return Indeterminate, nil
	}
}
