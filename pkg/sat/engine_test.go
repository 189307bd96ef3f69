package sat

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pigeonhole encodes placing pigeons into holes, unsatisfiable whenever pigeons > holes.
func pigeonhole(pigeons, holes int32) SAT {
	variable := func(pigeon, hole int32) int32 { return pigeon*holes + hole + 1 }
	instance := SAT{Variables: pigeons * holes}
	for pigeon := range pigeons {
		clause := make([]int32, 0, holes)
		for hole := range holes {
			clause = append(clause, variable(pigeon, hole))
		}
		instance.Clauses = append(instance.Clauses, clause)
	}
	for hole := range holes {
		for first := range pigeons {
			for second := first + 1; second < pigeons; second++ {
				instance.Clauses = append(instance.Clauses, []int32{-variable(first, hole), -variable(second, hole)})
			}
		}
	}
	return instance
}

func TestInProcessEngineLimits(t *testing.T) {
	limits := Limits{MaxVariables: 3, MaxClauseLength: 2}
	for _, engine := range []Engine{NewGophersatEngine(limits), NewGiniEngine(limits)} {
		t.Run(engine.Name(), func(t *testing.T) {
			bridge := NewBridge(engine, WithLogger(quietLogger()))

			_, err := bridge.Solve(4, 1, []int32{1, 1}, 2)
			assert.ErrorIs(t, err, ErrResourceLimit)

			_, err = bridge.Solve(3, 1, []int32{3, 1, 2, 3}, 4)
			assert.ErrorIs(t, err, ErrResourceLimit)

			satisfiable, err := bridge.Solve(3, 1, []int32{2, 1, 2}, 3)
			require.NoError(t, err)
			assert.True(t, satisfiable)
		})
	}
}

func TestInProcessSessionsRejectMisuse(t *testing.T) {
	for _, engine := range inProcessEngines() {
		t.Run(engine.Name(), func(t *testing.T) {
			session, err := engine.NewSession()
			require.NoError(t, err)
			require.NoError(t, session.NewVars(2))

			var failure *EngineFailure
			err = session.AddClause([]EngineLit{{Var: 2}})
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, EngineFault, failure.Reason)

			require.NoError(t, session.AddClause([]EngineLit{{Var: 1, Negated: true}}))
			outcome, err := session.Solve()
			require.NoError(t, err)
			assert.Equal(t, Satisfiable, outcome)

			_, err = session.Solve()
			assert.Error(t, err)
		})
	}
}

func TestTestdataInstances(t *testing.T) {
	files, err := filepath.Glob("testdata/*.cnf")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, engine := range inProcessEngines() {
		bridge := NewBridge(engine, WithLogger(quietLogger()))
		for _, file := range files {
			t.Run(engine.Name()+"/"+filepath.Base(file), func(t *testing.T) {
				instance := readDIMACSFile(t, file)
				satisfiable, err := bridge.SolveSAT(instance)
				require.NoError(t, err)
				assert.Equal(t, filepath.Base(file)[:4] != "unsa", satisfiable)
			})
		}
	}
}

func TestPigeonholeIsUnsatisfiable(t *testing.T) {
	for _, engine := range inProcessEngines() {
		bridge := NewBridge(engine, WithShape(ShapeNested), WithLogger(quietLogger()))
		satisfiable, err := bridge.SolveSAT(pigeonhole(5, 4))
		require.NoError(t, err)
		assert.False(t, satisfiable)

		satisfiable, err = bridge.SolveSAT(pigeonhole(4, 4))
		require.NoError(t, err)
		assert.True(t, satisfiable)
	}
}

func TestGiniSolveBudget(t *testing.T) {
	bridge := NewBridge(NewGiniEngine(Limits{SolveBudget: time.Millisecond}), WithLogger(quietLogger()))

	satisfiable, err := bridge.SolveSAT(pigeonhole(13, 12))

	assert.False(t, satisfiable)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorContains(t, err, "indeterminate")
}

func TestEngineByName(t *testing.T) {
	for _, name := range EngineNames {
		engine, err := EngineByName(name, Limits{}, nil)
		require.NoError(t, err)
		assert.Equal(t, name, engine.Name())
	}

	engine, err := EngineByName("", Limits{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "gophersat", engine.Name())

	engine, err = EngineByName("KISSAT", Limits{}, map[string]string{"kissat": "/opt/kissat"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/kissat", engine.(*ExternalEngine).path)

	engine, err = EngineByName("cadical", Limits{}, map[string]string{"CaDiCaL": "/opt/cadical"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/cadical", engine.(*ExternalEngine).path)

	_, err = EngineByName("picosat", Limits{}, nil)
	assert.Error(t, err)
}

// fakeSolver writes a script that consumes its input and exits with code.
func fakeSolver(t *testing.T, code string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "solver.sh")
	script := "#!/bin/sh\nif [ $# -gt 0 ]; then test -s \"$1\" || exit 1; else cat > /dev/null; fi\nexit " + code + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestExternalEngineExitCodes(t *testing.T) {
	instance := []int32{1, 1}

	for _, fileInput := range []bool{false, true} {
		newEngine := func(code string) Engine {
			engine := NewExternalEngine("fake", fakeSolver(t, code)).WithLogger(quietLogger())
			if fileInput {
				engine.WithFileInput()
			}
			return engine
		}

		satisfiable, err := NewBridge(newEngine("10"), WithLogger(quietLogger())).Solve(1, 1, instance, 2)
		require.NoError(t, err)
		assert.True(t, satisfiable)

		satisfiable, err = NewBridge(newEngine("20"), WithLogger(quietLogger())).Solve(1, 1, instance, 2)
		require.NoError(t, err)
		assert.False(t, satisfiable)

		_, err = NewBridge(newEngine("0"), WithLogger(quietLogger())).Solve(1, 1, instance, 2)
		assert.ErrorIs(t, err, ErrInternal)

		_, err = NewBridge(newEngine("3"), WithLogger(quietLogger())).Solve(1, 1, instance, 2)
		assert.ErrorIs(t, err, ErrInternal)
	}

	missing := NewExternalEngine("missing", filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := NewBridge(missing, WithLogger(quietLogger())).Solve(1, 1, instance, 2)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestKissat(t *testing.T) {
	externalEngineExecution(t, "kissat", NewKissatEngine)
}

func TestCadical(t *testing.T) {
	externalEngineExecution(t, "cadical", NewCadicalEngine)
}

func TestCryptominisat(t *testing.T) {
	externalEngineExecution(t, "cryptominisat", NewCryptominisatEngine)
}

func externalEngineExecution(t *testing.T, executable string, newEngine func(string) Engine) {
	path, err := exec.LookPath(executable)
	if err != nil {
		t.Skipf("%v is not installed", executable)
	}
	bridge := NewBridge(newEngine(path), WithLogger(quietLogger()))

	for range 10 {
		//** Arrange
		instance := GenerateSATInstance(10, 40)

		//** Act
		satisfiable, err := bridge.SolveSAT(instance)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, bruteForceSatisfiable(instance), satisfiable)
	}
}
