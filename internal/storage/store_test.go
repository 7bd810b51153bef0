package storage

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bracket/internal/roots"
)

func solveRun(t *testing.T, m roots.Method, cfg roots.Config) Run {
	t.Helper()
	trace := &roots.Trace{}
	cfg.Observer = trace
	res, err := roots.Solve(m, 0, 2, func(x float64) float64 { return x*x - 2 }, cfg)
	return Run{
		Expr:    "x**2 - 2",
		Lower:   0,
		Upper:   2,
		MaxIter: cfg.MaxIter,
		Tol:     cfg.Tol,
		Result:  res,
		Err:     err,
		Trace:   trace.States,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir(), nil)
	require.NoError(t, st.Init())

	run := solveRun(t, roots.Bisection, roots.DefaultConfig())
	require.NoError(t, run.Err)

	runID, err := st.Save(run)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "bisection_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "bisection", meta.Method)
	assert.Equal(t, "x**2 - 2", meta.Expr)
	assert.True(t, meta.Converged)
	assert.Empty(t, meta.Error)
	assert.InDelta(t, math.Sqrt2, meta.Root, 1e-6)
	assert.Equal(t, run.Result.Iterations, meta.Iterations)

	states, err := st.LoadTrace(runID)
	require.NoError(t, err)
	assert.Equal(t, run.Trace, states)
}

func TestStoreSavesFailures(t *testing.T) {
	st := New(t.TempDir(), nil)
	require.NoError(t, st.Init())

	cfg := roots.DefaultConfig()
	cfg.MaxIter = 2
	run := solveRun(t, roots.RegulaFalsi, cfg)
	require.Error(t, run.Err)

	runID, err := st.Save(run)
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.False(t, meta.Converged)
	assert.Equal(t, 2, meta.Iterations)
	assert.Contains(t, meta.Error, "additional iterations")
}

func TestStoreSanitizesNaN(t *testing.T) {
	st := New(t.TempDir(), nil)
	require.NoError(t, st.Init())

	run := Run{Result: roots.Result{Method: roots.Shifter, Root: math.NaN(), Residual: math.Inf(1)}}
	runID, err := st.Save(run)
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Zero(t, meta.Root)
	assert.Zero(t, meta.Residual)
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir, nil)
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	for _, m := range roots.Methods() {
		_, err := st.Save(solveRun(t, m, roots.DefaultConfig()))
		require.NoError(t, err)
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "junk"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for i := 1; i < len(runs); i++ {
		assert.LessOrEqual(t, runs[i-1].ID, runs[i].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"), nil)
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir, nil)
	require.NoError(t, st.Init())

	runID, err := st.Save(solveRun(t, roots.Shifter, roots.DefaultConfig()))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, runID, "metadata.json"))
	assert.FileExists(t, filepath.Join(tmpDir, runID, "trace.csv"))
}
