package batch

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/san-kum/bracket/internal/roots"
)

const sample = `name: textbook
description: problems from the lecture notes
limit: 2
jobs:
  - name: sqrt2
    method: bisection
    preset: sqrt2
  - name: cosine-regfal
    method: regfal
    expr: cos(x)
    lower: 1
    upper: 2
  - method: shifter
    preset: no-root
  - name: colebrook
    preset: colebrook
    tol: 1.0e-10
`

func writeBatch(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestLoad(t *testing.T) {
	b, err := Load(writeBatch(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "textbook", b.Name)
	assert.Equal(t, 2, b.Limit)
	require.Len(t, b.Jobs, 4)
	assert.Equal(t, "regfal", b.Jobs[1].Method)
	require.NotNil(t, b.Jobs[1].Lower)
	assert.Equal(t, 1.0, *b.Jobs[1].Lower)
	assert.Nil(t, b.Jobs[0].Lower)
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(writeBatch(t, "name: empty\njobs: []\n"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	b, err := Load(writeBatch(t, sample))
	require.NoError(t, err)

	outcomes, err := Run(context.Background(), b, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	assert.Equal(t, "sqrt2", outcomes[0].Name)
	require.NoError(t, outcomes[0].Err)
	assert.InDelta(t, math.Sqrt2, outcomes[0].Result.Root, 1e-6)
	assert.Equal(t, roots.Bisection, outcomes[0].Result.Method)

	require.NoError(t, outcomes[1].Err)
	assert.Equal(t, roots.RegulaFalsi, outcomes[1].Result.Method)
	assert.InDelta(t, math.Pi/2, outcomes[1].Result.Root, 1e-5)

	assert.Equal(t, "job-3", outcomes[2].Name)
	assert.True(t, errors.Is(outcomes[2].Err, roots.ErrNoBracket))

	require.NoError(t, outcomes[3].Err)
	assert.Equal(t, roots.Shifter, outcomes[3].Result.Method)
	assert.LessOrEqual(t, outcomes[3].Result.Residual, 1e-10)
}

func TestRunBadSpec(t *testing.T) {
	tests := []struct {
		name string
		spec JobSpec
	}{
		{"unknown method", JobSpec{Method: "newton", Expr: "x"}},
		{"unknown preset", JobSpec{Preset: "nope"}},
		{"no function", JobSpec{}},
		{"unknown variable", JobSpec{Expr: "y + 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Batch{Name: "bad", Jobs: []JobSpec{tt.spec}}
			outcomes, err := Run(context.Background(), b, nil)
			assert.Error(t, err)
			assert.Nil(t, outcomes)
		})
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &Batch{Name: "canceled", Jobs: []JobSpec{{Preset: "sqrt2"}, {Preset: "cosine"}}}
	outcomes, err := Run(ctx, b, nil)
	require.NoError(t, err)
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}
