package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/manopt/internal/config"
)

func TestBuildInstance(t *testing.T) {
	for _, problem := range []string{config.ProblemDistance, config.ProblemPCA, config.ProblemProcrustes} {
		t.Run(problem, func(t *testing.T) {
			cfg := config.Default()
			cfg.Problem = problem
			cfg.N, cfg.P = 6, 2

			inst, err := buildInstance(cfg)
			require.NoError(t, err)
			on, err := inst.stiefel.Contains(inst.x0)
			require.NoError(t, err)
			assert.True(t, on)
			assert.NotNil(t, inst.problem.Grad)
			assert.False(t, inst.problem.Func(inst.x0) < inst.optimum, "start below the optimum")

			again, err := buildInstance(cfg)
			require.NoError(t, err)
			assert.Equal(t, inst.x0.RawMatrix().Data, again.x0.RawMatrix().Data, "same seed, same start")
		})
	}

	cfg := config.Default()
	cfg.NumericGrad = true
	inst, err := buildInstance(cfg)
	require.NoError(t, err)
	assert.Nil(t, inst.problem.Grad)

	cfg.Problem = "svd"
	_, err = buildInstance(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestExecute_Converges(t *testing.T) {
	cfg := config.Default()
	cfg.Threshold = 1e-12
	cfg.MaxIter = 500

	s, err := execute(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "Converged", s.Status)
	assert.True(t, s.OnManifold)
	require.NotNil(t, s.Optimum)
	assert.InDelta(t, *s.Optimum, s.Objective, 1e-6)
}

func TestExecute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := execute(ctx, config.Default(), zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCLI_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("problem: pca\nn: 6\np: 2\nthreshold: 1.0e-10\nmax_iter: 1000\n"), 0o600))

	var out bytes.Buffer
	root := newRootCmd(context.Background())
	root.SetOut(&out)
	root.SetArgs([]string{"run", "--config", path, "--seed", "3", "--decrease", "0.2"})
	require.NoError(t, root.Execute())

	var s summary
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, "pca", s.Problem)
	assert.Equal(t, "6x2 Stiefel manifold", s.Manifold)
	assert.True(t, s.OnManifold)
	assert.Positive(t, s.Iterations)
	require.NotNil(t, s.Optimum)
	assert.GreaterOrEqual(t, s.Objective, *s.Optimum-1e-9)
}

func TestCLI_InvalidFlags(t *testing.T) {
	cases := [][]string{
		{"run", "--p", "9"},
		{"run", "--problem", "svd"},
		{"run", "--contraction", "2"},
		{"run", "--threshold", "0"},
	}
	for _, args := range cases {
		err := Execute(context.Background(), args)
		assert.ErrorIs(t, err, config.ErrInvalid, "%v", args)
	}

	err := Execute(context.Background(), []string{"run", "--config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCLI_Version(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd(context.Background())
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "manopt dev\n", out.String())
}
