package optimize_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/manopt/manifold"
	"github.com/katalvlaran/manopt/objectives"
	"github.com/katalvlaran/manopt/optimize"
)

// distanceSetup returns St(5,2), a target M0 and a start point a fixed
// tangent distance away from it.
func distanceSetup(t *testing.T) (*manifold.Stiefel, *mat.Dense, *mat.Dense) {
	t.Helper()
	st := manifold.NewStiefel(5, 2)
	rng := manifold.NewRNG(2024)
	M0, err := manifold.RandomPoint(st, rng)
	require.NoError(t, err)
	U, err := manifold.RandomTangent(st, M0, rng)
	require.NoError(t, err)
	x0, err := st.Retract(M0, U, 0.5)
	require.NoError(t, err)

	return st, M0, x0
}

func frob(a, b mat.Matrix) float64 {
	var d mat.Dense
	d.Sub(a, b)
	return mat.Norm(&d, 2)
}

// TestProjGradDescent_Converges runs the distance objective to convergence.
func TestProjGradDescent_Converges(t *testing.T) {
	st, M0, x0 := distanceSetup(t)

	res, err := optimize.ProjGradDescent(x0, st, objectives.Distance(M0), 1e-6, 200)
	require.NoError(t, err)
	assert.Equal(t, optimize.Converged, res.Status)
	assert.Less(t, res.Iterations, 200)
	assert.Less(t, frob(res.X, M0), 1e-2, "result must be close to the target")
	assert.InDelta(t, 0, res.F, 1e-4)
	assert.Equal(t, res.Iterations, res.GradEvaluations)
	assert.GreaterOrEqual(t, res.FuncEvaluations, res.Iterations+1)

	ok, err := st.Contains(res.X)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestProjGradDescent_TimesOut verifies that a one-iteration budget reports TimedOut.
func TestProjGradDescent_TimesOut(t *testing.T) {
	st, M0, x0 := distanceSetup(t)

	res, err := optimize.ProjGradDescent(x0, st, objectives.Distance(M0), 1e-6, 1)
	require.NoError(t, err)
	assert.Equal(t, optimize.TimedOut, res.Status)
	assert.Equal(t, 1, res.Iterations)

	ok, err := st.Contains(res.X)
	require.NoError(t, err)
	assert.True(t, ok, "a timed-out result is still on the manifold")
}

// TestProjGradDescent_Monotone records every iteration and checks that the
// objective never increases.
func TestProjGradDescent_Monotone(t *testing.T) {
	st := manifold.NewStiefel(8, 3)
	rng := manifold.NewRNG(5)
	M0, err := manifold.RandomPoint(st, rng)
	require.NoError(t, err)
	x0, err := manifold.RandomPoint(st, rng)
	require.NoError(t, err)

	var seen []optimize.Stats
	rec := optimize.RecorderFunc(func(s optimize.Stats) error {
		seen = append(seen, s)
		return nil
	})
	res, err := optimize.ProjGradDescent(x0, st, objectives.Distance(M0), 1e-10, 300, optimize.WithRecorder(rec))
	require.NoError(t, err)
	require.Len(t, seen, res.Iterations)

	for i, s := range seen {
		assert.Equal(t, i+1, s.Iteration)
		assert.LessOrEqual(t, s.F, s.PrevF, "iteration %d increased the objective", s.Iteration)
		assert.GreaterOrEqual(t, s.Step, 0.0)
	}
}

// TestProjGradDescent_FiniteDifferenceOracle drops the analytic gradient.
func TestProjGradDescent_FiniteDifferenceOracle(t *testing.T) {
	st, M0, x0 := distanceSetup(t)
	p := objectives.Distance(M0)
	p.Grad = nil

	res, err := optimize.ProjGradDescent(x0, st, p, 1e-6, 200,
		optimize.WithFiniteDifference(fd.Settings{Formula: fd.Central, Step: 1e-6}))
	require.NoError(t, err)
	assert.Equal(t, optimize.Converged, res.Status)
	assert.Less(t, frob(res.X, M0), 1e-2)
}

// TestProjGradDescent_StationaryStart starts at the minimizer.
func TestProjGradDescent_StationaryStart(t *testing.T) {
	st, M0, _ := distanceSetup(t)

	res, err := optimize.ProjGradDescent(M0, st, objectives.Distance(M0), 1e-12, 50)
	require.NoError(t, err)
	assert.Equal(t, optimize.Converged, res.Status)
	assert.Equal(t, 1, res.Iterations)
	assert.InDelta(t, 0, res.GradNorm, 1e-12)
	assert.True(t, mat.EqualApprox(M0, res.X, 1e-12))
}

// TestProjGradDescent_DoesNotMutateStart verifies x0 is copied.
func TestProjGradDescent_DoesNotMutateStart(t *testing.T) {
	st, M0, x0 := distanceSetup(t)
	before := mat.DenseCopyOf(x0)

	_, err := optimize.ProjGradDescent(x0, st, objectives.Distance(M0), 1e-6, 10)
	require.NoError(t, err)
	assert.True(t, mat.Equal(before, x0))
}

// TestProjGradDescent_BadInput covers argument validation.
func TestProjGradDescent_BadInput(t *testing.T) {
	st, M0, x0 := distanceSetup(t)
	p := objectives.Distance(M0)

	cases := []struct {
		name      string
		threshold float64
		maxIter   int
		p         optimize.Problem
	}{
		{"zero threshold", 0, 10, p},
		{"negative threshold", -1, 10, p},
		{"NaN threshold", math.NaN(), 10, p},
		{"Inf threshold", math.Inf(1), 10, p},
		{"zero budget", 1e-6, 0, p},
		{"nil objective", 1e-6, 10, optimize.Problem{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := optimize.ProjGradDescent(x0, st, tc.p, tc.threshold, tc.maxIter)
			assert.ErrorIs(t, err, optimize.ErrBadInput)
		})
	}

	_, err := optimize.ProjGradDescent(x0, nil, p, 1e-6, 10)
	assert.ErrorIs(t, err, optimize.ErrBadInput)

	_, err = optimize.ProjGradDescent(mat.NewDense(4, 2, nil), st, p, 1e-6, 10)
	assert.ErrorIs(t, err, manifold.ErrShapeMismatch)

	_, err = optimize.ProjGradDescent(mat.NewDense(5, 2, nil), st, p, 1e-6, 10)
	assert.ErrorIs(t, err, optimize.ErrNotOnManifold)

	_, err = optimize.ProjGradDescent(nil, st, p, 1e-6, 10)
	assert.ErrorIs(t, err, manifold.ErrNilMatrix)
}

// TestProjGradDescent_NotImplementedManifold passes placeholder errors through.
func TestProjGradDescent_NotImplementedManifold(t *testing.T) {
	g := manifold.NewGrassmann(5, 2)
	_, M0, x0 := distanceSetup(t)

	_, err := optimize.ProjGradDescent(x0, g, objectives.Distance(M0), 1e-6, 10)
	assert.ErrorIs(t, err, manifold.ErrNotImplemented)
}

// TestProjGradDescent_NonFinite verifies fail-fast on divergence.
func TestProjGradDescent_NonFinite(t *testing.T) {
	st, M0, x0 := distanceSetup(t)
	base := objectives.Distance(M0)

	t.Run("initial objective", func(t *testing.T) {
		p := optimize.Problem{Func: func(mat.Matrix) float64 { return math.NaN() }, Grad: base.Grad}
		_, err := optimize.ProjGradDescent(x0, st, p, 1e-6, 10)
		assert.ErrorIs(t, err, optimize.ErrNonFinite)
	})

	t.Run("gradient", func(t *testing.T) {
		p := optimize.Problem{
			Func: base.Func,
			Grad: func(grad *mat.Dense, _ mat.Matrix) { grad.Set(0, 0, math.Inf(1)) },
		}
		_, err := optimize.ProjGradDescent(x0, st, p, 1e-6, 10)
		assert.ErrorIs(t, err, optimize.ErrNonFinite)
	})

	t.Run("objective during line search", func(t *testing.T) {
		calls := 0
		p := optimize.Problem{
			Func: func(x mat.Matrix) float64 {
				calls++
				if calls > 1 {
					return math.Inf(1)
				}
				return base.Func(x)
			},
			Grad: base.Grad,
		}
		res, err := optimize.ProjGradDescent(x0, st, p, 1e-6, 10)
		assert.ErrorIs(t, err, optimize.ErrNonFinite)
		assert.Nil(t, res)
	})
}

// TestProjGradDescent_RecorderAborts verifies a recorder error stops the run.
func TestProjGradDescent_RecorderAborts(t *testing.T) {
	st, M0, x0 := distanceSetup(t)
	stop := errors.New("stop")

	_, err := optimize.ProjGradDescent(x0, st, objectives.Distance(M0), 1e-6, 10,
		optimize.WithRecorder(optimize.RecorderFunc(func(optimize.Stats) error { return stop })))
	assert.ErrorIs(t, err, stop)
}

// TestProjGradDescent_Logger checks the zerolog events.
func TestProjGradDescent_Logger(t *testing.T) {
	st, M0, x0 := distanceSetup(t)
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := optimize.ProjGradDescent(x0, st, objectives.Distance(M0), 1e-6, 200, optimize.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "projected gradient step")
	assert.Contains(t, out, "projected gradient descent finished")
	assert.Contains(t, out, `"status":"Converged"`)
	assert.Contains(t, out, `"manifold":"5x2 Stiefel manifold"`)
}

// TestProjGradDescent_LineSearchOptions checks that a tiny step floor
// blocks progress without increasing the objective.
func TestProjGradDescent_LineSearchOptions(t *testing.T) {
	st, M0, x0 := distanceSetup(t)
	p := objectives.Distance(M0)

	// The first trial is below the floor, so no step is ever taken.
	res, err := optimize.ProjGradDescent(x0, st, p, 1e-6, 5,
		optimize.WithInitialStep(1e-3), optimize.WithMinStep(1e-2))
	require.NoError(t, err)
	assert.Equal(t, optimize.Converged, res.Status)
	assert.Equal(t, 0.0, res.Step)
	assert.True(t, mat.Equal(x0, res.X))

	res, err = optimize.ProjGradDescent(x0, st, p, 1e-6, 200,
		optimize.WithContraction(0.3), optimize.WithDecrease(0.2), optimize.WithInitialStep(0.5))
	require.NoError(t, err)
	assert.Equal(t, optimize.Converged, res.Status)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { optimize.WithInitialStep(0) })
	assert.Panics(t, func() { optimize.WithInitialStep(math.Inf(1)) })
	assert.Panics(t, func() { optimize.WithContraction(1) })
	assert.Panics(t, func() { optimize.WithContraction(0) })
	assert.Panics(t, func() { optimize.WithDecrease(1) })
	assert.Panics(t, func() { optimize.WithMinStep(-1) })
	assert.Panics(t, func() { optimize.WithMinStep(math.NaN()) })
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Running", optimize.Running.String())
	assert.Equal(t, "Converged", optimize.Converged.String())
	assert.Equal(t, "TimedOut", optimize.TimedOut.String())
	assert.Equal(t, "Unknown", optimize.Status(42).String())
}

func TestFiniteDifferenceGradient(t *testing.T) {
	M0 := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	p := objectives.Distance(M0)
	x := mat.NewDense(2, 2, []float64{0, 1, -1, 2})

	got := optimize.FiniteDifferenceGradient(p.Func, x, nil)
	want := mat.NewDense(2, 2, nil)
	p.Grad(want, x)
	assert.True(t, mat.EqualApprox(want, got, 1e-6))
}
