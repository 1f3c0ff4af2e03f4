// SPDX-License-Identifier: MIT

package optimize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/manopt/manifold"
)

// ProjGradDescent minimizes p.Func over the manifold m by projected
// (Riemannian) gradient descent, starting from the point x0.
//
// Algorithm Outline:
//  1. G = ∇f(M) from the gradient oracle (Problem.Grad or finite differences).
//  2. grad = Egrad2Rgrad(M, G); direction D = −grad.
//  3. Backtracking line search: retract M along s·D and shrink s until the
//     Armijo condition f(R_M(sD)) ≤ f(M) − c·s·‖grad‖² holds or s < MinStep.
//  4. M ← accepted point (M itself when the floor was reached).
//  5. Converged if mean((M_new − M_old)²) < threshold; otherwise TimedOut
//     once maxIter iterations have run.
//
// The objective never increases between iterations. Both terminal states
// return the current point; Result.Status tells them apart.
//
// Errors:
//   - ErrBadInput          — nil m or p.Func, threshold ≤ 0 or non-finite, maxIter < 1.
//   - manifold.ErrShapeMismatch — x0 does not have the ambient shape.
//   - ErrNotOnManifold     — x0 fails m.Contains.
//   - ErrNonFinite         — objective, gradient or retraction diverged; run aborted.
//   - errors from m (e.g. manifold.ErrNotImplemented) are passed through.
//
// Complexity: per iteration one gradient, one projection and k retractions,
// where k is the number of backtracking trials.
func ProjGradDescent(x0 mat.Matrix, m manifold.Riemannian, p Problem, threshold float64, maxIter int, opts ...Option) (*Result, error) {
	// Stage 1: Validate
	if err := validateArgs(m, p, threshold, maxIter); err != nil {
		return nil, err
	}
	r, c := m.AmbientDims()
	if x0 == nil {
		return nil, fmt.Errorf("ProjGradDescent: x0: %w", manifold.ErrNilMatrix)
	}
	if ir, ic := x0.Dims(); ir != r || ic != c {
		return nil, fmt.Errorf("ProjGradDescent: x0 is %dx%d, want %dx%d: %w", ir, ic, r, c, manifold.ErrShapeMismatch)
	}
	on, err := m.Contains(x0)
	if err != nil {
		return nil, fmt.Errorf("ProjGradDescent: %w", err)
	}
	if !on {
		return nil, fmt.Errorf("ProjGradDescent: %w", ErrNotOnManifold)
	}

	// Stage 2: Prepare
	o := gatherOptions(opts...)
	ls := backtracking{
		initial:     o.initialStep,
		contraction: o.contraction,
		decrease:    o.decrease,
		minStep:     o.minStep,
	}
	oracle := newGradOracle(p, r, c, o.fd)
	log := o.logger.With().Str("manifold", fmt.Sprint(m)).Logger()

	M := mat.DenseCopyOf(x0)
	f := p.Func(M)
	res := &Result{FuncEvaluations: 1}
	if !finite(f) {
		return nil, fmt.Errorf("ProjGradDescent: initial objective is %v: %w", f, ErrNonFinite)
	}

	// Stage 3: Iterate
	status := Running
	var (
		iter    int
		mse     float64
		prevF   float64
		G, rg   *mat.Dense
		dir     *mat.Dense
		gnorm   float64
		ok      bool
		outcome lsResult
	)
	for status == Running {
		G, ok = oracle.eval(M)
		if !ok {
			return nil, fmt.Errorf("ProjGradDescent: iteration %d: gradient: %w", iter, ErrNonFinite)
		}
		rg, err = m.Egrad2Rgrad(M, G)
		if err != nil {
			return nil, fmt.Errorf("ProjGradDescent: iteration %d: %w", iter, err)
		}
		gnorm, err = m.Norm(rg)
		if err != nil {
			return nil, fmt.Errorf("ProjGradDescent: iteration %d: %w", iter, err)
		}
		if !finite(gnorm) {
			return nil, fmt.Errorf("ProjGradDescent: iteration %d: gradient norm: %w", iter, ErrNonFinite)
		}

		dir = mat.NewDense(r, c, nil)
		dir.Scale(-1, rg)
		outcome, err = ls.search(m, p.Func, M, f, dir, -gnorm*gnorm, gnorm)
		res.FuncEvaluations += outcome.evals
		if err != nil {
			return nil, fmt.Errorf("ProjGradDescent: iteration %d: %w", iter, err)
		}

		mse = meanSquaredDiff(outcome.x, M)
		prevF = f
		M, f = outcome.x, outcome.f
		iter++

		log.Debug().
			Int("iter", iter).
			Float64("f", f).
			Float64("grad_norm", gnorm).
			Float64("step", outcome.step).
			Float64("mse", mse).
			Msg("projected gradient step")

		if o.recorder != nil {
			err = o.recorder.Record(Stats{
				Iteration:       iter,
				F:               f,
				PrevF:           prevF,
				GradNorm:        gnorm,
				Step:            outcome.step,
				MeanSquaredStep: mse,
				FuncEvaluations: res.FuncEvaluations,
			})
			if err != nil {
				return nil, fmt.Errorf("ProjGradDescent: iteration %d: recorder: %w", iter, err)
			}
		}

		switch {
		case mse < threshold:
			status = Converged
		case iter >= maxIter:
			status = TimedOut
		}
		res.Step = outcome.step
	}

	// Stage 4: Finalize
	res.X = M
	res.F = f
	res.Status = status
	res.Iterations = iter
	res.GradEvaluations = oracle.evals
	res.GradNorm = gnorm

	log.Info().
		Str("status", status.String()).
		Int("iterations", iter).
		Float64("f", f).
		Float64("grad_norm", gnorm).
		Msg("projected gradient descent finished")

	return res, nil
}

// validateArgs checks the scalar arguments of ProjGradDescent.
func validateArgs(m manifold.Riemannian, p Problem, threshold float64, maxIter int) error {
	switch {
	case m == nil:
		return fmt.Errorf("ProjGradDescent: nil manifold: %w", ErrBadInput)
	case p.Func == nil:
		return fmt.Errorf("ProjGradDescent: nil objective: %w", ErrBadInput)
	case !(threshold > 0) || math.IsInf(threshold, 1):
		return fmt.Errorf("ProjGradDescent: threshold %v: %w", threshold, ErrBadInput)
	case maxIter < 1:
		return fmt.Errorf("ProjGradDescent: maxIter %d: %w", maxIter, ErrBadInput)
	}

	return nil
}

// meanSquaredDiff returns mean((a − b)²) over all entries.
func meanSquaredDiff(a, b mat.Matrix) float64 {
	var d mat.Dense
	d.Sub(a, b)
	data := d.RawMatrix().Data
	if len(data) == 0 {
		return 0
	}

	return floats.Dot(data, data) / float64(len(data))
}
