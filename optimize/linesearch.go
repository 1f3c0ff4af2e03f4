// SPDX-License-Identifier: MIT

package optimize

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	gopt "gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/manopt/manifold"
)

// backtracking is an Armijo line search along a retraction curve
//
//	φ(s) = f(R_x(s·d)),  φ(0) = f(x),  φ'(0) = ⟨grad, d⟩,
//
// shrinking s by contraction until φ(s) ≤ φ(0) + c·s·φ'(0) or s < minStep.
type backtracking struct {
	initial     float64
	contraction float64
	decrease    float64
	minStep     float64
}

// lsResult is the accepted point of one line search.
type lsResult struct {
	x     *mat.Dense
	f     float64
	step  float64 // 0 when no trial satisfied the Armijo condition
	evals int
}

// search runs one backtracking line search from x along dir.
// slope is the directional derivative ⟨grad, dir⟩ (≤ 0 for a descent
// direction) and dirNorm the Riemannian norm of dir.
//
// When the floor is reached the returned point is x itself, so the
// objective never increases.
func (b backtracking) search(m manifold.Riemannian, f func(mat.Matrix) float64, x *mat.Dense, fx float64, dir *mat.Dense, slope, dirNorm float64) (lsResult, error) {
	step := b.initial
	if td := m.TypicalDistance(); dirNorm > 0 && td > 0 && !math.IsInf(td, 1) {
		step = math.Min(step, td/dirNorm)
	}

	var (
		res lsResult
		y   *mat.Dense
		fy  float64
		err error
	)
	for step >= b.minStep {
		y, err = m.Retract(x, dir, step)
		if err != nil {
			if errors.Is(err, manifold.ErrNaNInf) {
				return res, fmt.Errorf("retraction at step %g: %w: %w", step, ErrNonFinite, err)
			}

			return res, fmt.Errorf("retraction at step %g: %w", step, err)
		}
		fy = f(y)
		res.evals++
		if !finite(fy) {
			return res, fmt.Errorf("objective at step %g is %v: %w", step, fy, ErrNonFinite)
		}
		if gopt.ArmijoConditionMet(fy, fx, slope, step, b.decrease) {
			res.x, res.f, res.step = y, fy, step
			return res, nil
		}
		step *= b.contraction
	}

	res.x, res.f, res.step = mat.DenseCopyOf(x), fx, 0

	return res, nil
}
