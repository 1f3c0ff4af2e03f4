// SPDX-License-Identifier: MIT

package optimize

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// gradOracle evaluates the Euclidean gradient of a Problem, either through
// the supplied Grad or through finite differences.
type gradOracle struct {
	p        Problem
	r, c     int
	settings fd.Settings
	evals    int
}

func newGradOracle(p Problem, r, c int, settings fd.Settings) *gradOracle {
	return &gradOracle{p: p, r: r, c: c, settings: settings}
}

// eval returns the gradient at x, or ok=false when it is not finite.
func (g *gradOracle) eval(x *mat.Dense) (grad *mat.Dense, ok bool) {
	g.evals++
	if g.p.Grad != nil {
		grad = mat.NewDense(g.r, g.c, nil)
		g.p.Grad(grad, x)
	} else {
		grad = FiniteDifferenceGradient(g.p.Func, x, &g.settings)
	}

	return grad, allFinite(grad.RawMatrix().Data)
}

// FiniteDifferenceGradient estimates the Euclidean gradient of f at x.
// A nil settings uses the central formula with gonum's default step.
// Complexity: O(r·c) evaluations of f.
func FiniteDifferenceGradient(f func(x mat.Matrix) float64, x mat.Matrix, settings *fd.Settings) *mat.Dense {
	r, c := x.Dims()
	if settings == nil {
		settings = &fd.Settings{Formula: fd.Central}
	}
	flat := func(v []float64) float64 {
		return f(mat.NewDense(r, c, v))
	}
	data := fd.Gradient(nil, flat, mat.DenseCopyOf(x).RawMatrix().Data, settings)

	return mat.NewDense(r, c, data)
}

func allFinite(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
