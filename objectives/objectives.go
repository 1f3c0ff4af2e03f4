// SPDX-License-Identifier: MIT

// Package objectives provides smooth test problems on matrix manifolds,
// each with an analytic Euclidean gradient.
//
//   - Distance:   f(M) = ‖M − M₀‖²_F                (nearest point)
//   - Brockett:   f(M) = −tr(MᵀAM), A symmetric      (PCA / dominant subspace)
//   - Procrustes: f(M) = ‖AM − B‖²_F                 (orthogonal Procrustes)
//
// All constructors copy their inputs, so later changes by the caller do not
// leak into the returned Problem.
package objectives

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/manopt/optimize"
)

// ErrDimensionMismatch indicates operands whose shapes cannot be combined.
var ErrDimensionMismatch = errors.New("objectives: dimension mismatch")

// ErrEmpty indicates an input without observations.
var ErrEmpty = errors.New("objectives: empty input")

// Distance returns f(M) = ‖M − target‖²_F with ∇f = 2(M − target).
func Distance(target mat.Matrix) optimize.Problem {
	t := mat.DenseCopyOf(target)

	return optimize.Problem{
		Func: func(x mat.Matrix) float64 {
			var d mat.Dense
			d.Sub(x, t)
			return frobSq(&d)
		},
		Grad: func(grad *mat.Dense, x mat.Matrix) {
			grad.Sub(x, t)
			grad.Scale(2, grad)
		},
	}
}

// Brockett returns f(M) = −tr(MᵀAM) with ∇f = −2AM. Minimizing it on
// St(n,p) spans the dominant p-dimensional eigenspace of A, and −f at the
// optimum equals the sum of the p largest eigenvalues.
func Brockett(A mat.Symmetric) optimize.Problem {
	a := mat.NewSymDense(A.SymmetricDim(), nil)
	a.CopySym(A)

	return optimize.Problem{
		Func: func(x mat.Matrix) float64 {
			var ax mat.Dense
			ax.Mul(a, x)
			return -dot(x, &ax)
		},
		Grad: func(grad *mat.Dense, x mat.Matrix) {
			grad.Mul(a, x)
			grad.Scale(-2, grad)
		},
	}
}

// Procrustes returns f(M) = ‖AM − B‖²_F with ∇f = 2Aᵀ(AM − B).
// A is k×n and B is k×p; M is n×p.
func Procrustes(A, B mat.Matrix) (optimize.Problem, error) {
	ar, _ := A.Dims()
	br, _ := B.Dims()
	if ar != br {
		return optimize.Problem{}, fmt.Errorf("Procrustes: A has %d rows, B has %d: %w", ar, br, ErrDimensionMismatch)
	}
	a := mat.DenseCopyOf(A)
	b := mat.DenseCopyOf(B)

	residual := func(x mat.Matrix) *mat.Dense {
		var r mat.Dense
		r.Mul(a, x)
		r.Sub(&r, b)
		return &r
	}

	return optimize.Problem{
		Func: func(x mat.Matrix) float64 {
			return frobSq(residual(x))
		},
		Grad: func(grad *mat.Dense, x mat.Matrix) {
			grad.Mul(a.T(), residual(x))
			grad.Scale(2, grad)
		},
	}, nil
}

// Covariance returns the sample covariance of data, whose rows are
// observations and columns are variables. It feeds Brockett for PCA.
func Covariance(data mat.Matrix) (*mat.SymDense, error) {
	r, _ := data.Dims()
	if r < 2 {
		return nil, fmt.Errorf("Covariance: %d observations: %w", r, ErrEmpty)
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	return &cov, nil
}

// frobSq returns Σ d_ij².
func frobSq(d *mat.Dense) float64 {
	return dot(d, d)
}

// dot returns the flattened inner product Σ a_ij·b_ij.
func dot(a, b mat.Matrix) float64 {
	var h mat.Dense
	h.MulElem(a, b)

	return mat.Sum(&h)
}
