// SPDX-License-Identifier: MIT

// Package manifold - input validation shared by manifold operations.
//
// Design principles:
//   - Side-effect free; only sentinel errors from errors.go.
//   - O(r·c) worst case; no allocations.
package manifold

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validateShape checks that a is non-nil and exactly r×c.
func validateShape(op, name string, a mat.Matrix, r, c int) error {
	if a == nil {
		return fmt.Errorf("%s: %s: %w", op, name, ErrNilMatrix)
	}
	ar, ac := a.Dims()
	if ar != r || ac != c {
		return fmt.Errorf("%s: %s is %dx%d, want %dx%d: %w", op, name, ar, ac, r, c, ErrShapeMismatch)
	}

	return nil
}

// validateFinite rejects matrices holding NaN or ±Inf.
func validateFinite(op, name string, a mat.Matrix) error {
	if !isFinite(a) {
		return fmt.Errorf("%s: %s: %w", op, name, ErrNaNInf)
	}

	return nil
}

// isFinite reports whether every entry of a is finite.
func isFinite(a mat.Matrix) bool {
	r, c := a.Dims()
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}

	return true
}

// closeTo reports |a-b| <= absTol + relTol*|b|.
func closeTo(a, b, absTol, relTol float64) bool {
	return math.Abs(a-b) <= absTol+relTol*math.Abs(b)
}
