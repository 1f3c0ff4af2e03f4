// SPDX-License-Identifier: MIT
// Package optimize: sentinel error set.
// Non-convergence is NOT an error: it is reported through Result.Status.
// Errors abort the run and no partial result is returned.

package optimize

import "errors"

var (
	// ErrBadInput indicates invalid arguments: nil manifold or objective,
	// non-positive or non-finite threshold, or maxIter < 1.
	ErrBadInput = errors.New("optimize: invalid input")

	// ErrNotOnManifold is returned when the initial point fails the
	// manifold's membership test.
	ErrNotOnManifold = errors.New("optimize: initial point is not on the manifold")

	// ErrNonFinite signals numerical divergence: the objective, the gradient
	// or a retracted point produced NaN or ±Inf.
	ErrNonFinite = errors.New("optimize: non-finite value encountered")
)
