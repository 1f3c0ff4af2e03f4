// SPDX-License-Identifier: MIT
// Package manifold: sentinel error set.
// Every exported operation returns one of these sentinels (possibly wrapped
// with operation context) and tests match them via errors.Is. User-triggered
// conditions never panic; panics are reserved for nonsensical option values.

package manifold

import "errors"

var (
	// ErrNotImplemented is returned by operations a manifold does not provide
	// (the Grassmann placeholder returns it from every geometric call).
	ErrNotImplemented = errors.New("manifold: operation not implemented")

	// ErrShapeMismatch indicates that a point or direction does not have the
	// ambient shape configured on the manifold instance.
	ErrShapeMismatch = errors.New("manifold: shape mismatch")

	// ErrBadShape is returned when the manifold parameters cannot support the
	// requested factorization (n<=0, p<=0 or p>n).
	ErrBadShape = errors.New("manifold: invalid manifold shape")

	// ErrNaNInf signals a NaN or ±Inf entry where finite values are required.
	ErrNaNInf = errors.New("manifold: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix argument was supplied.
	ErrNilMatrix = errors.New("manifold: nil matrix")
)
