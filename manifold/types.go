// SPDX-License-Identifier: MIT

// Package manifold: capability interfaces.
// Manifold is the minimal contract every variant satisfies; Riemannian adds
// the metric and retraction used by first-order optimizers. Concrete types
// (Stiefel, Grassmann) are composed through these interfaces, not embedded.
package manifold

import "gonum.org/v1/gonum/mat"

// Manifold is the capability set shared by all manifolds.
type Manifold interface {
	// Dim returns the intrinsic (Riemannian) dimension. It may be fractional
	// in its formula and must not be used as a sampling shape.
	Dim() float64

	// AmbientDims returns the shape of the matrices the manifold lives in.
	AmbientDims() (r, c int)

	// ProjectPoint maps an arbitrary ambient matrix onto the manifold.
	ProjectPoint(Y mat.Matrix) (*mat.Dense, error)

	// Proj projects the ambient direction U onto the tangent space at X.
	Proj(X, U mat.Matrix) (*mat.Dense, error)

	// Contains reports whether X satisfies the membership predicate.
	Contains(X mat.Matrix) (bool, error)
}

// Riemannian is a Manifold equipped with a metric and a retraction.
type Riemannian interface {
	Manifold

	// Inner is the Riemannian metric of two tangent vectors.
	Inner(d1, d2 mat.Matrix) (float64, error)

	// Norm is the length of a tangent vector under Inner.
	Norm(d mat.Matrix) (float64, error)

	// Tangent is an alias of Proj.
	Tangent(X, U mat.Matrix) (*mat.Dense, error)

	// Egrad2Rgrad converts a Euclidean gradient G at X into the Riemannian
	// gradient.
	Egrad2Rgrad(X, G mat.Matrix) (*mat.Dense, error)

	// Retract moves from X along t·U and maps the result back onto the
	// manifold.
	Retract(X, U mat.Matrix, t float64) (*mat.Dense, error)

	// TypicalDistance is a length scale used by step-size heuristics.
	TypicalDistance() float64
}
