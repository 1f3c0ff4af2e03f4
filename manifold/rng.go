// SPDX-License-Identifier: MIT

// Package manifold - random sampling shared by all manifolds.
//
// Determinism: a nil *rand.Rand is replaced by a stream seeded with
// defaultRNGSeed, so the same call sequence yields the same points.
// math/rand.Rand is NOT goroutine-safe; do not share one across goroutines.
package manifold

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// defaultRNGSeed is used when callers pass seed==0 or a nil generator.
const defaultRNGSeed int64 = 1

// NewRNG returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func NewRNG(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// gaussian returns an r×c matrix of i.i.d. standard-normal samples.
func gaussian(r, c int, rng *rand.Rand) *mat.Dense {
	z := make([]float64, r*c)
	for i := range z {
		z[i] = rng.NormFloat64()
	}

	return mat.NewDense(r, c, z)
}

// RandomPoint returns a random point on m. It samples an unconstrained
// Gaussian matrix of the ambient shape and maps it through m.ProjectPoint.
// If rng==nil, the default deterministic stream is used.
//
// Errors: ErrBadShape for a non-positive ambient shape, plus anything
// ProjectPoint returns (ErrNotImplemented for placeholders).
func RandomPoint(m Manifold, rng *rand.Rand) (*mat.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("RandomPoint: %w", ErrNotImplemented)
	}
	r, c := m.AmbientDims()
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("RandomPoint: %dx%d: %w", r, c, ErrBadShape)
	}
	if rng == nil {
		rng = NewRNG(0)
	}

	return m.ProjectPoint(gaussian(r, c, rng))
}

// RandomTangent returns a random unit-norm tangent vector at X.
func RandomTangent(m Riemannian, X mat.Matrix, rng *rand.Rand) (*mat.Dense, error) {
	r, c := m.AmbientDims()
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("RandomTangent: %dx%d: %w", r, c, ErrBadShape)
	}
	if rng == nil {
		rng = NewRNG(0)
	}
	u, err := m.Proj(X, gaussian(r, c, rng))
	if err != nil {
		return nil, fmt.Errorf("RandomTangent: %w", err)
	}
	nrm, err := m.Norm(u)
	if err != nil {
		return nil, fmt.Errorf("RandomTangent: %w", err)
	}
	if nrm > 0 {
		u.Scale(1/nrm, u)
	}

	return u, nil
}
