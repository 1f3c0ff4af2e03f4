// SPDX-License-Identifier: MIT

package manifold

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var _ Riemannian = (*Stiefel)(nil)

// Stiefel is the manifold St(n,p) of n×p real matrices with orthonormal
// columns, a Riemannian submanifold of ℝ^{n×p} with the Euclidean metric.
//
// A Stiefel value is immutable and safe for concurrent use. Every operation
// allocates its result; arguments are never modified.
type Stiefel struct {
	n, p    int
	dim     float64 // n·p − p(p+1)/2
	typical float64 // √p
	opts    Options
}

// NewStiefel returns St(n,p).
// The caller must ensure 0 < p ≤ n; otherwise Dim is degenerate and the
// operations that factorize a point report ErrBadShape.
// Complexity: O(1).
func NewStiefel(n, p int, opts ...Option) *Stiefel {
	return &Stiefel{
		n:       n,
		p:       p,
		dim:     float64(n*p) - 0.5*float64(p*(p+1)),
		typical: math.Sqrt(float64(p)),
		opts:    gatherOptions(opts...),
	}
}

// N returns the number of rows.
func (s *Stiefel) N() int { return s.n }

// P returns the number of columns.
func (s *Stiefel) P() int { return s.p }

// Dim returns n·p − p(p+1)/2.
func (s *Stiefel) Dim() float64 { return s.dim }

// TypicalDistance returns √p.
func (s *Stiefel) TypicalDistance() float64 { return s.typical }

// AmbientDims returns (n, p).
func (s *Stiefel) AmbientDims() (r, c int) { return s.n, s.p }

// String implements fmt.Stringer.
func (s *Stiefel) String() string {
	return fmt.Sprintf("%dx%d Stiefel manifold", s.n, s.p)
}

// Inner returns the Euclidean inner product Σ d1_ij·d2_ij.
// Complexity: O(n·p).
func (s *Stiefel) Inner(d1, d2 mat.Matrix) (float64, error) {
	if err := validateShape("Stiefel.Inner", "d1", d1, s.n, s.p); err != nil {
		return 0, err
	}
	if err := validateShape("Stiefel.Inner", "d2", d2, s.n, s.p); err != nil {
		return 0, err
	}
	a := mat.DenseCopyOf(d1)
	b := mat.DenseCopyOf(d2)

	return floats.Dot(a.RawMatrix().Data, b.RawMatrix().Data), nil
}

// Norm returns √Inner(d, d).
func (s *Stiefel) Norm(d mat.Matrix) (float64, error) {
	v, err := s.Inner(d, d)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(v), nil
}

// Proj projects the ambient matrix U onto the tangent space at X:
//
//	Proj(X, U) = X·skew(XᵀU) + (I − XXᵀ)·U,  skew(A) = (A − Aᵀ)/2.
//
// X must lie on the manifold; U is unconstrained. The result T satisfies
// XᵀT + TᵀX = 0. (I − XXᵀ)·U is evaluated as U − X(XᵀU), which never forms
// the n×n projector.
// Complexity: O(n·p²).
func (s *Stiefel) Proj(X, U mat.Matrix) (*mat.Dense, error) {
	const op = "Stiefel.Proj"
	if err := validateShape(op, "X", X, s.n, s.p); err != nil {
		return nil, err
	}
	if err := validateShape(op, "U", U, s.n, s.p); err != nil {
		return nil, err
	}

	var xtu, skew mat.Dense
	xtu.Mul(X.T(), U)
	skew.Sub(&xtu, xtu.T())
	skew.Scale(0.5, &skew)

	var normal, tangential mat.Dense
	normal.Mul(X, &xtu)
	normal.Sub(U, &normal)
	tangential.Mul(X, &skew)

	out := mat.NewDense(s.n, s.p, nil)
	out.Add(&tangential, &normal)

	return out, nil
}

// Tangent is an alias of Proj.
func (s *Stiefel) Tangent(X, U mat.Matrix) (*mat.Dense, error) {
	return s.Proj(X, U)
}

// Egrad2Rgrad converts the Euclidean gradient G at X into the Riemannian
// gradient. With the embedded metric this is the tangent projection.
func (s *Stiefel) Egrad2Rgrad(X, G mat.Matrix) (*mat.Dense, error) {
	return s.Proj(X, G)
}

// Retract maps X + t·U back onto the manifold through the sign-corrected
// thin QR factor:
//
//	Y = X + tU = QR,  Retract(X, U, t) = Q·diag(sign(sign(R_ii) + 0.5)).
//
// The correction makes Q unique (R_ii = 0 keeps its column, sign +1), so
// Retract(X, U, 0) returns X for every X on the manifold.
// Complexity: O(n·p²).
func (s *Stiefel) Retract(X, U mat.Matrix, t float64) (*mat.Dense, error) {
	const op = "Stiefel.Retract"
	if err := validateShape(op, "X", X, s.n, s.p); err != nil {
		return nil, err
	}
	if err := validateShape(op, "U", U, s.n, s.p); err != nil {
		return nil, err
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, fmt.Errorf("%s: step %v: %w", op, t, ErrNaNInf)
	}

	y := mat.NewDense(s.n, s.p, nil)
	y.Scale(t, U)
	y.Add(X, y)

	return s.qf(op, y)
}

// ProjectPoint maps an arbitrary n×p matrix Y onto the manifold as the
// sign-corrected Q factor of its thin QR decomposition.
func (s *Stiefel) ProjectPoint(Y mat.Matrix) (*mat.Dense, error) {
	const op = "Stiefel.ProjectPoint"
	if err := validateShape(op, "Y", Y, s.n, s.p); err != nil {
		return nil, err
	}

	return s.qf(op, Y)
}

// Contains reports whether X is n×p and XᵀX ≈ I_p within the configured
// tolerance. A shape mismatch is a "false" answer, not an error.
// Complexity: O(n·p²).
func (s *Stiefel) Contains(X mat.Matrix) (bool, error) {
	if X == nil {
		return false, fmt.Errorf("Stiefel.Contains: X: %w", ErrNilMatrix)
	}
	r, c := X.Dims()
	if r != s.n || c != s.p {
		return false, nil
	}

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	var i, j int
	var want float64
	for i = 0; i < s.p; i++ {
		for j = 0; j < s.p; j++ {
			want = 0
			if i == j {
				want = 1
			}
			if !closeTo(xtx.At(i, j), want, s.opts.absTol, s.opts.relTol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// qf returns the canonical thin Q factor of y (n×p).
func (s *Stiefel) qf(op string, y mat.Matrix) (*mat.Dense, error) {
	if s.p <= 0 || s.n < s.p {
		return nil, fmt.Errorf("%s: %dx%d: %w", op, s.n, s.p, ErrBadShape)
	}
	if err := validateFinite(op, "Y", y); err != nil {
		return nil, err
	}

	var qr mat.QR
	qr.Factorize(y)

	var q, r mat.Dense
	qr.QTo(&q)
	qr.RTo(&r)

	out := mat.NewDense(s.n, s.p, nil)
	out.Copy(q.Slice(0, s.n, 0, s.p))

	var i, j int
	var d float64
	for j = 0; j < s.p; j++ {
		d = canonicalSign(r.At(j, j))
		if d == 1 {
			continue
		}
		for i = 0; i < s.n; i++ {
			out.Set(i, j, -out.At(i, j))
		}
	}

	return out, nil
}
