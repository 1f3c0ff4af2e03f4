// SPDX-License-Identifier: MIT

package manifold

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var _ Riemannian = (*Grassmann)(nil)

// Grassmann is the manifold of p-dimensional subspaces of ℝⁿ.
//
// Its geometry is not designed yet: every geometric operation returns
// ErrNotImplemented and Dim reports NaN. Only the ambient shape is known.
type Grassmann struct {
	n, p int
}

// NewGrassmann returns the Grassmann placeholder Gr(n,p).
func NewGrassmann(n, p int) *Grassmann {
	return &Grassmann{n: n, p: p}
}

// String implements fmt.Stringer.
func (g *Grassmann) String() string {
	return fmt.Sprintf("%dx%d Grassmann manifold (not implemented)", g.n, g.p)
}

func (g *Grassmann) notImplemented(op string) error {
	return fmt.Errorf("Grassmann.%s: %w", op, ErrNotImplemented)
}

func (g *Grassmann) Dim() float64 { return math.NaN() }

func (g *Grassmann) TypicalDistance() float64 { return math.NaN() }

func (g *Grassmann) AmbientDims() (r, c int) { return g.n, g.p }

func (g *Grassmann) ProjectPoint(mat.Matrix) (*mat.Dense, error) {
	return nil, g.notImplemented("ProjectPoint")
}

func (g *Grassmann) Proj(_, _ mat.Matrix) (*mat.Dense, error) {
	return nil, g.notImplemented("Proj")
}

func (g *Grassmann) Contains(mat.Matrix) (bool, error) {
	return false, g.notImplemented("Contains")
}

func (g *Grassmann) Inner(_, _ mat.Matrix) (float64, error) {
	return 0, g.notImplemented("Inner")
}

func (g *Grassmann) Norm(mat.Matrix) (float64, error) {
	return 0, g.notImplemented("Norm")
}

func (g *Grassmann) Tangent(_, _ mat.Matrix) (*mat.Dense, error) {
	return nil, g.notImplemented("Tangent")
}

func (g *Grassmann) Egrad2Rgrad(_, _ mat.Matrix) (*mat.Dense, error) {
	return nil, g.notImplemented("Egrad2Rgrad")
}

func (g *Grassmann) Retract(_, _ mat.Matrix, _ float64) (*mat.Dense, error) {
	return nil, g.notImplemented("Retract")
}
