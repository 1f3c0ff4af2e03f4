// Package manifold provides matrix manifolds and their geometric primitives
// for Riemannian optimization.
//
// 🚀 What is a matrix manifold?
//
//	A smooth set of matrices on which we can still do calculus. The Stiefel
//	manifold St(n,p) = { X ∈ ℝ^{n×p} : XᵀX = I_p } collects all n×p
//	matrices with orthonormal columns. Optimizing over it appears in:
//	  • PCA and linear dimensionality reduction
//	  • orthogonal Procrustes / rotation fitting
//	  • eigenvalue and subspace tracking problems
//
// ✨ Key features:
//   - Manifold / Riemannian interfaces (dimension, projection, retraction)
//   - Stiefel: tangent projection via skew-symmetrization, sign-corrected
//     QR retraction, Euclidean metric, membership test
//   - RandomPoint / RandomTangent with deterministic seeding
//   - Grassmann placeholder (ErrNotImplemented until its geometry lands)
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/manopt/manifold"
//
//	st := manifold.NewStiefel(5, 2)
//	X, _ := manifold.RandomPoint(st, manifold.NewRNG(42))
//	T, _ := st.Proj(X, U)          // tangent vector at X
//	Y, _ := st.Retract(X, T, 0.1)  // back on the manifold
//	ok, _ := st.Contains(Y)        // true
//
// Matrices are gonum mat values. Points and tangent vectors are n×p
// *mat.Dense; operations never mutate their arguments.
//
// Performance:
//
//   - Proj, Inner, Norm: O(n·p²) / O(n·p)
//   - Retract, ProjectPoint: O(n²·p) (Householder QR)
package manifold
