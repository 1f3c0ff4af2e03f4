// Package manopt is a small toolkit for optimization on matrix manifolds,
// built on gonum.
//
// 🚀 What is manopt?
//
//	Many problems ask for the best matrix under an orthonormality
//	constraint: PCA frames, rotations, subspace trackers. manopt treats the
//	constraint set as a Riemannian manifold and runs gradient descent on it:
//		• Manifold interface: dimension, tangent projection, retraction
//		• Stiefel St(n,p): sign-corrected QR retraction, Euclidean metric
//		• Grassmann placeholder
//		• Projected gradient descent with Armijo backtracking
//		• Ready-made objectives: distance, Brockett (PCA), Procrustes
//
// ✨ Why choose manopt?
//
//   - Deterministic – seeded sampling, reproducible runs
//   - Explicit errors – sentinel errors, no panics on user input
//   - Observable – zerolog events and per-iteration recorders
//   - gonum native – points are *mat.Dense, objectives take mat.Matrix
//
// Layout:
//
//	manifold/   — Manifold / Riemannian interfaces, Stiefel, Grassmann, sampling
//	optimize/   — ProjGradDescent, line search, finite-difference oracle
//	objectives/ — Distance, Brockett, Procrustes, Covariance
//	cmd/manopt  — command-line runner (cobra + YAML configs)
//	examples/   — runnable programs
//
//	go get github.com/katalvlaran/manopt
package manopt
