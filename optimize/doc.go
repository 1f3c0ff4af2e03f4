// Package optimize minimizes smooth objectives over Riemannian matrix
// manifolds.
//
// 🚀 What is projected gradient descent?
//
//	Take the Euclidean gradient, project it onto the tangent space of the
//	current point, step against it and retract back onto the manifold.
//	A backtracking (Armijo) line search picks the step so the objective
//	never increases.
//
// ✨ Key features:
//   - ProjGradDescent over any manifold.Riemannian
//   - analytic gradient or a finite-difference oracle (gonum diff/fd)
//   - Armijo test shared with gonum/optimize
//   - Converged / TimedOut terminal states with full run statistics
//   - zerolog events and a Recorder hook per iteration
//
// ⚙️ Usage:
//
//	st := manifold.NewStiefel(5, 2)
//	res, err := optimize.ProjGradDescent(x0, st, objectives.Distance(M0),
//		optimize.DefaultConvergenceThreshold, optimize.DefaultMaxIter,
//		optimize.WithLogger(logger),
//	)
//	if err != nil { ... }
//	fmt.Println(res.Status, res.F)
//
// Convergence is measured on the iterate, not the gradient: a run stops
// once mean((M_new − M_old)²) falls below the threshold.
package optimize
