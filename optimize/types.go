// SPDX-License-Identifier: MIT

// Package optimize: problem, status and result types.
package optimize

import "gonum.org/v1/gonum/mat"

// Problem describes a scalar objective over n×p matrices.
//
// Func is required. Grad writes the Euclidean gradient of Func at x into
// grad (already sized like x); when Grad is nil a finite-difference oracle
// is used instead. Neither function may retain or modify x.
type Problem struct {
	Func func(x mat.Matrix) float64
	Grad func(grad *mat.Dense, x mat.Matrix)
}

// Status is the terminal state of an optimization run.
type Status int

const (
	// Running is the state while iterations are in progress.
	Running Status = iota

	// Converged means the mean squared change of the iterate dropped below
	// the convergence threshold.
	Converged

	// TimedOut means the iteration budget was exhausted first. The returned
	// point is a best-effort result, not a certified minimizer.
	TimedOut
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Converged:
		return "Converged"
	case TimedOut:
		return "TimedOut"
	default:
		return "Unknown"
	}
}

// Result holds the outcome of ProjGradDescent.
type Result struct {
	// X is the final point; it lies on the manifold.
	X *mat.Dense

	// F is the objective value at X.
	F float64

	// Status is Converged or TimedOut.
	Status Status

	// Iterations is the number of completed major iterations.
	Iterations int

	// FuncEvaluations and GradEvaluations count oracle calls
	// (finite-difference probes are not included in FuncEvaluations).
	FuncEvaluations int
	GradEvaluations int

	// GradNorm is the Riemannian gradient norm at the start of the last iteration.
	GradNorm float64

	// Step is the last accepted step size (0 when the line search made no progress).
	Step float64
}

// Stats is a snapshot passed to a Recorder after every major iteration.
type Stats struct {
	Iteration       int
	F               float64 // objective after the step
	PrevF           float64 // objective before the step
	GradNorm        float64
	Step            float64
	MeanSquaredStep float64
	FuncEvaluations int
}

// Recorder observes the progress of a run. A non-nil error aborts it.
type Recorder interface {
	Record(Stats) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(Stats) error

// Record calls f(s).
func (f RecorderFunc) Record(s Stats) error { return f(s) }
