// SPDX-License-Identifier: MIT

// Package optimize: functional configuration for ProjGradDescent.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants, single source of truth),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// The backtracking constants are not fixed by the algorithm; every one of
// them is tunable here.
package optimize

import (
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/diff/fd"
)

// Defaults for the positional arguments of ProjGradDescent.
const (
	// DefaultConvergenceThreshold bounds mean((M_new − M_old)²).
	DefaultConvergenceThreshold = 0.1

	// DefaultMaxIter is the iteration budget.
	DefaultMaxIter = 100
)

// Line-search defaults.
const (
	// DefaultInitialStep is the first trial step of every line search,
	// further capped by TypicalDistance / ‖grad‖.
	DefaultInitialStep = 1.0

	// DefaultContraction is the step multiplier after a rejected trial.
	DefaultContraction = 0.5

	// DefaultDecrease is the Armijo sufficient-decrease constant.
	DefaultDecrease = 0.1

	// DefaultMinStep is the step floor; below it the iteration takes no step.
	DefaultMinStep = 1e-20
)

const (
	panicInitialStepInvalid = "optimize: WithInitialStep: step must be finite and > 0"
	panicContractionInvalid = "optimize: WithContraction: factor must be in (0,1)"
	panicDecreaseInvalid    = "optimize: WithDecrease: factor must be in (0,1)"
	panicMinStepInvalid     = "optimize: WithMinStep: step must be finite and > 0"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	initialStep float64
	contraction float64
	decrease    float64
	minStep     float64

	logger   zerolog.Logger
	recorder Recorder
	fd       fd.Settings
}

// WithInitialStep sets the first trial step of each line search.
func WithInitialStep(step float64) Option {
	if !positiveFinite(step) {
		panic(panicInitialStepInvalid)
	}

	return func(o *Options) { o.initialStep = step }
}

// WithContraction sets the backtracking multiplier ρ ∈ (0,1).
func WithContraction(rho float64) Option {
	if !(rho > 0 && rho < 1) {
		panic(panicContractionInvalid)
	}

	return func(o *Options) { o.contraction = rho }
}

// WithDecrease sets the Armijo constant c ∈ (0,1).
func WithDecrease(c float64) Option {
	if !(c > 0 && c < 1) {
		panic(panicDecreaseInvalid)
	}

	return func(o *Options) { o.decrease = c }
}

// WithMinStep sets the step floor of the line search.
func WithMinStep(step float64) Option {
	if !positiveFinite(step) {
		panic(panicMinStepInvalid)
	}

	return func(o *Options) { o.minStep = step }
}

// WithLogger routes per-iteration debug events and the final summary to l.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithRecorder registers r to observe every major iteration.
func WithRecorder(r Recorder) Option {
	return func(o *Options) { o.recorder = r }
}

// WithFiniteDifference configures the oracle used when Problem.Grad is nil.
// Concurrent evaluation is always disabled.
func WithFiniteDifference(s fd.Settings) Option {
	return func(o *Options) {
		o.fd = s
		o.fd.Concurrent = false
	}
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// gatherOptions resolves defaults and applies opts in order.
func gatherOptions(opts ...Option) Options {
	o := Options{
		initialStep: DefaultInitialStep,
		contraction: DefaultContraction,
		decrease:    DefaultDecrease,
		minStep:     DefaultMinStep,
		logger:      zerolog.Nop(),
		fd:          fd.Settings{Formula: fd.Central},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
