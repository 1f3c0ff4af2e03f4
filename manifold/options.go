// SPDX-License-Identifier: MIT

// Package manifold: functional configuration for manifold constructors.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Options only influence numeric policy (membership tolerance). Geometry is
// fixed by the manifold type and its shape parameters.
package manifold

import "math"

// Numeric policy.
const (
	// DefaultAbsTol is the absolute tolerance used by Contains.
	DefaultAbsTol = 1e-8

	// DefaultRelTol is the relative tolerance used by Contains.
	// Together with DefaultAbsTol it mirrors |a-b| <= atol + rtol*|b|.
	DefaultRelTol = 1e-5
)

const panicToleranceInvalid = "manifold: WithTolerance: tolerances must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	absTol float64 // DefaultAbsTol
	relTol float64 // DefaultRelTol
}

// WithTolerance sets the absolute and relative tolerances of Contains.
// Panics if either value is negative, NaN or ±Inf.
func WithTolerance(absTol, relTol float64) Option {
	if !validTol(absTol) || !validTol(relTol) {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) {
		o.absTol = absTol
		o.relTol = relTol
	}
}

func validTol(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// gatherOptions resolves defaults and applies opts in order.
func gatherOptions(opts ...Option) Options {
	o := Options{
		absTol: DefaultAbsTol,
		relTol: DefaultRelTol,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
