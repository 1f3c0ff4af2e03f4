// SPDX-License-Identifier: MIT

package manifold

// Test bridge: exposes private helpers to package manifold_test only.
var (
	Sign          = sign
	CanonicalSign = canonicalSign
	CloseTo       = closeTo
)
