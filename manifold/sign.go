// SPDX-License-Identifier: MIT

package manifold

// sign returns -1, 0 or +1 according to the sign of x. NaN maps to 0.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// canonicalSign is the QR sign correction sign(sign(r)+0.5).
// It reproduces the sign of r and maps r == 0 to +1, so the corrected
// factor is unique and never loses a column.
func canonicalSign(r float64) float64 {
	return sign(sign(r) + 0.5)
}
