package scicalc

import (
	"math"
	"strconv"
	"strings"
)

// FormatResult formats a result with the shortest digits that round-trip.
// Magnitudes in [1e-6, 1e21) use plain decimal notation; others use exponent
// notation without padding, e.g. 1e+21 or 1.5e-7. Negative zero formats as 0.
func FormatResult(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	if a := math.Abs(x); a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	s := strconv.FormatFloat(x, 'e', -1, 64)
	// Go pads the exponent to two digits.
	k := strings.IndexByte(s, 'e')
	mant, exp := s[:k+2], strings.TrimLeft(s[k+2:], "0")
	return mant + exp
}
