package engine

import (
	"math"
	"strconv"
	"strings"
)

const (
	scientificLarge = 1e15
	scientificSmall = 1e-6
)

// FormatResult renders v for the calculator display.
//
// Zero renders as "0", NaN as "Error" and both infinities as "Infinity".
// Magnitudes above 1e15 or below 1e-6 use the shortest scientific form
// (1.23e+20, 1e-7); everything else uses the shortest plain decimal.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "Error"
	case v == 0:
		return "0"
	case math.IsInf(v, 0):
		return "Infinity"
	}

	abs := math.Abs(v)
	if abs > scientificLarge || abs < scientificSmall {
		return trimExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimExponent drops the zero padding strconv adds to one-digit exponents.
func trimExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 >= len(s) {
		return s
	}

	mantissa, sign, digits := s[:idx], s[idx+1], strings.TrimLeft(s[idx+2:], "0")
	if digits == "" {
		digits = "0"
	}

	return mantissa + "e" + string(sign) + digits
}
