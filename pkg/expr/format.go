package expr

import (
	"math"
	"strconv"
	"strings"
)

// Format renders v the way results are shown on the calculator display:
// the shortest digits that round-trip, in plain notation for magnitudes in
// [1e-6, 1e21) and in exponent notation ("1e+21", "1.5e-7") otherwise.
// Negative zero is shown as "0". The output parses back to v.
func Format(v float64) string {
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return s
	}

	mantissa, exp := s[:i], s[i+1:]
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}

	return mantissa + "e" + sign + digits
}

// FormatWidth is Format limited to width characters. Longer renderings are
// rounded to fewer significant digits until they fit; if even one digit does
// not fit, the one-digit rendering is returned.
func FormatWidth(v float64, width int) string {
	s := Format(v)
	if len(s) <= width {
		return s
	}

	for prec := 16; prec >= 1; prec-- {
		r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'e', prec-1, 64), 64)
		if err != nil {
			break
		}
		s = Format(r)
		if len(s) <= width {
			break
		}
	}

	return s
}
