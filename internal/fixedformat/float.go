package fixedformat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatFloat formats v as %<width>.<precision>f, but rounds on the
// shortest decimal text of v with halves going away from zero: 100.125
// gives 100.13 and 2.5 gives 3, as the legacy StateMod tools write them.
// The text is padded on the left and never truncated.
func FormatFloat(v float64, width, precision int) string {
	return pad(roundHalfUp(v, max(precision, 0)), width)
}

// FormatFloatPoint is FormatFloat that keeps the decimal point at zero
// precision, like %#<width>.<precision>f.
func FormatFloatPoint(v float64, width, precision int) string {
	s := roundHalfUp(v, max(precision, 0))
	if precision <= 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
		s += "."
	}
	return pad(s, width)
}

// FormatFloatSign is FormatFloat with a leading blank for non-negative
// values, like % <width>.<precision>f.
func FormatFloatSign(v float64, width, precision int) string {
	s := roundHalfUp(v, max(precision, 0))
	if !strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "+") {
		s = " " + s
	}
	return pad(s, width)
}

func pad(s string, width int) string {
	if n := len(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func roundHalfUp(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%.*f", precision, v)
	}

	text := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	whole, frac, _ := strings.Cut(text, ".")

	var digits []byte
	if len(frac) <= precision {
		digits = []byte(whole + frac + strings.Repeat("0", precision-len(frac)))
	} else {
		digits = []byte(whole + frac[:precision])
		if frac[precision] >= '5' {
			digits = increment(digits)
		}
	}

	intLen := len(digits) - precision
	out := string(digits[:intLen])
	if precision > 0 {
		out += "." + string(digits[intLen:])
	}
	if math.Signbit(v) {
		out = "-" + out
	}
	return out
}

// increment adds one to a decimal digit string, growing it on carry.
func increment(digits []byte) []byte {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return digits
		}
		digits[i] = '0'
	}
	return append([]byte{'1'}, digits...)
}
