package calc

import (
	"math"
	"strconv"
)

// exponentThreshold is the magnitude above which plain results switch to
// exponential notation.
const exponentThreshold = 1e12

// FormatNumber renders a plain-mode result without locale formatting:
// integers without a decimal point, fractions in their shortest exact form,
// and magnitudes of 1e12 and above as d.dddddde+NN.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if math.Abs(v) >= exponentThreshold {
		return strconv.FormatFloat(v, 'e', 6, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
