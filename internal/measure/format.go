package measure

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder is rendered in place of a non-finite measurement.
const Placeholder = "—"

// Parts is a measurement decomposed for display. Feet and Inches are never
// negative; the sign is carried once in Negative. Numerator/Denominator is
// already in lowest terms, and Numerator is 0 when there is no fraction.
type Parts struct {
	Negative    bool  `json:"negative"`
	Feet        int64 `json:"feet"`
	Inches      int   `json:"inches"`
	Numerator   int   `json:"numerator"`
	Denominator int   `json:"denominator"`
}

// IsZero reports whether every component rounded to zero.
func (p Parts) IsZero() bool {
	return p.Feet == 0 && p.Inches == 0 && p.Numerator == 0
}

// Representable reports whether totalInches is finite and its feet fit in
// an int64.
func Representable(totalInches float64) bool {
	if math.IsInf(totalInches, 0) || math.IsNaN(totalInches) {
		return false
	}
	return math.Abs(totalInches)/12 < math.MaxInt64
}

// Decompose splits totalInches into feet, whole inches and a fraction
// rounded to the nearest 1/base, carrying a full fraction into inches and
// twelve inches into a foot. base <= 0 uses DefaultDenominator. Values that
// are not Representable yield zero Parts.
func Decompose(totalInches float64, base int) Parts {
	if base <= 0 {
		base = DefaultDenominator
	}
	if !Representable(totalInches) {
		return Parts{Denominator: base}
	}

	x := math.Abs(totalInches)
	feet := math.Floor(x / 12)
	rem := x - feet*12
	if rem < 0 || rem >= 12 {
		// float error above 2^53 inches
		rem = 0
	}
	whole := int(math.Floor(rem))
	num := int(math.Round((rem - float64(whole)) * float64(base)))

	if num == base {
		whole++
		num = 0
	}
	if whole >= 12 {
		feet++
		whole -= 12
	}

	den := base
	if num > 0 {
		g := gcd(num, base)
		num /= g
		den /= g
	}

	p := Parts{
		Feet:        int64(feet),
		Inches:      whole,
		Numerator:   num,
		Denominator: den,
	}
	p.Negative = totalInches < 0 && !p.IsZero()
	return p
}

// Format renders totalInches as feet, inches and a reduced fraction, e.g.
// `1' 4 1/2"`, `15 3/8"`, `3/4"`, `2'` or `0"`. The inch mark is only
// written when an inch component is present. Values that are not
// Representable render as Placeholder.
func Format(totalInches float64, base int) string {
	if !Representable(totalInches) {
		return Placeholder
	}
	return Decompose(totalInches, base).String()
}

// String renders p the same way Format does.
func (p Parts) String() string {
	segments := make([]string, 0, 3)
	if p.Feet > 0 {
		segments = append(segments, strconv.FormatInt(p.Feet, 10)+"'")
	}

	inchSegment := false
	if p.Inches != 0 || (p.Feet == 0 && p.Numerator == 0) {
		segments = append(segments, strconv.Itoa(p.Inches))
		inchSegment = true
	}
	if p.Numerator != 0 {
		segments = append(segments, strconv.Itoa(p.Numerator)+"/"+strconv.Itoa(p.Denominator))
		inchSegment = true
	}

	var b strings.Builder
	if p.Negative {
		b.WriteByte('-')
	}
	b.WriteString(strings.Join(segments, " "))
	if inchSegment {
		b.WriteByte('"')
	}
	return b.String()
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
