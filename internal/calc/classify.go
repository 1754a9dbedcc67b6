package calc

import (
	"regexp"
	"strings"

	"onsite-calculator/internal/normalize"
)

// Mode selects the engine used for an input.
type Mode string

const (
	ModeNormal      Mode = "normal"
	ModeMeasurement Mode = "measurement"
)

var fractionPattern = regexp.MustCompile(`\d/\d`)

// Classify routes text by syntax alone: a feet mark, an inch mark or a
// digit-slash-digit fraction means measurement mode. "10 / 2", with spaces
// around the slash, is plain division.
func Classify(text string) Mode {
	return classifyNormalized(normalize.Input(text))
}

func classifyNormalized(s string) Mode {
	if strings.ContainsAny(s, `'"`) || fractionPattern.MatchString(s) {
		return ModeMeasurement
	}
	return ModeNormal
}
