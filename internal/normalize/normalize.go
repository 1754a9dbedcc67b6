// Package normalize rewrites user input into the canonical ASCII form the
// measurement parser, the expression tokenizer and the mode classifier all
// expect. Mobile keyboards and speech-to-text engines emit typographic
// quotes, unicode fraction glyphs, NBSPs and locale decimal commas; none of
// those reach the parsers.
package normalize

import (
	"strings"

	"golang.org/x/text/width"
)

var symbols = strings.NewReplacer(
	// spaces
	"\u00a0", " ",
	"\u2009", " ",
	"\u202f", " ",
	"\t", " ",

	// operators
	"⁄", "/", // fraction slash
	"∕", "/", // division slash
	"÷", "/",
	"×", "*",
	"·", "*",
	"−", "-",
	",", ".",

	// feet and inch marks
	"“", `"`,
	"”", `"`,
	"″", `"`,
	"‘", "'",
	"’", "'",
	"′", "'",

	// fraction glyphs keep a leading space so "5½" reads as "5 1/2"
	"½", " 1/2",
	"¼", " 1/4",
	"¾", " 3/4",
	"⅛", " 1/8",
	"⅜", " 3/8",
	"⅝", " 5/8",
	"⅞", " 7/8",
)

// Input returns s with full-width forms folded, typographic symbols replaced
// by their ASCII equivalents and whitespace collapsed to single spaces.
func Input(s string) string {
	s = width.Fold.String(s)
	s = symbols.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
