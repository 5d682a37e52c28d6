package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Case conversion modes.
const (
	CaseLower = "lower"
	CaseUpper = "upper"
	CaseCamel = "camel"
	CaseNone  = "none"
)

// Options controls how a metadata value is normalized before it is
// substituted into a path template.
type Options struct {
	// OKChars lists extra characters allowed through unchanged, in
	// addition to letters and digits.
	OKChars string

	// SpaceChar replaces whitespace runs when KeepSpaces is false.
	SpaceChar string

	// KeepSpaces retains whitespace instead of replacing it.
	KeepSpaces bool

	// CaseMode is one of CaseLower, CaseUpper, CaseCamel or CaseNone.
	CaseMode string

	// ASCIIOnly folds accented characters to their ASCII base form and
	// drops anything that remains non-ASCII.
	ASCIIOnly bool
}

// asciiFold decomposes accented characters and strips the combining
// marks, e.g. "Motörhead" becomes "Motorhead".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes content for use as a path component.
//
// The value is case-converted, optionally ASCII-folded, and filtered
// down to letters, digits and the allowed extra characters; whitespace
// runs collapse to the configured space replacement.
//
//	Slugify("Söng: One", Options{SpaceChar: "-", CaseMode: CaseLower, ASCIIOnly: true})
//	// "söng-one" folded to "song-one"
func Slugify(content string, opts Options) string {
	switch opts.CaseMode {
	case CaseUpper:
		content = strings.ToUpper(content)
	case CaseCamel:
		content = camelCase(content)
	case CaseNone:
		// keep as-is
	default:
		content = strings.ToLower(content)
	}

	if opts.ASCIIOnly {
		if folded, _, err := transform.String(asciiFold, content); err == nil {
			content = folded
		}
	}

	space := opts.SpaceChar
	if opts.KeepSpaces {
		space = " "
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range content {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(opts.OKChars, r):
			if opts.ASCIIOnly && r > unicode.MaxASCII {
				continue
			}
			if pendingSpace && b.Len() > 0 {
				b.WriteString(space)
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}

	return b.String()
}

// camelCase lowercases the value and uppercases the letter at the start
// of each word, where words begin after whitespace or a hyphen.
func camelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range strings.ToLower(s) {
		if startOfWord && unicode.IsLower(r) {
			r = unicode.ToUpper(r)
		}
		startOfWord = unicode.IsSpace(r) || r == '-'
		b.WriteRune(r)
	}
	return b.String()
}
