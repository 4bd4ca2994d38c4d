package document

import (
	"strings"
	"unicode"

	"github.com/unidoc/garabic"
	"golang.org/x/text/unicode/bidi"
)

// Shape replaces Arabic letters in logical order with their contextual
// presentation forms, lam-alef ligatures included, so a font without
// OpenType shaping renders them joined.
func Shape(s string) string {
	return garabic.Shape(s)
}

func hasArabic(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return unicode.Is(unicode.Arabic, r) })
}

// Visual converts a logical right-to-left line into the left-to-right
// sequence a PDF text operator draws. The line is shaped, split into
// directional runs by the Unicode bidi algorithm and the runs are emitted
// last to first, right-to-left runs reversed with brackets mirrored. Lines
// without Arabic are returned unchanged.
func Visual(s string) string {
	if !hasArabic(s) {
		return s
	}
	shaped := Shape(s)

	var p bidi.Paragraph
	if _, err := p.SetString(shaped, bidi.DefaultDirection(bidi.RightToLeft)); err != nil {
		return bidi.ReverseString(shaped)
	}
	order, err := p.Order()
	if err != nil {
		return bidi.ReverseString(shaped)
	}

	var b strings.Builder
	b.Grow(len(shaped))
	for i := order.NumRuns() - 1; i >= 0; i-- {
		run := order.Run(i)
		if run.Direction() == bidi.RightToLeft {
			b.WriteString(bidi.ReverseString(run.String()))
			continue
		}
		b.WriteString(run.String())
	}
	return b.String()
}
