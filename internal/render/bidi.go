package render

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// IsRTL reports whether the first strong character of s is right-to-left.
func IsRTL(s string) bool {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			return true
		case bidi.L:
			return false
		}
	}
	return false
}

// VisualOrder returns s with its characters in display order, for drawing
// with a left-to-right glyph renderer. Right-to-left runs are reversed and,
// in a right-to-left line, runs are laid out from the right. Text without
// right-to-left characters is returned unchanged.
func VisualOrder(s string) string {
	var p bidi.Paragraph
	if _, err := p.SetString(s); err != nil {
		return s
	}
	o, err := p.Order()
	if err != nil || o.NumRuns() == 0 {
		return s
	}
	n := o.NumRuns()
	if n == 1 {
		if r := o.Run(0); r.Direction() != bidi.RightToLeft {
			return s
		}
	}

	runs := make([]string, n)
	for i := 0; i < n; i++ {
		r := o.Run(i)
		if r.Direction() == bidi.RightToLeft {
			runs[i] = bidi.ReverseString(r.String())
		} else {
			runs[i] = r.String()
		}
	}
	if IsRTL(s) {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}
	return strings.Join(runs, "")
}
