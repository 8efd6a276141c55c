// Package folio derives codicological folio labels ("12a", "12b", "13a", ...)
// from a manuscript's starting folio and a zero-based page image index.
//
// Two consecutive page images are the two sides of one physical leaf: the
// recto ('a') followed by the verso ('b').
package folio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Side is one face of a folio.
type Side byte

const (
	// Recto is the front of a leaf, written 'a'.
	Recto Side = 'a'
	// Verso is the back of a leaf, written 'b'.
	Verso Side = 'b'
)

func (s Side) String() string { return string(rune(s)) }

// ErrMalformedFolioLabel is returned (wrapped in a *ParseError) when a
// starting folio label cannot be parsed. Callers must surface it rather than
// fall back to a guessed folio number.
var ErrMalformedFolioLabel = errors.New("malformed folio label")

// ParseError describes why a folio label was rejected.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformedFolioLabel, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformedFolioLabel }

// Label is a parsed folio label: a leaf number and the side of that leaf.
type Label struct {
	Number int
	Side   Side
}

func (l Label) String() string {
	return strconv.Itoa(l.Number) + l.Side.String()
}

// Parse reads a label of the form <digits><side>, where side is 'a' or 'b'
// (case-insensitive). Surrounding whitespace is ignored.
func Parse(s string) (Label, error) {
	in := strings.TrimSpace(s)
	n := 0
	for n < len(in) && in[n] >= '0' && in[n] <= '9' {
		n++
	}
	if n == 0 {
		return Label{}, &ParseError{Input: s, Reason: "no leading folio number"}
	}
	num, err := strconv.Atoi(in[:n])
	if err != nil {
		return Label{}, &ParseError{Input: s, Reason: "folio number out of range"}
	}
	rest := in[n:]
	switch {
	case rest == "":
		return Label{}, &ParseError{Input: s, Reason: "missing side letter"}
	case len(rest) > 1:
		return Label{}, &ParseError{Input: s, Reason: fmt.Sprintf("unexpected trailing %q", rest)}
	}
	switch rest[0] {
	case 'a', 'A':
		return Label{Number: num, Side: Recto}, nil
	case 'b', 'B':
		return Label{Number: num, Side: Verso}, nil
	}
	return Label{}, &ParseError{Input: s, Reason: fmt.Sprintf("side %q is not a or b", rest)}
}

// Advance returns the label of the image index images after l. Starting on
// a verso shifts the alternation by one so that the next image is the recto
// of the following leaf.
func (l Label) Advance(index int) Label {
	adj := index
	if l.Side == Verso {
		adj++
	}
	side := Recto
	if adj%2 != 0 {
		side = Verso
	}
	return Label{Number: l.Number + adj/2, Side: side}
}

// ForImage returns the label of the image at imageIndex (zero-based) in a
// manuscript whose first image is startFolio.
func ForImage(startFolio string, imageIndex int) (string, error) {
	if imageIndex < 0 {
		return "", fmt.Errorf("folio for image %d: index must not be negative", imageIndex)
	}
	start, err := Parse(startFolio)
	if err != nil {
		return "", err
	}
	return start.Advance(imageIndex).String(), nil
}

// Range returns the labels of count consecutive images starting at
// startFolio.
func Range(startFolio string, count int) ([]string, error) {
	start, err := Parse(startFolio)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, start.Advance(i).String())
	}
	return out, nil
}
