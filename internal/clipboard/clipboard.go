// Package clipboard publishes transcribed lines and rendered pages to the
// system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/example/folioview/internal/manuscript"
)

var (
	// ErrNoDisplay is returned on X11 platforms when no display is reachable.
	ErrNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
	// ErrUnsupported is returned on platforms without a clipboard backend.
	ErrUnsupported = errors.New("clipboard is not supported on this platform")
)

// LineText formats a line record for pasting elsewhere. The folio label and
// line number lead so the excerpt can be cited.
func LineText(label string, line *manuscript.LineRecord, withTranslation bool) string {
	if line == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s, line %d: %s", label, line.Line, line.Transcription)
	if withTranslation && strings.TrimSpace(line.Translation) != "" {
		b.WriteString("\n")
		b.WriteString(line.Translation)
	}
	return b.String()
}

// CopyLine places the formatted line on the clipboard and returns the text
// that was written.
func CopyLine(label string, line *manuscript.LineRecord, withTranslation bool) (string, error) {
	text := LineText(label, line, withTranslation)
	if text == "" {
		return "", errors.New("no line selected")
	}
	return text, WriteText(text)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode clipboard image: %w", err)
	}
	return buf.Bytes(), nil
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
