package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace returns a face of size points from the TrueType or OpenType file
// at path, or from the bundled Go Regular font when path is empty. Go
// Regular has no Hebrew or Arabic glyphs, so manuscripts in those scripts
// need a font file.
func LoadFace(path string, size float64) (font.Face, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// TextWidth returns the advance of s in pixels.
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// LineHeight returns the distance between baselines of face.
func LineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// DrawText draws s with its baseline starting at pt. Right-to-left text is
// reordered first.
func DrawText(dst draw.Image, face font.Face, pt image.Point, c color.Color, s string) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: fixed.P(pt.X, pt.Y)}
	d.DrawString(VisualOrder(s))
}

// DrawTextRight draws s so that it ends at pt.X.
func DrawTextRight(dst draw.Image, face font.Face, pt image.Point, c color.Color, s string) {
	DrawText(dst, face, image.Pt(pt.X-TextWidth(face, s), pt.Y), c, s)
}

// Wrap breaks s into lines no wider than width, splitting at spaces. A word
// wider than width gets a line of its own. Lines keep logical order.
func Wrap(face font.Face, s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		if TextWidth(face, next) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = next
	}
	return append(lines, cur)
}
