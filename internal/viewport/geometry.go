// Package viewport maps line regions from natural image space into display
// space and tracks the zoom and pan applied to the page image.
package viewport

import (
	"image"
	"math"

	"github.com/example/folioview/internal/manuscript"
)

// Size is a width and height in pixels. A zero or negative dimension means
// the size is not known yet.
type Size struct {
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// SizeOf returns the dimensions of r.
func SizeOf(r image.Rectangle) Size {
	return Size{Width: float64(r.Dx()), Height: float64(r.Dy())}
}

// Point is a position or displacement in pixels.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale multiplies both coordinates by k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Pt converts an integer image point.
func Pt(p image.Point) Point { return Point{float64(p.X), float64(p.Y)} }

// Rect is an axis-aligned region in display space.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Image rounds r outward to an integer rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

// MapRect maps the region of line from natural image space into display
// space. Start and end may be recorded in either order. Callers must not
// render overlays until the natural size is known; an invalid natural size
// yields the zero Rect.
func MapRect(line manuscript.LineRecord, natural, display Size) Rect {
	if !natural.Valid() {
		return Rect{}
	}
	sx := display.Width / natural.Width
	sy := display.Height / natural.Height
	start := Point{line.StartX * sx, line.StartY * sy}
	end := Point{line.EndX * sx, line.EndY * sy}
	return Rect{
		Left:   math.Min(start.X, end.X),
		Top:    math.Min(start.Y, end.Y),
		Width:  math.Abs(end.X - start.X),
		Height: math.Abs(end.Y - start.Y),
	}
}

// Fit returns the largest size with the aspect ratio of natural that fits
// inside bounds. An invalid natural size is returned unchanged.
func Fit(natural, bounds Size) Size {
	if !natural.Valid() || !bounds.Valid() {
		return natural
	}
	k := math.Min(bounds.Width/natural.Width, bounds.Height/natural.Height)
	return Size{Width: natural.Width * k, Height: natural.Height * k}
}
