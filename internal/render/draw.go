// Package render holds the image operations shared by the window, the
// exporter and the thumbnail generator. Nothing here touches a screen.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// FillRect blends c over r of dst at opacity in [0, 1].
func FillRect(dst draw.Image, r image.Rectangle, c color.Color, opacity float64) {
	if opacity <= 0 {
		return
	}
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	if opacity >= 1 {
		draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// StrokeRect outlines r with lines thick pixels wide, drawn inside r.
func StrokeRect(dst draw.Image, r image.Rectangle, c color.Color, thick int) {
	if thick <= 0 || r.Empty() {
		return
	}
	src := image.NewUniform(c)
	t := min(thick, r.Dx(), r.Dy())
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
	}
}

// DashedRect outlines r with dashes of length dash alternating between c1
// and c2, so the outline stays visible on light and dark pages.
func DashedRect(dst draw.Image, r image.Rectangle, dash, thick int, c1, c2 color.Color) {
	if dash <= 0 || r.Empty() {
		return
	}
	pick := func(i int) color.Color {
		if (i/dash)%2 == 0 {
			return c1
		}
		return c2
	}
	for i, x := 0, r.Min.X; x < r.Max.X; i, x = i+1, x+1 {
		for t := 0; t < thick; t++ {
			dst.Set(x, r.Min.Y+t, pick(i))
			dst.Set(x, r.Max.Y-1-t, pick(i))
		}
	}
	for i, y := 0, r.Min.Y; y < r.Max.Y; i, y = i+1, y+1 {
		for t := 0; t < thick; t++ {
			dst.Set(r.Min.X+t, y, pick(i))
			dst.Set(r.Max.X-1-t, y, pick(i))
		}
	}
}

// Checkerboard fills r of dst with squares of size alternating light and
// dark, the backdrop shown behind transparent or unloaded pages.
func Checkerboard(dst *image.RGBA, r image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	l, d := image.NewUniform(light), image.NewUniform(dark)
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y - (r.Min.Y % size); y < r.Max.Y; y += size {
		for x := r.Min.X - (r.Min.X % size); x < r.Max.X; x += size {
			src := l
			if ((x/size)+(y/size))%2 != 0 {
				src = d
			}
			cell := image.Rect(x, y, x+size, y+size).Intersect(r)
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}
