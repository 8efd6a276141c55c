package appstate

import (
	"image"

	"github.com/example/folioview/internal/viewer"
	"github.com/example/folioview/internal/viewport"
)

const (
	headerHeight   = 32
	controlsHeight = 36
	pad            = 8
	labelHeight    = 18
	// imageShare is the fraction of the body given to the image when the
	// transcription panel sits beside it.
	imageShare = 0.6
)

// layout is the window split into its regions. Absent regions are empty.
type layout struct {
	header   image.Rectangle
	controls image.Rectangle
	thumbs   image.Rectangle
	image    image.Rectangle
	panel    image.Rectangle
}

// computeLayout splits a width by height window. The thumbnail strip is
// only shown on large screens.
func computeLayout(width, height int, vis viewer.Layout, small bool, thumbSize int) layout {
	var l layout
	l.header = image.Rect(0, 0, width, headerHeight)
	l.controls = image.Rect(0, max(height-controlsHeight, headerHeight), width, height)
	body := image.Rect(0, l.header.Max.Y, width, l.controls.Min.Y)

	if !small && thumbSize > 0 {
		w := min(thumbSize+2*pad, body.Dx()/3)
		l.thumbs = image.Rect(body.Min.X, body.Min.Y, body.Min.X+w, body.Max.Y)
		body.Min.X = l.thumbs.Max.X
	}
	switch {
	case vis.Image && vis.Transcription:
		split := body.Min.X + int(float64(body.Dx())*imageShare)
		l.image = image.Rect(body.Min.X, body.Min.Y, split, body.Max.Y)
		l.panel = image.Rect(split, body.Min.Y, body.Max.X, body.Max.Y)
	case vis.Image:
		l.image = body
	case vis.Transcription:
		l.panel = body
	}
	return l
}

// pageGeometry places the fitted page inside the image region and maps
// between display space and window pixels. Zoom is about the page's
// top-left corner, matching viewport.Transform.
type pageGeometry struct {
	origin  viewport.Point
	display viewport.Size
	t       viewport.Transform
}

// fitPage centres a page of the natural size inside area, leaving a margin.
func fitPage(area image.Rectangle, natural viewport.Size, t viewport.Transform) pageGeometry {
	inner := area.Inset(pad)
	display := viewport.Fit(natural, viewport.SizeOf(inner))
	if !display.Valid() {
		display = viewport.Size{}
	}
	return pageGeometry{
		origin: viewport.Point{
			X: float64(inner.Min.X) + (float64(inner.Dx())-display.Width)/2,
			Y: float64(inner.Min.Y) + (float64(inner.Dy())-display.Height)/2,
		},
		display: display,
		t:       t,
	}
}

func (g pageGeometry) toWindow(p viewport.Point) viewport.Point {
	return g.origin.Add(g.t.Apply(p))
}

func (g pageGeometry) fromWindow(p viewport.Point) viewport.Point {
	return g.t.Invert(p.Sub(g.origin))
}

func (g pageGeometry) rectToWindow(r viewport.Rect) image.Rectangle {
	a := g.toWindow(viewport.Point{X: r.Left, Y: r.Top})
	b := g.toWindow(viewport.Point{X: r.Right(), Y: r.Bottom()})
	return viewport.Rect{Left: a.X, Top: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}.Image()
}

// pageRect is where the whole page is drawn.
func (g pageGeometry) pageRect() image.Rectangle {
	return g.rectToWindow(viewport.Rect{Width: g.display.Width, Height: g.display.Height})
}

// thumbSlot is one cell of the thumbnail strip.
type thumbSlot struct {
	page  int
	image image.Rectangle
	cell  image.Rectangle
}

// thumbSlots lays out count thumbnails top to bottom, skipping the first
// scroll cells.
func thumbSlots(strip image.Rectangle, count, size, scroll int) []thumbSlot {
	if strip.Empty() || size <= 0 {
		return nil
	}
	cellH := size + labelHeight + pad
	var out []thumbSlot
	y := strip.Min.Y + pad
	for page := scroll + 1; page <= count && y < strip.Max.Y; page++ {
		cell := image.Rect(strip.Min.X+pad/2, y-pad/2, strip.Max.X-pad/2, y+cellH-pad/2)
		img := image.Rect(strip.Min.X+pad, y, strip.Min.X+pad+size, y+size)
		out = append(out, thumbSlot{page: page, image: img, cell: cell})
		y += cellH
	}
	return out
}

// visibleThumbs is the number of whole cells that fit in the strip.
func visibleThumbs(strip image.Rectangle, size int) int {
	if size <= 0 {
		return 0
	}
	return max((strip.Dy()-pad)/(size+labelHeight+pad), 1)
}

// scrollToShow adjusts scroll so page is within the visible window.
func scrollToShow(scroll, page, visible, count int) int {
	switch {
	case page-1 < scroll:
		scroll = page - 1
	case page > scroll+visible:
		scroll = page - visible
	}
	return max(min(scroll, count-visible), 0)
}
