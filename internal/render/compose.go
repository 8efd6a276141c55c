package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/folioview/internal/viewer"
)

// ComposeOptions controls how line regions are painted onto a page.
type ComposeOptions struct {
	// Border outlines every region when BorderWidth is positive.
	Border      color.Color
	BorderWidth int
	// Active outlines the hovered region with a dashed border.
	Active color.Color
}

// ComposePage copies page and paints overlays onto it. The overlays must
// be mapped into the page's own pixel space, that is with equal natural and
// display sizes. Fill follows each overlay's opacity.
func ComposePage(page image.Image, overlays []viewer.Overlay, opts ComposeOptions) *image.RGBA {
	b := page.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), page, b.Min, draw.Src)

	for _, o := range overlays {
		r := o.Rect.Image()
		FillRect(dst, r, o.Fill, o.Opacity)
		if opts.BorderWidth > 0 && opts.Border != nil {
			StrokeRect(dst, r, opts.Border, opts.BorderWidth)
		}
		if o.Active && opts.Active != nil {
			DashedRect(dst, r, 6, max(opts.BorderWidth, 1), opts.Active, color.White)
		}
	}
	return dst
}
