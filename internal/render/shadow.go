package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow effect applied to an image.
type ShadowOptions struct {
	Sigma   float64
	Offset  image.Point
	Opacity float64
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image is the composited image that includes the blurred shadow.
	Image *image.NRGBA
	// Offset is where the original image's top-left corner ended up inside
	// the expanded canvas.
	Offset image.Point
}

// DefaultShadowOptions returns the shadow used to lift the active
// thumbnail off the strip.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Sigma:   3,
		Offset:  image.Pt(3, 3),
		Opacity: 0.6,
	}
}

// ApplyShadow composites img over a blurred copy of its alpha. The canvas
// grows to hold the shadow and always starts at the origin.
func ApplyShadow(img image.Image, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: imaging.Clone(img)}
	}
	opacity := min(opts.Opacity, 1)
	pad := 0
	if opts.Sigma > 0 {
		pad = int(opts.Sigma*3 + 0.5)
	}

	src := imaging.Clone(img)
	size := src.Bounds().Size()
	padded := image.Rect(0, 0, size.X, size.Y).Inset(-pad)
	shadowBounds := padded.Add(opts.Offset)
	content := image.Rect(0, 0, size.X, size.Y)
	canvas := content.Union(shadowBounds)
	shift := content.Min.Sub(canvas.Min)

	// Silhouette in black, alpha taken from the source.
	mask := image.NewNRGBA(image.Rect(0, 0, padded.Dx(), padded.Dy()))
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			a := src.NRGBAAt(x, y).A
			if a != 0 {
				mask.SetNRGBA(x+pad, y+pad, color.NRGBA{A: a})
			}
		}
	}
	blurred := mask
	if opts.Sigma > 0 {
		blurred = imaging.Blur(mask, opts.Sigma)
	}

	dst := imaging.New(canvas.Dx(), canvas.Dy(), color.NRGBA{})
	dst = imaging.Overlay(dst, blurred, shadowBounds.Min.Sub(canvas.Min), opacity)
	dst = imaging.Overlay(dst, src, shift, 1)
	return ShadowResult{Image: dst, Offset: shift}
}
