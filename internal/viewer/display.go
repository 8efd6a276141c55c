package viewer

import (
	"image/color"

	"github.com/example/folioview/internal/hover"
	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/viewport"
)

// ActiveOpacity is the fill opacity of the hovered overlay.
const ActiveOpacity = 0.3

var (
	overlayFill   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	overlayFillBW = color.RGBA{R: 247, G: 255, B: 178, A: 255}
)

// Overlay is the display-space region of one line on the current page.
type Overlay struct {
	Line    *manuscript.LineRecord
	Rect    viewport.Rect
	Active  bool
	Opacity float64
	Fill    color.RGBA
}

// Overlays maps every line of the current page into display space. ok is
// false while the page image has not been measured, in which case nothing
// should be drawn. Hidden line boxes still produce overlays, at zero
// opacity, so hovering keeps working.
func (v *Viewer) Overlays() (out []Overlay, ok bool) {
	return v.OverlaysAt(v.display)
}

// OverlaysAt is Overlays for an arbitrary display size. Passing the natural
// size yields regions in the page image's own pixels, as the exporter needs.
func (v *Viewer) OverlaysAt(display viewport.Size) (out []Overlay, ok bool) {
	if !v.natural.Valid() {
		return nil, false
	}
	fill := overlayFill
	if v.ms.Metadata.BW {
		fill = overlayFillBW
	}
	out = make([]Overlay, 0, len(v.lines))
	for _, l := range v.lines {
		active := v.hover.Is(l)
		o := Overlay{
			Line:   l,
			Rect:   viewport.MapRect(*l, v.natural, display),
			Active: active,
			Fill:   fill,
		}
		if active && v.showLineBoxes {
			o.Opacity = ActiveOpacity
		}
		out = append(out, o)
	}
	return out, true
}

// Tooltip is the floating transcription shown under the hovered line.
type Tooltip struct {
	Text    string
	Top     float64
	CenterX float64
}

// Tooltip returns the tooltip for the hovered line. There is none when
// hover text is off, nothing is hovered, the hovered line has no
// transcription, or the image is unmeasured.
func (v *Viewer) Tooltip() (Tooltip, bool) {
	line := v.hover.Current()
	if !v.showHoverText || line == nil || line.Transcription == "" {
		return Tooltip{}, false
	}
	top, ok := hover.TooltipTop(*line, v.natural, v.display)
	if !ok {
		return Tooltip{}, false
	}
	r := viewport.MapRect(*line, v.natural, v.display)
	return Tooltip{Text: line.Transcription, Top: top, CenterX: r.Left + r.Width/2}, true
}

// Header returns the folio heading of the current page.
func (v *Viewer) Header() string {
	h := "Folio " + v.FolioLabel()
	if c := v.ms.Metadata.Copyright; c != "" {
		h += " (© " + c + ")"
	}
	return h
}

// Title returns the manuscript title, falling back to its id.
func (v *Viewer) Title() string {
	if t := v.ms.Metadata.Title; t != "" {
		return t
	}
	return v.ms.Metadata.ID
}

// Thumbnail is one entry of the page strip.
type Thumbnail struct {
	Page   int
	Label  string
	Path   string
	Active bool
}

// Thumbnails lists every page with its folio label.
func (v *Viewer) Thumbnails() []Thumbnail {
	out := make([]Thumbnail, len(v.labels))
	for i, label := range v.labels {
		page := i + 1
		out[i] = Thumbnail{
			Page:   page,
			Label:  label,
			Path:   v.assets.ThumbnailPath(v.ms.Metadata.ID, page),
			Active: page == v.page,
		}
	}
	return out
}
