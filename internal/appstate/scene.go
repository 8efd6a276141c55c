package appstate

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"golang.org/x/image/font"

	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/render"
	"github.com/example/folioview/internal/theme"
	"github.com/example/folioview/internal/viewer"
	"github.com/example/folioview/internal/viewport"
)

// paintState is an immutable snapshot of everything drawFrame needs, so the
// paint goroutine never touches the viewer.
type paintState struct {
	width, height int
	theme         *theme.Theme
	ui, text      font.Face
	layout        layout

	title, folio, zoom string

	page      image.Image
	pageRect  image.Rectangle
	pageNote  string
	overlays  []drawnOverlay
	showBoxes bool
	tooltip   *tooltipBox

	rows    []panelRow
	thumbs  []drawnThumb
	buttons []*CacheButton
	hover   int
	pressed int

	message      string
	messageUntil time.Time
}

type drawnOverlay struct {
	rect    image.Rectangle
	fill    color.RGBA
	opacity float64
	active  bool
}

type tooltipBox struct {
	lines []string
	// anchor is the top centre of the box.
	anchor image.Point
}

type drawnThumb struct {
	slot   thumbSlot
	label  string
	img    image.Image
	shadow render.ShadowResult
	active bool
}

// panelRow is one line of the transcription panel.
type panelRow struct {
	line        *manuscript.LineRecord
	rect        image.Rectangle
	number      string
	text        []string
	translation []string
	rtl         bool
	active      bool
}

// panelRows lays out the page's lines in area, offset upwards by scroll
// pixels. Every row is returned, including those scrolled out of view, so
// callers can hit test and scroll to a row.
func panelRows(face font.Face, v *viewer.Viewer, area image.Rectangle, scroll int) []panelRow {
	if area.Empty() {
		return nil
	}
	lh := render.LineHeight(face)
	numW := render.TextWidth(face, "000")
	textW := max(area.Dx()-numW-3*pad, 1)
	y := area.Min.Y + pad - scroll
	rows := make([]panelRow, 0, len(v.Lines()))
	for _, l := range v.Lines() {
		r := panelRow{
			line:        l,
			number:      fmt.Sprint(l.Line),
			text:        render.Wrap(face, l.Transcription, textW),
			translation: render.Wrap(face, l.Translation, textW),
			rtl:         render.IsRTL(l.Transcription),
			active:      v.IsHovered(l),
		}
		n := max(len(r.text)+len(r.translation), 1)
		r.rect = image.Rect(area.Min.X, y, area.Max.X, y+n*lh+pad)
		rows = append(rows, r)
		y = r.rect.Max.Y
	}
	return rows
}

// scrollToRow returns a scroll offset that brings the active row into area.
func scrollToRow(rows []panelRow, area image.Rectangle, scroll int) int {
	for _, r := range rows {
		if !r.active {
			continue
		}
		switch {
		case r.rect.Min.Y < area.Min.Y:
			scroll -= area.Min.Y - r.rect.Min.Y
		case r.rect.Max.Y > area.Max.Y:
			scroll += r.rect.Max.Y - area.Max.Y
		}
	}
	return max(scroll, 0)
}

func rowAt(rows []panelRow, p image.Point) *manuscript.LineRecord {
	for _, r := range rows {
		if p.In(r.rect) {
			return r.line
		}
	}
	return nil
}

// sceneInput is the window-side state that is not held by the viewer.
type sceneInput struct {
	width, height int
	theme         *theme.Theme
	ui, text      font.Face
	thumbSize     int
	thumbScroll   int
	panelScroll   int
	page          image.Image
	pageErr       error
	thumbs        map[int]thumbEntry
}

type thumbEntry struct {
	img    image.Image
	shadow render.ShadowResult
}

// geometry returns the layout and page placement for the current state.
func geometry(v *viewer.Viewer, in sceneInput) (layout, pageGeometry) {
	lay := computeLayout(in.width, in.height, v.VisiblePanels(), v.SmallScreen(), in.thumbSize)
	return lay, fitPage(lay.image, v.NaturalSize(), v.Transform())
}

// buildScene snapshots v for drawing. It also pushes the fitted display
// size into v, so overlays and hover hit tests use the size on screen.
func buildScene(v *viewer.Viewer, in sceneInput) paintState {
	lay, g := geometry(v, in)
	v.SetDisplaySize(g.display)

	st := paintState{
		width:     in.width,
		height:    in.height,
		theme:     in.theme,
		ui:        in.ui,
		text:      in.text,
		layout:    lay,
		title:     v.Title(),
		folio:     v.Header(),
		zoom:      fmt.Sprintf("%d%%", int(math.Round(v.ViewportState().Zoom*100))),
		showBoxes: v.LineBoxes(),
		hover:     -1,
		pressed:   -1,
	}

	if !lay.image.Empty() {
		switch {
		case in.pageErr != nil:
			st.pageNote = "Image unavailable"
		case in.page == nil || !v.NaturalSize().Valid():
			st.pageNote = "Loading " + v.FolioLabel() + "..."
		default:
			st.page = in.page
			st.pageRect = g.pageRect()
			overlays, _ := v.Overlays()
			for _, o := range overlays {
				st.overlays = append(st.overlays, drawnOverlay{
					rect:    g.rectToWindow(o.Rect),
					fill:    o.Fill,
					opacity: o.Opacity,
					active:  o.Active,
				})
			}
			if tip, ok := v.Tooltip(); ok {
				at := g.toWindow(viewport.Point{X: tip.CenterX, Y: tip.Top})
				maxW := max(min(lay.image.Dx()-2*pad, 480), 40)
				st.tooltip = &tooltipBox{
					lines:  render.Wrap(in.text, tip.Text, maxW-2*pad),
					anchor: image.Pt(int(at.X), int(at.Y)),
				}
			}
		}
	}

	st.rows = panelRows(in.text, v, lay.panel, in.panelScroll)

	for _, slot := range thumbSlots(lay.thumbs, v.PageCount(), in.thumbSize, in.thumbScroll) {
		dt := drawnThumb{slot: slot, label: v.LabelOf(slot.page), active: slot.page == v.Page()}
		if e, ok := in.thumbs[slot.page]; ok {
			dt.img = e.img
			dt.shadow = e.shadow
		}
		st.thumbs = append(st.thumbs, dt)
	}
	return st
}

// controlSpecs lists the control bar for the current toggles.
func controlSpecs(v *viewer.Viewer) []controlSpec {
	specs := []controlSpec{
		{label: "< Prev", action: actionPrev},
		{label: "Next >", action: actionNext},
		{label: "-", action: actionZoomOut},
		{label: "+", action: actionZoomIn},
		{label: "Reset", action: actionZoomReset},
		{label: "Boxes", action: actionBoxes, on: v.LineBoxes()},
		{label: "Hover text", action: actionHoverText, on: v.HoverText()},
	}
	if v.SmallScreen() {
		label := "Show text"
		if v.ActivePanel() == viewer.PanelTranscription {
			label = "Show image"
		}
		specs = append(specs, controlSpec{label: label, action: actionSwap})
	} else {
		specs = append(specs, controlSpec{label: "Transcription", action: actionPanel, on: v.TranscriptionPanel()})
	}
	return append(specs,
		controlSpec{label: "Copy", action: actionCopyLine},
		controlSpec{label: "Export", action: actionExport},
	)
}
