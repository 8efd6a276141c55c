// Package viewer composes folio labels, page lines, viewport and hover
// state into the view of one manuscript. A Viewer is driven from a single
// event goroutine; it is not safe for concurrent use.
package viewer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/folioview/internal/folio"
	"github.com/example/folioview/internal/hover"
	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/viewport"
)

// DefaultSmallScreenWidth is the widest window that still shows only one
// panel at a time.
const DefaultSmallScreenWidth = 1024

// Viewer owns the page, viewport and hover state of an open manuscript.
type Viewer struct {
	ms     *manuscript.Manuscript
	assets manuscript.Assets
	labels []string

	page  int
	lines []*manuscript.LineRecord

	natural viewport.Size
	display viewport.Size

	vp    *viewport.Controller
	hover hover.Sync

	showLineBoxes     bool
	showHoverText     bool
	showTranscription bool

	smallScreenWidth int
	smallScreen      bool
	panel            Panel

	log zerolog.Logger
}

// Option configures a Viewer during creation.
type Option func(*Viewer)

// WithLogger sets the logger used for page and panel transitions.
func WithLogger(l zerolog.Logger) Option { return func(v *Viewer) { v.log = l } }

// WithAssets sets where page images and thumbnails are found.
func WithAssets(a manuscript.Assets) Option { return func(v *Viewer) { v.assets = a } }

func WithSmallScreenWidth(w int) Option { return func(v *Viewer) { v.smallScreenWidth = w } }

func WithLineBoxes(on bool) Option { return func(v *Viewer) { v.showLineBoxes = on } }

func WithHoverText(on bool) Option { return func(v *Viewer) { v.showHoverText = on } }

func WithTranscriptionPanel(on bool) Option {
	return func(v *Viewer) { v.showTranscription = on }
}

// WithPage sets the initial page. Out of range pages fall back to page 1.
func WithPage(page int) Option { return func(v *Viewer) { v.page = page } }

// New opens m at its first page. The folio label of every page is computed
// up front, so a malformed starting folio fails here with an error wrapping
// folio.ErrMalformedFolioLabel.
func New(m *manuscript.Manuscript, opts ...Option) (*Viewer, error) {
	if m == nil {
		return nil, fmt.Errorf("viewer: nil manuscript")
	}
	if m.Metadata.TotalImages < 1 {
		return nil, fmt.Errorf("viewer: manuscript %q has no images", m.Metadata.ID)
	}
	labels, err := folio.Range(m.Metadata.StartFolio, m.Metadata.TotalImages)
	if err != nil {
		return nil, fmt.Errorf("viewer: manuscript %q: %w", m.Metadata.ID, err)
	}
	v := &Viewer{
		ms:                m,
		labels:            labels,
		page:              1,
		vp:                viewport.NewController(),
		showLineBoxes:     true,
		showHoverText:     true,
		showTranscription: true,
		smallScreenWidth:  DefaultSmallScreenWidth,
		panel:             PanelImage,
		log:               zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.page < 1 || v.page > len(labels) {
		v.page = 1
	}
	v.lines = manuscript.LinesForPage(m.Lines, v.page)
	return v, nil
}

// Manuscript returns the open manuscript.
func (v *Viewer) Manuscript() *manuscript.Manuscript { return v.ms }

// Page returns the current 1-based page.
func (v *Viewer) Page() int { return v.page }

// PageCount returns the number of page images.
func (v *Viewer) PageCount() int { return len(v.labels) }

// Lines returns the current page's records ordered by line number.
func (v *Viewer) Lines() []*manuscript.LineRecord { return v.lines }

// SetPage moves to page. Pages outside [1, PageCount] are ignored. It
// reports whether the page changed.
//
// The new page's image has not been measured yet, so overlays are withheld
// until SetNaturalSize is called again. Hover survives only if the hovered
// record is on the new page. The viewport is left alone.
func (v *Viewer) SetPage(page int) bool {
	if page < 1 || page > len(v.labels) || page == v.page {
		return false
	}
	v.page = page
	v.lines = manuscript.LinesForPage(v.ms.Lines, page)
	v.natural = viewport.Size{}
	if !manuscript.Contains(v.lines, v.hover.Current()) {
		v.hover.Clear()
	}
	v.log.Debug().Int("page", page).Str("folio", v.labels[page-1]).Int("lines", len(v.lines)).Msg("page changed")
	return true
}

func (v *Viewer) NextPage() bool { return v.SetPage(v.page + 1) }

func (v *Viewer) PrevPage() bool { return v.SetPage(v.page - 1) }

func (v *Viewer) FirstPage() bool { return v.SetPage(1) }

func (v *Viewer) LastPage() bool { return v.SetPage(len(v.labels)) }

// FolioLabel returns the folio label of the current page.
func (v *Viewer) FolioLabel() string { return v.labels[v.page-1] }

// LabelOf returns the folio label of page, or "" when out of range.
func (v *Viewer) LabelOf(page int) string {
	if page < 1 || page > len(v.labels) {
		return ""
	}
	return v.labels[page-1]
}

// ImagePath returns the full-resolution image of the current page.
func (v *Viewer) ImagePath() string {
	return v.assets.ImagePath(v.ms.Metadata.ID, v.page)
}

// SetNaturalSize records the measured size of the current page image.
func (v *Viewer) SetNaturalSize(s viewport.Size) { v.natural = s }

// SetDisplaySize records the size the page image is drawn at before zoom.
func (v *Viewer) SetDisplaySize(s viewport.Size) { v.display = s }

func (v *Viewer) NaturalSize() viewport.Size { return v.natural }

func (v *Viewer) DisplaySize() viewport.Size { return v.display }

// Viewport state

func (v *Viewer) ZoomIn()    { v.vp.ZoomIn() }
func (v *Viewer) ZoomOut()   { v.vp.ZoomOut() }
func (v *Viewer) ResetZoom() { v.vp.ResetZoom() }

func (v *Viewer) PointerDown(p viewport.Point) { v.vp.BeginDrag(p) }
func (v *Viewer) PointerMove(p viewport.Point) { v.vp.UpdateDrag(p) }

// PointerUp ends a drag. Leaving the image panel ends it too.
func (v *Viewer) PointerUp() { v.vp.EndDrag() }

func (v *Viewer) TouchStart(id int64, p viewport.Point) { v.vp.TouchStart(id, p) }
func (v *Viewer) TouchMove(id int64, p viewport.Point)  { v.vp.TouchMove(id, p) }
func (v *Viewer) TouchEnd(id int64)                     { v.vp.TouchEnd(id) }

func (v *Viewer) Dragging() bool { return v.vp.Mode() == viewport.Dragging }

func (v *Viewer) ViewportState() viewport.State { return v.vp.State() }

func (v *Viewer) Transform() viewport.Transform { return v.vp.Transform() }

// Hover state

// SetHover makes line the hover target; nil clears it. Records that are not
// on the current page are refused.
func (v *Viewer) SetHover(line *manuscript.LineRecord) bool {
	if line != nil && !manuscript.Contains(v.lines, line) {
		return false
	}
	return v.hover.Set(line)
}

func (v *Viewer) Hovered() *manuscript.LineRecord { return v.hover.Current() }

// IsHovered reports whether line is the hover target.
func (v *Viewer) IsHovered(line *manuscript.LineRecord) bool { return v.hover.Is(line) }

// OnHoverChange registers fn to run after each hover change.
func (v *Viewer) OnHoverChange(fn hover.Listener) { v.hover.OnChange(fn) }

// HoverAt hovers the line whose overlay contains p, a point in unzoomed
// display space, or clears hover when there is none. Later lines win where
// regions overlap. It reports whether hover changed.
func (v *Viewer) HoverAt(p viewport.Point) bool {
	overlays, ok := v.Overlays()
	if !ok {
		return false
	}
	var hit *manuscript.LineRecord
	for _, o := range overlays {
		if o.Rect.Contains(p) {
			hit = o.Line
		}
	}
	return v.hover.Set(hit)
}

// MoveHover steps the hover target by delta lines, stopping at either end.
// With nothing hovered a forward step starts at the first line and a
// backward step at the last.
func (v *Viewer) MoveHover(delta int) bool {
	if len(v.lines) == 0 || delta == 0 {
		return false
	}
	idx := -1
	for i, l := range v.lines {
		if v.hover.Is(l) {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(v.lines) - 1
	default:
		idx = min(max(idx+delta, 0), len(v.lines)-1)
	}
	return v.hover.Set(v.lines[idx])
}

// Display toggles

func (v *Viewer) LineBoxes() bool          { return v.showLineBoxes }
func (v *Viewer) HoverText() bool          { return v.showHoverText }
func (v *Viewer) TranscriptionPanel() bool { return v.showTranscription }

func (v *Viewer) ToggleLineBoxes() { v.showLineBoxes = !v.showLineBoxes }
func (v *Viewer) ToggleHoverText() { v.showHoverText = !v.showHoverText }

func (v *Viewer) ToggleTranscriptionPanel() {
	v.showTranscription = !v.showTranscription
}
