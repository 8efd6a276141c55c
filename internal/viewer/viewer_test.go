package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/folioview/internal/folio"
	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/viewport"
)

func testManuscript() *manuscript.Manuscript {
	return &manuscript.Manuscript{
		Metadata: manuscript.Metadata{
			ID:          "ms1",
			Title:       "Psalter",
			TotalImages: 3,
			StartFolio:  "12a",
			Copyright:   "British Library",
		},
		Lines: []manuscript.LineRecord{
			{ImageID: "1", Line: 2, StartX: 100, StartY: 300, EndX: 900, EndY: 400, Transcription: "second"},
			{ImageID: "2", Line: 1, StartX: 0, StartY: 0, EndX: 10, EndY: 10, Transcription: "other"},
			{ImageID: "1", Line: 1, StartX: 100, StartY: 200, EndX: 300, EndY: 400, Transcription: "first"},
			{ImageID: "3", Line: 1, StartX: 0, StartY: 0, EndX: 10, EndY: 10},
		},
	}
}

func newViewer(t *testing.T, opts ...Option) *Viewer {
	t.Helper()
	v, err := New(testManuscript(), opts...)
	require.NoError(t, err)
	return v
}

func TestNewMalformedFolio(t *testing.T) {
	m := testManuscript()
	m.Metadata.StartFolio = "folio"
	_, err := New(m)
	assert.ErrorIs(t, err, folio.ErrMalformedFolioLabel)
}

func TestNewRejectsEmpty(t *testing.T) {
	m := testManuscript()
	m.Metadata.TotalImages = 0
	_, err := New(m)
	assert.Error(t, err)

	_, err = New(nil)
	assert.Error(t, err)
}

func TestNavigation(t *testing.T) {
	v := newViewer(t)
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, "12a", v.FolioLabel())
	assert.Equal(t, "Folio 12a (© British Library)", v.Header())

	require.Len(t, v.Lines(), 2)
	assert.Equal(t, "first", v.Lines()[0].Transcription)

	assert.False(t, v.PrevPage())
	assert.True(t, v.NextPage())
	assert.Equal(t, "12b", v.FolioLabel())
	assert.True(t, v.LastPage())
	assert.Equal(t, "13a", v.FolioLabel())
	assert.False(t, v.NextPage())
	assert.False(t, v.SetPage(0))
	assert.Equal(t, 3, v.Page())
	assert.Equal(t, "", v.LabelOf(4))
}

func TestHeaderWithoutCopyright(t *testing.T) {
	m := testManuscript()
	m.Metadata.Copyright = ""
	v, err := New(m)
	require.NoError(t, err)
	assert.Equal(t, "Folio 12a", v.Header())
}

func TestPageChangeClearsForeignHover(t *testing.T) {
	v := newViewer(t)
	require.True(t, v.SetHover(v.Lines()[0]))

	v.NextPage()
	assert.Nil(t, v.Hovered())
}

func TestSetHoverRefusesOtherPages(t *testing.T) {
	v := newViewer(t)
	m := v.Manuscript()
	assert.False(t, v.SetHover(&m.Lines[1]))
	// a copy with equal fields is a different record
	clone := *v.Lines()[0]
	assert.False(t, v.SetHover(&clone))
	assert.Nil(t, v.Hovered())
}

func TestPageChangeKeepsViewport(t *testing.T) {
	v := newViewer(t)
	v.ZoomIn()
	v.PointerDown(viewport.Point{X: 10, Y: 10})
	v.PointerMove(viewport.Point{X: 30, Y: 10})
	v.PointerUp()
	before := v.ViewportState()

	v.NextPage()
	assert.Equal(t, before, v.ViewportState())
}

func TestOverlaysNeedNaturalSize(t *testing.T) {
	v := newViewer(t)
	v.SetDisplaySize(viewport.Size{Width: 500, Height: 1000})
	_, ok := v.Overlays()
	assert.False(t, ok)

	v.SetNaturalSize(viewport.Size{Width: 1000, Height: 2000})
	got, ok := v.Overlays()
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, viewport.Rect{Left: 50, Top: 100, Width: 100, Height: 100}, got[0].Rect)
	assert.Equal(t, 0.0, got[0].Opacity)
	assert.Equal(t, overlayFill, got[0].Fill)

	// the next page's image is not measured yet
	v.NextPage()
	_, ok = v.Overlays()
	assert.False(t, ok)
}

func TestOverlaysRecomputeOnResize(t *testing.T) {
	v := newViewer(t)
	v.SetNaturalSize(viewport.Size{Width: 1000, Height: 2000})
	v.SetDisplaySize(viewport.Size{Width: 500, Height: 1000})
	v.ZoomIn()
	state := v.ViewportState()

	v.SetDisplaySize(viewport.Size{Width: 1000, Height: 2000})
	got, ok := v.Overlays()
	require.True(t, ok)
	assert.Equal(t, viewport.Rect{Left: 100, Top: 200, Width: 200, Height: 200}, got[0].Rect)
	assert.Equal(t, state, v.ViewportState())
}

func TestOverlayHighlight(t *testing.T) {
	v := newViewer(t)
	v.SetNaturalSize(viewport.Size{Width: 1000, Height: 2000})
	v.SetDisplaySize(viewport.Size{Width: 500, Height: 1000})
	v.SetHover(v.Lines()[1])

	got, _ := v.Overlays()
	assert.False(t, got[0].Active)
	assert.True(t, got[1].Active)
	assert.Equal(t, ActiveOpacity, got[1].Opacity)

	v.ToggleLineBoxes()
	got, _ = v.Overlays()
	assert.True(t, got[1].Active)
	assert.Equal(t, 0.0, got[1].Opacity)
}

func TestOverlayFillBW(t *testing.T) {
	m := testManuscript()
	m.Metadata.BW = true
	v, err := New(m)
	require.NoError(t, err)
	v.SetNaturalSize(viewport.Size{Width: 10, Height: 10})
	v.SetDisplaySize(viewport.Size{Width: 10, Height: 10})
	got, _ := v.Overlays()
	assert.Equal(t, overlayFillBW, got[0].Fill)
}

func TestHoverAt(t *testing.T) {
	v := newViewer(t)
	assert.False(t, v.HoverAt(viewport.Point{X: 60, Y: 150}))

	v.SetNaturalSize(viewport.Size{Width: 1000, Height: 2000})
	v.SetDisplaySize(viewport.Size{Width: 500, Height: 1000})

	assert.True(t, v.HoverAt(viewport.Point{X: 60, Y: 110}))
	assert.Same(t, v.Lines()[0], v.Hovered())

	// overlapping regions resolve to the later line
	assert.True(t, v.HoverAt(viewport.Point{X: 60, Y: 160}))
	assert.Same(t, v.Lines()[1], v.Hovered())

	assert.True(t, v.HoverAt(viewport.Point{X: 1, Y: 1}))
	assert.Nil(t, v.Hovered())
}

func TestMoveHover(t *testing.T) {
	v := newViewer(t)
	assert.True(t, v.MoveHover(1))
	assert.Same(t, v.Lines()[0], v.Hovered())
	assert.True(t, v.MoveHover(1))
	assert.Same(t, v.Lines()[1], v.Hovered())
	assert.False(t, v.MoveHover(1))

	v.SetHover(nil)
	assert.True(t, v.MoveHover(-1))
	assert.Same(t, v.Lines()[1], v.Hovered())
}

func TestTooltip(t *testing.T) {
	v := newViewer(t)
	v.SetDisplaySize(viewport.Size{Width: 500, Height: 1000})
	v.SetHover(v.Lines()[0])

	_, ok := v.Tooltip()
	assert.False(t, ok, "no tooltip before the image is measured")

	v.SetNaturalSize(viewport.Size{Width: 1000, Height: 2000})
	tip, ok := v.Tooltip()
	require.True(t, ok)
	assert.Equal(t, Tooltip{Text: "first", Top: 210, CenterX: 100}, tip)

	v.ToggleHoverText()
	_, ok = v.Tooltip()
	assert.False(t, ok)
	v.ToggleHoverText()

	// lines without a transcription get no tooltip
	v.LastPage()
	v.SetNaturalSize(viewport.Size{Width: 10, Height: 10})
	v.SetHover(v.Lines()[0])
	_, ok = v.Tooltip()
	assert.False(t, ok)
}

func TestThumbnails(t *testing.T) {
	v := newViewer(t, WithAssets(manuscript.Assets{Root: "/img"}), WithPage(2))
	got := v.Thumbnails()
	require.Len(t, got, 3)
	assert.Equal(t, Thumbnail{Page: 2, Label: "12b", Path: "/img/ms1/thumbnails/2.jpg", Active: true}, got[1])
	assert.False(t, got[0].Active)
	assert.Equal(t, "/img/ms1/2.jpg", v.ImagePath())
}

func TestResizeGuard(t *testing.T) {
	v := newViewer(t, WithSmallScreenWidth(800))
	assert.False(t, v.TogglePanel(), "toggling needs a small screen")

	v.Resize(600)
	require.True(t, v.SmallScreen())
	assert.Equal(t, PanelImage, v.ActivePanel())

	v.TogglePanel()
	assert.Equal(t, PanelTranscription, v.ActivePanel())

	// repeated small reports keep the chosen panel
	v.Resize(590)
	v.Resize(610)
	assert.Equal(t, PanelTranscription, v.ActivePanel())

	// growing keeps it too
	v.Resize(1200)
	assert.Equal(t, PanelTranscription, v.ActivePanel())

	// shrinking again forces the image panel
	v.Resize(700)
	assert.Equal(t, PanelImage, v.ActivePanel())
}

func TestSmallScreenBoundary(t *testing.T) {
	v := newViewer(t)
	v.Resize(DefaultSmallScreenWidth)
	assert.True(t, v.SmallScreen(), "a window at the threshold is small")
	v.Resize(DefaultSmallScreenWidth + 1)
	assert.False(t, v.SmallScreen())
}

func TestVisiblePanels(t *testing.T) {
	v := newViewer(t)
	assert.Equal(t, Layout{Image: true, Transcription: true}, v.VisiblePanels())

	v.ToggleTranscriptionPanel()
	assert.Equal(t, Layout{Image: true, FullWidth: true}, v.VisiblePanels())

	v.SetSmallScreen(true)
	assert.Equal(t, Layout{Image: true, FullWidth: true}, v.VisiblePanels())
	v.TogglePanel()
	assert.Equal(t, Layout{Transcription: true}, v.VisiblePanels())
}

func TestHoverListener(t *testing.T) {
	v := newViewer(t)
	var calls int
	v.OnHoverChange(func(*manuscript.LineRecord) { calls++ })
	v.SetHover(v.Lines()[0])
	v.NextPage()
	assert.Equal(t, 2, calls)
}

func TestOverlaysAtNaturalSize(t *testing.T) {
	v := newViewer(t)
	v.SetNaturalSize(viewport.Size{Width: 1000, Height: 2000})
	v.SetDisplaySize(viewport.Size{Width: 500, Height: 1000})

	got, ok := v.OverlaysAt(v.NaturalSize())
	require.True(t, ok)
	shown, _ := v.Overlays()
	require.Len(t, got, len(shown))
	assert.Equal(t, shown[0].Rect.Width*2, got[0].Rect.Width)
	assert.Equal(t, shown[0].Rect.Left*2, got[0].Rect.Left)
}
