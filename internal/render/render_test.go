package render

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/viewer"
	"github.com/example/folioview/internal/viewport"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFillRectOpacity(t *testing.T) {
	dst := solid(4, 4, color.Black)
	FillRect(dst, image.Rect(0, 0, 2, 2), color.White, 0.5)

	got := dst.RGBAAt(0, 0)
	assert.InDelta(t, 128, int(got.R), 2)
	assert.Equal(t, color.RGBA{A: 255}, dst.RGBAAt(3, 3))

	FillRect(dst, image.Rect(2, 2, 4, 4), color.White, 0)
	assert.Equal(t, color.RGBA{A: 255}, dst.RGBAAt(3, 3))
}

func TestStrokeRect(t *testing.T) {
	dst := solid(10, 10, color.Black)
	red := color.RGBA{R: 255, A: 255}
	StrokeRect(dst, image.Rect(2, 2, 8, 8), red, 1)

	assert.Equal(t, red, dst.RGBAAt(2, 2))
	assert.Equal(t, red, dst.RGBAAt(7, 5))
	assert.Equal(t, color.RGBA{A: 255}, dst.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{A: 255}, dst.RGBAAt(8, 8))
}

func TestCheckerboard(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	light := color.RGBA{200, 200, 200, 255}
	dark := color.RGBA{100, 100, 100, 255}
	Checkerboard(dst, dst.Bounds(), 8, light, dark)
	assert.Equal(t, light, dst.RGBAAt(0, 0))
	assert.Equal(t, dark, dst.RGBAAt(8, 0))
	assert.Equal(t, light, dst.RGBAAt(15, 15))
}

func TestComposePage(t *testing.T) {
	page := solid(100, 200, color.Black)
	m := &manuscript.Manuscript{
		Metadata: manuscript.Metadata{ID: "ms", TotalImages: 1, StartFolio: "1a"},
		Lines: []manuscript.LineRecord{
			{ImageID: "1", Line: 1, StartX: 10, StartY: 10, EndX: 50, EndY: 30},
			{ImageID: "1", Line: 2, StartX: 10, StartY: 60, EndX: 50, EndY: 80},
		},
	}
	v, err := viewer.New(m)
	require.NoError(t, err)
	size := viewport.SizeOf(page.Bounds())
	v.SetNaturalSize(size)
	v.SetDisplaySize(size)
	v.SetHover(v.Lines()[0])
	overlays, ok := v.Overlays()
	require.True(t, ok)

	red := color.RGBA{R: 255, A: 255}
	out := ComposePage(page, overlays, ComposeOptions{Border: red, BorderWidth: 1})

	assert.Equal(t, page.Bounds(), out.Bounds())
	assert.Equal(t, red, out.RGBAAt(10, 10), "border")
	assert.Greater(t, out.RGBAAt(30, 20).R, uint8(50), "active fill")
	assert.Equal(t, uint8(0), out.RGBAAt(30, 70).R, "inactive regions are not filled")
	assert.Equal(t, color.RGBA{A: 255}, page.RGBAAt(10, 10), "source untouched")
}

func TestVisualOrder(t *testing.T) {
	assert.Equal(t, "plain text", VisualOrder("plain text"))
	assert.Equal(t, "םולש", VisualOrder("שלום"))
	assert.Equal(t, "12 םולש", VisualOrder("שלום 12"))
	assert.True(t, IsRTL("  بسم"))
	assert.False(t, IsRTL("12 abc שלום"))
}

func TestWrap(t *testing.T) {
	face, err := LoadFace("", 12)
	require.NoError(t, err)

	lines := Wrap(face, "one two three four five six seven", TextWidth(face, "one two three"))
	require.NotEmpty(t, lines)
	assert.Equal(t, "one two three", lines[0])
	for _, l := range lines {
		assert.LessOrEqual(t, TextWidth(face, l), TextWidth(face, "one two three"))
	}
	assert.Nil(t, Wrap(face, "   ", 100))
	assert.Equal(t, []string{"extraordinarily"}, Wrap(face, "extraordinarily", 5))
}

func TestLoadFaceMissingFile(t *testing.T) {
	_, err := LoadFace(filepath.Join(t.TempDir(), "nope.ttf"), 12)
	assert.Error(t, err)
}

func TestThumbnail(t *testing.T) {
	thumb := Thumbnail(solid(400, 200, color.White), 96)
	assert.Equal(t, image.Rect(0, 0, 96, 48), thumb.Bounds())
}

func TestGenerateThumbnails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ms", "1.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, imaging.Save(solid(300, 600, color.White), src))

	jobs := []ThumbnailJob{
		{Page: 1, Src: src, Dst: filepath.Join(dir, "ms", "thumbnails", "1.jpg")},
		{Page: 2, Src: filepath.Join(dir, "ms", "2.jpg"), Dst: filepath.Join(dir, "ms", "thumbnails", "2.jpg")},
	}
	var mu sync.Mutex
	results := map[int]error{}
	err := GenerateThumbnails(context.Background(), jobs, 64, 2, func(r ThumbnailResult) {
		mu.Lock()
		defer mu.Unlock()
		results[r.Job.Page] = r.Err
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NoError(t, results[1])
	assert.Error(t, results[2])

	thumb, err := imaging.Open(jobs[0].Dst)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 64), thumb.Bounds())
}

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := solid(10, 10, color.RGBA{R: 255, A: 255})
	opts := ShadowOptions{Sigma: 1, Offset: image.Pt(4, 4), Opacity: 0.5}

	out := ApplyShadow(img, opts)
	require.NotNil(t, out.Image)
	// 3 pixels of padding per side, shifted by the offset
	assert.Equal(t, image.Rect(0, 0, 17, 17), out.Image.Bounds())
	assert.Equal(t, image.Point{}, out.Offset)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.Image.NRGBAAt(5, 5))
	assert.NotZero(t, out.Image.NRGBAAt(12, 12).A, "shadow below and right of the content")
}

func TestApplyShadowNegativeOffset(t *testing.T) {
	img := solid(4, 4, color.White)
	out := ApplyShadow(img, ShadowOptions{Offset: image.Pt(-2, -2), Opacity: 1})
	assert.Equal(t, image.Pt(2, 2), out.Offset)
	assert.Equal(t, image.Rect(0, 0, 6, 6), out.Image.Bounds())
}

func TestApplyShadowNoShadowWhenOpacityZero(t *testing.T) {
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	img := solid(4, 4, fill)
	out := ApplyShadow(img, ShadowOptions{Sigma: 4, Offset: image.Pt(20, 10), Opacity: 0})
	assert.Equal(t, img.Bounds(), out.Image.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, out.Image.NRGBAAt(1, 1))
}

func TestExportPage(t *testing.T) {
	page := solid(40, 20, color.Black)
	m := &manuscript.Manuscript{
		Metadata: manuscript.Metadata{ID: "ms", TotalImages: 2, StartFolio: "3b"},
		Lines:    []manuscript.LineRecord{{ImageID: "1", Line: 1, StartX: 0, StartY: 0, EndX: 20, EndY: 10}},
	}
	v, err := viewer.New(m)
	require.NoError(t, err)
	assert.Equal(t, "ms_3b.png", ExportName(v))

	path := filepath.Join(t.TempDir(), "out", ExportName(v))
	assert.ErrorIs(t, ExportPage(v, page, path, ComposeOptions{}), ErrUnmeasured)

	v.SetNaturalSize(viewport.SizeOf(page.Bounds()))
	require.NoError(t, ExportPage(v, page, path, ComposeOptions{Border: color.White, BorderWidth: 1}))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r, "border painted")
}
