package clipboard

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/folioview/internal/manuscript"
)

func TestLineText(t *testing.T) {
	line := &manuscript.LineRecord{Line: 4, Transcription: "in principio", Translation: "in the beginning"}

	assert.Equal(t, "12b, line 4: in principio", LineText("12b", line, false))
	assert.Equal(t, "12b, line 4: in principio\nin the beginning", LineText("12b", line, true))
	assert.Equal(t, "", LineText("12b", nil, true))

	line.Translation = "  "
	assert.Equal(t, "12b, line 4: in principio", LineText("12b", line, true))
}

func TestEncodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})

	data, err := encodePNG(img)
	require.NoError(t, err)
	out, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), out.Bounds())
	r, _, _, _ := out.At(1, 1).RGBA()
	assert.Equal(t, uint32(200*0x101), r)
}
