package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
data_dir = /srv/manuscripts
export_dir = "/tmp/exports"
small_screen_width = 900

[display]
line_boxes = false
thumbnail_size = 128

[notify]
copy = true
export = false

[theme.my_custom_theme]
Background = #111111
Foreground: #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.DataDir != "/srv/manuscripts" {
		t.Errorf("Expected data_dir '/srv/manuscripts', got '%s'", cfg.DataDir)
	}
	if cfg.Images() != "/srv/manuscripts" {
		t.Errorf("image dir should fall back to data_dir, got %q", cfg.Images())
	}
	if cfg.ExportDir != "/tmp/exports" {
		t.Errorf("quotes should be stripped, got %q", cfg.ExportDir)
	}
	if cfg.SmallScreenWidth != 900 {
		t.Errorf("Expected small_screen_width 900, got %d", cfg.SmallScreenWidth)
	}
	if cfg.Display.LineBoxes || !cfg.Display.HoverText || cfg.Display.ThumbnailSize != 128 {
		t.Errorf("unexpected display section: %+v", cfg.Display)
	}
	if !cfg.Notify.Copy || cfg.Notify.Export {
		t.Errorf("unexpected notify section: %+v", cfg.Notify)
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"small_screen_width = wide",
		"[display]\nhover_text = maybe",
		"[notify]\ncopy = 2",
		"[theme.x]\nBackground = blue",
	} {
		_, err := Parse(strings.NewReader(in))
		assert.Error(t, err, in)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
	assert.Equal(t, DefaultSmallScreenWidth, cfg.SmallScreenWidth)
	assert.True(t, cfg.Display.TranscriptionPanel)
}

func TestCircular(t *testing.T) {
	input := `theme = dark
data_dir = /home/user/mss
image_dir = /home/user/images
font_file = /usr/share/fonts/amiri.ttf

[display]
hover_text = false
thumbnail_size = 64

[notify]
copy = true
export = true

[theme.custom]
Name = custom
Background = #000000
TooltipBackground = #10203040
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	assert.Equal(t, cfg, cfg2)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := New()
	cfg.DataDir = dir
	cfg.ExportDir = filepath.Join(dir, "later")
	cfg.FontFile = file
	require.NoError(t, cfg.Validate())

	cfg.DataDir = file
	cfg.FontFile = dir
	cfg.SmallScreenWidth = 0
	cfg.Display.ThumbnailSize = 4

	err := cfg.Validate()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 4)
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folioview.rc")
	cfg := New()
	cfg.Theme = "parchment"
	require.NoError(t, Save(cfg, path))

	got, err := NewLoader("1.0.0", path).Load()
	require.NoError(t, err)
	assert.Equal(t, "parchment", got.Theme)

	_, err = NewLoader("1.0.0", filepath.Join(dir, "missing.rc")).Load()
	assert.Error(t, err, "an explicit path that does not exist is an error")
}
