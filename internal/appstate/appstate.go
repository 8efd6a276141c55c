// Package appstate runs the desktop viewer window: a header, a thumbnail
// strip, the zoomable page with its line regions, the transcription panel
// and a control bar, all driven by a viewer.Viewer.
package appstate

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/exp/shiny/driver"

	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/notify"
	"github.com/example/folioview/internal/render"
	"github.com/example/folioview/internal/theme"
	"github.com/example/folioview/internal/viewer"
)

const (
	defaultWidth     = 1280
	defaultHeight    = 860
	defaultThumbSize = 96
	uiFontSize       = 13
	textFontSize     = 16
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// AppState holds the window configuration around a viewer.
type AppState struct {
	viewer    *viewer.Viewer
	assets    manuscript.Assets
	theme     *theme.Theme
	fontFile  string
	exportDir string
	thumbSize int
	notifier  *notify.Notifier
	log       zerolog.Logger

	onClose   func()
	closeOnce sync.Once
	err       error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithAssets sets where page images are read from. It should match the
// viewer's assets.
func WithAssets(a manuscript.Assets) Option { return func(s *AppState) { s.assets = a } }

func WithTheme(t *theme.Theme) Option { return func(s *AppState) { s.theme = t } }

// WithFontFile sets the font used for transcriptions. Empty selects the
// bundled font.
func WithFontFile(path string) Option { return func(s *AppState) { s.fontFile = path } }

func WithExportDir(dir string) Option { return func(s *AppState) { s.exportDir = dir } }

// WithThumbnailSize sets the edge of the thumbnail box; zero hides the
// strip.
func WithThumbnailSize(px int) Option { return func(s *AppState) { s.thumbSize = px } }

func WithNotifier(n *notify.Notifier) Option { return func(s *AppState) { s.notifier = n } }

func WithLogger(l zerolog.Logger) Option { return func(s *AppState) { s.log = l } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(s *AppState) { s.onClose = fn } }

// New creates the window state for v.
func New(v *viewer.Viewer, opts ...Option) *AppState {
	a := &AppState{
		viewer:    v,
		theme:     theme.Default(),
		exportDir: ".",
		thumbSize: defaultThumbSize,
		log:       zerolog.Nop(),
	}
	for _, o := range opts {
		o(a)
	}
	if a.thumbSize < 0 {
		a.thumbSize = 0
	}
	return a
}

// Run opens the window and blocks until it closes.
func (a *AppState) Run() error {
	driver.Main(a.Main)
	return a.err
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// composeOptions styles exported and copied pages like the screen.
func (a *AppState) composeOptions() render.ComposeOptions {
	opts := render.ComposeOptions{Active: a.theme.OverlayBorder}
	if a.viewer.LineBoxes() {
		opts.Border = a.theme.OverlayBorder
		opts.BorderWidth = 2
	}
	return opts
}
