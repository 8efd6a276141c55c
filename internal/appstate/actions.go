package appstate

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"golang.org/x/mobile/event/key"

	"github.com/example/folioview/internal/clipboard"
	"github.com/example/folioview/internal/render"
	"github.com/example/folioview/internal/viewer"
)

const (
	actionPrev      = "prev"
	actionNext      = "next"
	actionFirst     = "first"
	actionLast      = "last"
	actionZoomIn    = "zoom-in"
	actionZoomOut   = "zoom-out"
	actionZoomReset = "zoom-reset"
	actionBoxes     = "boxes"
	actionHoverText = "hover-text"
	actionPanel     = "panel"
	actionSwap      = "swap"
	actionHoverNext = "hover-next"
	actionHoverPrev = "hover-prev"
	actionCopyLine  = "copy-line"
	actionCopyPage  = "copy-page"
	actionExport    = "export"
	actionQuit      = "quit"
)

// keymap binds shortcuts to actions.
var keymap = map[KeyShortcut]string{
	{Rune: '+'}:                            actionZoomIn,
	{Rune: '='}:                            actionZoomIn,
	{Rune: '-'}:                            actionZoomOut,
	{Rune: '0'}:                            actionZoomReset,
	{Rune: 'n'}:                            actionNext,
	{Rune: 'p'}:                            actionPrev,
	{Rune: -1, Code: key.CodeRightArrow}:   actionNext,
	{Rune: -1, Code: key.CodeLeftArrow}:    actionPrev,
	{Rune: -1, Code: key.CodePageDown}:     actionNext,
	{Rune: -1, Code: key.CodePageUp}:       actionPrev,
	{Rune: -1, Code: key.CodeHome}:         actionFirst,
	{Rune: -1, Code: key.CodeEnd}:          actionLast,
	{Rune: -1, Code: key.CodeDownArrow}:    actionHoverNext,
	{Rune: -1, Code: key.CodeUpArrow}:      actionHoverPrev,
	{Rune: 'j'}:                            actionHoverNext,
	{Rune: 'k'}:                            actionHoverPrev,
	{Rune: 'l'}:                            actionBoxes,
	{Rune: 'h'}:                            actionHoverText,
	{Rune: 't'}:                            actionPanel,
	{Rune: 'v'}:                            actionSwap,
	{Rune: 'c'}:                            actionCopyLine,
	{Rune: 'c', Modifiers: key.ModControl}: actionCopyPage,
	{Rune: 'e'}:                            actionExport,
	{Rune: 's', Modifiers: key.ModControl}: actionExport,
	{Rune: 'q'}:                            actionQuit,
	{Rune: -1, Code: key.CodeEscape}:       actionQuit,
}

// apply runs a viewer-only action and reports whether it was one. Actions
// with side effects outside the viewer are handled by the window.
func apply(v *viewer.Viewer, action string) bool {
	switch action {
	case actionPrev:
		v.PrevPage()
	case actionNext:
		v.NextPage()
	case actionFirst:
		v.FirstPage()
	case actionLast:
		v.LastPage()
	case actionZoomIn:
		v.ZoomIn()
	case actionZoomOut:
		v.ZoomOut()
	case actionZoomReset:
		v.ResetZoom()
	case actionBoxes:
		v.ToggleLineBoxes()
	case actionHoverText:
		v.ToggleHoverText()
	case actionPanel:
		v.ToggleTranscriptionPanel()
	case actionSwap:
		v.TogglePanel()
	case actionHoverNext:
		v.MoveHover(1)
	case actionHoverPrev:
		v.MoveHover(-1)
	default:
		return false
	}
	return true
}

var errNoPage = errors.New("page image is not loaded")

// copyLine puts the hovered line on the clipboard and returns what was
// copied, for the status message.
func copyLine(v *viewer.Viewer) (string, error) {
	line := v.Hovered()
	if line == nil {
		return "", errors.New("hover a line to copy it")
	}
	if _, err := clipboard.CopyLine(v.FolioLabel(), line, true); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, line %d", v.FolioLabel(), line.Line), nil
}

// composeCurrent paints the current page at full resolution.
func composeCurrent(v *viewer.Viewer, page image.Image, opts render.ComposeOptions) (*image.RGBA, error) {
	if page == nil {
		return nil, errNoPage
	}
	overlays, ok := v.OverlaysAt(v.NaturalSize())
	if !ok {
		return nil, errNoPage
	}
	return render.ComposePage(page, overlays, opts), nil
}

func copyPage(v *viewer.Viewer, page image.Image, opts render.ComposeOptions) (string, error) {
	img, err := composeCurrent(v, page, opts)
	if err != nil {
		return "", err
	}
	if err := clipboard.WriteImage(img); err != nil {
		return "", err
	}
	return "folio " + v.FolioLabel(), nil
}

// exportPage writes the current page under dir and returns the path.
func exportPage(v *viewer.Viewer, page image.Image, dir string, opts render.ComposeOptions) (string, error) {
	if page == nil {
		return "", errNoPage
	}
	path := filepath.Join(dir, render.ExportName(v))
	if err := render.ExportPage(v, page, path, opts); err != nil {
		return "", err
	}
	return path, nil
}
