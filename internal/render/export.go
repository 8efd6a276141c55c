package render

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/example/folioview/internal/viewer"
	"github.com/example/folioview/internal/viewport"
)

// ErrUnmeasured is returned when a page is exported before its natural size
// is known to the viewer.
var ErrUnmeasured = errors.New("page image has not been measured")

// ExportName is the file name of the current page of v in an export
// directory.
func ExportName(v *viewer.Viewer) string {
	return fmt.Sprintf("%s_%s.png", v.Manuscript().Metadata.ID, v.FolioLabel())
}

// ExportPage paints the current page's line regions onto page at full
// resolution and writes the result to path. The encoding follows the file
// extension.
func ExportPage(v *viewer.Viewer, page image.Image, path string, opts ComposeOptions) error {
	overlays, ok := v.OverlaysAt(viewport.SizeOf(page.Bounds()))
	if !ok {
		return ErrUnmeasured
	}
	out := ComposePage(page, overlays, opts)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
