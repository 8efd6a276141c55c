package manuscript

import (
	"path/filepath"
	"strconv"
)

// ThumbnailDir is the directory, under a manuscript's image directory, that
// holds the reduced page images.
const ThumbnailDir = "thumbnails"

// Assets resolves page image locations below Root using the layout
// {id}/{page}.jpg and {id}/thumbnails/{page}.jpg, with 1-based pages.
type Assets struct {
	Root string
}

// ImagePath returns the full-resolution image of page.
func (a Assets) ImagePath(id string, page int) string {
	return filepath.Join(a.Root, id, strconv.Itoa(page)+".jpg")
}

// ThumbnailPath returns the thumbnail image of page.
func (a Assets) ThumbnailPath(id string, page int) string {
	return filepath.Join(a.Root, id, ThumbnailDir, strconv.Itoa(page)+".jpg")
}
