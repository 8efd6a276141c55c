package appstate

import (
	"context"
	"image"
	"runtime"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/example/folioview/internal/render"
	"github.com/example/folioview/internal/viewer"
)

// pageLoaded carries a decoded page image back to the event loop. gen
// identifies the request so late results for an earlier page are dropped.
type pageLoaded struct {
	gen  int
	page int
	img  image.Image
	err  error
}

type thumbLoaded struct {
	page  int
	entry thumbEntry
}

// loadPage decodes a page into NRGBA, which scales faster than the
// decoder's YCbCr output.
func loadPage(path string) (image.Image, error) {
	img, err := render.OpenPage(path)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// loadThumbnails reads each page's thumbnail, falling back to scaling the
// page image when no thumbnail was generated. Pages with neither are
// skipped and keep a placeholder.
func loadThumbnails(ctx context.Context, thumbs []viewer.Thumbnail, pagePath func(page int) string, size int, deliver func(thumbLoaded)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, t := range thumbs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := render.OpenPage(t.Path)
			if err != nil {
				if img, err = render.OpenPage(pagePath(t.Page)); err != nil {
					return nil
				}
			}
			small := render.Thumbnail(img, size)
			deliver(thumbLoaded{page: t.Page, entry: thumbEntry{
				img:    small,
				shadow: render.ApplyShadow(small, render.DefaultShadowOptions()),
			}})
			return nil
		})
	}
	return g.Wait()
}
