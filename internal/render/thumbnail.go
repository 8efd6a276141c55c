package render

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// OpenPage decodes a page image, honouring the EXIF orientation of
// photographs.
func OpenPage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open page %s: %w", path, err)
	}
	return img, nil
}

// Thumbnail scales img to fit within a size by size box, keeping its aspect
// ratio.
func Thumbnail(img image.Image, size int) *image.NRGBA {
	return imaging.Fit(img, size, size, imaging.Lanczos)
}

// ThumbnailJob is one thumbnail to produce.
type ThumbnailJob struct {
	Page int
	Src  string
	Dst  string
}

// ThumbnailResult reports one finished job.
type ThumbnailResult struct {
	Job ThumbnailJob
	Err error
}

// GenerateThumbnails writes a thumbnail of every job using up to workers
// goroutines. Missing sources are reported through done and do not stop
// the run; done is called from the worker goroutines and may be nil. The
// first write failure cancels the remaining jobs and is returned.
func GenerateThumbnails(ctx context.Context, jobs []ThumbnailJob, size, workers int, done func(ThumbnailResult)) error {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := OpenPage(job.Src)
			if err != nil {
				if done != nil {
					done(ThumbnailResult{Job: job, Err: err})
				}
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(job.Dst), 0o755); err != nil {
				return fmt.Errorf("create thumbnail dir: %w", err)
			}
			if err := imaging.Save(Thumbnail(src, size), job.Dst, imaging.JPEGQuality(85)); err != nil {
				return fmt.Errorf("save thumbnail %s: %w", job.Dst, err)
			}
			if done != nil {
				done(ThumbnailResult{Job: job})
			}
			return nil
		})
	}
	return g.Wait()
}
