package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/example/folioview/internal/logging"
	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/render"
)

// ThumbsCmd pre-generates the thumbnail strip images.
type ThumbsCmd struct {
	env *Env

	size    int
	workers int
	force   bool
}

// NewThumbsCmd creates the thumbs command.
func NewThumbsCmd(env *Env) *ThumbsCmd {
	return &ThumbsCmd{env: env}
}

// Register adds the thumbs command to the application.
func (cmd *ThumbsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "thumbs",
		Usage:     "Generate thumbnails for a manuscript's pages",
		UsageText: "folioview thumbs [--size <px>] [--workers <n>] [--force] <manuscript-id>",
		Description: `Writes <image-dir>/<manuscript-id>/thumbnails/<page>.jpg for every page
image. Existing thumbnails are kept unless --force is given. The viewer
falls back to scaling full pages when a thumbnail is missing, so this is
only needed to make the strip load faster.

Examples:
  folioview thumbs ms-17
  folioview thumbs --size 160 --workers 4 --force ms-17`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "size",
				Aliases:     []string{"s"},
				Usage:       "longest side in pixels (defaults to display.thumbnail_size)",
				Destination: &cmd.size,
			},
			&cli.IntFlag{
				Name:        "workers",
				Aliases:     []string{"w"},
				Usage:       "concurrent encoders",
				Value:       runtime.NumCPU(),
				Destination: &cmd.workers,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing thumbnails",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ThumbsCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := manuscriptArg(c)
	if err != nil {
		return err
	}
	ctx = logging.WithManuscriptID(ctx, id)

	catalog, err := manuscript.LoadCatalog(cmd.env.cfg.DataDir)
	if err != nil {
		return err
	}
	meta, err := manuscript.Find(catalog, id)
	if err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("manuscript %q: %w", id, err)
	}

	size := cmd.size
	if size <= 0 {
		size = cmd.env.cfg.Display.ThumbnailSize
	}
	jobs := thumbnailJobs(cmd.env.assets(), meta, cmd.force)
	if len(jobs) == 0 {
		fmt.Fprintln(c.Root().Writer, "thumbnails up to date")
		return nil
	}

	var (
		mu      sync.Mutex
		done    int
		missing int
	)
	err = render.GenerateThumbnails(ctx, jobs, size, cmd.workers, func(r render.ThumbnailResult) {
		mu.Lock()
		defer mu.Unlock()
		if r.Err != nil {
			missing++
			log.Warn().Ctx(ctx).Err(r.Err).Int("page", r.Job.Page).Msg("no page image")
			return
		}
		done++
		log.Debug().Ctx(ctx).Int("page", r.Job.Page).Str("path", r.Job.Dst).Msg("thumbnail written")
	})
	if err != nil {
		return fmt.Errorf("generate thumbnails: %w", err)
	}
	fmt.Fprintf(c.Root().Writer, "%d thumbnails written, %d pages missing\n", done, missing)
	return nil
}

// thumbnailJobs lists the pages of meta that need a thumbnail. Without
// force, pages that already have one are left out.
func thumbnailJobs(assets manuscript.Assets, meta manuscript.Metadata, force bool) []render.ThumbnailJob {
	jobs := make([]render.ThumbnailJob, 0, meta.TotalImages)
	for page := 1; page <= meta.TotalImages; page++ {
		dst := assets.ThumbnailPath(meta.ID, page)
		if !force {
			if _, err := os.Stat(dst); err == nil {
				continue
			}
		}
		jobs = append(jobs, render.ThumbnailJob{
			Page: page,
			Src:  assets.ImagePath(meta.ID, page),
			Dst:  dst,
		})
	}
	return jobs
}
