package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/example/folioview/internal/logging"
	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/render"
	"github.com/example/folioview/internal/viewer"
	"github.com/example/folioview/internal/viewport"
)

// ExportCmd writes pages with their line regions painted on.
type ExportCmd struct {
	env *Env

	page    int
	all     bool
	out     string
	line    int
	noBoxes bool
}

// NewExportCmd creates the export command.
func NewExportCmd(env *Env) *ExportCmd {
	return &ExportCmd{env: env}
}

// Register adds the export command to the application.
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export pages as PNG with line regions drawn",
		UsageText: "folioview export [--page <n> | --all] [--out <dir>] <manuscript-id>",
		Description: `Writes <manuscript-id>_<folio>.png for each exported page, at the page
image's full resolution. Line boxes follow the display.line_boxes setting
unless --no-boxes is given. --line highlights one line the way hovering
does in the viewer.

Pages whose image is missing are skipped with a warning when --all is set.

Examples:
  folioview export --page 3 ms-17
  folioview export --all --out ./pages ms-17
  folioview export --page 3 --line 7 ms-17`,
		Flags: []cli.Flag{
			pageFlag(&cmd.page),
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "export every page",
				Destination: &cmd.all,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output directory (defaults to export_dir)",
				Destination: &cmd.out,
			},
			&cli.IntFlag{
				Name:        "line",
				Aliases:     []string{"l"},
				Usage:       "highlight this line number",
				Destination: &cmd.line,
			},
			&cli.BoolFlag{
				Name:        "no-boxes",
				Usage:       "do not outline line regions",
				Destination: &cmd.noBoxes,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := manuscriptArg(c)
	if err != nil {
		return err
	}
	ctx = logging.WithManuscriptID(ctx, id)

	v, err := cmd.env.open(id, cmd.page)
	if err != nil {
		return err
	}
	dir := cmd.out
	if dir == "" {
		dir = exportDir(cmd.env.cfg.ExportDir)
	}
	opts := cmd.composeOptions(v)

	pages := []int{v.Page()}
	if cmd.all {
		pages = pages[:0]
		for p := 1; p <= v.PageCount(); p++ {
			pages = append(pages, p)
		}
	}

	var written []string
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		v.SetPage(p)
		path, err := exportOne(v, dir, cmd.line, opts)
		if err != nil {
			if cmd.all && errors.Is(err, errMissingImage) {
				log.Warn().Ctx(ctx).Err(err).Int("page", p).Msg("skipping page")
				continue
			}
			return err
		}
		fmt.Fprintln(c.Root().Writer, path)
		written = append(written, path)
	}
	log.Info().Ctx(ctx).Int("pages", len(written)).Str("dir", dir).Msg("export finished")

	if len(written) == 1 {
		cmd.env.notifier.Export(written[0])
	} else if len(written) > 1 {
		cmd.env.notifier.Export(dir)
	}
	return nil
}

func (cmd *ExportCmd) composeOptions(v *viewer.Viewer) render.ComposeOptions {
	t := cmd.env.theme
	opts := render.ComposeOptions{Active: t.OverlayBorder}
	if v.LineBoxes() && !cmd.noBoxes {
		opts.Border = t.OverlayBorder
		opts.BorderWidth = 2
	}
	return opts
}

var errMissingImage = errors.New("page image unavailable")

// exportOne writes the current page of v under dir. A positive line is
// hovered first so it is drawn highlighted.
func exportOne(v *viewer.Viewer, dir string, line int, opts render.ComposeOptions) (string, error) {
	img, err := render.OpenPage(v.ImagePath())
	if err != nil {
		return "", fmt.Errorf("%w: folio %s: %v", errMissingImage, v.FolioLabel(), err)
	}
	v.SetNaturalSize(viewport.SizeOf(img.Bounds()))

	var hovered *manuscript.LineRecord
	if line > 0 {
		for _, l := range v.Lines() {
			if l.Line == line {
				hovered = l
				break
			}
		}
		if hovered == nil {
			return "", fmt.Errorf("folio %s has no line %d", v.FolioLabel(), line)
		}
	}
	v.SetHover(hovered)

	path := filepath.Join(dir, render.ExportName(v))
	if err := render.ExportPage(v, img, path, opts); err != nil {
		return "", err
	}
	return path, nil
}
