package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/example/folioview/internal/appstate"
	"github.com/example/folioview/internal/logging"
)

// ViewCmd opens a manuscript in a window.
type ViewCmd struct {
	env  *Env
	page int
}

// NewViewCmd creates the view command.
func NewViewCmd(env *Env) *ViewCmd {
	return &ViewCmd{env: env}
}

// Register adds the view command to the application.
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Open a manuscript in a window",
		UsageText: "folioview view [--page <n>] <manuscript-id>",
		Description: `Opens the page image viewer with the transcription panel and the
thumbnail strip.

Keys:
  n/p, left/right, pgup/pgdown   previous and next page
  home/end                       first and last page
  +/-/0                          zoom in, zoom out, reset
  j/k, up/down                   move the highlighted line
  l, h, t                        toggle line boxes, hover text, transcription panel
  v                              swap image and transcription on small screens
  c                              copy the highlighted line
  ctrl+c                         copy the page with its line boxes
  e, ctrl+s                      export the page as PNG
  q, esc                         quit

Examples:
  folioview view ms-17
  folioview --theme dark view --page 12 ms-17`,
		Flags: []cli.Flag{
			pageFlag(&cmd.page),
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ViewCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := manuscriptArg(c)
	if err != nil {
		return err
	}
	ctx = logging.WithManuscriptID(ctx, id)

	v, err := cmd.env.open(id, cmd.page)
	if err != nil {
		return err
	}
	cfg := cmd.env.cfg
	log.Info().Ctx(ctx).Str("folio", v.FolioLabel()).Int("pages", v.PageCount()).Msg("opening viewer")

	app := appstate.New(v,
		appstate.WithAssets(cmd.env.assets()),
		appstate.WithTheme(cmd.env.theme),
		appstate.WithFontFile(cfg.FontFile),
		appstate.WithExportDir(exportDir(cfg.ExportDir)),
		appstate.WithThumbnailSize(cfg.Display.ThumbnailSize),
		appstate.WithNotifier(cmd.env.notifier),
		appstate.WithLogger(logging.Component("window").With().Str("manuscript_id", id).Logger()),
		appstate.WithOnClose(func() {
			log.Debug().Ctx(ctx).Msg("window closed")
		}),
	)
	if err := app.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

// exportDir defaults an unset export directory to the working directory.
func exportDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
