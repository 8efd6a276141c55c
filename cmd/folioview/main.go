package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/example/folioview/internal/logging"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s) %s", v, c, d)
}

func newApp() *cli.Command {
	flags := &Flags{}
	env := &Env{flags: flags}
	var logCloser func()

	app := &cli.Command{
		Name:      "folioview",
		Usage:     "Browse transcribed manuscripts page by page",
		UsageText: "folioview [global options] command [command options]",
		Description: `folioview shows manuscript page images with their transcribed lines.

Line regions are drawn over the page; hovering a region, or a row of the
transcription panel, highlights the line in both. Pages are labelled with
their folio (12a, 12b, 13a, ...) counted from the catalogue's start folio.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (trace, debug, info, warn, error)",
				Sources:     cli.EnvVars("FOLIOVIEW_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "write JSON logs to this file instead of stderr",
				Sources:     cli.EnvVars("FOLIOVIEW_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FOLIOVIEW_CONFIG"),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Aliases:     []string{"d"},
				Usage:       "directory holding metadata.csv and one folder per manuscript",
				Sources:     cli.EnvVars("FOLIOVIEW_DATA_DIR"),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "image-dir",
				Usage:       "directory holding page images (defaults to the data directory)",
				Sources:     cli.EnvVars("FOLIOVIEW_IMAGE_DIR"),
				Destination: &flags.ImageDir,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme (" + themeNames() + ")",
				Sources:     cli.EnvVars("FOLIOVIEW_THEME"),
				Destination: &flags.Theme,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logging.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			return ctx, env.load(version)
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	for _, r := range []registrar{
		NewViewCmd(env),
		NewReadCmd(env),
		NewListCmd(env),
		NewInspectCmd(env),
		NewExportCmd(env),
		NewThumbsCmd(env),
		NewImportHOCRCmd(env),
		NewConfigCmd(env),
	} {
		app = r.Register(app)
	}
	return app
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
