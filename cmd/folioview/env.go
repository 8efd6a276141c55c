package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/example/folioview/internal/config"
	"github.com/example/folioview/internal/logging"
	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/notify"
	"github.com/example/folioview/internal/theme"
	"github.com/example/folioview/internal/viewer"
)

// registrar adds a command to the application.
type registrar interface {
	Register(app *cli.Command) *cli.Command
}

// Flags holds the global flag values.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	ImageDir   string
	Theme      string
}

// Env is the state shared by every command once global flags and the
// config file have been read.
type Env struct {
	flags    *Flags
	cfg      *config.Config
	theme    *theme.Theme
	notifier *notify.Notifier
}

// load reads the config file and resolves overrides. Precedence is
// flag or environment, then config file, then default.
func (e *Env) load(version string) error {
	cfg, err := config.NewLoader(version, e.flags.ConfigPath).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if e.flags.DataDir != "" {
		cfg.DataDir = e.flags.DataDir
	}
	if e.flags.ImageDir != "" {
		cfg.ImageDir = e.flags.ImageDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if e.flags.Theme != "" {
		cfg.Theme = e.flags.Theme
	}
	e.cfg = cfg

	t, err := theme.NewLoader(cfg.Themes).Load(cfg.Theme)
	if err != nil {
		if cfg.Theme != "" && cfg.Theme != "default" {
			log.Warn().Err(err).Str("theme", cfg.Theme).Msg("using default theme")
		}
		t = theme.Default()
	}
	e.theme = t

	e.notifier = notify.New(notify.LoadPreferences(), notify.WithLogger(logging.Component("notify")))
	e.notifier.Enable(notify.EventCopy, cfg.Notify.Copy)
	e.notifier.Enable(notify.EventExport, cfg.Notify.Export)
	return nil
}

func (e *Env) assets() manuscript.Assets {
	return manuscript.Assets{Root: e.cfg.Images()}
}

// open loads manuscript id and returns a viewer on page, configured from
// the display settings.
func (e *Env) open(id string, page int) (*viewer.Viewer, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	m, err := manuscript.Load(e.cfg.DataDir, id)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > m.Metadata.TotalImages {
		return nil, fmt.Errorf("page %d out of range 1-%d", page, m.Metadata.TotalImages)
	}
	d := e.cfg.Display
	return viewer.New(m,
		viewer.WithLogger(logging.Component("viewer").With().Str("manuscript", id).Logger()),
		viewer.WithAssets(e.assets()),
		viewer.WithSmallScreenWidth(e.cfg.SmallScreenWidth),
		viewer.WithLineBoxes(d.LineBoxes),
		viewer.WithHoverText(d.HoverText),
		viewer.WithTranscriptionPanel(d.TranscriptionPanel),
		viewer.WithPage(page),
	)
}

// manuscriptArg returns the required manuscript id argument.
func manuscriptArg(c *cli.Command) (string, error) {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return "", fmt.Errorf("%s: manuscript id required", c.FullName())
	}
	return id, nil
}

func themeNames() string {
	return strings.Join(theme.Embedded(), ", ")
}

// pageFlag is the --page flag shared by commands that open one page.
func pageFlag(dst *int) *cli.IntFlag {
	return &cli.IntFlag{
		Name:        "page",
		Aliases:     []string{"p"},
		Usage:       "1-based page image to open",
		Value:       1,
		Destination: dst,
	}
}
