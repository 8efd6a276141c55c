package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/example/folioview/internal/config"
	"github.com/example/folioview/internal/theme"
)

// ConfigCmd shows and writes the configuration.
type ConfigCmd struct {
	env *Env

	savePath string
}

// NewConfigCmd creates the config command group.
func NewConfigCmd(env *Env) *ConfigCmd {
	return &ConfigCmd{env: env}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Show or save the configuration",
		Description: `The configuration is read from --config, then ./.folioviewrc in
development builds, then the user config directory. Flags and FOLIOVIEW_*
environment variables override it.

Examples:
  folioview config print
  folioview --theme dark config save
  folioview config themes`,
		Commands: []*cli.Command{
			{
				Name:   "print",
				Usage:  "Print the effective configuration",
				Action: cmd.runPrint,
			},
			{
				Name:      "save",
				Usage:     "Write the effective configuration",
				UsageText: "folioview config save [--path <file>]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "path",
						Usage:       "destination (defaults to the user config file)",
						Destination: &cmd.savePath,
					},
				},
				Action: cmd.runSave,
			},
			{
				Name:   "path",
				Usage:  "Print the config file in use",
				Action: cmd.runPath,
			},
			{
				Name:   "themes",
				Usage:  "List available themes",
				Action: cmd.runThemes,
			},
		},
	})
	return app
}

func (cmd *ConfigCmd) runPrint(ctx context.Context, c *cli.Command) error {
	_, err := fmt.Fprint(c.Root().Writer, cmd.env.cfg.String())
	return err
}

func (cmd *ConfigCmd) runSave(ctx context.Context, c *cli.Command) error {
	path := cmd.savePath
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return fmt.Errorf("no user config directory; pass --path")
	}
	if err := config.Save(cmd.env.cfg, path); err != nil {
		return err
	}
	fmt.Fprintln(c.Root().Writer, path)
	return nil
}

func (cmd *ConfigCmd) runPath(ctx context.Context, c *cli.Command) error {
	path := config.NewLoader(version, cmd.env.flags.ConfigPath).GetConfigPath()
	if path == "" {
		path = "(none, using defaults)"
	}
	fmt.Fprintln(c.Root().Writer, path)
	return nil
}

func (cmd *ConfigCmd) runThemes(ctx context.Context, c *cli.Command) error {
	w := c.Root().Writer
	for _, name := range theme.Embedded() {
		fmt.Fprintf(w, "%s\tbuilt-in\n", name)
	}
	inline := make([]string, 0, len(cmd.env.cfg.Themes))
	for name := range cmd.env.cfg.Themes {
		inline = append(inline, name)
	}
	sort.Strings(inline)
	for _, name := range inline {
		fmt.Fprintf(w, "%s\tconfig\n", name)
	}
	return nil
}
