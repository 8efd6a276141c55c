package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/example/folioview/internal/logging"
	"github.com/example/folioview/internal/reader"
)

// ReadCmd pages through a transcription in the terminal.
type ReadCmd struct {
	env  *Env
	page int
}

// NewReadCmd creates the read command.
func NewReadCmd(env *Env) *ReadCmd {
	return &ReadCmd{env: env}
}

// Register adds the read command to the application.
func (cmd *ReadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "read",
		Usage:     "Read a transcription in the terminal",
		UsageText: "folioview read [--page <n>] <manuscript-id>",
		Description: `Shows one page of transcribed lines at a time, without images.

j/k move the highlighted line, n/p change page, g/G jump to the first and
last page, t toggles translations and c copies the highlighted line.

Examples:
  folioview read ms-17
  folioview --log-file /tmp/folioview.log read --page 3 ms-17`,
		Flags: []cli.Flag{
			pageFlag(&cmd.page),
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ReadCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := manuscriptArg(c)
	if err != nil {
		return err
	}
	v, err := cmd.env.open(id, cmd.page)
	if err != nil {
		return err
	}
	return reader.Run(v,
		reader.WithStyles(reader.StylesFromTheme(cmd.env.theme)),
		reader.WithNotifier(cmd.env.notifier),
		reader.WithLogger(logging.Component("reader").With().Str("manuscript_id", id).Logger()),
	)
}
