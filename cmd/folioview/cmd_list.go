package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/example/folioview/internal/folio"
	"github.com/example/folioview/internal/manuscript"
)

// ListCmd prints the manuscript catalogue.
type ListCmd struct {
	env *Env
}

// NewListCmd creates the list command.
func NewListCmd(env *Env) *ListCmd {
	return &ListCmd{env: env}
}

// Register adds the list command to the application.
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List the manuscripts in the data directory",
		UsageText: "folioview list",
		Description: `Prints one row per catalogue entry with its folio range.

Entries that fail validation are still listed, with the reason in the
FOLIOS column.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	catalog, err := manuscript.LoadCatalog(cmd.env.cfg.DataDir)
	if err != nil {
		return err
	}
	log.Debug().Int("entries", len(catalog)).Str("dir", cmd.env.cfg.DataDir).Msg("catalogue loaded")

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tIMAGES\tFOLIOS\tBW")
	for _, m := range catalog {
		bw := ""
		if m.BW {
			bw = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", m.ID, m.Title, m.TotalImages, folioRange(m), bw)
	}
	return w.Flush()
}

// folioRange formats the first and last folio of m, or the validation
// error when m cannot be opened.
func folioRange(m manuscript.Metadata) string {
	if err := m.Validate(); err != nil {
		return invalid(err)
	}
	labels, err := folio.Range(m.StartFolio, m.TotalImages)
	if err != nil {
		return invalid(err)
	}
	if len(labels) == 1 {
		return labels[0]
	}
	return labels[0] + "-" + labels[len(labels)-1]
}

// invalid keeps a validation error on one table row.
func invalid(err error) string {
	return "invalid: " + strings.Join(strings.Fields(err.Error()), " ")
}
