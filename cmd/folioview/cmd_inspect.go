package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/viewer"
)

// InspectCmd dumps a manuscript as YAML.
type InspectCmd struct {
	env  *Env
	page int
}

// NewInspectCmd creates the inspect command.
func NewInspectCmd(env *Env) *InspectCmd {
	return &InspectCmd{env: env}
}

type pageSummary struct {
	Page  int    `yaml:"page"`
	Folio string `yaml:"folio"`
	Lines int    `yaml:"lines"`
	Image string `yaml:"image"`
}

type inspectReport struct {
	ID          string                  `yaml:"id"`
	Title       string                  `yaml:"title,omitempty"`
	Copyright   string                  `yaml:"copyright,omitempty"`
	BW          bool                    `yaml:"bw"`
	TotalImages int                     `yaml:"total_images"`
	TotalFolios int                     `yaml:"total_folios,omitempty"`
	Extra       map[string]string       `yaml:"extra,omitempty"`
	Pages       []pageSummary           `yaml:"pages,omitempty"`
	Lines       []manuscript.LineRecord `yaml:"lines,omitempty"`
}

// Register adds the inspect command to the application.
func (cmd *InspectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "inspect",
		Usage:     "Print a manuscript's catalogue entry and pages as YAML",
		UsageText: "folioview inspect [--page <n>] <manuscript-id>",
		Description: `Without --page, lists every page image with its folio label and line
count. With --page, prints that page's line records instead.

Examples:
  folioview inspect ms-17
  folioview inspect --page 4 ms-17`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "page",
				Aliases:     []string{"p"},
				Usage:       "print the line records of this page",
				Destination: &cmd.page,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InspectCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := manuscriptArg(c)
	if err != nil {
		return err
	}
	start := cmd.page
	if start == 0 {
		start = 1
	}
	v, err := cmd.env.open(id, start)
	if err != nil {
		return err
	}
	report := newInspectReport(v, cmd.env.assets(), cmd.page != 0)

	enc := yaml.NewEncoder(c.Root().Writer)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	return enc.Close()
}

// newInspectReport summarises v. With lines set it carries the current
// page's records; otherwise one summary per page, with image paths
// resolved through assets.
func newInspectReport(v *viewer.Viewer, assets manuscript.Assets, lines bool) inspectReport {
	meta := v.Manuscript().Metadata
	r := inspectReport{
		ID:          meta.ID,
		Title:       meta.Title,
		Copyright:   meta.Copyright,
		BW:          meta.BW,
		TotalImages: meta.TotalImages,
		TotalFolios: meta.TotalFolios,
		Extra:       meta.Extra,
	}
	if lines {
		for _, l := range v.Lines() {
			r.Lines = append(r.Lines, *l)
		}
		return r
	}
	all := v.Manuscript().Lines
	for page := 1; page <= v.PageCount(); page++ {
		r.Pages = append(r.Pages, pageSummary{
			Page:  page,
			Folio: v.LabelOf(page),
			Lines: len(manuscript.LinesForPage(all, page)),
			Image: assets.ImagePath(meta.ID, page),
		})
	}
	return r
}
