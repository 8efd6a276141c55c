package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/example/folioview/internal/hocr"
	"github.com/example/folioview/internal/logging"
	"github.com/example/folioview/internal/manuscript"
)

// ImportHOCRCmd converts OCR output into line records.
type ImportHOCRCmd struct {
	env *Env

	firstPage int
	out       string
	force     bool
}

// NewImportHOCRCmd creates the import-hocr command.
func NewImportHOCRCmd(env *Env) *ImportHOCRCmd {
	return &ImportHOCRCmd{env: env}
}

// Register adds the import-hocr command to the application.
func (cmd *ImportHOCRCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import-hocr",
		Usage:     "Build a line file from an hOCR document",
		UsageText: "folioview import-hocr [--first-page <n>] [--out <file>] [--force] <manuscript-id> <file.hocr>",
		Description: `Reads the ocr_line elements of an hOCR document (as written by tesseract)
and writes them as line records. Each ocr_page becomes one page image,
numbered from --first-page. Translations are left empty.

The output defaults to <data-dir>/<manuscript-id>/ms_data.csv and is not
overwritten unless --force is given. Use --out - to print to stdout.

Examples:
  folioview import-hocr ms-17 scan.hocr
  folioview import-hocr --first-page 5 --out - ms-17 quire2.hocr`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "first-page",
				Usage:       "page image number of the first ocr_page",
				Value:       1,
				Destination: &cmd.firstPage,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file, or - for stdout",
				Destination: &cmd.out,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite an existing line file",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ImportHOCRCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("%s: expected <manuscript-id> <file.hocr>", c.FullName())
	}
	id, src := c.Args().Get(0), c.Args().Get(1)
	if cmd.firstPage < 1 {
		return fmt.Errorf("first page must be at least 1, got %d", cmd.firstPage)
	}
	ctx = logging.WithManuscriptID(ctx, id)

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	res, err := hocr.Parse(f, cmd.firstPage)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	log.Info().Ctx(ctx).
		Int("pages", res.Pages).
		Int("lines", len(res.Lines)).
		Int("skipped", res.Skipped).
		Msg("hocr parsed")
	cmd.checkCatalog(ctx, id, res)

	if cmd.out == "-" {
		return manuscript.WriteLines(c.Root().Writer, res.Lines)
	}
	dst := cmd.out
	if dst == "" {
		dst = filepath.Join(cmd.env.cfg.DataDir, id, manuscript.LinesFile)
	}
	if err := writeLineFile(dst, res.Lines, cmd.force); err != nil {
		return err
	}
	fmt.Fprintf(c.Root().Writer, "%d lines on %d pages written to %s\n", len(res.Lines), res.Pages, dst)
	return nil
}

// checkCatalog warns when the imported pages do not fit the catalogue
// entry. The import still goes ahead.
func (cmd *ImportHOCRCmd) checkCatalog(ctx context.Context, id string, res *hocr.Result) {
	catalog, err := manuscript.LoadCatalog(cmd.env.cfg.DataDir)
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("no catalogue to check against")
		return
	}
	meta, err := manuscript.Find(catalog, id)
	if err != nil {
		log.Warn().Ctx(ctx).Msg("manuscript is not in the catalogue")
		return
	}
	if last := cmd.firstPage + res.Pages - 1; last > meta.TotalImages {
		log.Warn().Ctx(ctx).Int("last_page", last).Int("total_images", meta.TotalImages).Msg("hocr has more pages than the catalogue")
	}
}

// writeLineFile writes lines to path, creating its directory. An existing
// file is only replaced when force is set; the write goes through a
// temporary file so a failure leaves the old one intact.
func writeLineFile(path string, lines []manuscript.LineRecord, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w (use --force to overwrite)", path, os.ErrExist)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ms_data-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := manuscript.WriteLines(tmp, lines); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
