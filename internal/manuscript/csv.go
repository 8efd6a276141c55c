package manuscript

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// CatalogFile lists every manuscript in a data directory.
	CatalogFile = "metadata.csv"
	// LinesFile holds the line records of one manuscript, under its id.
	LinesFile = "ms_data.csv"
)

// ErrNotFound is returned when a manuscript id is absent from the catalogue.
var ErrNotFound = errors.New("manuscript not found")

// RowError reports a malformed CSV row. Row is 1-based and counts the
// header, matching what a spreadsheet shows.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var lineColumns = []string{"image_id", "line", "start_x", "start_y", "end_x", "end_y", "transcription", "translation"}

// table is a header-keyed view over a CSV file.
type table struct {
	header map[string]int
	names  []string
	rows   [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	t := &table{header: make(map[string]int)}
	for i, name := range records[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.header[name] = i
		t.names = append(t.names, name)
	}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func (t *table) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.header[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (t *table) get(rec []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// ReadCatalog parses a metadata.csv catalogue.
func ReadCatalog(r io.Reader) ([]Metadata, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	if err := t.require("manuscript_id", "total_images", "start_folio"); err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	known := map[string]bool{
		"manuscript_id": true, "title": true, "total_images": true, "total_folios": true,
		"start_folio": true, "copyright": true, "bw": true,
	}
	out := make([]Metadata, 0, len(t.rows))
	for i, rec := range t.rows {
		row := i + 2
		m := Metadata{
			ID:         t.get(rec, "manuscript_id"),
			Title:      t.get(rec, "title"),
			StartFolio: t.get(rec, "start_folio"),
			Copyright:  t.get(rec, "copyright"),
		}
		if m.TotalImages, err = strconv.Atoi(t.get(rec, "total_images")); err != nil {
			return nil, &RowError{Row: row, Column: "total_images", Err: err}
		}
		if v := t.get(rec, "total_folios"); v != "" {
			if m.TotalFolios, err = strconv.Atoi(v); err != nil {
				return nil, &RowError{Row: row, Column: "total_folios", Err: err}
			}
		}
		if m.BW, err = parseFlag(t.get(rec, "bw")); err != nil {
			return nil, &RowError{Row: row, Column: "bw", Err: err}
		}
		for _, name := range t.names {
			if known[name] || name == "" {
				continue
			}
			if m.Extra == nil {
				m.Extra = make(map[string]string)
			}
			m.Extra[name] = t.get(rec, name)
		}
		out = append(out, m)
	}
	return out, nil
}

func parseFlag(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "", "0", "no", "n", "false":
		return false, nil
	case "yes", "y", "bw":
		return true, nil
	}
	return strconv.ParseBool(v)
}

// ReadLines parses an ms_data.csv file into typed line records.
func ReadLines(r io.Reader) ([]LineRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	if err := t.require(lineColumns[:7]...); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	out := make([]LineRecord, 0, len(t.rows))
	for i, rec := range t.rows {
		row := i + 2
		l := LineRecord{
			ImageID:       t.get(rec, "image_id"),
			Transcription: t.get(rec, "transcription"),
			Translation:   t.get(rec, "translation"),
		}
		if l.Line, err = strconv.Atoi(t.get(rec, "line")); err != nil {
			return nil, &RowError{Row: row, Column: "line", Err: err}
		}
		coords := []struct {
			col string
			dst *float64
		}{
			{"start_x", &l.StartX}, {"start_y", &l.StartY}, {"end_x", &l.EndX}, {"end_y", &l.EndY},
		}
		for _, c := range coords {
			if *c.dst, err = strconv.ParseFloat(t.get(rec, c.col), 64); err != nil {
				return nil, &RowError{Row: row, Column: c.col, Err: err}
			}
		}
		out = append(out, l)
	}
	return out, nil
}

// WriteLines writes records in the ms_data.csv layout.
func WriteLines(w io.Writer, lines []LineRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(lineColumns); err != nil {
		return err
	}
	for _, l := range lines {
		rec := []string{
			l.ImageID,
			strconv.Itoa(l.Line),
			strconv.FormatFloat(l.StartX, 'f', -1, 64),
			strconv.FormatFloat(l.StartY, 'f', -1, 64),
			strconv.FormatFloat(l.EndX, 'f', -1, 64),
			strconv.FormatFloat(l.EndY, 'f', -1, 64),
			l.Transcription,
			l.Translation,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Find returns the catalogue entry for id.
func Find(catalog []Metadata, id string) (Metadata, error) {
	for _, m := range catalog {
		if m.ID == id {
			return m, nil
		}
	}
	return Metadata{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// LoadCatalog reads the catalogue of a data directory.
func LoadCatalog(dataDir string) ([]Metadata, error) {
	f, err := os.Open(filepath.Join(dataDir, CatalogFile))
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// Load reads and validates manuscript id from dataDir.
func Load(dataDir, id string) (*Manuscript, error) {
	catalog, err := LoadCatalog(dataDir)
	if err != nil {
		return nil, err
	}
	meta, err := Find(catalog, id)
	if err != nil {
		return nil, err
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("manuscript %q: %w", id, err)
	}
	f, err := os.Open(filepath.Join(dataDir, id, LinesFile))
	if err != nil {
		return nil, fmt.Errorf("open lines for %q: %w", id, err)
	}
	defer f.Close()
	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("manuscript %q: %w", id, err)
	}
	return &Manuscript{Metadata: meta, Lines: lines}, nil
}
