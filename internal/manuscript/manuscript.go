// Package manuscript holds the read-only manuscript model consumed by the
// viewer: catalogue metadata, transcribed line records, and the on-disk
// layout of page images.
package manuscript

import (
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/example/folioview/internal/folio"
)

// LineRecord is one transcribed line on one page image. Coordinates are in
// the natural pixel space of that page's image; start and end are opposite
// corners of the line region and are not ordered.
type LineRecord struct {
	ImageID       string  `yaml:"image_id"`
	Line          int     `yaml:"line"`
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	EndX          float64 `yaml:"end_x"`
	EndY          float64 `yaml:"end_y"`
	Transcription string  `yaml:"transcription"`
	Translation   string  `yaml:"translation,omitempty"`
}

// Metadata is one row of the manuscript catalogue.
type Metadata struct {
	ID          string
	Title       string
	TotalImages int
	TotalFolios int
	StartFolio  string
	Copyright   string
	// BW marks black-and-white photography, which gets a tinted overlay so
	// highlighted regions stay visible.
	BW    bool
	Extra map[string]string
}

// Validate checks the invariants the viewer relies on: at least one image
// and a parseable starting folio.
func (m Metadata) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("manuscript_id", m.ID, func(id string) error {
			if id == "" {
				return fmt.Errorf("must not be empty")
			}
			return nil
		}),
		criterio.Run("total_images", m.TotalImages, func(n int) error {
			if n < 1 {
				return fmt.Errorf("must be at least 1, got %d", n)
			}
			return nil
		}),
		criterio.Run("start_folio", m.StartFolio, func(s string) error {
			_, err := folio.Parse(s)
			return err
		}),
	)
}

// Manuscript bundles a catalogue entry with its line records.
type Manuscript struct {
	Metadata Metadata
	Lines    []LineRecord
}
