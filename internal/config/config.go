package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/folioview/internal/theme"
)

const (
	DefaultSmallScreenWidth = 1024
	DefaultThumbnailSize    = 96
)

// Display holds the initial state of the viewer toggles.
type Display struct {
	LineBoxes          bool
	HoverText          bool
	TranscriptionPanel bool
	ThumbnailSize      int
}

// Notify holds notification settings.
type Notify struct {
	Copy   bool
	Export bool
}

// Config holds the application configuration.
type Config struct {
	DataDir          string
	ImageDir         string // Defaults to DataDir
	ExportDir        string
	Theme            string
	FontFile         string // TrueType/OpenType face for transcriptions
	SmallScreenWidth int
	Display          Display
	Notify           Notify
	Themes           map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:            "", // Default to empty to allow fallback to Env/Default
		SmallScreenWidth: DefaultSmallScreenWidth,
		Display: Display{
			LineBoxes:          true,
			HoverText:          true,
			TranscriptionPanel: true,
			ThumbnailSize:      DefaultThumbnailSize,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Images returns the directory page images are read from.
func (c *Config) Images() string {
	if c.ImageDir != "" {
		return c.ImageDir
	}
	return c.DataDir
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	for _, kv := range [][2]string{
		{"data_dir", c.DataDir},
		{"image_dir", c.ImageDir},
		{"export_dir", c.ExportDir},
		{"theme", c.Theme},
		{"font_file", c.FontFile},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv[0], kv[1])
		}
	}
	fmt.Fprintf(&sb, "small_screen_width = %d\n", c.SmallScreenWidth)
	sb.WriteString("\n")

	sb.WriteString("[display]\n")
	fmt.Fprintf(&sb, "line_boxes = %v\n", c.Display.LineBoxes)
	fmt.Fprintf(&sb, "hover_text = %v\n", c.Display.HoverText)
	fmt.Fprintf(&sb, "transcription_panel = %v\n", c.Display.TranscriptionPanel)
	fmt.Fprintf(&sb, "thumbnail_size = %d\n", c.Display.ThumbnailSize)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, kv := range t.Colors() {
			fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
