package reader

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/folioview/internal/theme"
)

// Styles holds the lipgloss styles of the reader.
type Styles struct {
	Header      lipgloss.Style
	Folio       lipgloss.Style
	Number      lipgloss.Style
	Line        lipgloss.Style
	Selected    lipgloss.Style
	Translation lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
}

// hex drops alpha, which terminals cannot show.
func hex(c color.RGBA) lipgloss.Color {
	c.A = 255
	return lipgloss.Color(theme.Hex(c))
}

// StylesFromTheme derives terminal styles from a window theme so both
// front ends share one palette.
func StylesFromTheme(t *theme.Theme) Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(hex(t.HeaderText)).Background(hex(t.HeaderBackground)).Padding(0, 1),
		Folio:       lipgloss.NewStyle().Foreground(hex(t.HeaderText)).Background(hex(t.HeaderBackground)).Padding(0, 1),
		Number:      lipgloss.NewStyle().Foreground(hex(t.LineNumber)).Width(4).Align(lipgloss.Right),
		Line:        lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(hex(t.PanelText)).Background(hex(t.LineHighlight)),
		Translation: lipgloss.NewStyle().Italic(true).Foreground(hex(t.LineNumber)),
		Help:        lipgloss.NewStyle().Foreground(hex(t.LineNumber)),
		Status:      lipgloss.NewStyle().Foreground(hex(t.OverlayBorder)),
	}
}
