// Package reader is a terminal front end for a viewer.Viewer: it pages
// through a manuscript and steps the hover target line by line, without
// page images.
package reader

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/example/folioview/internal/clipboard"
	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/notify"
	"github.com/example/folioview/internal/render"
	"github.com/example/folioview/internal/theme"
	"github.com/example/folioview/internal/viewer"
)

const helpText = "j/k line  n/p page  g/G first/last  t translation  c copy  q quit"

// CopyFunc places a line on the clipboard.
type CopyFunc func(label string, line *manuscript.LineRecord) error

func clipboardCopy(label string, line *manuscript.LineRecord) error {
	_, err := clipboard.CopyLine(label, line, true)
	return err
}

// Model is the bubbletea model of the reader.
type Model struct {
	v      *viewer.Viewer
	styles Styles
	copy   CopyFunc
	notify *notify.Notifier
	log    zerolog.Logger

	width, height   int
	scroll          int
	showTranslation bool
	status          string
}

// Option configures a Model.
type Option func(*Model)

func WithStyles(s Styles) Option { return func(m *Model) { m.styles = s } }

// WithCopy replaces the clipboard writer.
func WithCopy(fn CopyFunc) Option { return func(m *Model) { m.copy = fn } }

func WithNotifier(n *notify.Notifier) Option { return func(m *Model) { m.notify = n } }

func WithLogger(l zerolog.Logger) Option { return func(m *Model) { m.log = l } }

// New returns a reader over v.
func New(v *viewer.Viewer, opts ...Option) Model {
	m := Model{
		v:               v,
		styles:          StylesFromTheme(theme.Default()),
		copy:            clipboardCopy,
		log:             zerolog.Nop(),
		width:           80,
		height:          24,
		showTranslation: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the reader on the alternate screen and blocks until it quits.
func Run(v *viewer.Viewer, opts ...Option) error {
	_, err := tea.NewProgram(New(v, opts...), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll = m.follow()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.v.Page()
	m.status = ""
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.v.MoveHover(1)
	case "k", "up":
		m.v.MoveHover(-1)
	case "n", "l", "right", "pgdown", " ":
		m.v.NextPage()
	case "p", "h", "left", "pgup":
		m.v.PrevPage()
	case "g", "home":
		m.v.FirstPage()
	case "G", "end":
		m.v.LastPage()
	case "t":
		m.showTranslation = !m.showTranslation
	case "c":
		m.copyHovered()
	}
	if m.v.Page() != page {
		m.scroll = 0
	}
	m.scroll = m.follow()
	return m, nil
}

func (m *Model) copyHovered() {
	line := m.v.Hovered()
	if line == nil {
		m.status = "select a line with j/k first"
		return
	}
	if err := m.copy(m.v.FolioLabel(), line); err != nil {
		m.log.Warn().Err(err).Msg("copy line")
		m.status = "copy failed: " + err.Error()
		return
	}
	detail := fmt.Sprintf("%s, line %d", m.v.FolioLabel(), line.Line)
	m.status = "copied " + detail
	m.notify.Copy(detail)
}

// bodyHeight is the number of rows between header and footer.
func (m Model) bodyHeight() int {
	return max(m.height-3, 1)
}

// body renders every row of the current page and reports the row range of
// the hovered line.
func (m Model) body() (rows []string, hoverFrom, hoverTo int) {
	hoverFrom, hoverTo = -1, -1
	textW := max(m.width-6, 10)
	for _, l := range m.v.Lines() {
		style := m.styles.Line
		if m.v.IsHovered(l) {
			style = m.styles.Selected
			hoverFrom = len(rows)
		}
		for i, part := range transcriptionRows(style, l.Transcription, textW) {
			num := ""
			if i == 0 {
				num = fmt.Sprint(l.Line)
			}
			rows = append(rows, m.styles.Number.Render(num)+" "+part)
		}
		if m.showTranslation && strings.TrimSpace(l.Translation) != "" {
			tr := m.styles.Translation.Width(textW).Render(l.Translation)
			for _, part := range strings.Split(tr, "\n") {
				rows = append(rows, m.styles.Number.Render("")+" "+part)
			}
		}
		if hoverFrom >= 0 && hoverTo < 0 {
			hoverTo = len(rows)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, m.styles.Help.Render("  no transcribed lines on this page"))
	}
	return rows, hoverFrom, hoverTo
}

// transcriptionRows renders text in rows of width w. Right-to-left text is
// wrapped in logical order first and each row is then reordered for
// display and right-aligned, so the first words stay on the first row.
func transcriptionRows(style lipgloss.Style, text string, w int) []string {
	if !render.IsRTL(text) {
		return strings.Split(style.Width(w).Render(text), "\n")
	}
	style = style.Width(w).Align(lipgloss.Right)
	var rows []string
	for _, row := range strings.Split(ansi.Wrap(text, w, ""), "\n") {
		rows = append(rows, style.Render(render.VisualOrder(strings.TrimSpace(row))))
	}
	return rows
}

// follow returns the scroll offset that keeps the hovered line in view.
func (m Model) follow() int {
	rows, from, to := m.body()
	h := m.bodyHeight()
	scroll := m.scroll
	if from >= 0 {
		if from < scroll {
			scroll = from
		}
		if to > scroll+h {
			scroll = to - h
		}
	}
	return max(min(scroll, len(rows)-h), 0)
}

func (m Model) View() string {
	var b strings.Builder
	title := m.styles.Header.Render(m.v.Title())
	folio := m.styles.Folio.Render(fmt.Sprintf("%s  %d/%d", m.v.Header(), m.v.Page(), m.v.PageCount()))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, title, folio))
	b.WriteString("\n")

	rows, _, _ := m.body()
	h := m.bodyHeight()
	end := min(m.scroll+h, len(rows))
	for i := m.scroll; i < end; i++ {
		b.WriteString(rows[i])
		b.WriteString("\n")
	}
	for i := end - m.scroll; i < h; i++ {
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(helpText))
	return b.String()
}
