// Package notify turns viewer events into desktop notifications.
package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/folioview/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventCopy fires after a line or page reaches the clipboard.
	EventCopy Event = "copy"
	// EventExport fires after a rendered page is written to disk.
	EventExport Event = "export"
)

// Preferences holds the title and per-event message templates. Each
// template receives a single %s detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Timeout   time.Duration
}

// DefaultPreferences returns the built-in templates.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Folio viewer",
		Templates: map[Event]string{
			EventCopy:   "Copied %s",
			EventExport: "Exported %s",
		},
		Timeout: 5 * time.Second,
	}
}

// LoadPreferences applies FOLIOVIEW_NOTIFY_* overrides from the environment
// to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("FOLIOVIEW_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, event := range map[string]Event{
		"FOLIOVIEW_NOTIFY_COPY_TEXT":   EventCopy,
		"FOLIOVIEW_NOTIFY_EXPORT_TEXT": EventExport,
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// Sender delivers one notification.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends notifications for enabled events. The zero value and a nil
// pointer are both silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
	log     zerolog.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSender replaces the platform sender.
func WithSender(s Sender) Option {
	return func(n *Notifier) { n.send = s }
}

// WithLogger sets where delivery failures are reported.
func WithLogger(l zerolog.Logger) Option {
	return func(n *Notifier) { n.log = l }
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences, opts ...Option) *Notifier {
	n := &Notifier{
		prefs:   Preferences{Title: prefs.Title, Timeout: prefs.Timeout, Templates: make(map[Event]string, len(prefs.Templates))},
		enabled: make(map[Event]bool),
		send:    platform.Notify,
		log:     zerolog.Nop(),
	}
	for k, v := range prefs.Templates {
		n.prefs.Templates[k] = v
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Enable switches notifications for event on or off.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = on
}

// Copy reports a clipboard copy; detail names what was copied.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "page"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Export reports a written file and uses it as the notification icon.
func (n *Notifier) Export(path string) {
	detail := strings.TrimSpace(path)
	var opts platform.Options
	if abs, err := filepath.Abs(detail); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if n == nil || !n.enabled[event] || n.send == nil {
		return
	}
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts.Timeout = n.prefs.Timeout
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		n.log.Warn().Err(err).Str("event", string(event)).Msg("notification not delivered")
	}
}
