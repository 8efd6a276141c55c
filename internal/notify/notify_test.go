package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/folioview/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recorder(out *[]sent) Sender {
	return func(title, body string, opts platform.Options) error {
		*out = append(*out, sent{title, body, opts})
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), WithSender(recorder(&got)))
	n.Copy("line 3")
	n.Export("page.png")
	assert.Empty(t, got)

	var nilNotifier *Notifier
	nilNotifier.Copy("x")
	nilNotifier.Enable(EventCopy, true)
}

func TestCopy(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), WithSender(recorder(&got)))
	n.Enable(EventCopy, true)

	n.Copy("12a, line 3")
	n.Copy("  ")
	require.Len(t, got, 2)
	assert.Equal(t, "Folio viewer", got[0].title)
	assert.Equal(t, "Copied 12a, line 3", got[0].body)
	assert.Equal(t, "Copied page", got[1].body)
	assert.Equal(t, DefaultPreferences().Timeout, got[0].opts.Timeout)
}

func TestExportUsesFileAsIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	var got []sent
	n := New(DefaultPreferences(), WithSender(recorder(&got)))
	n.Enable(EventExport, true)
	n.Export(path)
	n.Export(filepath.Join(t.TempDir(), "missing.png"))

	require.Len(t, got, 2)
	assert.Equal(t, "Exported "+path, got[0].body)
	assert.Equal(t, path, got[0].opts.IconPath)
	assert.Empty(t, got[1].opts.IconPath)
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("FOLIOVIEW_NOTIFY_TITLE", "Codex")
	t.Setenv("FOLIOVIEW_NOTIFY_COPY_TEXT", "Clipboard: %s")
	prefs := LoadPreferences()
	assert.Equal(t, "Codex", prefs.Title)
	assert.Equal(t, "Clipboard: %s", prefs.Templates[EventCopy])
	assert.Equal(t, "Exported %s", prefs.Templates[EventExport])
}

func TestPreferencesAreCopied(t *testing.T) {
	prefs := DefaultPreferences()
	var got []sent
	n := New(prefs, WithSender(recorder(&got)))
	prefs.Templates[EventCopy] = "changed %s"
	n.Enable(EventCopy, true)
	n.Copy("x")
	require.Len(t, got, 1)
	assert.Equal(t, "Copied x", got[0].body)
}

func TestSendFailureIsSwallowed(t *testing.T) {
	n := New(DefaultPreferences(), WithSender(func(string, string, platform.Options) error {
		return errors.New("no bus")
	}))
	n.Enable(EventCopy, true)
	assert.NotPanics(t, func() { n.Copy("x") })
}
