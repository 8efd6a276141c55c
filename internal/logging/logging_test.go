package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("viewer")
	logger.Info().Msg("page changed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "viewer", entry["cmp"])
	assert.Equal(t, "page changed", entry["message"])
}

func TestNewWritesJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "folioview.log")
	l, closer, err := New("info", file)
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	l.Info().Str("page", "3").Msg("shown")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "3", entry["page"])
	assert.Contains(t, entry, "time")
}

func TestNewBadLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestContextHook(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Hook(ContextHook{})

	ctx := WithManuscriptID(context.Background(), "ms1")
	l.Info().Ctx(ctx).Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ms1", entry["manuscript_id"])
	assert.Equal(t, "", GetManuscriptID(context.Background()))
}
