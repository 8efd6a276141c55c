package hover

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/viewport"
)

func TestSyncIdentity(t *testing.T) {
	a := &manuscript.LineRecord{ImageID: "1", Line: 1, Transcription: "same"}
	b := &manuscript.LineRecord{ImageID: "1", Line: 1, Transcription: "same"}
	var s Sync

	assert.Nil(t, s.Current())
	assert.True(t, s.Set(a))
	assert.True(t, s.Is(a))
	assert.False(t, s.Is(b), "equal fields must not match a different record")

	assert.True(t, s.Set(b))
	assert.Same(t, b, s.Current())
	assert.False(t, s.Set(b))

	assert.True(t, s.Clear())
	assert.Nil(t, s.Current())
	assert.False(t, s.Is(nil))
}

func TestSyncListeners(t *testing.T) {
	a := &manuscript.LineRecord{Line: 1}
	var s Sync
	var got []*manuscript.LineRecord
	s.OnChange(func(l *manuscript.LineRecord) { got = append(got, l) })

	s.Set(a)
	s.Set(a)
	s.Clear()
	s.Clear()
	assert.Equal(t, []*manuscript.LineRecord{a, nil}, got)
}

func TestTooltipTop(t *testing.T) {
	line := manuscript.LineRecord{StartX: 100, StartY: 400, EndX: 300, EndY: 200}
	top, ok := TooltipTop(line, viewport.Size{Width: 1000, Height: 2000}, viewport.Size{Width: 500, Height: 1000})
	assert.True(t, ok)
	assert.Equal(t, 210.0, top)

	_, ok = TooltipTop(line, viewport.Size{}, viewport.Size{Width: 500, Height: 1000})
	assert.False(t, ok)
}
