//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() { initOnce = sync.Once{}; initErr = nil })

	assert.ErrorIs(t, WriteText("folio 1a"), ErrNoDisplay)
	_, err := CopyLine("1a", nil, false)
	assert.Error(t, err)
}
