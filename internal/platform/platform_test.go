package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptionsExpiry(t *testing.T) {
	assert.Equal(t, int32(-1), Options{}.expiry())
	assert.Equal(t, int32(-1), Options{Timeout: -time.Second}.expiry())
	assert.Equal(t, int32(4000), Options{Timeout: 4 * time.Second}.expiry())
}
