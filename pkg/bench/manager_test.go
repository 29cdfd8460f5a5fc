package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512B", formatBytes(512))
	assert.Equal(t, "1.0KB", formatBytes(1024))
	assert.Equal(t, "1.5KB", formatBytes(1536))
	assert.Equal(t, "2.0GB", formatBytes(2<<30))
	assert.Equal(t, "1.0TB", formatBytes(1<<40))
}
