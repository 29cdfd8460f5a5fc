package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt63nStaysBelowBound(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := Int63n()
		assert.GreaterOrEqual(t, n, int64(0))
		assert.Less(t, n, int64(versionBound))
	}
}

func TestStringN(t *testing.T) {
	s := StringN(16)
	assert.Len(t, s, 16)
	assert.NotEqual(t, s, StringN(16))
}
