package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptTransportExchange(t *testing.T) {
	tr := NewScriptTransport(map[string]string{
		"? T1\r": "20.5\r",
	}, "\r")

	assert.NoError(t, tr.Write([]byte("? T1\r")))
	line, err := tr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "20.5\r", line)
}

func TestScriptTransportUnscriptedRequest(t *testing.T) {
	tr := NewScriptTransport(nil, "\r")

	err := tr.Write([]byte("? T1\r"))
	assert.True(t, IsDriverError(err))
	assert.Contains(t, err.Error(), "not scripted")
}

func TestScriptTransportShortRead(t *testing.T) {
	tr := NewScriptTransport(map[string]string{
		"Q\r": "\x13\x11",
	}, "\r")

	assert.NoError(t, tr.Write([]byte("Q\r")))
	pair, err := tr.Read(2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x13, 0x11}, pair)

	// exhausted script behaves like a timeout, not an error
	rest, err := tr.Read(4)
	assert.NoError(t, err)
	assert.Empty(t, rest)
	line, err := tr.ReadLine()
	assert.NoError(t, err)
	assert.Empty(t, line)
}

func TestScriptTransportMultipleLines(t *testing.T) {
	tr := NewScriptTransport(map[string]string{
		"GO\r": "0\rdone\r",
	}, "\r")

	assert.NoError(t, tr.Write([]byte("GO\r")))
	first, err := tr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "0\r", first)
	second, err := tr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "done\r", second)
}
