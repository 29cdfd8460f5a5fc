package driver

import (
	"strings"
)

// Transport is the byte stream endpoint a protocol drives: a serial port
// or a scripted test double. Read returns fewer than n bytes on timeout
// and ReadLine returns what was accumulated so far, possibly empty;
// neither treats a timeout as an error, the protocol decides whether a
// short read is a legitimate timeout or a framing error.
type Transport interface {
	Write(p []byte) error
	Read(n int) ([]byte, error)
	ReadLine() (string, error)
}

// ScriptTransport is a loopback transport mapping formatted requests to
// canned instrument answers, used to exercise drivers without hardware.
type ScriptTransport struct {
	script  map[string]string
	newline string
	pending string
}

// NewScriptTransport builds a scripted transport. Writing a request that
// was never scripted fails with a DriverError.
func NewScriptTransport(script map[string]string, newline string) *ScriptTransport {
	if len(newline) == 0 {
		newline = "\n"
	}
	return &ScriptTransport{script: script, newline: newline}
}

func (t *ScriptTransport) Write(p []byte) error {
	answer, ok := t.script[string(p)]
	if !ok {
		return Driverf(string(p), "request was not scripted")
	}
	t.pending = answer
	return nil
}

func (t *ScriptTransport) Read(n int) ([]byte, error) {
	if n > len(t.pending) {
		n = len(t.pending)
	}
	head := t.pending[:n]
	t.pending = t.pending[n:]
	return []byte(head), nil
}

func (t *ScriptTransport) ReadLine() (string, error) {
	var line strings.Builder
	for !strings.HasSuffix(line.String(), t.newline) {
		c, err := t.Read(1)
		if err != nil {
			return line.String(), err
		}
		if len(c) == 0 {
			// scripted answer exhausted, behaves like a timeout
			break
		}
		line.Write(c)
	}
	return line.String(), nil
}
