package driver

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"k8s.io/klog/v2"
)

const _defaultSerialTimeout = 1 * time.Second

// SerialTransport drives a serial port. Reads are bounded by the
// configured timeout; a timeout surfaces as a short or empty result, not
// as an error.
type SerialTransport struct {
	port    serial.Port
	newline string
	timeout time.Duration
}

type SerialOption func(*SerialTransport)

// WithNewline sets the line terminator used by ReadLine; "\n" by default.
func WithNewline(newline string) SerialOption {
	return func(t *SerialTransport) { t.newline = newline }
}

func WithTimeout(timeout time.Duration) SerialOption {
	return func(t *SerialTransport) { t.timeout = timeout }
}

// OpenSerial opens the named serial device with the given mode. The mode
// carries baudrate, parity, data and stop bits.
func OpenSerial(device string, mode *serial.Mode, opts ...SerialOption) (*SerialTransport, error) {
	port, err := serial.Open(device, mode)
	if err != nil {
		klog.V(2).InfoS("Failed to open serial port", "device", device, "err", err)
		return nil, errors.Wrapf(err, "open %s", device)
	}
	t := &SerialTransport{
		port:    port,
		newline: "\n",
		timeout: _defaultSerialTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := port.SetReadTimeout(t.timeout); err != nil {
		port.Close()
		return nil, errors.Wrapf(err, "set read timeout on %s", device)
	}
	return t, nil
}

func (t *SerialTransport) Write(p []byte) error {
	n, err := t.port.Write(p)
	if err != nil {
		klog.V(2).InfoS("Failed to write to serial port", "err", err)
		return errors.Wrap(err, "serial write")
	}
	klog.V(5).InfoS("Wrote request to serial port", "bytes", p, "length", n)
	return nil
}

// Read reads up to n bytes, returning fewer when the port times out.
func (t *SerialTransport) Read(n int) ([]byte, error) {
	buf := make([]byte, n)
	total := 0
	for total < n {
		read, err := t.port.Read(buf[total:])
		if err != nil {
			klog.V(2).InfoS("Failed to read from serial port", "err", err)
			return buf[:total], errors.Wrap(err, "serial read")
		}
		if read == 0 {
			// timed out
			break
		}
		total += read
	}
	return buf[:total], nil
}

// ReadLine accumulates bytes until the newline terminator or a timeout.
func (t *SerialTransport) ReadLine() (string, error) {
	var line strings.Builder
	c := make([]byte, 1)
	for !strings.HasSuffix(line.String(), t.newline) {
		read, err := t.port.Read(c)
		if err != nil {
			return line.String(), errors.Wrap(err, "serial read")
		}
		if read == 0 {
			break
		}
		line.Write(c[:read])
	}
	return line.String(), nil
}

func (t *SerialTransport) Close() error {
	return t.port.Close()
}
