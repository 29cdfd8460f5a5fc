// Package xonxoff implements the XON/XOFF framed ASCII protocol of
// Watlow style temperature controllers. The instrument pauses the sender
// with an XOFF/XON byte pair before answering; writes are followed by an
// error register query decoded against the vendor code table.
package xonxoff

import (
	"fmt"
	"strconv"
	"strings"

	"labddk/pkg/driver"
)

const (
	xoff = 0x13
	xon  = 0x11

	// sentinel answered on an unplugged sensor input
	unplugged = "-----"
)

var errorTable = map[int]string{
	0:  "No error",
	1:  "Transmit buffer overflow",
	2:  "Receive buffer overflow",
	3:  "Framing error",
	4:  "Overrun error",
	5:  "Parity error",
	6:  "Talking out of turn",
	7:  "Invalid reply error",
	8:  "Noise error",
	20: "Command not found",
	21: "Prompt not found",
	22: "Incomplete command line",
	23: "Invalid character",
	24: "Number of chars. overflow",
	25: "Input out of limit",
	26: "Read only command",
	27: "Write only command",
	28: "Prompt not active",
}

type Protocol struct {
	transport  driver.Transport
	errorQuery string
}

var _ driver.Protocol = (*Protocol)(nil)

type Option func(*Protocol)

// WithErrorQuery overrides the error register mnemonic, "ER2" by default.
func WithErrorQuery(mnemonic string) Option {
	return func(p *Protocol) { p.errorQuery = mnemonic }
}

func New(transport driver.Transport, opts ...Option) *Protocol {
	p := &Protocol{
		transport:  transport,
		errorQuery: "ER2",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Protocol) Read(ctx *driver.Context) (interface{}, error) {
	cmd := fmt.Sprintf("? %s\r", ctx.Reader)
	if err := p.send(cmd); err != nil {
		return nil, err
	}
	answer, err := p.transport.ReadLine()
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if answer == unplugged {
		return nil, driver.Hardwaref(cmd, "sensor is unplugged")
	}
	value, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return nil, driver.Driverf(cmd, "unparseable answer %q", answer)
	}
	return value, nil
}

func (p *Protocol) Write(ctx *driver.Context) error {
	cmd := fmt.Sprintf("= %s %v\r", ctx.Writer, ctx.Value)
	if err := p.send(cmd); err != nil {
		return err
	}
	return p.checkError(cmd)
}

// send writes the command and consumes the two byte XOFF/XON pause.
func (p *Protocol) send(cmd string) error {
	if err := p.transport.Write([]byte(cmd)); err != nil {
		return err
	}
	pair, err := p.transport.Read(2)
	if err != nil {
		return err
	}
	if len(pair) != 2 || pair[0] != xoff || pair[1] != xon {
		return driver.Driverf(cmd, "bad XON/XOFF handshake % X", pair)
	}
	return nil
}

// checkError queries the error register and maps a non-zero code through
// the vendor table.
func (p *Protocol) checkError(cmd string) error {
	if err := p.send(fmt.Sprintf("? %s\r", p.errorQuery)); err != nil {
		return err
	}
	answer, err := p.transport.ReadLine()
	if err != nil {
		return err
	}
	answer = strings.TrimSpace(answer)
	if strings.HasPrefix(answer, "0") {
		return nil
	}
	code, err := strconv.Atoi(answer)
	if err != nil {
		return driver.Driverf(cmd, "unparseable error code %q", answer)
	}
	reason, ok := errorTable[code]
	if !ok {
		return driver.Driverf(cmd, "unknown error code %d", code)
	}
	return driver.Hardwaref(cmd, "%s", reason)
}
