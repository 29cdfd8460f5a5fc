// Package ackecho implements the two-letter command protocol of handheld
// digital multimeters. Every request is acknowledged with a "0" line;
// queries are answered on the line that follows.
package ackecho

import (
	"fmt"
	"strings"

	"labddk/pkg/driver"
)

type Protocol struct {
	transport driver.Transport
}

var _ driver.Protocol = (*Protocol)(nil)

func New(transport driver.Transport) *Protocol {
	return &Protocol{transport: transport}
}

func (p *Protocol) Read(ctx *driver.Context) (interface{}, error) {
	cmd := ctx.Reader + "\r"
	if err := p.exchange(cmd); err != nil {
		return nil, err
	}
	answer, err := p.transport.ReadLine()
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(answer), nil
}

func (p *Protocol) Write(ctx *driver.Context) error {
	cmd := ctx.Writer
	if ctx.Value != nil {
		cmd = fmt.Sprintf("%s %v", ctx.Writer, ctx.Value)
	}
	return p.exchange(cmd + "\r")
}

// exchange sends the command and consumes the acknowledgment line. The
// meter answers "0" for no error.
func (p *Protocol) exchange(cmd string) error {
	if err := p.transport.Write([]byte(cmd)); err != nil {
		return err
	}
	ack, err := p.transport.ReadLine()
	if err != nil {
		return err
	}
	if strings.TrimSpace(ack) != "0" {
		return driver.Driverf(cmd, "bad acknowledgment %q", strings.TrimSpace(ack))
	}
	return nil
}
