// Package echostatus implements the echo verified ASCII protocol of
// Amtron style laser controllers. The controller echoes every request,
// answers queries on a ":" prefixed line and closes each exchange with a
// ":OK" or ":ER <code>" status line.
package echostatus

import (
	"fmt"
	"strconv"
	"strings"

	"labddk/pkg/driver"
)

var errorTable = map[int]string{
	1: "unknown command",
	2: "invalid register",
	3: "value out of range",
	4: "access denied",
	5: "device busy",
	6: "laser not ready",
	7: "interlock open",
	8: "internal fault",
}

type Protocol struct {
	transport driver.Transport
}

var _ driver.Protocol = (*Protocol)(nil)

func New(transport driver.Transport) *Protocol {
	return &Protocol{transport: transport}
}

func (p *Protocol) Read(ctx *driver.Context) (interface{}, error) {
	cmd := fmt.Sprintf(":r %X%s\r", ctx.Subsystem().Index(), ctx.Reader)
	if err := p.send(cmd); err != nil {
		return nil, err
	}
	answer, err := p.transport.ReadLine()
	if err != nil {
		return nil, err
	}
	if err := p.checkStatus(cmd); err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if !strings.HasPrefix(answer, ":") {
		return nil, driver.Driverf(cmd, "unexpected answer %q", answer)
	}
	value, err := strconv.ParseInt(answer[1:], 10, 64)
	if err != nil {
		return nil, driver.Driverf(cmd, "unparseable answer %q", answer)
	}
	return value, nil
}

func (p *Protocol) Write(ctx *driver.Context) error {
	cmd := fmt.Sprintf(":w %X%s %v\r", ctx.Subsystem().Index(), ctx.Writer, ctx.Value)
	if err := p.send(cmd); err != nil {
		return err
	}
	return p.checkStatus(cmd)
}

// send writes the command and verifies the echoed line matches it.
func (p *Protocol) send(cmd string) error {
	if err := p.transport.Write([]byte(cmd)); err != nil {
		return err
	}
	echo, err := p.transport.ReadLine()
	if err != nil {
		return err
	}
	if strings.TrimSpace(echo) != strings.TrimSpace(cmd) {
		return driver.Driverf(cmd, "echo mismatch %q", strings.TrimSpace(echo))
	}
	return nil
}

// checkStatus classifies the closing status line: ":OK" for success,
// ":ER <code>" for an instrument fault, anything else is a framing
// defect.
func (p *Protocol) checkStatus(cmd string) error {
	status, err := p.transport.ReadLine()
	if err != nil {
		return err
	}
	status = strings.TrimSpace(status)
	switch {
	case strings.HasPrefix(status, ":OK"):
		return nil
	case strings.HasPrefix(status, ":ER"):
		code, err := strconv.Atoi(strings.TrimSpace(status[3:]))
		if err != nil {
			return driver.Driverf(cmd, "unparseable status %q", status)
		}
		if reason, ok := errorTable[code]; ok {
			return driver.Hardwaref(cmd, "%s (status %s)", reason, status)
		}
		return driver.Hardwaref(cmd, "instrument error %d", code)
	default:
		return driver.Driverf(cmd, "unknown status %q", status)
	}
}
