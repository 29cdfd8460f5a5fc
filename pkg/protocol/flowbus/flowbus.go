// Package flowbus speaks the hex framed binary protocol of mass flow
// and pressure controllers. Requests and answers travel as ":" prefixed
// uppercase hex lines; every parameter is addressed by a process number
// taken from its subsystem and a parameter number declared as command
// metadata.
package flowbus

import (
	"labddk/pkg/driver"
)

const defaultNode = 3

type Protocol struct {
	transport driver.Transport
	node      int
}

type Option func(*Protocol)

// WithNode sets the default node address used when a command is issued
// without an addressing node.
func WithNode(node int) Option {
	return func(p *Protocol) { p.node = node }
}

func New(transport driver.Transport, opts ...Option) *Protocol {
	p := &Protocol{transport: transport, node: defaultNode}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ driver.Protocol = (*Protocol)(nil)

func (p *Protocol) nodeFor(ctx *driver.Context) int {
	switch n := ctx.Node.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return p.node
	}
}

func param(ctx *driver.Context) (Param, error) {
	pr, ok := ctx.Command.Meta().(Param)
	if !ok {
		return Param{}, driver.Driverf(ctx.Reader, "command carries no bus parameter metadata")
	}
	return pr, nil
}

// Read requests one parameter. Instruments answer reads with a write
// message carrying the value, or with a status packet on failure.
func (p *Protocol) Read(ctx *driver.Context) (interface{}, error) {
	pr, err := param(ctx)
	if err != nil {
		return nil, err
	}
	node := p.nodeFor(ctx)
	request := frame(buildRead(node, ctx.Subsystem().Index(), pr))

	msg, err := p.exchange(request, pr.Kind)
	if err != nil {
		return nil, err
	}
	switch msg.command {
	case cmdWrite, cmdWriteNoStatus:
		for _, pv := range msg.values {
			if pv.isSecurity() {
				continue
			}
			return pv.value, nil
		}
		return nil, driver.Driverf(request, "answer carries no value")
	default:
		if msg.status != 0 {
			return nil, driver.Hardwaref(request, "node %d: %s", node, statusMessage(msg.status))
		}
		return nil, driver.Driverf(request, "unexpected status answer to a read")
	}
}

// Write sends one parameter value and checks the returned status.
func (p *Protocol) Write(ctx *driver.Context) error {
	pr, err := param(ctx)
	if err != nil {
		return err
	}
	node := p.nodeFor(ctx)
	packet, err := buildWrite(node, ctx.Subsystem().Index(), pr, ctx.Value)
	if err != nil {
		return driver.Driverf(ctx.Writer, "cannot encode value %v: %v", ctx.Value, err)
	}
	request := frame(packet)

	msg, err := p.exchange(request, pr.Kind)
	if err != nil {
		return err
	}
	if msg.command != cmdStatus {
		return driver.Driverf(request, "expected a status answer, got command %#02x", msg.command)
	}
	if msg.status != 0 {
		return driver.Hardwaref(request, "node %d: %s", node, statusMessage(msg.status))
	}
	return nil
}

func (p *Protocol) exchange(request string, kind Kind) (*message, error) {
	if err := p.transport.Write([]byte(request)); err != nil {
		return nil, err
	}
	line, err := p.transport.ReadLine()
	if err != nil {
		return nil, err
	}
	packet, err := unframe(line)
	if err != nil {
		return nil, driver.Driverf(request, "%v", err)
	}
	msg, err := parse(packet, kind)
	if err != nil {
		return nil, driver.Driverf(request, "%v", err)
	}
	return msg, nil
}

func statusMessage(code byte) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return "unknown status"
}
