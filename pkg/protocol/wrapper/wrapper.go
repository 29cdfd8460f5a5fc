// Package wrapper adapts an in-process object to the protocol interface,
// letting a command tree drive simulated instruments with the same
// dispatch machinery as serial hardware. Each addressing node gets its
// own object instance, built lazily from the factory.
package wrapper

import (
	"fmt"
	"sync"

	"labddk/pkg/driver"
)

// Object is the attribute surface a wrapped instance exposes. Get and
// Set report unknown attribute names as errors.
type Object interface {
	Get(name string) (interface{}, error)
	Set(name string, value interface{}) error
}

// Factory builds one object instance per addressing node.
type Factory func() Object

type Protocol struct {
	factory Factory

	mu    sync.Mutex
	nodes map[interface{}]Object
}

var _ driver.Protocol = (*Protocol)(nil)

func New(factory Factory) *Protocol {
	return &Protocol{factory: factory, nodes: map[interface{}]Object{}}
}

// instance returns the object bound to the node, creating it on first
// use. A nil node addresses the shared default instance.
func (p *Protocol) instance(node interface{}) Object {
	p.mu.Lock()
	defer p.mu.Unlock()
	obj, ok := p.nodes[node]
	if !ok {
		obj = p.factory()
		p.nodes[node] = obj
	}
	return obj
}

func (p *Protocol) Read(ctx *driver.Context) (interface{}, error) {
	value, err := p.instance(ctx.Node).Get(ctx.Reader)
	if err != nil {
		return nil, driver.Driverf(ctx.Reader, "%v", err)
	}
	return value, nil
}

func (p *Protocol) Write(ctx *driver.Context) error {
	if err := p.instance(ctx.Node).Set(ctx.Writer, ctx.Value); err != nil {
		return driver.Driverf(ctx.Writer, "%v", err)
	}
	return nil
}

// MapObject is a plain attribute bag satisfying Object, handy for tests
// and for stateless simulations.
type MapObject map[string]interface{}

func (m MapObject) Get(name string) (interface{}, error) {
	value, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("unknown attribute %q", name)
	}
	return value, nil
}

func (m MapObject) Set(name string, value interface{}) error {
	if _, ok := m[name]; !ok {
		return fmt.Errorf("unknown attribute %q", name)
	}
	m[name] = value
	return nil
}
