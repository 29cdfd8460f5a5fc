package driver

import (
	"sort"
	"strings"
)

// Subsystem is a tree node grouping related commands and nested
// subsystems. A subsystem without a bound protocol forwards requests to
// its parent; the protocol at the root of the chain performs the wire
// exchange. The tree is built at driver construction time and is not
// mutated afterwards, so traversal needs no locking.
type Subsystem struct {
	name     string
	mnemonic string
	index    int
	protocol Protocol
	parent   *Subsystem
	commands map[string]*Command
	children map[string]*Subsystem
}

type SubsystemOption func(*Subsystem)

// WithMnemonic sets the wire name used by path-based protocols, e.g. the
// SCPI "SOURce" element.
func WithMnemonic(mnemonic string) SubsystemOption {
	return func(s *Subsystem) { s.mnemonic = mnemonic }
}

// WithIndex sets the numeric address used by register-page or process
// numbered protocols.
func WithIndex(index int) SubsystemOption {
	return func(s *Subsystem) { s.index = index }
}

func WithProtocol(p Protocol) SubsystemOption {
	return func(s *Subsystem) { s.protocol = p }
}

func NewSubsystem(name string, opts ...SubsystemOption) *Subsystem {
	s := &Subsystem{
		name:     name,
		commands: make(map[string]*Command),
		children: make(map[string]*Subsystem),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Subsystem) Name() string     { return s.name }
func (s *Subsystem) Mnemonic() string { return s.mnemonic }
func (s *Subsystem) Index() int       { return s.index }

// Bind attaches the protocol serving this subsystem and its descendants.
func (s *Subsystem) Bind(p Protocol) *Subsystem {
	s.protocol = p
	return s
}

// AddCommand registers a named command and takes ownership of it. The
// parent pointer is set exactly once, at first attachment; attaching the
// same command elsewhere afterwards does not re-parent it.
func (s *Subsystem) AddCommand(name string, c *Command) *Subsystem {
	if c.owner == nil {
		c.owner = s
	}
	s.commands[name] = c
	return s
}

// AddSubsystem registers a named child subsystem; the parent pointer is
// set exactly once, like AddCommand.
func (s *Subsystem) AddSubsystem(name string, child *Subsystem) *Subsystem {
	if child.parent == nil {
		child.parent = s
	}
	s.children[name] = child
	return s
}

func (s *Subsystem) Command(name string) *Command {
	return s.commands[name]
}

func (s *Subsystem) Child(name string) *Subsystem {
	return s.children[name]
}

// Lookup resolves a dot separated path such as "source.voltage" to a
// command in the tree.
func (s *Subsystem) Lookup(path string) (*Command, error) {
	node := s
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		node = node.children[part]
		if node == nil {
			return nil, Driverf(path, "no subsystem %q", part)
		}
	}
	c := node.commands[parts[len(parts)-1]]
	if c == nil {
		return nil, Driverf(path, "no command %q", parts[len(parts)-1])
	}
	return c, nil
}

// Walk visits every command in the tree in sorted path order. External
// collaborators use it to discover the command set.
func (s *Subsystem) Walk(fn func(path string, c *Command)) {
	s.walk("", fn)
}

func (s *Subsystem) walk(prefix string, fn func(path string, c *Command)) {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fn(prefix+name, s.commands[name])
	}

	childNames := make([]string, 0, len(s.children))
	for name := range s.children {
		childNames = append(childNames, name)
	}
	sort.Strings(childNames)
	for _, name := range childNames {
		s.children[name].walk(prefix+name+".", fn)
	}
}

// Read forwards the request toward the bound protocol, accumulating the
// traversed subsystems on the context path.
func (s *Subsystem) Read(ctx *Context) (interface{}, error) {
	ctx.Append(s)
	if s.protocol != nil {
		return s.protocol.Read(ctx)
	}
	if s.parent != nil {
		return s.parent.Read(ctx)
	}
	return nil, Driverf(ctx.Reader, "subsystem %q has neither a protocol nor a parent", s.name)
}

func (s *Subsystem) Write(ctx *Context) error {
	ctx.Append(s)
	if s.protocol != nil {
		return s.protocol.Write(ctx)
	}
	if s.parent != nil {
		return s.parent.Write(ctx)
	}
	return Driverf(ctx.Writer, "subsystem %q has neither a protocol nor a parent", s.name)
}
