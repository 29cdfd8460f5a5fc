package driver

// Context is the one-shot request object threaded from a Command through
// its chain of Subsystems to the bound Protocol. It carries the command's
// mnemonics, the value being written, the optional node address and the
// traversal path, leaf first.
type Context struct {
	Reader  string
	Writer  string
	Value   interface{}
	Node    interface{}
	Path    []*Subsystem
	Command *Command
}

func newContext(c *Command, node interface{}) *Context {
	return &Context{
		Reader:  c.reader,
		Writer:  c.writer,
		Node:    node,
		Command: c,
	}
}

// Append pushes a subsystem onto the traversal path during the forwarding
// walk toward the protocol.
func (ctx *Context) Append(s *Subsystem) {
	ctx.Path = append(ctx.Path, s)
}

// Subsystem returns the leaf subsystem, the one that defines this
// command's addressing context. Protocols with hierarchical or process
// numbering read their index from it.
func (ctx *Context) Subsystem() *Subsystem {
	if len(ctx.Path) == 0 {
		return nil
	}
	return ctx.Path[0]
}
