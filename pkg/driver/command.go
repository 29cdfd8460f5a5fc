package driver

// Transform converts a value on its way from or to the wire. Transforms
// are pure functions; the identity is used when none is given.
type Transform func(value interface{}) (interface{}, error)

// Observer receives read notifications from a Command.
type Observer func(value interface{}, node interface{})

// Command describes one addressable operation on an instrument: the
// mnemonics used to query and set it, its access mode, advisory bounds and
// the transforms applied to raw wire values. Commands are built
// declaratively when a driver is instantiated and attached to exactly one
// Subsystem.
type Command struct {
	reader    string
	writer    string
	access    Access
	readFn    Transform
	writeFn   Transform
	minimum   *float64
	maximum   *float64
	meta      interface{}
	doc       string
	owner     *Subsystem
	observers []Observer
}

type CommandOption func(*Command)

// WithWriter sets the write mnemonic; it defaults to the read mnemonic.
func WithWriter(writer string) CommandOption {
	return func(c *Command) { c.writer = writer }
}

func WithAccess(access Access) CommandOption {
	return func(c *Command) { c.access = access }
}

// WithBounds records advisory minimum and maximum values. The bounds are
// metadata for callers; Write never clamps or rejects out-of-range values,
// some drivers deliberately write past them during calibration.
func WithBounds(minimum, maximum float64) CommandOption {
	return func(c *Command) {
		c.minimum, c.maximum = &minimum, &maximum
	}
}

func WithReadTransform(fn Transform) CommandOption {
	return func(c *Command) { c.readFn = fn }
}

func WithWriteTransform(fn Transform) CommandOption {
	return func(c *Command) { c.writeFn = fn }
}

// WithMeta attaches protocol specific metadata, e.g. flowbus parameter
// kind and security flags.
func WithMeta(meta interface{}) CommandOption {
	return func(c *Command) { c.meta = meta }
}

func WithDoc(doc string) CommandOption {
	return func(c *Command) { c.doc = doc }
}

func NewCommand(reader string, opts ...CommandOption) *Command {
	c := &Command{
		reader: reader,
		writer: reader,
		access: ReadWrite,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Command) Reader() string    { return c.reader }
func (c *Command) Writer() string    { return c.writer }
func (c *Command) Access() Access    { return c.access }
func (c *Command) Doc() string       { return c.doc }
func (c *Command) Meta() interface{} { return c.meta }

func (c *Command) Minimum() (float64, bool) {
	if c.minimum == nil {
		return 0, false
	}
	return *c.minimum, true
}

func (c *Command) Maximum() (float64, bool) {
	if c.maximum == nil {
		return 0, false
	}
	return *c.maximum, true
}

// SetBounds updates the advisory bounds. Some drivers read the actual
// limits from the hardware at startup and update them here.
func (c *Command) SetBounds(minimum, maximum float64) {
	c.minimum, c.maximum = &minimum, &maximum
}

// Subscribe registers an observer notified after every successful Read.
// Observers are expected to be registered at driver construction time.
func (c *Command) Subscribe(fn Observer) {
	c.observers = append(c.observers, fn)
}

// Read queries the instrument and returns the transformed value. The
// optional node addresses one station on a multi-drop bus; pass nil for
// single-instrument transports.
func (c *Command) Read(node interface{}) (interface{}, error) {
	if c.access == WriteOnly {
		return nil, Driverf(c.reader, "command is write only")
	}
	if c.owner == nil {
		return nil, Driverf(c.reader, "command is not attached to a subsystem")
	}
	ctx := newContext(c, node)
	raw, err := c.owner.Read(ctx)
	if err != nil {
		return nil, err
	}
	value := raw
	if c.readFn != nil {
		if value, err = c.readFn(raw); err != nil {
			return nil, Driverf(c.reader, "bad response %v: %v", raw, err)
		}
	}
	for _, fn := range c.observers {
		fn(value, node)
	}
	return value, nil
}

// Write sets a value on the instrument. Write-only commands accept a nil
// value (pure actions); every other access mode requires one.
func (c *Command) Write(value, node interface{}) error {
	if c.access == ReadOnly {
		return Driverf(c.writer, "command is read only")
	}
	if value == nil && c.access != WriteOnly {
		return Driverf(c.writer, "a value is required")
	}
	if value != nil && c.writeFn != nil {
		var err error
		if value, err = c.writeFn(value); err != nil {
			return Driverf(c.writer, "bad value %v: %v", value, err)
		}
	}
	if c.owner == nil {
		return Driverf(c.writer, "command is not attached to a subsystem")
	}
	ctx := newContext(c, node)
	ctx.Value = value
	return c.owner.Write(ctx)
}
