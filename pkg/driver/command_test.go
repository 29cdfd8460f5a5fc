package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder is a protocol double capturing the context it was handed.
type recorder struct {
	value interface{}
	err   error
	last  *Context
}

func (r *recorder) Read(ctx *Context) (interface{}, error) {
	r.last = ctx
	return r.value, r.err
}

func (r *recorder) Write(ctx *Context) error {
	r.last = ctx
	return r.err
}

func TestReadOnlyCommandRejectsWrites(t *testing.T) {
	root := NewSubsystem("root", WithProtocol(&recorder{}))
	cmd := NewCommand("TEMP", WithAccess(ReadOnly))
	root.AddCommand("temperature", cmd)

	err := cmd.Write(20, nil)
	assert.True(t, IsDriverError(err))
	assert.Contains(t, err.Error(), "read only")
}

func TestWriteOnlyCommandRejectsReads(t *testing.T) {
	root := NewSubsystem("root", WithProtocol(&recorder{}))
	cmd := NewCommand("RST", WithAccess(WriteOnly))
	root.AddCommand("reset", cmd)

	_, err := cmd.Read(nil)
	assert.True(t, IsDriverError(err))
	assert.Contains(t, err.Error(), "write only")
}

func TestWriteRequiresValueUnlessWriteOnly(t *testing.T) {
	root := NewSubsystem("root", WithProtocol(&recorder{}))
	setpoint := NewCommand("SP")
	reset := NewCommand("RST", WithAccess(WriteOnly))
	root.AddCommand("setpoint", setpoint).AddCommand("reset", reset)

	err := setpoint.Write(nil, nil)
	assert.True(t, IsDriverError(err))
	assert.Contains(t, err.Error(), "a value is required")

	assert.NoError(t, reset.Write(nil, nil), "write only commands are actions")
}

func TestBoundsAreAdvisory(t *testing.T) {
	proto := &recorder{}
	root := NewSubsystem("root", WithProtocol(proto))
	cmd := NewCommand("SP", WithBounds(0, 100))
	root.AddCommand("setpoint", cmd)

	minimum, ok := cmd.Minimum()
	assert.True(t, ok)
	assert.Equal(t, 0.0, minimum)
	maximum, ok := cmd.Maximum()
	assert.True(t, ok)
	assert.Equal(t, 100.0, maximum)

	// out of range values still go to the wire
	assert.NoError(t, cmd.Write(150, nil))
	assert.Equal(t, 150, proto.last.Value)
}

func TestReadTransformAndObservers(t *testing.T) {
	proto := &recorder{value: "205"}
	root := NewSubsystem("root", WithProtocol(proto))
	cmd := NewCommand("TEMP", WithReadTransform(Scale(0.1)))
	root.AddCommand("temperature", cmd)

	var seen []interface{}
	cmd.Subscribe(func(value, node interface{}) {
		seen = append(seen, value)
	})

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 20.5, value)
	assert.Equal(t, []interface{}{20.5}, seen, "observers see the transformed value")
}

func TestObserversNotNotifiedOnFailure(t *testing.T) {
	proto := &recorder{err: Driverf("TEMP", "no answer")}
	root := NewSubsystem("root", WithProtocol(proto))
	cmd := NewCommand("TEMP")
	root.AddCommand("temperature", cmd)

	notified := false
	cmd.Subscribe(func(value, node interface{}) { notified = true })

	_, err := cmd.Read(nil)
	assert.Error(t, err)
	assert.False(t, notified)
}

func TestWriteTransform(t *testing.T) {
	proto := &recorder{}
	root := NewSubsystem("root", WithProtocol(proto))
	cmd := NewCommand("SP", WithWriteTransform(Scale(10)))
	root.AddCommand("setpoint", cmd)

	assert.NoError(t, cmd.Write(20.5, nil))
	assert.Equal(t, 205.0, proto.last.Value)
}

func TestDetachedCommand(t *testing.T) {
	cmd := NewCommand("TEMP")

	_, err := cmd.Read(nil)
	assert.True(t, IsDriverError(err))

	err = cmd.Write(20, nil)
	assert.True(t, IsDriverError(err))
}

func TestWriterDefaultsToReader(t *testing.T) {
	cmd := NewCommand("SP")
	assert.Equal(t, "SP", cmd.Writer())

	cmd = NewCommand("SP?", WithWriter("SP"))
	assert.Equal(t, "SP?", cmd.Reader())
	assert.Equal(t, "SP", cmd.Writer())
}
