package wrapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labddk/pkg/driver"
)

func TestReadAndWriteAttributes(t *testing.T) {
	protocol := New(func() Object {
		return MapObject{"setpoint": 20.0}
	})
	root := driver.NewSubsystem("simulated", driver.WithProtocol(protocol))
	cmd := driver.NewCommand("setpoint", driver.WithWriter("setpoint"))
	root.AddCommand("setpoint", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, value)

	assert.NoError(t, cmd.Write(25.0, nil))
	value, err = cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 25.0, value)
}

func TestEachNodeGetsOwnInstance(t *testing.T) {
	protocol := New(func() Object {
		return MapObject{"setpoint": 20.0}
	})
	root := driver.NewSubsystem("simulated", driver.WithProtocol(protocol))
	cmd := driver.NewCommand("setpoint", driver.WithWriter("setpoint"))
	root.AddCommand("setpoint", cmd)

	assert.NoError(t, cmd.Write(30.0, 1))

	value, err := cmd.Read(2)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, value, "node 2 keeps its own state")

	value, err = cmd.Read(1)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, value)
}

func TestUnknownAttribute(t *testing.T) {
	protocol := New(func() Object { return MapObject{} })
	root := driver.NewSubsystem("simulated", driver.WithProtocol(protocol))
	cmd := driver.NewCommand("missing")
	root.AddCommand("missing", cmd)

	_, err := cmd.Read(nil)
	assert.True(t, driver.IsDriverError(err))
	assert.Contains(t, err.Error(), "unknown attribute")
}
