package xonxoff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labddk/pkg/driver"
)

const pause = "\x13\x11"

func newController(script map[string]string) *driver.Subsystem {
	protocol := New(driver.NewScriptTransport(script, "\r"))
	return driver.NewSubsystem("controller", driver.WithProtocol(protocol))
}

func TestReadSetpoint(t *testing.T) {
	controller := newController(map[string]string{
		"? SP1\r": pause + "20.5\r",
	})
	cmd := driver.NewCommand("SP1", driver.WithWriter("SP1"))
	controller.AddCommand("setpoint", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 20.5, value)
}

func TestUnpluggedSensor(t *testing.T) {
	controller := newController(map[string]string{
		"? IN1\r": pause + "-----\r",
	})
	cmd := driver.NewCommand("IN1")
	controller.AddCommand("measure", cmd)

	_, err := cmd.Read(nil)
	assert.True(t, driver.IsHardwareError(err))
	assert.Contains(t, err.Error(), "unplugged")
}

func TestWriteChecksErrorRegister(t *testing.T) {
	controller := newController(map[string]string{
		"= SP1 25\r": pause,
		"? ER2\r":    pause + "0\r",
	})
	cmd := driver.NewCommand("SP1", driver.WithWriter("SP1"))
	controller.AddCommand("setpoint", cmd)

	assert.NoError(t, cmd.Write(25, nil))
}

func TestWriteOutOfLimit(t *testing.T) {
	controller := newController(map[string]string{
		"= SP1 9999\r": pause,
		"? ER2\r":      pause + "25\r",
	})
	cmd := driver.NewCommand("SP1", driver.WithWriter("SP1"))
	controller.AddCommand("setpoint", cmd)

	err := cmd.Write(9999, nil)
	assert.True(t, driver.IsHardwareError(err))
	assert.Contains(t, err.Error(), "Input out of limit")
}

func TestBadHandshake(t *testing.T) {
	controller := newController(map[string]string{
		"? SP1\r": "AB20.5\r",
	})
	cmd := driver.NewCommand("SP1")
	controller.AddCommand("setpoint", cmd)

	_, err := cmd.Read(nil)
	assert.True(t, driver.IsDriverError(err))
	assert.Contains(t, err.Error(), "handshake")
}
