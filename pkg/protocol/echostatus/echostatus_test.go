package echostatus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labddk/pkg/driver"
)

func newLaser(script map[string]string) *driver.Subsystem {
	protocol := New(driver.NewScriptTransport(script, "\r"))
	root := driver.NewSubsystem("laser", driver.WithProtocol(protocol))
	main := driver.NewSubsystem("main", driver.WithIndex(0))
	root.AddSubsystem("main", main)
	return main
}

func TestReadEchoedRegister(t *testing.T) {
	main := newLaser(map[string]string{
		":r 00E\r": ":r 00E\r:42\r:OK\r",
	})
	cmd := driver.NewCommand("0E", driver.WithWriter("0E"))
	main.AddCommand("power", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), value)
}

func TestReadToleratesStatusPadding(t *testing.T) {
	main := newLaser(map[string]string{
		":r 00E\r": ":r 00E\r\n:0\r\n:OK   \r\n",
	})
	cmd := driver.NewCommand("0E", driver.WithAccess(driver.ReadOnly))
	main.AddCommand("power", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), value)
}

func TestWriteEchoedRegister(t *testing.T) {
	main := newLaser(map[string]string{
		":w 00E 50\r": ":w 00E 50\r:OK\r",
	})
	cmd := driver.NewCommand("0E", driver.WithWriter("0E"))
	main.AddCommand("power", cmd)

	assert.NoError(t, cmd.Write(50, nil))
}

func TestEchoMismatch(t *testing.T) {
	main := newLaser(map[string]string{
		":r 00E\r": ":r 00F\r:42\r:OK\r",
	})
	cmd := driver.NewCommand("0E")
	main.AddCommand("power", cmd)

	_, err := cmd.Read(nil)
	assert.True(t, driver.IsDriverError(err))
	assert.Contains(t, err.Error(), "echo mismatch")
}

func TestStatusError(t *testing.T) {
	main := newLaser(map[string]string{
		":w 00E 9999\r": ":w 00E 9999\r:ER 3\r",
	})
	cmd := driver.NewCommand("0E", driver.WithWriter("0E"))
	main.AddCommand("power", cmd)

	err := cmd.Write(9999, nil)
	assert.True(t, driver.IsHardwareError(err))
	assert.Contains(t, err.Error(), "value out of range")
}

func TestSubsystemIndexPrefixesRegister(t *testing.T) {
	protocol := New(driver.NewScriptTransport(map[string]string{
		":r AD2\r": ":r AD2\r:7\r:OK\r",
	}, "\r"))
	root := driver.NewSubsystem("laser", driver.WithProtocol(protocol))
	page := driver.NewSubsystem("diagnostics", driver.WithIndex(0x0a))
	root.AddSubsystem("diagnostics", page)
	cmd := driver.NewCommand("D2")
	page.AddCommand("temperature", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), value)
}
