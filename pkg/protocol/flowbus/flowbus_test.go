package flowbus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labddk/pkg/driver"
)

func newBus(t *testing.T, script map[string]string, opts ...Option) (*driver.Subsystem, *driver.Subsystem) {
	t.Helper()
	protocol := New(driver.NewScriptTransport(script, "\r\n"), opts...)
	root := driver.NewSubsystem("controller", driver.WithProtocol(protocol))
	process := driver.NewSubsystem("process1", driver.WithIndex(1))
	root.AddSubsystem("process1", process)
	return root, process
}

func TestReadCharParameter(t *testing.T) {
	_, process := newBus(t, map[string]string{
		":06030401010101\r\n": ":05030201010C\r\n",
	})
	cmd := driver.NewCommand("init", driver.WithMeta(Param{Number: 1, Kind: Char}))
	process.AddCommand("init", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), value)
}

func TestReadUintParameter(t *testing.T) {
	_, process := newBus(t, map[string]string{
		":06030401210120\r\n": ":06030201210F9B\r\n",
	})
	cmd := driver.NewCommand("measure", driver.WithMeta(Param{Number: 0, Kind: Uint}))
	process.AddCommand("measure", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(3995), value)
}

func TestWriteCharParameter(t *testing.T) {
	_, process := newBus(t, map[string]string{
		":05030101020A\r\n": ":0403000005\r\n",
	})
	cmd := driver.NewCommand("mode", driver.WithMeta(Param{Number: 2, Kind: Char}))
	process.AddCommand("mode", cmd)

	assert.NoError(t, cmd.Write(10, nil))
}

func TestSecuredWriteLiftsSecurity(t *testing.T) {
	// The unlock byte is chained before the payload, the relock byte
	// follows it, all within one packet.
	protocol := New(driver.NewScriptTransport(map[string]string{
		":0C0301800A40E121000A000A52\r\n": ":0403000005\r\n",
	}, "\r\n"))
	root := driver.NewSubsystem("controller", driver.WithProtocol(protocol))
	process := driver.NewSubsystem("calibration", driver.WithIndex(0x61))
	root.AddSubsystem("calibration", process)
	cmd := driver.NewCommand("gain", driver.WithMeta(Param{Number: 1, Kind: Uint, Secured: true}))
	process.AddCommand("gain", cmd)

	assert.NoError(t, cmd.Write(10, nil))
}

func TestWriteStatusErrorIsHardware(t *testing.T) {
	_, process := newBus(t, map[string]string{
		":05030101020A\r\n": ":0403000405\r\n",
	})
	cmd := driver.NewCommand("mode", driver.WithMeta(Param{Number: 2, Kind: Char}))
	process.AddCommand("mode", cmd)

	err := cmd.Write(10, nil)
	assert.True(t, driver.IsHardwareError(err))
	assert.Contains(t, err.Error(), "parameter error")
}

func TestNodeFromContext(t *testing.T) {
	_, process := newBus(t, map[string]string{
		":06070401010101\r\n": ":05070201010C\r\n",
	})
	cmd := driver.NewCommand("init", driver.WithMeta(Param{Number: 1, Kind: Char}))
	process.AddCommand("init", cmd)

	value, err := cmd.Read(7)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), value)
}

func TestReadFloatParameter(t *testing.T) {
	// 0x41200000 is 10.0 in IEEE 754.
	_, process := newBus(t, map[string]string{
		":06030401410141\r\n": ":080302014141200000\r\n",
	})
	cmd := driver.NewCommand("setpoint", driver.WithMeta(Param{Number: 1, Kind: Float}))
	process.AddCommand("setpoint", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, float64(10), value)
}

func TestCommandWithoutMetadata(t *testing.T) {
	_, process := newBus(t, nil)
	cmd := driver.NewCommand("orphan")
	process.AddCommand("orphan", cmd)

	_, err := cmd.Read(nil)
	assert.True(t, driver.IsDriverError(err))
}

func TestParseRejectsBadLength(t *testing.T) {
	_, err := parse([]byte{0x05, 0x03, 0x00, 0x00, 0x05}, Char)
	assert.Error(t, err)
}

func TestUnframeRejectsMissingStartByte(t *testing.T) {
	_, err := unframe("0403000005\r\n")
	assert.Error(t, err)
}
