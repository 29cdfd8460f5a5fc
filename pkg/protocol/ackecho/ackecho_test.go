package ackecho

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"labddk/pkg/driver"
)

func newMeter(script map[string]string) *driver.Subsystem {
	protocol := New(driver.NewScriptTransport(script, "\r"))
	return driver.NewSubsystem("meter", driver.WithProtocol(protocol))
}

func TestReadAcknowledgedQuery(t *testing.T) {
	meter := newMeter(map[string]string{
		"QM\r": "0\rQM,+0.123 VDC\r",
	})
	cmd := driver.NewCommand("QM")
	meter.AddCommand("measure", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, "QM,+0.123 VDC", value)
}

func TestReadWithTransform(t *testing.T) {
	meter := newMeter(map[string]string{
		"QM\r": "0\r\nQM,+47.66 KOhms\r\n",
	})
	cmd := driver.NewCommand("QM",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(secondField))
	meter.AddCommand("measure", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 47.66, value)
}

// secondField parses the numeric part of the second comma separated
// token of a meter answer such as "QM,+47.66 KOhms".
func secondField(value interface{}) (interface{}, error) {
	fields := strings.Split(value.(string), ",")
	if len(fields) < 2 {
		return nil, fmt.Errorf("no measurement in %q", value)
	}
	return strconv.ParseFloat(strings.Fields(fields[1])[0], 64)
}

func TestWriteWithValue(t *testing.T) {
	meter := newMeter(map[string]string{
		"RATE 2\r": "0\r",
	})
	cmd := driver.NewCommand("RATE", driver.WithWriter("RATE"))
	meter.AddCommand("rate", cmd)

	assert.NoError(t, cmd.Write(2, nil))
}

func TestWriteActionWithoutValue(t *testing.T) {
	meter := newMeter(map[string]string{
		"RMP\r": "0\r",
	})
	cmd := driver.NewCommand("RMP",
		driver.WithWriter("RMP"),
		driver.WithAccess(driver.WriteOnly))
	meter.AddCommand("reset", cmd)

	assert.NoError(t, cmd.Write(nil, nil))
}

func TestBadAcknowledgment(t *testing.T) {
	meter := newMeter(map[string]string{
		"QM\r": "1\r",
	})
	cmd := driver.NewCommand("QM")
	meter.AddCommand("measure", cmd)

	_, err := cmd.Read(nil)
	assert.True(t, driver.IsDriverError(err))
	assert.Contains(t, err.Error(), "bad acknowledgment")
}
