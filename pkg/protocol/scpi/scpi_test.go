package scpi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labddk/pkg/driver"
)

func TestShortForm(t *testing.T) {
	for longform, short := range map[string]string{
		"SOURce":         "SOUR",
		"SOURce:VOLTage": "SOUR:VOLT",
		"*IDN":           "*IDN",
		"OUTPut1":        "OUTP1",
	} {
		assert.Equal(t, short, ShortForm(longform), longform)
	}
}

func newSource(script map[string]string) *driver.Subsystem {
	protocol := New(driver.NewScriptTransport(script, "\n"))
	root := driver.NewSubsystem("source", driver.WithProtocol(protocol))
	source := driver.NewSubsystem("source", driver.WithMnemonic("SOURce"))
	root.AddSubsystem("source", source)
	return source
}

func TestReadHierarchicalPath(t *testing.T) {
	source := newSource(map[string]string{
		"SOUR:VOLT?\n": "1.500\n",
	})
	cmd := driver.NewCommand("VOLTage", driver.WithWriter("VOLTage"))
	source.AddCommand("voltage", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, "1.500", value)
}

func TestReadWithFloatTransform(t *testing.T) {
	source := newSource(map[string]string{
		"SOUR:VOLT?\n": "1.7\n",
	})
	cmd := driver.NewCommand("VOLTage", driver.WithReadTransform(driver.Float))
	source.AddCommand("voltage", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 1.7, value)
}

func TestWriteFormatsBooleans(t *testing.T) {
	source := newSource(map[string]string{
		"SOUR:OUTP ON\n": "",
	})
	cmd := driver.NewCommand("OUTPut", driver.WithWriter("OUTPut"))
	source.AddCommand("output", cmd)

	assert.NoError(t, cmd.Write(true, nil))
}

func TestRootLevelCommandSkipsUnnamedSubsystems(t *testing.T) {
	protocol := New(driver.NewScriptTransport(map[string]string{
		"*IDN?\n": "ACME,4000,0,1.0\n",
	}, "\n"))
	root := driver.NewSubsystem("instrument", driver.WithProtocol(protocol))
	cmd := driver.NewCommand("*IDN")
	root.AddCommand("identification", cmd)

	value, err := cmd.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, "ACME,4000,0,1.0", value)
}

func TestEmptyAnswerIsDriverError(t *testing.T) {
	source := newSource(map[string]string{
		"SOUR:VOLT?\n": "",
	})
	cmd := driver.NewCommand("VOLTage")
	source.AddCommand("voltage", cmd)

	_, err := cmd.Read(nil)
	assert.True(t, driver.IsDriverError(err))
}
