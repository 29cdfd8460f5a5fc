package drivers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labddk/pkg/driver"
)

func TestModels(t *testing.T) {
	assert.Equal(t,
		[]string{"cs400", "elFlow", "fluke18x", "scpi", "series988", "virtual"},
		Models())
}

func TestBuildUnknownModel(t *testing.T) {
	_, err := Build("nonexistent", nil)
	assert.True(t, driver.IsDriverError(err))
}

func TestFL18x(t *testing.T) {
	script := map[string]string{
		"QM\r": "0\rQM,+47.66 KOhms\r",
	}
	meter, err := Build("fluke18x", driver.NewScriptTransport(script, "\r"))
	assert.NoError(t, err)

	value, err := meter.Command("measure").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 47.66, value)

	unit, err := meter.Command("unit").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, "KOhms", unit)
}

func TestSeries988(t *testing.T) {
	script := map[string]string{
		"? C1\r":      "\x13\x11" + "21.3\r",
		"= SP1 150\r": "\x13\x11",
		"? ER2\r":     "\x13\x11" + "0\r",
		"? PB1A\r":    "\x13\x11" + "2.5\r",
	}
	controller, err := Build("series988", driver.NewScriptTransport(script, "\r"))
	assert.NoError(t, err)

	value, err := controller.Command("temperature").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 21.3, value)

	assert.NoError(t, controller.Command("setpoint").Write(150, nil))

	gain, err := controller.Child("operation_pid_A").Command("gain").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 2.5, gain)
}

func TestCS400(t *testing.T) {
	script := map[string]string{
		":r 50C\r": ":r 50C\r:215\r:OK\r",
	}
	laser, err := Build("cs400", driver.NewScriptTransport(script, "\r"))
	assert.NoError(t, err)

	// fixed point register scaled by 0.1 on page 5
	value, err := laser.Child("laser").Command("temperature").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 21.5, value)
}

func TestELFlowMeasureScale(t *testing.T) {
	// 16000 counts is 50 percent
	script := map[string]string{
		":06030401210120\r\n": ":06030201213E80\r\n",
	}
	flow, err := Build("elFlow", driver.NewScriptTransport(script, "\r\n"))
	assert.NoError(t, err)

	value, err := flow.Child("main").Command("measure").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, value)
}

func TestELFlowSetpointWrite(t *testing.T) {
	// 10 percent is 3200 counts, 0x0C80
	script := map[string]string{
		":06030101210C80\r\n": ":0403000005\r\n",
	}
	flow, err := Build("elFlow", driver.NewScriptTransport(script, "\r\n"))
	assert.NoError(t, err)

	assert.NoError(t, flow.Child("main").Command("setpoint").Write(10, nil))
}

func TestELFlowNegativeMeasure(t *testing.T) {
	value, err := pctFromCounts(int64(65536 - 320))
	assert.NoError(t, err)
	assert.InDelta(t, -1.0, value.(float64), 1e-9)
}

func TestSCPISource(t *testing.T) {
	script := map[string]string{
		"SOUR:VOLT?\n":    "1.7\n",
		"SOUR:VOLT 2.5\n": "",
		"*IDN?\n":         "ACME,4000,0,1.0\n",
	}
	source, err := Build("scpi", driver.NewScriptTransport(script, "\n"))
	assert.NoError(t, err)

	value, err := source.Child("source").Command("voltage").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 1.7, value)

	assert.NoError(t, source.Child("source").Command("voltage").Write(2.5, nil))

	idn, err := source.Command("identification").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, "ACME,4000,0,1.0", idn)
}

func TestVirtualNeedsNoTransport(t *testing.T) {
	instrument, err := Build("virtual", nil)
	assert.NoError(t, err)

	assert.NoError(t, instrument.Child("pid").Command("setpoint").Write(25, nil))
	value, err := instrument.Child("pid").Command("setpoint").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 25.0, value)
}
