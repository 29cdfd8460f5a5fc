package virtual

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"labddk/pkg/driver"
)

// fakeClock steps deterministically through the control loop.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time       { return c.current }
func (c *fakeClock) tick(d time.Duration) { c.current = c.current.Add(d) }

func TestSetpointRoundTrip(t *testing.T) {
	instrument := NewInstrument()
	setpoint := instrument.Child("pid").Command("setpoint")

	assert.NoError(t, setpoint.Write(25, nil))
	value, err := setpoint.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 25.0, value)
}

func TestNodesRunIndependentLoops(t *testing.T) {
	instrument := NewInstrument()
	setpoint := instrument.Child("pid").Command("setpoint")

	assert.NoError(t, setpoint.Write(25, "a"))

	value, err := setpoint.Read("b")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, value, "node b keeps the default setpoint")
}

func TestResetIsAnAction(t *testing.T) {
	instrument := NewInstrument()
	reset := instrument.Child("pid").Command("reset")

	assert.NoError(t, reset.Write(nil, nil))

	_, err := reset.Read(nil)
	assert.True(t, driver.IsDriverError(err), "reset is write only")
}

func TestClosedLoopApproachesSetpoint(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	instrument := NewInstrument(WithClock(clock.now))

	assert.NoError(t, instrument.Child("output").Command("noise").Write(0, nil))
	assert.NoError(t, instrument.Child("pid").Command("setpoint").Write(10, nil))

	measure := instrument.Command("measure")
	output := instrument.Command("output")
	var last float64
	for i := 0; i < 200; i++ {
		clock.tick(500 * time.Millisecond)
		value, err := measure.Read(nil)
		assert.NoError(t, err)
		last = value.(float64)
		_, err = output.Read(nil)
		assert.NoError(t, err)
	}

	// proportional-only control settles near Kp*K/(2+Kp*K) of the
	// setpoint, well away from both zero and overshoot
	assert.Greater(t, last, 5.0)
	assert.Less(t, last, 12.0)
}

func TestForcedMeasureRecomputesOutput(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	instrument := NewInstrument(WithClock(clock.now))

	assert.NoError(t, instrument.Child("output").Command("noise").Write(0, nil))
	assert.NoError(t, instrument.Child("pid").Command("setpoint").Write(10, nil))

	// forcing the measure drives the controller output into the model
	assert.NoError(t, instrument.Command("measure").Write(4, nil))
	value, err := instrument.Command("measure").Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, value)

	clock.tick(30 * time.Second)
	response, err := instrument.Command("output").Read(nil)
	assert.NoError(t, err)
	// Kp=2, error=6, gain 5: the model relaxes toward 60
	assert.InDelta(t, 60.0, response.(float64), 5.0)
}
