package virtual

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProportionalOutput(t *testing.T) {
	c := NewPidController()
	c.Setpoint = 50.0

	now := time.Now()
	assert.Equal(t, 40.0, c.ComputeOutput(30.0, now))
}

func TestOutputClampsToVmax(t *testing.T) {
	c := NewPidController()
	c.Setpoint = 200.0

	assert.Equal(t, 100.0, c.ComputeOutput(0.0, time.Now()))
}

func TestIntegralAccumulates(t *testing.T) {
	c := NewPidController()
	c.Integral = 1.0
	c.Setpoint = 50.0
	c.Reset()

	now := time.Now()
	first := c.ComputeOutput(40.0, now)
	assert.InDelta(t, 20.0, first, 1e-6)

	// one error sample of 10 accumulated over one second
	second := c.ComputeOutput(40.0, now.Add(time.Second))
	assert.InDelta(t, 30.0, second, 1e-6)
}

func TestDerivativeReactsToInputChange(t *testing.T) {
	c := NewPidController()
	c.Derivative = 1.0
	c.Setpoint = 0.0
	c.Reset()

	now := time.Now()
	c.ComputeOutput(0.0, now)
	output := c.ComputeOutput(10.0, now.Add(time.Second))
	// p = -20, d = 10, vmin clamps at 0
	assert.Equal(t, 0.0, output)

	c.Vmin = -100.0
	c.Reset()
	c.ComputeOutput(0.0, now)
	output = c.ComputeOutput(10.0, now.Add(time.Second))
	assert.InDelta(t, -10.0, output, 1e-6)
}

func TestStandardFormTimes(t *testing.T) {
	c := NewPidController()

	assert.Equal(t, 0.0, c.IntegralTime(), "integral term off by default")
	c.SetIntegralTime(10.0)
	assert.InDelta(t, 0.2, c.Integral, 1e-9)
	assert.InDelta(t, 10.0, c.IntegralTime(), 1e-9)

	c.SetDerivativeTime(5.0)
	assert.InDelta(t, 10.0, c.Derivative, 1e-9)
	assert.InDelta(t, 5.0, c.DerivativeTime(), 1e-9)
}

func TestAntiWindupSlowsIntegral(t *testing.T) {
	c := NewPidController()
	c.Integral = 1.0
	c.Setpoint = 200.0
	c.Reset()

	now := time.Now()
	// saturated output accumulates only a quarter of the error
	assert.Equal(t, 100.0, c.ComputeOutput(0.0, now))
	assert.InDelta(t, 0.25*200.0, c.integral, 1e-6)
}
