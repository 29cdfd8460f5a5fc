// Package virtual simulates a complete closed-loop instrument: a
// software PID controller driving a first-order process model, exposed
// through the same command tree interface as real hardware.
package virtual

import (
	"time"
)

// PidController is a software proportional integral derivative
// controller. Gains are held in the ideal form; the standard form times
// are derived through IntegralTime and DerivativeTime. AntiWindup is a
// soft integrator factor, 1.0 disables it, the recommended range is
// 0.005 to 0.25.
type PidController struct {
	Proportional     float64
	Integral         float64
	Derivative       float64
	Vmin             float64
	Vmax             float64
	Setpoint         float64
	AntiWindup       float64
	ProportionalOnPV bool

	oldInput float64
	integral float64
	prevTime time.Time
}

func NewPidController() *PidController {
	return &PidController{
		Proportional: 2.0,
		Vmax:         100.0,
		AntiWindup:   0.25,
		prevTime:     time.Now(),
	}
}

// IntegralTime returns the standard form integral time Ti = Kp/Ki in
// seconds, zero when the integral term is off.
func (c *PidController) IntegralTime() float64 {
	if c.Integral == 0.0 {
		return 0.0
	}
	return c.Proportional / c.Integral
}

func (c *PidController) SetIntegralTime(ti float64) {
	if ti == 0.0 {
		c.Integral = 0.0
		return
	}
	c.Integral = c.Proportional / ti
}

// DerivativeTime returns the standard form derivative time Td = Kd/Kp
// in seconds.
func (c *PidController) DerivativeTime() float64 {
	return c.Derivative / c.Proportional
}

func (c *PidController) SetDerivativeTime(td float64) {
	c.Derivative = c.Proportional * td
}

// Reset restarts the controller clock and clears the accumulated state.
func (c *PidController) Reset() {
	c.prevTime = time.Now()
	c.oldInput = 0.0
	c.integral = 0.0
}

// ComputeOutput returns the next output for the measured process value,
// clamped to [Vmin, Vmax]. While the output saturates, the integral
// accumulates at the AntiWindup fraction of the error.
func (c *PidController) ComputeOutput(measure float64, now time.Time) float64 {
	err := c.Setpoint - measure
	dt := now.Sub(c.prevTime).Seconds()

	p := c.Proportional * err
	if c.ProportionalOnPV {
		p = c.Proportional * measure
	}
	var i, d float64
	if dt > 0.0 {
		i = c.Integral * c.integral * dt
		d = c.Derivative * (measure - c.oldInput) / dt
	}

	c.prevTime = now
	c.oldInput = measure

	u := p + i + d
	switch {
	case u > c.Vmax:
		u = c.Vmax
		c.integral += c.AntiWindup * err
	case u < c.Vmin:
		u = c.Vmin
		c.integral += c.AntiWindup * err
	default:
		c.integral += err
	}
	return u
}
