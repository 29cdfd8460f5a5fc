package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileInterpolates(t *testing.T) {
	profile := NewProfile([]Point{
		{Time: 5, Setpoint: 10.0},
		{Time: 10, Setpoint: -20.0},
		{Time: 15, Setpoint: -20.0},
	})

	assert.InDelta(t, 0.0, profile.Setpoint(0.0), 1e-9)
	assert.InDelta(t, 5.0, profile.Setpoint(2.5), 1e-9)
	assert.InDelta(t, 10.0, profile.Setpoint(5.0), 1e-9)
	assert.InDelta(t, -5.0, profile.Setpoint(7.5), 1e-9)
	assert.InDelta(t, -20.0, profile.Setpoint(12.0), 1e-9)
}

func TestProfileHoldsFinalSetpoint(t *testing.T) {
	profile := NewProfile([]Point{{Time: 5, Setpoint: 10.0}})

	assert.Equal(t, 5.0, profile.Duration())
	assert.Equal(t, 10.0, profile.Setpoint(5.0))
	assert.Equal(t, 10.0, profile.Setpoint(100.0))
}

func TestProfileKeepsExplicitStart(t *testing.T) {
	profile := NewProfile([]Point{
		{Time: 0, Setpoint: 20.0},
		{Time: 10, Setpoint: 30.0},
	})

	assert.InDelta(t, 20.0, profile.Setpoint(0.0), 1e-9)
	assert.InDelta(t, 25.0, profile.Setpoint(5.0), 1e-9)
}
