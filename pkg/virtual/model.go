package virtual

import (
	"math"
	"math/rand"
	"time"
)

// InputModel derives the measured value from the stored system output,
// simulating a sensor reading half the actual process signal.
type InputModel struct {
	sysout float64
}

func (m *InputModel) SetSysout(sysout float64) { m.sysout = sysout }
func (m *InputModel) Sysout() float64          { return m.sysout }

func (m *InputModel) Measure() float64 {
	return m.sysout / 2.0
}

// OutputModel applies a first-order step response to its input signal
// over elapsed wall-clock time and injects zero-mean Gaussian noise on
// every reading. The default transfer function has a static gain of 5
// and a 10 s time constant.
type OutputModel struct {
	gain         float64
	timeConstant float64
	noise        float64

	input  float64
	output float64
	last   time.Time
	rand   *rand.Rand
}

func NewOutputModel() *OutputModel {
	return &OutputModel{
		gain:         5.0,
		timeConstant: 10.0,
		noise:        1.0,
		last:         time.Now(),
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *OutputModel) Noise() float64         { return m.noise }
func (m *OutputModel) SetNoise(noise float64) { m.noise = noise }

// SetInput advances the model to now and records the new input signal.
func (m *OutputModel) SetInput(input float64, now time.Time) {
	m.advance(now)
	m.input = input
}

// Output advances the model to now and returns the noisy output.
func (m *OutputModel) Output(now time.Time) float64 {
	m.advance(now)
	return m.output + m.rand.NormFloat64()*m.noise
}

// advance integrates the first-order response over the elapsed time:
// the output decays exponentially toward gain times input.
func (m *OutputModel) advance(now time.Time) {
	dt := now.Sub(m.last).Seconds()
	m.last = now
	if dt <= 0.0 {
		return
	}
	target := m.gain * m.input
	m.output = target + (m.output-target)*math.Exp(-dt/m.timeConstant)
}
