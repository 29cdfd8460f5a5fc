package virtual

import (
	"fmt"
	"time"

	"labddk/pkg/driver"
	"labddk/pkg/protocol/wrapper"
)

// simulation is the closed loop behind one addressing node: reading the
// measure feeds the PID and pushes the new controller output into the
// process model; reading the output feeds the model response back into
// the input scaler.
type simulation struct {
	pid    *PidController
	input  *InputModel
	output *OutputModel
	now    func() time.Time
}

func newSimulation(now func() time.Time) *simulation {
	return &simulation{
		pid:    NewPidController(),
		input:  &InputModel{},
		output: NewOutputModel(),
		now:    now,
	}
}

var _ wrapper.Object = (*simulation)(nil)

// step runs one control cycle from the current measure.
func (s *simulation) step() float64 {
	measure := s.input.Measure()
	s.output.SetInput(s.pid.ComputeOutput(measure, s.now()), s.now())
	return measure
}

func (s *simulation) Get(name string) (interface{}, error) {
	switch name {
	case "measure":
		return s.step(), nil
	case "output":
		response := s.output.Output(s.now())
		s.input.SetSysout(response)
		return response, nil
	case "noise":
		return s.output.Noise(), nil
	case "setpoint":
		return s.pid.Setpoint, nil
	case "proportional":
		return s.pid.Proportional, nil
	case "integral_time":
		return s.pid.IntegralTime(), nil
	case "derivative_time":
		return s.pid.DerivativeTime(), nil
	case "vmin":
		return s.pid.Vmin, nil
	case "vmax":
		return s.pid.Vmax, nil
	case "anti_windup":
		return s.pid.AntiWindup, nil
	case "proportional_on_pv":
		return s.pid.ProportionalOnPV, nil
	default:
		return nil, fmt.Errorf("unknown attribute %q", name)
	}
}

func (s *simulation) Set(name string, value interface{}) error {
	if name == "reset" {
		s.pid.Reset()
		return nil
	}
	if name == "proportional_on_pv" {
		on, ok := value.(bool)
		if !ok {
			return fmt.Errorf("attribute %q takes a boolean, got %T", name, value)
		}
		s.pid.ProportionalOnPV = on
		return nil
	}
	f, err := driver.AsFloat64(value)
	if err != nil {
		return fmt.Errorf("attribute %q: %v", name, err)
	}
	switch name {
	case "measure":
		// forcing the measure overrides the stored system output and
		// synchronously recomputes the controller output
		s.input.SetSysout(2.0 * f)
		s.step()
	case "noise":
		s.output.SetNoise(f)
	case "setpoint":
		s.pid.Setpoint = f
	case "proportional":
		s.pid.Proportional = f
	case "integral_time":
		s.pid.SetIntegralTime(f)
	case "derivative_time":
		s.pid.SetDerivativeTime(f)
	case "vmin":
		s.pid.Vmin = f
	case "vmax":
		s.pid.Vmax = f
	case "anti_windup":
		s.pid.AntiWindup = f
	default:
		return fmt.Errorf("unknown attribute %q", name)
	}
	return nil
}

type Option func(*config)

type config struct {
	now func() time.Time
}

// WithClock substitutes the wall clock driving the process model and
// the controller, used by tests for deterministic time stepping.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// NewInstrument builds the simulated instrument command tree. The pid
// and output child subsystems borrow the root's wrapper protocol; every
// addressing node runs its own independent control loop.
func NewInstrument(opts ...Option) *driver.Subsystem {
	cfg := &config{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	protocol := wrapper.New(func() wrapper.Object {
		return newSimulation(cfg.now)
	})

	root := driver.NewSubsystem("virtual", driver.WithProtocol(protocol))
	root.AddCommand("measure", driver.NewCommand("measure", driver.WithWriter("measure")))
	root.AddCommand("output", driver.NewCommand("output", driver.WithAccess(driver.ReadOnly)))

	pid := driver.NewSubsystem("pid")
	root.AddSubsystem("pid", pid)
	for _, name := range []string{
		"setpoint",
		"proportional",
		"integral_time",
		"derivative_time",
		"vmin",
		"vmax",
		"anti_windup",
		"proportional_on_pv",
	} {
		pid.AddCommand(name, driver.NewCommand(name, driver.WithWriter(name)))
	}
	pid.AddCommand("reset", driver.NewCommand("reset",
		driver.WithWriter("reset"),
		driver.WithAccess(driver.WriteOnly)))

	output := driver.NewSubsystem("output")
	root.AddSubsystem("output", output)
	output.AddCommand("noise", driver.NewCommand("noise", driver.WithWriter("noise")))

	return root
}
