package drivers

import (
	"math"

	"labddk/pkg/driver"
	"labddk/pkg/protocol/flowbus"
)

// NewELFlow builds the driver for Bronkhorst EL-FLOW mass flow
// controllers. Parameters live in numbered processes; the raw measure
// scale of 32000 counts per 100 percent is converted by transforms.
func NewELFlow(transport driver.Transport) (*driver.Subsystem, error) {
	root := driver.NewSubsystem("elflow",
		driver.WithProtocol(flowbus.New(transport)))

	main := driver.NewSubsystem("main", driver.WithIndex(1))
	root.AddSubsystem("main", main)
	main.AddCommand("measure", driver.NewCommand("measure",
		driver.WithAccess(driver.ReadOnly),
		driver.WithMeta(flowbus.Param{Number: 0, Kind: flowbus.Uint}),
		driver.WithReadTransform(pctFromCounts)))
	main.AddCommand("setpoint", driver.NewCommand("setpoint",
		driver.WithWriter("setpoint"),
		driver.WithBounds(0, 100),
		driver.WithMeta(flowbus.Param{Number: 1, Kind: flowbus.Uint}),
		driver.WithReadTransform(pctFromCounts),
		driver.WithWriteTransform(countsFromPct)))
	main.AddCommand("setpoint_slope", driver.NewCommand("setpoint_slope",
		driver.WithWriter("setpoint_slope"),
		driver.WithBounds(0, 30000),
		driver.WithMeta(flowbus.Param{Number: 2, Kind: flowbus.Uint})))
	main.AddCommand("control_mode", driver.NewCommand("control_mode",
		driver.WithWriter("control_mode"),
		driver.WithBounds(0, 255),
		driver.WithMeta(flowbus.Param{Number: 4, Kind: flowbus.Char})))
	main.AddCommand("fluid", driver.NewCommand("fluid",
		driver.WithWriter("fluid"),
		driver.WithMeta(flowbus.Param{Number: 17, Kind: flowbus.String, Secured: true})))
	main.AddCommand("capacity_100pct", driver.NewCommand("capacity_100pct",
		driver.WithWriter("capacity_100pct"),
		driver.WithMeta(flowbus.Param{Number: 13, Kind: flowbus.Float, Secured: true})))

	direct := driver.NewSubsystem("direct_reading", driver.WithIndex(33))
	root.AddSubsystem("direct_reading", direct)
	direct.AddCommand("fmeasure", driver.NewCommand("fmeasure",
		driver.WithAccess(driver.ReadOnly),
		driver.WithMeta(flowbus.Param{Number: 0, Kind: flowbus.Float})))
	direct.AddCommand("fsetpoint", driver.NewCommand("fsetpoint",
		driver.WithWriter("fsetpoint"),
		driver.WithMeta(flowbus.Param{Number: 3, Kind: flowbus.Float})))
	direct.AddCommand("master_slave_ratio", driver.NewCommand("master_slave_ratio",
		driver.WithWriter("master_slave_ratio"),
		driver.WithBounds(0, 500),
		driver.WithMeta(flowbus.Param{Number: 1, Kind: flowbus.Float})))

	identification := driver.NewSubsystem("identification", driver.WithIndex(113))
	root.AddSubsystem("identification", identification)
	identification.AddCommand("model_number", driver.NewCommand("model_number",
		driver.WithAccess(driver.ReadOnly),
		driver.WithMeta(flowbus.Param{Number: 2, Kind: flowbus.String})))
	identification.AddCommand("serial_number", driver.NewCommand("serial_number",
		driver.WithAccess(driver.ReadOnly),
		driver.WithMeta(flowbus.Param{Number: 3, Kind: flowbus.String})))
	identification.AddCommand("firmware", driver.NewCommand("firmware",
		driver.WithAccess(driver.ReadOnly),
		driver.WithMeta(flowbus.Param{Number: 5, Kind: flowbus.String})))
	identification.AddCommand("usertag", driver.NewCommand("usertag",
		driver.WithWriter("usertag"),
		driver.WithMeta(flowbus.Param{Number: 6, Kind: flowbus.String, Secured: true})))

	alarm := driver.NewSubsystem("alarm", driver.WithIndex(97))
	root.AddSubsystem("alarm", alarm)
	alarm.AddCommand("max_limit", driver.NewCommand("max_limit",
		driver.WithWriter("max_limit"),
		driver.WithBounds(0, 32000),
		driver.WithMeta(flowbus.Param{Number: 1, Kind: flowbus.Uint, Secured: true})))
	alarm.AddCommand("min_limit", driver.NewCommand("min_limit",
		driver.WithWriter("min_limit"),
		driver.WithBounds(0, 32000),
		driver.WithMeta(flowbus.Param{Number: 2, Kind: flowbus.Uint, Secured: true})))
	alarm.AddCommand("mode", driver.NewCommand("mode",
		driver.WithWriter("mode"),
		driver.WithBounds(0, 3),
		driver.WithMeta(flowbus.Param{Number: 3, Kind: flowbus.Char, Secured: true})))

	controller := driver.NewSubsystem("controller", driver.WithIndex(114))
	root.AddSubsystem("controller", controller)
	controller.AddCommand("pid_kp", driver.NewCommand("pid_kp",
		driver.WithWriter("pid_kp"),
		driver.WithMeta(flowbus.Param{Number: 21, Kind: flowbus.Float, Secured: true})))
	controller.AddCommand("pid_ki", driver.NewCommand("pid_ki",
		driver.WithWriter("pid_ki"),
		driver.WithMeta(flowbus.Param{Number: 22, Kind: flowbus.Float, Secured: true})))
	controller.AddCommand("pid_kd", driver.NewCommand("pid_kd",
		driver.WithWriter("pid_kd"),
		driver.WithMeta(flowbus.Param{Number: 23, Kind: flowbus.Float, Secured: true})))

	return root, nil
}

// pctFromCounts converts the raw 0 to 32000 measure scale to percent.
// Values above 41943 are the two's complement encoding of a negative
// reading.
func pctFromCounts(value interface{}) (interface{}, error) {
	f, err := driver.AsFloat64(value)
	if err != nil {
		return nil, err
	}
	if f >= 41943 {
		f -= 65536
	}
	return f / 320.0, nil
}

// countsFromPct converts percent to the raw measure scale.
func countsFromPct(value interface{}) (interface{}, error) {
	f, err := driver.AsFloat64(value)
	if err != nil {
		return nil, err
	}
	counts := int64(math.Round(f * 320.0))
	if counts < 0 {
		counts += 65536
	}
	return counts, nil
}
