package drivers

import (
	"labddk/pkg/driver"
	"labddk/pkg/protocol/echostatus"
)

// NewCS400 builds the driver for Amtron CS400 laser power controllers.
// Registers are grouped in indexed pages; several carry a factor ten
// fixed point encoding handled by scale transforms.
func NewCS400(transport driver.Transport) (*driver.Subsystem, error) {
	root := driver.NewSubsystem("cs400",
		driver.WithProtocol(echostatus.New(transport)))

	main := driver.NewSubsystem("main", driver.WithIndex(0x00))
	root.AddSubsystem("main", main)
	main.AddCommand("errors", driver.NewCommand("01",
		driver.WithAccess(driver.ReadOnly)))
	main.AddCommand("firmware", driver.NewCommand("07",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(driver.Scale(0.001))))
	main.AddCommand("operation_mode", driver.NewCommand("0A",
		driver.WithWriter("0A"),
		driver.WithBounds(0, 4)))
	main.AddCommand("device_state", driver.NewCommand("0E",
		driver.WithAccess(driver.ReadOnly)))
	main.AddCommand("timeout_laser_on", driver.NewCommand("14",
		driver.WithWriter("14"),
		driver.WithBounds(0, 3000),
		driver.WithReadTransform(driver.Scale(0.1)),
		driver.WithWriteTransform(driver.Scale(10))))

	control := driver.NewSubsystem("control", driver.WithIndex(0x02))
	root.AddSubsystem("control", control)
	control.AddCommand("control_mode", driver.NewCommand("04",
		driver.WithWriter("04"),
		driver.WithBounds(1, 4)))
	control.AddCommand("set_total_power", driver.NewCommand("07",
		driver.WithWriter("07"),
		driver.WithBounds(0, 40000),
		driver.WithReadTransform(driver.Scale(0.1)),
		driver.WithWriteTransform(driver.Scale(10))))
	control.AddCommand("total_power", driver.NewCommand("08",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(driver.Scale(0.1))))
	control.AddCommand("pulse_duration", driver.NewCommand("1A",
		driver.WithWriter("1A"),
		driver.WithBounds(10, 65000)))

	laser := driver.NewSubsystem("laser", driver.WithIndex(0x05))
	root.AddSubsystem("laser", laser)
	laser.AddCommand("errors", driver.NewCommand("01",
		driver.WithAccess(driver.ReadOnly)))
	laser.AddCommand("on_time", driver.NewCommand("09",
		driver.WithAccess(driver.ReadOnly)))
	laser.AddCommand("temperature", driver.NewCommand("0C",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(driver.Scale(0.1))))
	laser.AddCommand("power", driver.NewCommand("0D",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(driver.Scale(0.1))))
	laser.AddCommand("head_humidity", driver.NewCommand("0F",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(driver.Scale(0.1))))

	cooler := driver.NewSubsystem("cooler", driver.WithIndex(0x07))
	root.AddSubsystem("cooler", cooler)
	cooler.AddCommand("errors", driver.NewCommand("01",
		driver.WithAccess(driver.ReadOnly)))

	return root, nil
}
