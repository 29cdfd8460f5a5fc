package drivers

import (
	"labddk/pkg/driver"
	"labddk/pkg/protocol/xonxoff"
)

// NewSeries988 builds the driver for Watlow Series 988 temperature
// controllers. Process values and the PID menus are flat mnemonic
// registers behind the XON/XOFF protocol.
func NewSeries988(transport driver.Transport) (*driver.Subsystem, error) {
	root := driver.NewSubsystem("series988",
		driver.WithProtocol(xonxoff.New(transport)))

	root.AddCommand("temperature", driver.NewCommand("C1",
		driver.WithAccess(driver.ReadOnly)))
	root.AddCommand("setpoint", driver.NewCommand("SP1",
		driver.WithWriter("SP1"),
		driver.WithBounds(0, 9999)))
	root.AddCommand("power", driver.NewCommand("PWR",
		driver.WithAccess(driver.ReadOnly)))

	pidA := driver.NewSubsystem("operation_pid_A")
	root.AddSubsystem("operation_pid_A", pidA)
	pidA.AddCommand("gain", driver.NewCommand("PB1A", driver.WithWriter("PB1A")))
	pidA.AddCommand("integral", driver.NewCommand("IT1A", driver.WithWriter("IT1A")))
	pidA.AddCommand("derivative", driver.NewCommand("DE1A", driver.WithWriter("DE1A")))

	pidB := driver.NewSubsystem("operation_pid_B")
	root.AddSubsystem("operation_pid_B", pidB)
	pidB.AddCommand("gain", driver.NewCommand("PB2A", driver.WithWriter("PB2A")))
	pidB.AddCommand("integral", driver.NewCommand("IT2A", driver.WithWriter("IT2A")))
	pidB.AddCommand("derivative", driver.NewCommand("DE2A", driver.WithWriter("DE2A")))

	return root, nil
}
