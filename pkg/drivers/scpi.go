package drivers

import (
	"labddk/pkg/driver"
	"labddk/pkg/protocol/scpi"
)

// NewSCPISource builds a generic driver for SCPI programmable sources
// and power supplies using the mandated common commands plus the SOURce
// and OUTPut trees.
func NewSCPISource(transport driver.Transport) (*driver.Subsystem, error) {
	root := driver.NewSubsystem("source",
		driver.WithProtocol(scpi.New(transport)))

	root.AddCommand("identification", driver.NewCommand("*IDN",
		driver.WithAccess(driver.ReadOnly)))
	root.AddCommand("reset", driver.NewCommand("*RST",
		driver.WithAccess(driver.WriteOnly)))
	root.AddCommand("clear_status", driver.NewCommand("*CLS",
		driver.WithAccess(driver.WriteOnly)))

	source := driver.NewSubsystem("source", driver.WithMnemonic("SOURce"))
	root.AddSubsystem("source", source)
	source.AddCommand("voltage", driver.NewCommand("VOLTage",
		driver.WithWriter("VOLTage"),
		driver.WithReadTransform(driver.Float)))
	source.AddCommand("current", driver.NewCommand("CURRent",
		driver.WithWriter("CURRent"),
		driver.WithReadTransform(driver.Float)))
	source.AddCommand("frequency", driver.NewCommand("FREQuency",
		driver.WithWriter("FREQuency"),
		driver.WithReadTransform(driver.Float)))

	output := driver.NewSubsystem("output", driver.WithMnemonic("OUTPut"))
	root.AddSubsystem("output", output)
	output.AddCommand("state", driver.NewCommand("STATe",
		driver.WithWriter("STATe")))

	measure := driver.NewSubsystem("measure", driver.WithMnemonic("MEASure"))
	root.AddSubsystem("measure", measure)
	measure.AddCommand("voltage", driver.NewCommand("VOLTage",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(driver.Float)))
	measure.AddCommand("current", driver.NewCommand("CURRent",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(driver.Float)))

	return root, nil
}
