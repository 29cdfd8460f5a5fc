package drivers

import (
	"labddk/pkg/driver"
	"labddk/pkg/virtual"
)

// NewVirtual builds the simulated closed-loop instrument. The transport
// is unused, the driver runs entirely in process.
func NewVirtual(_ driver.Transport) (*driver.Subsystem, error) {
	return virtual.NewInstrument(), nil
}
