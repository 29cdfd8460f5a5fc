package runtime

import (
	"labddk/pkg/runtime"
)

var _ runtime.Instrument = (*SerialInstrument)(nil)
var _ runtime.Instrument = (*VirtualInstrument)(nil)

// SerialInstrument is the stored description of an instrument wired to a
// serial line. Node is the bus station for multi-drop buses and stays
// nil for point to point links.
type SerialInstrument struct {
	runtime.InstrumentMeta
	Node    *int     `json:"node,omitempty"`
	Address *Address `json:"address"`
}

type Address struct {
	Location string  `json:"location"` // device path, e.g. /dev/ttyUSB0
	Option   *Option `json:"option"`
}

type Option struct {
	BaudRate int              `json:"baudRate,omitempty"`
	DataBits int              `json:"dataBits,omitempty"`
	Parity   runtime.Parity   `json:"parity,omitempty"`
	StopBits runtime.StopBits `json:"stopBits,omitempty"`
	Timeout  uint             `json:"timeout,omitempty"` // read timeout in milliseconds
}

// VirtualInstrument is the stored description of an in process simulated
// instrument. Nodes is how many independent simulation loops it carries.
type VirtualInstrument struct {
	runtime.InstrumentMeta
	Nodes uint `json:"nodes,omitempty"`
}
