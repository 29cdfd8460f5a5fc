package v1

// SerialInstrument describes an instrument reached over a serial line.
type SerialInstrument struct {
	InstrumentMeta
	PollPeriod uint           `json:"pollPeriod" binding:"required"` // seconds
	Node       *int           `json:"node,omitempty"`                // multi-drop bus station
	Address    *SerialAddress `json:"address" binding:"required"`
}

type SerialAddress struct {
	Location string               `json:"location"` // device path, e.g. /dev/ttyUSB0
	Option   *SerialAddressOption `json:"option"`
}

type SerialAddressOption struct {
	BaudRate int    `json:"baudRate,omitempty"`
	DataBits int    `json:"dataBits,omitempty"`
	Parity   string `json:"parity,omitempty"`
	StopBits string `json:"stopBits,omitempty"`
	Timeout  uint   `json:"timeout,omitempty"` // milliseconds
}

// VirtualInstrument describes a simulated instrument running in
// process; it needs no address.
type VirtualInstrument struct {
	InstrumentMeta
	PollPeriod uint `json:"pollPeriod" binding:"required"` // seconds
	Nodes      uint `json:"nodes,omitempty"`               // simulated station count
}
