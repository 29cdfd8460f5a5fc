package generic

import (
	instrumentruntime "labddk/pkg/instrument/runtime"
	"labddk/pkg/runtime"
	v1 "labddk/pkg/v1"
)

var InstrumentTypeMap = map[string]func() v1.InstrumentType{
	"fluke18x":  func() v1.InstrumentType { return &v1.SerialInstrument{} },
	"series988": func() v1.InstrumentType { return &v1.SerialInstrument{} },
	"cs400":     func() v1.InstrumentType { return &v1.SerialInstrument{} },
	"elFlow":    func() v1.InstrumentType { return &v1.SerialInstrument{} },
	"scpi":      func() v1.InstrumentType { return &v1.SerialInstrument{} },
	"virtual":   func() v1.InstrumentType { return &v1.VirtualInstrument{} },
}

var InstrumentObjectMap = map[string]runtime.Instrument{
	"fluke18x":  &instrumentruntime.SerialInstrument{},
	"series988": &instrumentruntime.SerialInstrument{},
	"cs400":     &instrumentruntime.SerialInstrument{},
	"elFlow":    &instrumentruntime.SerialInstrument{},
	"scpi":      &instrumentruntime.SerialInstrument{},
	"virtual":   &instrumentruntime.VirtualInstrument{},
}
