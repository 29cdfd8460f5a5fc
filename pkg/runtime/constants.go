package runtime

import (
	"encoding/json"
	"fmt"
)

// ETagMaxInitialValue just a value, meaningless
const ETagMaxInitialValue int64 = 3294967296

type CollectStatus int

const (
	Collecting CollectStatus = iota
	CollectingError
	Unconnected
	Stopped
	EmptyCommand
	Error
)

var CollectStatusToString = map[CollectStatus]string{
	Collecting:      "collecting",
	CollectingError: "collectingError",
	Unconnected:     "unconnected",
	Stopped:         "stopped",
	EmptyCommand:    "emptyCommand",
	Error:           "error",
}

var StringToCollectStatus = map[string]CollectStatus{
	"collecting":      Collecting,
	"collectingError": CollectingError,
	"unconnected":     Unconnected,
	"stopped":         Stopped,
	"emptyCommand":    EmptyCommand,
	"error":           Error,
}

type InstrumentStatusCh int

const (
	Start InstrumentStatusCh = iota
	Stop
	Restart
)

var InstrumentStatusChToString = map[InstrumentStatusCh]string{
	Start:   "start",
	Stop:    "stop",
	Restart: "restart",
}

var StringToInstrumentStatusCh = map[string]InstrumentStatusCh{
	"start":   Start,
	"stop":    Stop,
	"restart": Restart,
}

type StopBits int

const (
	// OneStopBit sets 1 stop bit (default)
	OneStopBit StopBits = iota
	// OnePointFiveStopBits sets 1.5 stop bits
	OnePointFiveStopBits
	// TwoStopBits sets 2 stop bits
	TwoStopBits
)

var StopBitsToString = map[StopBits]string{
	OneStopBit:           "1",
	OnePointFiveStopBits: "1.5",
	TwoStopBits:          "2",
}

var StringToStopBits = map[string]StopBits{
	"1":   OneStopBit,
	"1.5": OnePointFiveStopBits,
	"2":   TwoStopBits,
}

type Parity int

const (
	// NoParity disable parity control (default)
	NoParity Parity = iota
	// OddParity enable odd-parity check
	OddParity
	// EvenParity enable even-parity check
	EvenParity
	// MarkParity enable mark-parity (always 1) check
	MarkParity
	// SpaceParity enable space-parity (always 0) check
	SpaceParity
)

var ParityToString = map[Parity]string{
	NoParity:    "noParity",
	OddParity:   "oddParity",
	EvenParity:  "evenParity",
	MarkParity:  "markParity",
	SpaceParity: "spaceParity",
}

var StringToParity = map[string]Parity{
	"noParity":    NoParity,
	"oddParity":   OddParity,
	"evenParity":  EvenParity,
	"markParity":  MarkParity,
	"spaceParity": SpaceParity,
}

func (s StopBits) MarshalJSON() ([]byte, error) {
	if v, ok := StopBitsToString[s]; ok {
		return json.Marshal(v)
	}
	return nil, fmt.Errorf("unknown stopBits %d", s)
}

func (s *StopBits) UnmarshalJSON(bytes []byte) error {
	var v string
	if err := json.Unmarshal(bytes, &v); err != nil {
		return err
	}
	sb, ok := StringToStopBits[v]
	if !ok {
		return fmt.Errorf("unknown stopBits %s", v)
	}
	*s = sb
	return nil
}

func (p Parity) MarshalJSON() ([]byte, error) {
	if v, ok := ParityToString[p]; ok {
		return json.Marshal(v)
	}
	return nil, fmt.Errorf("unknown parity %d", p)
}

func (p *Parity) UnmarshalJSON(bytes []byte) error {
	var v string
	if err := json.Unmarshal(bytes, &v); err != nil {
		return err
	}
	pa, ok := StringToParity[v]
	if !ok {
		return fmt.Errorf("unknown parity %s", v)
	}
	*p = pa
	return nil
}
