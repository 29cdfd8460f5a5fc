package constant

import "errors"

var (
	ErrInstrumentType          = errors.New("unsupported instrument type")
	ErrConnectInstrument       = errors.New("unable to connect to instrument")
	ErrInstrumentServerClosed  = errors.New("instrument server closed")
	ErrInstrumentEmptyCommands = errors.New("instrument commands emptied")
)
