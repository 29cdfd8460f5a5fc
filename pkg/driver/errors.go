package driver

import (
	"errors"
	"fmt"
)

// HardwareError reports an error condition signalled by the instrument
// itself: a documented fault code, a disconnected sensor, a rejected
// command. Polling loops are expected to log it and keep going.
type HardwareError struct {
	Request string
	Reason  string
}

func (e *HardwareError) Error() string {
	if len(e.Request) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("command %q returned error: %s", e.Request, e.Reason)
}

// Hardwaref returns a HardwareError for the wire request that triggered it.
func Hardwaref(request, format string, args ...interface{}) error {
	return &HardwareError{Request: request, Reason: fmt.Sprintf(format, args...)}
}

// DriverError reports a protocol or software level violation: access mode
// violations, echo or ack mismatches, unparseable responses, or a subsystem
// with no reachable protocol. It usually indicates a wiring or programming
// defect.
type DriverError struct {
	Request string
	Reason  string
	Err     error
}

func (e *DriverError) Error() string {
	if len(e.Request) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("command %q: %s", e.Request, e.Reason)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

// Driverf returns a DriverError carrying the offending wire request.
func Driverf(request, format string, args ...interface{}) error {
	return &DriverError{Request: request, Reason: fmt.Sprintf(format, args...)}
}

// IsHardwareError reports whether err is or wraps a HardwareError.
func IsHardwareError(err error) bool {
	var he *HardwareError
	return errors.As(err, &he)
}

// IsDriverError reports whether err is or wraps a DriverError.
func IsDriverError(err error) bool {
	var de *DriverError
	return errors.As(err, &de)
}
