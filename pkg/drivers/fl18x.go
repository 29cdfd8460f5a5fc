package drivers

import (
	"fmt"
	"strconv"
	"strings"

	"labddk/pkg/driver"
	"labddk/pkg/protocol/ackecho"
)

// front panel button codes of the 18x series
var fl18xButtons = map[string]int{
	"blue":      10,
	"hold":      11,
	"min_max":   12,
	"rel":       13,
	"hz":        14,
	"range":     15,
	"up":        16,
	"down":      17,
	"backlight": 18,
}

// NewFL18x builds the driver for Fluke 18x handheld multimeters. The
// meter acknowledges every request before answering it.
func NewFL18x(transport driver.Transport) (*driver.Subsystem, error) {
	root := driver.NewSubsystem("fl18x",
		driver.WithProtocol(ackecho.New(transport)))

	root.AddCommand("identification", driver.NewCommand("ID",
		driver.WithAccess(driver.ReadOnly),
		driver.WithDoc("model, serial number and software version")))
	root.AddCommand("measure", driver.NewCommand("QM",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(fl18xMeasure)))
	root.AddCommand("unit", driver.NewCommand("QM",
		driver.WithAccess(driver.ReadOnly),
		driver.WithReadTransform(fl18xUnit)))
	root.AddCommand("default_setup", driver.NewCommand("DS",
		driver.WithAccess(driver.WriteOnly)))
	root.AddCommand("reset", driver.NewCommand("RI",
		driver.WithAccess(driver.WriteOnly)))

	for name, code := range fl18xButtons {
		root.AddCommand("press_button_"+name, driver.NewCommand(
			fmt.Sprintf("SF %d", code),
			driver.WithAccess(driver.WriteOnly)))
	}
	return root, nil
}

// fl18xMeasure extracts the numeric part of a "QM,+0.123 VDC" answer.
func fl18xMeasure(value interface{}) (interface{}, error) {
	fields, err := fl18xFields(value)
	if err != nil {
		return nil, err
	}
	return strconv.ParseFloat(fields[0], 64)
}

// fl18xUnit extracts the unit part of a "QM,+0.123 VDC" answer.
func fl18xUnit(value interface{}) (interface{}, error) {
	fields, err := fl18xFields(value)
	if err != nil {
		return nil, err
	}
	return strings.Join(fields[1:], " "), nil
}

func fl18xFields(value interface{}) ([]string, error) {
	answer, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string answer, got %T", value)
	}
	parts := strings.SplitN(answer, ",", 2)
	if len(parts) < 2 {
		return nil, fmt.Errorf("no measurement in %q", answer)
	}
	fields := strings.Fields(parts[1])
	if len(fields) == 0 {
		return nil, fmt.Errorf("no measurement in %q", answer)
	}
	return fields, nil
}
