// Package drivers holds the concrete instrument definitions: command
// trees composed from subsystems, commands and a wire protocol, one
// constructor per supported driver model.
package drivers

import (
	"sort"

	"labddk/pkg/driver"
)

// Builder creates the command tree of one driver model over the given
// transport. Simulated models ignore the transport.
type Builder func(transport driver.Transport) (*driver.Subsystem, error)

var Builders = map[string]Builder{
	"fluke18x":  NewFL18x,
	"series988": NewSeries988,
	"cs400":     NewCS400,
	"elFlow":    NewELFlow,
	"scpi":      NewSCPISource,
	"virtual":   NewVirtual,
}

// Newlines maps each driver model to the line terminator its wire
// protocol expects from the transport.
var Newlines = map[string]string{
	"fluke18x":  "\r",
	"series988": "\r",
	"cs400":     "\r",
	"elFlow":    "\r\n",
	"scpi":      "\n",
	"virtual":   "\n",
}

// Build resolves a driver model name and constructs its command tree.
func Build(model string, transport driver.Transport) (*driver.Subsystem, error) {
	builder, ok := Builders[model]
	if !ok {
		return nil, driver.Driverf(model, "unknown driver model")
	}
	return builder(transport)
}

// Models lists the registered driver model names, sorted.
func Models() []string {
	models := make([]string, 0, len(Builders))
	for model := range Builders {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}
