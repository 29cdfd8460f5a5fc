package instrument

import (
	"fmt"
	"strings"
	"time"

	"labddk/pkg/runtime"

	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/sets"
)

// validateInstrumentName rejects names the store cannot use as file
// name components.
func validateInstrumentName(name string) error {
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name must not contain path separators")
	}
	return nil
}

var InstrumentManagers = map[string]InstrumentManager{
	"fluke18x":  &SerialInstrumentManager{},
	"series988": &SerialInstrumentManager{},
	"cs400":     &SerialInstrumentManager{},
	"elFlow":    &SerialInstrumentManager{},
	"scpi":      &SerialInstrumentManager{},
	"virtual":   &VirtualInstrumentManager{},
}

type NewBrokerFunc func(obj runtime.Instrument) (runtime.Broker, chan *runtime.ParseReadingResult, error)

var InstrumentBrokerMap = map[string]NewBrokerFunc{
	"fluke18x":  NewBroker,
	"series988": NewBroker,
	"cs400":     NewBroker,
	"elFlow":    NewBroker,
	"scpi":      NewBroker,
	"virtual":   NewBroker,
}

var patchTypes = sets.NewString(string(types.JSONPatchType), string(types.MergePatchType))

const (
	maxJSONPatchOperations = 1000
	mqttTimeout            = 1 * time.Second
	heartBeatTimeInterval  = 15 * time.Second
)
