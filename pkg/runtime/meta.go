package runtime

import (
	"context"
	"fmt"
	"time"
)

var (
	ErrNotObject = fmt.Errorf("object does not implement the Object interfaces")
)

type RunObject interface {
	DeepCopyObject() RunObject
}

type ObjectMetaAccessor interface {
	GetObjectMeta() Object
}

// Broker drives the collect loop of one instrument and forwards
// user actions to its driver.
type Broker interface {
	Collect(ctx context.Context)
	DeliverAction(ctx context.Context, actions map[string]interface{}) error
	Destroy(ctx context.Context)
}

type Object interface {
	GetName() string
	SetName(string)
	GetID() string
	SetID(string)
	GetVersion() string
	SetVersion(string)
	GetModTime() time.Time
	SetModTime(time.Time)
}

// Instrument is the stored description of one laboratory instrument.
type Instrument interface {
	Object
	RunObject
	GetDriverModel() string
	SetDriverModel(string)
	GetPort() string
	SetPort(string)
	GetTopic() string
	SetTopic(string)
	GetPollPeriod() uint
	SetPollPeriod(uint)
	GetCollectStatus() string
	SetCollectStatus(string)
}

func Accessor(obj interface{}) (Object, error) {
	switch t := obj.(type) {
	case Object:
		return t, nil
	case ObjectMetaAccessor:
		if m := t.GetObjectMeta(); m != nil {
			return m, nil
		}
		return nil, ErrNotObject
	default:
		return nil, ErrNotObject
	}
}

func AccessorInstrument(obj interface{}) (Instrument, error) {
	switch t := obj.(type) {
	case Instrument:
		return t, nil
	default:
		return nil, ErrNotObject
	}
}
