package instrument

import (
	instr "labddk/pkg/instrument/runtime"
	"labddk/pkg/runtime"
	"labddk/pkg/runtime/constant"
	"labddk/pkg/utils/randutil"
	"labddk/pkg/utils/uuidutil"
	v1 "labddk/pkg/v1"
	"strconv"
	"time"

	"k8s.io/klog/v2"
)

type VirtualInstrumentManager struct {
}

func (m *VirtualInstrumentManager) CreateInstrument(instrumentType v1.InstrumentType) (runtime.Instrument, error) {
	virtualInstrument, ok := instrumentType.(*v1.VirtualInstrument)
	if !ok {
		klog.V(2).InfoS("Unsupported instrument, type not virtual")
		return nil, constant.ErrInstrumentType
	}

	nodes := virtualInstrument.Nodes
	if nodes == 0 {
		nodes = 1
	}
	i := &instr.VirtualInstrument{
		InstrumentMeta: runtime.InstrumentMeta{
			ObjectMeta: runtime.ObjectMeta{
				Name:    virtualInstrument.Name,
				ID:      uuidutil.UUID(),
				Version: strconv.FormatUint(randutil.Uint64n(), 10),
				ModTime: time.Now(),
			},
			DriverModel:   virtualInstrument.DriverModel,
			Topic:         virtualInstrument.Topic,
			PollPeriod:    virtualInstrument.PollPeriod,
			CollectStatus: runtime.CollectStatusToString[runtime.Stopped],
		},
		Nodes: nodes,
	}
	return i, nil
}

func (m *VirtualInstrumentManager) DeleteInstrument(instrument runtime.Instrument) (runtime.Instrument, error) {
	return &instr.VirtualInstrument{InstrumentMeta: runtime.InstrumentMeta{
		ObjectMeta:  runtime.ObjectMeta{ID: instrument.GetID(), Version: instrument.GetVersion()},
		DriverModel: instrument.GetDriverModel(),
	}}, nil
}

func (m *VirtualInstrumentManager) UpdateValidation(instrumentType v1.InstrumentType, instrument runtime.Instrument) error {
	return nil
}

func (m *VirtualInstrumentManager) UpdateInstrument(id string, instrumentType v1.InstrumentType, instrument runtime.Instrument) (runtime.Instrument, error) {
	virtualInstrument, ok := instrumentType.(*v1.VirtualInstrument)
	if !ok {
		klog.V(2).InfoS("Unsupported instrument, type not virtual")
		return nil, constant.ErrInstrumentType
	}

	copyInstrument, _ := instrument.(*instr.VirtualInstrument)
	copyInstrument.InstrumentMeta.ObjectMeta.Name = virtualInstrument.Name
	copyInstrument.InstrumentMeta.DriverModel = virtualInstrument.DriverModel
	copyInstrument.InstrumentMeta.Topic = virtualInstrument.Topic
	copyInstrument.InstrumentMeta.PollPeriod = virtualInstrument.PollPeriod
	if virtualInstrument.Nodes > 0 {
		copyInstrument.Nodes = virtualInstrument.Nodes
	}

	return copyInstrument, nil
}
