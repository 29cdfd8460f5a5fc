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

type SerialInstrumentManager struct {
}

func (m *SerialInstrumentManager) CreateInstrument(instrumentType v1.InstrumentType) (runtime.Instrument, error) {
	serialInstrument, ok := instrumentType.(*v1.SerialInstrument)
	if !ok {
		klog.V(2).InfoS("Unsupported instrument, type not serial")
		return nil, constant.ErrInstrumentType
	}

	i := &instr.SerialInstrument{
		InstrumentMeta: runtime.InstrumentMeta{
			ObjectMeta: runtime.ObjectMeta{
				Name:    serialInstrument.Name,
				ID:      uuidutil.UUID(),
				Version: strconv.FormatUint(randutil.Uint64n(), 10),
				ModTime: time.Now(),
			},
			DriverModel:   serialInstrument.DriverModel,
			Port:          serialInstrument.Address.Location,
			Topic:         serialInstrument.Topic,
			PollPeriod:    serialInstrument.PollPeriod,
			CollectStatus: runtime.CollectStatusToString[runtime.Stopped],
		},
		Address: &instr.Address{
			Location: serialInstrument.Address.Location,
		},
	}
	if serialInstrument.Node != nil {
		node := *serialInstrument.Node
		i.Node = &node
	}
	if serialInstrument.Address.Option != nil {
		i.Address.Option = &instr.Option{
			BaudRate: serialInstrument.Address.Option.BaudRate,
			DataBits: serialInstrument.Address.Option.DataBits,
			Parity:   runtime.StringToParity[serialInstrument.Address.Option.Parity],
			StopBits: runtime.StringToStopBits[serialInstrument.Address.Option.StopBits],
			Timeout:  serialInstrument.Address.Option.Timeout,
		}
	}
	return i, nil
}

func (m *SerialInstrumentManager) DeleteInstrument(instrument runtime.Instrument) (runtime.Instrument, error) {
	return &instr.SerialInstrument{InstrumentMeta: runtime.InstrumentMeta{
		ObjectMeta:  runtime.ObjectMeta{ID: instrument.GetID(), Version: instrument.GetVersion()},
		DriverModel: instrument.GetDriverModel(),
		Port:        instrument.GetPort(),
	}}, nil
}

func (m *SerialInstrumentManager) UpdateValidation(instrumentType v1.InstrumentType, instrument runtime.Instrument) error {
	return nil
}

func (m *SerialInstrumentManager) UpdateInstrument(id string, instrumentType v1.InstrumentType, instrument runtime.Instrument) (runtime.Instrument, error) {
	serialInstrument, ok := instrumentType.(*v1.SerialInstrument)
	if !ok {
		klog.V(2).InfoS("Unsupported instrument, type not serial")
		return nil, constant.ErrInstrumentType
	}

	copyInstrument, _ := instrument.(*instr.SerialInstrument)
	copyInstrument.InstrumentMeta.ObjectMeta.Name = serialInstrument.Name
	copyInstrument.InstrumentMeta.DriverModel = serialInstrument.DriverModel
	copyInstrument.InstrumentMeta.Port = serialInstrument.Address.Location
	copyInstrument.InstrumentMeta.Topic = serialInstrument.Topic
	copyInstrument.InstrumentMeta.PollPeriod = serialInstrument.PollPeriod

	if serialInstrument.Node != nil {
		node := *serialInstrument.Node
		copyInstrument.Node = &node
	} else {
		copyInstrument.Node = nil
	}

	copyInstrument.Address.Location = serialInstrument.Address.Location
	if serialInstrument.Address.Option != nil {
		if copyInstrument.Address.Option == nil {
			copyInstrument.Address.Option = &instr.Option{}
		}
		copyInstrument.Address.Option.BaudRate = serialInstrument.Address.Option.BaudRate
		copyInstrument.Address.Option.DataBits = serialInstrument.Address.Option.DataBits
		copyInstrument.Address.Option.Parity = runtime.StringToParity[serialInstrument.Address.Option.Parity]
		copyInstrument.Address.Option.StopBits = runtime.StringToStopBits[serialInstrument.Address.Option.StopBits]
		copyInstrument.Address.Option.Timeout = serialInstrument.Address.Option.Timeout
	} else {
		copyInstrument.Address.Option = nil
	}

	return copyInstrument, nil
}
