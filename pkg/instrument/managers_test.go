package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	instr "labddk/pkg/instrument/runtime"
	"labddk/pkg/runtime"
	"labddk/pkg/runtime/constant"
	v1 "labddk/pkg/v1"
)

func TestSerialManagerCreateInstrument(t *testing.T) {
	node := 3
	mgr := &SerialInstrumentManager{}
	created, err := mgr.CreateInstrument(&v1.SerialInstrument{
		InstrumentMeta: v1.InstrumentMeta{Name: "flow controller", DriverModel: "elFlow"},
		PollPeriod:     5,
		Node:           &node,
		Address: &v1.SerialAddress{
			Location: "/dev/ttyUSB0",
			Option: &v1.SerialAddressOption{
				BaudRate: 38400,
				DataBits: 8,
				Parity:   "noParity",
				StopBits: "1",
				Timeout:  500,
			},
		},
	})
	require.NoError(t, err)

	serial, ok := created.(*instr.SerialInstrument)
	require.True(t, ok)
	assert.NotEmpty(t, serial.GetID())
	assert.NotEmpty(t, serial.GetVersion())
	assert.Equal(t, "elFlow", serial.GetDriverModel())
	assert.Equal(t, "/dev/ttyUSB0", serial.GetPort())
	assert.Equal(t, uint(5), serial.GetPollPeriod())
	assert.Equal(t, runtime.CollectStatusToString[runtime.Stopped], serial.GetCollectStatus())
	require.NotNil(t, serial.Node)
	assert.Equal(t, 3, *serial.Node)
	require.NotNil(t, serial.Address.Option)
	assert.Equal(t, runtime.NoParity, serial.Address.Option.Parity)
	assert.Equal(t, runtime.OneStopBit, serial.Address.Option.StopBits)
}

func TestSerialManagerCreateRejectsWrongType(t *testing.T) {
	mgr := &SerialInstrumentManager{}
	_, err := mgr.CreateInstrument(&v1.VirtualInstrument{})
	assert.ErrorIs(t, err, constant.ErrInstrumentType)
}

func TestSerialManagerUpdateInstrument(t *testing.T) {
	mgr := &SerialInstrumentManager{}
	existing := &instr.SerialInstrument{
		InstrumentMeta: runtime.InstrumentMeta{
			ObjectMeta:  runtime.ObjectMeta{ID: "abc", Name: "old", Version: "7"},
			DriverModel: "cs400",
			Port:        "/dev/ttyS0",
			PollPeriod:  10,
		},
		Address: &instr.Address{Location: "/dev/ttyS0"},
	}

	updated, err := mgr.UpdateInstrument("abc", &v1.SerialInstrument{
		InstrumentMeta: v1.InstrumentMeta{Name: "new", DriverModel: "cs400"},
		PollPeriod:     2,
		Address:        &v1.SerialAddress{Location: "/dev/ttyS1"},
	}, existing.DeepCopyObject().(runtime.Instrument))
	require.NoError(t, err)

	assert.Equal(t, "new", updated.GetName())
	assert.Equal(t, "/dev/ttyS1", updated.GetPort())
	assert.Equal(t, uint(2), updated.GetPollPeriod())
	assert.Equal(t, "old", existing.GetName(), "update works on the deep copy")
}

func TestVirtualManagerCreateDefaultsSingleNode(t *testing.T) {
	mgr := &VirtualInstrumentManager{}
	created, err := mgr.CreateInstrument(&v1.VirtualInstrument{
		InstrumentMeta: v1.InstrumentMeta{Name: "bath", DriverModel: "virtual"},
		PollPeriod:     1,
	})
	require.NoError(t, err)

	virtual, ok := created.(*instr.VirtualInstrument)
	require.True(t, ok)
	assert.Equal(t, uint(1), virtual.Nodes)
}

func TestVirtualManagerUpdateKeepsNodes(t *testing.T) {
	mgr := &VirtualInstrumentManager{}
	existing := &instr.VirtualInstrument{
		InstrumentMeta: runtime.InstrumentMeta{
			ObjectMeta:  runtime.ObjectMeta{ID: "v1", Name: "bath", Version: "1"},
			DriverModel: "virtual",
		},
		Nodes: 4,
	}

	updated, err := mgr.UpdateInstrument("v1", &v1.VirtualInstrument{
		InstrumentMeta: v1.InstrumentMeta{Name: "bath", DriverModel: "virtual"},
		PollPeriod:     1,
	}, existing.DeepCopyObject().(runtime.Instrument))
	require.NoError(t, err)

	virtual := updated.(*instr.VirtualInstrument)
	assert.Equal(t, uint(4), virtual.Nodes, "zero nodes keeps the stored count")
}
