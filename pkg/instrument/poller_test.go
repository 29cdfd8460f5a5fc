package instrument

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labddk/pkg/apis/response"
	instr "labddk/pkg/instrument/runtime"
	"labddk/pkg/runtime"
	"labddk/pkg/runtime/constant"
)

func virtualInstrument(nodes uint) *instr.VirtualInstrument {
	return &instr.VirtualInstrument{
		InstrumentMeta: runtime.InstrumentMeta{
			ObjectMeta:  runtime.ObjectMeta{ID: "test-virtual", Name: "bath", Version: "1"},
			DriverModel: "virtual",
			PollPeriod:  1,
		},
		Nodes: nodes,
	}
}

func TestNewBrokerUnknownType(t *testing.T) {
	_, _, err := NewBroker(&runtime.InstrumentMeta{})
	assert.ErrorIs(t, err, constant.ErrInstrumentType)
}

func TestNewBrokerIndexesReadableCommands(t *testing.T) {
	broker, readingCh, err := NewBroker(virtualInstrument(1))
	require.NoError(t, err)
	require.NotNil(t, readingCh)

	poller := broker.(*Poller)
	assert.NotEmpty(t, poller.Commands)
	for _, pc := range poller.Commands {
		assert.Equal(t, pc.path, pc.pointId, "single node instruments keep bare paths")
	}
}

func TestNewBrokerMultiNodePrefixesPointIds(t *testing.T) {
	broker, _, err := NewBroker(virtualInstrument(2))
	require.NoError(t, err)

	poller := broker.(*Poller)
	prefixed := map[string]bool{}
	for _, pc := range poller.Commands {
		prefixed[pc.pointId[:2]] = true
	}
	assert.True(t, prefixed["1."])
	assert.True(t, prefixed["2."])
}

func TestPollProducesReadings(t *testing.T) {
	broker, readingCh, err := NewBroker(virtualInstrument(1))
	require.NoError(t, err)
	poller := broker.(*Poller)

	assert.True(t, poller.poll(context.Background()))
	result := <-readingCh
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Readings)
	assert.Empty(t, result.Err)
}

func TestDeliverActionWritesSetpoint(t *testing.T) {
	broker, _, err := NewBroker(virtualInstrument(1))
	require.NoError(t, err)

	err = broker.DeliverAction(context.Background(), map[string]interface{}{"pid.setpoint": 21.5})
	assert.NoError(t, err)
}

func TestDeliverActionUnknownCommand(t *testing.T) {
	broker, _, err := NewBroker(virtualInstrument(1))
	require.NoError(t, err)

	err = broker.DeliverAction(context.Background(), map[string]interface{}{"pid.gain": 1})
	var multiErr *response.MultiError
	require.ErrorAs(t, err, &multiErr)
	assert.Equal(t, 1, multiErr.Len())
}

func TestDeliverActionRejectsReadOnly(t *testing.T) {
	broker, _, err := NewBroker(virtualInstrument(1))
	require.NoError(t, err)

	err = broker.DeliverAction(context.Background(), map[string]interface{}{"output": 3.14})
	assert.Error(t, err)
}

func TestDeliverActionMultiNodeRequiresPrefix(t *testing.T) {
	broker, _, err := NewBroker(virtualInstrument(2))
	require.NoError(t, err)

	err = broker.DeliverAction(context.Background(), map[string]interface{}{"pid.setpoint": 10})
	assert.Error(t, err, "bare path on a multi node instrument")

	err = broker.DeliverAction(context.Background(), map[string]interface{}{"2.pid.setpoint": 10})
	assert.NoError(t, err)
}

func TestDestroyClosesReadingChannel(t *testing.T) {
	broker, readingCh, err := NewBroker(virtualInstrument(1))
	require.NoError(t, err)

	broker.Collect(context.Background())
	broker.Destroy(context.Background())

	for range readingCh {
	}
	_, open := <-readingCh
	assert.False(t, open)
}

func TestDestroyDuringSweepClosesCleanly(t *testing.T) {
	for i := 0; i < 50; i++ {
		broker, readingCh, err := NewBroker(virtualInstrument(1))
		require.NoError(t, err)
		poller := broker.(*Poller)

		// Stall the sweep on the transport mutex, then race Destroy
		// against its final reading send.
		poller.mu.Lock()
		broker.Collect(context.Background())
		destroyed := make(chan struct{})
		go func() {
			broker.Destroy(context.Background())
			close(destroyed)
		}()
		time.Sleep(time.Millisecond)
		poller.mu.Unlock()

		<-destroyed
		for range readingCh {
		}
	}
}
