package instrument

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"labddk/pkg/apis/response"
	"labddk/pkg/driver"
	"labddk/pkg/drivers"
	instr "labddk/pkg/instrument/runtime"
	"labddk/pkg/runtime"
	"labddk/pkg/runtime/constant"

	"go.bug.st/serial"
	"go.uber.org/atomic"
	"k8s.io/klog/v2"
)

var _ runtime.Broker = (*Poller)(nil)

// polledCommand is one readable command of the driver tree together
// with the bus node it is read on.
type polledCommand struct {
	path    string
	pointId string
	command *driver.Command
	node    interface{}
}

// Poller owns the driver tree of one instrument and sweeps its readable
// commands every poll period. The transport is exclusive, a mutex
// serializes polling sweeps against delivered actions.
type Poller struct {
	ExitCh       chan struct{}
	Instrument   runtime.Instrument
	Root         *driver.Subsystem
	Commands     []*polledCommand
	Nodes        []interface{}
	ReadingCh    chan *runtime.ParseReadingResult
	CanCollect   *atomic.Bool
	mu           *sync.Mutex
	closer       func() error
	multipleNode bool
}

// NewBroker builds the poller for a stored instrument: it opens the
// transport, constructs the driver command tree and indexes the
// readable commands.
func NewBroker(obj runtime.Instrument) (runtime.Broker, chan *runtime.ParseReadingResult, error) {
	switch i := obj.(type) {
	case *instr.SerialInstrument:
		return newSerialPoller(i)
	case *instr.VirtualInstrument:
		return newVirtualPoller(i)
	default:
		klog.V(2).InfoS("Failed to new poller, instrument type not supported")
		return nil, nil, constant.ErrInstrumentType
	}
}

func newSerialPoller(i *instr.SerialInstrument) (runtime.Broker, chan *runtime.ParseReadingResult, error) {
	mode := &serial.Mode{BaudRate: 9600, DataBits: 8}
	var opts []driver.SerialOption
	if newline, ok := drivers.Newlines[i.GetDriverModel()]; ok {
		opts = append(opts, driver.WithNewline(newline))
	}
	if option := i.Address.Option; option != nil {
		if option.BaudRate > 0 {
			mode.BaudRate = option.BaudRate
		}
		if option.DataBits > 0 {
			mode.DataBits = option.DataBits
		}
		mode.Parity = serialParity[option.Parity]
		mode.StopBits = serialStopBits[option.StopBits]
		if option.Timeout > 0 {
			opts = append(opts, driver.WithTimeout(time.Duration(option.Timeout)*time.Millisecond))
		}
	}

	transport, err := driver.OpenSerial(i.Address.Location, mode, opts...)
	if err != nil {
		klog.V(2).InfoS("Failed to open serial port", "location", i.Address.Location, "err", err)
		return nil, nil, fmt.Errorf("%w: %v", constant.ErrConnectInstrument, err)
	}

	var node interface{}
	if i.Node != nil {
		node = *i.Node
	}
	poller, err := newPoller(i, transport, []interface{}{node}, transport.Close)
	if err != nil {
		transport.Close()
		return nil, nil, err
	}
	return poller, poller.ReadingCh, nil
}

func newVirtualPoller(i *instr.VirtualInstrument) (runtime.Broker, chan *runtime.ParseReadingResult, error) {
	nodes := make([]interface{}, 0, i.Nodes)
	if i.Nodes <= 1 {
		nodes = append(nodes, nil)
	} else {
		for n := uint(1); n <= i.Nodes; n++ {
			nodes = append(nodes, int(n))
		}
	}
	poller, err := newPoller(i, nil, nodes, nil)
	if err != nil {
		return nil, nil, err
	}
	return poller, poller.ReadingCh, nil
}

func newPoller(obj runtime.Instrument, transport driver.Transport, nodes []interface{}, closer func() error) (*Poller, error) {
	root, err := drivers.Build(obj.GetDriverModel(), transport)
	if err != nil {
		return nil, err
	}

	commands := make([]*polledCommand, 0)
	multipleNode := len(nodes) > 1
	for _, node := range nodes {
		node := node
		root.Walk(func(path string, c *driver.Command) {
			if c.Access() == driver.WriteOnly {
				return
			}
			pointId := path
			if multipleNode {
				pointId = fmt.Sprintf("%v.%s", node, path)
			}
			commands = append(commands, &polledCommand{
				path:    path,
				pointId: pointId,
				command: c,
				node:    node,
			})
		})
	}
	if len(commands) == 0 {
		return nil, constant.ErrInstrumentEmptyCommands
	}

	return &Poller{
		ExitCh:       make(chan struct{}, 0),
		Instrument:   obj,
		Root:         root,
		Commands:     commands,
		Nodes:        nodes,
		ReadingCh:    make(chan *runtime.ParseReadingResult, 1),
		CanCollect:   atomic.NewBool(true),
		mu:           &sync.Mutex{},
		closer:       closer,
		multipleNode: multipleNode,
	}, nil
}

// Destroy stops the collect loop and closes the transport. The exit
// send blocks until the loop has received it, so ReadingCh is never
// closed mid-sweep.
func (p *Poller) Destroy(ctx context.Context) {
	p.CanCollect.Store(false)
	p.ExitCh <- struct{}{}
	if p.closer != nil {
		if err := p.closer(); err != nil {
			klog.V(2).InfoS("Failed to close transport", "instrumentId", p.Instrument.GetID(), "err", err)
		}
	}
	close(p.ReadingCh)
}

func (p *Poller) Collect(ctx context.Context) {
	if p.CanCollect.Load() {
		go func() {
			for {
				start := time.Now().Unix()
				if !p.poll(ctx) {
					return
				}
				select {
				case <-p.ExitCh:
					return
				default:
					end := time.Now().Unix()
					elapsed := end - start
					period := int64(p.pollPeriod())
					if elapsed < period {
						time.Sleep(time.Duration(period-elapsed) * time.Second)
					}
				}
			}
		}()
	}
}

func (p *Poller) pollPeriod() uint {
	if period := p.Instrument.GetPollPeriod(); period > 0 {
		return period
	}
	return 1
}

func (p *Poller) poll(ctx context.Context) bool {
	select {
	case <-p.ExitCh:
		return false
	default:
		readings := make([]runtime.PointData, 0, len(p.Commands))
		errs := make([]error, 0)
		p.mu.Lock()
		for _, pc := range p.Commands {
			value, err := pc.command.Read(pc.node)
			if err != nil {
				klog.V(3).InfoS("Failed to read command", "instrumentId", p.Instrument.GetID(), "command", pc.pointId, "err", err)
				errs = append(errs, err)
				continue
			}
			readings = append(readings, runtime.PointData{DataPointId: pc.pointId, Value: value})
		}
		p.mu.Unlock()

		select {
		case p.ReadingCh <- &runtime.ParseReadingResult{Readings: readings, Err: errs}:
		case <-p.ExitCh:
			return false
		}
		return true
	}
}

// DeliverAction writes the given values to their commands. Action names
// are command paths; when the instrument carries several nodes the path
// is prefixed with the node, e.g. "2.pid.proportional".
func (p *Poller) DeliverAction(ctx context.Context, actions map[string]interface{}) error {
	writes := make([]*polledCommand, 0, len(actions))
	values := make([]interface{}, 0, len(actions))

	errs := &response.MultiError{}
	for name, value := range actions {
		pc, err := p.resolve(name)
		if err != nil {
			errs.Add(err)
			continue
		}
		if pc.command.Access() == driver.ReadOnly {
			errs.Add(response.ErrResourceNotFound(name))
			continue
		}
		writes = append(writes, pc)
		values = append(values, value)
	}
	if errs.Len() > 0 {
		return errs
	}
	if len(writes) == 0 {
		return response.NewMultiError(response.ErrLegalActionNotFound)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for n, pc := range writes {
		if err := pc.command.Write(values[n], pc.node); err != nil {
			klog.V(2).InfoS("Failed to write command", "instrumentId", p.Instrument.GetID(), "command", pc.path, "err", err)
			return err
		}
	}
	return nil
}

func (p *Poller) resolve(name string) (*polledCommand, error) {
	path := name
	node := p.Nodes[0]
	if p.multipleNode {
		head, rest, found := strings.Cut(name, ".")
		if !found {
			return nil, response.ErrResourceNotFound(name)
		}
		n, err := strconv.Atoi(head)
		if err != nil {
			return nil, response.ErrResourceNotFound(name)
		}
		path, node = rest, n
	}
	command, err := p.Root.Lookup(path)
	if err != nil {
		return nil, response.ErrResourceNotFound(name)
	}
	return &polledCommand{path: path, pointId: name, command: command, node: node}, nil
}

var serialParity = map[runtime.Parity]serial.Parity{
	runtime.NoParity:    serial.NoParity,
	runtime.OddParity:   serial.OddParity,
	runtime.EvenParity:  serial.EvenParity,
	runtime.MarkParity:  serial.MarkParity,
	runtime.SpaceParity: serial.SpaceParity,
}

var serialStopBits = map[runtime.StopBits]serial.StopBits{
	runtime.OneStopBit:           serial.OneStopBit,
	runtime.OnePointFiveStopBits: serial.OnePointFiveStopBits,
	runtime.TwoStopBits:          serial.TwoStopBits,
}
