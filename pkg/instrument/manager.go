package instrument

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"labddk/pkg/apis"
	"labddk/pkg/apis/response"
	"labddk/pkg/bench"
	"labddk/pkg/driver"
	"labddk/pkg/drivers"
	"labddk/pkg/generic"
	genericruntime "labddk/pkg/generic/runtime"
	"labddk/pkg/runtime"
	"labddk/pkg/runtime/constant"
	v1 "labddk/pkg/v1"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"k8s.io/klog/v2"
	"os"
)

const publishBatchSize = 128

type Option func(*Manager)

type Manager struct {
	benchMeta            *bench.BenchMeta
	mqttClient           mqtt.Client
	mu                   *sync.Mutex
	instrumentManager    map[string]InstrumentManager
	instruments          *sync.Map
	heartBeatInstruments *sync.Map
	store                *generic.Store
	brokers              map[string]runtime.Broker
	brokerReturnCh       map[string]chan *runtime.ParseReadingResult
	stopCh               <-chan struct{}
	instrumentStatusCh   chan string
	closers              []runtime.LabeledCloser
}

func NewManager(store *generic.Store, mqttClient mqtt.Client, benchMeta *bench.BenchMeta, stop <-chan struct{}, opts ...Option) *Manager {
	m := &Manager{
		benchMeta:            benchMeta,
		mqttClient:           mqttClient,
		mu:                   &sync.Mutex{},
		instruments:          &sync.Map{},
		heartBeatInstruments: &sync.Map{},
		instrumentManager:    InstrumentManagers,
		brokers:              make(map[string]runtime.Broker, 0),
		brokerReturnCh:       make(map[string]chan *runtime.ParseReadingResult, 0),
		store:                store,
		stopCh:               stop,
		instrumentStatusCh:   make(chan string, 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func WithLabeledClosers(closers []runtime.LabeledCloser) Option {
	return func(m *Manager) {
		m.closers = closers
	}
}

func (m *Manager) Init() {
	instruments, _ := m.store.LoadResource()
	for _, object := range instruments {
		obj, _ := runtime.AccessorInstrument(object)
		m.instruments.Store(obj.GetID(), obj)

		if err := m.readyCollect(obj); err != nil {
			if errors.Is(err, constant.ErrConnectInstrument) {
				m.heartBeatInstruments.Store(obj.GetID(), obj)
			} else {
				klog.V(2).InfoS("Failed to start process collect instrument data", "instrumentId", obj.GetID())
			}
		}
	}

	go m.heartBeatDetection()
	go m.listeningInstrumentStatusCh()
}

func (m *Manager) CreateInstrument(object v1.InstrumentType) (runtime.Instrument, error) {
	manager, ok := m.instrumentManager[object.GetDriverModel()]
	if !ok {
		klog.V(2).InfoS("Unsupported driver model", "driverModel", object.GetDriverModel())
		return nil, constant.ErrInstrumentType
	}
	instrument, err := manager.CreateInstrument(object)
	if err != nil {
		klog.V(2).InfoS("Failed to create instrument", "error", err)
		return nil, err
	}

	if errs := runtime.Validate(instrument.GetName(), validateInstrumentName); len(errs) > 0 {
		klog.V(2).InfoS("Failed to validate instrument", "errors", errs.ToAggregate())
		return nil, apis.ErrInvalidValue
	}

	created, err := m.store.Create(instrument)
	if err != nil {
		klog.V(2).InfoS("Failed to store instrument", "error", err)
		return nil, err
	}
	ri := created.(runtime.Instrument)
	m.instruments.Store(ri.GetID(), ri)

	if err = m.readyCollect(ri); err != nil {
		if errors.Is(err, constant.ErrConnectInstrument) {
			m.heartBeatInstruments.Store(ri.GetID(), ri)
		} else {
			klog.V(2).InfoS("Failed to start process collect instrument data", "instrumentId", ri.GetID())
			return nil, err
		}
	}

	return ri, nil
}

func (m *Manager) DeleteInstrument(id string, version string) (runtime.Instrument, error) {
	instrument, err := m.GetInstrumentById(id, false)
	if err != nil {
		return nil, err
	}

	if instrument.GetVersion() != version {
		return nil, apis.ErrMismatch
	}

	d, err := m.instrumentManager[instrument.GetDriverModel()].DeleteInstrument(instrument)
	if err != nil {
		klog.V(2).InfoS("Failed to delete instrument", "error", err)
		return nil, err
	}

	if _, err := m.store.Delete(d); err != nil {
		klog.V(2).InfoS("Failed to delete instrument", "instrumentId", instrument.GetID())
	}

	klog.V(2).InfoS("Deleted instrument", "instrumentId", instrument.GetID())

	go func() {
		if err := m.cancelCollect(instrument); err != nil {
			klog.V(2).InfoS("Failed to cancel collect process", "instrumentId", instrument.GetID())
		}
	}()

	m.instruments.Delete(instrument.GetID())
	return instrument, nil
}

func (m *Manager) UpdateInstrumentById(id string, version string, newObj v1.InstrumentType) (runtime.Instrument, error) {
	i, err := m.GetInstrumentById(id, true)
	if err != nil {
		return nil, err
	}

	if version != i.GetVersion() {
		return nil, apis.ErrMismatch
	}

	copied := i.DeepCopyObject()
	ci := copied.(runtime.Instrument)

	if err = m.instrumentManager[i.GetDriverModel()].UpdateValidation(newObj, ci); err != nil {
		return nil, err
	}

	instrument, err := m.instrumentManager[i.GetDriverModel()].UpdateInstrument(id, newObj, ci)
	if err != nil {
		klog.V(2).InfoS("Failed to update instrument", "error", err)
		return nil, err
	}

	updated, err := m.store.Update(instrument)
	if err != nil {
		klog.V(2).InfoS("Failed to update instrument", "error", err)
		return nil, err
	}
	ri := updated.(runtime.Instrument)
	m.instruments.Store(ri.GetID(), updated)

	return ri, nil
}

func (m *Manager) ListInstruments(filter *runtime.InstrumentFilter, exploded bool) ([]runtime.Instrument, error) {
	ris := make([]runtime.Instrument, 0)
	predicates := runtime.ParseTypeFilter(filter)

	// descend
	byModTime := func(i1, i2 runtime.Instrument) bool { return i1.GetModTime().Before(i2.GetModTime()) }
	sorter := runtime.ByInstrument(byModTime)

	m.instruments.Range(func(key, value interface{}) bool {
		isMatch := true
		v := value.(runtime.Instrument)
		for _, p := range predicates {
			if !p(v) {
				isMatch = false
				break
			}
		}
		if isMatch {
			ris = sorter.Insert(ris, v)
		}
		return true
	})

	if !exploded {
		for i := range ris {
			ris[i] = m.foldInstrument(ris[i])
		}
	}

	return ris, nil
}

func (m *Manager) GetInstrumentById(id string, exploded bool) (runtime.Instrument, error) {
	d, isExist := m.instruments.Load(id)
	if !isExist {
		return nil, os.ErrNotExist
	}
	instrument, _ := d.(runtime.Instrument)
	if !exploded {
		return m.foldInstrument(instrument), nil
	}
	return instrument, nil
}

// CommandInfo describes one command of a driver tree: its dot
// separated path, access mode and documentation line.
type CommandInfo struct {
	Path   string        `json:"path"`
	Access driver.Access `json:"access"`
	Doc    string        `json:"doc,omitempty"`
}

// ListCommands walks the driver tree of the instrument's model and
// returns its command metadata. The tree is built detached from any
// transport, no instrument traffic happens.
func (m *Manager) ListCommands(id string) ([]CommandInfo, error) {
	instrument, err := m.GetInstrumentById(id, true)
	if err != nil {
		return nil, err
	}
	root, err := drivers.Build(instrument.GetDriverModel(), nil)
	if err != nil {
		return nil, err
	}
	infos := make([]CommandInfo, 0)
	root.Walk(func(path string, c *driver.Command) {
		infos = append(infos, CommandInfo{Path: path, Access: c.Access(), Doc: c.Doc()})
	})
	return infos, nil
}

func (m *Manager) SwitchInstrumentStatus(id string, status string) error {
	if _, err := m.GetInstrumentById(id, true); err != nil {
		klog.V(2).InfoS("Failed to find instrument", "instrumentId", id)
		return err
	}
	if _, ok := runtime.StringToInstrumentStatusCh[status]; !ok {
		klog.V(2).InfoS("Unsupported instrument status", "status", status)
		return response.ErrInstrumentOperatorUnSupported(status)
	}
	isc := id + "-" + status
	m.instrumentStatusCh <- isc
	return nil
}

func (m *Manager) DeliverAction(id string, actions []map[string]interface{}) error {
	instrument, err := m.GetInstrumentById(id, true)
	if err != nil {
		klog.V(2).InfoS("Failed to find instrument", "instrumentId", id)
		return response.NewMultiError(response.ErrInstrumentNotFound(id))
	}

	errs := &response.MultiError{}
	legalActions := make(map[string]interface{}, 0)
	for _, item := range actions {
		for k, v := range item {
			if _, exist := legalActions[k]; exist {
				errs.Add(response.ErrResourceExists(k))
				continue
			}
			legalActions[k] = v
		}
	}

	if errs.Len() > 0 {
		return errs
	}

	if len(legalActions) == 0 {
		return response.NewMultiError(response.ErrLegalActionNotFound)
	}

	if instrument.GetCollectStatus() == runtime.CollectStatusToString[runtime.Unconnected] {
		klog.V(2).InfoS("Failed to connect instrument", "instrumentId", id)
		return response.NewMultiError(response.ErrInstrumentNotConnect(id))
	}

	broker, ok := m.brokers[id]
	if !ok {
		return response.NewMultiError(response.ErrInstrumentNotConnect(id))
	}
	return broker.DeliverAction(context.Background(), legalActions)
}

func (m *Manager) cancelCollect(obj runtime.Instrument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// switch status
	obj.SetCollectStatus(runtime.CollectStatusToString[runtime.Stopped])
	// delete heartBeat instruments if exist
	if _, exist := m.heartBeatInstruments.Load(obj.GetID()); exist {
		m.heartBeatInstruments.Delete(obj.GetID())
	}
	if v, ok := m.brokers[obj.GetID()]; ok {
		v.Destroy(context.Background())
		delete(m.brokers, obj.GetID())
		delete(m.brokerReturnCh, obj.GetID())
	}
	return nil
}

func (m *Manager) readyCollect(obj runtime.Instrument) error {
	newBroker, ok := InstrumentBrokerMap[obj.GetDriverModel()]
	if !ok {
		return constant.ErrInstrumentType
	}
	broker, results, err := newBroker(obj)
	if err != nil {
		switch {
		case errors.Is(err, constant.ErrConnectInstrument):
			obj.SetCollectStatus(runtime.CollectStatusToString[runtime.Unconnected])
			return err
		case errors.Is(err, constant.ErrInstrumentEmptyCommands):
			obj.SetCollectStatus(runtime.CollectStatusToString[runtime.EmptyCommand])
			return nil
		default:
			return err
		}
	}
	obj.SetCollectStatus(runtime.CollectStatusToString[runtime.Collecting])
	klog.V(2).InfoS("Succeed to collect data", "instrumentId", obj.GetID())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.brokers[obj.GetID()] = broker
	m.brokerReturnCh[obj.GetID()] = results

	topic := obj.GetTopic()
	if len(topic) == 0 {
		topic = fmt.Sprintf("data/%s/v1/%s", m.benchMeta.ID, obj.GetID())
		obj.SetTopic(topic)
	}

	broker.Collect(context.Background())
	go func(instrumentId string, ch chan *runtime.ParseReadingResult) {
		for {
			select {
			case _, ok := <-m.stopCh:
				if !ok {
					return
				}
			case prr, ok := <-ch:
				if ok {
					if v, ok := m.instruments.Load(instrumentId); ok {
						if len(prr.Err) == 0 {
							if v.(runtime.Instrument).GetCollectStatus() != runtime.CollectStatusToString[runtime.Collecting] {
								v.(runtime.Instrument).SetCollectStatus(runtime.CollectStatusToString[runtime.Collecting])
							}
							m.publish(topic, prr.Readings)
						} else {
							v.(runtime.Instrument).SetCollectStatus(runtime.CollectStatusToString[runtime.CollectingError])
						}
					} else {
						klog.V(2).InfoS("Failed to load instrument", "instrumentId", instrumentId)
					}
				} else {
					klog.V(2).InfoS("Stopped to collect data", "instrumentId", instrumentId)
					return
				}
			}
		}
	}(obj.GetID(), results)
	return nil
}

func (m *Manager) publish(topic string, readings []runtime.PointData) {
	timestamp := runtime.Time(time.Now().UTC())
	for _, batch := range genericruntime.InGroupOf(readings, publishBatchSize) {
		publishData := runtime.PublishData{Payload: runtime.Payload{Data: []runtime.TimeSeriesData{{
			Timestamp: timestamp,
			Values:    batch,
		}}}}

		marshal, _ := json.Marshal(publishData)
		token := m.mqttClient.Publish(topic, 1, false, marshal)
		if token.WaitTimeout(mqttTimeout) && token.Error() == nil {
			klog.V(5).InfoS("Succeed to publish MQTT", "topic", topic, "data", publishData)
		} else {
			klog.V(1).InfoS("Failed to publish MQTT", "topic", topic, "err", token.Error())
		}
	}
}

func (m *Manager) Shutdown(context context.Context) error {
	for _, c := range m.brokers {
		c.Destroy(context)
	}

	m.mqttClient.Disconnect(2000)
	var errs []string
	for i := len(m.closers); i > 0; i-- {
		lc := m.closers[i-1]
		if err := lc.Closer(context); err != nil {
			klog.V(2).InfoS("Failed to stopped Dependencies service", "service", lc.Label)
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("Failed to shutdown server: [%s]\n", strings.Join(errs, ","))
	}
	return nil
}

func (m *Manager) foldInstrument(instrument runtime.Instrument) runtime.Instrument {
	return &runtime.InstrumentMeta{
		ObjectMeta: runtime.ObjectMeta{
			Name:    instrument.GetName(),
			ID:      instrument.GetID(),
			Version: instrument.GetVersion(),
			ModTime: instrument.GetModTime(),
		},
		DriverModel:   instrument.GetDriverModel(),
		Port:          instrument.GetPort(),
		Topic:         instrument.GetTopic(),
		PollPeriod:    instrument.GetPollPeriod(),
		CollectStatus: instrument.GetCollectStatus(),
	}
}

func (m *Manager) heartBeatDetection() {
	tick := time.Tick(heartBeatTimeInterval)
	for {
		select {
		case _, ok := <-m.stopCh:
			if !ok {
				return
			}
		case <-tick:
			resumeInstruments := make([]string, 0, 0)
			m.heartBeatInstruments.Range(func(key, value any) bool {
				d := value.(runtime.Instrument)
				if err := m.readyCollect(d); err == nil {
					resumeInstruments = append(resumeInstruments, key.(string))
					return true
				}
				return false
			})
			if len(resumeInstruments) > 0 {
				for _, instrumentId := range resumeInstruments {
					m.heartBeatInstruments.Delete(instrumentId)
				}
			}
		}
	}
}

func (m *Manager) listeningInstrumentStatusCh() {
	for {
		select {
		case _, ok := <-m.stopCh:
			if !ok {
				return
			}
		case statusCh, ok := <-m.instrumentStatusCh:
			if !ok {
				return
			}
			// the status word never contains a dash, the id may
			sep := strings.LastIndex(statusCh, "-")
			if sep < 0 {
				continue
			}
			instrumentId := statusCh[:sep]
			status := statusCh[sep+1:]
			d, exist := m.instruments.Load(instrumentId)
			if !exist {
				klog.V(2).InfoS("Failed to find instrument", "instrumentId", instrumentId)
				continue
			}
			m.switchInstrumentStatus(d.(runtime.Instrument), status)
		}
	}
}

func (m *Manager) switchInstrumentStatus(instrument runtime.Instrument, status string) {
	resume := func() {
		if err := m.readyCollect(instrument); err != nil {
			if errors.Is(err, constant.ErrConnectInstrument) {
				m.heartBeatInstruments.Store(instrument.GetID(), instrument)
			} else {
				klog.V(2).InfoS("Failed to start process collect instrument data", "instrumentId", instrument.GetID())
			}
		}
	}

	cs := instrument.GetCollectStatus()
	switch runtime.StringToCollectStatus[cs] {
	case runtime.Collecting:
		switch runtime.StringToInstrumentStatusCh[status] {
		case runtime.Start:
			return
		case runtime.Restart:
			_ = m.cancelCollect(instrument)
			resume()
			return
		case runtime.Stop:
			_ = m.cancelCollect(instrument)
			return
		}
	case runtime.CollectingError, runtime.Error, runtime.EmptyCommand, runtime.Unconnected:
		switch runtime.StringToInstrumentStatusCh[status] {
		case runtime.Restart, runtime.Start:
			_ = m.cancelCollect(instrument)
			resume()
			return
		case runtime.Stop:
			_ = m.cancelCollect(instrument)
			return
		}
	case runtime.Stopped:
		switch runtime.StringToInstrumentStatusCh[status] {
		case runtime.Restart, runtime.Start:
			resume()
			return
		case runtime.Stop:
			return
		}
	}
}
