package runtime

import (
	"context"
	"time"
)

type LabeledCloser struct {
	Label  string
	Closer func(context.Context) error
}

type ResponseModel struct {
	Instruments interface{} `json:"instruments,omitempty"`
}

// ParseReadingResult carries one polling sweep over an instrument:
// the readings that succeeded and the hardware faults that did not.
type ParseReadingResult struct {
	Readings []PointData
	Err      []error
}

type ObjectMeta struct {
	Name    string    `json:"name"`
	ID      string    `json:"id"`
	Version string    `json:"eTag"`
	ModTime time.Time `json:"modTime"`
}

// InstrumentMeta is the stored description common to every driver
// model: which driver to build, where its transport lives and how often
// it is polled.
type InstrumentMeta struct {
	ObjectMeta
	DriverModel   string `json:"driverModel"`
	Port          string `json:"port"`
	Topic         string `json:"topic,omitempty"`
	PollPeriod    uint   `json:"pollPeriod"`
	CollectStatus string `json:"collectStatus,omitempty"`
}

type PublishData struct {
	Payload Payload `json:"payload"`
}

type Payload struct {
	Data []TimeSeriesData `json:"data"`
}

type TimeSeriesData struct {
	Timestamp Time        `json:"timestamp"`
	Values    []PointData `json:"values"`
}

// PointData is one command reading keyed by its dot separated command
// path.
type PointData struct {
	DataPointId string      `json:"dataPointId"`
	Value       interface{} `json:"value"`
}

func (m *InstrumentMeta) DeepCopyObject() RunObject {
	if m == nil {
		return nil
	}
	out := *m
	return &out
}

func (m *InstrumentMeta) GetDriverModel() string {
	return m.DriverModel
}

func (m *InstrumentMeta) SetDriverModel(s string) {
	m.DriverModel = s
}

func (m *InstrumentMeta) GetPort() string {
	return m.Port
}

func (m *InstrumentMeta) SetPort(s string) {
	m.Port = s
}

func (m *InstrumentMeta) GetTopic() string {
	return m.Topic
}

func (m *InstrumentMeta) SetTopic(s string) {
	m.Topic = s
}

func (m *InstrumentMeta) GetPollPeriod() uint {
	return m.PollPeriod
}

func (m *InstrumentMeta) SetPollPeriod(period uint) {
	m.PollPeriod = period
}

func (m *InstrumentMeta) GetCollectStatus() string {
	return m.CollectStatus
}

func (m *InstrumentMeta) SetCollectStatus(status string) {
	m.CollectStatus = status
}

func (meta *ObjectMeta) GetName() string              { return meta.Name }
func (meta *ObjectMeta) SetName(name string)          { meta.Name = name }
func (meta *ObjectMeta) GetID() string                { return meta.ID }
func (meta *ObjectMeta) SetID(id string)              { meta.ID = id }
func (meta *ObjectMeta) GetVersion() string           { return meta.Version }
func (meta *ObjectMeta) SetVersion(version string)    { meta.Version = version }
func (meta *ObjectMeta) GetModTime() time.Time        { return meta.ModTime }
func (meta *ObjectMeta) SetModTime(modTime time.Time) { meta.ModTime = modTime }

// Time marshals as RFC3339Nano, the timestamp format of the publish
// payload.
type Time time.Time
