package options

import (
	"fmt"
	"time"

	"labddk/cmd/ddk/config"
	"labddk/pkg/bench"
	"labddk/pkg/generic"
	baseoptions "labddk/pkg/generic/options"
	"labddk/pkg/instrument"
	"labddk/pkg/storage"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

type Options struct {
	Port         string        `json:"port"`
	Wait         time.Duration `json:"graceful-timeout"`
	MqttBroker   string        `json:"mqtt-broker"`
	MqttUsername string        `json:"mqtt-username"`
	MqttPassword string        `json:"mqtt-password"`
	CertFile     string        `json:"cert-file"`
	KeyFile      string        `json:"key-file"`
	baseoptions.BaseOptions
}

const (
	_defaultPort       = "32200"
	_defaultWait       = 15 * time.Second
	_defaultMqttBroker = "tcp://127.0.0.1:1883"

	_mqttConnectTimeout = 5 * time.Second
)

func NewDefaultOptions() *Options {
	return &Options{
		Port:        _defaultPort,
		Wait:        _defaultWait,
		MqttBroker:  _defaultMqttBroker,
		BaseOptions: baseoptions.NewDefaultBaseOptions(),
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	// refer to node port assignment https://rancher.com/docs/rancher/v2.x/en/installation/requirements/ports/#commonly-used-ports
	fs.StringVarP(&o.Port, "port", "P", o.Port, "Port exposed")
	fs.DurationVar(&o.Wait, "graceful-timeout", o.Wait, "The duration for which the server gracefully wait for existing connections to finish - e.g. 15s or 1m")
	fs.StringVar(&o.MqttBroker, "mqtt-broker", o.MqttBroker, "MQTT broker URI the collected readings are published to - e.g. tcp://127.0.0.1:1883")
	fs.StringVar(&o.MqttUsername, "mqtt-username", o.MqttUsername, "MQTT broker username")
	fs.StringVar(&o.MqttPassword, "mqtt-password", o.MqttPassword, "MQTT broker password")
	fs.StringVar(&o.CertFile, "cert-file", o.CertFile, "TLS certificate file, the server stays on plain HTTP when empty")
	fs.StringVar(&o.KeyFile, "key-file", o.KeyFile, "TLS private key file")
}

func (o *Options) Config(stopCh <-chan struct{}) (*config.Config, error) {
	c := &config.Config{
		CertFile: o.CertFile,
		KeyFile:  o.KeyFile,
	}

	benchMgr := bench.NewBenchManager(stopCh)
	benchMgr.Init()
	benchMeta, _ := benchMgr.GetBenchMeta()
	c.BenchMgr = benchMgr

	store, _ := generic.NewStore(storage.StoreGroupToString[storage.StoreGroupInstrument], storage.Instruments, generic.InstrumentObjectMap)

	mqttOptions := mqtt.NewClientOptions().
		AddBroker(o.MqttBroker).
		SetClientID(fmt.Sprintf("labddk-%s", benchMeta.ID)).
		SetUsername(o.MqttUsername).
		SetPassword(o.MqttPassword).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectTimeout(_mqttConnectTimeout)
	mqttClient := mqtt.NewClient(mqttOptions)
	if token := mqttClient.Connect(); token.WaitTimeout(_mqttConnectTimeout) && token.Error() != nil {
		klog.V(1).InfoS("Failed to connect MQTT broker,retrying in background", "broker", o.MqttBroker, "err", token.Error())
	}

	instrumentMgr := instrument.NewManager(store, mqttClient, benchMeta, stopCh)
	instrumentMgr.Init()
	c.InstrumentMgr = instrumentMgr

	return c, nil
}

func Validate(o *Options) []error {
	var errs []error
	if len(o.Port) == 0 {
		errs = append(errs, fmt.Errorf("port must not be empty"))
	}
	if len(o.MqttBroker) == 0 {
		errs = append(errs, fmt.Errorf("mqtt-broker must not be empty"))
	}
	return errs
}
