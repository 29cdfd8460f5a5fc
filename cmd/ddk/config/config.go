package config

import (
	"labddk/pkg/bench"
	"labddk/pkg/instrument"
)

type Config struct {
	InstrumentMgr *instrument.Manager
	BenchMgr      *bench.Manager
	CertFile      string
	KeyFile       string
}
