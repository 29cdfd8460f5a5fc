package bench

import "labddk/pkg/runtime"

// BenchMeta identifies the lab bench host this daemon runs on. It is
// created once and persisted, its ID anchors the default publish topics
// of every instrument.
type BenchMeta struct {
	Secret string `json:"secret"`
	runtime.ObjectMeta
}

type ResponseModel struct {
	Cpus  interface{} `json:"cpus,omitempty"`
	Mem   interface{} `json:"mem,omitempty"`
	Disks interface{} `json:"disk,omitempty"`
}

type MemUsageInfo struct {
	Total       string
	Used        string
	UsedPercent string
}

type DiskUsageInfo struct {
	Total       string
	Used        string
	UsedPercent string
}

const bench = "meta"
