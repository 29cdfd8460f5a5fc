package bench

import (
	"bytes"
	"encoding/json"
	"fmt"
	"labddk/pkg/runtime"
	"labddk/pkg/storage"
	"labddk/pkg/utils/randutil"
	"labddk/pkg/utils/uuidutil"
	"os"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"k8s.io/klog/v2"
)

type Option func(*Manager)

type Manager struct {
	benchMeta *BenchMeta
	stopCh    <-chan struct{}
}

func NewBenchManager(stop <-chan struct{}, opts ...Option) *Manager {
	m := &Manager{
		benchMeta: &BenchMeta{},
		stopCh:    stop,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Init() {
	client := &storage.FsClient{}
	client.Init(storage.StoreGroupBench)

	gd, err := client.Get(bench)
	if err != nil && !os.IsNotExist(err) {
		klog.V(2).InfoS("Failed to read bench information", "err", err)
		return
	}
	if err != nil {
		m.benchMeta = &BenchMeta{
			Secret: "",
			ObjectMeta: runtime.ObjectMeta{
				Name:    "labddk",
				ID:      uuidutil.UUID(),
				Version: strconv.FormatUint(randutil.Uint64n(), 10),
				ModTime: time.Now(),
			},
		}
		klog.V(3).InfoS("Bench information not exist,been created automatically", "benchId", m.benchMeta.ID)
		if _, err := client.Create(bench, m.benchMeta); err != nil {
			klog.V(2).InfoS("Failed to create bench information", "err", err)
		}
	} else if err = json.NewDecoder(bytes.NewReader(gd.([]byte))).Decode(m.benchMeta); err != nil {
		klog.V(2).InfoS("Failed to unmarshal bench information", "err", err)
		return
	}
}

func (m *Manager) GetBenchMeta() (*BenchMeta, error) {
	return m.benchMeta, nil
}

func (m *Manager) getBenchCpu() ([]float64, error) {
	percents, err := cpu.Percent(time.Second, true)
	if err != nil {
		klog.V(2).InfoS("Failed to stat cpu usage", "err", err)
		return nil, err
	}
	return percents, nil
}

func (m *Manager) getBenchMem() (*MemUsageInfo, error) {
	stat, err := mem.VirtualMemory()
	if err != nil {
		klog.V(2).InfoS("Failed to stat memory usage", "err", err)
		return nil, err
	}
	return &MemUsageInfo{
		Total:       formatBytes(stat.Total),
		Used:        formatBytes(stat.Used),
		UsedPercent: fmt.Sprintf("%.1f%%", stat.UsedPercent),
	}, nil
}

func (m *Manager) getBenchDisk() ([]*DiskUsageInfo, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		klog.V(2).InfoS("Failed to list disk partitions", "err", err)
		return nil, err
	}
	infos := make([]*DiskUsageInfo, 0, len(partitions))
	for _, partition := range partitions {
		stat, err := disk.Usage(partition.Mountpoint)
		if err != nil {
			klog.V(3).InfoS("Failed to stat disk usage", "mountpoint", partition.Mountpoint, "err", err)
			continue
		}
		infos = append(infos, &DiskUsageInfo{
			Total:       formatBytes(stat.Total),
			Used:        formatBytes(stat.Used),
			UsedPercent: fmt.Sprintf("%.1f%%", stat.UsedPercent),
		})
	}
	return infos, nil
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(n)/float64(div), "KMGTPE"[exp])
}
