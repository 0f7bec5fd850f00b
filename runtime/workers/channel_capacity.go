package workers

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"time"

	"github.com/shirou/gopsutil/process"
)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelCapacityWorker periodically samples the length of buffered channels
// and warns once a channel fills past threshold percent of its capacity.
// Reading len(channel) and cap(channel) is non-blocking, so this won't interfere
// with other goroutines. Each tick also logs the CPU and memory of the process.
type ChannelCapacityWorker struct {
	log            *slog.Logger
	channels       []NamedChannel
	metricInterval time.Duration
	threshold      int
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel,
	metricInterval time.Duration, threshold int) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:            log,
		channels:       channels,
		metricInterval: metricInterval,
		threshold:      threshold,
	}
}

func (w ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		w.log.Warn("Process metrics unavailable", "error", err)
	}
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping capacity sampling")
			return nil
		case <-ticker.C:
			for _, nc := range w.channels {
				w.sample(nc)
			}
			if p != nil {
				w.sampleProcess(p)
			}
		}
	}
}

func (w ChannelCapacityWorker) sampleProcess(p *process.Process) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		w.log.Debug("Unable to read process memory", "error", err)
		return
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		w.log.Debug("Unable to read process cpu", "error", err)
		return
	}
	w.log.Debug("Process usage", "rss", memInfo.RSS, "cpu", cpuPercent)
}

func (w ChannelCapacityWorker) sample(nc NamedChannel) {
	v := reflect.ValueOf(nc.Channel)
	// Verify if this is a channel
	if v.Kind() != reflect.Chan {
		w.log.Error("Provided object is not a channel", "name", nc.Name)
		return
	}
	capacity, length := v.Cap(), v.Len()
	if capacity == 0 {
		return
	}
	if percent := length * 100 / capacity; percent >= w.threshold {
		w.log.Warn("Channel filling up", "name", nc.Name, "length", length, "capacity", capacity, "percent", percent)
		return
	}
	w.log.Debug("Channel capacity", "name", nc.Name, "length", length, "capacity", capacity)
}
