package probe

import (
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/statusboard/internal/errors"
)

// deltaTracker turns cumulative counters into rates. The first observation
// only primes it.
type deltaTracker struct {
	mu      sync.Mutex
	primed  bool
	prevCPU CPUTimes
	prevNet NetCounters
	prevAt  time.Time
}

func (d *deltaTracker) observe(at time.Time, cpu CPUTimes, net NetCounters) (cpuPercent, rxRate, txRate float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.primed {
		cpuPercent = cpu.BusyPercent(d.prevCPU)
		if secs := at.Sub(d.prevAt).Seconds(); secs > 0 {
			// Counters reset on interface restarts; a negative delta reads as idle.
			if rx := net.RxBytes - d.prevNet.RxBytes; rx > 0 {
				rxRate = float64(rx) / secs
			}
			if tx := net.TxBytes - d.prevNet.TxBytes; tx > 0 {
				txRate = float64(tx) / secs
			}
		}
	}

	d.primed = true
	d.prevCPU = cpu
	d.prevNet = net
	d.prevAt = at
	return cpuPercent, rxRate, txRate
}

// buildSample parses batched sections into a Sample. host is used when the
// output carries no hostname section.
func (d *deltaTracker) buildSample(host string, at time.Time, sections []string) (*Sample, error) {
	if len(sections) < sectionCount {
		padded := make([]string, sectionCount)
		copy(padded, sections)
		sections = padded
	}

	cpu, cores, err := ParseCPU(sections[sectionStat])
	if err != nil {
		return nil, parseError(host, err)
	}
	load, err := ParseLoadavg(sections[sectionLoadavg])
	if err != nil {
		return nil, parseError(host, err)
	}
	mem, err := ParseMemory(sections[sectionMeminfo])
	if err != nil {
		return nil, parseError(host, err)
	}
	net, err := ParseNetwork(sections[sectionNetDev])
	if err != nil {
		return nil, parseError(host, err)
	}

	s := &Sample{
		Host:         host,
		Timestamp:    at,
		Cores:        cores,
		LoadAvg:      load,
		MemTotal:     mem.Total,
		MemUsed:      mem.Used,
		MemAvailable: mem.Available,
	}
	if up, err := ParseUptime(sections[sectionUptime]); err == nil {
		s.Uptime = up
	}
	if name := sections[sectionHostname]; name != "" {
		s.Host = name
	}
	s.CPUPercent, s.NetRxRate, s.NetTxRate = d.observe(at, cpu, net)
	return s, nil
}

func parseError(host string, err error) error {
	return errors.WrapWithCode(err, errors.ErrProbe,
		fmt.Sprintf("Couldn't read metrics from %s", host),
		"statusboard reads /proc; the host must be running Linux")
}
