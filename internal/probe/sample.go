// Package probe collects the host metrics that statusboard windows display.
//
// A Sampler returns one Sample per call. Local samplers read /proc directly;
// remote samplers run a single batched command over SSH and parse the same
// files from its output. CPU usage and network rates are deltas, so the
// first Sample after a Sampler is created reports them as zero.
package probe

import (
	"context"
	"sort"
	"time"
)

// Metric names understood by Sample.Metric.
const (
	MetricCPUPercent   = "cpu.percent"
	MetricCPUCores     = "cpu.cores"
	MetricLoad1        = "load.1"
	MetricLoad5        = "load.5"
	MetricLoad15       = "load.15"
	MetricMemPercent   = "mem.percent"
	MetricMemUsed      = "mem.used"
	MetricMemTotal     = "mem.total"
	MetricMemAvailable = "mem.available"
	MetricNetRx        = "net.rx"
	MetricNetTx        = "net.tx"
	MetricHostName     = "host.name"
	MetricHostUptime   = "host.uptime"
	MetricClock        = "clock"
)

// Unit says how a reading should be presented when it is shown as text.
type Unit int

const (
	UnitNone Unit = iota
	UnitPercent
	UnitBytes
	UnitBytesPerSecond
	UnitDuration
	UnitTime
)

// Reading is one named value from a Sample. Numeric metrics carry Number;
// text metrics (host.name, clock) carry Text and set IsText.
type Reading struct {
	Number float64
	Text   string
	IsText bool
	Unit   Unit
}

// Sampler produces metric samples for one host.
type Sampler interface {
	Sample(ctx context.Context) (*Sample, error)
	Close() error
}

// Sample holds one collection round.
type Sample struct {
	Host      string
	Timestamp time.Time

	CPUPercent float64
	Cores      int
	LoadAvg    [3]float64

	MemTotal     int64
	MemUsed      int64
	MemAvailable int64

	// Byte rates summed over every interface except loopback.
	NetRxRate float64
	NetTxRate float64

	Uptime time.Duration
}

// MemPercent returns used memory as a percentage of the total.
func (s *Sample) MemPercent() float64 {
	if s.MemTotal <= 0 {
		return 0
	}
	return float64(s.MemUsed) / float64(s.MemTotal) * 100
}

// Metric looks a value up by name.
func (s *Sample) Metric(name string) (Reading, bool) {
	switch name {
	case MetricCPUPercent:
		return Reading{Number: s.CPUPercent, Unit: UnitPercent}, true
	case MetricCPUCores:
		return Reading{Number: float64(s.Cores)}, true
	case MetricLoad1:
		return Reading{Number: s.LoadAvg[0]}, true
	case MetricLoad5:
		return Reading{Number: s.LoadAvg[1]}, true
	case MetricLoad15:
		return Reading{Number: s.LoadAvg[2]}, true
	case MetricMemPercent:
		return Reading{Number: s.MemPercent(), Unit: UnitPercent}, true
	case MetricMemUsed:
		return Reading{Number: float64(s.MemUsed), Unit: UnitBytes}, true
	case MetricMemTotal:
		return Reading{Number: float64(s.MemTotal), Unit: UnitBytes}, true
	case MetricMemAvailable:
		return Reading{Number: float64(s.MemAvailable), Unit: UnitBytes}, true
	case MetricNetRx:
		return Reading{Number: s.NetRxRate, Unit: UnitBytesPerSecond}, true
	case MetricNetTx:
		return Reading{Number: s.NetTxRate, Unit: UnitBytesPerSecond}, true
	case MetricHostName:
		return Reading{Text: s.Host, IsText: true}, true
	case MetricHostUptime:
		return Reading{Number: s.Uptime.Seconds(), Unit: UnitDuration}, true
	case MetricClock:
		return Reading{Text: s.Timestamp.Format(time.TimeOnly), IsText: true, Unit: UnitTime}, true
	}
	return Reading{}, false
}

var metricNames = []string{
	MetricCPUPercent, MetricCPUCores,
	MetricLoad1, MetricLoad5, MetricLoad15,
	MetricMemPercent, MetricMemUsed, MetricMemTotal, MetricMemAvailable,
	MetricNetRx, MetricNetTx,
	MetricHostName, MetricHostUptime, MetricClock,
}

// MetricNames lists every metric name, sorted.
func MetricNames() []string {
	out := append([]string(nil), metricNames...)
	sort.Strings(out)
	return out
}

// KnownMetric reports whether name is a metric Sample.Metric understands.
func KnownMetric(name string) bool {
	for _, m := range metricNames {
		if m == name {
			return true
		}
	}
	return false
}
