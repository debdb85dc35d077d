package probe

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SectionSeparator splits the sections of batched command output.
const SectionSeparator = "---"

// Section order in batched output.
const (
	sectionStat = iota
	sectionLoadavg
	sectionMeminfo
	sectionNetDev
	sectionUptime
	sectionHostname
	sectionCount
)

// CPUTimes is the aggregate jiffy count from the "cpu" line of /proc/stat.
type CPUTimes struct {
	Total int64
	Idle  int64 // idle + iowait
}

// ParseCPU parses /proc/stat, returning the aggregate counters and the number
// of cpuN lines.
func ParseCPU(procStat string) (CPUTimes, int, error) {
	var times CPUTimes
	cores := 0
	found := false

	scanner := bufio.NewScanner(strings.NewReader(procStat))
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "cpu") && len(line) > 3 && line[3] >= '0' && line[3] <= '9' {
			cores++
			continue
		}
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return CPUTimes{}, 0, fmt.Errorf("invalid /proc/stat cpu line: %s", line)
		}
		// cpu user nice system idle iowait irq softirq steal guest guest_nice
		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return CPUTimes{}, 0, fmt.Errorf("failed to parse cpu field %d: %w", i, err)
			}
			times.Total += val
			if i == 4 || i == 5 {
				times.Idle += val
			}
		}
		found = true
	}
	if err := scanner.Err(); err != nil {
		return CPUTimes{}, 0, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	if !found {
		return CPUTimes{}, 0, fmt.Errorf("no aggregate cpu line in /proc/stat")
	}
	return times, cores, nil
}

// BusyPercent returns the share of non-idle time between prev and t.
func (t CPUTimes) BusyPercent(prev CPUTimes) float64 {
	total := t.Total - prev.Total
	idle := t.Idle - prev.Idle
	if total <= 0 {
		return 0
	}
	return float64(total-idle) / float64(total) * 100
}

// ParseLoadavg parses the first three fields of /proc/loadavg.
func ParseLoadavg(procLoadavg string) ([3]float64, error) {
	var load [3]float64
	fields := strings.Fields(strings.TrimSpace(procLoadavg))
	if len(fields) < 3 {
		return load, fmt.Errorf("invalid /proc/loadavg: %q", procLoadavg)
	}
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return load, fmt.Errorf("failed to parse loadavg field %d: %w", i, err)
		}
		load[i] = val
	}
	return load, nil
}

// Memory is the subset of /proc/meminfo statusboard shows, in bytes.
type Memory struct {
	Total     int64
	Used      int64
	Available int64
}

// ParseMemory parses /proc/meminfo. Used excludes buffers and page cache.
func ParseMemory(procMeminfo string) (Memory, error) {
	var memTotal, memFree, memAvailable, buffers, cached int64
	found := 0

	scanner := bufio.NewScanner(strings.NewReader(procMeminfo))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		val, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		// kB
		val *= 1024

		switch strings.TrimSuffix(parts[0], ":") {
		case "MemTotal":
			memTotal = val
			found++
		case "MemFree":
			memFree = val
			found++
		case "MemAvailable":
			memAvailable = val
			found++
		case "Buffers":
			buffers = val
			found++
		case "Cached":
			cached = val
			found++
		}
	}
	if err := scanner.Err(); err != nil {
		return Memory{}, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}
	if found < 3 {
		return Memory{}, fmt.Errorf("insufficient memory info found in /proc/meminfo")
	}

	return Memory{
		Total:     memTotal,
		Used:      memTotal - memFree - buffers - cached,
		Available: memAvailable,
	}, nil
}

// NetCounters are cumulative byte counters summed across interfaces.
type NetCounters struct {
	RxBytes int64
	TxBytes int64
}

// ParseNetwork sums the receive and transmit byte counters from /proc/net/dev,
// skipping the two header lines and the loopback interface.
func ParseNetwork(procNetDev string) (NetCounters, error) {
	var sum NetCounters

	scanner := bufio.NewScanner(strings.NewReader(procNetDev))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= 2 {
			continue
		}

		// "  iface: bytes packets errs drop fifo frame compressed multicast | bytes packets..."
		name, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "lo" {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 16 {
			continue
		}

		rx, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return NetCounters{}, fmt.Errorf("failed to parse bytes_in for %s: %w", name, err)
		}
		tx, err := strconv.ParseInt(fields[8], 10, 64)
		if err != nil {
			return NetCounters{}, fmt.Errorf("failed to parse bytes_out for %s: %w", name, err)
		}
		sum.RxBytes += rx
		sum.TxBytes += tx
	}
	if err := scanner.Err(); err != nil {
		return NetCounters{}, fmt.Errorf("error scanning /proc/net/dev: %w", err)
	}
	return sum, nil
}

// ParseUptime parses the first field of /proc/uptime.
func ParseUptime(procUptime string) (time.Duration, error) {
	fields := strings.Fields(procUptime)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty /proc/uptime")
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse uptime: %w", err)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// splitSections splits batched output into its sections. Missing trailing
// sections come back empty.
func splitSections(output string) []string {
	parts := strings.Split(output, SectionSeparator+"\n")
	sections := make([]string, sectionCount)
	for i := 0; i < sectionCount && i < len(parts); i++ {
		sections[i] = strings.TrimSpace(parts[i])
	}
	return sections
}
