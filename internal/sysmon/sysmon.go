// Package sysmon provides system-wide CPU and memory usage sampling and
// reports how many execution units the process may run on.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// affinityCount is replaced per platform; it returns 0 when the scheduler
// affinity mask is unavailable.
var affinityCount = platformAffinityCount

// logicalCount asks gopsutil for the logical CPU count.
var logicalCount = func() (int, error) {
	return cpu.Counts(true)
}

// AvailableCPUs returns the number of execution units this process can use:
// the scheduler affinity mask where the platform exposes one, otherwise the
// logical CPU count. It never returns less than 1.
func AvailableCPUs() int {
	if n := affinityCount(); n > 0 {
		return n
	}
	if n, err := logicalCount(); err == nil && n > 0 {
		return n
	}
	return 1
}
