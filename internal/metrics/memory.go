// Package metrics reads Go runtime statistics for the dashboard footer.
package metrics

import (
	"fmt"
	"runtime"

	"github.com/agbru/picalc/internal/format"
)

// RuntimeSnapshot holds a point-in-time reading of the Go runtime.
type RuntimeSnapshot struct {
	HeapAlloc    uint64 // bytes in use by the process
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	Goroutines   int    // live goroutines, workers included
}

// String renders the snapshot on one line.
func (s RuntimeSnapshot) String() string {
	return fmt.Sprintf("heap %s / sys %s | gc %d | goroutines %d",
		format.FormatBytes(s.HeapAlloc), format.FormatBytes(s.Sys), s.NumGC, s.Goroutines)
}

// RuntimeCollector reads runtime memory statistics and the goroutine count.
type RuntimeCollector struct {
	readMemStats func(*runtime.MemStats)
	numGoroutine func() int
}

// NewRuntimeCollector creates a collector backed by the runtime package.
func NewRuntimeCollector() *RuntimeCollector {
	return &RuntimeCollector{
		readMemStats: runtime.ReadMemStats,
		numGoroutine: runtime.NumGoroutine,
	}
}

// Snapshot reads current runtime statistics. ReadMemStats stops the world
// briefly, so callers poll it at display frequency only.
func (rc *RuntimeCollector) Snapshot() RuntimeSnapshot {
	var m runtime.MemStats
	rc.readMemStats(&m)
	return RuntimeSnapshot{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		Goroutines:   rc.numGoroutine(),
	}
}
