package health

import (
	"context"
	"fmt"
	"runtime"
)

// MemoryProbeConfig configures the built-in memory probe.
type MemoryProbeConfig struct {
	// RedThreshold is the fraction of MaxAlloc at which the probe turns
	// red. Value should be between 0 and 1. Default: 0.95 (95%)
	RedThreshold float64

	// MaxAlloc is the maximum expected allocation in bytes.
	// If zero, the runtime's Sys figure is used as an approximation.
	MaxAlloc uint64
}

// MemoryProbe is a leaf probe over the runtime's heap statistics.
type MemoryProbe struct {
	config MemoryProbeConfig
}

// NewMemoryProbe creates a memory probe.
func NewMemoryProbe(config MemoryProbeConfig) *MemoryProbe {
	if config.RedThreshold <= 0 || config.RedThreshold >= 1 {
		config.RedThreshold = 0.95
	}
	return &MemoryProbe{config: config}
}

// Name returns the name of this probe.
func (m *MemoryProbe) Name() string {
	return "memory"
}

// Check reads the runtime memory statistics and compares heap usage against
// the configured threshold.
func (m *MemoryProbe) Check(ctx context.Context) (ProbeResult, error) {
	select {
	case <-ctx.Done():
		return ProbeResult{}, ctx.Err()
	default:
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	maxAlloc := m.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}
	if maxAlloc == 0 {
		// No usable ceiling; report healthy rather than guess.
		return Green(m.Name()), nil
	}

	usage := float64(stats.Alloc) / float64(maxAlloc)
	if usage >= m.config.RedThreshold {
		return Red(m.Name(), fmt.Sprintf("memory usage critical: %.1f%%", usage*100)), nil
	}
	return Green(m.Name()), nil
}
