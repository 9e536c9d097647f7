// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"
)

// MethodMetrics holds aggregated metrics for a single MCP method.
type MethodMetrics struct {
	Count     int64
	Errors    int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// MethodSnapshot provides computed stats from raw metrics.
type MethodSnapshot struct {
	Count       int64   `json:"count"`
	Errors      int64   `json:"errors"`
	TotalTimeMs int64   `json:"total_time_ms"`
	AvgTimeMs   float64 `json:"avg_time_ms"`
	MinTimeMs   int64   `json:"min_time_ms"`
	MaxTimeMs   int64   `json:"max_time_ms"`
}

// Snapshot represents the full server statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64                   `json:"uptime_seconds"`
	Methods       map[string]MethodSnapshot `json:"methods,omitempty"`
}

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	methods   map[string]*MethodMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		methods:   make(map[string]*MethodMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for a method.
// Caller must hold write lock.
func (c *Collector) getOrCreate(method string) *MethodMetrics {
	m, ok := c.methods[method]
	if !ok {
		m = &MethodMetrics{
			MinTime: time.Duration(math.MaxInt64),
		}
		c.methods[method] = m
	}
	return m
}

// Record records one completed call for a method.
func (c *Collector) Record(method string, duration time.Duration, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(method)
	m.Count++
	m.TotalTime += duration
	if failed {
		m.Errors++
	}

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
	}
	if len(c.methods) == 0 {
		return snap
	}

	snap.Methods = make(map[string]MethodSnapshot, len(c.methods))
	for method, m := range c.methods {
		if m.Count == 0 {
			continue
		}
		snap.Methods[method] = MethodSnapshot{
			Count:       m.Count,
			Errors:      m.Errors,
			TotalTimeMs: m.TotalTime.Milliseconds(),
			AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
			MinTimeMs:   m.MinTime.Milliseconds(),
			MaxTimeMs:   m.MaxTime.Milliseconds(),
		}
	}
	return snap
}
