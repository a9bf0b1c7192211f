package metrics

import (
	"sort"
	"sync"
	"time"
)

// Collector implements SuiteMetrics with in-memory counters. It is
// safe for concurrent use, so a single Collector can observe
// parallel runs.
type Collector struct {
	mu         sync.RWMutex
	executions map[string]int
	checks     map[string]int
	durations  map[string][]time.Duration
	runTotal   int
	active     int
	peak       int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		executions: make(map[string]int),
		checks:     make(map[string]int),
		durations:  make(map[string][]time.Duration),
	}
}

func (c *Collector) RecordExecution(suite, status string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.executions[suite+":"+status]++
	c.durations[suite] = append(c.durations[suite], duration)
}

func (c *Collector) RecordCheck(suite, check string, passed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[checkKey(suite, check, passed)]++
}

func (c *Collector) IncrementRunTotal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runTotal++
}

func (c *Collector) SetActiveSuites(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = count
	if count > c.peak {
		c.peak = count
	}
}

// ExecutionCount returns how often suite finished with status.
func (c *Collector) ExecutionCount(suite, status string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.executions[suite+":"+status]
}

// CheckCount returns how often check of suite passed or failed.
func (c *Collector) CheckCount(suite, check string, passed bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.checks[checkKey(suite, check, passed)]
}

// Durations returns the recorded durations of suite, oldest first.
func (c *Collector) Durations(suite string) []time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]time.Duration(nil), c.durations[suite]...)
}

// Suites returns the names of every suite with a recorded
// execution, sorted.
func (c *Collector) Suites() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.durations))
	for name := range c.durations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunTotal returns the total number of runs.
func (c *Collector) RunTotal() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.runTotal
}

// ActiveSuites returns the current active suites gauge.
func (c *Collector) ActiveSuites() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// PeakActiveSuites returns the highest value the gauge reached.
func (c *Collector) PeakActiveSuites() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.peak
}

func checkKey(suite, check string, passed bool) string {
	if passed {
		return suite + ":" + check + ":passed"
	}
	return suite + ":" + check + ":failed"
}
