// Package metrics records suite and check outcomes of assertion
// runs.
package metrics

import "time"

// SuiteMetrics defines the interface for recording run metrics.
type SuiteMetrics interface {
	// RecordExecution records a finished suite.
	RecordExecution(suite, status string, duration time.Duration)
	// RecordCheck records one evaluated check of a suite.
	RecordCheck(suite, check string, passed bool)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// SetActiveSuites sets the gauge of running suites.
	SetActiveSuites(count int)
}

// NoopMetrics discards everything. It is the runner default.
type NoopMetrics struct{}

func (NoopMetrics) RecordExecution(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordCheck(_, _ string, _ bool)              {}
func (NoopMetrics) IncrementRunTotal()                           {}
func (NoopMetrics) SetActiveSuites(_ int)                        {}
