package suite

import (
	"time"

	"digital.vasic.typeassert/pkg/assertion"
)

// Status constants for suite outcomes.
const (
	StatusPending = "pending"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// Result captures the outcome of running one suite.
type Result struct {
	// Suite is the suite name.
	Suite string `json:"suite"`

	// Category is copied from the definition.
	Category string `json:"category,omitempty"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// StartTime is when execution began.
	StartTime time.Time `json:"start_time"`

	// EndTime is when execution finished.
	EndTime time.Time `json:"end_time"`

	// Duration is the wall-clock execution time.
	Duration time.Duration `json:"duration"`

	// Assertions holds the evaluated checks in definition order.
	Assertions []assertion.Result `json:"assertions"`

	// Diagnostics are the rendered load diagnostics of the source.
	Diagnostics []string `json:"diagnostics,omitempty"`

	// Error is set when the source could not be loaded or the run
	// was interrupted.
	Error string `json:"error,omitempty"`
}

// Passed counts the passing checks.
func (r *Result) Passed() int {
	n := 0
	for _, a := range r.Assertions {
		if a.Passed {
			n++
		}
	}
	return n
}

// Failed counts the failing checks.
func (r *Result) Failed() int {
	return len(r.Assertions) - r.Passed()
}

// Finish sets the end time, the duration and, unless an error was
// recorded, the status from the checks.
func (r *Result) Finish(end time.Time) {
	r.EndTime = end
	r.Duration = end.Sub(r.StartTime)
	if r.Status == StatusError || r.Status == StatusSkipped {
		return
	}
	if r.Failed() > 0 {
		r.Status = StatusFailed
		return
	}
	r.Status = StatusPassed
}
