package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	var m SuiteMetrics = NoopMetrics{}
	assert.NotPanics(t, func() {
		m.RecordExecution("s", "passed", time.Second)
		m.RecordCheck("s", "isString", true)
		m.IncrementRunTotal()
		m.SetActiveSuites(3)
	})
}

func TestCollector_Executions(t *testing.T) {
	c := NewCollector()
	c.RecordExecution("literals", "passed", time.Millisecond)
	c.RecordExecution("literals", "failed", 2*time.Millisecond)
	c.RecordExecution("literals", "passed", 3*time.Millisecond)
	c.RecordExecution("tuples", "error", 0)

	assert.Equal(t, 2, c.ExecutionCount("literals", "passed"))
	assert.Equal(t, 1, c.ExecutionCount("literals", "failed"))
	assert.Equal(t, 0, c.ExecutionCount("tuples", "passed"))
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond},
		c.Durations("literals"))
	assert.Equal(t, []string{"literals", "tuples"}, c.Suites())
}

func TestCollector_Checks(t *testing.T) {
	c := NewCollector()
	c.RecordCheck("s", "isString", true)
	c.RecordCheck("s", "isString", true)
	c.RecordCheck("s", "isString", false)

	assert.Equal(t, 2, c.CheckCount("s", "isString", true))
	assert.Equal(t, 1, c.CheckCount("s", "isString", false))
	assert.Equal(t, 0, c.CheckCount("s", "isNumber", true))
}

func TestCollector_Gauges(t *testing.T) {
	c := NewCollector()
	c.IncrementRunTotal()
	c.IncrementRunTotal()
	c.SetActiveSuites(3)
	c.SetActiveSuites(1)

	assert.Equal(t, 2, c.RunTotal())
	assert.Equal(t, 1, c.ActiveSuites())
	assert.Equal(t, 3, c.PeakActiveSuites())
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordExecution("s", "passed", time.Microsecond)
			c.RecordCheck("s", "isAny", true)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.ExecutionCount("s", "passed"))
	assert.Equal(t, 50, c.CheckCount("s", "isAny", true))
	assert.Len(t, c.Durations("s"), 50)
}
