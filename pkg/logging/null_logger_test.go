package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullLogger_Chained(t *testing.T) {
	var l Logger = NullLogger{}

	child := l.WithFields(StringField("suite", "s"), ErrorField(errors.New("x")))
	child.Info("message", IntField("n", 1))
	child.LogCheck(CheckRecord{Type: "Foo", Check: "isString"})

	assert.Equal(t, NullLogger{}, child)
	assert.NoError(t, child.Close())
}

func TestNullLogger_ConcurrentAccess(t *testing.T) {
	l := NullLogger{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Debug("debug", IntField("n", n))
			l.LogCheck(CheckRecord{Check: "isNumber"})
		}(i)
	}
	wg.Wait()
}
