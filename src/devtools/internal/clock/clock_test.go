package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.NotNil(t, New())
}

func TestNow(t *testing.T) {
	before := time.Now()
	assert.False(t, New().Now().Before(before))
}

func TestAfterFunc(t *testing.T) {
	fired := make(chan struct{})
	timer := New().AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.False(t, timer.Stop())
}
