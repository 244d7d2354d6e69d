package client

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoller_TicksUntilStopped(t *testing.T) {
	var count atomic.Int32
	p := NewPoller(10*time.Millisecond, func() { count.Add(1) })

	assert.False(t, p.Running())
	p.Start()
	assert.True(t, p.Running())

	assert.Eventually(t, func() bool { return count.Load() >= 3 }, time.Second, 5*time.Millisecond)

	p.Stop()
	assert.False(t, p.Running())
	time.Sleep(20 * time.Millisecond)
	stopped := count.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, count.Load())

	// stopping twice is fine
	p.Stop()
}

func TestPoller_StartReplacesTicker(t *testing.T) {
	var count atomic.Int32
	p := NewPoller(40*time.Millisecond, func() { count.Add(1) })
	defer p.Stop()

	for i := 0; i < 5; i++ {
		p.Start()
	}
	time.Sleep(100 * time.Millisecond)

	// one ticker fires twice in 100ms; five would fire about ten times
	assert.LessOrEqual(t, count.Load(), int32(3))
	assert.GreaterOrEqual(t, count.Load(), int32(1))
}

func TestDebouncer_OnlyLatestFires(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	fired := make(chan int, 10)

	for i := 1; i <= 3; i++ {
		n := i
		d.Trigger(func() { fired <- n })
	}

	select {
	case n := <-fired:
		assert.Equal(t, 3, n)
	case <-time.After(time.Second):
		t.Fatal("debounced function did not fire")
	}

	select {
	case n := <-fired:
		t.Fatalf("unexpected extra call %d", n)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var fired atomic.Bool

	d.Trigger(func() { fired.Store(true) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired.Load())

	// cancel without a pending call is a no-op
	d.Cancel()
}
