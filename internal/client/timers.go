package client

import (
	"sync"
	"time"
)

// Poller calls fn every interval between Start and Stop. Start on a running
// poller replaces the previous ticker, so at most one is ever active.
type Poller struct {
	interval time.Duration
	fn       func()

	mu   sync.Mutex
	stop chan struct{}
}

// NewPoller creates a stopped poller
func NewPoller(interval time.Duration, fn func()) *Poller {
	return &Poller{interval: interval, fn: fn}
}

// Start begins ticking, stopping any previous ticker first
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		close(p.stop)
	}
	stop := make(chan struct{})
	p.stop = stop

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
					p.fn()
				}
			}
		}
	}()
}

// Stop halts ticking. Stopping a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

// Running reports whether the poller is ticking
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

// Debouncer runs the most recently triggered function once the delay has
// passed without a newer trigger
type Debouncer struct {
	delay time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
}

// NewDebouncer creates a debouncer with the given delay
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, cancelling any pending call
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	gen := d.generation

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := gen == d.generation
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Cancel drops the pending call, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
}
