package watcher

import (
	"sync"
	"sync/atomic"
	"time"
)

// DebouncedWatcher wraps a Watcher and coalesces bursts of events.
// A save usually arrives as several events (truncate, write, chmod, or
// create then rename); they are merged into one event per file that fires
// once the file has been quiet for the debounce delay.
//
// A single goroutine owns the pending set and is the only sender on the
// output channels.
type DebouncedWatcher struct {
	inner Watcher
	delay time.Duration

	events  chan Event
	errors  chan error
	flushCh chan chan struct{}
	done    chan struct{}
	stopped chan struct{}

	pending   atomic.Int64
	closeOnce sync.Once
	closeErr  error
}

type pendingEvent struct {
	event Event
	due   time.Time
}

// NewDebouncedWatcher wraps inner. A non-positive delay uses the default.
func NewDebouncedWatcher(inner Watcher, delay time.Duration) *DebouncedWatcher {
	if delay <= 0 {
		delay = DefaultConfig().DebounceDelay
	}
	size := DefaultConfig().BufferSize

	dw := &DebouncedWatcher{
		inner:   inner,
		delay:   delay,
		events:  make(chan Event, size),
		errors:  make(chan error, size),
		flushCh: make(chan chan struct{}),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go dw.loop()
	return dw
}

func (dw *DebouncedWatcher) Watch(path string) error   { return dw.inner.Watch(path) }
func (dw *DebouncedWatcher) Unwatch(path string) error { return dw.inner.Unwatch(path) }
func (dw *DebouncedWatcher) IsWatching(path string) bool {
	return dw.inner.IsWatching(path)
}

// Events returns the coalesced event channel. It is closed by Close.
func (dw *DebouncedWatcher) Events() <-chan Event { return dw.events }

// Errors returns errors forwarded from the wrapped watcher.
func (dw *DebouncedWatcher) Errors() <-chan error { return dw.errors }

// Close stops the loop, drops anything still pending, closes both channels
// and then the wrapped watcher. It is safe to call more than once.
func (dw *DebouncedWatcher) Close() error {
	dw.closeOnce.Do(func() {
		close(dw.done)
		<-dw.stopped
		close(dw.events)
		close(dw.errors)
		dw.closeErr = dw.inner.Close()
	})
	return dw.closeErr
}

// Flush delivers every pending event now and returns once they have been
// handed to the events channel.
func (dw *DebouncedWatcher) Flush() {
	ack := make(chan struct{})
	select {
	case dw.flushCh <- ack:
		<-ack
	case <-dw.stopped:
	}
}

// PendingCount reports how many files have an event waiting to fire.
func (dw *DebouncedWatcher) PendingCount() int {
	return int(dw.pending.Load())
}

func (dw *DebouncedWatcher) loop() {
	defer close(dw.stopped)

	pending := make(map[string]*pendingEvent)
	var timer *time.Timer
	var timerC <-chan time.Time

	// rearm points the timer at the earliest deadline, or disables it.
	rearm := func() {
		dw.pending.Store(int64(len(pending)))
		if len(pending) == 0 {
			if timer != nil {
				timer.Stop()
			}
			timerC = nil
			return
		}
		var next time.Time
		for _, p := range pending {
			if next.IsZero() || p.due.Before(next) {
				next = p.due
			}
		}
		wait := max(time.Until(next), 0)
		if timer == nil {
			timer = time.NewTimer(wait)
		} else {
			timer.Reset(wait)
		}
		timerC = timer.C
	}

	fire := func(all bool) {
		now := time.Now()
		for path, p := range pending {
			if !all && now.Before(p.due) {
				continue
			}
			delete(pending, path)
			select {
			case dw.events <- p.event:
			default:
				// consumer is behind; the next change will notify again
			}
		}
		rearm()
	}

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-dw.done:
			return

		case ev, ok := <-dw.inner.Events():
			if !ok {
				return
			}
			if p, exists := pending[ev.Path]; exists {
				p.event.Op |= ev.Op
				p.event.Timestamp = ev.Timestamp
				p.due = time.Now().Add(dw.delay)
			} else {
				pending[ev.Path] = &pendingEvent{event: ev, due: time.Now().Add(dw.delay)}
			}
			rearm()

		case err, ok := <-dw.inner.Errors():
			if !ok {
				return
			}
			select {
			case dw.errors <- err:
			default:
			}

		case <-timerC:
			fire(false)

		case ack := <-dw.flushCh:
			fire(true)
			close(ack)
		}
	}
}

var _ Watcher = (*DebouncedWatcher)(nil)
