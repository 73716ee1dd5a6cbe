package timer

import (
	"sync"
	"time"
)

type fakeTimer struct {
	clock   *fakeClock
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (timer *fakeTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()
	active := !timer.stopped && !timer.fired
	timer.stopped = true
	return active
}

// fakeClock records AfterFunc callbacks and runs them only when asked.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	// cursor skips timers that can no longer fire.
	cursor int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) AfterFunc(d time.Duration, f func()) Stopper {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	timer := &fakeTimer{clock: clock, delay: d, fn: f}
	clock.timers = append(clock.timers, timer)
	return timer
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// Pending returns the number of live timers.
func (clock *fakeClock) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	count := 0
	for _, timer := range clock.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

// FireNext runs the oldest live timer. It reports false when none is left.
func (clock *fakeClock) FireNext() bool {
	clock.mu.Lock()
	for clock.cursor < len(clock.timers) && (clock.timers[clock.cursor].stopped || clock.timers[clock.cursor].fired) {
		clock.cursor++
	}
	var next *fakeTimer
	for _, timer := range clock.timers[clock.cursor:] {
		if !timer.stopped && !timer.fired {
			next = timer
			break
		}
	}
	if next == nil {
		clock.mu.Unlock()
		return false
	}
	next.fired = true
	clock.now = clock.now.Add(next.delay)
	clock.mu.Unlock()

	next.fn()
	return true
}

// ForceFire runs the i-th timer ever created even if it was stopped,
// as if Stop had lost the race with the timer goroutine.
func (clock *fakeClock) ForceFire(index int) {
	clock.mu.Lock()
	timer := clock.timers[index]
	timer.fired = true
	clock.mu.Unlock()

	timer.fn()
}

func (clock *fakeClock) Created() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.timers)
}
