package timer

import (
	"sync/atomic"
	"time"
)

// TickHandle identifies one scheduled tick.
type TickHandle struct {
	generation uint64
	stopper    Stopper
}

// Generation returns the generation the tick was scheduled under.
func (handle TickHandle) Generation() uint64 {
	return handle.generation
}

// Scheduler issues one cancellable delayed notification per request.
//
// Every Schedule call starts a new generation. A tick only notifies if its
// generation is still current when the timer fires; Cancel moves the
// generation on, so a cancelled tick that was already sleeping is dropped
// when it wakes.
type Scheduler struct {
	clock      Clock
	generation atomic.Uint64
	notify     func(generation uint64)
}

// NewScheduler creates a scheduler delivering fired ticks to notify.
func NewScheduler(clock Clock, notify func(generation uint64)) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{clock: clock, notify: notify}
}

// Schedule arranges for notify to be called after duration unless the
// returned handle is cancelled first.
func (scheduler *Scheduler) Schedule(duration time.Duration) TickHandle {
	if duration < 0 {
		duration = 0
	}
	generation := scheduler.generation.Add(1)
	stopper := scheduler.clock.AfterFunc(duration, func() {
		if scheduler.generation.Load() != generation {
			return
		}
		scheduler.notify(generation)
	})
	return TickHandle{generation: generation, stopper: stopper}
}

// Cancel invalidates the handle. Cancelling a stale or already cancelled
// handle is a no-op.
func (scheduler *Scheduler) Cancel(handle TickHandle) {
	if handle.generation == 0 {
		return
	}
	scheduler.generation.CompareAndSwap(handle.generation, handle.generation+1)
	if handle.stopper != nil {
		handle.stopper.Stop()
	}
}

// Current reports whether generation belongs to the latest live tick.
func (scheduler *Scheduler) Current(generation uint64) bool {
	return generation != 0 && scheduler.generation.Load() == generation
}
