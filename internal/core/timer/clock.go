package timer

import "time"

// Clock abstracts delayed callbacks so tests can fire ticks by hand.
type Clock interface {
	// AfterFunc calls f in its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Stopper
	Now() time.Time
}

// Stopper represents a pending AfterFunc callback.
type Stopper interface {
	Stop() bool
}

// SystemClock is the Clock backed by the time package.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
