package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerNotifiesWithGeneration(t *testing.T) {
	clock := newFakeClock()
	var fired []uint64
	scheduler := NewScheduler(clock, func(generation uint64) {
		fired = append(fired, generation)
	})

	handle := scheduler.Schedule(250 * time.Millisecond)
	require.True(t, clock.FireNext())

	assert.Equal(t, []uint64{handle.Generation()}, fired)
}

func TestSchedulerCancelSuppressesFiredTick(t *testing.T) {
	clock := newFakeClock()
	notified := 0
	scheduler := NewScheduler(clock, func(uint64) { notified++ })

	handle := scheduler.Schedule(time.Second)
	scheduler.Cancel(handle)
	assert.Equal(t, 0, clock.Pending())

	clock.ForceFire(0)
	assert.Equal(t, 0, notified)
	assert.False(t, scheduler.Current(handle.Generation()))
}

func TestSchedulerCancelIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	scheduler := NewScheduler(clock, func(uint64) {})

	handle := scheduler.Schedule(time.Second)
	scheduler.Cancel(handle)
	scheduler.Cancel(handle)
	scheduler.Cancel(TickHandle{})

	next := scheduler.Schedule(time.Second)
	assert.True(t, scheduler.Current(next.Generation()))
}

func TestSchedulerCancelOfStaleHandleKeepsNewerTick(t *testing.T) {
	clock := newFakeClock()
	var fired []uint64
	scheduler := NewScheduler(clock, func(generation uint64) {
		fired = append(fired, generation)
	})

	old := scheduler.Schedule(time.Second)
	newer := scheduler.Schedule(time.Second)
	scheduler.Cancel(old)

	clock.ForceFire(0)
	clock.ForceFire(1)

	assert.Equal(t, []uint64{newer.Generation()}, fired)
}

func TestSchedulerClampsNegativeDelay(t *testing.T) {
	clock := newFakeClock()
	scheduler := NewScheduler(clock, func(uint64) {})

	scheduler.Schedule(-time.Second)

	require.Equal(t, 1, clock.Created())
	assert.Equal(t, time.Duration(0), clock.timers[0].delay)
}
