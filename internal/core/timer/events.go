package timer

import (
	"fmt"
	"time"

	"pomoxide/internal/core/model"
)

// Phase represents the current cycle position.
type Phase string

const (
	PhasePomodoro Phase = "Pomodoro"
	PhaseBreak    Phase = "Break"
	PhaseRest     Phase = "Rest"
)

// Duration returns the configured length of the phase.
func (phase Phase) Duration(config model.Config) time.Duration {
	switch phase {
	case PhaseBreak:
		return config.BreakTime
	case PhaseRest:
		return config.RestTime
	default:
		return config.PomodoroTime
	}
}

// Color returns the configured display colour of the phase.
func (phase Phase) Color(config model.Config) string {
	switch phase {
	case PhaseBreak:
		return config.BreakColor
	case PhaseRest:
		return config.RestColor
	default:
		return config.PomodoroColor
	}
}

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventTick         EventType = "tick"
	EventConfigChange EventType = "config_change"
	EventExpired      EventType = "expired"
)

// Event represents an engine update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Phase              Phase
	Remaining          time.Duration
	Running            bool
	RestCounter        int
	CompletedPomodoros int
	Config             model.Config
}

// Status returns the status bar text.
func (snapshot Snapshot) Status() string {
	return fmt.Sprintf("Completed: %d  -  Cycle (%d/%d)",
		snapshot.CompletedPomodoros, snapshot.RestCounter, snapshot.Config.RestCount)
}

// Countdown returns the remaining time as minutes:seconds.
func (snapshot Snapshot) Countdown() string {
	return FormatRemaining(snapshot.Remaining)
}

// FormatRemaining renders a duration as minutes:seconds, rounding partial
// seconds up so the display only reads 0:00 at the very end.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	millis := remaining.Milliseconds()
	seconds := millis / 1000
	if millis%1000 != 0 {
		seconds++
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
