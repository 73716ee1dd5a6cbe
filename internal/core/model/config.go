package model

import "time"

// Bounds applied to user-facing configuration values.
const (
	MinPhaseTime = time.Minute
	MaxPhaseTime = 180 * time.Minute
	MinRestCount = 1
	MaxRestCount = 20
)

// DefaultSound is the sound asset used when no other file was chosen.
const DefaultSound = "default.ogg"

// Config holds the user-editable timer configuration.
type Config struct {
	// PomodoroTime is the length of each focus period.
	PomodoroTime time.Duration
	// BreakTime is the length of each short break.
	BreakTime time.Duration
	// RestTime is the length of each long rest.
	RestTime time.Duration
	// RestCount is how many pomodoros pass until the break is a rest.
	RestCount int
	// SoundPath points to the notification sound asset.
	SoundPath string

	PomodoroColor string
	BreakColor    string
	RestColor     string
}

// DefaultConfig returns the configuration used on first start.
func DefaultConfig() Config {
	return Config{
		PomodoroTime:  25 * time.Minute,
		BreakTime:     5 * time.Minute,
		RestTime:      20 * time.Minute,
		RestCount:     4,
		SoundPath:     DefaultSound,
		PomodoroColor: "#FFA3CC",
		BreakColor:    "#FAFFA3",
		RestColor:     "#A3FFD6",
	}
}

// Normalize makes the config safe for the timer: durations are never
// negative and the rest count is at least one.
func (config Config) Normalize() Config {
	if config.PomodoroTime < 0 {
		config.PomodoroTime = 0
	}
	if config.BreakTime < 0 {
		config.BreakTime = 0
	}
	if config.RestTime < 0 {
		config.RestTime = 0
	}
	if config.RestCount < MinRestCount {
		config.RestCount = MinRestCount
	}
	return config
}

// Clamp limits every value to the ranges offered in the preferences.
func (config Config) Clamp() Config {
	config.PomodoroTime = clampDuration(config.PomodoroTime)
	config.BreakTime = clampDuration(config.BreakTime)
	config.RestTime = clampDuration(config.RestTime)
	if config.RestCount < MinRestCount {
		config.RestCount = MinRestCount
	}
	if config.RestCount > MaxRestCount {
		config.RestCount = MaxRestCount
	}
	return config
}

func clampDuration(value time.Duration) time.Duration {
	if value < MinPhaseTime {
		return MinPhaseTime
	}
	if value > MaxPhaseTime {
		return MaxPhaseTime
	}
	return value
}
