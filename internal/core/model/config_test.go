package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 25*time.Minute, config.PomodoroTime)
	assert.Equal(t, 5*time.Minute, config.BreakTime)
	assert.Equal(t, 20*time.Minute, config.RestTime)
	assert.Equal(t, 4, config.RestCount)
}

func TestConfigEdits(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name  string
		edit  ConfigEdit
		check func(t *testing.T, config Config)
	}{
		{"pomodoro", SetPomodoroTime(40 * time.Minute), func(t *testing.T, config Config) {
			assert.Equal(t, 40*time.Minute, config.PomodoroTime)
		}},
		{"break", SetBreakTime(time.Minute), func(t *testing.T, config Config) {
			assert.Equal(t, time.Minute, config.BreakTime)
		}},
		{"rest", SetRestTime(time.Hour), func(t *testing.T, config Config) {
			assert.Equal(t, time.Hour, config.RestTime)
		}},
		{"rest count", SetRestCount(6), func(t *testing.T, config Config) {
			assert.Equal(t, 6, config.RestCount)
		}},
		{"rest count below one", SetRestCount(-2), func(t *testing.T, config Config) {
			assert.Equal(t, 1, config.RestCount)
		}},
		{"negative duration", SetRestTime(-time.Minute), func(t *testing.T, config Config) {
			assert.Zero(t, config.RestTime)
		}},
		{"sound", SetSoundAsset("/tmp/bell.wav"), func(t *testing.T, config Config) {
			assert.Equal(t, "/tmp/bell.wav", config.SoundPath)
		}},
		{"unknown", ConfigEdit{Kind: "bogus"}, func(t *testing.T, config Config) {
			assert.Equal(t, base, config)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.edit.Apply(base))
		})
	}
}

func TestResetToDefaults(t *testing.T) {
	config := DefaultConfig()
	config.RestCount = 9
	config.SoundPath = "x.mp3"

	assert.Equal(t, DefaultConfig(), ResetToDefaults().Apply(config))
}

func TestEditDoesNotMutateInput(t *testing.T) {
	config := DefaultConfig()

	SetRestCount(7).Apply(config)

	assert.Equal(t, 4, config.RestCount)
}

func TestEditString(t *testing.T) {
	assert.Equal(t, "set_rest_count(3)", SetRestCount(3).String())
	assert.Equal(t, "set_break_time(5m0s)", SetBreakTime(5*time.Minute).String())
	assert.Equal(t, `set_sound_asset("a.ogg")`, SetSoundAsset("a.ogg").String())
	assert.Equal(t, "reset_to_defaults", ResetToDefaults().String())
}

func TestClamp(t *testing.T) {
	config := Config{PomodoroTime: time.Second, BreakTime: 10 * time.Hour, RestTime: 20 * time.Minute, RestCount: 0}

	clamped := config.Clamp()

	assert.Equal(t, MinPhaseTime, clamped.PomodoroTime)
	assert.Equal(t, MaxPhaseTime, clamped.BreakTime)
	assert.Equal(t, 20*time.Minute, clamped.RestTime)
	assert.Equal(t, MinRestCount, clamped.RestCount)
}
