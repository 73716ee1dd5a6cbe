package model

import (
	"fmt"
	"time"
)

// EditKind names one of the supported configuration edits.
type EditKind string

const (
	EditPomodoroTime    EditKind = "set_pomodoro_time"
	EditBreakTime       EditKind = "set_break_time"
	EditRestTime        EditKind = "set_rest_time"
	EditRestCount       EditKind = "set_rest_count"
	EditSoundAsset      EditKind = "set_sound_asset"
	EditResetToDefaults EditKind = "reset_to_defaults"
)

// ConfigEdit is a single field-level change to a Config.
type ConfigEdit struct {
	Kind     EditKind      `yaml:"kind"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Count    int           `yaml:"count,omitempty"`
	Path     string        `yaml:"path,omitempty"`
}

// SetPomodoroTime changes the focus period length.
func SetPomodoroTime(duration time.Duration) ConfigEdit {
	return ConfigEdit{Kind: EditPomodoroTime, Duration: duration}
}

// SetBreakTime changes the short break length.
func SetBreakTime(duration time.Duration) ConfigEdit {
	return ConfigEdit{Kind: EditBreakTime, Duration: duration}
}

// SetRestTime changes the long rest length.
func SetRestTime(duration time.Duration) ConfigEdit {
	return ConfigEdit{Kind: EditRestTime, Duration: duration}
}

// SetRestCount changes how many pomodoros lead to a rest.
func SetRestCount(count int) ConfigEdit {
	return ConfigEdit{Kind: EditRestCount, Count: count}
}

// SetSoundAsset changes the notification sound.
func SetSoundAsset(path string) ConfigEdit {
	return ConfigEdit{Kind: EditSoundAsset, Path: path}
}

// ResetToDefaults replaces the whole configuration with DefaultConfig.
func ResetToDefaults() ConfigEdit {
	return ConfigEdit{Kind: EditResetToDefaults}
}

// Apply returns config with the edit applied. Unknown kinds leave the
// config unchanged.
func (edit ConfigEdit) Apply(config Config) Config {
	switch edit.Kind {
	case EditPomodoroTime:
		config.PomodoroTime = edit.Duration
	case EditBreakTime:
		config.BreakTime = edit.Duration
	case EditRestTime:
		config.RestTime = edit.Duration
	case EditRestCount:
		config.RestCount = edit.Count
	case EditSoundAsset:
		config.SoundPath = edit.Path
	case EditResetToDefaults:
		config = DefaultConfig()
	}
	return config.Normalize()
}

func (edit ConfigEdit) String() string {
	switch edit.Kind {
	case EditPomodoroTime, EditBreakTime, EditRestTime:
		return fmt.Sprintf("%s(%s)", edit.Kind, edit.Duration)
	case EditRestCount:
		return fmt.Sprintf("%s(%d)", edit.Kind, edit.Count)
	case EditSoundAsset:
		return fmt.Sprintf("%s(%q)", edit.Kind, edit.Path)
	default:
		return string(edit.Kind)
	}
}
