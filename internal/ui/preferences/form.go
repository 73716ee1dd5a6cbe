package preferences

import (
	"strconv"
	"strings"
	"time"

	"pomoxide/internal/core/model"
)

// formValues holds the raw text of the preference entries.
type formValues struct {
	PomodoroMinutes string
	BreakMinutes    string
	RestMinutes     string
	RestCount       string
}

func valuesFromConfig(config model.Config) formValues {
	return formValues{
		PomodoroMinutes: strconv.Itoa(int(config.PomodoroTime / time.Minute)),
		BreakMinutes:    strconv.Itoa(int(config.BreakTime / time.Minute)),
		RestMinutes:     strconv.Itoa(int(config.RestTime / time.Minute)),
		RestCount:       strconv.Itoa(config.RestCount),
	}
}

// edits returns one edit per entry whose valid value differs from what
// the form shows for current. Entries that do not parse or are out of
// range are ignored, and durations with leftover seconds are only
// replaced when the minutes shown were changed.
func edits(current model.Config, values formValues) []model.ConfigEdit {
	var result []model.ConfigEdit

	if duration, ok := changedMinutes(values.PomodoroMinutes, current.PomodoroTime); ok {
		result = append(result, model.SetPomodoroTime(duration))
	}
	if duration, ok := changedMinutes(values.BreakMinutes, current.BreakTime); ok {
		result = append(result, model.SetBreakTime(duration))
	}
	if duration, ok := changedMinutes(values.RestMinutes, current.RestTime); ok {
		result = append(result, model.SetRestTime(duration))
	}
	if count, ok := parseInRange(values.RestCount, model.MinRestCount, model.MaxRestCount); ok && count != current.RestCount {
		result = append(result, model.SetRestCount(count))
	}
	return result
}

func changedMinutes(value string, current time.Duration) (time.Duration, bool) {
	minutes, ok := parseInRange(value, minMinutes(), maxMinutes())
	if !ok || minutes == int(current/time.Minute) {
		return 0, false
	}
	return time.Duration(minutes) * time.Minute, true
}

func minMinutes() int {
	return int(model.MinPhaseTime / time.Minute)
}

func maxMinutes() int {
	return int(model.MaxPhaseTime / time.Minute)
}

func parseInRange(value string, minValue, maxValue int) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < minValue || parsed > maxValue {
		return 0, false
	}
	return parsed, true
}
