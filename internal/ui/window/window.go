package window

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"pomoxide/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	windowTitle    = "Pomo Oxide"
	windowWidth    = float32(350)
	phaseTextSize  = 28
	remainTextSize = 64
)

// Controller receives the commands issued by the window.
type Controller interface {
	Toggle(running *bool) timer.Snapshot
	Skip() timer.Snapshot
	Renew() timer.Snapshot
	Restart() timer.Snapshot
}

// Window is the main timer window.
type Window struct {
	window        fyne.Window
	controller    Controller
	phaseLabel    *canvas.Text
	countdown     *canvas.Text
	toggleButton  *widget.Button
	skipButton    *widget.Button
	renewButton   *widget.Button
	restartButton *widget.Button
	statusLabel   *widget.Label
	onPreferences func()
}

// New builds the main window. onPreferences is called from the toolbar.
func New(app fyne.App, controller Controller, onPreferences func()) *Window {
	window := app.NewWindow(windowTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	phaseLabel := canvas.NewText(string(timer.PhasePomodoro), color.White)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = phaseTextSize

	countdown := canvas.NewText("--:--", theme.Color(theme.ColorNameForeground))
	countdown.Alignment = fyne.TextAlignCenter
	countdown.TextStyle = fyne.TextStyle{Bold: true}
	countdown.TextSize = remainTextSize

	view := &Window{
		window:        window,
		controller:    controller,
		phaseLabel:    phaseLabel,
		countdown:     countdown,
		statusLabel:   widget.NewLabel(""),
		onPreferences: onPreferences,
	}
	view.statusLabel.Alignment = fyne.TextAlignCenter

	view.toggleButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		view.render(controller.Toggle(nil))
	})
	view.toggleButton.Importance = widget.HighImportance
	view.skipButton = widget.NewButtonWithIcon("Skip", theme.MediaSkipNextIcon(), func() {
		view.render(controller.Skip())
	})
	view.renewButton = widget.NewButtonWithIcon("Renew", theme.MediaSkipPreviousIcon(), func() {
		view.render(controller.Renew())
	})
	view.restartButton = widget.NewButtonWithIcon("Restart", theme.MediaReplayIcon(), func() {
		view.render(controller.Restart())
	})

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.SettingsIcon(), func() {
			if view.onPreferences != nil {
				view.onPreferences()
			}
		}),
	)

	content := container.NewVBox(
		view.toggleButton,
		container.NewGridWithColumns(3, view.skipButton, view.renewButton, view.restartButton),
		phaseLabel,
		countdown,
		view.statusLabel,
	)
	window.SetContent(container.NewBorder(toolbar, nil, nil, nil, container.NewPadded(content)))
	window.Resize(fyne.NewSize(windowWidth, content.MinSize().Height))
	window.SetFixedSize(true)

	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without quitting.
func (view *Window) Hide() {
	view.window.Hide()
}

// SetCloseIntercept replaces the default close behaviour.
func (view *Window) SetCloseIntercept(handler func()) {
	view.window.SetCloseIntercept(handler)
}

// Update renders a snapshot from any goroutine.
func (view *Window) Update(snapshot timer.Snapshot) {
	fyne.Do(func() {
		view.render(snapshot)
	})
}

func (view *Window) render(snapshot timer.Snapshot) {
	view.phaseLabel.Text = string(snapshot.Phase)
	view.phaseLabel.Color = ParseHexColor(snapshot.Phase.Color(snapshot.Config), color.White)
	view.phaseLabel.Refresh()

	view.countdown.Text = snapshot.Countdown()
	if snapshot.Running {
		view.countdown.Color = theme.Color(theme.ColorNameForeground)
	} else {
		view.countdown.Color = theme.Color(theme.ColorNameDisabled)
	}
	view.countdown.Refresh()

	if snapshot.Running {
		view.toggleButton.SetText("Pause")
		view.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		view.toggleButton.SetText("Start")
		view.toggleButton.SetIcon(theme.MediaPlayIcon())
	}
	view.renewButton.SetText(RenewLabel(snapshot.Phase))
	view.statusLabel.SetText(snapshot.Status())
	view.window.SetTitle(fmt.Sprintf("%s - %s", snapshot.Countdown(), windowTitle))
}

// RenewLabel names the phase that Renew would restart.
func RenewLabel(phase timer.Phase) string {
	return "Renew " + string(phase)
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA", returning fallback for
// anything else.
func ParseHexColor(value string, fallback color.Color) color.Color {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return fallback
	}
	parsed, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	if len(hex) == 6 {
		parsed = parsed<<8 | 0xFF
	}
	return color.NRGBA{
		R: uint8(parsed >> 24),
		G: uint8(parsed >> 16),
		B: uint8(parsed >> 8),
		A: uint8(parsed),
	}
}
