package preferences

import (
	"path/filepath"

	"pomoxide/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var soundExtensions = []string{".wav", ".mp3", ".ogg"}

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	config     model.Config
	onEdit     func(model.ConfigEdit)
	pomodoro   *widget.Entry
	breakTime  *widget.Entry
	restTime   *widget.Entry
	restCount  *widget.Entry
	soundLabel *widget.Label
}

// New creates a preferences window. Every change is reported to onEdit as
// a single configuration edit.
func New(app fyne.App, config model.Config, onEdit func(model.ConfigEdit)) *Window {
	window := app.NewWindow("Pomo Oxide Settings")

	prefs := &Window{
		window:     window,
		config:     config,
		onEdit:     onEdit,
		pomodoro:   widget.NewEntry(),
		breakTime:  widget.NewEntry(),
		restTime:   widget.NewEntry(),
		restCount:  widget.NewEntry(),
		soundLabel: widget.NewLabel(""),
	}
	prefs.restCount.SetPlaceHolder("how many pomodoros until the break is a rest")

	soundButton := widget.NewButton("Change Sound", prefs.chooseSound)
	resetButton := widget.NewButtonWithIcon("Restore defaults", theme.ViewRefreshIcon(), func() {
		prefs.emit(model.ResetToDefaults())
	})

	form := widget.NewForm(
		widget.NewFormItem("Pomodoro (min)", prefs.pomodoro),
		widget.NewFormItem("Break (min)", prefs.breakTime),
		widget.NewFormItem("Rest (min)", prefs.restTime),
		widget.NewFormItem("Rest count", prefs.restCount),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateConfig(prefs.config)
		window.Hide()
	})

	content := container.NewVBox(
		form,
		container.NewHBox(soundButton, prefs.soundLabel),
		resetButton,
	)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, content))
	window.Resize(fyne.NewSize(380, 320))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateConfig(config)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces window values. It must run on the UI goroutine.
func (prefs *Window) UpdateConfig(config model.Config) {
	prefs.config = config
	values := valuesFromConfig(config)
	prefs.pomodoro.SetText(values.PomodoroMinutes)
	prefs.breakTime.SetText(values.BreakMinutes)
	prefs.restTime.SetText(values.RestMinutes)
	prefs.restCount.SetText(values.RestCount)
	prefs.soundLabel.SetText("Current file: " + filepath.Base(config.SoundPath))
}

func (prefs *Window) handleSave() {
	for _, edit := range edits(prefs.config, prefs.values()) {
		prefs.emit(edit)
	}
	prefs.window.Hide()
}

func (prefs *Window) values() formValues {
	return formValues{
		PomodoroMinutes: prefs.pomodoro.Text,
		BreakMinutes:    prefs.breakTime.Text,
		RestMinutes:     prefs.restTime.Text,
		RestCount:       prefs.restCount.Text,
	}
}

func (prefs *Window) chooseSound() {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		prefs.emit(model.SetSoundAsset(path))
	}, prefs.window)
	picker.SetFilter(storage.NewExtensionFileFilter(soundExtensions))
	picker.Show()
}

func (prefs *Window) emit(edit model.ConfigEdit) {
	if prefs.onEdit != nil {
		prefs.onEdit(edit)
	}
}
