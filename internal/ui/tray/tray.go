package tray

import (
	"fmt"
	"time"

	"pomoxide/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Pomo Oxide"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggle      func()
	OnSkip        func()
	OnRenew       func()
	OnRestart     func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	renewItem   *fyne.MenuItem
	statusLabel string
	toggleLabel string
	renewLabel  string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "Pomodoro",
		toggleLabel: "Start",
		renewLabel:  "Renew Pomodoro",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnToggle) })
	manager.renewItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnRenew) })

	manager.refreshMenu()
	return manager
}

// Update mirrors the engine state. Unchanged state does not rebuild the
// menu.
func (manager *Manager) Update(snapshot timer.Snapshot) {
	status := StatusLine(snapshot)
	toggle := "Start"
	if snapshot.Running {
		toggle = "Pause"
	}
	renew := "Renew " + string(snapshot.Phase)
	if status == manager.statusLabel && toggle == manager.toggleLabel && renew == manager.renewLabel {
		return
	}
	manager.statusLabel = status
	manager.toggleLabel = toggle
	manager.renewLabel = renew
	manager.refreshMenu()
}

// StatusLine renders the tray status entry. Seconds are left out so the
// menu only changes once a minute while running.
func StatusLine(snapshot timer.Snapshot) string {
	minutes := int((snapshot.Remaining + time.Minute - 1) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	status := fmt.Sprintf("%s - %d min left", snapshot.Phase, minutes)
	if !snapshot.Running {
		status += " (paused)"
	}
	return status
}

func (manager *Manager) refreshMenu() {
	manager.statusItem.Label = manager.statusLabel
	manager.toggleItem.Label = manager.toggleLabel
	manager.renewItem.Label = manager.renewLabel
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Skip", func() { call(manager.callbacks.OnSkip) }),
		manager.renewItem,
		fyne.NewMenuItem("Restart", func() { call(manager.callbacks.OnRestart) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
