package timer

import (
	"log/slog"
	"sync"
	"time"

	"pomoxide/internal/core/model"
)

// DefaultStep is the longest single countdown step.
const DefaultStep = 250 * time.Millisecond

// ConfigStore persists configuration changes.
type ConfigStore interface {
	Save(config model.Config) error
}

// Player validates and plays the notification sound.
type Player interface {
	// Validate opens the asset at path and makes it the current sound.
	Validate(path string) error
	// Play plays the current sound, if any.
	Play()
}

// Options contains collaborators and runtime options for Engine.
type Options struct {
	Store  ConfigStore
	Player Player
	Logger *slog.Logger
	Clock  Clock
	Step   time.Duration
}

// Engine is the pomodoro state machine. All commands go through Apply and
// are processed one at a time.
type Engine struct {
	mu sync.Mutex
	// soundMu serialises sound validation, which runs outside mu.
	soundMu   sync.Mutex
	config    model.Config
	options   Options
	logger    *slog.Logger
	scheduler *Scheduler

	phase       Phase
	remaining   time.Duration
	running     bool
	restCounter int
	completed   int
	pending     *TickHandle

	events  []chan Event
	stopped bool
}

type sideEffects struct {
	play bool
	save *model.Config
}

// soundCheck is the outcome of validating a sound asset before an edit is
// applied.
type soundCheck struct {
	path  string
	valid bool
}

// New creates a paused engine at the start of a pomodoro.
func New(config model.Config, options Options) *Engine {
	if options.Step <= 0 {
		options.Step = DefaultStep
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine := &Engine{
		config:  config.Normalize(),
		options: options,
		logger:  logger,
		phase:   PhasePomodoro,
	}
	engine.scheduler = NewScheduler(options.Clock, func(generation uint64) {
		engine.Apply(stepCommand(generation))
	})
	engine.remaining = engine.phase.Duration(engine.config)
	return engine
}

// Toggle starts or pauses the countdown. A nil running flips the state.
func (engine *Engine) Toggle(running *bool) Snapshot {
	return engine.Apply(Toggle(running))
}

// Skip moves to the next phase without counting a completed pomodoro.
func (engine *Engine) Skip() Snapshot {
	return engine.Apply(Skip())
}

// Renew resets the countdown of the current phase.
func (engine *Engine) Renew() Snapshot {
	return engine.Apply(Renew())
}

// Restart starts a fresh cycle from the first pomodoro.
func (engine *Engine) Restart() Snapshot {
	return engine.Apply(Restart())
}

// ChangeConfig applies edit to the configuration and persists it.
func (engine *Engine) ChangeConfig(edit model.ConfigEdit) Snapshot {
	return engine.Apply(ChangeConfig(edit))
}

// Apply processes a single command to completion and returns the
// resulting state.
func (engine *Engine) Apply(command Command) Snapshot {
	var sound *soundCheck
	if command.Kind == CommandChangeConfig {
		engine.soundMu.Lock()
		defer engine.soundMu.Unlock()
		sound = engine.checkSound(command.Edit)
	}

	engine.mu.Lock()
	if engine.stopped {
		snapshot := engine.snapshotLocked()
		engine.mu.Unlock()
		return snapshot
	}
	if command.Kind == CommandStep && !engine.ownsTickLocked(command.generation) {
		snapshot := engine.snapshotLocked()
		engine.mu.Unlock()
		return snapshot
	}
	engine.cancelPendingLocked()

	if command.Kind != CommandStep {
		engine.logger.Debug("handling command", "command", command.Kind)
	}

	var effects sideEffects
	previousPhase := engine.phase
	now := engine.options.Clock.Now()

	switch command.Kind {
	case CommandStep:
		if engine.remaining == 0 {
			engine.advanceLocked(true)
			effects.play = true
			engine.emitLocked(Event{Type: EventExpired, Snapshot: engine.snapshotLocked(), At: now})
		}
	case CommandToggle:
		if command.Running != nil {
			engine.running = *command.Running
		} else {
			engine.running = !engine.running
		}
	case CommandSkip:
		engine.advanceLocked(false)
	case CommandRenew:
		engine.renewLocked()
	case CommandRestart:
		engine.restartLocked()
	case CommandChangeConfig:
		effects = engine.changeConfigLocked(command.Edit, sound)
		engine.emitLocked(Event{Type: EventConfigChange, Snapshot: engine.snapshotLocked(), At: now})
	default:
		engine.logger.Warn("unknown command", "command", command.Kind)
	}

	if engine.running {
		engine.scheduleLocked()
	}

	snapshot := engine.snapshotLocked()
	if snapshot.Phase != previousPhase {
		engine.emitLocked(Event{Type: EventStateChange, Snapshot: snapshot, At: now})
	}
	engine.emitLocked(Event{Type: EventTick, Snapshot: snapshot, At: now})
	engine.mu.Unlock()

	engine.runEffects(effects)
	return snapshot
}

// Snapshot returns a copy of the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	if engine.stopped {
		close(ch)
	} else {
		engine.events = append(engine.events, ch)
	}
	engine.mu.Unlock()
	return ch
}

// Stop cancels the pending tick, ignores further commands and closes
// observers.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if engine.stopped {
		engine.mu.Unlock()
		return
	}
	engine.stopped = true
	engine.running = false
	engine.cancelPendingLocked()
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) ownsTickLocked(generation uint64) bool {
	return engine.pending != nil &&
		engine.pending.generation == generation &&
		engine.scheduler.Current(generation)
}

func (engine *Engine) cancelPendingLocked() {
	if engine.pending == nil {
		return
	}
	engine.scheduler.Cancel(*engine.pending)
	engine.pending = nil
}

// scheduleLocked takes the next step off the countdown and arranges for
// a tick once that step has really elapsed.
func (engine *Engine) scheduleLocked() {
	step := engine.options.Step
	if engine.remaining < step {
		step = engine.remaining
	}
	engine.remaining -= step
	handle := engine.scheduler.Schedule(step)
	engine.pending = &handle
}

func (engine *Engine) advanceLocked(natural bool) {
	switch engine.phase {
	case PhasePomodoro:
		if natural {
			engine.completed++
		}
		if engine.restCounter+1 >= engine.config.RestCount {
			engine.restCounter = 0
			engine.phase = PhaseRest
		} else {
			engine.restCounter++
			engine.phase = PhaseBreak
		}
	default:
		engine.phase = PhasePomodoro
	}
	engine.renewLocked()
}

func (engine *Engine) renewLocked() {
	engine.remaining = engine.phase.Duration(engine.config)
	engine.logger.Info("starting phase", "phase", engine.phase, "remaining", FormatRemaining(engine.remaining))
}

func (engine *Engine) restartLocked() {
	engine.phase = PhasePomodoro
	engine.restCounter = 0
	engine.renewLocked()
}

// checkSound validates the sound asset edit would switch to. Decoding
// happens without holding mu, so ticks and other commands keep running.
func (engine *Engine) checkSound(edit model.ConfigEdit) *soundCheck {
	if engine.options.Player == nil {
		return nil
	}
	current := engine.Snapshot().Config
	path := edit.Apply(current).SoundPath
	if path == current.SoundPath {
		return nil
	}
	err := engine.options.Player.Validate(path)
	if err != nil {
		engine.logger.Warn("rejecting sound asset", "path", path, "error", err)
	}
	return &soundCheck{path: path, valid: err == nil}
}

func (engine *Engine) changeConfigLocked(edit model.ConfigEdit, sound *soundCheck) sideEffects {
	var effects sideEffects
	previous := engine.config
	config := edit.Apply(previous)

	if config.SoundPath != previous.SoundPath && engine.options.Player != nil {
		if sound != nil && sound.valid && sound.path == config.SoundPath {
			effects.play = true
		} else {
			config.SoundPath = previous.SoundPath
		}
	}

	engine.config = config
	engine.logger.Info("config changed", "edit", edit.String())
	if engine.config.RestCount <= engine.restCounter {
		engine.restartLocked()
	} else {
		engine.renewLocked()
	}

	saved := engine.config
	effects.save = &saved
	return effects
}

func (engine *Engine) runEffects(effects sideEffects) {
	if effects.save != nil && engine.options.Store != nil {
		if err := engine.options.Store.Save(*effects.save); err != nil {
			engine.logger.Warn("saving config", "error", err)
		}
	}
	if effects.play && engine.options.Player != nil {
		engine.options.Player.Play()
	}
}

func (engine *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:              engine.phase,
		Remaining:          engine.remaining,
		Running:            engine.running,
		RestCounter:        engine.restCounter,
		CompletedPomodoros: engine.completed,
		Config:             engine.config,
	}
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
