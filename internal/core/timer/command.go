package timer

import "pomoxide/internal/core/model"

// CommandKind names an engine command.
type CommandKind string

const (
	CommandStep         CommandKind = "step"
	CommandToggle       CommandKind = "toggle"
	CommandSkip         CommandKind = "skip"
	CommandRenew        CommandKind = "renew"
	CommandRestart      CommandKind = "restart"
	CommandChangeConfig CommandKind = "change_config"
)

// Command is a single request to the engine.
type Command struct {
	Kind CommandKind
	// Running is the explicit target of a toggle; nil flips the state.
	Running *bool
	Edit    model.ConfigEdit

	generation uint64
}

// Toggle starts or pauses the countdown.
func Toggle(running *bool) Command {
	return Command{Kind: CommandToggle, Running: running}
}

// Skip ends the current phase early.
func Skip() Command {
	return Command{Kind: CommandSkip}
}

// Renew restarts the current phase from its full duration.
func Renew() Command {
	return Command{Kind: CommandRenew}
}

// Restart returns to the first pomodoro of a fresh cycle.
func Restart() Command {
	return Command{Kind: CommandRestart}
}

// ChangeConfig applies a configuration edit.
func ChangeConfig(edit model.ConfigEdit) Command {
	return Command{Kind: CommandChangeConfig, Edit: edit}
}

func stepCommand(generation uint64) Command {
	return Command{Kind: CommandStep, generation: generation}
}
