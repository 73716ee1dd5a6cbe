package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"pomoxide/internal/audio"
	"pomoxide/internal/core/model"
	"pomoxide/internal/core/timer"
	"pomoxide/internal/platform"
	"pomoxide/internal/storage"
	"pomoxide/internal/ui/preferences"
	"pomoxide/internal/ui/tray"
	"pomoxide/internal/ui/window"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/urfave/cli/v2"
)

const (
	appName = "pomoxide"
	appID   = "com.pomoxide.app"
)

func main() {
	cliApp := &cli.App{
		Name:  appName,
		Usage: "a pomodoro timer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"POMOXIDE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "sound",
				Usage: "sound played when a phase ends (wav, mp3 or ogg)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	logger := newLogger(ctx.Bool("debug"))
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is already running")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	store := storage.NewStore(configPath(ctx.String("config"), logger), logger)
	config := store.LoadOrDefault()
	logger.Info("using config", "path", store.Path())
	if sound := ctx.String("sound"); sound != "" {
		config.SoundPath = sound
	}

	player := audio.NewPlayer(logger)
	player.UseBuiltin(model.DefaultSound)
	if err := player.Validate(config.SoundPath); err != nil {
		logger.Warn("sound unavailable, phases will end silently", "path", config.SoundPath, "error", err)
	} else {
		logger.Info("sound ready", "path", player.Path())
	}

	engine := timer.New(config, timer.Options{
		Store:  store,
		Player: player,
		Logger: logger,
	})
	defer engine.Stop()

	fyneApp := app.NewWithID(appID)

	var prefsWindow *preferences.Window
	mainWindow := window.New(fyneApp, engine, func() {
		prefsWindow.Show()
	})
	prefsWindow = preferences.New(fyneApp, engine.Snapshot().Config, func(edit model.ConfigEdit) {
		logger.Debug("config edit", "edit", edit.String())
		engine.ChangeConfig(edit)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnToggle:      func() { engine.Toggle(nil) },
			OnSkip:        func() { engine.Skip() },
			OnRenew:       func() { engine.Renew() },
			OnRestart:     func() { engine.Restart() },
			OnQuit:        fyneApp.Quit,
		})
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.SetCloseIntercept(fyneApp.Quit)
	}

	events := engine.Subscribe(16)
	go func() {
		for event := range events {
			mainWindow.Update(event.Snapshot)
			if trayManager != nil {
				snapshot := event.Snapshot
				fyne.Do(func() {
					trayManager.Update(snapshot)
				})
			}
			if event.Type == timer.EventConfigChange {
				config := event.Snapshot.Config
				fyne.Do(func() {
					prefsWindow.UpdateConfig(config)
				})
			}
		}
	}()

	mainWindow.Update(engine.Snapshot())
	mainWindow.Show()
	fyneApp.Run()
	return nil
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func configPath(override string, logger *slog.Logger) string {
	if override != "" {
		return override
	}
	path, err := storage.DefaultPath(platform.NewService(), appName)
	if err != nil {
		logger.Warn("config directory unavailable, using working directory", "error", err)
		return "config.yaml"
	}
	return path
}
