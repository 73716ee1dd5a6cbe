package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pomoxide/internal/core/model"
	"pomoxide/internal/platform"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

type yamlConfig struct {
	PomodoroTime  int    `yaml:"pomodoro_time"`
	BreakTime     int    `yaml:"break_time"`
	RestTime      int    `yaml:"rest_time"`
	RestCount     int    `yaml:"rest_count"`
	SoundPath     string `yaml:"sound_path,omitempty"`
	PomodoroColor string `yaml:"pomodoro_color,omitempty"`
	BreakColor    string `yaml:"break_color,omitempty"`
	RestColor     string `yaml:"rest_color,omitempty"`
}

// Store keeps the timer configuration in a YAML file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore returns a store backed by the file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// DefaultPath returns the per-user config file location for appName.
func DefaultPath(service platform.Service, appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// Path returns the backing file path.
func (store *Store) Path() string {
	return store.path
}

// Load reads the configuration. If the file does not exist, the default
// configuration is returned without error. On any other failure the
// defaults are returned together with the error.
func (store *Store) Load() (model.Config, error) {
	config := model.DefaultConfig()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&config, fileData)
	return config.Clamp(), nil
}

// LoadOrDefault reads the configuration and logs instead of failing.
func (store *Store) LoadOrDefault() model.Config {
	config, err := store.Load()
	if err != nil {
		store.logger.Warn("loading config, using defaults", "path", store.path, "error", err)
	}
	return config
}

// Save writes the configuration to disk.
func (store *Store) Save(config model.Config) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlConfig{
		PomodoroTime:  int(config.PomodoroTime / time.Second),
		BreakTime:     int(config.BreakTime / time.Second),
		RestTime:      int(config.RestTime / time.Second),
		RestCount:     config.RestCount,
		SoundPath:     config.SoundPath,
		PomodoroColor: config.PomodoroColor,
		BreakColor:    config.BreakColor,
		RestColor:     config.RestColor,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	store.logger.Debug("config saved", "path", store.path)
	return nil
}

func applyYamlConfig(config *model.Config, fileData yamlConfig) {
	if fileData.PomodoroTime > 0 {
		config.PomodoroTime = time.Duration(fileData.PomodoroTime) * time.Second
	}
	if fileData.BreakTime > 0 {
		config.BreakTime = time.Duration(fileData.BreakTime) * time.Second
	}
	if fileData.RestTime > 0 {
		config.RestTime = time.Duration(fileData.RestTime) * time.Second
	}
	if fileData.RestCount > 0 {
		config.RestCount = fileData.RestCount
	}
	if fileData.SoundPath != "" {
		config.SoundPath = fileData.SoundPath
	}
	if fileData.PomodoroColor != "" {
		config.PomodoroColor = fileData.PomodoroColor
	}
	if fileData.BreakColor != "" {
		config.BreakColor = fileData.BreakColor
	}
	if fileData.RestColor != "" {
		config.RestColor = fileData.RestColor
	}
}
