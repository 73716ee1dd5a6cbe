// Package audio loads and plays the notification sound.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var (
	// ErrUnsupportedFormat is returned for files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrNoSound is returned for an empty sound reference.
	ErrNoSound = errors.New("no sound file")
)

const resampleQuality = 4

type decodeFunc func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".wav": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(rc)
	},
	".mp3": mp3.Decode,
	".ogg": vorbis.Decode,
}

// Player holds one decoded sound and plays it on demand.
type Player struct {
	mu      sync.Mutex
	logger  *slog.Logger
	buffer  *beep.Buffer
	path    string
	builtin string

	speakerReady bool
	speakerRate  beep.SampleRate
	initSpeaker  func(beep.SampleRate, int) error
	play         func(...beep.Streamer)
	clear        func()
}

// NewPlayer creates a player without a sound. The speaker is only
// initialised on the first Play.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger:      logger,
		initSpeaker: speaker.Init,
		play:        speaker.Play,
		clear:       speaker.Clear,
	}
}

// UseBuiltin makes name stand for the built-in chime whenever no file by
// that name exists.
func (player *Player) UseBuiltin(name string) {
	player.mu.Lock()
	player.builtin = name
	player.mu.Unlock()
}

// Validate decodes the file at path and, on success, makes it the
// current sound. On failure the current sound is kept.
func (player *Player) Validate(path string) error {
	buffer, err := Load(path)
	if err != nil {
		if !player.isBuiltin(path, err) {
			return err
		}
		player.logger.Info("sound file not found, using built-in chime", "path", path)
		buffer = Chime()
	}

	player.mu.Lock()
	player.buffer = buffer
	player.path = path
	player.mu.Unlock()

	player.logger.Debug("sound loaded", "path", path, "samples", buffer.Len())
	return nil
}

func (player *Player) isBuiltin(path string, err error) bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.builtin != "" && path == player.builtin && errors.Is(err, os.ErrNotExist)
}

// Path returns the current sound file, if any.
func (player *Player) Path() string {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.path
}

// Play starts the current sound from the beginning, cutting off any
// sound still playing. It does not block.
func (player *Player) Play() {
	player.mu.Lock()
	defer player.mu.Unlock()

	if player.buffer == nil {
		return
	}
	format := player.buffer.Format()
	if !player.speakerReady {
		if err := player.initSpeaker(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			player.logger.Warn("initialising speaker", "error", err)
			return
		}
		player.speakerReady = true
		player.speakerRate = format.SampleRate
	}

	var streamer beep.Streamer = player.buffer.Streamer(0, player.buffer.Len())
	if format.SampleRate != player.speakerRate {
		streamer = beep.Resample(resampleQuality, format.SampleRate, player.speakerRate, streamer)
	}
	player.clear()
	player.play(streamer)
}

// Load decodes a whole sound file into memory.
func Load(path string) (*beep.Buffer, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoSound
	}
	extension := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[extension]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound file: %w", err)
	}
	defer file.Close()

	streamer, format, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode sound file: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read sound file: %w", err)
	}
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("decode sound file: %s has no samples", path)
	}
	return buffer, nil
}
