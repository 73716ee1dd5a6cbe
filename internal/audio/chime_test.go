package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChimeLength(t *testing.T) {
	buffer := Chime()

	perTone := chimeRate.N(chimeTone) + chimeRate.N(chimeGap)
	assert.Equal(t, len(chimeFrequencies)*perTone, buffer.Len())
	assert.Equal(t, chimeRate, buffer.Format().SampleRate)
}

func TestValidateUsesChimeForMissingBuiltin(t *testing.T) {
	stub := &speakerStub{}
	player := newTestPlayer(stub)
	name := filepath.Join(t.TempDir(), "default.ogg")
	player.UseBuiltin(name)

	require.NoError(t, player.Validate(name))
	assert.Equal(t, name, player.Path())

	player.Play()
	assert.Equal(t, 1, stub.initCalls)
	assert.Equal(t, chimeRate, stub.initRate)
	assert.Len(t, stub.played, 1)
}

func TestValidateMissingFileWithoutBuiltinFails(t *testing.T) {
	player := newTestPlayer(&speakerStub{})

	err := player.Validate(filepath.Join(t.TempDir(), "default.ogg"))

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, player.Path())
}

func TestValidateBuiltinNameRejectsBrokenFile(t *testing.T) {
	player := newTestPlayer(&speakerStub{})
	name := filepath.Join(t.TempDir(), "default.wav")
	require.NoError(t, os.WriteFile(name, []byte("not a riff file"), 0o644))
	player.UseBuiltin(name)

	err := player.Validate(name)

	assert.ErrorContains(t, err, "decode sound file")
	assert.Empty(t, player.Path())
}
