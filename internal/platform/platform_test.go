package platform

import (
	"errors"
	"net"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDirUsesUserConfigDir(t *testing.T) {
	service := &platformService{
		userConfigDir: func() (string, error) { return "/etc/xdg/user", nil },
		userHomeDir:   func() (string, error) { return "/home/user", nil },
	}

	dir, err := service.GetConfigDir()

	require.NoError(t, err)
	assert.Equal(t, "/etc/xdg/user", dir)
}

func TestGetConfigDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	service := &platformService{
		userConfigDir: func() (string, error) { return "", errors.New("$XDG_CONFIG_HOME unset") },
		userHomeDir:   func() (string, error) { return home, nil },
	}

	dir, err := service.GetConfigDir()

	require.NoError(t, err)
	assert.Equal(t, fallbackConfigDir(home), dir)
	assert.True(t, filepath.IsAbs(dir))
}

func TestGetConfigDirFailsWithoutHome(t *testing.T) {
	service := &platformService{
		userConfigDir: func() (string, error) { return "", errors.New("no config dir") },
		userHomeDir:   func() (string, error) { return "", errors.New("no home") },
	}

	_, err := service.GetConfigDir()

	assert.ErrorContains(t, err, "no config dir")
}

func TestAcquireSingleInstanceRejectsSecondGuard(t *testing.T) {
	name := "pomoxide-test-" + t.Name()
	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()
	address := guard.Address()

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.Equal(t, address, again.Address())
	require.NoError(t, again.Release())
}

func TestAcquireReportsBindFailureSeparately(t *testing.T) {
	_, err := acquireAt("127.0.0.1:99999")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyRunning)
	assert.ErrorContains(t, err, "bind 127.0.0.1:99999")
}

func TestInstanceAddressIsStable(t *testing.T) {
	address := instanceAddress("pomoxide")
	host, portText, err := net.SplitHostPort(address)
	require.NoError(t, err)
	port, err := strconv.Atoi(portText)
	require.NoError(t, err)

	assert.Equal(t, address, instanceAddress("pomoxide"))
	assert.Equal(t, "127.0.0.1", host)
	assert.GreaterOrEqual(t, port, instancePortBase)
	assert.Less(t, port, instancePortBase+instancePortSpan)
}

func TestNilGuardIsSafe(t *testing.T) {
	var guard *InstanceGuard

	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
