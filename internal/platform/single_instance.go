package platform

import (
	"errors"
	"fmt"
	"hash/crc32"
	"net"
	"strconv"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	instancePortBase = 20000
	instancePortSpan = 20000
	probeTimeout     = 200 * time.Millisecond
)

// InstanceGuard holds the single-instance lock for the lifetime of the app.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds a localhost port derived from appName. If
// another process already answers on that port, ErrAlreadyRunning is
// returned; any other bind failure is returned as is.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	return acquireAt(instanceAddress(appName))
}

func acquireAt(address string) (*InstanceGuard, error) {
	listener, err := net.Listen("tcp", address)
	if err == nil {
		return &InstanceGuard{listener: listener}, nil
	}

	conn, dialErr := net.DialTimeout("tcp", address, probeTimeout)
	if dialErr != nil {
		return nil, fmt.Errorf("bind %s: %w", address, err)
	}
	_ = conn.Close()
	return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, address)
}

// Release frees the lock. A nil guard has nothing to release.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// Address reports where the guard listens, or "" once released.
func (guard *InstanceGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

func instanceAddress(appName string) string {
	port := instancePortBase + int(crc32.ChecksumIEEE([]byte(appName))%instancePortSpan)
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
}
