//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package term

import (
	"errors"
)

// Raw is a terminal in raw mode.
type Raw struct{}

// MakeRaw is not supported on this platform.
func MakeRaw(fd int) (raw *Raw, err error) {
	err = errors.ErrUnsupported
	return
}

// Restore does nothing.
func (raw *Raw) Restore() error {
	return nil
}
