//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package term

import (
	"golang.org/x/sys/unix"
)

// Raw is a terminal in raw mode.
type Raw struct {
	fd      int
	restore unix.Termios
}

// MakeRaw puts the terminal on fd into raw mode. Reads return after at
// most a tenth of a second, even with no input.
func MakeRaw(fd int) (raw *Raw, err error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}

	raw = &Raw{
		fd:      fd,
		restore: *termios,
	}

	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN | unix.ISIG
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 1

	err = unix.IoctlSetTermios(fd, ioctlSetTermios, &termstate)
	if err != nil {
		raw = nil
		return
	}

	return
}

// Restore the terminal to the mode it had before MakeRaw.
func (raw *Raw) Restore() error {
	return unix.IoctlSetTermios(raw.fd, ioctlSetTermios, &raw.restore)
}
