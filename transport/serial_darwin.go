//go:build darwin

package transport

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETA
)

// setSpeed stores baud directly: BSD-style termios keeps the raw
// rate in Ispeed/Ospeed rather than encoding it into Cflag bits.
func setSpeed(t *unix.Termios, baud BaudRate) {
	speed := uint64(baud)
	t.Ispeed = speed
	t.Ospeed = speed
}
