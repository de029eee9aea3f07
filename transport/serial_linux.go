//go:build linux

package transport

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)

// setSpeed encodes baud into the CBAUD bits of Cflag, where the
// TCSETS ioctl takes the line speed from, and also stores it in the
// Ispeed/Ospeed fields.
func setSpeed(t *unix.Termios, baud BaudRate) {
	speed := uint32(baud)
	t.Ispeed = speed
	t.Ospeed = speed
	t.Cflag &^= unix.CBAUD
	t.Cflag |= speed & unix.CBAUD
}
