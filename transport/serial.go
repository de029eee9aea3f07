//go:build linux || darwin

package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/lerwys/libbsmp/protocol"
)

// SerialTransport implements Transport over a UART device, the most
// common way BSMP-speaking instrumentation hardware is attached.
// Configuration is applied once at open time via termios ioctls
// (8N1, raw mode, no flow control); the protocol itself has no notion
// of serial-specific framing beyond the shared 3-byte header.
type SerialTransport struct {
	f *os.File
}

// BaudRate is one of the fixed rates termios accepts.
type BaudRate uint32

const (
	Baud9600   BaudRate = unix.B9600
	Baud19200  BaudRate = unix.B19200
	Baud38400  BaudRate = unix.B38400
	Baud57600  BaudRate = unix.B57600
	Baud115200 BaudRate = unix.B115200
)

// OpenSerial opens path (e.g. "/dev/ttyUSB0") and configures it for
// raw binary I/O at the given baud rate.
func OpenSerial(path string, baud BaudRate) (*SerialTransport, error) {
	f, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}
	if err := configureRaw(f, baud); err != nil {
		f.Close()
		return nil, err
	}
	return &SerialTransport{f: f}, nil
}

func configureRaw(f *os.File, baud BaudRate) error {
	fd := int(f.Fd())
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("bsmp/transport: get termios: %w", err)
	}

	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.IXOFF
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CRTSCTS
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	setSpeed(t, baud)

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, t); err != nil {
		return fmt.Errorf("bsmp/transport: set termios: %w", err)
	}
	return nil
}

func (s *SerialTransport) Close() error { return s.f.Close() }

func (s *SerialTransport) Send(ctx context.Context, buf []byte) error {
	_, err := s.f.Write(buf)
	return err
}

func (s *SerialTransport) Recv(ctx context.Context, buf []byte) (int, error) {
	var header [protocol.HeaderSize]byte
	if _, err := io.ReadFull(s.f, header[:]); err != nil {
		return 0, err
	}
	payloadSize := int(binary.BigEndian.Uint16(header[1:3]))
	total := protocol.HeaderSize + payloadSize
	if total > len(buf) {
		return 0, fmt.Errorf("bsmp/transport: frame of %d bytes does not fit in %d byte buffer", total, len(buf))
	}
	copy(buf, header[:])
	if payloadSize > 0 {
		if _, err := io.ReadFull(s.f, buf[protocol.HeaderSize:total]); err != nil {
			return 0, err
		}
	}
	return total, nil
}
