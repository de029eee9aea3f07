//go:build windows

package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/Microsoft/go-winio"

	"github.com/lerwys/libbsmp/protocol"
)

// NamedPipeTransport implements Transport over a Windows named pipe,
// grounded on the teacher's winio.ListenPipe usage for krd's own
// control-plane IPC (common/socket/socket_windows.go), repurposed
// here for talking to a BSMP server process on the same host.
type NamedPipeTransport struct {
	conn net.Conn
}

// DialNamedPipe connects to a pipe such as `\\.\pipe\bsmp-server`.
func DialNamedPipe(ctx context.Context, pipeName string) (*NamedPipeTransport, error) {
	var timeout *time.Duration
	if d, ok := ctx.Deadline(); ok {
		remaining := time.Until(d)
		timeout = &remaining
	}
	conn, err := winio.DialPipe(pipeName, timeout)
	if err != nil {
		return nil, err
	}
	return &NamedPipeTransport{conn: conn}, nil
}

func (t *NamedPipeTransport) Close() error { return t.conn.Close() }

func (t *NamedPipeTransport) Send(ctx context.Context, buf []byte) error {
	_, err := t.conn.Write(buf)
	return err
}

func (t *NamedPipeTransport) Recv(ctx context.Context, buf []byte) (int, error) {
	var header [protocol.HeaderSize]byte
	if _, err := io.ReadFull(t.conn, header[:]); err != nil {
		return 0, err
	}
	payloadSize := int(binary.BigEndian.Uint16(header[1:3]))
	total := protocol.HeaderSize + payloadSize
	if total > len(buf) {
		return 0, fmt.Errorf("bsmp/transport: frame of %d bytes does not fit in %d byte buffer", total, len(buf))
	}
	copy(buf, header[:])
	if payloadSize > 0 {
		if _, err := io.ReadFull(t.conn, buf[protocol.HeaderSize:total]); err != nil {
			return 0, err
		}
	}
	return total, nil
}
