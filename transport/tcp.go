package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/lerwys/libbsmp/protocol"
)

// TCPTransport implements Transport over a net.Conn, reading exactly
// one frame per Recv by trusting the 3-byte header's declared
// payload length — the packetization spec §6 leaves to the
// transport.
type TCPTransport struct {
	conn net.Conn
}

// NewTCPTransport wraps an already-connected net.Conn.
func NewTCPTransport(conn net.Conn) *TCPTransport {
	return &TCPTransport{conn: conn}
}

// DialTCP connects to addr and returns a ready-to-use TCPTransport.
func DialTCP(ctx context.Context, addr string) (*TCPTransport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewTCPTransport(conn), nil
}

func (t *TCPTransport) Close() error { return t.conn.Close() }

func (t *TCPTransport) Send(ctx context.Context, buf []byte) error {
	if deadline, ok := ctx.Deadline(); ok {
		t.conn.SetWriteDeadline(deadline)
	}
	_, err := t.conn.Write(buf)
	return err
}

func (t *TCPTransport) Recv(ctx context.Context, buf []byte) (int, error) {
	if deadline, ok := ctx.Deadline(); ok {
		t.conn.SetReadDeadline(deadline)
	}
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
