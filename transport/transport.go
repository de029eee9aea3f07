// Package transport defines the byte-level callback contract the
// command engine consumes (spec §6) and a handful of concrete
// transports. None of these concrete transports are required by the
// client package — the core only depends on the Transport interface.
package transport

import "context"

// Transport is the caller-supplied send/recv pair the command engine
// drives one request/response exchange at a time over (spec §4.C,
// §6). A Transport does its own framing/packetization beneath the
// 3-byte header + payload the protocol package assembles; it is
// responsible for delivering exactly one whole frame per Recv call.
type Transport interface {
	// Send transmits buf in full. A non-nil return fails the calling
	// command with client.ErrComm.
	Send(ctx context.Context, buf []byte) error

	// Recv receives one complete frame into buf, returning the number
	// of bytes written. A non-nil return fails the calling command
	// with client.ErrComm.
	Recv(ctx context.Context, buf []byte) (n int, err error)
}

// SendFunc and RecvFunc match spec §6's literal two-callback contract
// for callers that would rather hand closures than implement an
// interface.
type SendFunc func(ctx context.Context, buf []byte) error
type RecvFunc func(ctx context.Context, buf []byte) (int, error)

// FuncTransport adapts a SendFunc/RecvFunc pair to the Transport
// interface.
type FuncTransport struct {
	SendFn SendFunc
	RecvFn RecvFunc
}

func (f FuncTransport) Send(ctx context.Context, buf []byte) error {
	return f.SendFn(ctx, buf)
}

func (f FuncTransport) Recv(ctx context.Context, buf []byte) (int, error) {
	return f.RecvFn(ctx, buf)
}
