package protocol

import "fmt"

// ErrShortFrame is returned by DecodeFrame when the received buffer is
// too short to contain a header.
var ErrShortFrame = fmt.Errorf("bsmp: frame shorter than header")

// ErrLengthMismatch is returned by DecodeFrame when the declared
// payload size does not match the number of bytes actually received.
//
// The source this protocol was distilled from writes declared_size
// into the response but then copies recv_buf.size bytes regardless,
// which can overrun the payload buffer for a short or malformed
// response (spec §9). DecodeFrame instead treats declared_size as
// authoritative and fails closed on a mismatch.
var ErrLengthMismatch = fmt.Errorf("bsmp: declared payload size does not match received length")

// Frame:
//
//	Opcode       : 1 byte
//	Payload size : 2 bytes, big-endian
//	Payload      : payload size bytes
//
// EncodeFrame serializes opcode and payload into that layout. The
// returned slice is freshly allocated and safe to reuse by the caller.
func EncodeFrame(opcode Opcode, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	buf[0] = byte(opcode)
	buf[1] = byte(len(payload) >> 8)
	buf[2] = byte(len(payload))
	copy(buf[HeaderSize:], payload)
	return buf
}

// DecodeFrame parses a received frame. buf must contain exactly one
// frame: the 3-byte header followed by declared_size payload bytes.
func DecodeFrame(buf []byte) (opcode Opcode, payload []byte, err error) {
	if len(buf) < HeaderSize {
		err = ErrShortFrame
		return
	}
	opcode = Opcode(buf[0])
	declaredSize := int(buf[1])<<8 | int(buf[2])
	if len(buf)-HeaderSize != declaredSize {
		err = ErrLengthMismatch
		return
	}
	payload = buf[HeaderSize:]
	return
}
