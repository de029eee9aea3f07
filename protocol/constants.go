package protocol

// Wire constants, bit-exact per spec §3.
const (
	// HeaderSize is opcode(1) + payload_size(2, big-endian).
	HeaderSize = 3

	// MaxPayload is the reference server's payload bound. The spec
	// leaves the concrete value as "a compile-time parameter... on
	// the order of a few kilobytes"; fixed here per SPEC_FULL.md §4.
	MaxPayload = 8192

	// MaxMessage bounds a single encoded frame.
	MaxMessage = HeaderSize + MaxPayload

	// CurveBlockSize is the reference block size used for byte-count
	// display; the wire-authoritative block size for a given curve
	// always comes from its CURVE_LIST record.
	CurveBlockSize = 4096

	// CurveListInfoSize is the per-curve record size in a CURVE_LIST
	// response: writable(1) + block_size(2) + nblocks(2).
	CurveListInfoSize = 5

	// CurveBlockInfoSize is the prefix size of a curve block transfer:
	// curve_id(1) + offset(2).
	CurveBlockInfoSize = 3

	// CurveCsumSize is the fixed checksum length copied verbatim from
	// CURVE_QUERY_CSUM responses; the client never computes it.
	CurveCsumSize = 16

	// VarMaxSize is the size value a variable descriptor's size field
	// of 0 decodes to (wrap-around encoding, spec §3).
	VarMaxSize = 127

	// CurveMaxBlocks is what an nblocks field of 0 decodes to.
	CurveMaxBlocks = 65535

	// FuncMaxSize bounds a function's input/output size (spec §3: a
	// nibble each, so 0..15).
	FuncMaxSize = 15
)
