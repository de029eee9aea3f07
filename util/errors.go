package util

import (
	"errors"
	"fmt"
)

// Error kinds, spec §7. Defined here rather than in client so
// DescribeError can reference them without util importing client;
// client/errors.go aliases them.
var (
	// ErrParamInvalid covers a missing required argument, a reference
	// that does not belong to a client's catalog, a write to a
	// non-writable entity, or an empty group-creation list.
	ErrParamInvalid = fmt.Errorf("bsmp: invalid parameter")

	// ErrParamOutOfRange covers an unrecognized bin-op code or a
	// curve offset/length outside the entity's bounds.
	ErrParamOutOfRange = fmt.Errorf("bsmp: parameter out of range")

	// ErrComm covers a transport failure, a short or malformed
	// response frame, or an unexpected response opcode.
	ErrComm = fmt.Errorf("bsmp: communication error")

	// ErrOpNotSupported names the ERR_OP_NOT_SUPPORTED response kind.
	// It is not a failure: Init reads that response opcode to the
	// version query as "server speaks protocol version 1.0." No
	// operation returns this error value.
	ErrOpNotSupported = fmt.Errorf("bsmp: operation not supported")
)

// DescribeError maps one of the four error kinds above to a short,
// colorized, human-readable string for diagnostic logging (spec §7).
// Any other error is returned via its own Error() string, uncolored.
func DescribeError(err error) string {
	switch {
	case err == nil:
		return Green("ok")
	case errors.Is(err, ErrParamInvalid):
		return Red("invalid parameter")
	case errors.Is(err, ErrParamOutOfRange):
		return Red("parameter out of range")
	case errors.Is(err, ErrComm):
		return Yellow("communication error")
	case errors.Is(err, ErrOpNotSupported):
		return Cyan("operation not supported")
	default:
		return err.Error()
	}
}
