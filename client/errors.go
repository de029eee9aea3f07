package client

import "github.com/lerwys/libbsmp/util"

// Error kinds, spec §7. Aliased from util so util.DescribeError can
// describe them without this package needing its own copies; see
// util/errors.go for the underlying sentinels.
var (
	ErrParamInvalid    = util.ErrParamInvalid
	ErrParamOutOfRange = util.ErrParamOutOfRange
	ErrComm            = util.ErrComm
	ErrOpNotSupported  = util.ErrOpNotSupported
)
