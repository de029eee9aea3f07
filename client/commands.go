package client

import (
	"context"
	"fmt"

	"github.com/lerwys/libbsmp/catalog"
	"github.com/lerwys/libbsmp/protocol"
)

// Request:
//
//	Variable ID : 1 byte
//
// Response:
//
//	Value : variable's declared size, in bytes
//
// ReadVar issues VAR_READ and returns the variable's current value
// (spec §4.F wire table).
func (c *Client) ReadVar(ctx context.Context, v catalog.VarHandle) ([]byte, error) {
	variable, ok := c.catalog.Var(v)
	if !ok {
		return nil, ErrParamInvalid
	}
	payload, err := c.expect(ctx, protocol.OpVarRead, []byte{variable.ID}, protocol.OpVarValue)
	if err != nil {
		return nil, err
	}
	if len(payload) != variable.Size {
		return nil, fmt.Errorf("%w: VAR_VALUE size %d, expected %d", ErrComm, len(payload), variable.Size)
	}
	return payload, nil
}

// Request:
//
//	Variable ID : 1 byte
//	Value       : variable's declared size, in bytes
//
// Response:
//
//	OK, no payload
//
// WriteVar issues VAR_WRITE. value must be exactly the variable's
// declared size; the variable must be writable.
func (c *Client) WriteVar(ctx context.Context, v catalog.VarHandle, value []byte) error {
	variable, ok := c.catalog.Var(v)
	if !ok || !variable.Writable || len(value) != variable.Size {
		return ErrParamInvalid
	}
	req := append([]byte{variable.ID}, value...)
	_, err := c.expect(ctx, protocol.OpVarWrite, req, protocol.OpOK)
	return err
}

// WriteReadVars issues VAR_WRITE_READ: write wValue to w, then read r
// in the same round trip.
func (c *Client) WriteReadVars(ctx context.Context, w catalog.VarHandle, wValue []byte, r catalog.VarHandle) ([]byte, error) {
	wVar, ok := c.catalog.Var(w)
	if !ok || !wVar.Writable || len(wValue) != wVar.Size {
		return nil, ErrParamInvalid
	}
	rVar, ok := c.catalog.Var(r)
	if !ok {
		return nil, ErrParamInvalid
	}
	req := append([]byte{wVar.ID, rVar.ID}, wValue...)
	payload, err := c.expect(ctx, protocol.OpVarWriteRead, req, protocol.OpVarValue)
	if err != nil {
		return nil, err
	}
	if len(payload) != rVar.Size {
		return nil, fmt.Errorf("%w: VAR_VALUE size %d, expected %d", ErrComm, len(payload), rVar.Size)
	}
	return payload, nil
}

// Request:
//
//	Group ID : 1 byte
//
// Response:
//
//	Values : group's total size, in bytes, member values concatenated in order
//
// ReadGroup issues GROUP_READ and returns the concatenated values of
// every member variable, in order.
func (c *Client) ReadGroup(ctx context.Context, g catalog.GroupHandle) ([]byte, error) {
	group, ok := c.catalog.Group(g)
	if !ok {
		return nil, ErrParamInvalid
	}
	payload, err := c.expect(ctx, protocol.OpGroupRead, []byte{group.ID}, protocol.OpGroupValues)
	if err != nil {
		return nil, err
	}
	if len(payload) != group.Size {
		return nil, fmt.Errorf("%w: GROUP_VALUES size %d, expected %d", ErrComm, len(payload), group.Size)
	}
	return payload, nil
}

// WriteGroup issues GROUP_WRITE. values must be exactly the group's
// total size; the group must be writable.
func (c *Client) WriteGroup(ctx context.Context, g catalog.GroupHandle, values []byte) error {
	group, ok := c.catalog.Group(g)
	if !ok || !group.Writable || len(values) != group.Size {
		return ErrParamInvalid
	}
	req := append([]byte{group.ID}, values...)
	_, err := c.expect(ctx, protocol.OpGroupWrite, req, protocol.OpOK)
	return err
}

// Request:
//
//	Variable ID : 1 byte
//	Op code     : 1 byte, ASCII ('A'/'O'/'X'/'S'/'C'/'T')
//	Mask        : variable's declared size, in bytes
//
// Response:
//
//	OK, no payload
//
// BinOpVar issues VAR_BIN_OP: apply op with mask to v (spec §4.F).
func (c *Client) BinOpVar(ctx context.Context, op protocol.BinOp, v catalog.VarHandle, mask []byte) error {
	if !op.Valid() {
		return ErrParamOutOfRange
	}
	variable, ok := c.catalog.Var(v)
	if !ok || !variable.Writable || len(mask) != variable.Size {
		return ErrParamInvalid
	}
	req := append([]byte{variable.ID, byte(op)}, mask...)
	_, err := c.expect(ctx, protocol.OpVarBinOp, req, protocol.OpOK)
	return err
}

// BinOpGroup issues GROUP_BIN_OP: apply op with mask to every member
// of g.
func (c *Client) BinOpGroup(ctx context.Context, op protocol.BinOp, g catalog.GroupHandle, mask []byte) error {
	if !op.Valid() {
		return ErrParamOutOfRange
	}
	group, ok := c.catalog.Group(g)
	if !ok || !group.Writable || len(mask) != group.Size {
		return ErrParamInvalid
	}
	req := append([]byte{group.ID, byte(op)}, mask...)
	_, err := c.expect(ctx, protocol.OpGroupBinOp, req, protocol.OpOK)
	return err
}

// CreateGroup issues GROUP_CREATE with the given ordered variable
// handles (at least one required), then re-populates the groups list
// (spec §4.F post-condition).
func (c *Client) CreateGroup(ctx context.Context, vars []catalog.VarHandle) error {
	if len(vars) == 0 {
		return ErrParamInvalid
	}
	ids := make([]byte, len(vars))
	for i, v := range vars {
		variable, ok := c.catalog.Var(v)
		if !ok {
			return ErrParamInvalid
		}
		ids[i] = variable.ID
	}
	if _, err := c.expect(ctx, protocol.OpGroupCreate, ids, protocol.OpOK); err != nil {
		return err
	}
	return c.updateGroups(ctx)
}

// RemoveAllGroups issues GROUP_REMOVE_ALL (the first three reserved
// groups survive server-side per spec §3 invariant 4), then
// re-populates the groups list.
func (c *Client) RemoveAllGroups(ctx context.Context) error {
	if _, err := c.expect(ctx, protocol.OpGroupRemoveAll, nil, protocol.OpOK); err != nil {
		return err
	}
	return c.updateGroups(ctx)
}

// Request:
//
//	Curve ID : 1 byte
//	Offset   : 2 bytes, big-endian block index
//
// Response:
//
//	Curve ID : 1 byte, echoed
//	Offset   : 2 bytes, big-endian, echoed
//	Data     : up to the curve's declared block size, in bytes
//
// CurveBlockRequest issues CURVE_BLOCK_REQUEST for the block at
// offset, using the curve-block cache if enabled and already warm.
func (c *Client) CurveBlockRequest(ctx context.Context, cv catalog.CurveHandle, offset uint16) ([]byte, error) {
	curve, ok := c.catalog.Curve(cv)
	if !ok {
		return nil, ErrParamInvalid
	}
	if offset >= curve.NBlocks {
		return nil, ErrParamOutOfRange
	}

	key := curveBlockKey{curveID: curve.ID, offset: offset}
	if c.curveCache != nil {
		if cached, ok := c.curveCache.Get(key); ok {
			return cached.([]byte), nil
		}
	}

	req := []byte{curve.ID, byte(offset >> 8), byte(offset)}
	payload, err := c.expect(ctx, protocol.OpCurveBlockRequest, req, protocol.OpCurveBlock)
	if err != nil {
		return nil, err
	}
	if len(payload) < protocol.CurveBlockInfoSize {
		return nil, fmt.Errorf("%w: CURVE_BLOCK response too short", ErrComm)
	}
	respID := payload[0]
	respOffset := uint16(payload[1])<<8 | uint16(payload[2])
	if respID != curve.ID || respOffset != offset {
		return nil, fmt.Errorf("%w: CURVE_BLOCK echoed id/offset %d/%d, expected %d/%d", ErrComm, respID, respOffset, curve.ID, offset)
	}
	data := payload[protocol.CurveBlockInfoSize:]

	if c.curveCache != nil {
		cached := make([]byte, len(data))
		copy(cached, data)
		c.curveCache.Add(key, cached)
	}
	return data, nil
}

// Request:
//
//	Curve ID : 1 byte
//	Offset   : 2 bytes, big-endian block index
//	Data     : up to the curve's declared block size, in bytes
//
// Response:
//
//	OK, no payload
//
// CurveBlockSend issues CURVE_BLOCK to write data at offset, then
// invalidates any cached blocks for this curve.
func (c *Client) CurveBlockSend(ctx context.Context, cv catalog.CurveHandle, offset uint16, data []byte) error {
	curve, ok := c.catalog.Curve(cv)
	if !ok || !curve.Writable {
		return ErrParamInvalid
	}
	if offset >= curve.NBlocks {
		return ErrParamOutOfRange
	}
	if len(data) > int(curve.BlockSize) {
		return ErrParamOutOfRange
	}
	req := make([]byte, protocol.CurveBlockInfoSize+len(data))
	req[0] = curve.ID
	req[1] = byte(offset >> 8)
	req[2] = byte(offset)
	copy(req[protocol.CurveBlockInfoSize:], data)

	if _, err := c.expect(ctx, protocol.OpCurveBlock, req, protocol.OpOK); err != nil {
		return err
	}
	c.invalidateCurveCache(curve.ID)
	return nil
}

// CurveRecalcChecksum issues CURVE_RECALC_CSUM, then re-populates the
// curves list (spec §4.F post-condition); a failure in that
// re-population is reported as this operation's failure.
func (c *Client) CurveRecalcChecksum(ctx context.Context, cv catalog.CurveHandle) error {
	curve, ok := c.catalog.Curve(cv)
	if !ok {
		return ErrParamInvalid
	}
	if _, err := c.expect(ctx, protocol.OpCurveRecalcCsum, []byte{curve.ID}, protocol.OpOK); err != nil {
		return err
	}
	c.invalidateCurveCache(curve.ID)
	return c.updateCurves(ctx)
}

// Request:
//
//	Function ID : 1 byte
//	Input       : function's declared input size, in bytes
//
// Response (FUNC_RETURN):
//
//	Output : function's declared output size, in bytes
//
// Response (FUNC_ERROR):
//
//	Error code : 1 byte
//
// FuncExecute issues FUNC_EXECUTE. A FUNC_ERROR response is a domain
// result, not a transport failure (spec §9): err is nil and domainErr
// carries the server's error byte, with output left nil.
func (c *Client) FuncExecute(ctx context.Context, f catalog.FuncHandle, input []byte) (output []byte, domainErr byte, err error) {
	fn, ok := c.catalog.Func(f)
	if !ok {
		err = ErrParamInvalid
		return
	}
	if len(input) != fn.InputSize {
		err = ErrParamInvalid
		return
	}
	req := append([]byte{fn.ID}, input...)
	opcode, payload, xerr := c.exchange(ctx, protocol.OpFuncExecute, req)
	if xerr != nil {
		err = xerr
		return
	}
	switch opcode {
	case protocol.OpFuncReturn:
		if len(payload) != fn.OutputSize {
			err = fmt.Errorf("%w: FUNC_RETURN size %d, expected %d", ErrComm, len(payload), fn.OutputSize)
			return
		}
		output = payload
		domainErr = 0
	case protocol.OpFuncError:
		if len(payload) < 1 {
			err = fmt.Errorf("%w: FUNC_ERROR response missing error byte", ErrComm)
			return
		}
		domainErr = payload[0]
	default:
		err = fmt.Errorf("%w: unexpected response opcode %#x for FUNC_EXECUTE", ErrComm, opcode)
	}
	return
}
