package client

import (
	"context"
	"fmt"

	"github.com/lerwys/libbsmp/catalog"
	"github.com/lerwys/libbsmp/protocol"
)

// Init performs the version query and populates the entity catalog
// (spec §4.E). It stops at the first failure; on success the client
// is marked Initialized and Catalog()/Version() reflect the server.
func (c *Client) Init(ctx context.Context) error {
	if err := c.updateVersion(ctx); err != nil {
		return err
	}
	if err := c.updateVars(ctx); err != nil {
		return err
	}
	if err := c.updateGroups(ctx); err != nil {
		return err
	}
	if err := c.updateCurves(ctx); err != nil {
		return err
	}
	if err := c.updateFuncs(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// updateVersion implements spec §4.E step 1: ERR_OP_NOT_SUPPORTED
// fixes the version at 1.0.0; any other response takes the first
// three payload bytes.
func (c *Client) updateVersion(ctx context.Context) error {
	opcode, payload, err := c.exchange(ctx, protocol.OpQueryVersion, nil)
	if err != nil {
		return err
	}
	if opcode == protocol.OpErrOpNotSupported {
		c.version = Version{Major: 1, Minor: 0, Revision: 0}
		c.log.Notice("bsmp: server reports ERR_OP_NOT_SUPPORTED for QUERY_VERSION, assuming 1.0.0")
		return nil
	}
	if len(payload) < 3 {
		return fmt.Errorf("%w: QUERY_VERSION response too short", ErrComm)
	}
	c.version = Version{Major: payload[0], Minor: payload[1], Revision: payload[2]}
	return nil
}

// updateVars implements spec §4.E step 2.
func (c *Client) updateVars(ctx context.Context) error {
	payload, err := c.expect(ctx, protocol.OpVarQueryList, nil, protocol.OpVarList)
	if err != nil {
		return err
	}
	vars := make([]catalog.Variable, len(payload))
	for i, b := range payload {
		decoded := protocol.DecodeVarByte(b)
		vars[i] = catalog.Variable{ID: uint8(i), Size: decoded.Size, Writable: decoded.Writable}
	}
	c.catalog.ReplaceVars(vars)
	return nil
}

// updateGroups implements spec §4.E step 3: list, then per-group
// membership query. On any failure mid-populate, the groups list is
// fully zeroed (spec §9's prescribed fix, not the source's
// count-only reset) and ErrComm surfaces.
func (c *Client) updateGroups(ctx context.Context) error {
	listPayload, err := c.expect(ctx, protocol.OpGroupQueryList, nil, protocol.OpGroupList)
	if err != nil {
		return err
	}

	headers := make([]protocol.DecodedGroupHeader, len(listPayload))
	for i, b := range listPayload {
		headers[i] = protocol.DecodeGroupListByte(b)
	}

	groups := make([]catalog.Group, len(headers))
	for i, h := range headers {
		members, err := c.expect(ctx, protocol.OpGroupQuery, []byte{byte(i)}, protocol.OpGroup)
		if err != nil {
			c.catalog.ReplaceGroups(nil)
			return fmt.Errorf("%w: populating group %d: %v", ErrComm, i, err)
		}
		vars := make([]catalog.VarHandle, 0, len(members))
		size := 0
		for _, varID := range members {
			vh, ok := c.catalog.VarHandleAt(int(varID))
			if !ok {
				c.catalog.ReplaceGroups(nil)
				return fmt.Errorf("%w: group %d references unknown variable %d", ErrComm, i, varID)
			}
			v, _ := c.catalog.Var(vh)
			vars = append(vars, vh)
			size += v.Size
		}
		groups[i] = catalog.Group{ID: uint8(i), Writable: h.Writable, Vars: vars, Size: size}
	}
	c.catalog.ReplaceGroups(groups)
	return nil
}

// updateCurves implements spec §4.E step 4. Checksum fetch failure
// is non-fatal (spec §9): the checksum field is left zero and
// population continues.
func (c *Client) updateCurves(ctx context.Context) error {
	payload, err := c.expect(ctx, protocol.OpCurveQueryList, nil, protocol.OpCurveList)
	if err != nil {
		return err
	}
	if len(payload)%protocol.CurveListInfoSize != 0 {
		return fmt.Errorf("%w: CURVE_LIST payload not a multiple of %d bytes", ErrComm, protocol.CurveListInfoSize)
	}
	n := len(payload) / protocol.CurveListInfoSize
	curves := make([]catalog.Curve, n)
	for i := 0; i < n; i++ {
		rec := payload[i*protocol.CurveListInfoSize : (i+1)*protocol.CurveListInfoSize]
		decoded := protocol.DecodeCurveListRecord(rec)
		curve := catalog.Curve{
			ID:        uint8(i),
			Writable:  decoded.Writable,
			BlockSize: decoded.BlockSize,
			NBlocks:   decoded.NBlocks,
		}
		if csum, err := c.expect(ctx, protocol.OpCurveQueryCsum, []byte{byte(i)}, protocol.OpCurveCsum); err == nil && len(csum) >= protocol.CurveCsumSize {
			copy(curve.Checksum[:], csum[:protocol.CurveCsumSize])
		} else {
			c.log.Warning(fmt.Sprintf("bsmp: checksum fetch failed for curve %d, leaving zero-filled", i))
		}
		curves[i] = curve
	}
	c.catalog.ReplaceCurves(curves)
	return nil
}

// updateFuncs implements spec §4.E step 5.
func (c *Client) updateFuncs(ctx context.Context) error {
	payload, err := c.expect(ctx, protocol.OpFuncQueryList, nil, protocol.OpFuncList)
	if err != nil {
		return err
	}
	funcs := make([]catalog.Function, len(payload))
	for i, b := range payload {
		decoded := protocol.DecodeFuncByte(b)
		funcs[i] = catalog.Function{ID: uint8(i), InputSize: decoded.InputSize, OutputSize: decoded.OutputSize}
	}
	c.catalog.ReplaceFuncs(funcs)
	return nil
}
