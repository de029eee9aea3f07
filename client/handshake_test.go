package client

import (
	"context"
	"testing"

	"github.com/op/go-logging"

	bsmplog "github.com/lerwys/libbsmp/log"
	"github.com/lerwys/libbsmp/protocol"
)

func testLogger(t *testing.T) *logging.Logger {
	return bsmplog.SetupLogging("bsmp-test", logging.CRITICAL, false)
}

func frame(opcode protocol.Opcode, payload []byte) []byte {
	return protocol.EncodeFrame(opcode, payload)
}

// TestInitVersion10 covers spec §8 scenario 1.
func TestInitVersion10(t *testing.T) {
	mock := &mockTransport{responses: [][]byte{
		frame(protocol.OpErrOpNotSupported, nil),
		frame(protocol.OpVarList, nil),
		frame(protocol.OpGroupList, nil),
		frame(protocol.OpCurveList, nil),
		frame(protocol.OpFuncList, nil),
	}}
	c, err := New(mock, testLogger(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !c.Initialized() {
		t.Fatal("expected client to be initialized")
	}
	if got := c.Version().String(); got != "1.00.000" {
		t.Fatalf("version = %q, want 1.00.000", got)
	}
	if len(c.Catalog().Vars()) != 0 || len(c.Catalog().Groups()) != 0 ||
		len(c.Catalog().Curves()) != 0 || len(c.Catalog().Funcs()) != 0 {
		t.Fatal("expected all catalog counts to be 0")
	}
}

// TestInitVarDecoding covers spec §8 scenario 2.
func TestInitVarDecoding(t *testing.T) {
	mock := &mockTransport{responses: [][]byte{
		frame(protocol.OpOK, []byte{1, 2, 3}),
		frame(protocol.OpVarList, []byte{0x82, 0x04, 0x00}),
		frame(protocol.OpGroupList, nil),
		frame(protocol.OpCurveList, nil),
		frame(protocol.OpFuncList, nil),
	}}
	c, err := New(mock, testLogger(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	vars := c.Catalog().Vars()
	if len(vars) != 3 {
		t.Fatalf("expected 3 vars, got %d", len(vars))
	}
	want := []struct {
		size     int
		writable bool
	}{
		{2, true},
		{4, false},
		{127, false},
	}
	for i, w := range want {
		if vars[i].ID != uint8(i) || vars[i].Size != w.size || vars[i].Writable != w.writable {
			t.Fatalf("var[%d] = %+v, want size=%d writable=%v", i, vars[i], w.size, w.writable)
		}
	}
}

// TestInitGroupRollbackOnFailure exercises the §9-prescribed full
// zeroing of the groups list on a mid-populate failure.
func TestInitGroupRollbackOnFailure(t *testing.T) {
	mock := &mockTransport{responses: [][]byte{
		frame(protocol.OpErrOpNotSupported, nil),
		frame(protocol.OpVarList, nil),
		frame(protocol.OpGroupList, []byte{0x81, 0x82}), // 2 groups expected
		frame(protocol.OpOK, nil),                        // wrong opcode for GROUP_QUERY
	}}
	c, err := New(mock, testLogger(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Init(context.Background()); err == nil {
		t.Fatal("expected Init to fail")
	}
	if len(c.Catalog().Groups()) != 0 {
		t.Fatal("expected groups list to be zeroed after mid-populate failure")
	}
}

// TestInitNonFatalChecksumFetch covers spec §9: a failed per-curve
// checksum fetch leaves the field zero but does not fail Init.
func TestInitNonFatalChecksumFetch(t *testing.T) {
	mock := &mockTransport{responses: [][]byte{
		frame(protocol.OpErrOpNotSupported, nil),
		frame(protocol.OpVarList, nil),
		frame(protocol.OpGroupList, nil),
		frame(protocol.OpCurveList, []byte{0x80, 0x10, 0x00, 0x00, 0x01}),
		frame(protocol.OpOK, nil), // wrong opcode for CURVE_QUERY_CSUM
		frame(protocol.OpFuncList, nil),
	}}
	c, err := New(mock, testLogger(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	curves := c.Catalog().Curves()
	if len(curves) != 1 {
		t.Fatalf("expected 1 curve, got %d", len(curves))
	}
	var zero [16]byte
	if curves[0].Checksum != zero {
		t.Fatal("expected zero-filled checksum after failed fetch")
	}
}
