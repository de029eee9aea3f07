package client

import (
	"context"
	"testing"

	"github.com/lerwys/libbsmp/protocol"
)

func initClient(t *testing.T, varListPayload []byte) *Client {
	t.Helper()
	mock := &mockTransport{responses: [][]byte{
		frame(protocol.OpErrOpNotSupported, nil),
		frame(protocol.OpVarList, varListPayload),
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
	return c
}

// TestWriteReadOnlyVarRejected covers spec §8 scenario 3.
func TestWriteReadOnlyVarRejected(t *testing.T) {
	c := initClient(t, []byte{0x82, 0x04, 0x00}) // var[1] is read-only, size 4
	mock := c.transport.(*mockTransport)
	beforeSent := mock.totalSentBytes()

	v1, ok := c.Catalog().VarHandleAt(1)
	if !ok {
		t.Fatal("expected var handle at index 1")
	}
	err := c.WriteVar(context.Background(), v1, []byte{1, 2, 3, 4})
	if err != ErrParamInvalid {
		t.Fatalf("expected ErrParamInvalid, got %v", err)
	}
	if mock.totalSentBytes() != beforeSent {
		t.Fatal("expected zero bytes sent for a rejected write")
	}
}

// TestBinOpVarToggle covers spec §8 scenario 4.
func TestBinOpVarToggle(t *testing.T) {
	varPayload := make([]byte, 4)
	varPayload[3] = 0x81 // var[3]: writable, size 1
	mock := &mockTransport{responses: [][]byte{
		frame(protocol.OpErrOpNotSupported, nil),
		frame(protocol.OpVarList, varPayload),
		frame(protocol.OpGroupList, nil),
		frame(protocol.OpCurveList, nil),
		frame(protocol.OpFuncList, nil),
		frame(protocol.OpOK, nil),
	}}
	c, err := New(mock, testLogger(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	v3, ok := c.Catalog().VarHandleAt(3)
	if !ok {
		t.Fatal("expected var handle at index 3")
	}
	if err := c.BinOpVar(context.Background(), protocol.OpTOGGLE, v3, []byte{0x80}); err != nil {
		t.Fatal(err)
	}
	want := []byte{byte(protocol.OpVarBinOp), 0, 3, 3, 'T', 0x80}
	got := mock.sent[len(mock.sent)-1]
	if string(got) != string(want) {
		t.Fatalf("sent %v, want %v", got, want)
	}
}

// TestFuncExecuteDomainError covers spec §8 scenario 5.
func TestFuncExecuteDomainError(t *testing.T) {
	mock := &mockTransport{responses: [][]byte{
		frame(protocol.OpErrOpNotSupported, nil),
		frame(protocol.OpVarList, nil),
		frame(protocol.OpGroupList, nil),
		frame(protocol.OpCurveList, nil),
		frame(protocol.OpFuncList, []byte{0x12}), // input_size=1, output_size=2
		frame(protocol.OpFuncError, []byte{0x07}),
	}}
	c, err := New(mock, testLogger(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	f0, ok := c.Catalog().FuncHandleAt(0)
	if !ok {
		t.Fatal("expected func handle at index 0")
	}
	output, domainErr, err := c.FuncExecute(context.Background(), f0, []byte{0xFF})
	if err != nil {
		t.Fatal(err)
	}
	if domainErr != 7 {
		t.Fatalf("domainErr = %d, want 7", domainErr)
	}
	if output != nil {
		t.Fatalf("expected output untouched, got %v", output)
	}
}

// TestCurveBlockRequest covers spec §8 scenario 6.
func TestCurveBlockRequest(t *testing.T) {
	mock := &mockTransport{responses: [][]byte{
		frame(protocol.OpErrOpNotSupported, nil),
		frame(protocol.OpVarList, nil),
		frame(protocol.OpGroupList, nil),
		frame(protocol.OpCurveList, []byte{0x80, 0x10, 0x00, 0xFF, 0xFF}), // writable, block=4096, nblocks=65535
		frame(protocol.OpOK, nil),                                        // checksum fetch fails, non-fatal
		frame(protocol.OpFuncList, nil),
		frame(protocol.OpCurveBlock, []byte{0x00, 0x01, 0x02, 0xAA, 0xBB, 0xCC, 0xDD}),
	}}
	c, err := New(mock, testLogger(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	cv, ok := c.Catalog().CurveHandleAt(0)
	if !ok {
		t.Fatal("expected curve handle at index 0")
	}
	data, err := c.CurveBlockRequest(context.Background(), cv, 0x0102)
	if err != nil {
		t.Fatal(err)
	}
	wantReq := []byte{byte(protocol.OpCurveBlockRequest), 0, 3, 0x00, 0x01, 0x02}
	gotReq := mock.sent[len(mock.sent)-1]
	if string(gotReq) != string(wantReq) {
		t.Fatalf("sent %v, want %v", gotReq, wantReq)
	}
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	if string(data) != string(want) {
		t.Fatalf("data = %v, want %v", data, want)
	}
}

func TestBinOpInvalidOpcode(t *testing.T) {
	c := initClient(t, []byte{0x81})
	v0, _ := c.Catalog().VarHandleAt(0)
	err := c.BinOpVar(context.Background(), protocol.BinOp('Z'), v0, []byte{0x00})
	if err != ErrParamOutOfRange {
		t.Fatalf("expected ErrParamOutOfRange, got %v", err)
	}
}

func TestCreateGroupEmptyRejected(t *testing.T) {
	c := initClient(t, []byte{0x81})
	if err := c.CreateGroup(context.Background(), nil); err != ErrParamInvalid {
		t.Fatalf("expected ErrParamInvalid, got %v", err)
	}
}
