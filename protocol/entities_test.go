package protocol

import "testing"

// TestDecodeVarByte covers spec §8 scenario 2.
func TestDecodeVarByte(t *testing.T) {
	cases := []struct {
		b    byte
		want DecodedVar
	}{
		{0x82, DecodedVar{Size: 2, Writable: true}},
		{0x04, DecodedVar{Size: 4, Writable: false}},
		{0x00, DecodedVar{Size: VarMaxSize, Writable: false}},
	}
	for _, c := range cases {
		got := DecodeVarByte(c.b)
		if got != c.want {
			t.Fatalf("DecodeVarByte(%#x) = %+v, want %+v", c.b, got, c.want)
		}
	}
}

func TestDecodeCurveListRecord(t *testing.T) {
	rec := []byte{0x80, 0x10, 0x00, 0x00, 0x00}
	got := DecodeCurveListRecord(rec)
	if !got.Writable || got.BlockSize != 0x1000 || got.NBlocks != CurveMaxBlocks {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

// TestDecodeCurveListRecordWritableByte pins the curve writable byte
// as a whole-byte boolean, not bit-packed like Variable/Group: 0x01
// must decode as writable, not as writable=false with size bits set.
func TestDecodeCurveListRecordWritableByte(t *testing.T) {
	rec := []byte{0x01, 0x10, 0x00, 0x00, 0x00}
	got := DecodeCurveListRecord(rec)
	if !got.Writable {
		t.Fatalf("unexpected decode: %+v, want Writable=true", got)
	}
}

func TestDecodeFuncByte(t *testing.T) {
	got := DecodeFuncByte(0x1A)
	if got.InputSize != 1 || got.OutputSize != 0xA {
		t.Fatalf("unexpected decode: %+v", got)
	}
}
