package bitwidth

import (
	"testing"

	"github.com/fenwick-labs/colvec"
)

func TestMinBitsUnsigned(t *testing.T) {
	cases := []struct {
		name string
		arr  *colvec.IntArray
		want uint64
		ok   bool
	}{
		{"u8 zeroes", &colvec.IntArray{Kind: colvec.KindU8, U8: []uint8{0, 0, 0}}, 1, true},
		{"u8 small values", &colvec.IntArray{Kind: colvec.KindU8, U8: []uint8{0, 1, 2, 3, 4, 5}}, 3, true},
		{"u16 shifted", &colvec.IntArray{Kind: colvec.KindU16, U16: []uint16{0, 1, 2, 3, 4, 5 << 8}}, 11, true},
		{"u32 shifted", &colvec.IntArray{Kind: colvec.KindU32, U32: []uint32{0, 1, 2, 3, 4, 5 << 16}}, 19, true},
		{"u64 shifted", &colvec.IntArray{Kind: colvec.KindU64, U64: []uint64{0, 1, 2, 3, 4, 5 << 32}}, 35, true},
		{"empty", &colvec.IntArray{Kind: colvec.KindU8, U8: nil}, 0, false},
		{
			"all null",
			&colvec.IntArray{Kind: colvec.KindU8, U8: []uint8{5, 9}, Valid: []bool{false, false}},
			0, false,
		},
		{
			"some null ignored",
			&colvec.IntArray{Kind: colvec.KindU8, U8: []uint8{255, 1}, Valid: []bool{false, true}},
			1, true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := MinBitsUnsigned(c.arr)
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v", ok, c.ok)
			}
			if ok && got != c.want {
				t.Fatalf("numBits = %d, want %d", got, c.want)
			}
		})
	}
}

func TestMinBitsSigned(t *testing.T) {
	cases := []struct {
		name       string
		arr        *colvec.IntArray
		wantBits   uint64
		wantSigned bool
	}{
		{"one two neg seven", &colvec.IntArray{Kind: colvec.KindI32, I32: []int32{1, 2, -7}}, 4, true},
		{"all nonneg", &colvec.IntArray{Kind: colvec.KindI32, I32: []int32{1, 2, 7}}, 3, false},
		{"i8 one neg", &colvec.IntArray{Kind: colvec.KindI8, I8: []int8{0, 2, 3, 4, -5}}, 4, true},
		{"i8 all nonneg", &colvec.IntArray{Kind: colvec.KindI8, I8: []int8{0, 2, 3, 4, 5}}, 3, false},
		{"i16", &colvec.IntArray{Kind: colvec.KindI16, I16: []int16{0, 1, 2, 3, -4, 5 << 8}}, 12, true},
		{"i64", &colvec.IntArray{Kind: colvec.KindI64, I64: []int64{0, 1, 2, -3, -4, -5 << 32}}, 36, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := MinBitsSigned(c.arr)
			if !ok {
				t.Fatalf("expected ok=true")
			}
			if got.NumBits != c.wantBits {
				t.Fatalf("numBits = %d, want %d", got.NumBits, c.wantBits)
			}
			if got.Signed != c.wantSigned {
				t.Fatalf("signed = %v, want %v", got.Signed, c.wantSigned)
			}
			if got.Signed && got.NumBits < 2 {
				t.Fatalf("signed result must be at least 2 bits, got %d", got.NumBits)
			}
		})
	}
}

func TestMinBitsUnsignedMinimality(t *testing.T) {
	// Property: for any non-empty array, result equals max(1, W -
	// leading_zeros(bitor of all elements)), computed independently here.
	values := []uint32{7, 200, 3, 1 << 20}
	arr := &colvec.IntArray{Kind: colvec.KindU32, U32: values}
	var orAll uint32
	for _, v := range values {
		orAll |= v
	}
	want := uint64(32)
	for want > 1 && orAll&(1<<(want-1)) == 0 {
		want--
	}
	got, ok := MinBitsUnsigned(arr)
	if !ok || got != want {
		t.Fatalf("got (%d,%v), want %d", got, ok, want)
	}
}
