package chunked

import (
	"errors"
	"testing"

	"github.com/fenwick-labs/colvec"
	"github.com/fenwick-labs/colvec/internal/blockcache"
)

func TestEncodeSizeScenario(t *testing.T) {
	// Spec scenario: U32 [0..2047] (2048 rows) needs 11 bits/value ->
	// 2 chunks of 1024 * 11 bits / 8 = 1408 bytes each = 2816 bytes total.
	values := make([]uint32, 2048)
	for i := range values {
		values[i] = uint32(i)
	}
	arr := &colvec.IntArray{Kind: colvec.KindU32, U32: values}
	page, err := Encode(arr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(page.Data) != 2816 {
		t.Fatalf("packed size = %d, want 2816", len(page.Data))
	}
	if page.NumChunks() != 2 {
		t.Fatalf("chunks = %d, want 2", page.NumChunks())
	}
	if page.BitWidth != 11 {
		t.Fatalf("bit width = %d, want 11", page.BitWidth)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := make([]uint32, 2500)
	for i := range values {
		values[i] = uint32(i * 7 % 4000)
	}
	arr := &colvec.IntArray{Kind: colvec.KindU32, U32: values}
	page, err := Encode(arr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := page.Decode(0, len(values))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, v := range values {
		if got.U32[i] != v {
			t.Fatalf("row %d: got %d, want %d", i, got.U32[i], v)
		}
	}
}

func TestDecodeSpansTwoChunks(t *testing.T) {
	values := make([]uint32, 2048)
	for i := range values {
		values[i] = uint32(i)
	}
	arr := &colvec.IntArray{Kind: colvec.KindU32, U32: values}
	page, err := Encode(arr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := page.Decode(1000, 48) // straddles the chunk boundary at row 1024
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := 0; i < 48; i++ {
		want := values[1000+i]
		if got.U32[i] != want {
			t.Fatalf("row %d: got %d, want %d", i, got.U32[i], want)
		}
	}
}

func TestEncodeAllNull(t *testing.T) {
	arr := &colvec.IntArray{
		Kind:  colvec.KindU16,
		U16:   []uint16{1, 2, 3},
		Valid: []bool{false, false, false},
	}
	page, err := Encode(arr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !page.AllNull {
		t.Fatalf("expected AllNull page")
	}
	got, err := page.Decode(0, 3)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := 0; i < 3; i++ {
		if got.IsValid(i) {
			t.Fatalf("row %d should be null", i)
		}
	}
}

func TestEncodeNullableMasksBitWidth(t *testing.T) {
	// A large sentinel value sits only in a null slot: the minimal bit
	// width must reflect real (valid) values only, since a null slot's
	// packed payload is never read back.
	arr := &colvec.IntArray{
		Kind:  colvec.KindU32,
		U32:   []uint32{1, 2, 3, 0xFFFFFFFF},
		Valid: []bool{true, true, true, false},
	}
	page, err := Encode(arr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if page.BitWidth != 2 {
		t.Fatalf("bit width = %d, want 2 (max valid value is 3)", page.BitWidth)
	}

	got, err := page.Decode(0, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := 0; i < 3; i++ {
		if !got.IsValid(i) || got.U32[i] != arr.U32[i] {
			t.Fatalf("row %d mismatch", i)
		}
	}
	if got.IsValid(3) {
		t.Fatalf("row 3 should be null")
	}
}

func TestEncodeRejectsSignedKind(t *testing.T) {
	arr := &colvec.IntArray{Kind: colvec.KindI32, I32: []int32{1, 2, 3}}
	if _, err := Encode(arr); err == nil {
		t.Fatalf("expected error for signed kind")
	}
}

func TestDecodeDetectsChecksumMismatch(t *testing.T) {
	values := make([]uint32, 10)
	for i := range values {
		values[i] = uint32(i)
	}
	arr := &colvec.IntArray{Kind: colvec.KindU32, U32: values}
	page, err := Encode(arr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	page.Checksum ^= 1

	if _, err := page.Decode(0, len(values)); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("Decode: got %v, want ErrChecksumMismatch", err)
	}
}

func TestDecodeUsesCacheOnRepeatedChunk(t *testing.T) {
	values := make([]uint32, 2048)
	for i := range values {
		values[i] = uint32(i)
	}
	arr := &colvec.IntArray{Kind: colvec.KindU32, U32: values}
	page, err := Encode(arr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	page.UseCache(blockcache.New(8))

	for _, rng := range [][2]int{{0, 100}, {50, 200}, {900, 200}} {
		got, err := page.Decode(rng[0], rng[1])
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		for i := 0; i < rng[1]; i++ {
			if got.U32[i] != values[rng[0]+i] {
				t.Fatalf("row %d: got %d, want %d", rng[0]+i, got.U32[i], values[rng[0]+i])
			}
		}
	}
}
