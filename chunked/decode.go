package chunked

import (
	"fmt"

	"github.com/fenwick-labs/colvec"
	"github.com/fenwick-labs/colvec/bitpack"
	"github.com/fenwick-labs/colvec/internal/blockcache"
	"github.com/fenwick-labs/colvec/internal/cpufeature"
	"github.com/fenwick-labs/colvec/internal/xxhsum"
)

// Decode expands logical rows [rowStart, rowStart+numRows) back into a
// fresh IntArray. Rows may span multiple chunks; each contributing chunk is
// unpacked once in full (and cached, if UseCache was called) and then
// sliced down to the rows actually requested from it.
func (p *Page) Decode(rowStart, numRows int) (*colvec.IntArray, error) {
	if rowStart < 0 || numRows < 0 || rowStart+numRows > p.NumRows {
		return nil, fmt.Errorf("%w: row range [%d,%d) out of bounds for %d rows",
			colvec.ErrUnsupportedBlockShape, rowStart, rowStart+numRows, p.NumRows)
	}

	out := newOutArray(p.Kind, numRows)
	if p.AllNull {
		out.Valid = make([]bool, numRows)
		return out, nil
	}

	if !xxhsum.Verify(uint64(p.Kind), uint64(p.NumRows), p.BitWidth, p.Data, p.Checksum) {
		return nil, fmt.Errorf("%w: page kind=%v numRows=%d bitWidth=%d", ErrChecksumMismatch, p.Kind, p.NumRows, p.BitWidth)
	}

	nativeBits := p.Kind.NativeBits()
	written := 0
	for written < numRows {
		row := rowStart + written
		chunkIdx := row / ChunkSize
		chunkRowStart := row % ChunkSize
		chunkRowsAvail := ChunkSize - chunkRowStart
		take := numRows - written
		if take > chunkRowsAvail {
			take = chunkRowsAvail
		}

		fullChunk := p.decodeChunk(chunkIdx, nativeBits)
		nativeBytes := int(nativeBits / 8)
		lo, hi := chunkRowStart*nativeBytes, (chunkRowStart+take)*nativeBytes
		copyRaw(out, written, fullChunk[lo:hi], nativeBits)
		written += take
	}

	if p.Nullable {
		out.Valid = append([]bool(nil), p.Valid[rowStart:rowStart+numRows]...)
	}
	return out, nil
}

// decodeChunk returns the fully unpacked native-byte contents of chunk
// chunkIdx (always ChunkSize elements, zero-padded on the final chunk),
// consulting p.cache first and populating it afterward when set.
func (p *Page) decodeChunk(chunkIdx int, nativeBits uint64) []byte {
	var key blockcache.Key
	if p.cache != nil {
		key = blockcache.Key{PageID: p.Checksum, ChunkIdx: uint32(chunkIdx), BitWidth: uint32(p.BitWidth)}
		if cached, ok := p.cache.Get(key); ok {
			return cached
		}
	}

	stride := p.chunkStride()
	lo, hi := uint64(chunkIdx)*stride, uint64(chunkIdx+1)*stride
	chunkBytes := p.Data[lo:hi]

	var full []byte
	if p.BitWidth%8 == 0 && cpufeature.WideLanesAvailable() {
		full = unpackAlignedChunk(chunkBytes, nativeBits, p.BitWidth)
	} else {
		full = bitpack.Unpack(chunkBytes, nativeBits, p.BitWidth, 0, ChunkSize, false)
	}

	if p.cache != nil {
		p.cache.Add(key, full)
	}
	return full
}

// unpackAlignedChunk expands a chunk packed at a byte-aligned bit width
// (8/16/.../64) by copying each value's bytes directly into its native-width
// slot and zero-extending the rest, skipping bitpack's generic bit-cursor
// loop entirely. Only valid when bitWidth is a multiple of 8 — the "wide
// lane" case a SIMD kernel can load/store without any bit-shifting.
func unpackAlignedChunk(chunkBytes []byte, nativeBits, bitWidth uint64) []byte {
	codeBytes := int(bitWidth / 8)
	nativeBytes := int(nativeBits / 8)
	out := make([]byte, ChunkSize*nativeBytes)
	for i := 0; i < ChunkSize; i++ {
		srcOff := i * codeBytes
		if srcOff >= len(chunkBytes) {
			break
		}
		copy(out[i*nativeBytes:i*nativeBytes+codeBytes], chunkBytes[srcOff:srcOff+codeBytes])
	}
	return out
}

func newOutArray(kind colvec.Kind, n int) *colvec.IntArray {
	a := &colvec.IntArray{Kind: kind}
	switch kind {
	case colvec.KindU8:
		a.U8 = make([]uint8, n)
	case colvec.KindU16:
		a.U16 = make([]uint16, n)
	case colvec.KindU32:
		a.U32 = make([]uint32, n)
	case colvec.KindU64:
		a.U64 = make([]uint64, n)
	}
	return a
}

// copyRaw scatters raw little-endian bytes into out starting at logical
// offset dstStart.
func copyRaw(out *colvec.IntArray, dstStart int, raw []byte, nativeBits uint64) {
	switch out.Kind {
	case colvec.KindU8:
		for i, b := range raw {
			out.U8[dstStart+i] = b
		}
	case colvec.KindU16:
		n := len(raw) / 2
		for i := 0; i < n; i++ {
			out.U16[dstStart+i] = uint16(raw[i*2]) | uint16(raw[i*2+1])<<8
		}
	case colvec.KindU32:
		n := len(raw) / 4
		for i := 0; i < n; i++ {
			out.U32[dstStart+i] = uint32(raw[i*4]) | uint32(raw[i*4+1])<<8 |
				uint32(raw[i*4+2])<<16 | uint32(raw[i*4+3])<<24
		}
	case colvec.KindU64:
		n := len(raw) / 8
		for i := 0; i < n; i++ {
			var v uint64
			for j := 0; j < 8; j++ {
				v |= uint64(raw[i*8+j]) << (8 * j)
			}
			out.U64[dstStart+i] = v
		}
	}
}
