// Package chunked implements the chunked, non-negative, fixed-width
// bit-packed page codec (C3): the whole column is bit-packed at one
// uniform bit width (the minimum needed by any value in it), split into
// fixed 1024-element chunks so a SIMD kernel can decode any chunk as an
// identical fixed-stride unit. The final chunk is zero-padded up to 1024
// logical elements before packing so every chunk has the same byte stride.
package chunked

import (
	"fmt"

	"github.com/fenwick-labs/colvec"
	"github.com/fenwick-labs/colvec/bitpack"
	"github.com/fenwick-labs/colvec/bitwidth"
	"github.com/fenwick-labs/colvec/internal/blockcache"
	"github.com/fenwick-labs/colvec/internal/xxhsum"
)

// ChunkSize is the number of logical elements packed per chunk.
const ChunkSize = 1024

// Page is the decoded-side view of an encoded chunked block: the single
// bit width chosen at encode time, the concatenated packed bytes (one
// ChunkSize*BitWidth/8-byte run per chunk), and enough shape information to
// address any chunk independently.
type Page struct {
	Kind     colvec.Kind
	NumRows  int
	BitWidth uint64
	Data     []byte
	Checksum uint64 // xxhsum.PageChecksum(Kind, NumRows, BitWidth, Data), verified by Decode

	// AllNull is set when every row in the page is null; in that case
	// BitWidth and Data are both zero/empty and decode always returns an
	// all-invalid array.
	AllNull bool
	// Nullable indicates Valid carries a validity bitmap that masks rows
	// independently of the packed payload (null rows are still packed, with
	// their values truncated to the low BitWidth bits; the bit width is
	// computed over non-null values only).
	Nullable bool
	Valid    []bool

	// cache, when set via UseCache, holds already-unpacked chunks keyed by
	// this page's Checksum so a scan that revisits a chunk skips the
	// bit-unpack step.
	cache *blockcache.Cache
}

// UseCache attaches a decoded-chunk cache to the page. Decode consults it
// before unpacking a chunk and populates it after, so repeated or
// overlapping Decode calls over the same page reuse prior work.
func (p *Page) UseCache(c *blockcache.Cache) {
	p.cache = c
}

// NumChunks returns how many 1024-element chunks the page is split into.
func (p *Page) NumChunks() int {
	if p.NumRows == 0 {
		return 0
	}
	return (p.NumRows + ChunkSize - 1) / ChunkSize
}

func (p *Page) chunkStride() uint64 {
	return ChunkSize * p.BitWidth / 8
}

// Encode computes one minimal unsigned bit width (C5) over every valid
// value in arr, then bit-packs (C1 with signed=false — C3 only ever stores
// non-negative values; signed columns use the GeneralPageDescriptor path
// in package bitpack instead) each ChunkSize-element chunk at that width.
func Encode(arr *colvec.IntArray) (*Page, error) {
	switch arr.Kind {
	case colvec.KindU8, colvec.KindU16, colvec.KindU32, colvec.KindU64:
	default:
		return nil, fmt.Errorf("%w: chunked pages only store unsigned kinds, got %v", colvec.ErrUnsupportedType, arr.Kind)
	}

	n := arr.Len()
	page := &Page{Kind: arr.Kind, NumRows: n}

	if arr.AllNull() {
		page.AllNull = true
		return page, nil
	}
	if arr.Valid != nil {
		page.Nullable = true
		page.Valid = append([]bool(nil), arr.Valid...)
	}

	width, ok := bitwidth.MinBitsUnsigned(arr)
	if !ok {
		width = 1
	}
	page.BitWidth = width

	nativeBits := arr.Kind.NativeBits()
	var data []byte
	for start := 0; start < n; start += ChunkSize {
		end := start + ChunkSize
		if end > n {
			end = n
		}
		chunk := sliceChunk(arr, start, end)
		raw := rawBytes(chunk, nativeBits)
		data = append(data, bitpack.Pack(raw, nativeBits, width)...)
	}
	page.Data = data
	page.Checksum = xxhsum.PageChecksum(uint64(page.Kind), uint64(page.NumRows), page.BitWidth, page.Data)
	return page, nil
}

// sliceChunk extracts logical rows [start,end) as a standalone IntArray.
func sliceChunk(arr *colvec.IntArray, start, end int) *colvec.IntArray {
	c := &colvec.IntArray{Kind: arr.Kind}
	switch arr.Kind {
	case colvec.KindU8:
		c.U8 = arr.U8[start:end]
	case colvec.KindU16:
		c.U16 = arr.U16[start:end]
	case colvec.KindU32:
		c.U32 = arr.U32[start:end]
	case colvec.KindU64:
		c.U64 = arr.U64[start:end]
	}
	if arr.Valid != nil {
		c.Valid = arr.Valid[start:end]
	}
	return c
}

// rawBytes returns the little-endian byte representation of a chunk,
// zero-padded to a full ChunkSize elements so every packed chunk has the
// same stride regardless of how many real rows it holds.
func rawBytes(c *colvec.IntArray, nativeBits uint64) []byte {
	nativeBytes := int(nativeBits / 8)
	buf := make([]byte, ChunkSize*nativeBytes)
	switch c.Kind {
	case colvec.KindU8:
		for i, v := range c.U8 {
			buf[i] = v
		}
	case colvec.KindU16:
		for i, v := range c.U16 {
			putLE16(buf[i*2:], v)
		}
	case colvec.KindU32:
		for i, v := range c.U32 {
			putLE32(buf[i*4:], v)
		}
	case colvec.KindU64:
		for i, v := range c.U64 {
			putLE64(buf[i*8:], v)
		}
	}
	return buf
}

func putLE16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
func putLE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
