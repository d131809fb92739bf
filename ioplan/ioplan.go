// Package ioplan maps a list of logical row ranges over a chunked page (C3)
// into the minimal set of chunk-aligned byte ranges an IOProvider needs to
// fetch to satisfy them, coalescing adjacent requests that land in the same
// trailing chunk so a scattered scan issues one read instead of many.
package ioplan

import "github.com/fenwick-labs/colvec"

// Chunk describes the fixed layout of a chunked page (C3): chunkSize
// logical rows pack into chunkStride bytes, uniformly for every chunk.
type Chunk struct {
	ChunkSize   uint64
	ChunkStride uint64
}

func (c Chunk) chunkIndex(row uint64) uint64 {
	return row / c.ChunkSize
}

func (c Chunk) chunkStart(chunkIdx uint64) uint64 {
	return chunkIdx * c.ChunkStride
}

// Plan converts logical row ranges (assumed sorted and already clipped to
// the page, but not necessarily coalesced or contiguous) into the minimal
// ordered list of byte ranges covering them. Two logical ranges produce a
// single byte range when the first range's last row and the second range's
// first row fall in the same chunk — i.e. the byte range for the first
// request's trailing chunk already covers the second request's leading
// chunk, so fetching it once serves both.
func Plan(c Chunk, ranges []colvec.LogicalRange) []colvec.ByteRange {
	if len(ranges) == 0 {
		return nil
	}

	var out []colvec.ByteRange
	for _, r := range ranges {
		if r.Len() == 0 {
			continue
		}
		startChunk := c.chunkIndex(r.Start)
		endChunk := c.chunkIndex(r.End - 1)
		byteStart := c.chunkStart(startChunk)
		byteEnd := c.chunkStart(endChunk) + c.ChunkStride

		if len(out) > 0 {
			last := &out[len(out)-1]
			if byteStart < last.End {
				if byteEnd > last.End {
					last.End = byteEnd
				}
				continue
			}
		}
		out = append(out, colvec.ByteRange{Start: byteStart, End: byteEnd})
	}
	return out
}
