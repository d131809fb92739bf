package sq

import (
	"fmt"
	"sort"

	"github.com/fenwick-labs/colvec"
)

// optimizeThreshold is the largest number of rows optimize puts into one
// chunk when folding pending rows into the chunk list, matching the
// 1024-row chunk size
// used by the bit-packed page codec so both layers share one cache-line
// and I/O granularity.
const optimizeThreshold = 1024

// chunk is one contiguous, row-ID-sorted run of quantized codes.
type chunk struct {
	rowIDs []uint64
	codes  []byte // flat, stride == dim
}

func (c *chunk) numRows() int { return len(c.rowIDs) }

// Storage is a chunked, append-only store of (rowID, quantized code) pairs
// (C7). Rows are addressed by global row offset via a prefix-sum table
// over chunk sizes, resolved with binary search; rows are also
// retrievable by row ID via a per-chunk binary search (chunks keep rowIDs
// sorted ascending).
type Storage struct {
	Dim int

	chunks  []*chunk
	offsets []uint64 // len(chunks)+1, offsets[i] = total rows before chunk i

	pending *chunk // buffered rows not yet folded into chunks
}

// NewStorage returns an empty Storage for dim-dimensional quantized codes.
func NewStorage(dim int) *Storage {
	return &Storage{
		Dim:     dim,
		offsets: []uint64{0},
		pending: &chunk{},
	}
}

// Column is one named column of an incoming record batch, as produced by a
// columnar reader upstream of this package. Data is the flat little-endian
// payload; ListWidth is the fixed per-row element count for a
// FixedSizeList<u8> column (sq_code) and is ignored for row_id.
type Column struct {
	Name      string
	Data      []byte
	ListWidth int
}

// AppendColumnBatch validates that batch carries a row_id column and a
// sq_code column shaped as FixedSizeList<u8> of the storage's dimension,
// then flattens both into AppendBatch. This is the record-batch-shaped
// entry point; AppendBatch itself is the flat, pre-validated one.
func (s *Storage) AppendColumnBatch(batch []Column) error {
	var rowID, sqCode *Column
	for i := range batch {
		switch batch[i].Name {
		case "row_id":
			rowID = &batch[i]
		case "sq_code":
			sqCode = &batch[i]
		}
	}
	if rowID == nil {
		return errMissingRowID
	}
	if sqCode == nil {
		return errMissingSQCode
	}
	if sqCode.ListWidth != s.Dim {
		return errSQCodeShape
	}

	if len(rowID.Data)%8 != 0 {
		return fmt.Errorf("%w: row_id column length %d is not a multiple of 8", colvec.ErrUnsupportedBlockShape, len(rowID.Data))
	}
	n := len(rowID.Data) / 8
	rowIDs := make([]uint64, n)
	for i := range rowIDs {
		off := i * 8
		var v uint64
		for j := 0; j < 8; j++ {
			v |= uint64(rowID.Data[off+j]) << (8 * j)
		}
		rowIDs[i] = v
	}
	return s.AppendBatch(rowIDs, sqCode.Data)
}

// AppendBatch appends rowIDs (must be sorted ascending and disjoint from
// every row already present) and their quantized codes (flat, stride ==
// Dim) to the store, then always runs optimize — matching the original
// engine's append_batch, which never leaves an unconsolidated pending
// batch observable to readers.
func (s *Storage) AppendBatch(rowIDs []uint64, codes []byte) error {
	if len(codes) != len(rowIDs)*s.Dim {
		return fmt.Errorf("%w: codes length %d, want %d", colvec.ErrUnsupportedBlockShape, len(codes), len(rowIDs)*s.Dim)
	}
	if !sort.SliceIsSorted(rowIDs, func(i, j int) bool { return rowIDs[i] < rowIDs[j] }) {
		return fmt.Errorf("%w: rowIDs must be sorted ascending", colvec.ErrUnsupportedBlockShape)
	}
	s.pending.rowIDs = append(s.pending.rowIDs, rowIDs...)
	s.pending.codes = append(s.pending.codes, codes...)
	s.optimize()
	return nil
}

// optimize folds complete optimizeThreshold-row runs out of pending into
// the chunk list, and — when pending still holds a partial run after that
// — folds the remainder in too as a single short final chunk. This keeps
// every row immediately queryable (no data sits only in `pending` across
// calls) while still batching most chunks at the full threshold size for
// scan efficiency.
func (s *Storage) optimize() {
	for len(s.pending.rowIDs) > 0 {
		n := len(s.pending.rowIDs)
		if n > optimizeThreshold {
			n = optimizeThreshold
		}
		c := &chunk{
			rowIDs: append([]uint64(nil), s.pending.rowIDs[:n]...),
			codes:  append([]byte(nil), s.pending.codes[:n*s.Dim]...),
		}
		s.chunks = append(s.chunks, c)
		s.offsets = append(s.offsets, s.offsets[len(s.offsets)-1]+uint64(n))

		s.pending.rowIDs = s.pending.rowIDs[n:]
		s.pending.codes = s.pending.codes[n*s.Dim:]

		if n < optimizeThreshold {
			break
		}
	}
}

// NumRows returns the total number of rows stored.
func (s *Storage) NumRows() int {
	return int(s.offsets[len(s.offsets)-1])
}

// RowAt returns the row ID and quantized code at global row offset idx, in
// [0, NumRows()). The containing chunk is found by binary search over the
// offsets prefix-sum table.
func (s *Storage) RowAt(idx int) (rowID uint64, code []byte, err error) {
	if s.NumRows() == 0 {
		return 0, nil, fmt.Errorf("%w: storage has no rows loaded", colvec.ErrUninitializedIndex)
	}
	if idx < 0 || idx >= s.NumRows() {
		return 0, nil, fmt.Errorf("%w: row offset %d out of bounds", ErrRowNotFound, idx)
	}
	chunkIdx := sort.Search(len(s.chunks), func(i int) bool {
		return s.offsets[i+1] > uint64(idx)
	})
	c := s.chunks[chunkIdx]
	local := idx - int(s.offsets[chunkIdx])
	return c.rowIDs[local], c.codes[local*s.Dim : (local+1)*s.Dim], nil
}

// Lookup returns the quantized code stored for rowID, or ErrRowNotFound.
// Each chunk's rowIDs are sorted ascending, so lookup is a binary search
// per chunk; chunks themselves are scanned in order (there are typically
// few of them relative to rows).
func (s *Storage) Lookup(rowID uint64) ([]byte, error) {
	if s.NumRows() == 0 {
		return nil, fmt.Errorf("%w: storage has no rows loaded", colvec.ErrUninitializedIndex)
	}
	for _, c := range s.chunks {
		i := sort.Search(len(c.rowIDs), func(i int) bool { return c.rowIDs[i] >= rowID })
		if i < len(c.rowIDs) && c.rowIDs[i] == rowID {
			return c.codes[i*s.Dim : (i+1)*s.Dim], nil
		}
	}
	return nil, fmt.Errorf("%w: row id %d", ErrRowNotFound, rowID)
}

// ForEach visits every (rowID, code) pair in chunk order, stopping early
// if fn returns false.
func (s *Storage) ForEach(fn func(rowID uint64, code []byte) bool) {
	for _, c := range s.chunks {
		for i, id := range c.rowIDs {
			if !fn(id, c.codes[i*s.Dim:(i+1)*s.Dim]) {
				return
			}
		}
	}
}
