// Package xxhsum computes short integrity checksums for packed chunked
// pages, using the same xxhash digest the host file-identity code
// would use for any other byte-range fingerprint.
package xxhsum

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Sum64 returns the xxhash64 digest of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// PageChecksum folds the page's shape (kind, row count, bit width) into the
// digest ahead of the packed bytes, so a byte-identical payload decoded
// under the wrong descriptor still fails verification.
func PageChecksum(kind, numRows, bitWidth uint64, data []byte) uint64 {
	var h xxhash.Digest
	h.Reset()
	binary.Write(&h, binary.LittleEndian, kind)
	binary.Write(&h, binary.LittleEndian, numRows)
	binary.Write(&h, binary.LittleEndian, bitWidth)
	h.Write(data)
	return h.Sum64()
}

// Verify reports whether data matches a checksum previously produced by
// PageChecksum with the same shape parameters.
func Verify(kind, numRows, bitWidth uint64, data []byte, want uint64) bool {
	return PageChecksum(kind, numRows, bitWidth, data) == want
}
