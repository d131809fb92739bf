// Package bitwidth computes the minimum number of bits needed to represent
// the contents of an integer array: the bit-width analyzer (C5).
package bitwidth

import (
	"math/bits"

	"github.com/fenwick-labs/colvec"
)

// SignedResult is the outcome of MinBitsSigned: the minimum bit width and
// whether a sign bit had to be reserved.
type SignedResult struct {
	NumBits uint64
	Signed  bool
}

// MinBitsUnsigned returns max(1, native_bit_width - leading_zeros(bitwise_or
// of all elements)), or ok=false if the array is empty or all-null.
//
// Bitwise-or is correct here because the widest value dominates the
// high-bit pattern: any element whose magnitude requires bit k forces bit k
// set in the OR, so the OR's own leading-zero count is exactly the leading-
// zero count of the largest element.
func MinBitsUnsigned(a *colvec.IntArray) (numBits uint64, ok bool) {
	switch a.Kind {
	case colvec.KindU8:
		return orReduce8(a.U8, a.Valid)
	case colvec.KindU16:
		return orReduce16(a.U16, a.Valid)
	case colvec.KindU32:
		return orReduce32(a.U32, a.Valid)
	case colvec.KindU64:
		return orReduce64(a.U64, a.Valid)
	default:
		return 0, false
	}
}

func orReduce8(values []uint8, valid []bool) (uint64, bool) {
	var orAll uint8
	seen := false
	for i, v := range values {
		if valid != nil && !valid[i] {
			continue
		}
		orAll |= v
		seen = true
	}
	if !seen {
		return 0, false
	}
	n := 8 - uint64(bits.LeadingZeros8(orAll))
	return max1(n), true
}

func orReduce16(values []uint16, valid []bool) (uint64, bool) {
	var orAll uint16
	seen := false
	for i, v := range values {
		if valid != nil && !valid[i] {
			continue
		}
		orAll |= v
		seen = true
	}
	if !seen {
		return 0, false
	}
	n := 16 - uint64(bits.LeadingZeros16(orAll))
	return max1(n), true
}

func orReduce32(values []uint32, valid []bool) (uint64, bool) {
	var orAll uint32
	seen := false
	for i, v := range values {
		if valid != nil && !valid[i] {
			continue
		}
		orAll |= v
		seen = true
	}
	if !seen {
		return 0, false
	}
	n := 32 - uint64(bits.LeadingZeros32(orAll))
	return max1(n), true
}

func orReduce64(values []uint64, valid []bool) (uint64, bool) {
	var orAll uint64
	seen := false
	for i, v := range values {
		if valid != nil && !valid[i] {
			continue
		}
		orAll |= v
		seen = true
	}
	if !seen {
		return 0, false
	}
	n := 64 - uint64(bits.LeadingZeros64(orAll))
	return max1(n), true
}

// MinBitsSigned scans elements, tracking leading-zero counts for
// nonnegative values and leading-one counts for negative ones (separately,
// since negatives saturate high bits and bitwise-or can't be used). The
// result width is native_bit_width minus the minimum such count, plus one
// extra bit if any negative value was observed.
func MinBitsSigned(a *colvec.IntArray) (SignedResult, bool) {
	switch a.Kind {
	case colvec.KindI8:
		return signedReduce8(a.I8, a.Valid)
	case colvec.KindI16:
		return signedReduce16(a.I16, a.Valid)
	case colvec.KindI32:
		return signedReduce32(a.I32, a.Valid)
	case colvec.KindI64:
		return signedReduce64(a.I64, a.Valid)
	default:
		return SignedResult{}, false
	}
}

func signedReduce8(values []int8, valid []bool) (SignedResult, bool) {
	const w = 8
	minLead := uint64(w + 1)
	addSign := false
	seen := false
	for i, v := range values {
		if valid != nil && !valid[i] {
			continue
		}
		seen = true
		if v < 0 {
			addSign = true
			lo := uint64(bits.LeadingZeros8(^uint8(v)))
			minLead = min64(minLead, lo)
		} else {
			lz := uint64(bits.LeadingZeros8(uint8(v)))
			minLead = min64(minLead, lz)
		}
	}
	if !seen {
		return SignedResult{}, false
	}
	n := w - minLead
	if addSign {
		n++
	}
	return SignedResult{NumBits: max1(n), Signed: addSign}, true
}

func signedReduce16(values []int16, valid []bool) (SignedResult, bool) {
	const w = 16
	minLead := uint64(w + 1)
	addSign := false
	seen := false
	for i, v := range values {
		if valid != nil && !valid[i] {
			continue
		}
		seen = true
		if v < 0 {
			addSign = true
			lo := uint64(bits.LeadingZeros16(^uint16(v)))
			minLead = min64(minLead, lo)
		} else {
			lz := uint64(bits.LeadingZeros16(uint16(v)))
			minLead = min64(minLead, lz)
		}
	}
	if !seen {
		return SignedResult{}, false
	}
	n := w - minLead
	if addSign {
		n++
	}
	return SignedResult{NumBits: max1(n), Signed: addSign}, true
}

func signedReduce32(values []int32, valid []bool) (SignedResult, bool) {
	const w = 32
	minLead := uint64(w + 1)
	addSign := false
	seen := false
	for i, v := range values {
		if valid != nil && !valid[i] {
			continue
		}
		seen = true
		if v < 0 {
			addSign = true
			lo := uint64(bits.LeadingZeros32(^uint32(v)))
			minLead = min64(minLead, lo)
		} else {
			lz := uint64(bits.LeadingZeros32(uint32(v)))
			minLead = min64(minLead, lz)
		}
	}
	if !seen {
		return SignedResult{}, false
	}
	n := w - minLead
	if addSign {
		n++
	}
	return SignedResult{NumBits: max1(n), Signed: addSign}, true
}

func signedReduce64(values []int64, valid []bool) (SignedResult, bool) {
	const w = 64
	minLead := uint64(w + 1)
	addSign := false
	seen := false
	for i, v := range values {
		if valid != nil && !valid[i] {
			continue
		}
		seen = true
		if v < 0 {
			addSign = true
			lo := uint64(bits.LeadingZeros64(^uint64(v)))
			minLead = min64(minLead, lo)
		} else {
			lz := uint64(bits.LeadingZeros64(uint64(v)))
			minLead = min64(minLead, lz)
		}
	}
	if !seen {
		return SignedResult{}, false
	}
	n := w - minLead
	if addSign {
		n++
	}
	return SignedResult{NumBits: max1(n), Signed: addSign}, true
}

func max1(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	return n
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
