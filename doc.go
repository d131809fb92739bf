// Copyright (c) Fenwick Labs
// Licensed under the MIT license

// Package colvec is the vector-and-integer compression core of a columnar
// feature-vector store: fixed-width integer bit-packing (packages bitpack,
// chunked, ioplan, bitwidth) and scalar-quantized vector storage with
// distance search (package sq).
//
// The broader file format, page layout, and I/O scheduler are external
// collaborators. This package only defines the narrow interface a host
// engine must implement to drive the codecs: IOProvider.
package colvec

import "context"

// ByteRange is a half-open byte range [Start, End) within a shared buffer.
type ByteRange struct {
	Start, End uint64
}

func (r ByteRange) Len() uint64 { return r.End - r.Start }

// LogicalRange is a half-open range [Start, End) of logical row indices.
type LogicalRange struct {
	Start, End uint64
}

func (r LogicalRange) Len() uint64 { return r.End - r.Start }

// IOProvider is the host engine's byte-range I/O scheduler. Given a list of
// half-open byte ranges it asynchronously returns their contents, one buffer
// per requested range, in order. Implementations may coalesce, prefetch, or
// cache at their discretion; callers only rely on order and completeness.
type IOProvider interface {
	Submit(ctx context.Context, ranges []ByteRange, correlationID uint64) (<-chan IOResult, error)
}

// IOResult carries the buffers returned by an IOProvider, or the first error
// encountered obtaining them. Decoders never see a partial buffer set: Err
// set means Buffers is nil.
type IOResult struct {
	Buffers [][]byte
	Err     error
}

// NonNegPageDescriptor is the metadata record for a chunked non-negative
// bit-packed page (C3). It is not a wire format; the host engine decides how
// to persist it.
type NonNegPageDescriptor struct {
	CompressedBitWidth   uint64
	UncompressedBitWidth uint64
	BufferIndex          uint32
}

// GeneralPageDescriptor is the metadata record for a bit-granular,
// sign-aware packed stream (C1/C2).
type GeneralPageDescriptor struct {
	CompressedBitWidth   uint64
	UncompressedBitWidth uint64
	BufferIndex          uint32
	Signed               bool
}
