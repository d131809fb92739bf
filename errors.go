package colvec

import "errors"

// Sentinel errors, per the error handling design: flat sentinels, wrapped
// with fmt.Errorf("%w: ...") at the call site, checked with errors.Is.
var (
	// ErrUnsupportedType is raised when an encoder is handed an element type
	// it does not store: chunked.Encode returns it for any kind other than
	// the four unsigned ones. Package bitpack does not return it; Pack and
	// Unpack panic on an uncompressed width that is not a positive multiple
	// of 8.
	ErrUnsupportedType = errors.New("colvec: unsupported element type")

	// ErrUnsupportedBlockShape is raised when an input's shape does not fit
	// the operation: a decode row range outside the page, a vector or code
	// whose length does not match the dimension, a row_id column that is not
	// a whole number of 8-byte values, or a batch whose codes length does
	// not match its row count or whose row IDs are not sorted.
	ErrUnsupportedBlockShape = errors.New("colvec: unsupported block shape")

	// ErrMissingColumn is raised when a record batch lacks a row_id or
	// sq_code column, or sq_code is not a FixedSizeList<u8>.
	ErrMissingColumn = errors.New("colvec: missing column")

	// ErrUninitializedIndex is raised when a query runs before codes and
	// row IDs have been loaded.
	ErrUninitializedIndex = errors.New("colvec: index not initialized")

	// ErrPolicyViolation signals a programmer error: an unsupported metric
	// or an unsupported query element type.
	ErrPolicyViolation = errors.New("colvec: policy violation")
)
