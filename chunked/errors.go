package chunked

import "errors"

// ErrChecksumMismatch is raised when a page's stored Checksum doesn't match
// its Data, Kind, NumRows, and BitWidth — a corrupted or mismatched
// descriptor handed to Decode.
var ErrChecksumMismatch = errors.New("chunked: page checksum mismatch")
