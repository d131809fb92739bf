package sq

import (
	"errors"
	"fmt"

	"github.com/fenwick-labs/colvec"
)

var (
	errDim    = fmt.Errorf("%w: vector length does not match quantizer dimension", colvec.ErrUnsupportedBlockShape)
	errBounds = fmt.Errorf("%w: quantizer bounds require max > min", colvec.ErrPolicyViolation)

	errMissingRowID  = fmt.Errorf("%w: record batch has no row_id column", colvec.ErrMissingColumn)
	errMissingSQCode = fmt.Errorf("%w: record batch has no sq_code column", colvec.ErrMissingColumn)
	errSQCodeShape   = fmt.Errorf("%w: sq_code column is not a FixedSizeList<u8> of the quantizer's dimension", colvec.ErrMissingColumn)
)

// ErrRowNotFound is returned when a row ID lookup misses every chunk.
var ErrRowNotFound = errors.New("sq: row not found")
