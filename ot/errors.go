package ot

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds. Errors returned by codecs wrap one of these, so clients may test
// for them with errors.Is.
var (
	// ErrOutOfBounds flags a read beyond the end of a table's bytes.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrUnsupportedVersion flags a version field this package cannot handle.
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrFormatMismatch flags size or count fields which are inconsistent with
	// the table's content or with the cross-table context.
	ErrFormatMismatch = errors.New("format mismatch")
	// ErrEncodeUnsupported is returned for tables which are decode-only.
	ErrEncodeUnsupported = errors.New("encoding not supported")
)

// TableError represents an error encountered while decoding or encoding a table.
// It names the table, so clients can attribute a failure without additional context.
type TableError struct {
	Table Tag    // the OpenType table where the error occurred (e.g., "hmtx")
	Op    string // "decode" or "encode"
	Err   error  // wraps one of the error kinds
}

// Error implements the error interface.
func (e *TableError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Table, e.Op, e.Err)
}

// Unwrap makes the error kind available to errors.Is.
func (e *TableError) Unwrap() error {
	return e.Err
}

// wrapTableError annotates err with table tag and operation, unless it already
// is a TableError.
func wrapTableError(tag Tag, op string, err error) error {
	if err == nil {
		return nil
	}
	var terr *TableError
	if errors.As(err, &terr) {
		return err
	}
	return &TableError{Table: tag, Op: op, Err: err}
}

// FontWarning represents a non-critical issue encountered during font parsing.
// Warnings indicate potential problems but do not prevent font usage.
type FontWarning struct {
	Table  Tag    // The OpenType table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two non-negative integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d: %w", a, b, ErrFormatMismatch)
	}
	return a * b, nil
}
