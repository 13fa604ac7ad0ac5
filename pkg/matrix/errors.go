package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates a dimension that is not positive or too large to allocate.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that a row or column index is outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrUnknownKind indicates a matrix kind name that is neither mass nor stiffness.
	ErrUnknownKind = errors.New("matrix: unknown matrix kind")

	// ErrDimensionMismatch indicates a vector or matrix of the wrong size.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)
