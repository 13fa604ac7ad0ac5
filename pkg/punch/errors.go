package punch

import "errors"

var (
	// ErrFormat marks a record with a missing token or a token that does not
	// parse as the expected integer or floating-point literal.
	ErrFormat = errors.New("punch: malformed record")

	// ErrIO marks a punch file that could not be opened, mapped or read.
	ErrIO = errors.New("punch: i/o failure")
)
