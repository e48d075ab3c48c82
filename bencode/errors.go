package bencode

import (
	"errors"
	"fmt"
)

// Decode failures are classified by sentinel. Callers match them with
// errors.Is; the decoder always wraps them in a *DecodeError carrying
// the byte offset of the fault.
var (
	// ErrTruncated means the buffer ended before a required token:
	// a missing terminator, a short byte-string payload, an integer
	// or length cut off mid-digits.
	ErrTruncated = errors.New("truncated input")

	// ErrInvalidLength means a byte-string length prefix is malformed:
	// a non-digit in the digit run, a redundant leading zero, or a
	// length too large to represent.
	ErrInvalidLength = errors.New("invalid string length")

	// ErrInvalidInteger means an integer payload is malformed: empty
	// digits, leading zeros, negative zero, a stray sign, or a value
	// outside the signed 64-bit range.
	ErrInvalidInteger = errors.New("invalid integer")

	// ErrUnexpectedToken means a byte at a value position starts no
	// production.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrNonStringKey means a dictionary key position holds an
	// integer, list, or dictionary instead of a byte string.
	ErrNonStringKey = errors.New("dictionary key is not a byte string")

	// ErrDepthExceeded means list/dictionary nesting passed the
	// configured MaxDepth.
	ErrDepthExceeded = errors.New("nesting depth exceeded")
)

// DecodeError reports malformed input. Offset is the byte position in
// the original buffer where decoding failed; Err is one of the sentinel
// errors above.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bencode: %v at offset %d", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
