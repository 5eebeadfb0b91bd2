package funge

import (
	"errors"
	"fmt"
)

// The engine fails in a closed set of ways: I/O errors, a program that does
// not fit the playfield, non-ASCII data where ASCII is required, and unknown
// command bytes reached by the compiler's trace. Everything else is defined
// behavior.

// ErrInvalidData reports decimal input that could not be parsed, including an
// empty token at end of stream.
var ErrInvalidData = errors.New("invalid decimal input")

// InvalidGridSizeError reports a program larger than the 80x25 playfield.
type InvalidGridSizeError struct {
	Width  int
	Height int
}

func (e *InvalidGridSizeError) Error() string {
	return fmt.Sprintf("grid size %d x %d invalid", e.Width, e.Height)
}

// NonASCIIError reports a non-ASCII character in program source, or an output
// value outside the ASCII range 0-127.
type NonASCIIError struct {
	Value int64
}

func (e *NonASCIIError) Error() string {
	if 0 <= e.Value && e.Value <= 0x10FFFF {
		return fmt.Sprintf("non-ASCII character %q", rune(e.Value))
	}
	return fmt.Sprintf("non-ASCII value %d", e.Value)
}

// IllegalCommandError reports a byte that is not a Befunge-93 command,
// encountered by the compiler outside string mode.
type IllegalCommandError struct {
	Command byte
	Pos     Position
}

func (e *IllegalCommandError) Error() string {
	return fmt.Sprintf("illegal command %q at (%d,%d)", e.Command, e.Pos.X, e.Pos.Y)
}
