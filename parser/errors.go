package parser

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminated    = errors.New("unterminated construct")
	ErrMalformed       = errors.New("malformed construct")
	ErrUnsupported     = errors.New("unsupported construct")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrTooDeep         = errors.New("sections nested too deeply")
)

// SyntaxError is the single fatal error class of the tokenizer and the
// parser. No partial tree accompanies it.
type SyntaxError struct {
	Pos      Position
	Expected string
	Err      error

	// eof is set when the scan ran off the end of the input, so more
	// input could still complete the construct.
	eof bool
}

func (e *SyntaxError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: %v: expected %s", e.Pos, e.Err, e.Expected)
	}
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// IsIncomplete reports whether err was caused by the input ending inside
// a construct, as opposed to the input being wrong.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	if !errors.As(err, &se) {
		return false
	}
	return se.eof && errors.Is(se.Err, ErrUnterminated)
}

// Offset returns the byte offset carried by a SyntaxError, or -1.
func Offset(err error) int {
	var se *SyntaxError
	if !errors.As(err, &se) {
		return -1
	}
	return se.Pos.Offset
}
