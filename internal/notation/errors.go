package notation

import (
	"errors"
	"fmt"
)

// ErrInvalidSyntax is matched by every error Parse returns.
var ErrInvalidSyntax = errors.New("invalid dice syntax")

// SyntaxError reports where scanning of Input stopped.
type SyntaxError struct {
	Input string
	Pos   int
}

func (e *SyntaxError) Error() string {
	if e.Pos >= len(e.Input) {
		return fmt.Sprintf("%v: %q ends unexpectedly", ErrInvalidSyntax, e.Input)
	}
	return fmt.Sprintf("%v: %q at offset %d", ErrInvalidSyntax, e.Input, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return ErrInvalidSyntax
}
