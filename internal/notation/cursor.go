package notation

import (
	"strconv"
	"strings"
	"unicode"
)

// Cursor scans the unconsumed part of an input string. Its whole state is the
// remaining text, so a Checkpoint reproduces the scan position exactly.
type Cursor struct {
	input string
	rest  string
}

// Checkpoint is a snapshot of a Cursor's scan position.
type Checkpoint struct {
	rest string
}

// NewCursor returns a Cursor positioned at the start of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input, rest: input}
}

// skipSpace drops leading whitespace.
func (c *Cursor) skipSpace() {
	c.rest = strings.TrimLeftFunc(c.rest, unicode.IsSpace)
}

// IsEmpty skips whitespace and reports whether nothing is left.
func (c *Cursor) IsEmpty() bool {
	c.skipSpace()
	return c.rest == ""
}

// ReadUnsigned consumes a maximal run of decimal digits. It consumes nothing
// when no digit follows or the run does not fit in an int.
func (c *Cursor) ReadUnsigned() (int, bool) {
	c.skipSpace()
	n := 0
	for n < len(c.rest) && c.rest[n] >= '0' && c.rest[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(c.rest[:n])
	if err != nil {
		return 0, false
	}
	c.rest = c.rest[n:]
	return v, true
}

// ReadSigned reads an integer with an optional leading '+' or '-'. A sign not
// followed by digits is left unconsumed.
func (c *Cursor) ReadSigned() (int, bool) {
	c.skipSpace()
	saved := c.Checkpoint()

	if c.Consume("+") {
		if v, ok := c.ReadUnsigned(); ok {
			return v, true
		}
		c.Rollback(saved)
		return 0, false
	}
	if c.Consume("-") {
		if v, ok := c.ReadUnsigned(); ok {
			return -v, true
		}
		c.Rollback(saved)
		return 0, false
	}
	return c.ReadUnsigned()
}

// Consume skips whitespace and eats token if the remaining text starts with it.
func (c *Cursor) Consume(token string) bool {
	c.skipSpace()
	if strings.HasPrefix(c.rest, token) {
		c.rest = c.rest[len(token):]
		return true
	}
	return false
}

// Checkpoint snapshots the scan position.
func (c *Cursor) Checkpoint() Checkpoint {
	return Checkpoint{rest: c.rest}
}

// Rollback restores a position taken with Checkpoint.
func (c *Cursor) Rollback(cp Checkpoint) {
	c.rest = cp.rest
}

// Pos is the byte offset of the scan position within the input.
func (c *Cursor) Pos() int {
	return len(c.input) - len(c.rest)
}

// Rest returns the unconsumed text.
func (c *Cursor) Rest() string {
	return c.rest
}
