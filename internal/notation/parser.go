package notation

import (
	"strings"

	"github.com/suderio/jdice/internal/dice"
)

// MaxRepeat bounds the 'x' multiplier of a single entry.
const MaxRepeat = 1000

// Parse turns a dice notation string into a roll list.
//
// The grammar, matched ignoring ASCII case, is
//
//	roll-list := x-dice ( ';' x-dice )*
//	x-dice    := [ integer 'x' ] dice
//	dice      := dice-core ( '&' dice-core )*
//	dice-core := [ integer ] 'd' integer [ signed-integer ]
//
// The whole input must be consumed. On any mismatch Parse returns a nil list
// and a *SyntaxError; no partial list is ever returned.
//
// An entry repeated with 'x' is expanded into that many structural copies, so
// every copy rolls independently. A multiplier above MaxRepeat is rejected.
// Chains of '&' fold to the left:
// "a & b & c" is Sum{Sum{a, b}, c}.
func Parse(input string) (dice.List, error) {
	c := NewCursor(lowerASCII(input))

	list, ok := parseRollList(c, nil)
	if !ok || !c.IsEmpty() {
		tracer().Debugf("notation: rejected %q at offset %d", input, c.Pos())
		return nil, &SyntaxError{Input: input, Pos: c.Pos()}
	}
	if list == nil {
		list = dice.List{}
	}
	return list, nil
}

// lowerASCII folds A-Z only, so byte offsets into the result are offsets
// into input.
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// MustParse is like Parse but panics on invalid input.
func MustParse(input string) dice.List {
	list, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return list
}

func parseRollList(c *Cursor, acc dice.List) (dice.List, bool) {
	for {
		entries, ok := parseXDice(c)
		if !ok {
			return nil, false
		}
		acc = append(acc, entries...)
		if !c.Consume(";") {
			return acc, true
		}
	}
}

// parseXDice reads an optional "N x" multiplier and the dice it applies to.
func parseXDice(c *Cursor) (dice.List, bool) {
	times := 1
	saved := c.Checkpoint()
	if n, ok := c.ReadUnsigned(); ok && c.Consume("x") {
		if n > MaxRepeat {
			tracer().Debugf("notation: multiplier %d exceeds %d", n, MaxRepeat)
			return nil, false
		}
		times = n
	} else {
		// the integer, if any, is the die count
		c.Rollback(saved)
	}

	expr, ok := parseDice(c)
	if !ok {
		return nil, false
	}

	entries := make(dice.List, 0, times)
	for i := 0; i < times; i++ {
		entries = append(entries, expr.Clone())
	}
	if times != 1 {
		tracer().Debugf("notation: expanded %s into %d entries", expr, times)
	}
	return entries, true
}

// parseDice reads a dice-core followed by any number of "& dice-core" tails.
func parseDice(c *Cursor) (dice.Expr, bool) {
	core, ok := parseDiceCore(c)
	if !ok {
		return nil, false
	}
	var acc dice.Expr = core

	for c.Consume("&") {
		next, ok := parseDiceCore(c)
		if !ok {
			return nil, false
		}
		acc = dice.Sum{Left: acc, Right: next}
	}
	return acc, true
}

// parseDiceCore does not roll back on failure; callers that need to retry
// take a checkpoint first.
func parseDiceCore(c *Cursor) (dice.DieGroup, bool) {
	count, ok := c.ReadUnsigned()
	if !ok {
		count = 1
	}
	if !c.Consume("d") {
		tracer().Debugf("notation: expected 'd' at offset %d", c.Pos())
		return dice.DieGroup{}, false
	}
	sides, ok := c.ReadUnsigned()
	if !ok {
		tracer().Debugf("notation: expected side count at offset %d", c.Pos())
		return dice.DieGroup{}, false
	}
	bonus, _ := c.ReadSigned()
	return dice.DieGroup{Count: count, Sides: sides, Bonus: bonus}, true
}
