// Package dice implements roll expressions and their randomized evaluation.
package dice

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidSides indicates a die group asked for dice with less than one face.
var ErrInvalidSides = errors.New("dice must have at least one side")

// ErrInvalidCount indicates a die group asked for a negative number of dice.
var ErrInvalidCount = errors.New("dice count cannot be negative")

// ErrTooManyDice indicates a die group asked for more than MaxDice dice.
var ErrTooManyDice = fmt.Errorf("a group rolls at most %d dice", MaxDice)

// MaxDice bounds the dice count of a single DieGroup.
const MaxDice = 10000

// Expr is a roll expression: either a DieGroup or a Sum of two expressions.
//
// Expressions are immutable once built. Every call to Roll draws fresh values
// from the given Source; nothing is memoized between calls.
type Expr interface {
	// Roll evaluates the expression using src.
	Roll(src Source) (Result, error)
	// String renders the display form, with sums in parentheses.
	String() string
	// Notation renders the form accepted by the notation parser.
	Notation() string
	// Clone returns a structural copy that shares nothing with the receiver.
	Clone() Expr
}

// DieGroup rolls Count dice of Sides faces and adds Bonus.
type DieGroup struct {
	Count int
	Sides int
	Bonus int
}

// Roll draws Count values in [1, Sides], in roll order. Count must lie in
// [0, MaxDice].
func (g DieGroup) Roll(src Source) (Result, error) {
	if g.Count < 0 {
		return Result{}, fmt.Errorf("%s: %w", g, ErrInvalidCount)
	}
	if g.Count > MaxDice {
		return Result{}, fmt.Errorf("%s: %w", g, ErrTooManyDice)
	}
	if g.Sides < 1 {
		return Result{}, fmt.Errorf("%s: %w", g, ErrInvalidSides)
	}

	res := Result{
		Values: make([]int, 0, g.Count),
		Bonus:  g.Bonus,
		Total:  g.Bonus,
	}
	for i := 0; i < g.Count; i++ {
		v := rollDie(src, g.Sides)
		res.Values = append(res.Values, v)
		res.Total += v
	}
	return res, nil
}

func (g DieGroup) String() string {
	return g.Notation()
}

// Notation renders NdS with a +B or -B suffix when the bonus is not zero.
func (g DieGroup) Notation() string {
	s := strconv.Itoa(g.Count) + "d" + strconv.Itoa(g.Sides)
	switch {
	case g.Bonus > 0:
		s += "+" + strconv.Itoa(g.Bonus)
	case g.Bonus < 0:
		s += strconv.Itoa(g.Bonus)
	}
	return s
}

func (g DieGroup) Clone() Expr {
	return g
}

// Sum evaluates Left and Right independently and combines their results.
type Sum struct {
	Left  Expr
	Right Expr
}

// Roll evaluates Left before Right so values keep left-to-right order.
func (s Sum) Roll(src Source) (Result, error) {
	left, err := s.Left.Roll(src)
	if err != nil {
		return Result{}, err
	}
	right, err := s.Right.Roll(src)
	if err != nil {
		return Result{}, err
	}
	return Combine(left, right), nil
}

func (s Sum) String() string {
	return "(" + s.Left.String() + " & " + s.Right.String() + ")"
}

// Notation renders the operands joined by '&'. Sums built by the parser lean
// left, so the output parses back to the same tree.
func (s Sum) Notation() string {
	return s.Left.Notation() + " & " + s.Right.Notation()
}

func (s Sum) Clone() Expr {
	return Sum{Left: s.Left.Clone(), Right: s.Right.Clone()}
}

// rollDie rolls a die with the provided number of sides.
func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
