package dice

import (
	"fmt"
	"strings"
)

// Result is the outcome of evaluating a roll expression.
type Result struct {
	Values []int // one per die, in roll order
	Bonus  int
	Total  int // sum(Values) + Bonus
}

// Combine merges two results: values are concatenated left then right,
// bonuses and totals are summed.
func Combine(a, b Result) Result {
	values := make([]int, 0, len(a.Values)+len(b.Values))
	values = append(values, a.Values...)
	values = append(values, b.Values...)
	return Result{
		Values: values,
		Bonus:  a.Bonus + b.Bonus,
		Total:  a.Total + b.Total,
	}
}

// String renders the result as "[3 5 2] +4 = 14".
func (r Result) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v", r.Values))
	switch {
	case r.Bonus > 0:
		sb.WriteString(fmt.Sprintf(" +%d", r.Bonus))
	case r.Bonus < 0:
		sb.WriteString(fmt.Sprintf(" -%d", -r.Bonus))
	}
	sb.WriteString(fmt.Sprintf(" = %d", r.Total))
	return sb.String()
}
