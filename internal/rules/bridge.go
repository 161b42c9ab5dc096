package rules

import (
	"github.com/suderio/jdice/internal/dice"
)

// ContextFromResult converts a dice.Result into a map suitable for CEL evaluation.
func ContextFromResult(res dice.Result) map[string]any {
	values := make([]int64, len(res.Values))
	for i, v := range res.Values {
		values[i] = int64(v)
	}
	return map[string]any{
		"total":  int64(res.Total),
		"bonus":  int64(res.Bonus),
		"values": values,
	}
}
