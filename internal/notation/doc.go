/*
Package notation parses tabletop dice notation such as

	4d6+3 ; 8d12-15 ; 2x3d8 & d6+2

into a dice.List. Parsing is a recursive descent over a Cursor that supports
checkpoint and rollback, used to tell a repeat multiplier ("2x...") apart from
a die count ("2d...").

Parser decisions are traced at debug level with key 'jdice.notation'.
*/
package notation

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'jdice.notation'
func tracer() tracing.Trace {
	return tracing.Select("jdice.notation")
}
