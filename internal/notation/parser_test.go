package notation

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/jdice/internal/dice"
)

func TestParseSingleDie(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jdice.notation")
	defer teardown()

	list, err := Parse("d6")
	require.NoError(t, err)
	assert.Equal(t, dice.List{dice.DieGroup{Count: 1, Sides: 6, Bonus: 0}}, list)
}

func TestParseValid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jdice.notation")
	defer teardown()

	d := func(count, sides, bonus int) dice.DieGroup {
		return dice.DieGroup{Count: count, Sides: sides, Bonus: bonus}
	}

	tests := []struct {
		input string
		want  dice.List
	}{
		{"2d6", dice.List{d(2, 6, 0)}},
		{"d6+5", dice.List{d(1, 6, 5)}},
		{"  D20 - 1 ", dice.List{d(1, 20, -1)}},
		{"4X3d8-5", dice.List{d(3, 8, -5), d(3, 8, -5), d(3, 8, -5), d(3, 8, -5)}},
		{"12d10+5 & 4d6+2", dice.List{dice.Sum{Left: d(12, 10, 5), Right: d(4, 6, 2)}}},
		{"d6 ; 2d4+3", dice.List{d(1, 6, 0), d(2, 4, 3)}},
		{"4d6+3 ; 8d12 -15 ; 9d10 & 3d6 & 4d12 +17", dice.List{
			d(4, 6, 3),
			d(8, 12, -15),
			dice.Sum{Left: dice.Sum{Left: d(9, 10, 0), Right: d(3, 6, 0)}, Right: d(4, 12, 17)},
		}},
		{"2x3d8 & d6+2", dice.List{
			dice.Sum{Left: d(3, 8, 0), Right: d(1, 6, 2)},
			dice.Sum{Left: d(3, 8, 0), Right: d(1, 6, 2)},
		}},
		{"0d5", dice.List{d(0, 5, 0)}},
		{"3d0", dice.List{d(3, 0, 0)}},
		{"0xd6", dice.List{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			list, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, list)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jdice.notation")
	defer teardown()

	inputs := []string{
		"",
		"   ",
		"hi",
		"6",
		"4d6 + xyzzy",
		"4d4d4",
		"d",
		"4d",
		"3x",
		"3x4",
		"d6 &",
		"d6 & 7",
		"d6 ;",
		"; d6",
		"d6 ; ; d8",
		"2x3d8 & 2x d6",
		"d-6",
		"1001xd6",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			list, err := Parse(in)
			assert.Nil(t, list)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSyntax)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, in, se.Input)
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("4d4d4")
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 3, se.Pos)
	assert.Contains(t, err.Error(), "offset 3")

	_, err = Parse("4d")
	require.ErrorAs(t, err, &se)
	assert.Contains(t, err.Error(), "ends unexpectedly")
}

func TestSyntaxErrorPositionNonASCII(t *testing.T) {
	for _, in := range []string{"İİ", "2d6 İ", "2D6 ; ẞ", "d6 & ǅ"} {
		_, err := Parse(in)
		var se *SyntaxError
		require.ErrorAs(t, err, &se, in)
		assert.Less(t, se.Pos, len(in), in)
		assert.Equal(t, lowerASCII(in)[:se.Pos], strings.ToLower(in[:se.Pos]), in)
		assert.NotContains(t, err.Error(), "ends unexpectedly", in)
	}

	assert.Equal(t, "2d6 ; 3x d8 İ", lowerASCII("2D6 ; 3X D8 İ"))
}

func TestParseHugeCountFailsOnlyItsEntry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jdice.notation")
	defer teardown()

	list, err := Parse("d6 ; 9223372036854775807d6 ; 10001d4 ; d4")
	require.NoError(t, err)
	require.Len(t, list, 4)

	var out dice.Outcomes
	require.NotPanics(t, func() { out = list.Roll(dice.NewQueueSource(3, 2)) })
	assert.NoError(t, out[0].Err)
	assert.ErrorIs(t, out[1].Err, dice.ErrTooManyDice)
	assert.ErrorIs(t, out[2].Err, dice.ErrTooManyDice)
	assert.NoError(t, out[3].Err)
	assert.Equal(t, 5, out.Total())
}

func TestParseRepeatedEntriesAreIndependent(t *testing.T) {
	list, err := Parse("4x3d8-5")
	require.NoError(t, err)
	require.Len(t, list, 4)

	src := dice.NewSource(11)
	seen := map[string]bool{}
	for round := 0; round < 10; round++ {
		for _, e := range list {
			res, err := e.Roll(src)
			require.NoError(t, err)
			assert.Len(t, res.Values, 3)
			seen[res.String()] = true
		}
	}
	assert.Greater(t, len(seen), 1, "copies of a repeated entry must roll independently")
}

func TestParseSumEvaluation(t *testing.T) {
	list, err := Parse("12d10+5 & 4d6+2")
	require.NoError(t, err)
	require.Len(t, list, 1)

	res, err := list[0].Roll(dice.NewSource(3))
	require.NoError(t, err)

	assert.Len(t, res.Values, 16)
	assert.Equal(t, 7, res.Bonus)
	sum := 0
	for _, v := range res.Values {
		sum += v
	}
	assert.Equal(t, sum+7, res.Total)
}

func TestNotationRoundTrip(t *testing.T) {
	inputs := []string{
		"d6",
		"4d6+3",
		"8d12-15",
		"9d10 & 3d6 & 4d12+17",
		"12d10+5 & 4d6+2 ; d20",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first := MustParse(in)
			again, err := Parse(first.Notation())
			require.NoError(t, err)
			assert.Equal(t, first, again)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("4d4d4") })
}
