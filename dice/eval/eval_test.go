package eval

import (
	"testing"

	"github.com/dekarrin/tunadice/dice/parse"
	"github.com/dekarrin/tunadice/dice/rng"
	"github.com/dekarrin/tunadice/internal/dicerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Eval_arithmetic(t *testing.T) {
	testCases := []struct {
		input  string
		expect int64
		trace  string
	}{
		{"2+3*4", 14, "2 + 3 * 4"},
		{"(2+3)*4", 20, "(2 + 3) * 4"},
		{"2^3^2", 512, "2 ^ 3 ^ 2"},
		{"fact 5", 120, "fact 5"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			e, err := parse.Parse(tc.input)
			require.NoError(t, err)

			v, tr, n, err := Eval(e, rng.Seeded(1))
			require.NoError(t, err)
			assert.Equal(t, tc.expect, v)
			assert.Equal(t, tc.trace, tr)
			assert.Equal(t, int64(0), n)
		})
	}
}

func Test_Eval_divisionTruncatesTowardZero(t *testing.T) {
	e, err := parse.Parse("7 / 2")
	require.NoError(t, err)
	v, _, _, err := Eval(e, rng.Seeded(1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	e2, err := parse.Parse("-7 / 2")
	require.NoError(t, err)
	v2, _, _, err := Eval(e2, rng.Seeded(1))
	require.NoError(t, err)
	assert.Equal(t, int64(-3), v2)
}

func Test_Eval_divisionByZero(t *testing.T) {
	e, err := parse.Parse("1/0")
	require.NoError(t, err)
	_, _, _, err = Eval(e, rng.Seeded(1))
	require.Error(t, err)
	kind, ok := dicerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, dicerr.DivisionByZero, kind)
}

func Test_Eval_negativeExponent(t *testing.T) {
	e, err := parse.Parse("2 ^ (-1)")
	require.NoError(t, err)
	_, _, _, err = Eval(e, rng.Seeded(1))
	require.Error(t, err)
	kind, _ := dicerr.KindOf(err)
	assert.Equal(t, dicerr.NegativeExponent, kind)
}

func Test_Eval_factorialTooLarge(t *testing.T) {
	e, err := parse.Parse("fact 51")
	require.NoError(t, err)
	_, _, _, err = Eval(e, rng.Seeded(1))
	require.Error(t, err)
	kind, _ := dicerr.KindOf(err)
	assert.Equal(t, dicerr.FactorialInputTooLarge, kind)
}

func Test_Eval_simpleDiceSum(t *testing.T) {
	e, err := parse.Parse("3d6")
	require.NoError(t, err)

	src := &rng.Scripted{Draws: []int64{2, 5, 6}}
	v, tr, n, err := Eval(e, src)
	require.NoError(t, err)
	assert.Equal(t, int64(13), v)
	assert.Equal(t, int64(3), n)
	assert.Contains(t, tr, "3d6")
	assert.Contains(t, tr, "**6**")
}

func Test_Eval_keepHighest(t *testing.T) {
	e, err := parse.Parse("4d6kh3")
	require.NoError(t, err)

	src := &rng.Scripted{Draws: []int64{1, 3, 4, 6}}
	v, tr, _, err := Eval(e, src)
	require.NoError(t, err)
	assert.Equal(t, int64(13), v) // 3+4+6, the 1 is dropped
	assert.Contains(t, tr, "~~__**1**__~~")
}

func Test_Eval_rerollOnce(t *testing.T) {
	e, err := parse.Parse("1d6ro<3")
	require.NoError(t, err)

	src := &rng.Scripted{Draws: []int64{2, 5}}
	v, tr, n, err := Eval(e, src)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
	assert.Equal(t, int64(2), n)
	assert.Contains(t, tr, "~~2~~, 5")
}

func Test_Eval_rerollUntil(t *testing.T) {
	e, err := parse.Parse("1d6rr<3")
	require.NoError(t, err)

	src := &rng.Scripted{Draws: []int64{1, 2, 5}}
	v, _, n, err := Eval(e, src)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
	assert.Equal(t, int64(3), n)
}

func Test_Eval_customDieCritical(t *testing.T) {
	e, err := parse.Parse("2d{1,2,3}")
	require.NoError(t, err)

	src := &rng.Scripted{Draws: []int64{3, 1}}
	v, tr, n, err := Eval(e, src)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)
	assert.Equal(t, int64(2), n)
	assert.Contains(t, tr, "**1**")
	assert.Contains(t, tr, "**3**")
}

func Test_Eval_invalidDieBound(t *testing.T) {
	e, err := parse.Parse("3d0")
	require.NoError(t, err)
	_, _, _, err = Eval(e, rng.Seeded(1))
	require.Error(t, err)
	kind, _ := dicerr.KindOf(err)
	assert.Equal(t, dicerr.InvalidDieBound, kind)
}

func Test_Eval_negativeDiceCount(t *testing.T) {
	e, err := parse.Parse("(-1)d6")
	require.NoError(t, err)
	_, _, _, err = Eval(e, rng.Seeded(1))
	require.Error(t, err)
	kind, _ := dicerr.KindOf(err)
	assert.Equal(t, dicerr.NegativeDiceCount, kind)
}

func Test_Eval_rngBudgetExceeded(t *testing.T) {
	e, err := parse.Parse("149d6")
	require.NoError(t, err)
	_, _, _, err = Eval(e, rng.Seeded(1))
	require.NoError(t, err)

	e2, err := parse.Parse("150d6")
	require.NoError(t, err)
	_, _, _, err = Eval(e2, rng.Seeded(1))
	require.Error(t, err)
	kind, _ := dicerr.KindOf(err)
	assert.Equal(t, dicerr.RngBudgetExceeded, kind)
}

func Test_Eval_rngCountMatchesActualDraws(t *testing.T) {
	e, err := parse.Parse("4d6ro<3")
	require.NoError(t, err)

	counting := rng.NewCounting(rng.Seeded(99))
	_, _, n, err := Eval(e, counting)
	require.NoError(t, err)
	assert.Equal(t, counting.N, n)
}

func Test_Eval_keptSumMatchesValue(t *testing.T) {
	e, err := parse.Parse("6d6dl2")
	require.NoError(t, err)

	src := &rng.Scripted{Draws: []int64{1, 2, 3, 4, 5, 6}}
	v, _, _, err := Eval(e, src)
	require.NoError(t, err)
	// lowest 2 (1,2) dropped, remaining 3+4+5+6 = 18
	assert.Equal(t, int64(18), v)
}

func Test_Eval_idFunctionTransparent(t *testing.T) {
	e, err := parse.Parse("id 5")
	require.NoError(t, err)
	_, tr, _, err := Eval(e, rng.Seeded(1))
	require.NoError(t, err)
	assert.Equal(t, "5", tr)
}
