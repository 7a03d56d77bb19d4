package parse

import (
	"testing"

	"github.com/dekarrin/tunadice/dice/syntax"
	"github.com/dekarrin/tunadice/internal/dicerr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_roundTrip(t *testing.T) {
	inputs := []string{
		"2 + 3 * 4",
		"(2 + 3) * 4",
		"2 ^ 3 ^ 2",
		"fact 5",
		"abs -5",
		"negate 5",
		"3d6",
		"2d{1,2,3}",
		"4d6kh3",
		"4d6dl1",
		"4d6ro<2",
		"4d6rr>5",
		"2d6d4",
		"4d6kw>3",
		"-3",
		"-(2 + 3)",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			e, err := Parse(in)
			require.NoError(t, err)
			assert.Equal(t, in, e.Pretty())
		})
	}
}

// Test_Parse_roundTripStructural re-parses each Pretty'd expression and
// diffs the resulting AST against the original structurally, rather than
// just comparing the printed form (which Test_Parse_roundTrip already
// covers). A lossy pretty-printer could still pass the string-only check
// if the reparse happened to print the same way for the wrong tree.
func Test_Parse_roundTripStructural(t *testing.T) {
	inputs := []string{
		"2 + 3 * 4",
		"(2 + 3) * 4",
		"3d6",
		"4d6kh3",
		"2d6d4",
		"4d6ro<2",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			e1, err := Parse(in)
			require.NoError(t, err)

			e2, err := Parse(e1.Pretty())
			require.NoError(t, err)

			if diff := cmp.Diff(e1, e2); diff != "" {
				t.Errorf("reparse produced a different AST (-original +reparsed):\n%s", diff)
			}
		})
	}
}

func Test_Parse_bareNumber(t *testing.T) {
	e, err := Parse("3")
	require.NoError(t, err)
	assert.False(t, e.Term.Func.Operand.Expo.Base.IsDice)
	assert.Equal(t, int64(3), e.Term.Func.Operand.Expo.Base.Num.Value)
}

func Test_Parse_diceBeforeNBase(t *testing.T) {
	e, err := Parse("3d6")
	require.NoError(t, err)
	assert.True(t, e.Term.Func.Operand.Expo.Base.IsDice)
}

func Test_Parse_foldedDiceCount(t *testing.T) {
	e, err := Parse("2d6d4")
	require.NoError(t, err)

	outer := e.Term.Func.Operand.Expo.Base.Dice
	assert.Equal(t, int64(4), outer.Die.Bound.Value)
	require.True(t, outer.Count.IsDice)
	inner := outer.Count.Dice
	assert.Equal(t, int64(6), inner.Die.Bound.Value)
	assert.Equal(t, int64(2), inner.Count.Num.Value)
}

func Test_Parse_functionRequiresWhitespace(t *testing.T) {
	_, err := Parse("absd6")
	assert.Error(t, err)
}

func Test_Parse_idIsImplicit(t *testing.T) {
	e, err := Parse("5")
	require.NoError(t, err)
	assert.Equal(t, "id", e.Term.Func.Name)
}

func Test_Parse_emptyCustomDieFails(t *testing.T) {
	_, err := Parse("2d{}")
	assert.Error(t, err)
}

func Test_Parse_unclosedParenFails(t *testing.T) {
	_, err := Parse("(2 + 3")
	assert.Error(t, err)
}

func Test_Parse_trailingInputFails(t *testing.T) {
	_, err := Parse("3d6 garbage")
	require.Error(t, err)
	de, ok := err.(*dicerr.Error)
	require.True(t, ok)
	assert.Equal(t, dicerr.ParseFailure, de.Kind)
}

func Test_Parse_integerOverflowFails(t *testing.T) {
	_, err := Parse("99999999999999999999")
	assert.Error(t, err)
}

func Test_Parse_divisionSymbolPreserved(t *testing.T) {
	e, err := Parse("10 / 2")
	require.NoError(t, err)
	assert.Equal(t, syntax.TermDiv, e.Term.Op)
}

func Test_Parse_whereSelector(t *testing.T) {
	e, err := Parse("4d6kw>3")
	require.NoError(t, err)
	dc := e.Term.Func.Operand.Expo.Base.Dice
	require.NotNil(t, dc.Ops)
	assert.Equal(t, syntax.LHWWhere, dc.Ops.Op.Sel.Kind)
	assert.Equal(t, syntax.GT, dc.Ops.Op.Sel.Cmp)
	assert.Equal(t, int64(3), dc.Ops.Op.Sel.Val)
}
