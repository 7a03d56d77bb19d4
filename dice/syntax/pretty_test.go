package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func value(n int64) Expr {
	return Expr{Term: Term{Func: Func{Name: "id", Operand: Negation{Expo: Expo{Base: Base{Num: NumBase{Value: n}}}}}}}
}

func Test_Expr_Pretty_arithmetic(t *testing.T) {
	// 2 + 3 * 4
	e := Expr{
		Term: Term{Func: Func{Name: "id", Operand: Negation{Expo: Expo{Base: Base{Num: NumBase{Value: 2}}}}}},
		Op:   ExprAdd,
		Next: &Expr{
			Term: Term{
				Func: Func{Name: "id", Operand: Negation{Expo: Expo{Base: Base{Num: NumBase{Value: 3}}}}},
				Op:   TermMul,
				Next: &Term{Func: Func{Name: "id", Operand: Negation{Expo: Expo{Base: Base{Num: NumBase{Value: 4}}}}}},
			},
		},
	}

	assert.Equal(t, "2 + 3 * 4", e.Pretty())
}

func Test_Expr_Pretty_parens(t *testing.T) {
	inner := value(5)
	e := Expr{Term: Term{Func: Func{Name: "id", Operand: Negation{Expo: Expo{Base: Base{Num: NumBase{IsParen: true, Inner: &inner}}}}}}}
	assert.Equal(t, "(5)", e.Pretty())
}

func Test_Func_Pretty_idOmitted(t *testing.T) {
	e := value(5)
	assert.Equal(t, "5", e.Pretty())
}

func Test_Func_Pretty_namedFunction(t *testing.T) {
	e := Expr{Term: Term{Func: Func{Name: "abs", Operand: Negation{Expo: Expo{Base: Base{Num: NumBase{Value: 5}}}}}}}
	assert.Equal(t, "abs 5", e.Pretty())
}

func Test_Negation_Pretty(t *testing.T) {
	e := Expr{Term: Term{Func: Func{Name: "id", Operand: Negation{Negative: true, Expo: Expo{Base: Base{Num: NumBase{Value: 5}}}}}}}
	assert.Equal(t, "-5", e.Pretty())
}

func Test_Expo_Pretty_rightAssociative(t *testing.T) {
	// 2 ^ 3 ^ 2
	inner := Expo{Base: Base{Num: NumBase{Value: 3}}, Next: &Expo{Base: Base{Num: NumBase{Value: 2}}}}
	e := Expr{Term: Term{Func: Func{Name: "id", Operand: Negation{Expo: Expo{Base: Base{Num: NumBase{Value: 2}}, Next: &inner}}}}}
	assert.Equal(t, "2 ^ 3 ^ 2", e.Pretty())
}

func Test_Dice_Pretty_plain(t *testing.T) {
	dc := Dice{Count: Base{Num: NumBase{Value: 3}}, Die: Die{Bound: NumBase{Value: 6}}}
	assert.Equal(t, "3d6", dc.Pretty())
}

func Test_Dice_Pretty_customDie(t *testing.T) {
	dc := Dice{Count: Base{Num: NumBase{Value: 2}}, Die: Die{IsCustom: true, Custom: []int64{1, 2, 3}}}
	assert.Equal(t, "2d{1,2,3}", dc.Pretty())
}

func Test_Dice_Pretty_keepHighest(t *testing.T) {
	dc := Dice{
		Count: Base{Num: NumBase{Value: 4}},
		Die:   Die{Bound: NumBase{Value: 6}},
		Ops: &DieOpRecur{Op: DieOpOption{
			Kind: OpKeepDrop,
			KD:   Keep,
			Sel:  LowHighWhere{Kind: LHWHigh, N: 3},
		}},
	}
	assert.Equal(t, "4d6kh3", dc.Pretty())
}

func Test_Dice_Pretty_rerollOnce(t *testing.T) {
	dc := Dice{
		Count: Base{Num: NumBase{Value: 4}},
		Die:   Die{Bound: NumBase{Value: 6}},
		Ops: &DieOpRecur{Op: DieOpOption{
			Kind:       OpReroll,
			RerollOnce: true,
			Cmp:        LT,
			Limit:      2,
		}},
	}
	assert.Equal(t, "4d6ro<2", dc.Pretty())
}

func Test_Dice_Pretty_foldedCount(t *testing.T) {
	// 2d6d4: outer dice's count is the inner dice expression
	inner := Dice{Count: Base{Num: NumBase{Value: 2}}, Die: Die{Bound: NumBase{Value: 6}}}
	outer := Dice{Count: Base{IsDice: true, Dice: inner}, Die: Die{Bound: NumBase{Value: 4}}}
	assert.Equal(t, "2d6d4", outer.Pretty())
}

func Test_Ordering_Symbol(t *testing.T) {
	assert.Equal(t, "<", LT.Symbol())
	assert.Equal(t, "=", EQ.Symbol())
	assert.Equal(t, ">", GT.Symbol())
}

func Test_Ordering_Holds(t *testing.T) {
	assert.True(t, LT.Holds(-1))
	assert.False(t, LT.Holds(0))
	assert.True(t, EQ.Holds(0))
	assert.True(t, GT.Holds(1))
}

func Test_FunctionNames_order(t *testing.T) {
	assert.Equal(t, []string{"abs", "id", "fact", "negate"}, FunctionNames())
}
