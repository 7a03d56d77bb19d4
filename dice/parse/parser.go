// Package parse implements the dice expression grammar's recursive-descent,
// backtracking parser (spec.md §4.C). Every production is a function of the
// shape (value, ok, err): ok is false with err nil when the alternative
// simply didn't match and the caller should try another (after restoring
// the cursor with lex.Cursor.Reset); err is non-nil when the input
// committed to an alternative — a prefix that is unambiguous in this
// grammar, such as having already consumed '(' or "ro" — and then failed to
// complete it, which is always a genuine syntax error rather than a case
// for backtracking further up the chain.
package parse

import (
	"github.com/dekarrin/tunadice/dice/lex"
	"github.com/dekarrin/tunadice/dice/syntax"
	"github.com/dekarrin/tunadice/internal/dicerr"
)

// Parse parses s as a complete dice expression. No partial AST is ever
// returned alongside an error, matching spec.md §4.C's failure semantics.
func Parse(s string) (syntax.Expr, error) {
	c := lex.New(s)
	c.SkipSpace()

	e, ok, err := parseExpr(c)
	if err != nil {
		return syntax.Expr{}, err
	}
	if !ok {
		return syntax.Expr{}, dicerr.Parse("expr", c.Pos())
	}

	c.SkipSpace()
	if !c.AtEnd() {
		return syntax.Expr{}, dicerr.Parse("trailing-input", c.Pos())
	}
	return e, nil
}

// expr = term (ws "+" ws expr | ws "-" ws expr)?
func parseExpr(c *lex.Cursor) (syntax.Expr, bool, error) {
	c.SkipSpace()
	mark := c.Mark()

	t, ok, err := parseTerm(c)
	if err != nil {
		return syntax.Expr{}, false, err
	}
	if !ok {
		c.Reset(mark)
		return syntax.Expr{}, false, nil
	}

	opMark := c.Mark()
	c.SkipSpace()
	if c.Char('+') {
		c.SkipSpace()
		next, ok2, err2 := parseExpr(c)
		if err2 != nil {
			return syntax.Expr{}, false, err2
		}
		if !ok2 {
			return syntax.Expr{}, false, dicerr.Parse("expr-add-rhs", c.Pos())
		}
		return syntax.Expr{Term: t, Op: syntax.ExprAdd, Next: &next}, true, nil
	}
	c.Reset(opMark)

	if c.Char('-') {
		c.SkipSpace()
		next, ok2, err2 := parseExpr(c)
		if err2 != nil {
			return syntax.Expr{}, false, err2
		}
		if !ok2 {
			return syntax.Expr{}, false, dicerr.Parse("expr-sub-rhs", c.Pos())
		}
		return syntax.Expr{Term: t, Op: syntax.ExprSub, Next: &next}, true, nil
	}
	c.Reset(opMark)

	return syntax.Expr{Term: t, Op: syntax.ExprNone}, true, nil
}

// term = func (ws "*" ws term | ws "/" ws term)?
func parseTerm(c *lex.Cursor) (syntax.Term, bool, error) {
	c.SkipSpace()
	mark := c.Mark()

	f, ok, err := parseFunc(c)
	if err != nil {
		return syntax.Term{}, false, err
	}
	if !ok {
		c.Reset(mark)
		return syntax.Term{}, false, nil
	}

	opMark := c.Mark()
	c.SkipSpace()
	if c.Char('*') {
		c.SkipSpace()
		next, ok2, err2 := parseTerm(c)
		if err2 != nil {
			return syntax.Term{}, false, err2
		}
		if !ok2 {
			return syntax.Term{}, false, dicerr.Parse("term-mul-rhs", c.Pos())
		}
		return syntax.Term{Func: f, Op: syntax.TermMul, Next: &next}, true, nil
	}
	c.Reset(opMark)

	if c.Char('/') {
		c.SkipSpace()
		next, ok2, err2 := parseTerm(c)
		if err2 != nil {
			return syntax.Term{}, false, err2
		}
		if !ok2 {
			return syntax.Term{}, false, dicerr.Parse("term-div-rhs", c.Pos())
		}
		return syntax.Term{Func: f, Op: syntax.TermDiv, Next: &next}, true, nil
	}
	c.Reset(opMark)

	return syntax.Term{Func: f, Op: syntax.TermNone}, true, nil
}

func isFuncName(word string) bool {
	switch word {
	case "id", "abs", "negate", "fact":
		return true
	default:
		return false
	}
}

// func = (word ws1)? negation ; word must be in {id,abs,negate,fact}
func parseFunc(c *lex.Cursor) (syntax.Func, bool, error) {
	c.SkipSpace()
	mark := c.Mark()

	name := "id"
	if word, ok := c.Word(); ok {
		if isFuncName(word) && c.SkipSpace1() {
			name = word
		} else {
			c.Reset(mark)
		}
	}

	neg, ok, err := parseNegation(c)
	if err != nil {
		return syntax.Func{}, false, err
	}
	if !ok {
		c.Reset(mark)
		return syntax.Func{}, false, nil
	}

	return syntax.Func{Name: name, Operand: neg}, true, nil
}

// negation = "-" ws expo | expo
func parseNegation(c *lex.Cursor) (syntax.Negation, bool, error) {
	mark := c.Mark()

	if c.Char('-') {
		c.SkipSpace()
		ex, ok, err := parseExpo(c)
		if err != nil {
			return syntax.Negation{}, false, err
		}
		if !ok {
			return syntax.Negation{}, false, dicerr.Parse("negation-operand", c.Pos())
		}
		return syntax.Negation{Negative: true, Expo: ex}, true, nil
	}

	ex, ok, err := parseExpo(c)
	if err != nil {
		return syntax.Negation{}, false, err
	}
	if !ok {
		c.Reset(mark)
		return syntax.Negation{}, false, nil
	}
	return syntax.Negation{Expo: ex}, true, nil
}

// expo = base (ws "^" ws expo)?
func parseExpo(c *lex.Cursor) (syntax.Expo, bool, error) {
	mark := c.Mark()

	b, ok, err := parseBase(c)
	if err != nil {
		return syntax.Expo{}, false, err
	}
	if !ok {
		c.Reset(mark)
		return syntax.Expo{}, false, nil
	}

	opMark := c.Mark()
	c.SkipSpace()
	if c.Char('^') {
		c.SkipSpace()
		next, ok2, err2 := parseExpo(c)
		if err2 != nil {
			return syntax.Expo{}, false, err2
		}
		if !ok2 {
			return syntax.Expo{}, false, dicerr.Parse("expo-rhs", c.Pos())
		}
		return syntax.Expo{Base: b, Next: &next}, true, nil
	}
	c.Reset(opMark)

	return syntax.Expo{Base: b}, true, nil
}

// base = dice | nbase
//
// dice is always attempted first; if it fails the cursor is restored and
// nbase is tried. This is what makes "3d6" a Dice and a bare "3" a plain
// NumBase (spec.md §4.C disambiguation rules).
func parseBase(c *lex.Cursor) (syntax.Base, bool, error) {
	mark := c.Mark()

	d, ok, err := parseDice(c)
	if err != nil {
		return syntax.Base{}, false, err
	}
	if ok {
		return syntax.Base{IsDice: true, Dice: d}, true, nil
	}
	c.Reset(mark)

	nb, ok2, err2 := parseNBase(c)
	if err2 != nil {
		return syntax.Base{}, false, err2
	}
	if !ok2 {
		c.Reset(mark)
		return syntax.Base{}, false, nil
	}
	return syntax.Base{Num: nb}, true, nil
}

// nbase = ws "(" ws expr ws ")" | pos_integer
func parseNBase(c *lex.Cursor) (syntax.NumBase, bool, error) {
	mark := c.Mark()
	c.SkipSpace()

	if c.Char('(') {
		c.SkipSpace()
		e, ok, err := parseExpr(c)
		if err != nil {
			return syntax.NumBase{}, false, err
		}
		if !ok {
			return syntax.NumBase{}, false, dicerr.Parse("nbase-paren-expr", c.Pos())
		}
		c.SkipSpace()
		if !c.Char(')') {
			return syntax.NumBase{}, false, dicerr.Parse("nbase-paren-close", c.Pos())
		}
		return syntax.NumBase{IsParen: true, Inner: &e}, true, nil
	}
	c.Reset(mark)
	c.SkipSpace()

	v, ok, overflow := c.PosInteger()
	if overflow {
		return syntax.NumBase{}, false, dicerr.Parse("nbase-integer-overflow", c.Pos())
	}
	if !ok {
		c.Reset(mark)
		return syntax.NumBase{}, false, nil
	}
	return syntax.NumBase{Value: v}, true, nil
}

// dice = nbase? die_tail+ | die_tail+ ; count defaults to 1 when absent.
//
// Multiple consecutive dice are folded left: the result of one die_tail
// becomes the count base of the next, so "2d6d4" parses as
// Dice(Dice(2, d6), d4) per spec.md §4.C.
func parseDice(c *lex.Cursor) (syntax.Dice, bool, error) {
	mark := c.Mark()

	var count syntax.Base
	if nb, ok, err := parseNBase(c); err != nil {
		return syntax.Dice{}, false, err
	} else if ok {
		count = syntax.Base{Num: nb}
	} else {
		count = syntax.Base{Num: syntax.NumBase{Value: 1}}
	}

	die, ops, ok, err := parseDieTail(c)
	if err != nil {
		return syntax.Dice{}, false, err
	}
	if !ok {
		c.Reset(mark)
		return syntax.Dice{}, false, nil
	}

	result := syntax.Dice{Count: count, Die: die, Ops: ops}

	for {
		foldMark := c.Mark()
		nextDie, nextOps, ok2, err2 := parseDieTail(c)
		if err2 != nil {
			return syntax.Dice{}, false, err2
		}
		if !ok2 {
			c.Reset(foldMark)
			break
		}
		result = syntax.Dice{
			Count: syntax.Base{IsDice: true, Dice: result},
			Die:   nextDie,
			Ops:   nextOps,
		}
	}

	return result, true, nil
}

// die_tail = die dieops?
func parseDieTail(c *lex.Cursor) (syntax.Die, *syntax.DieOpRecur, bool, error) {
	mark := c.Mark()

	d, ok, err := parseDie(c)
	if err != nil {
		return syntax.Die{}, nil, false, err
	}
	if !ok {
		c.Reset(mark)
		return syntax.Die{}, nil, false, nil
	}

	ops, err := parseDieOpsChain(c)
	if err != nil {
		return syntax.Die{}, nil, false, err
	}

	return d, ops, true, nil
}

// die = "d" ( nbase | "{" ws integer (ws "," ws integer)* ws "}" )
func parseDie(c *lex.Cursor) (syntax.Die, bool, error) {
	mark := c.Mark()
	c.SkipSpace()

	if !c.Char('d') {
		c.Reset(mark)
		return syntax.Die{}, false, nil
	}

	boundMark := c.Mark()
	if nb, ok, err := parseNBase(c); err != nil {
		return syntax.Die{}, false, err
	} else if ok {
		return syntax.Die{Bound: nb}, true, nil
	}
	c.Reset(boundMark)

	if c.Char('{') {
		c.SkipSpace()

		var vals []int64
		v, ok, overflow := c.Integer()
		if overflow {
			return syntax.Die{}, false, dicerr.Parse("die-custom-overflow", c.Pos())
		}
		if !ok {
			return syntax.Die{}, false, dicerr.Parse("die-custom-empty", c.Pos())
		}
		vals = append(vals, v)

		for {
			sepMark := c.Mark()
			c.SkipSpace()
			if !c.Char(',') {
				c.Reset(sepMark)
				break
			}
			c.SkipSpace()
			v2, ok2, overflow2 := c.Integer()
			if overflow2 {
				return syntax.Die{}, false, dicerr.Parse("die-custom-overflow", c.Pos())
			}
			if !ok2 {
				return syntax.Die{}, false, dicerr.Parse("die-custom-list", c.Pos())
			}
			vals = append(vals, v2)
		}

		c.SkipSpace()
		if !c.Char('}') {
			return syntax.Die{}, false, dicerr.Parse("die-custom-close", c.Pos())
		}
		return syntax.Die{IsCustom: true, Custom: vals}, true, nil
	}

	// 'd' matched but neither a bound nor a custom list followed: this is
	// not a die at all (it may be the start of a later "d"-prefixed
	// drop-modifier token consumed by a different production).
	c.Reset(mark)
	return syntax.Die{}, false, nil
}

// dieops = dieop dieops?
func parseDieOpsChain(c *lex.Cursor) (*syntax.DieOpRecur, error) {
	var head, tail *syntax.DieOpRecur

	for {
		op, ok, err := parseDieOp(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		node := &syntax.DieOpRecur{Op: op}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node
	}

	return head, nil
}

// dieop = "ro" ord integer | "rr" ord integer | "k" lhw | "d" lhw
func parseDieOp(c *lex.Cursor) (syntax.DieOpOption, bool, error) {
	mark := c.Mark()

	if c.Literal("ro") {
		ord, ok, err := parseOrd(c)
		if err != nil {
			return syntax.DieOpOption{}, false, err
		}
		if !ok {
			return syntax.DieOpOption{}, false, dicerr.Parse("dieop-reroll-once-ord", c.Pos())
		}
		limit, ok2, overflow := c.Integer()
		if overflow {
			return syntax.DieOpOption{}, false, dicerr.Parse("dieop-reroll-once-limit-overflow", c.Pos())
		}
		if !ok2 {
			return syntax.DieOpOption{}, false, dicerr.Parse("dieop-reroll-once-limit", c.Pos())
		}
		return syntax.DieOpOption{Kind: syntax.OpReroll, RerollOnce: true, Cmp: ord, Limit: limit}, true, nil
	}
	c.Reset(mark)

	if c.Literal("rr") {
		ord, ok, err := parseOrd(c)
		if err != nil {
			return syntax.DieOpOption{}, false, err
		}
		if !ok {
			return syntax.DieOpOption{}, false, dicerr.Parse("dieop-reroll-until-ord", c.Pos())
		}
		limit, ok2, overflow := c.Integer()
		if overflow {
			return syntax.DieOpOption{}, false, dicerr.Parse("dieop-reroll-until-limit-overflow", c.Pos())
		}
		if !ok2 {
			return syntax.DieOpOption{}, false, dicerr.Parse("dieop-reroll-until-limit", c.Pos())
		}
		return syntax.DieOpOption{Kind: syntax.OpReroll, RerollOnce: false, Cmp: ord, Limit: limit}, true, nil
	}
	c.Reset(mark)

	if c.Char('k') {
		lhw, ok, err := parseLHW(c)
		if err != nil {
			return syntax.DieOpOption{}, false, err
		}
		if !ok {
			return syntax.DieOpOption{}, false, dicerr.Parse("dieop-keep-lhw", c.Pos())
		}
		return syntax.DieOpOption{Kind: syntax.OpKeepDrop, KD: syntax.Keep, Sel: lhw}, true, nil
	}

	if c.Char('d') {
		lhw, ok, err := parseLHW(c)
		if err != nil {
			return syntax.DieOpOption{}, false, err
		}
		if !ok {
			// a 'd' not followed by h/l/w is not a drop modifier; it may be
			// the next die of a folded chain ("2d6d4"), so leave it for
			// parseDice.
			c.Reset(mark)
			return syntax.DieOpOption{}, false, nil
		}
		return syntax.DieOpOption{Kind: syntax.OpKeepDrop, KD: syntax.Drop, Sel: lhw}, true, nil
	}

	return syntax.DieOpOption{}, false, nil
}

// lhw = "h" integer | "l" integer | "w" ord integer
func parseLHW(c *lex.Cursor) (syntax.LowHighWhere, bool, error) {
	if c.Char('h') {
		v, ok, overflow := c.Integer()
		if overflow {
			return syntax.LowHighWhere{}, false, dicerr.Parse("lhw-high-overflow", c.Pos())
		}
		if !ok {
			return syntax.LowHighWhere{}, false, dicerr.Parse("lhw-high", c.Pos())
		}
		return syntax.LowHighWhere{Kind: syntax.LHWHigh, N: v}, true, nil
	}

	if c.Char('l') {
		v, ok, overflow := c.Integer()
		if overflow {
			return syntax.LowHighWhere{}, false, dicerr.Parse("lhw-low-overflow", c.Pos())
		}
		if !ok {
			return syntax.LowHighWhere{}, false, dicerr.Parse("lhw-low", c.Pos())
		}
		return syntax.LowHighWhere{Kind: syntax.LHWLow, N: v}, true, nil
	}

	if c.Char('w') {
		ord, ok, err := parseOrd(c)
		if err != nil {
			return syntax.LowHighWhere{}, false, err
		}
		if !ok {
			return syntax.LowHighWhere{}, false, dicerr.Parse("lhw-where-ord", c.Pos())
		}
		v, ok2, overflow := c.Integer()
		if overflow {
			return syntax.LowHighWhere{}, false, dicerr.Parse("lhw-where-overflow", c.Pos())
		}
		if !ok2 {
			return syntax.LowHighWhere{}, false, dicerr.Parse("lhw-where-value", c.Pos())
		}
		return syntax.LowHighWhere{Kind: syntax.LHWWhere, Cmp: ord, Val: v}, true, nil
	}

	return syntax.LowHighWhere{}, false, nil
}

// ord = "<" | "=" | ">"
func parseOrd(c *lex.Cursor) (syntax.Ordering, bool, error) {
	if c.Char('<') {
		return syntax.LT, true, nil
	}
	if c.Char('=') {
		return syntax.EQ, true, nil
	}
	if c.Char('>') {
		return syntax.GT, true, nil
	}
	return 0, false, nil
}
