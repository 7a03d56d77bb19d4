// Package eval walks a dice/syntax.Expr tree and produces a value, an
// annotated trace, and a count of random draws performed, per spec.md
// §4.G. Every node-level function returns (value, trace, rngCount, err);
// the running rngCount is checked against MaxRNG at every point two
// sub-evaluations are combined, which is what bounds total evaluator work
// on adversarial input.
package eval

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/tunadice/dice/rng"
	"github.com/dekarrin/tunadice/dice/syntax"
	"github.com/dekarrin/tunadice/internal/dicerr"
)

// MaxRNG is MAX_RNG from spec.md §4.G: the process-wide cap on total random
// draws performed by a single evaluation.
const MaxRNG = 150

// Eval evaluates e against src, returning the result value, its annotated
// trace, and the number of random draws performed.
func Eval(e syntax.Expr, src rng.Source) (int64, string, int64, error) {
	return evalExpr(e, src)
}

func checkBudget(total int64) error {
	if total > MaxRNG {
		return dicerr.Eval(dicerr.RngBudgetExceeded, "rng budget exceeded: %d draws made, limit is %d", total, MaxRNG)
	}
	return nil
}

func evalExpr(e syntax.Expr, src rng.Source) (int64, string, int64, error) {
	v, tr, n, err := evalTerm(e.Term, src)
	if err != nil {
		return 0, "", 0, err
	}
	if e.Op == syntax.ExprNone {
		return v, tr, n, nil
	}

	v2, tr2, n2, err := evalExpr(*e.Next, src)
	if err != nil {
		return 0, "", 0, err
	}
	total := n + n2
	if err := checkBudget(total); err != nil {
		return 0, "", 0, err
	}

	switch e.Op {
	case syntax.ExprAdd:
		return v + v2, tr + " + " + tr2, total, nil
	case syntax.ExprSub:
		return v - v2, tr + " - " + tr2, total, nil
	default:
		return 0, "", 0, dicerr.Eval(dicerr.UnknownFunction, "unreachable expr op %d", e.Op)
	}
}

func evalTerm(t syntax.Term, src rng.Source) (int64, string, int64, error) {
	v, tr, n, err := evalFunc(t.Func, src)
	if err != nil {
		return 0, "", 0, err
	}
	if t.Op == syntax.TermNone {
		return v, tr, n, nil
	}

	v2, tr2, n2, err := evalTerm(*t.Next, src)
	if err != nil {
		return 0, "", 0, err
	}
	total := n + n2
	if err := checkBudget(total); err != nil {
		return 0, "", 0, err
	}

	switch t.Op {
	case syntax.TermMul:
		return v * v2, tr + " * " + tr2, total, nil
	case syntax.TermDiv:
		if v2 == 0 {
			return 0, "", 0, dicerr.Eval(dicerr.DivisionByZero, "division by zero: %s / %s", tr, tr2)
		}
		return v / v2, tr + " / " + tr2, total, nil
	default:
		return 0, "", 0, dicerr.Eval(dicerr.UnknownFunction, "unreachable term op %d", t.Op)
	}
}

func evalFunc(f syntax.Func, src rng.Source) (int64, string, int64, error) {
	v, tr, n, err := evalNegation(f.Operand, src)
	if err != nil {
		return 0, "", 0, err
	}

	switch f.Name {
	case "id":
		return v, tr, n, nil
	case "negate":
		return -v, "negate " + tr, n, nil
	case "abs":
		r := v
		if r < 0 {
			r = -r
		}
		return r, "abs " + tr, n, nil
	case "fact":
		if v > syntax.FactLimit {
			return 0, "", 0, dicerr.Eval(dicerr.FactorialInputTooLarge, "factorial input %d exceeds limit %d", v, syntax.FactLimit)
		}
		return factorial(v), "fact " + tr, n, nil
	default:
		return 0, "", 0, dicerr.Eval(dicerr.UnknownFunction, "unknown function: %s", f.Name)
	}
}

// factorial implements the §4.F table entry directly: 0 for negative input,
// 1 at zero, otherwise the product clamped at FactLimit. The clamp here is
// the registry's defensive floor; the user-visible guard lives in
// evalFunc, which rejects anything over the limit before this is called.
func factorial(x int64) int64 {
	if x < 0 {
		return 0
	}
	if x > syntax.FactLimit {
		x = syntax.FactLimit
	}
	result := int64(1)
	for i := int64(2); i <= x; i++ {
		result *= i
	}
	return result
}

func evalNegation(neg syntax.Negation, src rng.Source) (int64, string, int64, error) {
	v, tr, n, err := evalExpo(neg.Expo, src)
	if err != nil {
		return 0, "", 0, err
	}
	if neg.Negative {
		return -v, "-" + tr, n, nil
	}
	return v, tr, n, nil
}

func evalExpo(x syntax.Expo, src rng.Source) (int64, string, int64, error) {
	v, tr, n, err := evalBase(x.Base, src)
	if err != nil {
		return 0, "", 0, err
	}
	if x.Next == nil {
		return v, tr, n, nil
	}

	ev, etr, en, err := evalExpo(*x.Next, src)
	if err != nil {
		return 0, "", 0, err
	}
	total := n + en
	if err := checkBudget(total); err != nil {
		return 0, "", 0, err
	}
	if ev < 0 {
		return 0, "", 0, dicerr.Eval(dicerr.NegativeExponent, "negative exponent: %s ^ %s", tr, etr)
	}

	return intPow(v, ev), tr + " ^ " + etr, total, nil
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func evalBase(b syntax.Base, src rng.Source) (int64, string, int64, error) {
	if b.IsDice {
		return evalDice(b.Dice, src)
	}
	return evalNumBase(b.Num, src)
}

func evalNumBase(nb syntax.NumBase, src rng.Source) (int64, string, int64, error) {
	if nb.IsParen {
		v, tr, n, err := evalExpr(*nb.Inner, src)
		if err != nil {
			return 0, "", 0, err
		}
		return v, "(" + tr + ")", n, nil
	}
	return nb.Value, strconv.FormatInt(nb.Value, 10), 0, nil
}

// rollState is one die's running result: history has the most recently
// rolled value at index 0, per spec.md §4.G step 3.
type rollState struct {
	history []int64
	kept    bool
}

// rollOnce performs a single draw, bumping total first (the draw itself
// happened whether or not it turns out to bust the budget) and reporting
// RngBudgetExceeded if total now exceeds MaxRNG.
func rollOnce(total *int64, src rng.Source, isCustom bool, bound int64, custom []int64) (int64, error) {
	*total++
	var v int64
	if isCustom {
		v = src.ChooseOne(custom)
	} else {
		v = src.UniformInclusive(1, bound)
	}
	if *total > MaxRNG {
		return 0, dicerr.Eval(dicerr.RngBudgetExceeded, "rng budget exceeded: %d draws made, limit is %d", *total, MaxRNG)
	}
	return v, nil
}

func evalDice(dc syntax.Dice, src rng.Source) (int64, string, int64, error) {
	nVal, _, nRng, err := evalBase(dc.Count, src)
	if err != nil {
		return 0, "", 0, err
	}
	total := nRng
	if err := checkBudget(total); err != nil {
		return 0, "", 0, err
	}
	if nVal < 0 {
		return 0, "", 0, dicerr.Eval(dicerr.NegativeDiceCount, "dice count evaluated to %d, must be non-negative", nVal)
	}
	if nVal >= MaxRNG {
		return 0, "", 0, dicerr.Eval(dicerr.RngBudgetExceeded, "dice count %d meets or exceeds rng budget %d", nVal, MaxRNG)
	}
	n := nVal

	var isCustom bool
	var bound int64
	var custom []int64
	var critLo, critHi int64

	if dc.Die.IsCustom {
		isCustom = true
		custom = dc.Die.Custom
		critLo, critHi = minMax(custom)
	} else {
		m, _, bRng, err := evalNumBase(dc.Die.Bound, src)
		if err != nil {
			return 0, "", 0, err
		}
		total += bRng
		if err := checkBudget(total); err != nil {
			return 0, "", 0, err
		}
		if m < 1 {
			return 0, "", 0, dicerr.Eval(dicerr.InvalidDieBound, "die bound %s evaluated to %d, must be >= 1", dc.Die.Bound.Pretty(), m)
		}
		bound = m
		critLo, critHi = 1, m
	}

	triples := make([]rollState, n)
	for i := int64(0); i < n; i++ {
		v, err := rollOnce(&total, src, isCustom, bound, custom)
		if err != nil {
			return 0, "", 0, err
		}
		triples[i] = rollState{history: []int64{v}, kept: true}
	}

	for op := dc.Ops; op != nil; op = op.Next {
		if err := applyDieOp(op.Op, triples, &total, src, isCustom, bound, custom); err != nil {
			return 0, "", 0, err
		}
	}

	if err := checkBudget(total); err != nil {
		return 0, "", 0, err
	}

	if len(triples) == 0 {
		return 0, "", 0, dicerr.Eval(dicerr.EmptyResultSet, "tried to show empty set of results")
	}

	sort.SliceStable(triples, func(i, j int) bool {
		hi, hj := triples[i].history[0], triples[j].history[0]
		if hi != hj {
			return hi < hj
		}
		return boolToInt(triples[i].kept) < boolToInt(triples[j].kept)
	})

	var sum int64
	tokens := make([]string, 0, len(triples))
	for _, t := range triples {
		if t.kept {
			sum += t.history[0]
		}
		tokens = append(tokens, renderHistory(t.history, t.kept, critLo, critHi))
	}

	trace := dc.Pretty() + " [" + strings.Join(tokens, ", ") + "]"
	return sum, trace, total, nil
}

func applyDieOp(op syntax.DieOpOption, triples []rollState, total *int64, src rng.Source, isCustom bool, bound int64, custom []int64) error {
	switch op.Kind {
	case syntax.OpReroll:
		for i := range triples {
			if !triples[i].kept {
				continue
			}
			for {
				c := syntax.CompareInt64(triples[i].history[0], op.Limit)
				if !op.Cmp.Holds(c) {
					break
				}
				v, err := rollOnce(total, src, isCustom, bound, custom)
				if err != nil {
					return err
				}
				triples[i].history = append([]int64{v}, triples[i].history...)
				if op.RerollOnce {
					break
				}
			}
		}
		return nil

	case syntax.OpKeepDrop:
		switch op.Sel.Kind {
		case syntax.LHWWhere:
			for i := range triples {
				c := syntax.CompareInt64(triples[i].history[0], op.Sel.Val)
				cond := op.Sel.Cmp.Holds(c)
				if op.KD == syntax.Keep {
					triples[i].kept = triples[i].kept && cond
				} else {
					triples[i].kept = triples[i].kept && !cond
				}
			}
			return nil

		case syntax.LHWLow, syntax.LHWHigh:
			keptIdx := make([]int, 0, len(triples))
			for i, t := range triples {
				if t.kept {
					keptIdx = append(keptIdx, i)
				}
			}
			sorted := append([]int(nil), keptIdx...)
			sort.SliceStable(sorted, func(a, b int) bool {
				ha, hb := triples[sorted[a]].history[0], triples[sorted[b]].history[0]
				if op.Sel.Kind == syntax.LHWLow {
					return ha < hb
				}
				return ha > hb
			})

			i := op.Sel.N
			if i < 0 {
				i = 0
			}
			if i > int64(len(sorted)) {
				i = int64(len(sorted))
			}
			selected := sorted[:i]
			rest := sorted[i:]

			if op.KD == syntax.Keep {
				for _, idx := range rest {
					triples[idx].kept = false
				}
			} else {
				for _, idx := range selected {
					triples[idx].kept = false
				}
			}
			return nil
		}
	}
	return nil
}

// renderHistory implements spec.md §4.G's roll token formatting: history
// is emitted oldest to most recent (it is stored most-recent-first), a
// superseded value is struck through, the current head is struck and
// underlined if dropped or shown plain if kept, and any value matching
// either bound of the die's critical pair is bolded inside whatever other
// wrapper applies.
func renderHistory(history []int64, kept bool, critLo, critHi int64) string {
	n := len(history)
	tokens := make([]string, n)
	for i := 0; i < n; i++ {
		idx := n - 1 - i // oldest first
		v := history[idx]
		isHead := idx == 0

		s := strconv.FormatInt(v, 10)
		if v == critLo || v == critHi {
			s = "**" + s + "**"
		}
		switch {
		case !isHead:
			s = "~~" + s + "~~"
		case !kept:
			s = "~~__" + s + "__~~"
		}
		tokens[i] = s
	}
	return strings.Join(tokens, ", ")
}

func minMax(vs []int64) (lo, hi int64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
