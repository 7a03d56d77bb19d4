// Package tunadice is the dice expression language library: parse a
// tabletop-style dice notation string, evaluate it against a seedable
// random source, and get back a value, an annotated roll trace, and a
// count of random draws performed. Everything that consumes this library
// — a chat bot, a REPL, an HTTP façade — is an external collaborator; this
// package has no knowledge of any of them.
package tunadice

import (
	"github.com/dekarrin/tunadice/dice/eval"
	"github.com/dekarrin/tunadice/dice/parse"
	"github.com/dekarrin/tunadice/dice/rng"
	"github.com/dekarrin/tunadice/dice/syntax"
)

// MaxRNG is the process-wide cap on random draws a single Eval call may
// perform. A caller surfacing this to a user (a help message, an API
// schema) should use this constant rather than repeating the number.
const MaxRNG = eval.MaxRNG

// FactLimit is the largest input the fact() function accepts before Eval
// returns a FactorialInputTooLarge error.
const FactLimit = syntax.FactLimit

// Expr is a parsed dice expression, ready to be evaluated any number of
// times against different random sources or printed back to source form.
type Expr = syntax.Expr

// Source is the random-draw contract Eval requires of its rng argument.
type Source = rng.Source

// Seeded returns a Source backed by a deterministic seed, suitable for
// reproducible tests and for "reroll this exact set of dice" workflows.
func Seeded(seed int64) Source {
	return rng.Seeded(seed)
}

// Parse parses s as a dice expression. On failure the returned error is a
// *github.com/dekarrin/tunadice/internal/dicerr.Error of kind ParseFailure.
func Parse(s string) (Expr, error) {
	return parse.Parse(s)
}

// Eval evaluates expr against src, returning the result value, its
// annotated trace, and the number of random draws performed. On failure
// the returned error is a *dicerr.Error identifying the evaluation error
// kind.
func Eval(expr Expr, src Source) (value int64, trace string, rngCount int64, err error) {
	return eval.Eval(expr, src)
}

// Pretty renders expr as dice expression source text. Parsing the result
// again always yields an expression that prints identically (the
// round-trip law; spec.md §8 property 1).
func Pretty(expr Expr) string {
	return expr.Pretty()
}

// SupportedFunctions returns the registered unary function names in fixed
// registry order: "abs", "id", "fact", "negate".
func SupportedFunctions() []string {
	return syntax.FunctionNames()
}

// Roll is a convenience wrapper combining Parse and Eval for the common
// case of a caller that only has source text and a random source, not an
// already-parsed Expr. It exists for the same reason tqw.LoadResourceBundle
// combines "read the file" and "parse the file" into one call for its
// callers: most collaborators don't need the two steps separated.
func Roll(s string, src Source) (value int64, trace string, rngCount int64, err error) {
	expr, err := Parse(s)
	if err != nil {
		return 0, "", 0, err
	}
	return Eval(expr, src)
}

// EvalBestOf evaluates expr n times against src and returns the highest
// resulting value along with its trace and the total rng draws spent
// across all n attempts. This is the common "roll twice, take the better
// result" tabletop idiom (advantage, best-of-3 damage rolls) expressed
// without needing a second expression syntax; it is not part of the
// grammar itself, only a convenience built on top of repeated Eval calls.
func EvalBestOf(expr Expr, src Source, n int) (value int64, trace string, rngCount int64, err error) {
	return evalRepeated(expr, src, n, func(a, b int64) bool { return b > a })
}

// EvalWorstOf is EvalBestOf's mirror: the lowest of n evaluations.
func EvalWorstOf(expr Expr, src Source, n int) (value int64, trace string, rngCount int64, err error) {
	return evalRepeated(expr, src, n, func(a, b int64) bool { return b < a })
}

func evalRepeated(expr Expr, src Source, n int, better func(current, candidate int64) bool) (int64, string, int64, error) {
	if n < 1 {
		n = 1
	}

	var bestVal int64
	var bestTrace string
	var total int64

	for i := 0; i < n; i++ {
		v, tr, rolls, err := Eval(expr, src)
		if err != nil {
			return 0, "", 0, err
		}
		total += rolls
		if i == 0 || better(bestVal, v) {
			bestVal, bestTrace = v, tr
		}
	}

	return bestVal, bestTrace, total, nil
}
