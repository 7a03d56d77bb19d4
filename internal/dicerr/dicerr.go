// Package dicerr defines the typed errors produced by parsing and evaluating
// dice expressions. Every error returned by dice/parse and dice/eval can be
// type-asserted back to *Error to recover its Kind, so a caller can react
// programmatically instead of string-matching Error().
package dicerr

import "fmt"

// Kind identifies the category of a dice expression error. It is exported so
// external collaborators (the chat-bot glue, the HTTP façade, the REPL) can
// switch on it without parsing Error() text.
type Kind int

const (
	// ParseFailure indicates the input could not be parsed. Position and
	// Production will be set.
	ParseFailure Kind = iota

	// RngBudgetExceeded indicates that performing (or attempting) a random
	// draw would have pushed the cumulative draw count for this evaluation
	// past MAX_RNG.
	RngBudgetExceeded

	// DivisionByZero indicates a Term divided by a zero-valued operand.
	DivisionByZero

	// NegativeExponent indicates an Expo node whose exponent evaluated to a
	// negative number.
	NegativeExponent

	// InvalidDieBound indicates a Die(b) node whose bound b evaluated to
	// less than 1.
	InvalidDieBound

	// NegativeDiceCount indicates a Dice node whose count evaluated to a
	// negative number.
	NegativeDiceCount

	// FactorialInputTooLarge indicates a fact application whose argument
	// exceeded FACT_LIMIT.
	FactorialInputTooLarge

	// UnknownFunction indicates a Func node naming something outside
	// {id, abs, negate, fact}. The parser guards against this; it is only
	// reachable by direct AST construction.
	UnknownFunction

	// EmptyResultSet indicates a Dice evaluation that emerged from §4.G
	// step 6 with nothing to sort. dice/eval returns it when the dice count
	// evaluates to 0 (for example "0d6").
	EmptyResultSet
)

func (k Kind) String() string {
	switch k {
	case ParseFailure:
		return "ParseFailure"
	case RngBudgetExceeded:
		return "RngBudgetExceeded"
	case DivisionByZero:
		return "DivisionByZero"
	case NegativeExponent:
		return "NegativeExponent"
	case InvalidDieBound:
		return "InvalidDieBound"
	case NegativeDiceCount:
		return "NegativeDiceCount"
	case FactorialInputTooLarge:
		return "FactorialInputTooLarge"
	case UnknownFunction:
		return "UnknownFunction"
	case EmptyResultSet:
		return "EmptyResultSet"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the concrete error type returned by dice/parse and dice/eval.
// Callers that need to branch on the failure category should type-assert to
// *Error and switch on Kind, rather than matching against Error()'s text.
type Error struct {
	Kind Kind

	// msg is the technical message returned by Error().
	msg string

	// Production is the grammar production that failed to parse. Only set
	// when Kind == ParseFailure.
	Production string

	// Position is the rune offset into the source at which parsing gave up.
	// Only set when Kind == ParseFailure.
	Position int

	wrap error
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap gives the error that Error wraps, if any.
func (e *Error) Unwrap() error {
	return e.wrap
}

// Parse returns a new *Error of Kind ParseFailure identifying the production
// that could not be completed and the rune offset at which it gave up.
func Parse(production string, pos int) error {
	return &Error{
		Kind:       ParseFailure,
		Production: production,
		Position:   pos,
		msg:        fmt.Sprintf("%s: could not parse starting at position %d", production, pos),
	}
}

// Eval returns a new *Error of the given Kind with a message built from
// format and args, in the style of fmt.Errorf.
func Eval(kind Kind, format string, args ...interface{}) error {
	return &Error{
		Kind: kind,
		msg:  fmt.Sprintf(format, args...),
	}
}

// KindOf returns the Kind of err and true if err is a dicerr *Error, or 0
// and false otherwise. It checks err itself only; wrapped errors are not
// unwrapped.
func KindOf(err error) (Kind, bool) {
	de, ok := err.(*Error)
	if !ok {
		return 0, false
	}
	return de.Kind, true
}
