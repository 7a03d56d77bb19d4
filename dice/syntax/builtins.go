package syntax

// FactLimit is FACT_LIMIT from spec.md §4.F: the largest input fact() will
// accept at the evaluator level. Exposed as syntax.FactLimit because both
// dice/eval (the user-visible guard) and the builtin implementation itself
// (the defensive floor) need it.
const FactLimit = 50

// FuncDef describes one entry in the function registry: enough to validate
// a parsed Func node without needing the implementation itself.
type FuncDef struct {
	// Name is the identifier written in source, e.g. "abs".
	Name string
}

// BuiltInFunctions has one entry per function name the parser and evaluator
// recognize. It does not contain implementations (those live in dice/eval,
// next to the evaluator that has to apply FactLimit). Neither dice/parse
// nor SupportedFunctions reads this map: the parser validates a function
// word against its own fixed list, and SupportedFunctions returns
// FunctionNames.
var BuiltInFunctions = map[string]FuncDef{
	"id":     {Name: "id"},
	"abs":    {Name: "abs"},
	"negate": {Name: "negate"},
	"fact":   {Name: "fact"},
}

// FunctionNames returns the registered function names in a fixed, stable
// order: "abs", "id", "fact", "negate". This is the order spec.md §6
// requires supported_functions() to return.
func FunctionNames() []string {
	return []string{"abs", "id", "fact", "negate"}
}
