package syntax

import (
	"strconv"
	"strings"
)

// Pretty renders e as tunadice source text. Feeding the result back through
// dice/parse.Parse must yield an AST that renders identically (spec.md §8
// property 1, the round-trip law); Pretty is the one function both the
// evaluator (to annotate sub-expressions inside a trace) and any external
// caller wanting to echo the parsed form rely on.
func (e Expr) Pretty() string {
	var sb strings.Builder
	e.writeTo(&sb)
	return sb.String()
}

// Pretty renders just this Dice node, the form dice/eval uses as the head
// of a roll trace (spec.md §4.G step 8).
func (dc Dice) Pretty() string {
	var sb strings.Builder
	dc.writeTo(&sb)
	return sb.String()
}

// Pretty renders just this NumBase, used by dice/eval to name the offending
// bound expression in an InvalidDieBound error.
func (nb NumBase) Pretty() string {
	var sb strings.Builder
	nb.writeTo(&sb)
	return sb.String()
}

func (e Expr) writeTo(sb *strings.Builder) {
	e.Term.writeTo(sb)
	switch e.Op {
	case ExprAdd:
		sb.WriteString(" + ")
		e.Next.writeTo(sb)
	case ExprSub:
		sb.WriteString(" - ")
		e.Next.writeTo(sb)
	case ExprNone:
		// nothing more to write
	}
}

func (t Term) writeTo(sb *strings.Builder) {
	t.Func.writeTo(sb)
	switch t.Op {
	case TermMul:
		sb.WriteString(" * ")
		t.Next.writeTo(sb)
	case TermDiv:
		sb.WriteString(" / ")
		t.Next.writeTo(sb)
	case TermNone:
	}
}

func (f Func) writeTo(sb *strings.Builder) {
	if f.Name == "id" {
		f.Operand.writeTo(sb)
		return
	}
	sb.WriteString(f.Name)
	sb.WriteString(" ")
	f.Operand.writeTo(sb)
}

func (n Negation) writeTo(sb *strings.Builder) {
	if n.Negative {
		sb.WriteString("-")
	}
	n.Expo.writeTo(sb)
}

func (x Expo) writeTo(sb *strings.Builder) {
	x.Base.writeTo(sb)
	if x.Next != nil {
		sb.WriteString(" ^ ")
		x.Next.writeTo(sb)
	}
}

func (b Base) writeTo(sb *strings.Builder) {
	if b.IsDice {
		b.Dice.writeTo(sb)
		return
	}
	b.Num.writeTo(sb)
}

func (nb NumBase) writeTo(sb *strings.Builder) {
	if nb.IsParen {
		sb.WriteString("(")
		nb.Inner.writeTo(sb)
		sb.WriteString(")")
		return
	}
	sb.WriteString(strconv.FormatInt(nb.Value, 10))
}

func (d Die) writeTo(sb *strings.Builder) {
	sb.WriteString("d")
	if d.IsCustom {
		sb.WriteString("{")
		for i, v := range d.Custom {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(strconv.FormatInt(v, 10))
		}
		sb.WriteString("}")
		return
	}
	d.Bound.writeTo(sb)
}

func (dc Dice) writeTo(sb *strings.Builder) {
	dc.Count.writeTo(sb)
	dc.Die.writeTo(sb)
	for op := dc.Ops; op != nil; op = op.Next {
		op.Op.writeTo(sb)
	}
}

func (o DieOpOption) writeTo(sb *strings.Builder) {
	switch o.Kind {
	case OpReroll:
		if o.RerollOnce {
			sb.WriteString("ro")
		} else {
			sb.WriteString("rr")
		}
		sb.WriteString(o.Cmp.Symbol())
		sb.WriteString(strconv.FormatInt(o.Limit, 10))
	case OpKeepDrop:
		if o.KD == Keep {
			sb.WriteString("k")
		} else {
			sb.WriteString("d")
		}
		o.Sel.writeTo(sb)
	}
}

func (s LowHighWhere) writeTo(sb *strings.Builder) {
	switch s.Kind {
	case LHWLow:
		sb.WriteString("l")
		sb.WriteString(strconv.FormatInt(s.N, 10))
	case LHWHigh:
		sb.WriteString("h")
		sb.WriteString(strconv.FormatInt(s.N, 10))
	case LHWWhere:
		sb.WriteString("w")
		sb.WriteString(s.Cmp.Symbol())
		sb.WriteString(strconv.FormatInt(s.Val, 10))
	}
}
