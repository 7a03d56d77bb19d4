// Package lex holds the lexical primitives the dice expression parser is
// built out of: whitespace skipping, integer and word scanning, and
// single-character operator matching. None of these primitives know
// anything about grammar; dice/parse composes them with backtracking to
// implement the EBNF in spec.md §4.C.
package lex

import (
	"strconv"
	"strings"
)

// Cursor is a backtracking-friendly scan position over a rune slice. A
// dice/parse production that fails after having consumed some input calls
// Reset to restore the position a prior Mark captured, exactly as spec.md
// §4.C requires ("on failure of an alternative, input position must be
// restored before trying the next").
type Cursor struct {
	src []rune
	pos int
}

// New returns a Cursor positioned at the start of s.
func New(s string) *Cursor {
	return &Cursor{src: []rune(s)}
}

// Mark returns the current position, to be passed to Reset later.
func (c *Cursor) Mark() int { return c.pos }

// Reset rewinds the cursor to a position previously returned by Mark.
func (c *Cursor) Reset(pos int) { c.pos = pos }

// Pos returns the current rune offset, used in error messages.
func (c *Cursor) Pos() int { return c.pos }

// AtEnd reports whether the cursor has consumed the entire input.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.src) }

// Peek returns the rune at the cursor without consuming it, and whether one
// was available.
func (c *Cursor) Peek() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.src[c.pos], true
}

// SkipSpace consumes zero or more ASCII whitespace runes.
func (c *Cursor) SkipSpace() {
	for !c.AtEnd() && isASCIISpace(c.src[c.pos]) {
		c.pos++
	}
}

// SkipSpace1 consumes one or more ASCII whitespace runes, reporting false
// (and not advancing) if there was not at least one.
func (c *Cursor) SkipSpace1() bool {
	start := c.pos
	c.SkipSpace()
	return c.pos > start
}

// Char consumes exactly the rune r, reporting false (and not advancing) if
// the next rune is not r.
func (c *Cursor) Char(r rune) bool {
	v, ok := c.Peek()
	if !ok || v != r {
		return false
	}
	c.pos++
	return true
}

// Literal consumes exactly the string s, reporting false (and not
// advancing) if the input does not start with s at the cursor.
func (c *Cursor) Literal(s string) bool {
	rs := []rune(s)
	if c.pos+len(rs) > len(c.src) {
		return false
	}
	for i, r := range rs {
		if c.src[c.pos+i] != r {
			return false
		}
	}
	c.pos += len(rs)
	return true
}

// PosInteger consumes one or more ASCII digits and returns them as a
// non-negative int64. ok is false (and the cursor is not advanced) if there
// was no digit at the cursor. overflow is true if the digit run parses to a
// value that does not fit in an int64 — this must be surfaced as a parse
// error, never silently wrapped, per spec.md §4.A.
func (c *Cursor) PosInteger() (v int64, ok bool, overflow bool) {
	start := c.pos
	for !c.AtEnd() && isASCIIDigit(c.src[c.pos]) {
		c.pos++
	}
	if c.pos == start {
		return 0, false, false
	}

	digits := string(c.src[start:c.pos])
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, true, true
	}
	return n, true, false
}

// Integer consumes an optional leading '-' followed by PosInteger.
func (c *Cursor) Integer() (v int64, ok bool, overflow bool) {
	start := c.pos
	neg := c.Char('-')

	n, digitsOK, of := c.PosInteger()
	if !digitsOK {
		c.pos = start
		return 0, false, false
	}
	if of {
		return 0, true, true
	}
	if neg {
		n = -n
	}
	return n, true, false
}

// Word consumes one or more ASCII letters and returns them, unchanged in
// case. ok is false (and the cursor is not advanced) if there was no letter
// at the cursor.
func (c *Cursor) Word() (string, bool) {
	start := c.pos
	for !c.AtEnd() && isASCIILetter(c.src[c.pos]) {
		c.pos++
	}
	if c.pos == start {
		return "", false
	}
	return string(c.src[start:c.pos]), true
}

func isASCIISpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// LowerWord returns s converted to lowercase. dice/parse does not call it:
// its keyword matching ("id", "abs", "ro", "rr", etc.) is case-sensitive.
func LowerWord(s string) string {
	return strings.ToLower(s)
}
