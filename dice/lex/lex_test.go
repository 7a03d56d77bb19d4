package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Cursor_SkipSpace(t *testing.T) {
	c := New("   abc")
	c.SkipSpace()
	assert.Equal(t, 3, c.Pos())
}

func Test_Cursor_SkipSpace1_requiresAtLeastOne(t *testing.T) {
	c := New("abc")
	ok := c.SkipSpace1()
	assert.False(t, ok)
	assert.Equal(t, 0, c.Pos())
}

func Test_Cursor_Char(t *testing.T) {
	c := New("d6")
	assert.True(t, c.Char('d'))
	assert.Equal(t, 1, c.Pos())
	assert.False(t, c.Char('d'))
	assert.Equal(t, 1, c.Pos())
}

func Test_Cursor_Literal(t *testing.T) {
	c := New("rr<3")
	assert.True(t, c.Literal("rr"))
	assert.Equal(t, 2, c.Pos())

	c2 := New("ro<3")
	assert.False(t, c2.Literal("rr"))
	assert.Equal(t, 0, c2.Pos())
}

func Test_Cursor_PosInteger(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expectOk bool
		expectV  int64
	}{
		{name: "simple", input: "123abc", expectOk: true, expectV: 123},
		{name: "no digits", input: "abc", expectOk: false},
		{name: "zero", input: "0", expectOk: true, expectV: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.input)
			v, ok, overflow := c.PosInteger()
			assert.Equal(t, tc.expectOk, ok)
			assert.False(t, overflow)
			if ok {
				assert.Equal(t, tc.expectV, v)
			}
		})
	}
}

func Test_Cursor_PosInteger_overflow(t *testing.T) {
	c := New("99999999999999999999999")
	_, ok, overflow := c.PosInteger()
	assert.True(t, ok)
	assert.True(t, overflow)
}

func Test_Cursor_Integer_negative(t *testing.T) {
	c := New("-42rest")
	v, ok, overflow := c.Integer()
	assert.True(t, ok)
	assert.False(t, overflow)
	assert.Equal(t, int64(-42), v)
	assert.Equal(t, 3, c.Pos())
}

func Test_Cursor_Integer_noDigitsAfterMinus(t *testing.T) {
	c := New("-abc")
	_, ok, _ := c.Integer()
	assert.False(t, ok)
	assert.Equal(t, 0, c.Pos())
}

func Test_Cursor_Word(t *testing.T) {
	c := New("abs 5")
	w, ok := c.Word()
	assert.True(t, ok)
	assert.Equal(t, "abs", w)
	assert.Equal(t, 3, c.Pos())
}

func Test_Cursor_Reset(t *testing.T) {
	c := New("3d6")
	mark := c.Mark()
	c.PosInteger()
	assert.Equal(t, 1, c.Pos())
	c.Reset(mark)
	assert.Equal(t, 0, c.Pos())
}

func Test_Cursor_AtEnd(t *testing.T) {
	c := New("a")
	assert.False(t, c.AtEnd())
	c.Char('a')
	assert.True(t, c.AtEnd())
}
