package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSprint(t *testing.T) {
	h := NewHeap()
	one, two, three := h.Int(1), h.Int(2), h.Int(3)
	sym := h.Symbol("abc")

	tests := []struct {
		v      Ref
		result string
	}{
		{Nil(), "()"},
		{one, "1"},
		{h.Int(-42), "-42"},
		{h.Bool(true), "#t"},
		{h.Bool(false), "#f"},
		{sym, "abc"},
		{h.List(one, two, three), "(1 2 3)"},
		{h.Cons(one, two), "(1 . 2)"},
		{h.Cons(one, h.Cons(two, three)), "(1 2 . 3)"},
		{h.List(Nil(), h.List(one), Nil()), "(() (1) ())"},
		{h.List(sym, h.List(sym, h.List(sym))), "(abc (abc (abc)))"},
		{h.Closure(Nil(), nil, nil), "<lambda>"},
		{h.Alloc(LVal{Type: LLambda}), "<special-op ``lambda''>"},
		{h.Alloc(LVal{Type: LNative, Builtin: &langBuiltin{name: "car"}}), "<builtin-function ``car''>"},
		{h.Alloc(LVal{Type: LNative, Builtin: &langBuiltin{name: "if", special: true}}), "<special-op ``if''>"},
	}
	for i, test := range tests {
		assert.Equal(t, test.result, h.Sprint(test.v), "test %d", i)
	}
}

func TestSprintCycles(t *testing.T) {
	h := NewHeap()
	one, two := h.Int(1), h.Int(2)

	self := h.Cons(one, Nil())
	h.Get(self).CDR = self
	assert.Equal(t, "#0=(1 . #0#)", h.Sprint(self))

	h.Get(self).CAR = self
	assert.Equal(t, "#0=(#0# . #0#)", h.Sprint(self))

	lis := h.List(one, two)
	h.Get(h.Get(lis).CDR).CDR = lis
	assert.Equal(t, "#0=(1 2 . #0#)", h.Sprint(lis))
	assert.Equal(t, "(0 #0=(1 2 . #0#))", h.Sprint(h.List(h.Int(0), lis)))

	// shared structure without a cycle is printed in full
	shared := h.List(one)
	assert.Equal(t, "((1) (1))", h.Sprint(h.List(shared, shared)))

	// two independent cycles
	a := h.Cons(one, Nil())
	h.Get(a).CDR = a
	b := h.Cons(two, Nil())
	h.Get(b).CAR = b
	assert.Equal(t, "(#0=(1 . #0#) #1=(#1#))", h.Sprint(h.List(a, b)))
}

func TestSprintLongList(t *testing.T) {
	h := NewHeap()
	cells := make([]Ref, 100000)
	for i := range cells {
		cells[i] = h.Int(0)
	}
	s := h.Sprint(h.List(cells...))
	assert.Len(t, s, 2*len(cells)+1)
}
