package lisp

// LType is the type of an LVal
type LType uint8

// Possible LType values.  The set is closed; every switch over an LType in
// this package handles each of them.
const (
	LInvalid LType = iota
	LInt
	LBool
	LSymbol
	LPair
	LFrame
	LCell
	LClosure
	LLambda
	LNative
)

var ltypeStrings = []string{
	LInvalid: "INVALID",
	LInt:     "int",
	LBool:    "bool",
	LSymbol:  "symbol",
	LPair:    "pair",
	LFrame:   "environment",
	LCell:    "cell",
	LClosure: "lambda",
	LLambda:  "lambda-builder",
	LNative:  "builtin",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// LVal is a lisp value allocated on a Heap.  Which fields are meaningful
// depends on Type.
type LVal struct {
	Type LType

	// LInt
	Int int64

	// LBool
	Bool bool

	// LSymbol
	Str string

	// LPair
	CAR Ref
	CDR Ref

	// LCell
	Held Ref

	// LFrame
	Parent Ref
	Scope  map[string]Ref

	// LClosure and LLambda.  Env is the frame the procedure was created in.
	Env     Ref
	Formals []Ref
	Body    []Ref

	// LNative
	Builtin *langBuiltin
}

// IsCallable returns true if v can appear at the head of a call form.
func (v *LVal) IsCallable() bool {
	switch v.Type {
	case LClosure, LLambda, LNative:
		return true
	default:
		return false
	}
}

// Ref is a handle to an LVal allocated on a Heap.  Two Refs are equal iff
// they refer to the same object.  The zero Ref is the empty list.
type Ref struct {
	slot uint32
	gen  uint32
}

// Nil returns the empty list.
func Nil() Ref {
	return Ref{}
}

// IsNil returns true if r is the empty list.
func (r Ref) IsNil() bool {
	return r.slot == 0
}

// Int returns a new LInt with value x.
func (h *Heap) Int(x int64) Ref {
	return h.Alloc(LVal{Type: LInt, Int: x})
}

// Bool returns a new LBool with the truth value of ok.
func (h *Heap) Bool(ok bool) Ref {
	return h.Alloc(LVal{Type: LBool, Bool: ok})
}

// Symbol returns a new LSymbol named s.
func (h *Heap) Symbol(s string) Ref {
	return h.Alloc(LVal{Type: LSymbol, Str: s})
}

// Cons returns a new pair containing head and tail.
func (h *Heap) Cons(head, tail Ref) Ref {
	return h.Alloc(LVal{Type: LPair, CAR: head, CDR: tail})
}

// List returns a proper list containing v.
func (h *Heap) List(v ...Ref) Ref {
	lis := Nil()
	for i := len(v) - 1; i >= 0; i-- {
		lis = h.Cons(v[i], lis)
	}
	return lis
}

// Cell returns a new mutable binding cell holding v.
func (h *Heap) Cell(v Ref) Ref {
	return h.Alloc(LVal{Type: LCell, Held: v})
}

// Closure returns a new closure that binds formals in a child of env and
// evaluates body.
func (h *Heap) Closure(env Ref, formals, body []Ref) Ref {
	return h.Alloc(LVal{
		Type:    LClosure,
		Env:     env,
		Formals: formals,
		Body:    body,
	})
}

// Frame returns a new, empty environment frame whose parent is parent.  A nil
// parent makes a root frame.
func (h *Heap) Frame(parent Ref) Ref {
	return h.Alloc(LVal{
		Type:   LFrame,
		Parent: parent,
		Scope:  make(map[string]Ref),
	})
}

// TypeOf returns the type of r.  The empty list has type LInvalid.
func (h *Heap) TypeOf(r Ref) LType {
	if r.IsNil() {
		return LInvalid
	}
	return h.Get(r).Type
}

// IsType returns true if r is a non-nil value of type t.
func (h *Heap) IsType(r Ref, t LType) bool {
	return !r.IsNil() && h.Get(r).Type == t
}

// IsFalse returns true iff r is the boolean false.  Every other value,
// including 0 and the empty list, is true.
func (h *Heap) IsFalse(r Ref) bool {
	if r.IsNil() {
		return false
	}
	v := h.Get(r)
	return v.Type == LBool && !v.Bool
}

// Slice returns the elements of the proper list lis.  Slice returns false if
// lis is not a proper list.
func (h *Heap) Slice(lis Ref) ([]Ref, bool) {
	var cells []Ref
	n, ok := h.Len(lis)
	if !ok {
		return nil, false
	}
	if n > 0 {
		cells = make([]Ref, 0, n)
	}
	for !lis.IsNil() {
		v := h.Get(lis)
		cells = append(cells, v.CAR)
		lis = v.CDR
	}
	return cells, true
}

// Len returns the length of the list lis.  Len returns false if lis is not a
// proper list, including when it is circular.
func (h *Heap) Len(lis Ref) (int, bool) {
	slow := lis
	n := 0
	for {
		if lis.IsNil() {
			return n, true
		}
		if !h.IsType(lis, LPair) {
			return n, false
		}
		lis = h.Get(lis).CDR
		n++
		if n%2 == 0 {
			slow = h.Get(slow).CDR
			if slow == lis && !lis.IsNil() {
				return n, false
			}
		}
	}
}
