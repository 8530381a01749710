package lisp

import (
	"io"
	"strconv"
	"strings"
)

// Sprint returns the printed form of r.  Pairs that are part of a cycle are
// printed with datum labels, #n= at the first occurrence and #n# after it, so
// printing always terminates.
func (h *Heap) Sprint(r Ref) string {
	var buf strings.Builder
	h.Fprint(&buf, r)
	return buf.String()
}

// Fprint writes the printed form of r to w.
func (h *Heap) Fprint(w io.Writer, r Ref) (int, error) {
	p := &printer{
		h:      h,
		labels: make(map[Ref]int),
	}
	p.findCycles(r, make(map[Ref]bool), make(map[Ref]bool))
	p.print(r)
	return io.WriteString(w, p.buf.String())
}

type printer struct {
	h      *Heap
	buf    strings.Builder
	labels map[Ref]int // -1 until the label is printed
	next   int
}

// findCycles marks every pair that can reach itself.  Lists are walked
// iteratively along their cdrs so that long lists do not recurse deeply.
func (p *printer) findCycles(r Ref, onPath, done map[Ref]bool) {
	var spine []Ref
	for p.h.IsType(r, LPair) {
		if onPath[r] {
			p.labels[r] = -1
			break
		}
		if done[r] {
			break
		}
		onPath[r] = true
		spine = append(spine, r)
		p.findCycles(p.h.Get(r).CAR, onPath, done)
		r = p.h.Get(r).CDR
	}
	for _, s := range spine {
		delete(onPath, s)
		done[s] = true
	}
}

func (p *printer) print(r Ref) {
	if r.IsNil() {
		p.buf.WriteString("()")
		return
	}
	v := p.h.Get(r)
	switch v.Type {
	case LInt:
		p.buf.WriteString(strconv.FormatInt(v.Int, 10))
	case LBool:
		if v.Bool {
			p.buf.WriteString("#t")
		} else {
			p.buf.WriteString("#f")
		}
	case LSymbol:
		p.buf.WriteString(v.Str)
	case LPair:
		p.printList(r)
	case LClosure:
		p.buf.WriteString("<lambda>")
	case LLambda:
		p.buf.WriteString("<special-op ``" + LambdaSymbol + "''>")
	case LNative:
		if v.Builtin.special {
			p.buf.WriteString("<special-op ``" + v.Builtin.name + "''>")
		} else {
			p.buf.WriteString("<builtin-function ``" + v.Builtin.name + "''>")
		}
	default:
		p.buf.WriteString("<" + v.Type.String() + ">")
	}
}

func (p *printer) printList(r Ref) {
	if p.label(r) {
		return
	}
	p.buf.WriteString("(")
	p.print(p.h.Get(r).CAR)
	for tail := p.h.Get(r).CDR; !tail.IsNil(); tail = p.h.Get(tail).CDR {
		_, labeled := p.labels[tail]
		if labeled || !p.h.IsType(tail, LPair) {
			p.buf.WriteString(" . ")
			p.print(tail)
			break
		}
		p.buf.WriteString(" ")
		p.print(p.h.Get(tail).CAR)
	}
	p.buf.WriteString(")")
}

// label writes the datum label of r, if it has one, and returns true if the
// contents of r have already been printed.
func (p *printer) label(r Ref) bool {
	id, ok := p.labels[r]
	if !ok {
		return false
	}
	if id >= 0 {
		p.buf.WriteString("#" + strconv.Itoa(id) + "#")
		return true
	}
	p.labels[r] = p.next
	p.buf.WriteString("#" + strconv.Itoa(p.next) + "=")
	p.next++
	return false
}
