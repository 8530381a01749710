package parser

import (
	"github.com/luthersystems/minischeme/lisp"
)

type datumKind uint8

const (
	datumError datumKind = iota
	datumInt
	datumSymbol
	datumList
)

// datum is a syntax tree node built while parsing.  Nothing is allocated on a
// lisp.Heap until the whole input has been parsed.
type datum struct {
	kind  datumKind
	num   int64
	sym   string
	items []*datum
	tail  *datum // the expression after a dot, nil for proper lists
	err   error
}

func errDatum(err error) *datum {
	return &datum{kind: datumError, err: err}
}

// check returns the first error found in d.
func (d *datum) check() error {
	switch d.kind {
	case datumError:
		return d.err
	case datumList:
		for _, c := range d.items {
			if err := c.check(); err != nil {
				return err
			}
		}
		if d.tail != nil {
			return d.tail.check()
		}
	}
	return nil
}

// alloc allocates d on h.  The empty list allocates nothing.
func (d *datum) alloc(h *lisp.Heap) lisp.Ref {
	switch d.kind {
	case datumInt:
		return h.Int(d.num)
	case datumSymbol:
		return h.Symbol(d.sym)
	case datumList:
		lis := lisp.Nil()
		if d.tail != nil {
			lis = d.tail.alloc(h)
		}
		for i := len(d.items) - 1; i >= 0; i-- {
			lis = h.Cons(d.items[i].alloc(h), lis)
		}
		return lis
	default:
		panic("unchecked syntax error")
	}
}
