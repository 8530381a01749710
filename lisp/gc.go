package lisp

import (
	"fmt"
	"log/slog"
)

// Collect reclaims every value that cannot be reached from roots and returns
// the number of values reclaimed.  Refs held outside the heap that are not
// reachable from roots are invalid once Collect returns.
//
// An interpreter calls Collect with its global environment as the only root
// after each top-level command.
func (h *Heap) Collect(roots ...Ref) int {
	marked, n := h.mark(roots)
	freed := h.sweep(marked)
	h.stats.Collections++
	h.logger().Debug("gc",
		slog.Int("marked", n),
		slog.Int("freed", freed),
		slog.Int("live", len(h.live)))
	return freed
}

// mark performs a depth-first traversal from roots.  Values are marked when
// they are first pushed so each one is visited at most once, which is what
// makes cycles safe.
func (h *Heap) mark(roots []Ref) (bitset, int) {
	visited := newBitset(len(h.slots))
	stack := make([]Ref, 0, 64)
	n := 0
	push := func(r Ref) {
		if r.IsNil() || visited.has(r.slot) {
			return
		}
		visited.set(r.slot)
		stack = append(stack, r)
		n++
	}
	for _, r := range roots {
		push(r)
	}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := h.Get(r)
		switch v.Type {
		case LPair:
			push(v.CAR)
			push(v.CDR)
		case LCell:
			push(v.Held)
		case LClosure:
			push(v.Env)
			for _, sym := range v.Formals {
				push(sym)
			}
			for _, expr := range v.Body {
				push(expr)
			}
		case LLambda:
			push(v.Env)
		case LFrame:
			push(v.Parent)
			for _, b := range v.Scope {
				push(b)
			}
		case LInt, LBool, LSymbol, LNative:
		default:
			panic(fmt.Sprintf("unknown type on heap: %v", v.Type))
		}
	}
	return visited, n
}

// sweep removes unmarked values by swapping each with the last live value and
// truncating.  Handles are unaffected because slots point at objects, not at
// positions in h.live.
func (h *Heap) sweep(marked bitset) int {
	freed := 0
	for i := 0; i < len(h.live); {
		obj := h.live[i]
		if marked.has(obj.ref.slot) {
			i++
			continue
		}
		last := len(h.live) - 1
		h.live[i] = h.live[last]
		h.live[last] = nil
		h.live = h.live[:last]
		h.release(obj.ref.slot)
		freed++
	}
	h.stats.Frees += uint64(freed)
	if cap(h.live) > 1024 && cap(h.live) > 4*len(h.live) {
		live := make([]*object, len(h.live), 2*len(h.live))
		copy(live, h.live)
		h.live = live
	}
	return freed
}

type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i uint32) {
	b[i/64] |= 1 << (i % 64)
}

func (b bitset) has(i uint32) bool {
	return b[i/64]&(1<<(i%64)) != 0
}
