package lisp

import (
	"fmt"
	"io"
	"log/slog"
)

// Heap is the arena every LVal in an interpreter session is allocated from.
// Values refer to each other through Ref handles, never through Go pointers,
// so the collector can reclaim cycles.  A Heap is not safe for concurrent
// use.
//
// Handles are stable.  Collect compacts the table of live objects but a Ref to
// a surviving object keeps resolving to it.  A Ref to a reclaimed object is
// detected by its generation and makes Get panic.
type Heap struct {
	// Logger receives a debug record for every collection.  A nil Logger
	// discards them.
	Logger *slog.Logger

	live  []*object
	slots []slot // slots[0] is reserved for the empty list
	free  []uint32
	stats HeapStats
}

type object struct {
	LVal
	ref Ref
}

type slot struct {
	obj *object
	gen uint32
}

// HeapStats reports allocation counters for a Heap.
type HeapStats struct {
	Live        int    // objects currently allocated
	Allocs      uint64 // objects ever allocated
	Frees       uint64 // objects ever reclaimed
	Collections uint64 // completed calls to Collect
}

// NewHeap returns an empty Heap.
func NewHeap() *Heap {
	return &Heap{
		slots: make([]slot, 1),
	}
}

// Alloc copies v onto the heap and returns its handle.
func (h *Heap) Alloc(v LVal) Ref {
	var id uint32
	if n := len(h.free); n > 0 {
		id = h.free[n-1]
		h.free = h.free[:n-1]
	} else {
		id = uint32(len(h.slots))
		h.slots = append(h.slots, slot{gen: 1})
	}
	s := &h.slots[id]
	obj := &object{
		LVal: v,
		ref:  Ref{slot: id, gen: s.gen},
	}
	s.obj = obj
	h.live = append(h.live, obj)
	h.stats.Allocs++
	return obj.ref
}

// Get returns the value r refers to.  The returned pointer stays valid until
// the value is reclaimed.  Get panics if r is the empty list or refers to a
// reclaimed value.
func (h *Heap) Get(r Ref) *LVal {
	obj, ok := h.lookup(r)
	if !ok {
		if r.IsNil() {
			panic("dereference of the empty list")
		}
		panic(fmt.Sprintf("dangling reference: slot %d generation %d", r.slot, r.gen))
	}
	return &obj.LVal
}

// Valid returns true if r refers to a live value.
func (h *Heap) Valid(r Ref) bool {
	_, ok := h.lookup(r)
	return ok
}

func (h *Heap) lookup(r Ref) (*object, bool) {
	if r.IsNil() || int(r.slot) >= len(h.slots) {
		return nil, false
	}
	s := h.slots[r.slot]
	if s.obj == nil || s.gen != r.gen {
		return nil, false
	}
	return s.obj, true
}

// Live returns the number of values currently allocated.
func (h *Heap) Live() int {
	return len(h.live)
}

// Stats returns the allocation counters of h.
func (h *Heap) Stats() HeapStats {
	stats := h.stats
	stats.Live = len(h.live)
	return stats
}

// Clear reclaims every value on the heap.  All outstanding Refs become
// invalid.
func (h *Heap) Clear() {
	for i, obj := range h.live {
		h.release(obj.ref.slot)
		h.live[i] = nil
	}
	h.stats.Frees += uint64(len(h.live))
	h.live = h.live[:0]
}

func (h *Heap) release(id uint32) {
	s := &h.slots[id]
	s.obj = nil
	s.gen++
	h.free = append(h.free, id)
}

func (h *Heap) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return h.Logger
}
