package lisp

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read parses text and allocates the top-level forms it contains on h,
	// in order.  Nothing should be allocated on h when Read returns an
	// error.
	Read(h *Heap, text []byte) ([]Ref, error)
}
