package lisp

import (
	"fmt"
	"io"
)

// CallStack is a procedure call stack.
type CallStack struct {
	Frames []CallFrame

	// MaxHeight is the number of frames the stack may hold.  A non-positive
	// MaxHeight means the height is not limited.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name    string
	Special bool // operands were not evaluated before the call
}

// Copy creates a copy of the current stack so that it can be attached to an
// error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Push pushes a new frame onto s.  Push returns a runtime condition and leaves
// s unchanged if the new frame would exceed the maximum height of s.
func (s *CallStack) Push(name string, special bool) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return ErrorConditionf(RuntimeCondition, "%s: maximum stack height exceeded: %d", name, s.MaxHeight)
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Special: special})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics if
// the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// Reset removes every frame from s.
func (s *CallStack) Reset() {
	for i := range s.Frames {
		s.Frames[i] = CallFrame{}
	}
	s.Frames = s.Frames[:0]
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		var mod string
		if f.Special {
			mod = " [special]"
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s%s\n", indent, i, f.Name, mod)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
