package lisp

import (
	"errors"
	"io"
	"log/slog"
)

// DefaultMaxStackHeight is the call stack limit of an Interpreter that is not
// configured with WithMaximumStackHeight.  It must stay below the depth at
// which the Go runtime exhausts a goroutine stack.
const DefaultMaxStackHeight = 1 << 18

// Interpreter is one interpreter session.  The session owns a heap and a
// global environment which is the only root of garbage collection.  An
// Interpreter is not safe for concurrent use.
type Interpreter struct {
	Runtime *Runtime
	global  *LEnv
}

// NewInterpreter initializes a session, binds the default special operators
// and builtins in its global environment and applies config.
func NewInterpreter(config ...Config) (*Interpreter, error) {
	rt := &Runtime{
		Heap:   NewHeap(),
		Stack:  &CallStack{MaxHeight: DefaultMaxStackHeight},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range config {
		err := fn(rt)
		if err != nil {
			return nil, err
		}
	}
	if rt.Reader == nil {
		return nil, errors.New("no reader configured")
	}
	s := &Interpreter{Runtime: rt}
	s.init()
	return s, nil
}

func (s *Interpreter) init() {
	h := s.Runtime.Heap
	s.global = NewEnv(s.Runtime, Nil())
	s.global.AddSpecialOps()
	s.global.AddBuiltins()
	s.global.Put("#t", h.Bool(true))
	s.global.Put("#f", h.Bool(false))
}

// Global returns the global environment of the session.
func (s *Interpreter) Global() *LEnv {
	return s.global
}

// Run reads exactly one form from text, evaluates it in the global
// environment and returns its printed form.  Unreachable values are
// collected after a successful evaluation.
func (s *Interpreter) Run(text string) (string, error) {
	forms, err := s.read([]byte(text))
	if err != nil {
		return "", err
	}
	if len(forms) != 1 {
		return "", ErrorConditionf(SyntaxCondition, "expected exactly one form (got %d)", len(forms))
	}
	return s.evalPrint(forms[0])
}

// Load evaluates every form in text in order and returns their printed
// forms.  Load stops at the first error, returning the results of the forms
// that preceded it.  Garbage is collected after each form.  The name of the
// source is used for logging only.
func (s *Interpreter) Load(name string, text string) ([]string, error) {
	forms, err := s.read([]byte(text))
	if err != nil {
		return nil, err
	}
	s.Runtime.Logger.Debug("load", slog.String("source", name), slog.Int("forms", len(forms)))
	// Forms that have not been evaluated yet are not reachable from the
	// global environment.  Keep them alive through a list bound in a frame
	// the collector can see.
	pending := s.global.Child()
	results := make([]string, 0, len(forms))
	for i, form := range forms {
		root := s.global.Ref
		if i < len(forms)-1 {
			pending.Put(" pending", s.Runtime.Heap.List(forms[i+1:]...))
			root = pending.Ref
		}
		out, err := s.evalPrintRoots(form, root)
		if err != nil {
			return results, err
		}
		results = append(results, out)
	}
	return results, nil
}

func (s *Interpreter) read(text []byte) ([]Ref, error) {
	forms, err := s.Runtime.Reader.Read(s.Runtime.Heap, text)
	if err != nil {
		var lerr *ErrorVal
		if errors.As(err, &lerr) {
			return nil, err
		}
		return nil, ErrorConditionf(SyntaxCondition, "%v", err)
	}
	return forms, nil
}

func (s *Interpreter) evalPrint(form Ref) (string, error) {
	return s.evalPrintRoots(form, s.global.Ref)
}

// evalPrintRoots evaluates form in the global environment and then collects
// everything unreachable from root.  Root must have the global environment
// on its parent chain.
func (s *Interpreter) evalPrintRoots(form Ref, root Ref) (string, error) {
	s.Runtime.Stack.Reset()
	v, err := s.global.Eval(form)
	if err != nil {
		s.Runtime.Logger.Debug("eval error", slog.Any("err", err))
		return "", err
	}
	out := s.Runtime.Heap.Sprint(v)
	s.Runtime.Heap.Collect(root)
	return out, nil
}

// Close reclaims every value of the session.  The Interpreter must not be
// used after Close.
func (s *Interpreter) Close() {
	s.Runtime.Heap.Clear()
	s.global = nil
}
