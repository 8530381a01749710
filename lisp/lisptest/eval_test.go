package lisptest

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/luthersystems/minischeme/lisp"
	"github.com/luthersystems/minischeme/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterpreter(t *testing.T, config ...lisp.Config) *lisp.Interpreter {
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, config...)
	s, err := lisp.NewInterpreter(config...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestNewInterpreter(t *testing.T) {
	_, err := lisp.NewInterpreter()
	assert.Error(t, err, "a reader is required")

	_, err = lisp.NewInterpreter(lisp.WithReader(nil))
	assert.Error(t, err)

	s := newInterpreter(t)
	names := []string{
		"quote", "'", "number?", "+", "-", "=", ">", ">=", "<", "<=", "*", "/",
		"max", "min", "abs", "#t", "#f", "boolean?", "not", "and", "or",
		"pair?", "null?", "list?", "cons", "car", "cdr", "list", "list-ref",
		"list-tail", "if", "symbol?", "define", "set!", "set-car!", "set-cdr!",
	}
	scope := s.Runtime.Heap.Get(s.Global().Ref).Scope
	for _, name := range names {
		_, err := s.Global().Get(name)
		assert.NoError(t, err, name)
	}
	assert.Len(t, scope, len(names))
	_, err = s.Global().Get(lisp.LambdaSymbol)
	assert.Error(t, err, "lambda is not bound")
	assert.Equal(t, lisp.DefaultMaxStackHeight, s.Runtime.Stack.MaxHeight)
	assert.Greater(t, lisp.DefaultMaxStackHeight, 100000)
}

func TestRunErrors(t *testing.T) {
	s := newInterpreter(t)
	tests := []struct {
		expr string
		err  error
		msg  string
	}{
		{"(", lisp.ErrSyntax, "syntax-error: read: unexpected end of input"},
		{"1 2", lisp.ErrSyntax, "syntax-error: expected exactly one form (got 2)"},
		{"(if 1 2 3)", lisp.ErrSyntax, "syntax-error: if: condition is not a boolean: 1"},
		{"(lambda (x))", lisp.ErrSyntax, "syntax-error: lambda: expected a parameter list and at least one body expression (got 1 operands)"},
		{"(car 1)", lisp.ErrRuntime, "runtime-error: car: argument is not a pair: 1"},
		{"(+ 1 'a)", lisp.ErrRuntime, "runtime-error: +: argument is not an integer: a"},
		{"(abs)", lisp.ErrRuntime, "runtime-error: abs: 1 arguments expected (got 0)"},
		{"(-)", lisp.ErrRuntime, "runtime-error: -: at least 1 arguments expected (got 0)"},
		{"(/ 1 0)", lisp.ErrRuntime, "runtime-error: /: division by zero"},
		{"((lambda (x) x))", lisp.ErrRuntime, "runtime-error: lambda: expected 1 arguments (got 0)"},
		{"(1 2)", lisp.ErrRuntime, "runtime-error: first element of expression is not a procedure: 1"},
		{"()", lisp.ErrRuntime, "runtime-error: empty list is not an expression"},
		{"foo", lisp.ErrName, "name-error: unbound symbol: foo"},
		{"(set! foo 1)", lisp.ErrName, "name-error: set!: unbound symbol: foo"},
	}
	for i, test := range tests {
		_, err := s.Run(test.expr)
		if !assert.Error(t, err, "test %d", i) {
			continue
		}
		assert.True(t, errors.Is(err, test.err), "test %d: %v", i, err)
		assert.EqualError(t, err, test.msg, "test %d", i)
	}
}

func TestErrorStack(t *testing.T) {
	s := newInterpreter(t)
	_, err := s.Run("(define (f x) (if #t (car x)))")
	require.NoError(t, err)
	_, err = s.Run("(f 1)")
	require.Error(t, err)
	lerr, ok := err.(*lisp.ErrorVal)
	require.True(t, ok)
	require.NotNil(t, lerr.Stack)

	debugstack := `Stack Trace [3 frames -- entrypoint last]:
  height 2: car
  height 1: if [special]
  height 0: f
`
	var buf bytes.Buffer
	_, err = lerr.Stack.DebugPrint(&buf)
	require.NoError(t, err)
	assert.Equal(t, debugstack, buf.String())
	assert.Equal(t, 0, s.Runtime.Stack.Height())
}

func TestLoad(t *testing.T) {
	s := newInterpreter(t)
	results, err := s.Load("test", `
		(define x 10)
		(define (add-x y) (+ x y))
		(add-x 5)
		'(a . b)
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "<lambda>", "15", "(a . b)"}, results)

	results, err = s.Load("test", "(set! x 1) (car '()) (set! x 2)")
	assert.True(t, errors.Is(err, lisp.ErrRuntime))
	assert.Equal(t, []string{"1"}, results)
	out, err := s.Run("x")
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	results, err = s.Load("test", "(set! x 3) (")
	assert.True(t, errors.Is(err, lisp.ErrSyntax))
	assert.Empty(t, results)
	out, _ = s.Run("x")
	assert.Equal(t, "1", out, "nothing is evaluated when reading fails")
}

// Forms of a source that have not been evaluated yet survive the collections
// made after earlier forms.
func TestLoadKeepsPendingForms(t *testing.T) {
	s := newInterpreter(t)
	results, err := s.Load("test", `
		(define (count n) (if (= n 0) 0 (+ 1 (count (- n 1)))))
		(count 100)
		(list 1 2 3)
		(count 10)
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"<lambda>", "100", "(1 2 3)", "10"}, results)
	assert.Equal(t, 0, s.Runtime.Heap.Collect(s.Global().Ref))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newInterpreter(t, lisp.WithLogger(logger))
	_, err := s.Run("(list 1 2 3)")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "msg=gc")
	assert.Contains(t, buf.String(), "freed=")

	_, err = lisp.NewInterpreter(lisp.WithReader(parser.NewReader()), lisp.WithLogger(nil))
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	s, err := lisp.NewInterpreter(lisp.WithReader(parser.NewReader()))
	require.NoError(t, err)
	_, err = s.Run("(define x (list 1 2))")
	require.NoError(t, err)
	h := s.Runtime.Heap
	assert.NotZero(t, h.Live())
	s.Close()
	assert.Zero(t, h.Live())
}
