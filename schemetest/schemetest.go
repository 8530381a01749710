// Package schemetest runs sequences of expressions against isolated
// interpreter sessions.
package schemetest

import (
	"testing"

	"github.com/luthersystems/minischeme/lisp"
	"github.com/luthersystems/minischeme/parser"
)

// TestSequence is a sequence of expressions which are evaluated sequentially
// by one lisp.Interpreter.  When evaluating Expr fails Result is compared
// against the name of the raised condition, e.g. "runtime-error".
type TestSequence []struct {
	Expr   string // an expression
	Result string // the printed result
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewInterpreter returns a session reading with a parser.Reader.  The session
// is closed when t completes.
func NewInterpreter(t testing.TB, config ...lisp.Config) *lisp.Interpreter {
	t.Helper()
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, config...)
	s, err := lisp.NewInterpreter(config...)
	if err != nil {
		t.Fatalf("Failed to initialize interpreter: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// Eval runs expr in s and returns the printed result, or the name of the
// condition raised by expr.
func Eval(s *lisp.Interpreter, expr string) string {
	out, err := s.Run(expr)
	if err != nil {
		c, ok := lisp.ConditionOf(err)
		if !ok {
			return err.Error()
		}
		return c.String()
	}
	return out
}

// RunTestSuite runs each TestSequence in tests on isolated sessions.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		s := NewInterpreter(t)
		for j, expr := range test.TestSequence {
			result := Eval(s, expr.Expr)
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}
