package schemetest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/luthersystems/minischeme/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fuzzTokens = []string{
	"(", "(", "(", "(", ")", ")", ")", ")",
	"-", "+", "#t", `""`, "symbol", "0", "1", "-2",
	".", ".", ".", ".", "'",
	"define", "set!", "lambda", "if", "car", "cons", "set-car!", "set-cdr!", "list",
}

func fuzzExpr(rng *rand.Rand) string {
	n := 1 + rng.Intn(21)
	toks := make([]string, n)
	for i := range toks {
		toks[i] = fuzzTokens[rng.Intn(len(fuzzTokens))]
	}
	return strings.Join(toks, " ")
}

// Random input must only ever produce results or conditions, and the heap
// must stay bounded by what the global environment holds.
func TestFuzz(t *testing.T) {
	const iterations = 20000
	rng := rand.New(rand.NewSource(16))
	s := NewInterpreter(t, lisp.WithMaximumStackHeight(1000))
	h := s.Runtime.Heap
	ok := 0
	for i := 0; i < iterations; i++ {
		expr := fuzzExpr(rng)
		_, err := s.Run(expr)
		if err == nil {
			ok++
			continue
		}
		_, isCond := lisp.ConditionOf(err)
		require.True(t, isCond, "expr %q: unexpected error: %v", expr, err)
	}
	assert.NotZero(t, ok)

	// Whatever the global environment holds, it holds at most a handful of
	// small values per name.
	_, err := s.Run("0")
	require.NoError(t, err)
	assert.Less(t, h.Live(), 2000)
	assert.Zero(t, h.Collect(s.Global().Ref))
}
