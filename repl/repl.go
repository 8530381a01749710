package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/luthersystems/minischeme/lisp"
	"github.com/luthersystems/minischeme/parser"
)

// Option configures RunRepl.
type Option func(*config)

type config struct {
	historyFile string
	stackTraces bool
	stdout      io.Writer
	stderr      io.Writer
}

// WithHistoryFile persists the input history in path.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// WithStackTraces prints the call stack of every error that carries one.
func WithStackTraces(ok bool) Option {
	return func(c *config) {
		c.stackTraces = ok
	}
}

// RunRepl runs a simple repl over the session s.  An unfinished expression
// continues on the next line.  An interrupt discards the pending input.
func RunRepl(s *lisp.Interpreter, prompt string, opts ...Option) error {
	c := &config{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, fn := range opts {
		fn(c)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: c.historyFile,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			break
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, line...)
		if parser.NeedsMore(buf) {
			rl.SetPrompt(contPrompt)
			continue
		}
		rl.SetPrompt(prompt)
		c.eval(s, buf)
		buf = nil
	}
	if err != io.EOF {
		return err
	}
	errln(c.stderr, "done")
	return nil
}

// eval runs one complete input.  Blank input is ignored.
func (c *config) eval(s *lisp.Interpreter, text []byte) {
	if len(bytes.TrimSpace(text)) == 0 {
		return
	}
	out, err := s.Run(string(text))
	if err != nil {
		errln(c.stderr, err)
		if lerr, ok := err.(*lisp.ErrorVal); ok && c.stackTraces && lerr.Stack != nil {
			lerr.Stack.DebugPrint(c.stderr)
		}
		return
	}
	fmt.Fprintln(c.stdout, out)
}

func errln(w io.Writer, v ...interface{}) {
	fmt.Fprintln(w, v...)
}
