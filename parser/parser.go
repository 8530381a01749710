// Package parser provides the reader for minischeme source text.
//
//	expr   := <int> | <symbol> | <quote> | <list>
//	int    := /[+-]?[0-9]+/
//	symbol := /[a-zA-Z<=>*#\/][a-zA-Z<=>*#\/0-9?!-]*/ | '+' | '-'
//	quote  := "'" <expr>
//	list   := '(' <expr>* ')' | '(' <expr>+ '.' <expr> ')'
//
// A quoted expression 'x is read as the list (quote x).
package parser

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/luthersystems/minischeme/lisp"
	parsec "github.com/prataprc/goparsec"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
	nodeQuote
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeList:    "LIST",
	nodeQuote:   "QUOTE",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// Reader implements lisp.Reader.
type Reader struct {
	parser parsec.Parser
}

var _ lisp.Reader = (*Reader)(nil)

// NewReader returns a new Reader.
func NewReader() *Reader {
	return &Reader{parser: newParsecParser()}
}

// Read implements lisp.Reader.  Every error returned by Read is a syntax
// condition.
func (r *Reader) Read(h *lisp.Heap, text []byte) ([]lisp.Ref, error) {
	forms, err := r.parse(text)
	if err != nil {
		return nil, err
	}
	refs := make([]lisp.Ref, len(forms))
	for i, d := range forms {
		refs[i] = d.alloc(h)
	}
	return refs, nil
}

// parse reads all of text before anything is allocated so that a syntax
// error leaves no garbage behind.
func (r *Reader) parse(text []byte) ([]*datum, error) {
	text = bytes.TrimSpace(text)
	var forms []*datum
	s := parsec.NewScanner(text)
	root, s := r.parser(s)
	for root != nil {
		d, err := getDatum(root)
		if err != nil {
			return nil, err
		}
		forms = append(forms, d)
		root, s = r.parser(s)
	}
	if !s.Endof() {
		return nil, unexpected(text, s.GetCursor())
	}
	return forms, nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	dot := parsec.Atom(".", "DOT")
	q := parsec.Atom("'", "QUOTE")
	integer := parsec.Token(`[+\-]?[0-9]+`, "INT")
	symbol := parsec.Token(`(?:[a-zA-Z<=>*#/][a-zA-Z<=>*#/0-9?!\-]*|[+\-])`, "SYMBOL")
	term := parsec.OrdChoice(astNode(nodeTerm),
		integer,
		symbol, // after integer so that signed numbers are not split
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	dotTail := parsec.And(nil, dot, &expr, closeP)
	list := parsec.And(astNode(nodeList), openP, exprList, parsec.OrdChoice(nil, closeP, dotTail))
	quote := parsec.And(astNode(nodeQuote), q, &expr)
	expr = parsec.OrdChoice(nil, term, list, quote)
	return expr
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return errDatum(fmt.Errorf("unexpected node: %T", nodes[0]))
		}
		switch term.Name {
		case "INT":
			x, err := strconv.ParseInt(term.Value, 10, 64)
			if err != nil {
				return errDatum(fmt.Errorf("bad number: %s", term.Value))
			}
			return &datum{kind: datumInt, num: x}
		case "SYMBOL":
			return &datum{kind: datumSymbol, sym: term.Value}
		}
		return errDatum(fmt.Errorf("unexpected token: %s", term.Name))
	case nodeList:
		d := &datum{kind: datumList}
		dotted := false
		for _, c := range nodes {
			switch c := c.(type) {
			case *datum:
				if dotted {
					d.tail = c
				} else {
					d.items = append(d.items, c)
				}
			case *parsec.Terminal:
				// We don't want terminal parsec nodes '(' and ')'
				if c.Name == "DOT" {
					dotted = true
				}
			}
		}
		if dotted && len(d.items) == 0 {
			return errDatum(fmt.Errorf("no list element before dot"))
		}
		return d
	case nodeQuote:
		for _, c := range nodes {
			if c, ok := c.(*datum); ok {
				return &datum{
					kind:  datumList,
					items: []*datum{{kind: datumSymbol, sym: "quote"}, c},
				}
			}
		}
		return errDatum(fmt.Errorf("quote without an expression"))
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func getDatum(root parsec.ParsecNode) (*datum, error) {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) != 1 {
		return nil, syntaxErrorf("unexpected parse tree: %d nodes", len(nodes))
	}
	d, ok := nodes[0].(*datum)
	if !ok {
		return nil, syntaxErrorf("unexpected parse tree: %T", nodes[0])
	}
	if err := d.check(); err != nil {
		return nil, syntaxErrorf("%v", err)
	}
	return d, nil
}

// unexpected returns an error describing why text could not be read past
// offset.
func unexpected(text []byte, offset int) error {
	rest := bytes.TrimLeft(text[offset:], " \t\r\n")
	if len(rest) == 0 {
		return syntaxErrorf("unexpected end of input")
	}
	c := rest[0]
	switch {
	case c == '(' || c == '\'':
		if NeedsMore(text[offset:]) {
			return syntaxErrorf("unexpected end of input")
		}
		return syntaxErrorf("malformed expression at offset %d", len(text)-len(rest))
	case c == ')':
		return syntaxErrorf("unexpected ')' at offset %d", len(text)-len(rest))
	case c == '.':
		return syntaxErrorf("unexpected '.' at offset %d", len(text)-len(rest))
	}
	return syntaxErrorf("bad symbol %q at offset %d", c, len(text)-len(rest))
}

// NeedsMore returns true if text ends inside an unfinished expression, an
// open list or a quote without its expression.
func NeedsMore(text []byte) bool {
	depth := 0
	for _, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	if depth > 0 {
		return true
	}
	rest := bytes.TrimRight(text, " \t\r\n")
	return len(rest) > 0 && rest[len(rest)-1] == '\''
}

func syntaxErrorf(format string, v ...interface{}) error {
	return lisp.ErrorConditionf(lisp.SyntaxCondition, "read: "+format, v...)
}
