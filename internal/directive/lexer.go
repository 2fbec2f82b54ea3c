package directive

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strings"
)

const eof = token.EOF

// Token is a lexical token of a directive. Go keywords are reported as
// identifiers so that words like "default" and "const" can be directive keywords.
type Token struct {
	Kind token.Token
	Lit  string
	Off  int
	End  int
}

// Span returns the byte range of the token.
func (t Token) Span() Span {
	return Span{Start: t.Off, End: t.End}
}

var closers = map[token.Token]token.Token{
	token.LPAREN: token.RPAREN,
	token.LBRACK: token.RBRACK,
	token.LBRACE: token.RBRACE,
}

func isOpener(k token.Token) bool {
	_, ok := closers[k]
	return ok
}

func isCloser(k token.Token) bool {
	return k == token.RPAREN || k == token.RBRACK || k == token.RBRACE
}

// lex tokenizes directive text with the Go scanner. Automatically inserted
// semicolons are dropped.
func lex(src string) ([]Token, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var scanErr *Error

	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		if scanErr == nil {
			scanErr = syntaxError(Span{Start: pos.Offset, End: pos.Offset + 1}, "%s", msg)
		}
	}, 0)

	var toks []Token

	for {
		pos, kind, lit := s.Scan()
		if kind == token.EOF {
			break
		}

		if kind == token.SEMICOLON && lit == "\n" {
			continue
		}

		if lit == "" {
			lit = kind.String()
		}

		if kind.IsKeyword() {
			kind = token.IDENT
		}

		off := file.Offset(pos)
		toks = append(toks, Token{Kind: kind, Lit: lit, Off: off, End: off + len(lit)})
	}

	if scanErr != nil {
		return nil, scanErr
	}

	return toks, nil
}

// cursor walks a token slice with peek-then-commit semantics.
type cursor struct {
	src   string
	toks  []Token
	i     int
	start int
	end   int
}

func newCursor(src string) (*cursor, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	return &cursor{src: src, toks: toks, end: len(src)}, nil
}

func (c *cursor) peekN(n int) Token {
	if c.i+n < len(c.toks) {
		return c.toks[c.i+n]
	}

	return Token{Kind: eof, Lit: "", Off: c.end, End: c.end}
}

func (c *cursor) peek() Token {
	return c.peekN(0)
}

func (c *cursor) next() Token {
	t := c.peek()
	if c.i < len(c.toks) {
		c.i++
	}

	return t
}

func (c *cursor) done() bool {
	return c.i >= len(c.toks)
}

func (c *cursor) accept(kind token.Token) (Token, bool) {
	if t := c.peek(); t.Kind == kind {
		c.i++
		return t, true
	}

	return Token{}, false
}

func (c *cursor) expectIdent(what string) (Token, error) {
	t := c.peek()
	if t.Kind != token.IDENT {
		return Token{}, unexpected(t, what)
	}

	c.i++

	return t, nil
}

// text returns the verbatim source covered by the cursor.
func (c *cursor) text() string {
	return strings.TrimSpace(c.src[c.start:c.end])
}

// span returns the source range covered by the cursor.
func (c *cursor) span() Span {
	return Span{Start: c.start, End: c.end}
}

// group consumes a balanced bracket group that must open with open, and
// returns a cursor over its contents.
func (c *cursor) group(open token.Token) (*cursor, error) {
	first := c.peek()
	if first.Kind != open {
		what := fmt.Sprintf("%q", first.Lit)
		if first.Kind == eof {
			what = "end of directive"
		}

		return nil, &Error{
			Kind:    ErrDelimiterMismatch,
			Message: fmt.Sprintf("expected %q but found %s", open.String(), what),
			Span:    first.Span(),
		}
	}

	stack := []Token{first}

	for j := c.i + 1; j < len(c.toks); j++ {
		t := c.toks[j]

		switch {
		case isOpener(t.Kind):
			stack = append(stack, t)

		case isCloser(t.Kind):
			top := stack[len(stack)-1]
			if closers[top.Kind] != t.Kind {
				return nil, &Error{
					Kind:    ErrDelimiterMismatch,
					Message: fmt.Sprintf("mismatched delimiter: %q closed by %q", top.Lit, t.Lit),
					Span:    t.Span(),
				}
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				inner := &cursor{src: c.src, toks: c.toks[c.i+1 : j], start: first.End, end: t.Off}
				c.i = j + 1

				return inner, nil
			}
		}
	}

	top := stack[len(stack)-1]

	return nil, &Error{
		Kind:    ErrDelimiterMismatch,
		Message: fmt.Sprintf("unclosed %q", top.Lit),
		Span:    top.Span(),
	}
}

// split divides the cursor at top-level commas.
func (c *cursor) split() []*cursor {
	var parts []*cursor

	depth := 0
	from, start := 0, c.start

	for j, t := range c.toks {
		switch {
		case isOpener(t.Kind):
			depth++
		case isCloser(t.Kind):
			depth--
		case t.Kind == token.COMMA && depth == 0:
			parts = append(parts, &cursor{src: c.src, toks: c.toks[from:j], start: start, end: t.Off})
			from, start = j+1, t.End
		}
	}

	return append(parts, &cursor{src: c.src, toks: c.toks[from:], start: start, end: c.end})
}

// arrow finds a top-level "->" and returns the cursors on either side of it.
func (c *cursor) arrow() (before, after *cursor, ok bool) {
	depth := 0

	for j := 0; j+1 < len(c.toks); j++ {
		t := c.toks[j]

		switch {
		case isOpener(t.Kind):
			depth++
		case isCloser(t.Kind):
			depth--
		case depth == 0 && t.Kind == token.SUB && c.toks[j+1].Kind == token.GTR && c.toks[j+1].Off == t.End:
			before = &cursor{src: c.src, toks: c.toks[:j], start: c.start, end: t.Off}
			after = &cursor{src: c.src, toks: c.toks[j+2:], start: c.toks[j+1].End, end: c.end}

			return before, after, true
		}
	}

	return nil, nil, false
}
