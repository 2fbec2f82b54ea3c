package directive

import (
	"go/parser"
	"go/token"
	"slices"
	"strconv"
	"strings"
)

// ParseFieldPolicy parses the arguments of a field-level directive:
//
//	policy := kind [ "=" ( INT | "[" INT { "," INT } "]" ) ]
//	kind   := "cloned" | "default" | "into" | "iter" "(" Type [ "," Type ] ")"
//	        | "expr" [ "!" ] "(" [ Type "->" ] Expr ")"
func ParseFieldPolicy(src string) (*FieldPolicy, error) {
	c, err := newCursor(src)
	if err != nil {
		return nil, err
	}

	if c.done() {
		return nil, syntaxError(Span{Start: 0, End: len(src)}, "expected a field policy")
	}

	name, err := c.expectIdent("field policy")
	if err != nil {
		return nil, err
	}

	kw, err := fieldKeywords.resolve(name)
	if err != nil {
		return nil, err
	}

	p := &FieldPolicy{Span: name.Span()}

	switch kw {
	case KeywordCloned:
		p.Kind = Cloned
	case KeywordDefault:
		p.Kind = DefaultValue
	case KeywordInto:
		p.Kind = Converted
	case KeywordIter:
		p.Kind = IteratorCollected
		if err := parseIter(c, p); err != nil {
			return nil, err
		}
	case KeywordExpr:
		p.Kind = Expression
		if err := parseExpr(c, p); err != nil {
			return nil, err
		}
	}

	p.Span.End = c.peek().Off

	if _, ok := c.accept(token.ASSIGN); ok {
		apps, err := parseApplications(c)
		if err != nil {
			return nil, err
		}

		p.Applications = apps
	}

	if !c.done() {
		return nil, unexpected(c.peek(), `"="`)
	}

	return p, nil
}

func parseIter(c *cursor, p *FieldPolicy) error {
	g, err := c.group(token.LPAREN)
	if err != nil {
		return err
	}

	parts := g.split()
	if len(parts) > 2 {
		return syntaxError(g.span(), "%s takes one element type or a key and a value type", KeywordIter)
	}

	texts := make([]string, len(parts))

	for i, part := range parts {
		if texts[i], err = goType(part); err != nil {
			return err
		}
	}

	p.Elem = texts[0]
	if len(texts) == 2 {
		p.Value = texts[1]
	}

	return nil
}

func parseExpr(c *cursor, p *FieldPolicy) error {
	if _, ok := c.accept(token.NOT); ok {
		p.SelfReferencing = true
	}

	g, err := c.group(token.LPAREN)
	if err != nil {
		return err
	}

	body := g
	if before, after, ok := g.arrow(); ok {
		if p.InputType, err = goType(before); err != nil {
			return err
		}

		body = after
	}

	text := body.text()
	if text == "" {
		return syntaxError(body.span(), "%s requires an expression", KeywordExpr)
	}

	if _, err := parser.ParseExpr(text); err != nil {
		return syntaxError(body.span(), "invalid expression %q: %v", text, err)
	}

	p.Body = text

	return nil
}

// goType validates that the cursor holds a Go type and returns its text.
func goType(c *cursor) (string, error) {
	text := c.text()
	if text == "" {
		return "", syntaxError(c.span(), "expected a type")
	}

	if _, err := parser.ParseExpr(text); err != nil {
		return "", syntaxError(c.span(), "invalid type %q: %v", text, err)
	}

	return text, nil
}

func parseApplications(c *cursor) ([]int, error) {
	t := c.peek()

	switch t.Kind {
	case token.INT:
		c.next()

		n, err := parseIndex(t)
		if err != nil {
			return nil, err
		}

		return []int{n}, nil

	case token.LBRACK, token.LPAREN, token.LBRACE:
		g, err := c.group(token.LBRACK)
		if err != nil {
			return nil, err
		}

		var apps []int

		for !g.done() {
			it := g.next()
			if it.Kind != token.INT {
				return nil, unexpected(it, "constructor index")
			}

			n, err := parseIndex(it)
			if err != nil {
				return nil, err
			}

			apps = append(apps, n)

			if _, ok := g.accept(token.COMMA); !ok {
				break
			}
		}

		if !g.done() {
			return nil, unexpected(g.peek(), `","`)
		}

		if len(apps) == 0 {
			return nil, syntaxError(g.span(), "expected at least one constructor index")
		}

		slices.Sort(apps)

		return slices.Compact(apps), nil

	default:
		return nil, unexpected(t, "constructor index")
	}
}

// parseIndex reads a decimal constructor index. Digit separators are allowed,
// radix prefixes are not, and a leading zero does not make it octal.
func parseIndex(t Token) (int, error) {
	n, err := strconv.ParseInt(strings.ReplaceAll(t.Lit, "_", ""), 10, 32)
	if err != nil || n < 0 {
		return 0, syntaxError(t.Span(), "invalid constructor index %q", t.Lit)
	}

	return int(n), nil
}
