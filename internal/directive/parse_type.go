package directive

import (
	"fmt"
	"go/token"
)

// ParseTypeConfig parses the arguments of a type-level directive:
//
//	entry { "," entry } [","]
//	entry := { "pub" | "priv" | "const" | "ptr" } ident [ "(" nested { "," nested } ")" ] | "none"
//
// "default" as the identifier requests the default constructor, and
// "none" is only accepted at CaseLevel.
func ParseTypeConfig(src string, level Level) (*TypeConfig, error) {
	c, err := newCursor(src)
	if err != nil {
		return nil, err
	}

	if c.done() {
		return nil, syntaxError(Span{Start: 0, End: len(src)}, "expected at least one constructor")
	}

	cfg := &TypeConfig{}

	for {
		entryStart := c.peek()

		req, none, err := parseEntry(c, level)
		if err != nil {
			return nil, err
		}

		if cfg.None || (none && len(cfg.Requests) > 0) {
			return nil, syntaxError(entryStart.Span(), "%q cannot be combined with other constructors", KeywordNone)
		}

		if none {
			cfg.None = true
		} else {
			cfg.Requests = append(cfg.Requests, req)
		}

		if _, ok := c.accept(token.COMMA); !ok || c.done() {
			break
		}
	}

	if !c.done() {
		return nil, unexpected(c.peek(), `","`)
	}

	return cfg, nil
}

func parseEntry(c *cursor, level Level) (FactoryRequest, bool, error) {
	var req FactoryRequest

	start := c.peek().Off
	seen := make(map[string]bool)

modifiers:
	for {
		t := c.peek()
		if t.Kind != token.IDENT {
			break
		}

		switch t.Lit {
		case KeywordPub, KeywordPriv, KeywordConst, KeywordPtr:
		default:
			break modifiers
		}

		c.next()

		if seen[t.Lit] {
			return req, false, syntaxError(t.Span(), "modifier %q repeated", t.Lit)
		}

		seen[t.Lit] = true

		switch t.Lit {
		case KeywordPub:
			if seen[KeywordPriv] {
				return req, false, syntaxError(t.Span(), "conflicting visibility modifiers")
			}

			req.Visibility = Exported
		case KeywordPriv:
			if seen[KeywordPub] {
				return req, false, syntaxError(t.Span(), "conflicting visibility modifiers")
			}

			req.Visibility = Unexported
		case KeywordConst:
			req.Const = true
		case KeywordPtr:
			req.Pointer = true
		}
	}

	name, err := c.expectIdent("constructor name")
	if err != nil {
		return req, false, err
	}

	req.Span = Span{Start: start, End: name.End}

	switch name.Lit {
	case KeywordNone:
		if level != CaseLevel {
			return req, false, &Error{
				Kind:    ErrUnsupportedKeyword,
				Message: fmt.Sprintf("%q is only valid on union cases", KeywordNone),
				Span:    name.Span(),
			}
		}

		if len(seen) > 0 {
			return req, false, syntaxError(req.Span, "%q takes no modifiers", KeywordNone)
		}

		return req, true, nil

	case KeywordDefault:
		req.Default = true
	}

	req.Name = name.Lit

	if !isOpener(c.peek().Kind) {
		return req, false, nil
	}

	g, err := c.group(token.LPAREN)
	if err != nil {
		return req, false, err
	}

	nested := namedNestedKeywords
	if req.Default {
		nested = defaultNestedKeywords
	}

	for !g.done() {
		t, err := g.expectIdent("property")
		if err != nil {
			return req, false, err
		}

		kw, err := nested.resolve(t)
		if err != nil {
			return req, false, err
		}

		switch kw {
		case KeywordAll:
			req.DefaultAll = true
		case KeywordInto:
			req.IntoAll = true
		}

		if _, ok := g.accept(token.COMMA); !ok {
			break
		}
	}

	if !g.done() {
		return req, false, unexpected(g.peek(), `","`)
	}

	req.Span.End = g.end + 1

	return req, false, nil
}
