package directive

import (
	"go/token"
)

// ParseUnionConfig parses the arguments of a union directive:
//
//	item { "," item }
//	item := "prefix" "=" ident | ( "vis" | "visibility" ) "=" ( "pub" | "priv" )
func ParseUnionConfig(src string) (*UnionConfig, error) {
	c, err := newCursor(src)
	if err != nil {
		return nil, err
	}

	cfg := DefaultUnionConfig()

	for !c.done() {
		key, err := c.expectIdent("property")
		if err != nil {
			return nil, err
		}

		kw, err := unionKeywords.resolve(key)
		if err != nil {
			return nil, err
		}

		if _, ok := c.accept(token.ASSIGN); !ok {
			return nil, unexpected(c.peek(), `"="`)
		}

		value, err := c.expectIdent("value")
		if err != nil {
			return nil, err
		}

		switch kw {
		case KeywordPrefix:
			cfg.Prefix = value.Lit
		case KeywordVis, KeywordVisibility:
			vis, err := visibilityKeywords.resolve(value)
			if err != nil {
				return nil, err
			}

			cfg.Visibility = Exported
			if vis == KeywordPriv {
				cfg.Visibility = Unexported
			}
		}

		if _, ok := c.accept(token.COMMA); !ok {
			break
		}
	}

	if !c.done() {
		return nil, unexpected(c.peek(), `","`)
	}

	return cfg, nil
}
