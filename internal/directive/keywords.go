package directive

import (
	"fmt"

	"ctor-generator/internal/match"
)

type keywordStatus int

const (
	keywordCurrent keywordStatus = iota
	keywordRenamed
	keywordRemoved
)

type keyword struct {
	name        string
	status      keywordStatus
	replacement string
}

// keywordSet is the vocabulary accepted at one position of the grammar.
// Retired keywords stay listed so they can be reported with their replacement.
type keywordSet []keyword

// Field policy keywords.
const (
	KeywordCloned  = "cloned"
	KeywordDefault = "default"
	KeywordExpr    = "expr"
	KeywordInto    = "into"
	KeywordIter    = "iter"
)

// Type-level keywords.
const (
	KeywordPub   = "pub"
	KeywordPriv  = "priv"
	KeywordConst = "const"
	KeywordPtr   = "ptr"
	KeywordNone  = "none"
	KeywordAll   = "all"
)

// Union keywords.
const (
	KeywordPrefix     = "prefix"
	KeywordVisibility = "visibility"
	KeywordVis        = "vis"
)

var (
	fieldKeywords = keywordSet{
		{name: KeywordCloned},
		{name: KeywordDefault},
		{name: KeywordExpr},
		{name: KeywordInto},
		{name: KeywordIter},
		{name: "impl", status: keywordRenamed, replacement: KeywordInto},
		{name: "value", status: keywordRemoved, replacement: KeywordExpr},
		{name: "method", status: keywordRemoved, replacement: KeywordExpr},
	}

	namedNestedKeywords = keywordSet{
		{name: KeywordAll},
		{name: KeywordInto},
	}

	defaultNestedKeywords = keywordSet{
		{name: KeywordAll},
	}

	unionKeywords = keywordSet{
		{name: KeywordPrefix},
		{name: KeywordVisibility},
		{name: KeywordVis},
	}

	visibilityKeywords = keywordSet{
		{name: KeywordPub},
		{name: KeywordPriv},
	}
)

// current lists the keywords that are accepted today.
func (s keywordSet) current() []string {
	var names []string

	for _, k := range s {
		if k.status == keywordCurrent {
			names = append(names, k.name)
		}
	}

	return names
}

// resolve maps an identifier token to an accepted keyword.
func (s keywordSet) resolve(tok Token) (string, error) {
	for _, k := range s {
		if k.name != tok.Lit {
			continue
		}

		switch k.status {
		case keywordRenamed:
			return "", &Error{
				Kind:       ErrRenamedProperty,
				Message:    fmt.Sprintf("Property %q has been renamed to %q", k.name, k.replacement),
				Span:       tok.Span(),
				Options:    s.current(),
				Suggestion: k.replacement,
			}
		case keywordRemoved:
			return "", &Error{
				Kind:       ErrRemovedProperty,
				Message:    fmt.Sprintf("Property %q has been removed, use %q instead", k.name, k.replacement),
				Span:       tok.Span(),
				Options:    s.current(),
				Suggestion: k.replacement,
			}
		default:
			return k.name, nil
		}
	}

	options := s.current()
	suggestion, _ := match.Suggest(tok.Lit, options)

	return "", invalidProperty(tok, options, suggestion)
}

// Keywords returns the accepted field policy keywords.
func Keywords() []string {
	return fieldKeywords.current()
}
