package directive

import (
	"fmt"
	"strings"

	"ctor-generator/internal/diagnostic"
)

// ErrorKind classifies a malformed directive.
type ErrorKind int

const (
	// ErrInvalidProperty reports an unknown keyword.
	ErrInvalidProperty ErrorKind = iota
	// ErrDelimiterMismatch reports a missing, wrong or unbalanced bracket.
	ErrDelimiterMismatch
	// ErrRenamedProperty reports a keyword that was renamed.
	ErrRenamedProperty
	// ErrRemovedProperty reports a keyword that no longer exists.
	ErrRemovedProperty
	// ErrSyntax reports any other malformed input.
	ErrSyntax
	// ErrUnsupportedKeyword reports a keyword used where it has no meaning.
	ErrUnsupportedKeyword
)

// Code returns the diagnostic code for the kind.
func (k ErrorKind) Code() string {
	switch k {
	case ErrInvalidProperty:
		return diagnostic.CodeInvalidProperty
	case ErrDelimiterMismatch:
		return diagnostic.CodeDelimiterMismatch
	case ErrRenamedProperty:
		return diagnostic.CodeRenamedProperty
	case ErrRemovedProperty:
		return diagnostic.CodeRemovedProperty
	case ErrUnsupportedKeyword:
		return diagnostic.CodeUnsupportedKeyword
	default:
		return diagnostic.CodeSyntax
	}
}

// Span is a half-open byte range within the directive text.
type Span struct {
	Start int
	End   int
}

// Error is a malformed directive, anchored at the offending token.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    Span
	// Options enumerates the valid alternatives, if any.
	Options []string
	// Suggestion is the closest valid alternative, if one is close enough.
	Suggestion string
}

func (e *Error) Error() string {
	return e.Message
}

const propertyErrFormat = `Unexpected property: "%s" (must be one of the following: "%s")`

func invalidProperty(tok Token, options []string, suggestion string) *Error {
	return &Error{
		Kind:       ErrInvalidProperty,
		Message:    fmt.Sprintf(propertyErrFormat, tok.Lit, strings.Join(options, `", "`)),
		Span:       tok.Span(),
		Options:    options,
		Suggestion: suggestion,
	}
}

func syntaxError(span Span, format string, args ...any) *Error {
	return &Error{
		Kind:    ErrSyntax,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// unexpected reports a token that does not fit the grammar. Stray closing
// brackets are delimiter errors, everything else is a syntax error.
func unexpected(tok Token, want string) *Error {
	switch {
	case tok.Kind == eof:
		return syntaxError(tok.Span(), "unexpected end of directive, expected %s", want)
	case isCloser(tok.Kind):
		return &Error{
			Kind:    ErrDelimiterMismatch,
			Message: fmt.Sprintf("unexpected %q, expected %s", tok.Lit, want),
			Span:    tok.Span(),
		}
	default:
		return syntaxError(tok.Span(), "unexpected %q, expected %s", tok.Lit, want)
	}
}
