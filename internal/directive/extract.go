package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"reflect"
	"strconv"
	"strings"
)

// DefaultName is the directive name recognized unless configured otherwise.
const DefaultName = "ctor"

// Directive is a directive found in a comment or a struct tag.
type Directive struct {
	// Args is the text between the outer parentheses. It is empty for a
	// bare directive.
	Args string
	// Bare is set for a directive without arguments.
	Bare bool
	// Pos is the source position of Args.
	Pos token.Pos
	// Exact is set when offsets into Args map one-to-one onto source columns.
	// Struct tags are quoted, so only their start is known.
	Exact bool
}

// PosOf maps an offset within Args to a source position.
func (d Directive) PosOf(off int) token.Pos {
	if !d.Pos.IsValid() || !d.Exact {
		return d.Pos
	}

	return d.Pos + token.Pos(off)
}

// FromComments returns the first directive named name in the comment groups.
// The directive is a line comment "//name" or "//name(args)". gofmt rewrites
// such lines in top-level doc comments to "// name(args)", so that form is
// accepted too.
func FromComments(name string, groups ...*ast.CommentGroup) (Directive, bool, error) {
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			d, ok, err := fromComment(name, c)
			if ok || err != nil {
				return d, ok, err
			}
		}
	}

	return Directive{}, false, nil
}

func fromComment(name string, c *ast.Comment) (Directive, bool, error) {
	prefix := "//" + name

	text, ok := strings.CutPrefix(c.Text, prefix)
	if !ok {
		prefix = "// " + name

		if text, ok = strings.CutPrefix(c.Text, prefix); !ok {
			return Directive{}, false, nil
		}
	}

	rest := strings.TrimRight(text, " \t")
	if rest == "" {
		return Directive{Bare: true, Pos: c.Slash}, true, nil
	}

	argsPos := c.Slash + token.Pos(len(prefix)+1)

	switch rest[0] {
	case '(':
	case '[', '{':
		return Directive{}, false, &PositionedError{
			Err: &Error{
				Kind:    ErrDelimiterMismatch,
				Message: fmt.Sprintf(`directive arguments must be enclosed in "(" and ")", found %q`, rest[0]),
				Span:    Span{Start: 0, End: 1},
			},
			Pos: argsPos - 1,
		}
	default:
		// Another word sharing the prefix, e.g. "//ctorx".
		return Directive{}, false, nil
	}

	if !strings.HasSuffix(rest, ")") {
		return Directive{}, false, &PositionedError{
			Err: &Error{
				Kind:    ErrDelimiterMismatch,
				Message: `directive arguments must be enclosed in "(" and ")"`,
				Span:    Span{Start: 0, End: len(rest)},
			},
			Pos: argsPos - 1,
		}
	}

	return Directive{
		Args:  rest[1 : len(rest)-1],
		Pos:   argsPos,
		Exact: true,
	}, true, nil
}

// FromTag returns the directive stored under key name in a struct field tag.
func FromTag(name string, tag *ast.BasicLit) (Directive, bool) {
	if tag == nil {
		return Directive{}, false
	}

	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return Directive{}, false
	}

	args, ok := reflect.StructTag(raw).Lookup(name)
	if !ok {
		return Directive{}, false
	}

	return Directive{Args: args, Pos: tag.Pos()}, true
}

// PositionedError is a directive error whose span has been resolved to a
// source position.
type PositionedError struct {
	Err *Error
	Pos token.Pos
}

func (e *PositionedError) Error() string {
	return e.Err.Message
}

func (e *PositionedError) Unwrap() error {
	return e.Err
}

// Locate anchors err at its source position if it is a directive error.
func (d Directive) Locate(err error) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}

	return &PositionedError{Err: e, Pos: d.PosOf(e.Span.Start)}
}
