package plan

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/directive"
)

type fieldOpt func(*analyze.FieldDecl)

func field(name, typ string, opts ...fieldOpt) analyze.FieldDecl {
	fd := analyze.FieldDecl{Name: name, Type: typ}
	for _, o := range opts {
		o(&fd)
	}

	return fd
}

func policy(args string) fieldOpt {
	return func(fd *analyze.FieldDecl) {
		fd.Directive = directive.Directive{Args: args, Exact: true}
		fd.HasDirective = true
	}
}

// unreadable marks a field whose directive could not be extracted.
func unreadable(err error) fieldOpt {
	return func(fd *analyze.FieldDecl) { fd.DirectiveErr = err }
}

func underlying(u string) fieldOpt {
	return func(fd *analyze.FieldDecl) { fd.Underlying = u }
}

func container(kind analyze.ContainerKind, elem, value string) fieldOpt {
	return func(fd *analyze.FieldDecl) {
		fd.Container = kind
		fd.Elem = elem
		fd.Value = value
	}
}

func marker() fieldOpt {
	return func(fd *analyze.FieldDecl) { fd.Marker = true }
}

func cloner() fieldOpt {
	return func(fd *analyze.FieldDecl) { fd.Cloner = true }
}

var line = 0

func nextPos() token.Position {
	line++
	return token.Position{Filename: "types.go", Line: line, Column: 1, Offset: line * 100}
}

// structDecl builds an annotated struct. An empty args is a bare directive.
func structDecl(name, args string, fields ...analyze.FieldDecl) *analyze.TypeDecl {
	return &analyze.TypeDecl{
		Name:         name,
		Exported:     token.IsExported(name),
		Pos:          nextPos(),
		Directive:    directive.Directive{Args: args, Bare: args == "", Exact: true},
		HasDirective: true,
		Fields:       fields,
		Imports:      map[string]string{},
	}
}

func newPkg(structs ...*analyze.TypeDecl) *analyze.Package {
	return &analyze.Package{
		Path:     "example.com/p",
		Name:     "p",
		Fset:     token.NewFileSet(),
		Structs:  structs,
		Existing: map[string]token.Position{},
	}
}

func onlyType(t *testing.T, p *Plan) *TypePlan {
	t.Helper()
	require.Len(t, p.Types, 1)

	return p.Types[0]
}

func factoryByName(t *testing.T, tp *TypePlan, name string) *Factory {
	t.Helper()

	for _, f := range tp.All() {
		if f.Name == name {
			return f
		}
	}

	require.Failf(t, "factory not found", "%s", name)

	return nil
}

func errorCodes(p *Plan) []string {
	var out []string
	for _, d := range p.Diagnostics.Errors {
		out = append(out, d.Code)
	}

	return out
}
