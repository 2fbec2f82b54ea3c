package analyze

import (
	"go/ast"
	"go/types"
	"strconv"

	"ctor-generator/internal/common"
)

// TypeStringer renders go/types types the way a given source file spells
// them: same-package types are unqualified and imported packages use the
// file's import names. Packages the file does not import get a fresh name,
// recorded in Imports so the generated file can import them.
type TypeStringer struct {
	pkg *types.Package
	// Imports maps package names to import paths.
	Imports map[string]string
	byPath  map[string]string
}

// NewTypeStringer creates a TypeStringer for a file of pkg.
func NewTypeStringer(pkg *types.Package, file *ast.File, imported map[string]*types.Package) *TypeStringer {
	s := &TypeStringer{
		pkg:     pkg,
		Imports: make(map[string]string),
		byPath:  make(map[string]string),
	}

	if file == nil {
		return s
	}

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		var name string

		switch {
		case spec.Name != nil:
			name = spec.Name.Name
		case imported[path] != nil:
			name = imported[path].Name()
		default:
			name = common.PkgAlias(path)
		}

		if name == "_" || name == "." {
			continue
		}

		s.Imports[name] = path
		s.byPath[path] = name
	}

	return s
}

// TypeString returns the source text of t.
func (s *TypeStringer) TypeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

func (s *TypeStringer) qualifier(p *types.Package) string {
	if p == nil || p == s.pkg {
		return ""
	}

	if name, ok := s.byPath[p.Path()]; ok {
		return name
	}

	name := p.Name()
	for i := 2; s.Imports[name] != ""; i++ {
		name = p.Name() + strconv.Itoa(i)
	}

	s.Imports[name] = p.Path()
	s.byPath[p.Path()] = name

	return name
}

// FieldPath builds a readable path for diagnostics, e.g. "Shape.Circle.Radius".
func FieldPath(parts ...string) string {
	out := ""

	for _, p := range parts {
		if p == "" {
			continue
		}

		if out != "" {
			out += "."
		}

		out += p
	}

	return out
}
