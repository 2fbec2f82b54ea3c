package plan

import (
	"go/ast"
	"go/parser"

	"ctor-generator/internal/directive"
)

// step is one resolved field of a factory, in declaration order.
type step struct {
	field Field
	res   Resolution
}

// computed reports whether the value is more than the field's own parameter.
func (s step) computed() bool {
	return s.res.Value != "" && s.res.Value != s.field.Param
}

// bind records the assignments of f. Expressions see the fields declared
// before them under their parameter names: once any expression refers to
// an earlier computed or zero-valued field, every computed value is bound
// to a local in declaration order and the fields are assigned from the
// locals. Without such references values are assigned directly.
func (f *Factory) bind(steps []step) {
	referenced := laterReferences(steps)

	bindAll := false

	for i, s := range steps {
		if referenced[i] && (s.computed() || s.res.Value == "") {
			bindAll = true
			break
		}
	}

	for i, s := range steps {
		name := s.field.Param

		switch {
		case s.res.Value == "":
			f.Zeroed = append(f.Zeroed, s.field.Decl.Name)

			if bindAll && referenced[i] {
				f.Locals = append(f.Locals, Local{Name: name, Type: s.field.Decl.Type})
			}

			continue
		case bindAll && s.computed():
			local := Local{Name: name, Value: s.res.Value}
			if s.res.Kind == directive.Expression {
				local.Type = s.field.Decl.Type
			}

			f.Locals = append(f.Locals, local)
			f.Assignments = append(f.Assignments, Assignment{
				Field: s.field.Decl.Name, Value: s.res.Value, Kind: s.res.Kind, Local: name,
			})
		default:
			f.Assignments = append(f.Assignments, Assignment{Field: s.field.Decl.Name, Value: s.res.Value, Kind: s.res.Kind})
		}
	}
}

// laterReferences marks the steps whose parameter name appears in the
// expression of a later step.
func laterReferences(steps []step) []bool {
	referenced := make([]bool, len(steps))

	for j, s := range steps {
		if s.res.Kind != directive.Expression || s.res.Value == "" {
			continue
		}

		idents := identifiers(s.res.Value)

		for i := range j {
			if idents[steps[i].field.Param] {
				referenced[i] = true
			}
		}
	}

	return referenced
}

// identifiers returns the identifiers of a Go expression. Unparsable
// source yields none; formatting reports it later.
func identifiers(src string) map[string]bool {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil
	}

	idents := make(map[string]bool)

	ast.Inspect(expr, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			idents[id.Name] = true
		}

		return true
	})

	return idents
}
