package analyze

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"

	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/directive"
)

// analyzeUnion collects the cases of an annotated interface. A case is a
// non-generic defined type of the same package implementing the interface,
// by value or by pointer. Cases keep declaration order.
func (a *Analyzer) analyzeUnion(
	pkg *packages.Package,
	d declInfo,
	iface *types.Interface,
	decls []declInfo,
	diags *diagnostic.Diagnostics,
) *UnionDecl {
	name := d.obj.Name()
	pos := pkg.Fset.Position(d.spec.Pos())

	if named, ok := d.obj.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
		diags.AddError(diagnostic.CodeUnsupportedShape, "generic interfaces cannot be unions", pos, name, "")
		return nil
	}

	if !iface.IsMethodSet() {
		diags.AddError(diagnostic.CodeUnsupportedShape, "constraint interfaces cannot be unions", pos, name, "")
		return nil
	}

	if iface.NumMethods() == 0 {
		diags.AddError(diagnostic.CodeUnsupportedShape,
			"a union interface must declare at least one method", pos, name, "")

		return nil
	}

	union := &UnionDecl{
		Name:     name,
		Exported: d.obj.Exported(),
		Pos:      pos,
	}

	for _, cd := range decls {
		if cd.obj == d.obj {
			continue
		}

		c := a.analyzeCase(pkg, cd, iface, name, diags)
		if c != nil {
			union.Cases = append(union.Cases, c)
		}
	}

	if len(union.Cases) == 0 {
		diags.AddWarning(diagnostic.CodeNoFactories,
			fmt.Sprintf("no type in package %s implements %s", pkg.Name, name), pos, name, "")
	}

	return union
}

func (a *Analyzer) analyzeCase(
	pkg *packages.Package,
	cd declInfo,
	iface *types.Interface,
	unionName string,
	diags *diagnostic.Diagnostics,
) *CaseDecl {
	named, ok := cd.obj.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return nil
	}

	if types.IsInterface(named) {
		return nil
	}

	c := &CaseDecl{}

	switch {
	case types.Implements(named, iface):
	case types.Implements(types.NewPointer(named), iface):
		c.PointerReceiver = true
	default:
		return nil
	}

	path := FieldPath(unionName, cd.obj.Name())

	if st, ok := named.Underlying().(*types.Struct); ok {
		c.TypeDecl = a.analyzeType(pkg, cd, st)
		c.Shape = ShapeNamed

		if len(c.Fields) == 0 {
			c.Shape = ShapeEmpty
		}
	} else {
		if c.PointerReceiver {
			diags.AddError(diagnostic.CodeUnsupportedShape,
				fmt.Sprintf("%s implements %s only by pointer and is not a struct", cd.obj.Name(), unionName),
				pkg.Fset.Position(cd.spec.Pos()), path, "")

			return nil
		}

		ts := NewTypeStringer(pkg.Types, cd.file, importedPackages(pkg))
		c.TypeDecl = newTypeDecl(pkg, cd, ts)
		c.Shape = ShapePositional

		fd := a.classifyField(pkg.Types, ts, named.Underlying())
		fd.Pos = c.Pos
		c.Fields = []FieldDecl{fd}
		c.Imports = ts.Imports
	}

	c.Directive, c.HasDirective, c.DirectiveErr = directive.FromComments(a.opts.Directive, cd.doc)

	return c
}
