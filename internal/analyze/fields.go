package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/packages"
)

// analyzeType builds the declaration of a struct type.
func (a *Analyzer) analyzeType(pkg *packages.Package, d declInfo, st *types.Struct) *TypeDecl {
	ts := NewTypeStringer(pkg.Types, d.file, importedPackages(pkg))
	td := newTypeDecl(pkg, d, ts)

	syntax, _ := d.spec.Type.(*ast.StructType)
	if syntax == nil || syntax.Fields == nil {
		td.Imports = ts.Imports
		return td
	}

	i := 0

	for _, af := range syntax.Fields.List {
		n := max(len(af.Names), 1)

		for j := range n {
			if i >= st.NumFields() {
				break
			}

			v := st.Field(i)
			i++

			if v.Name() == "_" {
				continue
			}

			var pos token.Pos
			if len(af.Names) > 0 {
				pos = af.Names[j].Pos()
			} else {
				pos = af.Type.Pos()
			}

			fd := a.classifyField(pkg.Types, ts, v.Type())
			fd.Name = v.Name()
			fd.Pos = pkg.Fset.Position(pos)
			fd.Embedded = v.Embedded()
			fd.Directive, fd.HasDirective, fd.DirectiveErr = a.fieldDirective(af)

			td.Fields = append(td.Fields, fd)
		}
	}

	td.Imports = ts.Imports

	return td
}

func newTypeDecl(pkg *packages.Package, d declInfo, ts *TypeStringer) *TypeDecl {
	td := &TypeDecl{
		Name:     d.obj.Name(),
		Exported: d.obj.Exported(),
		Pos:      pkg.Fset.Position(d.spec.Pos()),
		Obj:      d.obj,
	}

	if named, ok := d.obj.Type().(*types.Named); ok {
		tparams := named.TypeParams()
		for i := range tparams.Len() {
			tp := tparams.At(i)
			td.TypeParams = append(td.TypeParams, TypeParam{
				Name:       tp.Obj().Name(),
				Constraint: ts.TypeString(tp.Constraint()),
			})
		}
	}

	return td
}

// classifyField fills in everything the resolver needs to know about a
// field type.
func (a *Analyzer) classifyField(pkg *types.Package, ts *TypeStringer, t types.Type) FieldDecl {
	fd := FieldDecl{
		Type:   ts.TypeString(t),
		GoType: t,
		Marker: a.isMarker(t),
	}

	switch u := t.Underlying().(type) {
	case *types.Slice:
		fd.Container = ContainerSlice
		fd.Elem = ts.TypeString(u.Elem())
	case *types.Map:
		fd.Container = ContainerMap
		fd.Elem = ts.TypeString(u.Key())
		fd.Value = ts.TypeString(u.Elem())

		if isEmptyStruct(u.Elem()) {
			fd.Container = ContainerSet
		}
	}

	if convertible(pkg, t) {
		fd.Underlying = ts.TypeString(t.Underlying())
	}

	fd.Cloner = hasClone(pkg, t)

	return fd
}

// isMarker reports whether t is a zero-sized marker: a configured type name,
// an unnamed empty struct or a zero-length array.
func (a *Analyzer) isMarker(t types.Type) bool {
	switch t := t.(type) {
	case *types.Named:
		return slices.Contains(a.opts.Markers, t.Obj().Name())
	case *types.Alias:
		if slices.Contains(a.opts.Markers, t.Obj().Name()) {
			return true
		}

		return a.isMarker(types.Unalias(t))
	case *types.Struct:
		return t.NumFields() == 0
	case *types.Array:
		return t.Len() == 0
	}

	return false
}

func isEmptyStruct(t types.Type) bool {
	st, ok := t.Underlying().(*types.Struct)
	return ok && st.NumFields() == 0
}

// convertible reports whether a field of type t can take any argument whose
// type has the same underlying type. Type parameters, interfaces and structs
// are taken as declared, as are types whose underlying type cannot be
// spelled outside their package.
func convertible(pkg *types.Package, t types.Type) bool {
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}

	switch t.Underlying().(type) {
	case *types.Interface, *types.Struct:
		return false
	}

	return !mentionsHidden(pkg, t.Underlying(), 0)
}

// mentionsHidden reports whether t refers to an unexported type of another package.
func mentionsHidden(pkg *types.Package, t types.Type, depth int) bool {
	if depth > 8 {
		return false
	}

	depth++

	switch t := t.(type) {
	case *types.Named:
		if o := t.Obj(); o.Pkg() != nil && o.Pkg() != pkg && !o.Exported() {
			return true
		}

		args := t.TypeArgs()
		for i := range args.Len() {
			if mentionsHidden(pkg, args.At(i), depth) {
				return true
			}
		}
	case *types.Alias:
		return mentionsHidden(pkg, types.Unalias(t), depth)
	case *types.Pointer:
		return mentionsHidden(pkg, t.Elem(), depth)
	case *types.Slice:
		return mentionsHidden(pkg, t.Elem(), depth)
	case *types.Array:
		return mentionsHidden(pkg, t.Elem(), depth)
	case *types.Chan:
		return mentionsHidden(pkg, t.Elem(), depth)
	case *types.Map:
		return mentionsHidden(pkg, t.Key(), depth) || mentionsHidden(pkg, t.Elem(), depth)
	case *types.Signature:
		return tupleMentionsHidden(pkg, t.Params(), depth) || tupleMentionsHidden(pkg, t.Results(), depth)
	}

	return false
}

func tupleMentionsHidden(pkg *types.Package, tup *types.Tuple, depth int) bool {
	for i := range tup.Len() {
		if mentionsHidden(pkg, tup.At(i).Type(), depth) {
			return true
		}
	}

	return false
}

// hasClone reports whether t has a method Clone() t callable on an
// addressable value.
func hasClone(pkg *types.Package, t types.Type) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, true, pkg, "Clone")

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 || sig.Variadic() {
		return false
	}

	return types.Identical(sig.Results().At(0).Type(), t)
}

func importedPackages(pkg *packages.Package) map[string]*types.Package {
	out := make(map[string]*types.Package, len(pkg.Imports))
	for path, imp := range pkg.Imports {
		if imp.Types != nil {
			out[path] = imp.Types
		}
	}

	return out
}
