package plan

import (
	"fmt"
	"go/types"
	"strings"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/directive"
)

// Resolution is how one field is initialized by one factory.
type Resolution struct {
	Kind directive.PolicyKind
	// Param is the parameter the caller provides, if any.
	Param *Parameter
	// TypeParam is the conversion type parameter of an into policy, if any.
	TypeParam *TypeParam
	// Value is the initializer. Empty leaves the field at its zero value.
	Value string
	// Imports lists standard library packages the initializer needs.
	Imports []string
}

// NeedsParam reports whether the caller must provide a value.
func (r Resolution) NeedsParam() bool {
	return r.Param != nil
}

// Constant reports whether the initializer can appear in a constant-only
// factory: no clone, collection or generic conversion.
func (r Resolution) Constant() bool {
	switch r.Kind {
	case directive.Cloned, directive.IteratorCollected:
		return false
	case directive.Converted:
		return r.TypeParam == nil
	default:
		return true
	}
}

// ResolveError is a field that cannot be initialized as requested.
type ResolveError struct {
	Code    string
	Message string
}

func (e *ResolveError) Error() string {
	return e.Message
}

// Field is a struct field ready for resolution: the analyzed declaration,
// its parsed policy (nil when none) and the names chosen for its parameter
// and conversion type parameter.
type Field struct {
	Decl      *analyze.FieldDecl
	Policy    *directive.FieldPolicy
	Param     string
	TypeParam string
}

// ResolveField decides how field f is initialized by the factory req at
// position index. Rules are tried in order:
//
//  1. no policy, default(all): zero value
//  2. no policy, name(into): conversion
//  3. no policy, marker type: zero value
//  4. no policy: parameter of the declared type
//  5. default(all) overrides policies that take a value from the caller
//  6. a policy targeting other factories: as 4, or 3 for markers
//  7. the policy itself
func ResolveField(f Field, req directive.FactoryRequest, index int) (Resolution, error) {
	p := f.Policy

	switch {
	case p == nil && req.DefaultAll:
		return zeroValue(), nil
	case p == nil && req.IntoAll:
		return resolveConverted(f), nil
	case p == nil && f.Decl.Marker:
		return zeroValue(), nil
	case p == nil:
		return passThrough(f), nil
	case req.DefaultAll && (!p.AppliesTo(index) || p.NeedsInput()):
		return zeroValue(), nil
	case !p.AppliesTo(index) && f.Decl.Marker:
		return zeroValue(), nil
	case !p.AppliesTo(index):
		return passThrough(f), nil
	}

	switch p.Kind {
	case directive.PassThrough:
		return passThrough(f), nil
	case directive.Cloned:
		return resolveCloned(f), nil
	case directive.Converted:
		return resolveConverted(f), nil
	case directive.IteratorCollected:
		return resolveIter(f)
	case directive.Expression:
		return resolveExpr(f), nil
	case directive.DefaultValue:
		return zeroValue(), nil
	default:
		return Resolution{}, fmt.Errorf("unknown policy kind %d", p.Kind)
	}
}

func zeroValue() Resolution {
	return Resolution{Kind: directive.DefaultValue}
}

func passThrough(f Field) Resolution {
	return Resolution{
		Kind:  directive.PassThrough,
		Param: &Parameter{Name: f.Param, Type: f.Decl.Type, Field: f.Decl.Name},
		Value: f.Param,
	}
}

// resolveCloned takes a pointer and stores an independent copy: a Clone
// method when the type has one, a shallow slice or map copy, or a plain
// dereference.
func resolveCloned(f Field) Resolution {
	r := Resolution{
		Kind:  directive.Cloned,
		Param: &Parameter{Name: f.Param, Type: "*" + f.Decl.Type, Field: f.Decl.Name},
	}

	switch {
	case f.Decl.Cloner && isInterface(f.Decl):
		r.Value = "(*" + f.Param + ").Clone()"
	case f.Decl.Cloner:
		r.Value = f.Param + ".Clone()"
	case f.Decl.Container == analyze.ContainerSlice:
		r.Value = "slices.Clone(*" + f.Param + ")"
		r.Imports = []string{"slices"}
	case f.Decl.Container == analyze.ContainerMap || f.Decl.Container == analyze.ContainerSet:
		r.Value = "maps.Clone(*" + f.Param + ")"
		r.Imports = []string{"maps"}
	default:
		r.Value = "*" + f.Param
	}

	return r
}

// resolveConverted accepts any type with the field's underlying type. Types
// without a usable underlying type are taken as declared.
func resolveConverted(f Field) Resolution {
	if f.Decl.Underlying == "" || f.TypeParam == "" {
		r := passThrough(f)
		r.Kind = directive.Converted

		return r
	}

	return Resolution{
		Kind:      directive.Converted,
		Param:     &Parameter{Name: f.Param, Type: f.TypeParam, Field: f.Decl.Name},
		TypeParam: &TypeParam{Name: f.TypeParam, Constraint: "~" + f.Decl.Underlying},
		Value:     Conversion(f.Decl.Type, f.Param),
	}
}

func resolveIter(f Field) (Resolution, error) {
	p := f.Policy
	r := Resolution{Kind: directive.IteratorCollected}

	switch f.Decl.Container {
	case analyze.ContainerSlice:
		if p.Value != "" {
			return Resolution{}, iterError("iter on slice field %s takes a single element type", f.Decl.Name)
		}

		r.Param = &Parameter{Name: f.Param, Type: "iter.Seq[" + p.Elem + "]", Field: f.Decl.Name}
		r.Value = "slices.Collect(" + f.Param + ")"
		r.Imports = []string{"iter", "slices"}
	case analyze.ContainerMap:
		if p.Value == "" {
			return Resolution{}, iterError("iter on map field %s takes key and value types", f.Decl.Name)
		}

		r.Param = &Parameter{Name: f.Param, Type: "iter.Seq2[" + p.Elem + ", " + p.Value + "]", Field: f.Decl.Name}
		r.Value = "maps.Collect(" + f.Param + ")"
		r.Imports = []string{"iter", "maps"}
	case analyze.ContainerSet:
		if p.Value != "" {
			r.Param = &Parameter{Name: f.Param, Type: "iter.Seq2[" + p.Elem + ", " + p.Value + "]", Field: f.Decl.Name}
			r.Value = "maps.Collect(" + f.Param + ")"
			r.Imports = []string{"iter", "maps"}

			break
		}

		r.Param = &Parameter{Name: f.Param, Type: "iter.Seq[" + p.Elem + "]", Field: f.Decl.Name}
		r.Value = collectSet(f.Decl.Type, p.Elem, f.Param)
		r.Imports = []string{"iter"}
	default:
		return Resolution{}, iterError("iter requires a slice or map field, %s is %s", f.Decl.Name, f.Decl.Type)
	}

	return r, nil
}

// collectSet builds a set from a sequence of keys.
func collectSet(setType, elem, param string) string {
	return fmt.Sprintf("func(seq iter.Seq[%s]) %s { s := make(%s); for k := range seq { s[k] = struct{}{} }; return s }(%s)",
		elem, setType, setType, param)
}

func iterError(format string, args ...any) *ResolveError {
	return &ResolveError{Code: diagnostic.CodeUnsupportedIterTarget, Message: fmt.Sprintf(format, args...)}
}

// resolveExpr copies the expression verbatim. The body refers to the
// caller's value through the field's parameter name.
func resolveExpr(f Field) Resolution {
	p := f.Policy
	r := Resolution{Kind: directive.Expression, Value: p.Body}

	switch {
	case p.InputType != "":
		r.Param = &Parameter{Name: f.Param, Type: p.InputType, Field: f.Decl.Name}
	case p.SelfReferencing:
		r.Param = &Parameter{Name: f.Param, Type: f.Decl.Type, Field: f.Decl.Name}
	}

	return r
}

// Conversion renders the conversion of value to typ, parenthesizing types
// that would otherwise bind differently.
func Conversion(typ, value string) string {
	if strings.HasPrefix(typ, "*") || strings.HasPrefix(typ, "<-") ||
		strings.HasPrefix(typ, "func") || strings.HasPrefix(typ, "chan") {
		typ = "(" + typ + ")"
	}

	return typ + "(" + value + ")"
}

func isInterface(f *analyze.FieldDecl) bool {
	return f.GoType != nil && types.IsInterface(f.GoType)
}
