package analyze

import (
	"go/token"
	"go/types"

	"ctor-generator/internal/common"
	"ctor-generator/internal/directive"
)

// Package is a loaded Go package with its annotated declarations.
type Package struct {
	Path string // e.g., "ctor-generator/examples/shapes"
	Name string // e.g., "shapes"
	Dir  string

	Fset *token.FileSet

	// Structs are the annotated struct types in source order. Union cases
	// are listed on their union instead.
	Structs []*TypeDecl
	// Unions are the annotated interfaces in source order.
	Unions []*UnionDecl

	// Existing maps package-level names declared outside the output file to
	// their declaration position.
	Existing map[string]token.Position
}

// TypeDecl describes an annotated (or selected) type declaration.
type TypeDecl struct {
	Name     string
	Exported bool
	Pos      token.Position

	// Directive is the type-level directive. HasDirective is false for types
	// selected on the command line without one.
	Directive    directive.Directive
	HasDirective bool
	// DirectiveErr is set when the directive of a union case could not be
	// read. Annotated structs with unreadable directives are not analyzed.
	DirectiveErr error

	TypeParams []TypeParam
	Fields     []FieldDecl

	// Imports maps package names usable in generated code to import paths.
	Imports map[string]string

	Obj *types.TypeName
}

// TypeParam is a type parameter of a generic type.
type TypeParam struct {
	Name       string
	Constraint string
}

// TypeArgs returns the instantiation of the declaration with its own type
// parameters, e.g. "Pair[K, V]".
func (t *TypeDecl) TypeArgs() string {
	if len(t.TypeParams) == 0 {
		return t.Name
	}

	s := t.Name + "["
	for i, tp := range t.TypeParams {
		if i > 0 {
			s += ", "
		}

		s += tp.Name
	}

	return s + "]"
}

// ContainerKind classifies the core type of a field for iterator collection.
type ContainerKind int

const (
	ContainerNone ContainerKind = iota
	ContainerSlice
	ContainerMap
	// ContainerSet is a map whose values are empty structs.
	ContainerSet
)

// String returns a human-readable representation of the ContainerKind.
func (k ContainerKind) String() string {
	switch k {
	case ContainerNone:
		return "none"
	case ContainerSlice:
		return "slice"
	case ContainerMap:
		return "map"
	case ContainerSet:
		return "set"
	default:
		return common.UnknownStr
	}
}

// FieldDecl describes a struct field.
type FieldDecl struct {
	Name     string // Go field name
	Type     string // Type as written in generated code
	Pos      token.Position
	Embedded bool

	// Directive is the field-level directive, if any.
	Directive    directive.Directive
	HasDirective bool
	// DirectiveErr is set when the field's directive could not be read.
	DirectiveErr error

	// Marker is set for zero-sized marker types.
	Marker bool

	Container ContainerKind
	Elem      string // slice element or map key type
	Value     string // map value type

	// Underlying is the approximation element for a conversion type
	// parameter ("~U"). Empty when the field type must be taken as is.
	Underlying string
	// Cloner is set when *T has a method Clone() T.
	Cloner bool

	GoType types.Type
}

// Shape is the layout of a union case.
type Shape int

const (
	// ShapeNamed is a struct with fields.
	ShapeNamed Shape = iota
	// ShapeEmpty is a struct without fields.
	ShapeEmpty
	// ShapePositional is a non-struct defined type holding a single value.
	ShapePositional
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeNamed:
		return "named"
	case ShapeEmpty:
		return "empty"
	case ShapePositional:
		return "positional"
	default:
		return common.UnknownStr
	}
}

// UnionDecl describes an annotated interface and the package types
// implementing it.
type UnionDecl struct {
	Name      string
	Exported  bool
	Pos       token.Position
	Directive directive.Directive
	Cases     []*CaseDecl
}

// CaseDecl is one implementation of a union.
type CaseDecl struct {
	*TypeDecl

	Shape Shape
	// PointerReceiver is set when only *T implements the union.
	PointerReceiver bool
}
