package plan

import (
	"go/token"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/directive"
)

// Plan is the resolved set of factories for one package. It contains
// everything needed for code generation.
type Plan struct {
	// Package is the analyzed package the plan was built from.
	Package *analyze.Package
	// Types lists one entry per annotated struct or union in source order.
	Types []*TypePlan
	// Imports maps package names to import paths across all valid types.
	Imports map[string]string
	// Diagnostics contains all warnings and errors from planning.
	Diagnostics diagnostic.Diagnostics
}

// TypePlan is the set of factories generated for one declaration.
type TypePlan struct {
	// Name is the owner type: the struct, or the union interface.
	Name string
	Pos  token.Position
	// Union is set for annotated interfaces.
	Union bool
	// Factories are the named factories in request order (case order for unions).
	Factories []*Factory
	// Default is the default producer, if requested.
	Default *Factory
	// Imports maps package names to import paths used by the declaration's files.
	Imports map[string]string
	// Valid is false when any error was reported for the declaration.
	Valid bool
}

// All returns the named factories followed by the default producer.
func (t *TypePlan) All() []*Factory {
	if t.Default == nil {
		return t.Factories
	}

	return append(t.Factories[:len(t.Factories):len(t.Factories)], t.Default)
}

// Factory is one generated function.
type Factory struct {
	// Name is the Go function name, e.g. "NewUser".
	Name string
	// Request is the name written in the directive, e.g. "new".
	Request  string
	Exported bool
	Const    bool
	Default  bool
	// Index is the position of the request in its directive.
	Index int

	// Built is the type being constructed, e.g. "Pair[K, V]" or "Circle".
	Built string
	// Result is the declared result type, e.g. "*User" or "Shape".
	Result string
	// Pointer constructs the value with new(Built).
	Pointer bool
	Shape   analyze.Shape

	TypeParams  []TypeParam
	Params      []Parameter
	// Locals bind computed values before the value is built, in field
	// declaration order.
	Locals      []Local
	Assignments []Assignment
	// Zeroed lists fields left at their zero value.
	Zeroed []string

	Pos token.Position
}

// TypeParam is a type parameter of a generated function.
type TypeParam struct {
	Name       string
	Constraint string
}

// Parameter is a function parameter.
type Parameter struct {
	Name  string
	Type  string
	Field string
}

// Assignment initializes one field of the constructed value.
type Assignment struct {
	// Field is the Go field name; empty for the value of a positional case.
	Field string
	// Value is the Go expression assigned to the field.
	Value string
	// Kind is the policy that produced the value.
	Kind directive.PolicyKind
	// Local is the local holding Value, if it was bound to one.
	Local string
}

// Local is a variable declared at the top of a factory body. It is named
// after the field's parameter and may shadow it.
type Local struct {
	Name string
	// Type is written out when set: "var name Type = Value".
	Type string
	// Value is the initializer; empty declares the zero value.
	Value string
}

// HasErrors reports whether the plan carries error diagnostics.
func (p *Plan) HasErrors() bool {
	return p.Diagnostics.HasErrors()
}

// ValidTypes returns the types that can be emitted.
func (p *Plan) ValidTypes() []*TypePlan {
	var out []*TypePlan

	for _, t := range p.Types {
		if t.Valid {
			out = append(out, t)
		}
	}

	return out
}
