package directive

import (
	"slices"

	"ctor-generator/internal/common"
)

//go:generate go tool stringer -type=PolicyKind -linecomment -output=policykind_string.go

// Visibility of a generated factory.
type Visibility int

const (
	// VisibilityUnset leaves the decision to the builder.
	VisibilityUnset Visibility = iota
	// Exported factories get an upper-case first letter.
	Exported
	// Unexported factories get a lower-case first letter.
	Unexported
)

// String returns the directive keyword for the visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityUnset:
		return "unset"
	case Exported:
		return KeywordPub
	case Unexported:
		return KeywordPriv
	default:
		return common.UnknownStr
	}
}

// Level selects which type-level keywords are accepted.
type Level int

const (
	// TypeLevel is a directive on a struct type.
	TypeLevel Level = iota
	// CaseLevel is a directive on a union case; it also accepts "none".
	CaseLevel
)

// FactoryRequest is one requested factory function. Its index in
// TypeConfig.Requests is the index field policies target with "= N".
type FactoryRequest struct {
	Name       string
	Visibility Visibility
	// Const restricts the factory to constant-evaluable field policies.
	Const bool
	// Default marks the default constructor.
	Default bool
	// DefaultAll defaults every field whose policy would need a parameter.
	DefaultAll bool
	// IntoAll converts every unconfigured field.
	IntoAll bool
	// Pointer makes the factory return *T.
	Pointer bool
	Span    Span
}

// TypeConfig is the parsed type-level directive. Requests keep their
// declaration order, which is also the emission order.
type TypeConfig struct {
	Requests []FactoryRequest
	// None suppresses every factory of a union case.
	None bool
}

// DefaultTypeConfig is the configuration of a bare directive: a single
// exported factory named "new".
func DefaultTypeConfig() *TypeConfig {
	return &TypeConfig{
		Requests: []FactoryRequest{{Name: "new", Visibility: Exported}},
	}
}

// UnionConfig is the parsed directive of a union interface.
type UnionConfig struct {
	// Prefix is prepended (with an underscore) to derived case factory names.
	Prefix string
	// Visibility applies to derived case factories.
	Visibility Visibility
}

// DefaultUnionConfig is the configuration of a bare union directive.
func DefaultUnionConfig() *UnionConfig {
	return &UnionConfig{Visibility: Exported}
}

// CaseRequest derives the factory request for a case without its own directive.
func (u *UnionConfig) CaseRequest(caseName string) FactoryRequest {
	name := caseName
	if u.Prefix != "" {
		name = u.Prefix + "_" + caseName
	}

	return FactoryRequest{Name: name, Visibility: u.Visibility}
}

// PolicyKind is the strategy a field policy selects.
type PolicyKind int

const (
	PassThrough       PolicyKind = iota // pass-through
	Cloned                              // cloned
	Converted                           // into
	IteratorCollected                   // iter
	Expression                          // expr
	DefaultValue                        // default
)

// FieldPolicy is the parsed field-level directive.
type FieldPolicy struct {
	Kind PolicyKind
	// Elem is the element type of iter(E), or the key type of iter(K, V).
	Elem string
	// Value is the value type of iter(K, V).
	Value string
	// Body is the Go expression of expr(...).
	Body string
	// InputType overrides the parameter type of expr(Type -> body).
	InputType string
	// SelfReferencing is set by expr!(...): the field is still taken as a
	// parameter of its own type and the body may refer to it.
	SelfReferencing bool
	// Applications lists the factory indices the policy applies to, sorted
	// and without duplicates. Empty means every factory.
	Applications []int
	Span         Span
}

// AppliesTo reports whether the policy applies to the factory at index.
// Indices beyond the number of factories are accepted and never match.
func (p *FieldPolicy) AppliesTo(index int) bool {
	return len(p.Applications) == 0 || slices.Contains(p.Applications, index)
}

// NeedsInput reports whether the policy consumes a caller-provided value.
func (p *FieldPolicy) NeedsInput() bool {
	switch p.Kind {
	case PassThrough, Cloned, Converted, IteratorCollected:
		return true
	case Expression:
		return p.SelfReferencing || p.InputType != ""
	default:
		return false
	}
}
