package plan

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ExplainFile is the reviewable form of a plan.
type ExplainFile struct {
	Package     string        `yaml:"package"`
	Types       []ExplainType `yaml:"types"`
	Diagnostics []string      `yaml:"diagnostics,omitempty"`
}

// ExplainType describes the factories of one declaration.
type ExplainType struct {
	Name      string           `yaml:"name"`
	Kind      string           `yaml:"kind"`
	Valid     bool             `yaml:"valid"`
	Factories []ExplainFactory `yaml:"factories,omitempty"`
}

// ExplainFactory describes one generated function.
type ExplainFactory struct {
	Signature string         `yaml:"signature"`
	Builds    string         `yaml:"builds"`
	Const     bool           `yaml:"const,omitempty"`
	Default   bool           `yaml:"default,omitempty"`
	Fields    []ExplainField `yaml:"fields,omitempty"`
}

// ExplainField describes how one field is initialized.
type ExplainField struct {
	Field  string `yaml:"field"`
	Policy string `yaml:"policy"`
	Value  string `yaml:"value,omitempty"`
}

// Explain converts a plan to its reviewable form.
func Explain(p *Plan) *ExplainFile {
	ef := &ExplainFile{
		Package: p.Package.Path,
		Types:   []ExplainType{},
	}

	for _, tp := range p.Types {
		et := ExplainType{Name: tp.Name, Kind: "struct", Valid: tp.Valid}
		if tp.Union {
			et.Kind = "union"
		}

		for _, f := range tp.All() {
			et.Factories = append(et.Factories, explainFactory(f))
		}

		ef.Types = append(ef.Types, et)
	}

	for _, d := range p.Diagnostics.All() {
		ef.Diagnostics = append(ef.Diagnostics, d.String())
	}

	return ef
}

// ExplainYAML renders the reviewable form of a plan as YAML.
func ExplainYAML(p *Plan) ([]byte, error) {
	return yaml.Marshal(Explain(p))
}

func explainFactory(f *Factory) ExplainFactory {
	ef := ExplainFactory{
		Signature: f.Signature(),
		Builds:    f.Built,
		Const:     f.Const,
		Default:   f.Default,
	}

	for _, a := range f.Assignments {
		ef.Fields = append(ef.Fields, ExplainField{Field: a.Field, Policy: a.Kind.String(), Value: a.Value})
	}

	for _, name := range f.Zeroed {
		ef.Fields = append(ef.Fields, ExplainField{Field: name, Policy: "zero"})
	}

	return ef
}

// Signature renders the function signature, e.g.
// "func NewPair[K comparable, V any](key K, val V) Pair[K, V]".
func (f *Factory) Signature() string {
	var sb strings.Builder

	sb.WriteString("func ")
	sb.WriteString(f.Name)

	if len(f.TypeParams) > 0 {
		sb.WriteByte('[')

		for i, tp := range f.TypeParams {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(tp.Name + " " + tp.Constraint)
		}

		sb.WriteByte(']')
	}

	sb.WriteByte('(')

	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(p.Name + " " + p.Type)
	}

	sb.WriteString(") ")
	sb.WriteString(f.Result)

	return sb.String()
}
