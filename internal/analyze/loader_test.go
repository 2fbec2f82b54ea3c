package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctor-generator/internal/diagnostic"
)

func load(t *testing.T, opts Options, pattern string) *Result {
	t.Helper()

	analyzer := NewAnalyzer(opts)
	results, err := analyzer.LoadPackages(pattern)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Package)

	return results[0]
}

func findStruct(t *testing.T, pkg *Package, name string) *TypeDecl {
	t.Helper()

	for _, s := range pkg.Structs {
		if s.Name == name {
			return s
		}
	}

	require.Failf(t, "struct not found", "%s", name)

	return nil
}

func findField(t *testing.T, td *TypeDecl, name string) FieldDecl {
	t.Helper()

	for _, f := range td.Fields {
		if f.Name == name {
			return f
		}
	}

	require.Failf(t, "field not found", "%s.%s", td.Name, name)

	return FieldDecl{}
}

func codes(diags []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}

	return out
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	res := load(t, Options{Output: "ctor_gen.go", Tags: true}, "./testdata/basic")
	pkg := res.Package

	assert.Equal(t, "basic", pkg.Name)
	assert.Equal(t, "ctor-generator/internal/analyze/testdata/basic", pkg.Path)

	names := make([]string, 0, len(pkg.Structs))
	for _, s := range pkg.Structs {
		names = append(names, s.Name)
	}

	// Plain has no directive and Number is not a struct.
	assert.Equal(t, []string{"User", "Pair"}, names)
	assert.Empty(t, pkg.Unions)
}

func TestAnalyzer_OutputFileIgnored(t *testing.T) {
	res := load(t, Options{Output: "ctor_gen.go"}, "./testdata/basic")

	// The stale factory is gone, so the reference to it is only a warning.
	assert.NotContains(t, res.Package.Existing, "NewUser")
	assert.Contains(t, res.Package.Existing, "User")
	assert.Contains(t, codes(res.Diagnostics.Warnings), diagnostic.CodeTypeError)
}

func TestAnalyzer_Diagnostics(t *testing.T) {
	res := load(t, Options{Output: "ctor_gen.go"}, "./testdata/basic")

	errs := codes(res.Diagnostics.Errors)
	assert.ElementsMatch(t, []string{diagnostic.CodeUnsupportedShape, diagnostic.CodeDelimiterMismatch}, errs)

	for _, d := range res.Diagnostics.Errors {
		if d.Code == diagnostic.CodeUnsupportedShape {
			assert.Equal(t, "Number", d.TypeName)
		} else {
			assert.Equal(t, "Broken", d.TypeName)
			assert.Equal(t, 56, d.Pos.Line)
		}
	}
}

func TestAnalyzer_Fields(t *testing.T) {
	res := load(t, Options{Output: "ctor_gen.go", Tags: true}, "./testdata/basic")
	user := findStruct(t, res.Package, "User")

	assert.True(t, user.HasDirective)
	assert.True(t, user.Directive.Bare)
	assert.True(t, user.Exported)
	assert.Len(t, user.Fields, 12, "blank fields are skipped")

	name := findField(t, user, "Name")
	assert.Equal(t, "string", name.Type)
	assert.Equal(t, "string", name.Underlying)
	assert.False(t, name.HasDirective)

	tags := findField(t, user, "Tags")
	assert.True(t, tags.HasDirective)
	assert.Equal(t, "cloned", tags.Directive.Args)
	assert.Equal(t, ContainerSlice, tags.Container)
	assert.Equal(t, "string", tags.Elem)

	age := findField(t, user, "Age")
	assert.True(t, age.HasDirective)
	assert.Equal(t, "default", age.Directive.Args)
	assert.False(t, age.Directive.Exact)

	created := findField(t, user, "Created")
	assert.Equal(t, "tm.Time", created.Type)
	assert.Empty(t, created.Underlying, "struct fields are not converted")
	assert.Equal(t, "time", user.Imports["tm"])

	assert.True(t, findField(t, user, "noCopy").Marker)
	assert.True(t, findField(t, user, "Anchor").Marker)
	assert.False(t, findField(t, user, "Name").Marker)

	set := findField(t, user, "Set")
	assert.Equal(t, ContainerSet, set.Container)
	assert.Equal(t, "string", set.Elem)

	index := findField(t, user, "Index")
	assert.Equal(t, ContainerMap, index.Container)
	assert.Equal(t, "string", index.Elem)
	assert.Equal(t, "int", index.Value)

	assert.Equal(t, "strings.Builder", findField(t, user, "Builder").Type)
	assert.Equal(t, "string", findField(t, user, "ID").Underlying)
	assert.Empty(t, findField(t, user, "Any").Underlying)

	doc := findField(t, user, "Doc")
	assert.True(t, doc.Cloner)
	assert.True(t, doc.HasDirective, "line comments carry directives")
	assert.False(t, findField(t, user, "ID").Cloner)
}

func TestAnalyzer_TagsDisabled(t *testing.T) {
	res := load(t, Options{Output: "ctor_gen.go"}, "./testdata/basic")
	user := findStruct(t, res.Package, "User")

	assert.False(t, findField(t, user, "Age").HasDirective)
}

func TestAnalyzer_SelectedTypes(t *testing.T) {
	res := load(t, Options{Output: "ctor_gen.go", Types: []string{"Plain"}}, "./testdata/basic")

	plain := findStruct(t, res.Package, "Plain")
	assert.False(t, plain.HasDirective)
	require.Len(t, plain.Fields, 1)
	assert.Equal(t, "X", plain.Fields[0].Name)
}

func TestAnalyzer_Generic(t *testing.T) {
	res := load(t, Options{Output: "ctor_gen.go"}, "./testdata/basic")
	pair := findStruct(t, res.Package, "Pair")

	assert.Equal(t, []TypeParam{{Name: "K", Constraint: "comparable"}, {Name: "V", Constraint: "any"}}, pair.TypeParams)
	assert.Equal(t, "Pair[K, V]", pair.TypeArgs())
	assert.Equal(t, "pub new", pair.Directive.Args)

	key := findField(t, pair, "Key")
	assert.Equal(t, "K", key.Type)
	assert.Empty(t, key.Underlying)
}

func TestAnalyzer_Unions(t *testing.T) {
	res := load(t, Options{Unions: true}, "./testdata/shapes")
	pkg := res.Package

	require.Len(t, pkg.Unions, 1)
	assert.Empty(t, pkg.Structs)

	shape := pkg.Unions[0]
	assert.Equal(t, "Shape", shape.Name)
	assert.Equal(t, "prefix = new", shape.Directive.Args)

	var names []string
	for _, c := range shape.Cases {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"Circle", "Square", "Point", "Hidden", "Meters"}, names)

	circle, square, point, hidden, meters := shape.Cases[0], shape.Cases[1], shape.Cases[2], shape.Cases[3], shape.Cases[4]

	assert.Equal(t, ShapeNamed, circle.Shape)
	assert.False(t, circle.PointerReceiver)
	require.Len(t, circle.Fields, 1)
	assert.Equal(t, "Radius", circle.Fields[0].Name)

	assert.True(t, square.PointerReceiver)
	assert.Equal(t, ShapeEmpty, point.Shape)

	assert.True(t, hidden.HasDirective)
	assert.Equal(t, "none", hidden.Directive.Args)

	assert.Equal(t, ShapePositional, meters.Shape)
	require.Len(t, meters.Fields, 1)
	assert.Empty(t, meters.Fields[0].Name)
	assert.Equal(t, "float64", meters.Fields[0].Type)

	// Feet by pointer, Ordered, Container and Empty.
	assert.Equal(t, []string{
		diagnostic.CodeUnsupportedShape,
		diagnostic.CodeUnsupportedShape,
		diagnostic.CodeUnsupportedShape,
		diagnostic.CodeUnsupportedShape,
	}, codes(res.Diagnostics.Errors))
}

func TestAnalyzer_UnionsDisabled(t *testing.T) {
	res := load(t, Options{}, "./testdata/nounion")

	assert.Empty(t, res.Package.Unions)
	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnsupportedShape, res.Diagnostics.Errors[0].Code)
	assert.Equal(t, "Shape", res.Diagnostics.Errors[0].TypeName)
}

func TestParsePos(t *testing.T) {
	pos := parsePos("/tmp/a.go:12:7")
	assert.Equal(t, "/tmp/a.go", pos.Filename)
	assert.Equal(t, 12, pos.Line)
	assert.Equal(t, 7, pos.Column)

	invalid := parsePos("-")
	assert.False(t, invalid.IsValid())
}
