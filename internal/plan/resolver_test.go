package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/directive"
)

func mustPolicy(t *testing.T, src string) *directive.FieldPolicy {
	t.Helper()

	p, err := directive.ParseFieldPolicy(src)
	require.NoError(t, err)

	return p
}

func TestResolveField(t *testing.T) {
	name := analyze.FieldDecl{Name: "Name", Type: "string", Underlying: "string"}
	tags := analyze.FieldDecl{Name: "Tags", Type: "[]string", Container: analyze.ContainerSlice, Elem: "string"}
	index := analyze.FieldDecl{Name: "Index", Type: "map[string]int", Container: analyze.ContainerMap, Elem: "string", Value: "int"}
	set := analyze.FieldDecl{Name: "Set", Type: "Set", Container: analyze.ContainerSet, Elem: "string", Value: "struct{}"}
	doc := analyze.FieldDecl{Name: "Doc", Type: "Doc", Cloner: true}
	when := analyze.FieldDecl{Name: "When", Type: "time.Time"}
	ptr := analyze.FieldDecl{Name: "Next", Type: "*Node", Underlying: "*Node"}
	mark := analyze.FieldDecl{Name: "noCopy", Type: "noCopy", Marker: true}

	newReq := directive.FactoryRequest{Name: "new"}
	defAll := directive.FactoryRequest{Name: "empty", DefaultAll: true}
	intoAll := directive.FactoryRequest{Name: "from", IntoAll: true}

	tests := []struct {
		name      string
		decl      analyze.FieldDecl
		policy    string
		req       directive.FactoryRequest
		index     int
		kind      directive.PolicyKind
		paramType string
		value     string
		typeParam string
	}{
		{"no policy", name, "", newReq, 0, directive.PassThrough, "string", "name", ""},
		{"no policy default all", name, "", defAll, 0, directive.DefaultValue, "", "", ""},
		{"no policy into all", name, "", intoAll, 0, directive.Converted, "NameT", "string(name)", "~string"},
		{"into all without underlying", when, "", intoAll, 0, directive.Converted, "time.Time", "when", ""},
		{"marker", mark, "", newReq, 0, directive.DefaultValue, "", "", ""},
		{"marker into all", mark, "", intoAll, 0, directive.Converted, "noCopy", "noCopy", ""},
		{"cloned slice", tags, "cloned", newReq, 0, directive.Cloned, "*[]string", "slices.Clone(*tags)", ""},
		{"cloned map", index, "cloned", newReq, 0, directive.Cloned, "*map[string]int", "maps.Clone(*index)", ""},
		{"cloned with Clone method", doc, "cloned", newReq, 0, directive.Cloned, "*Doc", "doc.Clone()", ""},
		{"cloned plain", when, "cloned", newReq, 0, directive.Cloned, "*time.Time", "*when", ""},
		{"into", name, "into", newReq, 0, directive.Converted, "NameT", "string(name)", "~string"},
		{"into pointer", ptr, "into", newReq, 0, directive.Converted, "NextT", "(*Node)(next)", "~*Node"},
		{"iter slice", tags, "iter(string)", newReq, 0, directive.IteratorCollected, "iter.Seq[string]", "slices.Collect(tags)", ""},
		{
			"iter map", index, "iter(string, int)", newReq, 0, directive.IteratorCollected,
			"iter.Seq2[string, int]", "maps.Collect(index)", "",
		},
		{
			"iter set", set, "iter(string)", newReq, 0, directive.IteratorCollected, "iter.Seq[string]",
			"func(seq iter.Seq[string]) Set { s := make(Set); for k := range seq { s[k] = struct{}{} }; return s }(set)", "",
		},
		{"expr constant", name, `expr("x")`, newReq, 0, directive.Expression, "", `"x"`, ""},
		{"expr self", name, "expr!(strings.ToUpper(name))", newReq, 0, directive.Expression, "string", "strings.ToUpper(name)", ""},
		{"expr input", name, "expr(int -> strconv.Itoa(name))", newReq, 0, directive.Expression, "int", "strconv.Itoa(name)", ""},
		{"default", name, "default", newReq, 0, directive.DefaultValue, "", "", ""},
		{"default all overrides cloned", tags, "cloned", defAll, 0, directive.DefaultValue, "", "", ""},
		{"default all keeps constant expr", name, `expr("x")`, defAll, 0, directive.Expression, "", `"x"`, ""},
		{"default all overrides self expr", name, "expr!(name)", defAll, 0, directive.DefaultValue, "", "", ""},
		{"policy for other factory", tags, "cloned = 1", newReq, 0, directive.PassThrough, "[]string", "tags", ""},
		{"policy for this factory", tags, "cloned = [0, 2]", newReq, 2, directive.Cloned, "*[]string", "slices.Clone(*tags)", ""},
		{"policy for other factory on marker", mark, "into = 1", newReq, 0, directive.DefaultValue, "", "", ""},
		{"out of range index", tags, "cloned = 7", newReq, 0, directive.PassThrough, "[]string", "tags", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Field{Decl: &tt.decl, Param: matchParam(tt.decl.Name)}
			if tt.decl.Underlying != "" {
				f.TypeParam = tt.decl.Name + "T"
			}

			if tt.policy != "" {
				f.Policy = mustPolicy(t, tt.policy)
			}

			res, err := ResolveField(f, tt.req, tt.index)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.value, res.Value)

			if tt.paramType == "" {
				assert.Nil(t, res.Param)
			} else {
				require.NotNil(t, res.Param)
				assert.Equal(t, tt.paramType, res.Param.Type)
				assert.Equal(t, tt.decl.Name, res.Param.Field)
			}

			if tt.typeParam == "" {
				assert.Nil(t, res.TypeParam)
			} else {
				require.NotNil(t, res.TypeParam)
				assert.Equal(t, tt.typeParam, res.TypeParam.Constraint)
			}
		})
	}
}

func matchParam(field string) string {
	switch field {
	case "noCopy":
		return "noCopy"
	default:
		return string(field[0]+'a'-'A') + field[1:]
	}
}

func TestResolveField_IterErrors(t *testing.T) {
	name := analyze.FieldDecl{Name: "Name", Type: "string"}
	tags := analyze.FieldDecl{Name: "Tags", Type: "[]string", Container: analyze.ContainerSlice, Elem: "string"}
	index := analyze.FieldDecl{Name: "Index", Type: "map[string]int", Container: analyze.ContainerMap}

	cases := []struct {
		decl   analyze.FieldDecl
		policy string
	}{
		{name, "iter(string)"},
		{tags, "iter(int, string)"},
		{index, "iter(string)"},
	}

	for _, c := range cases {
		f := Field{Decl: &c.decl, Param: "x", Policy: mustPolicy(t, c.policy)}

		_, err := ResolveField(f, directive.FactoryRequest{Name: "new"}, 0)

		var rerr *ResolveError
		require.ErrorAs(t, err, &rerr, c.policy)
		assert.Equal(t, diagnostic.CodeUnsupportedIterTarget, rerr.Code)
	}
}

func TestResolution_Constant(t *testing.T) {
	assert.True(t, Resolution{Kind: directive.PassThrough}.Constant())
	assert.True(t, Resolution{Kind: directive.Expression}.Constant())
	assert.True(t, Resolution{Kind: directive.Converted}.Constant())
	assert.False(t, Resolution{Kind: directive.Converted, TypeParam: &TypeParam{}}.Constant())
	assert.False(t, Resolution{Kind: directive.Cloned}.Constant())
	assert.False(t, Resolution{Kind: directive.IteratorCollected}.Constant())
}

func TestConversion(t *testing.T) {
	assert.Equal(t, "ID(id)", Conversion("ID", "id"))
	assert.Equal(t, "[]byte(b)", Conversion("[]byte", "b"))
	assert.Equal(t, "(*int)(p)", Conversion("*int", "p"))
	assert.Equal(t, "(func())(f)", Conversion("func()", "f"))
	assert.Equal(t, "(<-chan int)(c)", Conversion("<-chan int", "c"))
}
