package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnionConfig(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected UnionConfig
	}{
		{"bare", "", UnionConfig{Visibility: Exported}},
		{"prefix and vis", "prefix = new, vis = pub", UnionConfig{Prefix: "new", Visibility: Exported}},
		{"long visibility", "visibility = priv", UnionConfig{Visibility: Unexported}},
		{"trailing comma", "prefix = make,", UnionConfig{Prefix: "make", Visibility: Exported}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseUnionConfig(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *cfg)
		})
	}
}

func TestParseUnionConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    ErrorKind
		message string
	}{
		{
			name:    "unknown property",
			src:     "prefx = new",
			kind:    ErrInvalidProperty,
			message: `Unexpected property: "prefx" (must be one of the following: "prefix", "visibility", "vis")`,
		},
		{
			name:    "unknown visibility",
			src:     "vis = public",
			kind:    ErrInvalidProperty,
			message: `Unexpected property: "public" (must be one of the following: "pub", "priv")`,
		},
		{
			name:    "missing assignment",
			src:     "prefix new",
			kind:    ErrSyntax,
			message: `unexpected "new", expected "="`,
		},
		{
			name: "missing value",
			src:  "prefix =",
			kind: ErrSyntax,
		},
		{
			name: "missing comma",
			src:  "prefix = a vis = pub",
			kind: ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUnionConfig(tt.src)

			var derr *Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.kind, derr.Kind)

			if tt.message != "" {
				assert.Equal(t, tt.message, derr.Message)
			}
		})
	}
}

func TestUnionConfig_CaseRequest(t *testing.T) {
	plain := DefaultUnionConfig().CaseRequest("Circle")
	assert.Equal(t, FactoryRequest{Name: "Circle", Visibility: Exported}, plain)

	prefixed := (&UnionConfig{Prefix: "new", Visibility: Unexported}).CaseRequest("Circle")
	assert.Equal(t, FactoryRequest{Name: "new_Circle", Visibility: Unexported}, prefixed)
}
