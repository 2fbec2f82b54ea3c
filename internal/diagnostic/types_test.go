package diagnostic

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddAndError(t *testing.T) {
	var d Diagnostics
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Error())

	d.AddWarning(CodeNoFactories, "ignored", token.Position{}, "User", "")
	d.Add(Diagnostic{Severity: DiagnosticInfo, Code: "note", Message: "info"})
	assert.False(t, d.HasErrors())

	pos := token.Position{Filename: "user.go", Line: 3, Column: 8}
	d.AddError(CodeInvalidProperty, `Unexpected property: "clone"`, pos, "User", "Name")
	require.True(t, d.HasErrors())
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Infos, 1)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, `user.go:3:8: [invalid_property] Unexpected property: "clone"`, err.Error())

	d.AddError(CodeRemovedProperty, "gone", token.Position{}, "User", "")
	assert.Contains(t, d.Error().Error(), "\n[User]: [removed_property] gone")
}

func TestDiagnostic_StringWithoutPosition(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "type and field",
			diag: Diagnostic{Code: CodeDefaultConstructorConflict, Message: "msg", TypeName: "User", FieldPath: "Name"},
			want: "[User] Name: [default_constructor_conflict] msg",
		},
		{
			name: "type only",
			diag: Diagnostic{Code: CodeNoFactories, Message: "msg", TypeName: "User"},
			want: "[User]: [no_factories] msg",
		},
		{
			name: "bare",
			diag: Diagnostic{Message: "msg"},
			want: "msg",
		},
		{
			name: "suggestion",
			diag: Diagnostic{Code: CodeInvalidProperty, Message: "msg", Suggestions: []string{"cloned"}},
			want: `[invalid_property] msg (did you mean "cloned"?)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestDiagnostics_MergeSortAll(t *testing.T) {
	var a, b Diagnostics
	a.AddError("x", "second", token.Position{Filename: "a.go", Line: 9, Column: 1}, "", "")
	b.AddError("x", "first", token.Position{Filename: "a.go", Line: 2, Column: 5}, "", "")
	b.AddWarning("y", "warn", token.Position{Filename: "a.go", Line: 1, Column: 1}, "", "")

	a.Merge(b)
	a.Sort()

	require.Len(t, a.Errors, 2)
	assert.Equal(t, "first", a.Errors[0].Message)
	assert.Equal(t, "second", a.Errors[1].Message)

	all := a.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticWarning, all[2].Severity)
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
