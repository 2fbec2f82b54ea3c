package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"A", "a"},
		{"Test", "test"},
		{"Test1", "test1"},
		{"ONETWO", "onetwo"},
		{"OneTwo", "one_two"},
		{"__Abc__", "__abc__"},
		{"A_B", "a_b"},
		{"A_b", "a_b"},
		{"abCdEf", "ab_cd_ef"},
		{"one_2_three", "one_2_three"},
		{"ending_", "ending_"},
		{"endinG_", "endin_g_"},

		// Acronym runs
		{"HTTPServer", "http_server"},
		{"parseURL", "parse_url"},

		// Only separators
		{"_", "_"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnakeCase(tt.input))
		})
	}
}

func TestSnakeCase_Idempotent(t *testing.T) {
	for _, s := range []string{"OneTwo", "__Abc__", "endinG_", "new", "from_parts"} {
		once := SnakeCase(s)
		assert.Equal(t, once, SnakeCase(once), s)
	}
}

func TestSnakeWords(t *testing.T) {
	assert.Equal(t, []string{"new", "circle"}, SnakeWords("new_circle"))
	assert.Equal(t, []string{"abc"}, SnakeWords("__abc__"))
	assert.Empty(t, SnakeWords("__"))
}
