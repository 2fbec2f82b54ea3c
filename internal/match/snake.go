package match

import (
	"strings"
)

// SnakeCase converts an identifier to snake_case.
// Lowercase-to-uppercase transitions and the end of an acronym run start a
// new word, separators collapse into a single underscore, and runs of leading
// and trailing underscores are kept verbatim.
//
// Examples:
//   - "OneTwo" -> "one_two"
//   - "ONETWO" -> "onetwo"
//   - "__Abc__" -> "__abc__"
//   - "endinG_" -> "endin_g_"
func SnakeCase(s string) string {
	core := strings.Trim(s, "_")
	if core == "" {
		return s
	}

	leading := len(s) - len(strings.TrimLeft(s, "_"))
	trailing := len(s) - len(strings.TrimRight(s, "_"))

	return strings.Repeat("_", leading) +
		strings.Join(LowerWords(core), "_") +
		strings.Repeat("_", trailing)
}

// SnakeWords splits a snake_case name into its words, dropping empty ones.
func SnakeWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_'
	})
}
