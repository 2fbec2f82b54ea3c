package match

import (
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Common initialisms from golint.
	for _, w := range []string{
		"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS",
		"ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH",
		"TCP", "TLS", "TTL", "UDP", "UI", "UID", "UUID", "URI", "URL", "UTF8", "VM", "XML",
		"XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}

	return rules
}

// Pascal renders snake_case words as an exported Go identifier.
//
// Examples:
//   - "new" -> "New"
//   - "from_id" -> "FromID"
func Pascal(s string) string {
	words := SnakeWords(s)
	for i, w := range words {
		words[i] = pascalWord(w)
	}

	return strings.Join(words, "")
}

// Camel renders snake_case words as an unexported Go identifier.
//
// Examples:
//   - "new" -> "new"
//   - "id_list" -> "idList"
func Camel(s string) string {
	words := SnakeWords(s)
	if len(words) == 0 {
		return ""
	}

	words[0] = strings.ToLower(words[0])
	for i := 1; i < len(words); i++ {
		words[i] = pascalWord(words[i])
	}

	return strings.Join(words, "")
}

func pascalWord(w string) string {
	upper := strings.ToUpper(w)
	if _, ok := acronyms[upper]; ok {
		return upper
	}

	return rules.Capitalize(w)
}

// ExportName forces the first letter of a Go identifier to the requested case.
func ExportName(name string, exported bool) string {
	if name == "" {
		return name
	}

	r, size := utf8.DecodeRuneInString(name)
	if exported {
		r = unicode.ToUpper(r)
	} else {
		r = unicode.ToLower(r)
	}

	return string(r) + name[size:]
}

// ParamName derives the parameter name for a struct field, e.g. "UserID" -> "userID".
func ParamName(field string) string {
	return Camel(SnakeCase(field))
}

// IsReserved reports whether name is a Go keyword or a predeclared identifier
// (a builtin type, constant or function) of the universe scope.
func IsReserved(name string) bool {
	if token.IsKeyword(name) {
		return true
	}

	return types.Universe.Lookup(name) != nil
}

// Escape appends underscores to name until it is neither reserved nor taken.
// taken may be nil.
func Escape(name string, taken func(string) bool) string {
	for IsReserved(name) || (taken != nil && taken(name)) {
		name += "_"
	}

	return name
}
