package match

import (
	"strings"
	"unicode"
)

// Words splits an identifier into words. Separators ('_', '-', ' ') end a
// word; an upper-case letter starts one after a lower-case letter or digit,
// and ends an acronym run when a lower-case letter follows it. Case is kept.
//
//	Words("getHTTPResponse") == []string{"get", "HTTP", "Response"}
func Words(s string) []string {
	runes := []rune(s)

	var words []string

	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}

		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}

		if start >= 0 && wordBoundary(runes, i) {
			flush(i)
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(runes))

	return words
}

// LowerWords is Words with every word lower-cased.
func LowerWords(s string) []string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	return words
}

// NormalizeIdent folds an identifier for fuzzy comparison: "Order_ID",
// "orderId" and "order-id" all become "orderid".
func NormalizeIdent(s string) string {
	return strings.Join(LowerWords(s), "")
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// wordBoundary reports whether a word starts at runes[i]; i > 0.
func wordBoundary(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}

	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
