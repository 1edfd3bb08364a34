// Package naming derives record keys from Go identifiers.
package naming

import (
	"strings"
	"unicode"
)

// Snake converts a Go identifier to its snake_case record key.
//
//   - "PrimitiveID" -> "primitive_id"
//   - "NullableAddress" -> "nullable_address"
//   - "HTTPStatus" -> "http_status"
func Snake(s string) string {
	return strings.Join(Tokens(s), "_")
}

// Tokens splits an identifier into lowercase words.
func Tokens(s string) []string {
	tokens := tokenize(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return tokens
}

func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}

		if i > 0 && startsToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

func startsToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if unicode.IsUpper(r) && !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// "XMLParser": the acronym ends before the last upper rune.
	nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	return unicode.IsUpper(r) && unicode.IsUpper(prev) && nextLower
}
