// Package cpputil contains the C++ rendering helpers shared by the binding
// models and the header emitter: scoped name computation, getter and setter
// naming, function prototypes and header guard tokens.
package cpputil

import (
	"strings"
	"unicode"
)

// Style selects a naming convention for Normalize.
type Style int

const (
	// Lower is the lower_case_with_underscores convention.
	Lower Style = iota

	// Capitalized is the CapitalizedWords convention.
	Capitalized

	// Java is the javaStyle mixed-case convention.
	Java
)

// splitWords splits an identifier into its words, breaking on underscores
// and lower-to-upper case transitions.
func splitWords(name string) []string {
	var words []string
	var current []rune
	for _, r := range name {
		switch {
		case r == '_':
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
		case unicode.IsUpper(r):
			if len(current) > 0 && !unicode.IsUpper(current[len(current)-1]) {
				words = append(words, string(current))
				current = nil
			}

			current = append(current, r)
		default:
			current = append(current, r)
		}
	}

	if len(current) > 0 {
		words = append(words, string(current))
	}

	return words
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Normalize renders an identifier in the given naming convention, splitting
// it into words on underscores and case transitions first.
func Normalize(name string, style Style) string {
	words := splitWords(name)
	if len(words) == 0 {
		return ""
	}

	switch style {
	case Lower:
		for ndx, word := range words {
			words[ndx] = strings.ToLower(word)
		}

		return strings.Join(words, "_")
	case Capitalized:
		for ndx, word := range words {
			words[ndx] = capitalize(word)
		}

		return strings.Join(words, "")
	default:
		// Java
		parts := []string{strings.ToLower(words[0])}
		for _, word := range words[1:] {
			parts = append(parts, capitalize(word))
		}

		return strings.Join(parts, "")
	}
}
