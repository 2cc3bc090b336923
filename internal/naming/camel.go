package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldName turns one raw specification segment into a field name.
// Surrounding whitespace is trimmed. A segment made of several words is
// camel-cased:
//   - "name" -> "name"
//   - "ID" -> "ID"
//   - "postal code" -> "postalCode"
//   - "First  Name" -> "firstName"
func FieldName(segment string) string {
	words := Words(segment)

	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return LowerCamel(words)
	}
}

// Words splits s into whitespace separated words.
func Words(s string) []string {
	if s == "" {
		return nil
	}

	var words []string

	var current strings.Builder

	for _, r := range s {
		if isSeparator(r) {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}

			continue
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// LowerCamel joins words into a lowerCamelCase identifier. The first word is
// lower-cased entirely; later words only get their first letter upper-cased.
func LowerCamel(words []string) string {
	if len(words) == 0 {
		return ""
	}

	var result strings.Builder

	result.WriteString(strings.ToLower(words[0]))

	for _, w := range words[1:] {
		result.WriteString(upperFirst(w))
	}

	return result.String()
}

func upperFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}

	return string(unicode.ToUpper(r)) + w[size:]
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r)
}
