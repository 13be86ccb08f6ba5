package casing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Convert rewrites identifier in the given case style.
// Unknown cases return identifier unchanged.
func Convert(identifier string, c Case) string {
	words := Words(identifier)

	switch c {
	case KebabCase:
		return joinLower(words, "-")
	case SnakeCase:
		return joinLower(words, "_")
	case CamelCase:
		var b strings.Builder
		for i, w := range words {
			if i == 0 {
				b.WriteString(lower(w))
				continue
			}
			b.WriteString(capitalize(w))
		}
		return b.String()
	case PascalCase:
		// Adjacent one-letter words merge when the result is split again
		// ("aB" -> "AB" -> "Ab"), so settle on the form that converts to
		// itself. Each pass can only remove uppercase letters.
		out := joinCapitalized(words)
		for range len(out) {
			next := joinCapitalized(Words(out))
			if next == out {
				break
			}
			out = next
		}
		return out
	}
	return identifier
}

func joinCapitalized(words []string) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// Words splits an identifier into words.
//
// Non-alphanumeric characters separate words and are discarded. Inside a run
// of letters and digits a word ends where a lowercase letter is followed by an
// uppercase one, and a run of uppercase letters ends before its last letter
// when that letter starts a lowercase tail ("XMLHttp" -> "XML", "Http").
// Digits continue the current word.
func Words(identifier string) []string {
	var words []string

	segments := strings.FieldsFunc(identifier, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, seg := range segments {
		runes := []rune(seg)
		start := 0
		mode := modeBoundary

		for i, r := range runes {
			if i == len(runes)-1 {
				words = append(words, string(runes[start:]))
				break
			}
			next := runes[i+1]

			nextMode := mode
			switch {
			case unicode.IsLower(r):
				nextMode = modeLower
			case unicode.IsUpper(r):
				nextMode = modeUpper
			}

			switch {
			case nextMode == modeLower && unicode.IsUpper(next):
				// aB: boundary after the current rune
				words = append(words, string(runes[start:i+1]))
				start = i + 1
				mode = modeBoundary
			case mode == modeUpper && unicode.IsUpper(r) && unicode.IsLower(next):
				// ABc: boundary before the current rune
				words = append(words, string(runes[start:i]))
				start = i
				mode = modeBoundary
			default:
				mode = nextMode
			}
		}
	}

	return words
}

type wordMode int

const (
	modeBoundary wordMode = iota
	modeLower
	modeUpper
)

func joinLower(words []string, sep string) string {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = lower(w)
	}
	return strings.Join(lowered, sep)
}

// Casers are stateful, so each call builds its own. language.Und keeps the
// mapping locale independent.
func lower(w string) string {
	return cases.Lower(language.Und).String(w)
}

func capitalize(w string) string {
	first, size := utf8.DecodeRuneInString(w)
	if first == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(first)) + lower(w[size:])
}
