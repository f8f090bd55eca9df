// Package command splits shell input into tokens and parses it into commands.
package command

import (
	"strings"
	"unicode"
)

// Tokenize splits line on whitespace, keeping double-quoted runs together.
//
// A double quote toggles quoting wherever it appears and is dropped from the
// output. An unterminated quote is not an error; the partial token is kept.
// There is no escaping.
func Tokenize(line string) []string {
	var (
		tokens   []string
		current  strings.Builder
		inQuotes bool
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case unicode.IsSpace(r) && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}
