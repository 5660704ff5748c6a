// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package numeric defines the grammar of JSON numeric literals, shared by the
// lexer and the serializer.
package numeric

import "regexp"

// Pattern is the unanchored regular expression for a JSON numeric literal:
// an optional minus sign, an integer part without extra leading zeroes, an
// optional fraction, and an optional exponent.
const Pattern = `-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`

var (
	// Prefix matches a numeric literal at the start of its input.
	Prefix = regexp.MustCompile(`^` + Pattern)

	exact = regexp.MustCompile(`^` + Pattern + `$`)
)

// Valid reports whether s is exactly one JSON numeric literal.
func Valid(s string) bool { return exact.MatchString(s) }

// IsInteger reports whether s is a valid numeric literal with no fraction
// and no exponent.
func IsInteger(s string) bool {
	if !Valid(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			return false
		}
	}
	return true
}
