package utils

import (
	"strings"
)

// ToLowerASCII lowercases a single byte, leaving non-ASCII bytes untouched.
func ToLowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

// EqualFoldASCII compares a and b case-insensitively for ASCII letters only.
func EqualFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] && ToLowerASCII(a[i]) != ToLowerASCII(b[i]) {
			return false
		}
	}
	return true
}

// IsSeparator checks if a rune is a list separator in word specifications
func IsSeparator(r rune) bool {
	return r == ',' || r == ';' || r == '\t'
}

// SplitWordList splits "a, b/3;c" into trimmed, non-empty items.
func SplitWordList(s string) []string {
	fields := strings.FieldsFunc(s, IsSeparator)
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// IsValidInput checks if a text line should be processed.
// Rejects empty strings and strings made only of whitespace.
func IsValidInput(s string) bool {
	return strings.TrimSpace(s) != ""
}
