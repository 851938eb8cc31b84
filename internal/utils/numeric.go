package utils

import (
	"math"
	"strconv"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// ParseLeadingInt parses the leading integer of s the way C's atoll does:
// leading whitespace and one sign are accepted, parsing stops at the first
// non-digit, and strings without digits yield 0. Overflow saturates.
func ParseLeadingInt(s string) int64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var n int64
	for ; i < len(s) && isDigit(s[i]); i++ {
		d := int64(s[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			if neg {
				return math.MinInt64
			}
			return math.MaxInt64
		}
		n = n*10 + d
	}
	if neg {
		return -n
	}
	return n
}

// numericPrefix returns the longest prefix of s (after whitespace) that
// reads as a decimal floating point number.
func numericPrefix(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return s[start:i]
}

// ParseLeadingFloat parses the leading number of s the way C's atof does.
// Strings without a numeric prefix yield 0.
func ParseLeadingFloat(s string) float64 {
	p := numericPrefix(s)
	if p == "" {
		return 0
	}
	// range errors still return ±Inf or 0, which is what atof yields too
	f, _ := strconv.ParseFloat(p, 64)
	return f
}

// LooksNumeric reports whether s starts with something that reads as a number.
func LooksNumeric(s string) bool {
	return numericPrefix(s) != ""
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	str := strconv.Itoa(n)
	sign := ""
	if str[0] == '-' {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}
	result := ""
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(char)
	}
	return sign + result
}
