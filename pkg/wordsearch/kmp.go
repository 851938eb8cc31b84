// Package wordsearch finds whole-word occurrences of a single word in text
// using Knuth-Morris-Pratt.
//
// A match counts only when it is bounded: the byte before it (if any) and the
// byte after it (if any) must be delimiters according to the baseline
// alphabet. Comparison is exact byte equality.
package wordsearch

import (
	"github.com/bastiangx/wordmatch/pkg/alphabet"
)

var baseline = alphabet.Default()

// failure builds the KMP failure table: fail[i] is the length of the longest
// proper prefix of word[:i+1] that is also its suffix.
func failure(word string) []int {
	fail := make([]int, len(word))
	k := 0
	for i := 1; i < len(word); i++ {
		for k > 0 && word[k] != word[i] {
			k = fail[k-1]
		}
		if word[k] == word[i] {
			k++
		}
		fail[i] = k
	}
	return fail
}

// CountWord counts bounded occurrences of word in text. With findAll false it
// stops at the first bounded match and returns 1, or 0 if there is none.
// Empty inputs and words longer than text yield 0.
func CountWord(word, text string, findAll bool) int {
	m, n := len(word), len(text)
	if m == 0 || n == 0 || m > n {
		return 0
	}
	fail := failure(word)
	count, q := 0, 0
	for i := 0; i < n; i++ {
		for q > 0 && word[q] != text[i] {
			q = fail[q-1]
		}
		if word[q] == text[i] {
			q++
		}
		if q == m {
			if baseline.Bounded(text, i+1-m, i+1) {
				if !findAll {
					return 1
				}
				count++
			}
			q = fail[q-1]
		}
	}
	return count
}

// FindWord reports whether word occurs in text as a whole word.
func FindWord(word, text string) bool {
	return CountWord(word, text, false) == 1
}

// CountWords counts every bounded occurrence of word in text.
func CountWords(word, text string) int {
	return CountWord(word, text, true)
}
