// Package alphabet defines which bytes count as part of a word when deciding
// whether a match is bounded by delimiters.
//
// The baseline table treats ASCII letters and digits as word characters.
// Control bytes, spaces and ASCII punctuation are delimiters. Bytes >= 0x80
// are never delimiters so that multi-byte UTF-8 sequences stay inside words.
package alphabet

// Alphabet maps every byte value to true when it is a word character.
type Alphabet [256]bool

var baseline = func() Alphabet {
	var a Alphabet
	for c := 'a'; c <= 'z'; c++ {
		a[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		a[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		a[c] = true
	}
	for c := 0x80; c <= 0xFF; c++ {
		a[c] = true
	}
	return a
}()

// Default returns a copy of the baseline table.
func Default() Alphabet {
	return baseline
}

// IsDelimiter reports whether b separates words.
func (a *Alphabet) IsDelimiter(b byte) bool {
	return !a[b]
}

// IsWordChar reports whether b belongs inside a word.
func (a *Alphabet) IsWordChar(b byte) bool {
	return a[b]
}

// Set marks every byte of chars as a delimiter or as a word character.
func (a *Alphabet) Set(chars string, asDelimiter bool) {
	for i := 0; i < len(chars); i++ {
		a[chars[i]] = !asDelimiter
	}
}

// SetDelimiters marks every byte of chars as a delimiter.
func (a *Alphabet) SetDelimiters(chars string) {
	a.Set(chars, true)
}

// SetWordChars marks every byte of chars as a word character.
func (a *Alphabet) SetWordChars(chars string) {
	a.Set(chars, false)
}

// Bounded reports whether text[start:end] is flanked by delimiters or by
// the edges of text.
func (a *Alphabet) Bounded(text string, start, end int) bool {
	if start > 0 && !a.IsDelimiter(text[start-1]) {
		return false
	}
	if end < len(text) && !a.IsDelimiter(text[end]) {
		return false
	}
	return true
}
