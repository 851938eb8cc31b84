/*
Package counter counts whole-word occurrences of many words and phrases in
text with a single pass of an Aho-Corasick automaton.

A Counter is filled with words (each with an integer weight), optionally
tuned with extra delimiter or word characters and an aggregation mode, and
then searched. The automaton is built lazily on the first search and reused
until the word list changes or Reset is called.

	c := counter.New("animals")
	c.Add("cat", 2)
	c.Add("dog", 3)
	c.SetMode("MAX")
	n := c.Search("a cat, a dog and another cat")
	// n == 3, c.Counters() == [2 1], c.Value() == 4

Matching folds ASCII case only. A candidate match is accepted when the bytes
around it in the original text are delimiters (or the text edges) and the
matched bytes equal the word case-insensitively.

The goto/fail tables do not depend on the alphabet, so SetAlphabet may be
called between searches without rebuilding.

A Counter serializes its own searches with a mutex. Counters that should be
built once and shared are kept in a Registry.
*/
package counter

import (
	"sync"

	"github.com/bastiangx/wordmatch/pkg/alphabet"
)

// Word is one entry of a counter's word list.
type Word struct {
	Text   string
	Weight int64
}

// Counter is a multi-word counting automaton.
type Counter struct {
	mu       sync.Mutex
	name     string
	words    []Word
	shortest int
	alphabet alphabet.Alphabet
	mode     Mode

	// flat goto table indexed by state<<8|byte, -1 when there is no edge
	gotos    []int32
	fails    []int32
	outputs  []wordSet
	states   int
	prepared bool

	counters []int
	count    int
	value    int64
}

// New returns an empty counter. The name is optional and is used as the
// registry key.
func New(name string) *Counter {
	return &Counter{
		name:     name,
		alphabet: alphabet.Default(),
		mode:     ModeSum,
	}
}

// Name returns the counter's name.
func (c *Counter) Name() string {
	return c.name
}

// Add appends a word with the given weight. Adding the same text twice
// creates two independently counted entries. Empty words are rejected.
func (c *Counter) Add(text string, weight int64) bool {
	if text == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addLocked(Word{Text: text, Weight: weight})
	return true
}

// AddWords appends every non-empty word in order.
func (c *Counter) AddWords(words ...Word) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range words {
		if w.Text != "" {
			c.addLocked(w)
		}
	}
}

func (c *Counter) addLocked(w Word) {
	if len(c.words) == 0 || len(w.Text) < c.shortest {
		c.shortest = len(w.Text)
	}
	c.words = append(c.words, w)
	c.dropTables()
}

// SetAlphabet marks every byte of chars as a delimiter (asDelimiter true) or
// as a word character.
func (c *Counter) SetAlphabet(chars string, asDelimiter bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alphabet.Set(chars, asDelimiter)
}

// SetMode selects the aggregation mode by name. Unknown names leave the
// mode unchanged and report false.
func (c *Counter) SetMode(name string) bool {
	m, ok := ParseMode(name)
	if !ok {
		return false
	}
	c.SetModeValue(m)
	return true
}

// SetModeValue selects the aggregation mode.
func (c *Counter) SetModeValue(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
}

// Mode returns the current aggregation mode.
func (c *Counter) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Words returns a copy of the word list.
func (c *Counter) Words() []Word {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Word(nil), c.words...)
}

// Len returns the number of words.
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.words)
}

// Reset drops the automaton, the word list and the last search results.
// Mode and alphabet are kept.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.words = nil
	c.shortest = 0
	c.dropTables()
	c.counters = nil
	c.count = 0
	c.value = 0
}

func (c *Counter) dropTables() {
	c.gotos = nil
	c.fails = nil
	c.outputs = nil
	c.states = 0
	c.prepared = false
}

// Count returns the number of bounded matches of the last search.
func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Value returns the aggregated score of the last search.
func (c *Counter) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Counters returns a copy of the per-word hit counts of the last search,
// indexed like Words.
func (c *Counter) Counters() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.counters...)
}
