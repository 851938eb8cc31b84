package counter

import (
	"fmt"
	"strings"
	"testing"
)

func newCounter(words ...Word) *Counter {
	c := New("test")
	c.AddWords(words...)
	return c
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSingleWord(t *testing.T) {
	c := newCounter(Word{Text: "cat"})
	if n := c.Search("the cat sat on the cat"); n != 2 {
		t.Fatalf("Search = %d, want 2", n)
	}
	if got := c.Counters(); !equalInts(got, []int{2}) {
		t.Errorf("Counters = %v, want [2]", got)
	}
}

func TestSuffixWordsRespectBoundaries(t *testing.T) {
	c := newCounter(Word{Text: "he"}, Word{Text: "she"}, Word{Text: "hers"})
	n := c.Search("she sells seashells")
	if n != 1 {
		t.Fatalf("Search = %d, want 1", n)
	}
	if got := c.Counters(); !equalInts(got, []int{0, 1, 0}) {
		t.Errorf("Counters = %v, want [0 1 0]", got)
	}

	// "he" is reachable through the fail link of "she" and counts when bounded
	if n := c.Search("she said he hers"); n != 3 {
		t.Errorf("Search = %d, want 3", n)
	}
	if got := c.Counters(); !equalInts(got, []int{1, 1, 1}) {
		t.Errorf("Counters = %v, want [1 1 1]", got)
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	c := newCounter(Word{Text: "cat", Weight: 2}, Word{Text: "dog", Weight: 3})
	text := "cat dog cat"
	first := c.Match(text)
	second := c.Match(text)
	if first.Count != second.Count || first.Value != second.Value || !equalInts(first.Counters, second.Counters) {
		t.Errorf("repeated search differs: %+v vs %+v", first, second)
	}
	if first.Count != 3 || first.Value != 7 {
		t.Errorf("Match = %+v, want count 3 value 7", first)
	}
}

func TestModesSingleWord(t *testing.T) {
	tests := []struct {
		mode        string
		want        int64
		description string
	}{
		{"SUM", 15, "count times weight"},
		{"SUMV", 5, "weight only"},
		{"AVG", 5, "sum divided by count"},
		{"AVGV", 1, "weight divided by count, integer division"},
		{"MIN", 15, "min seeded with +inf"},
		{"MINV", 5, "min of weights"},
		{"MAX", 15, "max seeded with -inf"},
		{"MAXV", 5, "max of weights"},
		{"MUL", 0, "product starts from zero"},
		{"MULV", 0, "weight product starts from zero"},
		{"ANY", 15, "first matched word"},
		{"ANYV", 5, "first matched weight"},
	}
	for _, tc := range tests {
		c := newCounter(Word{Text: "a", Weight: 5})
		if !c.SetMode(tc.mode) {
			t.Fatalf("SetMode(%q) rejected", tc.mode)
		}
		if n := c.Search("a a a"); n != 3 {
			t.Fatalf("%s: Search = %d, want 3", tc.mode, n)
		}
		if got := c.Value(); got != tc.want {
			t.Errorf("%s (%s): Value = %d, want %d", tc.mode, tc.description, got, tc.want)
		}
	}
}

func TestModesSeveralWords(t *testing.T) {
	words := []Word{{"cat", 2}, {"dog", 3}, {"bird", 7}}
	tests := []struct {
		mode string
		want int64
	}{
		{"SUM", 7},
		{"SUMV", 5},
		{"MIN", 3},
		{"MINV", 2},
		{"MAX", 4},
		{"MAXV", 3},
		{"AVG", 2},
		{"AVGV", 1},
		{"MUL", 0},
		{"ANY", 4},
		{"ANYV", 2},
	}
	for _, tc := range tests {
		c := newCounter(words...)
		c.SetMode(tc.mode)
		c.Search("cat dog cat")
		if got := c.Value(); got != tc.want {
			t.Errorf("%s: Value = %d, want %d", tc.mode, got, tc.want)
		}
		if got := c.Counters(); !equalInts(got, []int{2, 1, 0}) {
			t.Errorf("%s: Counters = %v, want [2 1 0]", tc.mode, got)
		}
	}
}

func TestMinMaxWithNegativeWeights(t *testing.T) {
	c := newCounter(Word{"up", -4}, Word{"down", -1})
	c.SetMode("MAX")
	c.Search("up down")
	if got := c.Value(); got != -1 {
		t.Errorf("MAX = %d, want -1", got)
	}
	c.SetMode("MAXV")
	c.Search("up down")
	if got := c.Value(); got != -1 {
		t.Errorf("MAXV = %d, want -1", got)
	}
	c.SetMode("MIN")
	c.Search("up down")
	if got := c.Value(); got != -4 {
		t.Errorf("MIN = %d, want -4", got)
	}
}

func TestAnyFallsBackToFirstWeight(t *testing.T) {
	c := newCounter(Word{"never", 4}, Word{"seen", 0})
	c.SetMode("ANY")
	c.Search("seen and seen")
	if got := c.Value(); got != 8 {
		t.Errorf("ANY fallback = %d, want 8", got)
	}
	c.SetMode("ANYV")
	c.Search("seen and seen")
	if got := c.Value(); got != 4 {
		t.Errorf("ANYV fallback = %d, want 4", got)
	}
}

func TestNoMatchLeavesValueZero(t *testing.T) {
	c := newCounter(Word{"cat", 9})
	c.SetMode("MIN")
	if n := c.Search("nothing here"); n != 0 {
		t.Fatalf("Search = %d, want 0", n)
	}
	if c.Value() != 0 {
		t.Errorf("Value = %d, want 0", c.Value())
	}
}

func TestUnknownModeIsNoop(t *testing.T) {
	c := newCounter(Word{"a", 1})
	c.SetMode("MAX")
	if c.SetMode("sum") {
		t.Error("SetMode must be case sensitive")
	}
	if c.SetMode("BOGUS") {
		t.Error("SetMode accepted an unknown name")
	}
	if c.Mode() != ModeMax {
		t.Errorf("Mode = %v, want MAX", c.Mode())
	}
}

func TestCaseInsensitiveMatching(t *testing.T) {
	c := newCounter(Word{Text: "New York"})
	if n := c.Search("NEW YORK is new york, not newyork"); n != 2 {
		t.Errorf("Search = %d, want 2", n)
	}
}

func TestAlphabetChanges(t *testing.T) {
	c := newCounter(Word{Text: "cat"})
	text := "cat-dog cat_x"
	if n := c.Search(text); n != 2 {
		t.Fatalf("default alphabet: Search = %d, want 2", n)
	}
	c.SetAlphabet("-", false)
	if n := c.Search(text); n != 1 {
		t.Errorf("'-' as word char: Search = %d, want 1", n)
	}
	c.SetAlphabet("_", false)
	if n := c.Search(text); n != 0 {
		t.Errorf("'_' as word char: Search = %d, want 0", n)
	}

	d := newCounter(Word{Text: "cat"})
	if n := d.Search("xcatx"); n != 0 {
		t.Fatalf("Search = %d, want 0", n)
	}
	d.SetAlphabet("x", true)
	if n := d.Search("xcatx"); n != 1 {
		t.Errorf("'x' as delimiter: Search = %d, want 1", n)
	}
}

func TestDuplicateWordsCountedIndependently(t *testing.T) {
	c := newCounter(Word{"cat", 1}, Word{"cat", 10})
	if n := c.Search("a cat"); n != 2 {
		t.Fatalf("Search = %d, want 2", n)
	}
	if got := c.Counters(); !equalInts(got, []int{1, 1}) {
		t.Errorf("Counters = %v, want [1 1]", got)
	}
	if c.Value() != 11 {
		t.Errorf("Value = %d, want 11", c.Value())
	}
}

// More than 32 words must not overflow the output sets.
func TestManyWords(t *testing.T) {
	c := New("many")
	var parts []string
	for i := 0; i < 70; i++ {
		w := fmt.Sprintf("w%d", i)
		c.Add(w, int64(i))
		parts = append(parts, w)
	}
	text := strings.Join(parts, " ")
	if n := c.Search(text); n != 70 {
		t.Fatalf("Search = %d, want 70", n)
	}
	counters := c.Counters()
	for i, n := range counters {
		if n != 1 {
			t.Errorf("word %d counted %d times, want 1", i, n)
		}
	}

	// only the words around the 32 and 64 bit boundaries
	if n := c.Search("w31 w32 w33 w63 w64"); n != 5 {
		t.Errorf("Search = %d, want 5", n)
	}
	want := map[int]bool{31: true, 32: true, 33: true, 63: true, 64: true}
	for i, n := range c.Counters() {
		if (n == 1) != want[i] {
			t.Errorf("word %d counted %d times", i, n)
		}
	}
}

func TestEmptyInputs(t *testing.T) {
	c := New("empty")
	if n := c.Search("some text"); n != 0 {
		t.Errorf("no words: Search = %d, want 0", n)
	}
	if c.Prepared() {
		t.Error("searching without words must not build the automaton")
	}
	if c.Add("", 1) {
		t.Error("empty word accepted")
	}
	c.Add("cat", 1)
	if n := c.Search(""); n != 0 {
		t.Errorf("empty text: Search = %d, want 0", n)
	}
	if got := c.Counters(); !equalInts(got, []int{0}) {
		t.Errorf("Counters = %v, want [0]", got)
	}
}

func TestLazyPrepareAndRebuild(t *testing.T) {
	c := newCounter(Word{Text: "cat"})
	if c.Prepared() {
		t.Fatal("counter prepared before first search")
	}
	c.Search("cat")
	if !c.Prepared() {
		t.Fatal("first search should prepare the automaton")
	}
	if got, limit := c.States(), 1+len("cat"); got != limit {
		t.Errorf("States = %d, want %d", got, limit)
	}

	c.Add("dog", 0)
	if c.Prepared() {
		t.Error("adding a word must invalidate the automaton")
	}
	if n := c.Search("cat dog"); n != 2 {
		t.Errorf("Search after Add = %d, want 2", n)
	}
}

func TestShortTextSkipsPrepare(t *testing.T) {
	c := newCounter(Word{Text: strings.Repeat("x", 4096)}, Word{Text: "ox"})
	if n := c.Search("x"); n != 0 {
		t.Fatalf("Search = %d, want 0", n)
	}
	if c.Prepared() {
		t.Error("text shorter than every word should not build the automaton")
	}
	if n := c.Search("ox"); n != 1 || !c.Prepared() {
		t.Errorf("Search(ox) = %d prepared=%v, want 1 and prepared", n, c.Prepared())
	}

	c.Reset()
	c.Add("a", 0)
	if n := c.Search("a"); n != 1 {
		t.Errorf("Search after Reset = %d, want 1", n)
	}
}

func TestSharedPrefixStates(t *testing.T) {
	c := newCounter(Word{Text: "car"}, Word{Text: "cart"}, Word{Text: "care"})
	c.Prepare()
	// root + c,a,r + t + e
	if got := c.States(); got != 6 {
		t.Errorf("States = %d, want 6", got)
	}
}

func TestReset(t *testing.T) {
	c := newCounter(Word{Text: "cat"})
	c.SetMode("MAX")
	c.Search("cat")
	c.Reset()
	if c.Len() != 0 || c.Prepared() || c.Count() != 0 {
		t.Fatalf("Reset left state behind: len=%d prepared=%v count=%d", c.Len(), c.Prepared(), c.Count())
	}
	if c.Mode() != ModeMax {
		t.Error("Reset must keep the mode")
	}
	c.Add("dog", 2)
	if n := c.Search("cat dog"); n != 1 {
		t.Errorf("Search after Reset = %d, want 1", n)
	}
}

func TestMatchResult(t *testing.T) {
	c := newCounter(Word{"cat", 2}, Word{"dog", 0}, Word{"bird", 7})
	res := c.Match("dog cat dog cat cat")
	if res.Count != 5 || res.Value != 6 || res.Mode != "SUM" {
		t.Fatalf("Match = %+v", res)
	}
	wantMatches := []string{"cat/2", "dog"}
	if len(res.Matches) != len(wantMatches) {
		t.Fatalf("Matches = %v, want %v", res.Matches, wantMatches)
	}
	for i := range wantMatches {
		if res.Matches[i] != wantMatches[i] {
			t.Errorf("Matches[%d] = %q, want %q", i, res.Matches[i], wantMatches[i])
		}
	}
	if !equalInts(res.Counters, []int{3, 2}) {
		t.Errorf("Counters = %v, want [3 2]", res.Counters)
	}
	if len(res.Values) != 2 || res.Values[0] != 6 || res.Values[1] != 0 {
		t.Errorf("Values = %v, want [6 0]", res.Values)
	}

	res = c.MatchMode("dog cat dog cat cat", "SUMV")
	if res.Value != 2 || res.Values[0] != 2 || res.Mode != "SUMV" {
		t.Errorf("MatchMode SUMV = %+v", res)
	}
	if c.Mode() != ModeSum {
		t.Error("MatchMode must not change the counter's mode")
	}
	res = c.MatchMode("cat", "nope")
	if res.Mode != "SUM" {
		t.Errorf("unknown mode override should fall back, got %s", res.Mode)
	}
}

func TestParseMode(t *testing.T) {
	for i, name := range ModeNames() {
		m, ok := ParseMode(name)
		if !ok || int(m) != i || m.String() != name {
			t.Errorf("ParseMode(%q) = %v, %v", name, m, ok)
		}
	}
	if len(ModeNames()) != 12 {
		t.Errorf("ModeNames has %d entries, want 12", len(ModeNames()))
	}
	if Mode(99).String() != "UNKNOWN" {
		t.Error("out of range mode should print UNKNOWN")
	}
}
