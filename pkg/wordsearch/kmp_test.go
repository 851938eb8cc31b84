package wordsearch

import "testing"

func TestCountWord(t *testing.T) {
	tests := []struct {
		word, text  string
		findAll     bool
		want        int
		description string
	}{
		{"cat", "concatenate", true, 0, "substring of a larger word"},
		{"cat", "the cat sat", true, 1, "single bounded match"},
		{"a", "a a a", true, 3, "repeated single letter"},
		{"a", "a a a", false, 1, "first match only"},
		{"cat", "cat", true, 1, "word equals text"},
		{"cat", "cat,cat;cat", true, 3, "punctuation delimiters"},
		{"cat", "cats cat", true, 1, "suffix is a word char"},
		{"cat", "Cat cat", true, 1, "case sensitive"},
		{"aba", "aba aba", true, 2, "failure table restart"},
		{"aa", "aaa", true, 0, "overlapping but unbounded"},
		{"aa", "aa aaa aa", true, 2, "overlap restart with boundaries"},
		{"longer", "short", true, 0, "word longer than text"},
		{"", "text", true, 0, "empty word"},
		{"word", "", true, 0, "empty text"},
		{"new york", "in new york city", true, 1, "phrase"},
		{"x", "\x01x\x02", true, 1, "control bytes delimit"},
		{"x", "\xc3x", true, 0, "high bytes are word chars"},
	}
	for _, tc := range tests {
		if got := CountWord(tc.word, tc.text, tc.findAll); got != tc.want {
			t.Errorf("%s: CountWord(%q, %q, %v) = %d, want %d",
				tc.description, tc.word, tc.text, tc.findAll, got, tc.want)
		}
	}
}

func TestFindWord(t *testing.T) {
	if !FindWord("sat", "the cat sat") {
		t.Error("FindWord should find 'sat'")
	}
	if FindWord("at", "the cat sat") {
		t.Error("FindWord must not match inside words")
	}
}

func TestCountWords(t *testing.T) {
	if got := CountWords("the", "the cat and the hat"); got != 2 {
		t.Errorf("CountWords = %d, want 2", got)
	}
}

func TestFailureTable(t *testing.T) {
	got := failure("abab")
	want := []int{0, 0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("failure(abab) = %v, want %v", got, want)
		}
	}
}
