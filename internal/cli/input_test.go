package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordmatch/internal/logger"
	"github.com/bastiangx/wordmatch/pkg/counter"
	"github.com/bastiangx/wordmatch/pkg/dictionary"
)

func newHandler(input string, loader *dictionary.Loader) (*InputHandler, *bytes.Buffer) {
	var out bytes.Buffer
	h := NewInputHandler(counter.New("cli"), loader, true)
	h.in = strings.NewReader(input)
	h.out = logger.NewTo(&out, "")
	return h, &out
}

func TestCommands(t *testing.T) {
	h, out := newHandler(":words cat/2, dog; bird\n:mode MAXV\n:mode nope\na cat and a dog\n", nil)
	if err := h.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h.counter.Len() != 3 {
		t.Errorf("word count = %d, want 3", h.counter.Len())
	}
	if h.counter.Mode() != counter.ModeMaxV {
		t.Errorf("mode = %v, want MAXV", h.counter.Mode())
	}
	if h.counter.Count() != 2 || h.counter.Value() != 2 {
		t.Errorf("last search count %d value %d", h.counter.Count(), h.counter.Value())
	}
	if !strings.Contains(out.String(), "Found 2 matches, MAXV = 2") {
		t.Errorf("output missing result line:\n%s", out.String())
	}
}

func TestAlphabetCommands(t *testing.T) {
	h, _ := newHandler(":words dog\n:chars -\nhot-dog dog\n", nil)
	h.Start()
	if h.counter.Count() != 1 {
		t.Errorf("count = %d, want 1", h.counter.Count())
	}
	h.handleInput(":delim x")
	h.handleInput("xdogx")
	if h.counter.Count() != 1 {
		t.Errorf("count with x delimiter = %d, want 1", h.counter.Count())
	}
}

func TestKmpCommand(t *testing.T) {
	h, out := newHandler(":kmp a a a a\n", nil)
	h.Start()
	if !strings.Contains(out.String(), `"a" found 3 times`) {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "pets.txt"), []byte("cat\ndog/4\n"), 0644)
	h, _ := newHandler(":list pets\nmy dog\n", dictionary.NewLoader(dir))
	h.Start()
	if h.counter.Len() != 2 || h.counter.Value() != 4 {
		t.Errorf("len %d value %d", h.counter.Len(), h.counter.Value())
	}
}
