// Package cli is an interactive line based front end to a counter, used for
// debugging word lists and aggregation modes.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordmatch/internal/logger"
	"github.com/bastiangx/wordmatch/internal/utils"
	"github.com/bastiangx/wordmatch/pkg/counter"
	"github.com/bastiangx/wordmatch/pkg/dictionary"
	"github.com/bastiangx/wordmatch/pkg/wordsearch"
	"github.com/charmbracelet/log"
)

const help = `commands:
  :words a, b/3, c    replace the word list
  :list name          load a word list from the words directory
  :mode MAX           set the aggregation mode
  :delim -_           treat the characters as delimiters
  :chars -_           treat the characters as part of words
  :kmp word text...   count one word with the single word search
  :help               show this help
anything else is searched with the current word list`

// InputHandler reads lines and either runs a command or counts the line
// with its counter.
type InputHandler struct {
	counter      *counter.Counter
	loader       *dictionary.Loader
	findAll      bool
	in           io.Reader
	out          *log.Logger
	requestCount int
}

// NewInputHandler creates a handler reading stdin. The loader may be nil.
func NewInputHandler(c *counter.Counter, loader *dictionary.Loader, findAll bool) *InputHandler {
	return &InputHandler{
		counter: c,
		loader:  loader,
		findAll: findAll,
		in:      os.Stdin,
		out:     logger.NewTo(os.Stdout, ""),
	}
}

// Start runs the input loop until stdin is closed.
func (h *InputHandler) Start() error {
	h.out.Print("wordmatch CLI")
	h.out.Print("type text and press Enter to count words, :help for commands (Ctrl+C to exit):")
	reader := bufio.NewReader(h.in)
	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); utils.IsValidInput(line) {
			h.handleInput(line)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	if strings.HasPrefix(line, ":") {
		h.handleCommand(line[1:])
		return
	}

	start := time.Now()
	res := h.counter.Match(line)
	log.Debugf("Took [ %v ] for %d bytes", time.Since(start), len(line))

	if res.Count == 0 {
		log.Warnf("No words found in '%s'", line)
		return
	}
	h.out.Printf("Found %d matches, %s = %s", res.Count, res.Mode, utils.FormatWithCommas(int(res.Value)))
	for i, m := range res.Matches {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", m)
		h.out.Printf("%2d. %-40s (count: %4d, value: %8s)", i+1, clWord, res.Counters[i], utils.FormatWithCommas(int(res.Values[i])))
	}
}

func (h *InputHandler) handleCommand(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "words":
		h.counter.Reset()
		for _, entry := range utils.SplitWordList(arg) {
			if w, ok := dictionary.ParseEntry(entry); ok {
				h.counter.Add(w.Text, w.Weight)
			}
		}
		h.out.Printf("%d words loaded", h.counter.Len())

	case "list":
		if h.loader == nil {
			log.Errorf("No words directory configured")
			return
		}
		wl, err := h.loader.Load(arg)
		if err != nil {
			log.Errorf("Failed to load word list: %v", err)
			return
		}
		h.counter.Reset()
		wl.Fill(h.counter)
		h.out.Printf("%d words loaded from %s", h.counter.Len(), wl.Path)

	case "mode":
		if !h.counter.SetMode(arg) {
			log.Errorf("Unknown mode %q, expected one of %s", arg, strings.Join(counter.ModeNames(), " "))
			return
		}
		h.out.Printf("mode set to %s", arg)

	case "delim", "chars":
		if arg == "" {
			log.Errorf("No characters given")
			return
		}
		h.counter.SetAlphabet(arg, name == "delim")
		h.out.Printf("%q updated", arg)

	case "kmp":
		word, text, _ := strings.Cut(arg, " ")
		n := wordsearch.CountWord(word, text, h.findAll)
		h.out.Printf("%q found %d times", word, n)

	case "help":
		h.out.Print(help)

	default:
		log.Errorf("Unknown command :%s (try :help)", name)
	}
}
