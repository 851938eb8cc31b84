// Package dictionary reads word lists from disk for the counter.
//
// A word list is a text file with one entry per line ("cat" or "cat/5"),
// or a JSON array in the counter's import format. Either may be wrapped in
// snappy (.sz), zstd (.zst) or lz4 (.lz4) compression.
package dictionary

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/bastiangx/wordmatch/pkg/counter"
	"github.com/charmbracelet/log"
	"github.com/zeebo/xxh3"
)

// ErrInvalidName is returned for list names that could escape the words directory.
var ErrInvalidName = errors.New("invalid word list name")

// WordList is a named list of weighted words read from one file.
type WordList struct {
	Name        string
	Path        string
	Format      FileFormat
	Compression Compression
	Words       []counter.Word
	// Fingerprint is the xxh3 hash of the decompressed file contents.
	Fingerprint uint64
}

// Key identifies this exact content of the list, for use as a registry
// cache key. Editing the file changes the key.
func (wl *WordList) Key() string {
	return fmt.Sprintf("%s#%016x", wl.Name, wl.Fingerprint)
}

// Fill adds the list's words to c.
func (wl *WordList) Fill(c *counter.Counter) {
	c.AddWords(wl.Words...)
}

// ParseEntry reads "word" or "word/weight". A suffix after the last slash
// that is not an integer stays part of the word. Blank entries report false.
func ParseEntry(s string) (counter.Word, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return counter.Word{}, false
	}
	if i := strings.LastIndexByte(s, '/'); i > 0 {
		if weight, err := strconv.ParseInt(strings.TrimSpace(s[i+1:]), 10, 64); err == nil {
			text := strings.TrimSpace(s[:i])
			if text == "" {
				return counter.Word{}, false
			}
			return counter.Word{Text: text, Weight: weight}, true
		}
	}
	return counter.Word{Text: s}, true
}

// ParseText reads a text word list. Blank lines and lines starting with #
// are skipped.
func ParseText(r io.Reader) ([]counter.Word, error) {
	var words []counter.Word
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if w, ok := ParseEntry(line); ok {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// Parse decodes decompressed word list data.
func Parse(format FileFormat, data []byte) ([]counter.Word, error) {
	switch format {
	case FormatText:
		return ParseText(bytes.NewReader(data))
	case FormatJSON:
		words, ok := counter.ParseJSON(data)
		if !ok {
			return nil, fmt.Errorf("malformed JSON word list")
		}
		return words, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// Encode is the inverse of Parse.
func Encode(format FileFormat, words []counter.Word) ([]byte, error) {
	switch format {
	case FormatText:
		var buf bytes.Buffer
		for _, w := range words {
			buf.WriteString(w.Text)
			if w.Weight != 0 {
				buf.WriteByte('/')
				buf.WriteString(strconv.FormatInt(w.Weight, 10))
			}
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	case FormatJSON:
		items := make([]any, 0, 2*len(words))
		for _, w := range words {
			items = append(items, w.Text)
			if w.Weight != 0 {
				items = append(items, w.Weight)
			}
		}
		return json.Marshal(items)
	default:
		return nil, ErrUnknownFormat
	}
}

// LoadFile reads one word list, choosing format and compression from the
// file name.
func LoadFile(path string) (*WordList, error) {
	format, comp, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	data, err := Decompress(comp, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s (%s): %w", path, comp, err)
	}
	words, err := Parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	wl := &WordList{
		Name:        listName(path),
		Path:        path,
		Format:      format,
		Compression: comp,
		Words:       words,
		Fingerprint: xxh3.Hash(data),
	}
	log.Debugf("Loaded word list %s: %d words (%s)", wl.Name, len(words), comp)
	return wl, nil
}

// WriteFile stores words at path using the format and compression its
// name implies.
func WriteFile(path string, words []counter.Word) error {
	format, comp, err := DetectFileFormat(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, words)
	if err != nil {
		return err
	}
	if data, err = Compress(comp, data); err != nil {
		return fmt.Errorf("failed to compress %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadDir loads every word list in dir, sorted by name. Files of unknown
// format are skipped; a list that fails to load aborts the scan.
func LoadDir(dir string) ([]*WordList, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for word lists: %w", err)
	}
	var lists []*WordList
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, _, err := DetectFileFormat(path); err != nil {
			log.Debugf("Skipping %s: %v", path, err)
			continue
		}
		wl, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		lists = append(lists, wl)
	}
	sort.Slice(lists, func(i, j int) bool {
		return lists[i].Name < lists[j].Name
	})
	return lists, nil
}

// LoaderStats provides statistics about the loaded word lists
type LoaderStats struct {
	Lists int
	Words int
	Loads int
}

// Loader resolves word list names to files in one directory and keeps the
// most recently loaded version of each.
type Loader struct {
	dirPath string
	lists   map[string]*WordList
	loads   int
	mu      sync.RWMutex
}

// NewLoader creates a loader for dirPath.
func NewLoader(dirPath string) *Loader {
	return &Loader{
		dirPath: dirPath,
		lists:   make(map[string]*WordList),
	}
}

// Dir returns the word list directory.
func (l *Loader) Dir() string {
	return l.dirPath
}

// Load reads the list called name from disk. The file is read on every
// call so edits are picked up; the fingerprint tells whether it changed.
func (l *Loader) Load(name string) (*WordList, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	path, err := l.find(name)
	if err != nil {
		return nil, err
	}
	wl, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.lists[name]; ok && prev.Fingerprint != wl.Fingerprint {
		log.Debugf("Word list %s changed: %016x -> %016x", name, prev.Fingerprint, wl.Fingerprint)
	}
	l.lists[name] = wl
	l.loads++
	return wl, nil
}

// find returns the first file in the directory whose list name is name.
func (l *Loader) find(name string) (string, error) {
	entries, err := os.ReadDir(l.dirPath)
	if err != nil {
		return "", fmt.Errorf("failed to scan for word lists: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || listName(entry.Name()) != name {
			continue
		}
		path := filepath.Join(l.dirPath, entry.Name())
		if _, _, err := DetectFileFormat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("word list %q not found in %s: %w", name, l.dirPath, os.ErrNotExist)
}

// LoadAll loads every list in the directory.
func (l *Loader) LoadAll() ([]*WordList, error) {
	lists, err := LoadDir(l.dirPath)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, wl := range lists {
		l.lists[wl.Name] = wl
		l.loads++
	}
	return lists, nil
}

// Get returns the last loaded version of name, or nil.
func (l *Loader) Get(name string) *WordList {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lists[name]
}

// Names returns the names of loaded lists, sorted.
func (l *Loader) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.lists))
	for name := range l.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetStats returns loader statistics
func (l *Loader) GetStats() LoaderStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stats := LoaderStats{Lists: len(l.lists), Loads: l.loads}
	for _, wl := range l.lists {
		stats.Words += len(wl.Words)
	}
	return stats
}
