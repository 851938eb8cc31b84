package counter

import (
	"bytes"
	"encoding/json"

	"github.com/charmbracelet/log"
)

// ParseJSON decodes a word list of the form ["cat", 5, "dog", "bird", 2]:
// strings are words and an integer sets the weight of the word before it.
// Empty strings are skipped.
func ParseJSON(data []byte) ([]Word, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var items []any
	if err := dec.Decode(&items); err != nil {
		log.Debugf("Rejecting JSON word list: %v", err)
		return nil, false
	}
	if dec.More() {
		log.Debug("Rejecting JSON word list: trailing data")
		return nil, false
	}

	words := make([]Word, 0, len(items))
	lastWasWord := false
	for _, item := range items {
		switch v := item.(type) {
		case string:
			lastWasWord = false
			if v == "" {
				continue
			}
			words = append(words, Word{Text: v})
			lastWasWord = true
		case json.Number:
			if !lastWasWord {
				log.Debugf("Rejecting JSON word list: weight %s without a word", v)
				return nil, false
			}
			n, err := v.Int64()
			if err != nil {
				log.Debugf("Rejecting JSON word list: bad weight %s: %v", v, err)
				return nil, false
			}
			words[len(words)-1].Weight = n
			lastWasWord = false
		default:
			log.Debugf("Rejecting JSON word list: unexpected element %T", item)
			return nil, false
		}
	}
	return words, true
}

// ImportJSON appends the words of a JSON word list. Malformed input
// returns false and leaves the counter unchanged.
func (c *Counter) ImportJSON(data []byte) bool {
	words, ok := ParseJSON(data)
	if !ok {
		return false
	}
	c.AddWords(words...)
	return true
}
