package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Section is one table of a TOML document decoded without a schema.
type Section map[string]any

// DecodeTOMLFile decodes path into v. Keys that v has no field for are
// logged at debug level and otherwise ignored.
func DecodeTOMLFile(path string, v any) error {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML error in %s: %v, falling back to per-key recovery", path, err)
		return err
	}
	for _, key := range md.Undecoded() {
		log.Debugf("Ignoring unknown config key %s in %s", key, path)
	}
	return nil
}

// ReadTOMLSections decodes path into its top-level tables. Values outside
// a table are dropped.
func ReadTOMLSections(path string) (map[string]Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, err
	}
	sections := make(map[string]Section, len(doc))
	for name, v := range doc {
		if table, ok := v.(map[string]any); ok {
			sections[name] = table
		}
	}
	return sections, nil
}

func lookup[T any](s Section, key string) (T, bool) {
	v, ok := s[key].(T)
	return v, ok
}

// Int stores the integer at key into dst. A missing or mistyped value
// leaves dst alone and returns false.
func (s Section) Int(key string, dst *int) bool {
	v, ok := lookup[int64](s, key)
	if ok {
		*dst = int(v)
	}
	return ok
}

// Bool is Int for booleans.
func (s Section) Bool(key string, dst *bool) bool {
	v, ok := lookup[bool](s, key)
	if ok {
		*dst = v
	}
	return ok
}

// Text is Int for strings.
func (s Section) Text(key string, dst *string) bool {
	v, ok := lookup[string](s, key)
	if ok {
		*dst = v
	}
	return ok
}
