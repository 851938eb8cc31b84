package counter

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Registry keeps built counters by key so repeated requests for the same
// word list reuse one automaton. Entries are never evicted; Clear is the
// only way to drop them.
type Registry struct {
	mu     sync.Mutex
	byName *patricia.Trie
	size   int
	builds int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: patricia.NewTrie(),
	}
}

// GetOrCreate returns the counter stored under key. When there is none, a
// new counter named key is passed to build, prepared and stored. The second
// result reports whether the counter already existed.
//
// Lookup and creation happen under one lock so concurrent first use builds
// a single automaton. An empty key is never cached.
func (r *Registry) GetOrCreate(key string, build func(*Counter)) (*Counter, bool) {
	if key == "" {
		c := New("")
		if build != nil {
			build(c)
		}
		return c, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if item := r.byName.Get(patricia.Prefix(key)); item != nil {
		return item.(*Counter), true
	}

	c := New(key)
	if build != nil {
		build(c)
	}
	c.Prepare()
	r.byName.Insert(patricia.Prefix(key), c)
	r.size++
	r.builds++
	log.Debugf("Registry cached counter %q (%d words)", key, c.Len())
	return c, false
}

// Get returns the counter stored under key, or nil.
func (r *Registry) Get(key string) *Counter {
	if key == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if item := r.byName.Get(patricia.Prefix(key)); item != nil {
		return item.(*Counter)
	}
	return nil
}

// Names returns the cached keys starting with prefix, in lexical order.
func (r *Registry) Names(prefix string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, r.size)
	collect := func(p patricia.Prefix, _ patricia.Item) error {
		names = append(names, string(p))
		return nil
	}
	var err error
	if prefix == "" {
		err = r.byName.Visit(collect)
	} else {
		err = r.byName.VisitSubtree(patricia.Prefix(prefix), collect)
	}
	if err != nil {
		log.Errorf("Error visiting registry: %v", err)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of cached counters.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Clear drops every cached counter.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = patricia.NewTrie()
	log.Debugf("Registry cleared (%d counters)", r.size)
	r.size = 0
}

// Stats returns registry statistics.
func (r *Registry) Stats() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return map[string]int{
		"counters": r.size,
		"builds":   r.builds,
	}
}
