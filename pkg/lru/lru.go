// Package lru is a string to string cache with least recently used
// eviction by entry count.
package lru

import (
	"container/list"
	"sort"
	"strconv"
	"sync"

	"github.com/bastiangx/wordmatch/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Stats are diagnostic counters. Size is the approximate byte length of
// all keys and values.
type Stats struct {
	Hits   int64 `msgpack:"hits" json:"hits"`
	Misses int64 `msgpack:"misses" json:"misses"`
	Ins    int64 `msgpack:"ins" json:"ins"`
	Dels   int64 `msgpack:"dels" json:"dels"`
	Cleans int64 `msgpack:"cleans" json:"cleans"`
	Size   int64 `msgpack:"size" json:"size"`
	Count  int   `msgpack:"count" json:"count"`
}

type entry struct {
	key   string
	value string
}

// Cache is safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	max   int
	items map[string]*list.Element
	order *list.List // front is most recently used
	keys  *patricia.Trie
	stats Stats
}

// New returns a cache holding at most max entries; max <= 0 means unbounded.
func New(max int) *Cache {
	return &Cache{
		max:   max,
		items: make(map[string]*list.Element),
		order: list.New(),
		keys:  patricia.NewTrie(),
	}
}

// Max returns the capacity.
func (c *Cache) Max() int {
	return c.max
}

// Get returns the value of key and marks it most recently used. A miss
// does not insert anything.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return "", false
	}
	c.stats.Hits++
	c.order.MoveToFront(el)
	return el.Value.(*entry).value, true
}

// Set stores value under key. Inserting a new key into a full cache first
// evicts the single least recently used entry.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

func (c *Cache) set(key, value string) {
	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		c.stats.Size += int64(len(value) - len(e.value))
		e.value = value
		c.order.MoveToFront(el)
		return
	}
	if c.max > 0 && len(c.items) >= c.max {
		c.evict()
	}
	c.items[key] = c.order.PushFront(&entry{key: key, value: value})
	c.keys.Insert(patricia.Prefix(key), struct{}{})
	c.stats.Ins++
	c.stats.Size += int64(len(key) + len(value))
	c.stats.Count = len(c.items)
}

func (c *Cache) evict() {
	el := c.order.Back()
	if el == nil {
		return
	}
	e := el.Value.(*entry)
	log.Debugf("Evicting least recently used key %q", e.key)
	c.remove(el)
	c.stats.Cleans++
}

func (c *Cache) remove(el *list.Element) {
	e := el.Value.(*entry)
	c.order.Remove(el)
	delete(c.items, e.key)
	c.keys.Delete(patricia.Prefix(e.key))
	c.stats.Size -= int64(len(e.key) + len(e.value))
	c.stats.Count = len(c.items)
}

// Incr adds delta to the integer stored under key and returns the result.
// Both are read like C's atoll, so a missing or non-numeric value counts as 0.
func (c *Cache) Incr(key, delta string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var current int64
	if el, ok := c.items[key]; ok {
		current = utils.ParseLeadingInt(el.Value.(*entry).value)
	}
	next := strconv.FormatInt(current+utils.ParseLeadingInt(delta), 10)
	c.set(key, next)
	return next
}

// Del removes key if present.
func (c *Cache) Del(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.remove(el)
		c.stats.Dels++
	}
}

// Exists reports whether key is cached without touching its recency.
func (c *Cache) Exists(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Keys returns the cached keys starting with prefix, sorted.
func (c *Cache) Keys(prefix string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.items))
	collect := func(p patricia.Prefix, _ patricia.Item) error {
		keys = append(keys, string(p))
		return nil
	}
	var err error
	if prefix == "" {
		err = c.keys.Visit(collect)
	} else {
		err = c.keys.VisitSubtree(patricia.Prefix(prefix), collect)
	}
	if err != nil {
		log.Errorf("Error listing cache keys: %v", err)
	}
	sort.Strings(keys)
	return keys
}

// Clear drops every entry and resets the statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.keys = patricia.NewTrie()
	c.stats = Stats{}
}

// Stats returns a snapshot of the statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
