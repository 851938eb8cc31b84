package lru

import (
	"sync"
	"testing"
)

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	c.Set("A", "1")
	c.Set("B", "2")
	c.Set("C", "3")

	tests := []struct {
		key         string
		want        bool
		description string
	}{
		{"A", false, "oldest entry evicted"},
		{"B", true, "second entry kept"},
		{"C", true, "newest entry kept"},
	}
	for _, tc := range tests {
		if got := c.Exists(tc.key); got != tc.want {
			t.Errorf("%s: Exists(%q) = %v, want %v", tc.description, tc.key, got, tc.want)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if s := c.Stats(); s.Cleans != 1 || s.Ins != 3 {
		t.Errorf("Stats = %+v, want 1 clean and 3 inserts", s)
	}
}

func TestGetRefreshesRecency(t *testing.T) {
	c := New(2)
	c.Set("A", "1")
	c.Set("B", "2")
	if v, ok := c.Get("A"); !ok || v != "1" {
		t.Fatalf("Get(A) = %q, %v", v, ok)
	}
	c.Set("C", "3")
	if !c.Exists("A") || c.Exists("B") {
		t.Error("Get should have protected A and left B to be evicted")
	}
}

func TestUpdateDoesNotEvict(t *testing.T) {
	c := New(2)
	c.Set("A", "1")
	c.Set("B", "2")
	c.Set("A", "10")
	if !c.Exists("A") || !c.Exists("B") {
		t.Error("updating an existing key must not evict")
	}
	if v, _ := c.Get("A"); v != "10" {
		t.Errorf("Get(A) = %q, want 10", v)
	}
	if s := c.Stats(); s.Ins != 2 || s.Size != int64(len("A10")+len("B2")) {
		t.Errorf("Stats = %+v", s)
	}
}

func TestIncr(t *testing.T) {
	c := New(10)
	tests := []struct {
		key, delta  string
		want        string
		description string
	}{
		{"x", "5", "5", "missing key starts at zero"},
		{"x", "3", "8", "adds to the stored value"},
		{"x", "-10", "-2", "negative delta"},
		{"x", "4abc", "2", "delta parsed up to the first non-digit"},
		{"y", "junk", "0", "non numeric delta is zero"},
	}
	for _, tc := range tests {
		if got := c.Incr(tc.key, tc.delta); got != tc.want {
			t.Errorf("%s: Incr(%q, %q) = %q, want %q", tc.description, tc.key, tc.delta, got, tc.want)
		}
	}

	c.Set("word", "hello")
	if got := c.Incr("word", "2"); got != "2" {
		t.Errorf("Incr on non numeric value = %q, want 2", got)
	}
	c.Set("lead", "  12 apples")
	if got := c.Incr("lead", "+1"); got != "13" {
		t.Errorf("Incr on leading number = %q, want 13", got)
	}
}

func TestStatsAndClear(t *testing.T) {
	c := New(0)
	c.Set("k1", "v1")
	c.Set("k2", "v2")
	c.Get("k1")
	c.Get("missing")
	c.Del("k2")
	c.Del("k2")

	s := c.Stats()
	want := Stats{Hits: 1, Misses: 1, Ins: 2, Dels: 1, Cleans: 0, Size: 4, Count: 1}
	if s != want {
		t.Errorf("Stats = %+v, want %+v", s, want)
	}

	c.Clear()
	if s := c.Stats(); s != (Stats{}) {
		t.Errorf("Stats after Clear = %+v", s)
	}
	if c.Len() != 0 || len(c.Keys("")) != 0 {
		t.Error("Clear left entries behind")
	}
	if _, ok := c.Get("k1"); ok {
		t.Error("Get after Clear hit")
	}
}

func TestUnbounded(t *testing.T) {
	c := New(-1)
	for i := 0; i < 1000; i++ {
		c.Incr("n", "1")
		c.Set(string(rune('a'+i%26))+string(rune('a'+i/26%26)), "v")
	}
	if c.Stats().Cleans != 0 {
		t.Error("unbounded cache evicted entries")
	}
	if v, _ := c.Get("n"); v != "1000" {
		t.Errorf("n = %q, want 1000", v)
	}
}

func TestKeys(t *testing.T) {
	c := New(10)
	for _, k := range []string{"user:2", "user:10", "session:a", "user:1"} {
		c.Set(k, "x")
	}
	tests := []struct {
		prefix      string
		want        []string
		description string
	}{
		{"user:", []string{"user:1", "user:10", "user:2"}, "prefix sorted"},
		{"", []string{"session:a", "user:1", "user:10", "user:2"}, "all keys"},
		{"none", []string{}, "no match"},
	}
	for _, tc := range tests {
		got := c.Keys(tc.prefix)
		if len(got) != len(tc.want) {
			t.Errorf("%s: Keys(%q) = %v, want %v", tc.description, tc.prefix, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: Keys(%q)[%d] = %q, want %q", tc.description, tc.prefix, i, got[i], tc.want[i])
			}
		}
	}

	c.Del("user:10")
	if got := c.Keys("user:1"); len(got) != 1 || got[0] != "user:1" {
		t.Errorf("Keys after Del = %v", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Incr("counter", "1")
				c.Get("counter")
			}
		}()
	}
	wg.Wait()
	if v, _ := c.Get("counter"); v != "800" {
		t.Errorf("counter = %q, want 800", v)
	}
}
