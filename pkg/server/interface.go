/*
Package server implements msgpack IPC for word counting and geo/cache
utilities.

The server reads a stream of msgpack maps from stdin and writes one
msgpack map per request to stdout. Every request carries an "action" and
an optional "id"; requests without an id get a generated UUID, which is
echoed in the response.

	{"id": "req_001", "action": "count_all", "words": ["cat/2", "dog"], "text": "a cat and a dog", "mode": "MAX"}

is answered with

	{"id": "req_001", "c": 2, "v": 2, "m": "MAX", "matches": ["cat/2", "dog"], "counters": [1, 1], "values": [2, 0], "t": 31}

Counting a named word list from the words directory reuses one automaton
per list content:

	{"action": "load_words", "list": "animals"}
	{"action": "count_all", "list": "animals", "text": "..."}

Failures are reported as

	{"id": "req_001", "e": "unknown action: foo", "c": 400}

with code 400 for bad requests, 404 for unknown word lists and 500 for
internal errors.

# Actions

count_word, count_all, load_words, registry_names and registry_clear drive
the word counters. geo_encode, geo_decode, geo_adjacent, geo_grid, geo_row,
geo_distance and geo_bbox wrap the geohash package. lru_get, lru_put,
lru_incr, lru_del, lru_exists, lru_keys, lru_clear and lru_stats operate on
the shared string cache. hash returns CRC-32, one-at-a-time and murmur3
checksums of a string, and health reports server state.
*/
package server

import "github.com/bastiangx/wordmatch/pkg/lru"

// Request is the union of all request fields; each action reads the ones
// it needs.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`

	// counting
	Word          string   `msgpack:"word,omitempty"`
	Words         []string `msgpack:"words,omitempty"` // "word" or "word/weight"
	Text          string   `msgpack:"text,omitempty"`
	All           *bool    `msgpack:"all,omitempty"`
	List          string   `msgpack:"list,omitempty"`
	Delimiters    string   `msgpack:"delims,omitempty"`
	NonDelimiters string   `msgpack:"non_delims,omitempty"`
	Mode          string   `msgpack:"mode,omitempty"`

	// geohash
	Lat       *float64 `msgpack:"lat,omitempty"`
	Lon       *float64 `msgpack:"lon,omitempty"`
	Precision int      `msgpack:"precision,omitempty"`
	Hash      string   `msgpack:"hash,omitempty"`
	Direction string   `msgpack:"dir,omitempty"`
	Steps     *int     `msgpack:"steps,omitempty"`
	Coords    []string `msgpack:"coords,omitempty"` // lat1, lon1, lat2, lon2
	Km        float64  `msgpack:"km,omitempty"`

	// cache; Key is also the counter cache key for count_all
	Key    string `msgpack:"key,omitempty"`
	Value  string `msgpack:"value,omitempty"`
	Delta  string `msgpack:"delta,omitempty"`
	Prefix string `msgpack:"prefix,omitempty"`

	// hash
	Data string `msgpack:"data,omitempty"`
	Seed uint32 `msgpack:"seed,omitempty"`
}

// CountResponse answers count_word and count_all.
type CountResponse struct {
	ID        string   `msgpack:"id"`
	Count     int      `msgpack:"c"`
	Value     int64    `msgpack:"v"`
	Mode      string   `msgpack:"m,omitempty"`
	Matches   []string `msgpack:"matches,omitempty"`
	Counters  []int    `msgpack:"counters,omitempty"`
	Values    []int64  `msgpack:"values,omitempty"`
	Key       string   `msgpack:"key,omitempty"`
	TimeTaken int64    `msgpack:"t"`
}

// GeoResponse answers the geohash actions except geo_distance.
type GeoResponse struct {
	ID      string     `msgpack:"id"`
	Hash    string     `msgpack:"hash,omitempty"`
	Hashes  []string   `msgpack:"hashes,omitempty"`
	Grid    [][]string `msgpack:"grid,omitempty"`
	Decoded []float64  `msgpack:"decoded,omitempty"` // lat, lon, lat_min, lat_max, lon_min, lon_max
	Box     []float64  `msgpack:"box,omitempty"`     // lat_min, lat_max, lon_min, lon_max
}

// DistanceResponse answers geo_distance. Km is nil when a coordinate
// does not look numeric.
type DistanceResponse struct {
	ID string   `msgpack:"id"`
	Km *float64 `msgpack:"km"`
}

// CacheResponse answers the lru actions.
type CacheResponse struct {
	ID    string     `msgpack:"id"`
	Value string     `msgpack:"value,omitempty"`
	Found bool       `msgpack:"found"`
	Keys  []string   `msgpack:"keys,omitempty"`
	Stats *lru.Stats `msgpack:"stats,omitempty"`
}

// HashResponse answers hash.
type HashResponse struct {
	ID     string `msgpack:"id"`
	CRC32  uint32 `msgpack:"crc32"`
	OAT    uint32 `msgpack:"oat"`
	Murmur uint32 `msgpack:"murmur"`
}

// StatusResponse answers health and the word list management actions.
type StatusResponse struct {
	ID       string   `msgpack:"id"`
	Status   string   `msgpack:"status"`
	Names    []string `msgpack:"names,omitempty"`
	Key      string   `msgpack:"key,omitempty"`
	Words    int      `msgpack:"words,omitempty"`
	Counters int      `msgpack:"counters,omitempty"`
	Cached   int      `msgpack:"cached,omitempty"`
	Requests int      `msgpack:"requests,omitempty"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
