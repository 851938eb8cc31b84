package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordmatch/pkg/checksum"
	"github.com/bastiangx/wordmatch/pkg/config"
	"github.com/bastiangx/wordmatch/pkg/counter"
	"github.com/bastiangx/wordmatch/pkg/dictionary"
	"github.com/bastiangx/wordmatch/pkg/geohash"
	"github.com/bastiangx/wordmatch/pkg/lru"
	"github.com/bastiangx/wordmatch/pkg/wordsearch"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	codeBadRequest = 400
	codeNotFound   = 404
	codeInternal   = 500
)

// requestError carries the response code of a failed request.
type requestError struct {
	code int
	msg  string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{code: codeBadRequest, msg: fmt.Sprintf(format, args...)}
}

// Server handles msgpack IPC for the counters, the geohash helpers and the
// shared cache. Requests are processed one at a time in arrival order.
type Server struct {
	cfg      *config.Config
	registry *counter.Registry
	cache    *lru.Cache
	loader   *dictionary.Loader
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	requests int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(cfg *config.Config, loader *dictionary.Loader) *Server {
	return NewServerIO(cfg, loader, os.Stdin, os.Stdout)
}

// NewServerIO creates a server reading requests from r and writing
// responses to w. A nil loader disables named word lists.
func NewServerIO(cfg *config.Config, loader *dictionary.Loader, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		cfg:      cfg,
		registry: counter.NewRegistry(),
		cache:    lru.New(cfg.LRU.MaxItems),
		loader:   loader,
		decoder:  msgpack.NewDecoder(r),
		encoder:  msgpack.NewEncoder(w),
	}
}

// Registry returns the server's counter registry.
func (s *Server) Registry() *counter.Registry {
	return s.registry
}

// Cache returns the server's string cache.
func (s *Server) Cache() *lru.Cache {
	return s.cache
}

// Start announces readiness and serves requests until the input ends.
func (s *Server) Start() error {
	log.Debug("Starting Server.")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		// decode one raw value first so a malformed request does not
		// desynchronize the stream
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Input closed, stopping server.")
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			log.Errorf("Unmarshaling request: %v", err)
			if err := s.send(ErrorResponse{Error: "invalid msgpack request", Code: codeBadRequest}); err != nil {
				return err
			}
			continue
		}
		if err := s.send(s.Handle(req)); err != nil {
			return err
		}
	}
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

// Handle runs one request and returns its response value.
func (s *Server) Handle(req Request) any {
	s.requests++
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	resp, err := s.dispatch(req)
	if err != nil {
		code := codeInternal
		var reqErr *requestError
		switch {
		case errors.As(err, &reqErr):
			code = reqErr.code
		case errors.Is(err, geohash.ErrMalformed), errors.Is(err, geohash.ErrDirection),
			errors.Is(err, dictionary.ErrUnknownFormat), errors.Is(err, dictionary.ErrInvalidName),
			errors.Is(err, dictionary.ErrTooLarge):
			code = codeBadRequest
		case errors.Is(err, os.ErrNotExist):
			code = codeNotFound
		}
		log.Debugf("Request %s (%s) failed with %d: %v", req.ID, req.Action, code, err)
		return ErrorResponse{ID: req.ID, Error: err.Error(), Code: code}
	}
	return resp
}

func (s *Server) dispatch(req Request) (any, error) {
	switch req.Action {
	case "count_word":
		return s.handleCountWord(req)
	case "count_all":
		return s.handleCountAll(req)
	case "load_words":
		return s.handleLoadWords(req)
	case "registry_names":
		return StatusResponse{ID: req.ID, Status: "ok", Names: s.registry.Names(req.Prefix)}, nil
	case "registry_clear":
		s.registry.Clear()
		return StatusResponse{ID: req.ID, Status: "ok"}, nil

	case "geo_encode", "geo_decode", "geo_adjacent", "geo_grid", "geo_row", "geo_bbox":
		return s.handleGeo(req)
	case "geo_distance":
		return s.handleDistance(req)

	case "lru_get", "lru_put", "lru_incr", "lru_del", "lru_exists", "lru_keys", "lru_clear", "lru_stats":
		return s.handleCache(req)

	case "hash":
		data := []byte(req.Data)
		return HashResponse{
			ID:     req.ID,
			CRC32:  checksum.Crc32(data),
			OAT:    checksum.Hash(data),
			Murmur: checksum.Hash2(data, req.Seed),
		}, nil
	case "health":
		return StatusResponse{
			ID:       req.ID,
			Status:   "ok",
			Counters: s.registry.Len(),
			Cached:   s.cache.Len(),
			Requests: s.requests,
		}, nil
	case "":
		return nil, badRequest("missing 'action' parameter")
	default:
		return nil, badRequest("unknown action: %s", req.Action)
	}
}

func (s *Server) checkText(text string) error {
	if len(text) > s.cfg.Server.MaxTextLen {
		return badRequest("text exceeds maximum length of %d bytes", s.cfg.Server.MaxTextLen)
	}
	return nil
}

// checkWords bounds the automaton a word list would build: its tables grow
// with the total bytes of all words.
func (s *Server) checkWords(words []counter.Word) error {
	if len(words) > s.cfg.Server.MaxWords {
		return badRequest("%d words exceed the maximum of %d", len(words), s.cfg.Server.MaxWords)
	}
	size := 0
	for _, w := range words {
		size += len(w.Text)
	}
	if size > s.cfg.Server.MaxWordBytes {
		return badRequest("%d word bytes exceed the maximum of %d", size, s.cfg.Server.MaxWordBytes)
	}
	return nil
}

func (s *Server) handleCountWord(req Request) (any, error) {
	if req.Word == "" {
		return nil, badRequest("missing 'word' parameter")
	}
	if err := s.checkText(req.Text); err != nil {
		return nil, err
	}
	all := true
	if req.All != nil {
		all = *req.All
	}
	start := time.Now()
	n := wordsearch.CountWord(req.Word, req.Text, all)
	return CountResponse{ID: req.ID, Count: n, TimeTaken: time.Since(start).Microseconds()}, nil
}

func (s *Server) handleCountAll(req Request) (any, error) {
	if err := s.checkText(req.Text); err != nil {
		return nil, err
	}

	opts := counter.Options{
		CacheKey:      req.Key,
		Delimiters:    s.cfg.Counter.ExtraDelimiters + req.Delimiters,
		NonDelimiters: s.cfg.Counter.ExtraWordChars + req.NonDelimiters,
		Mode:          req.Mode,
	}
	if opts.Mode == "" {
		opts.Mode = s.cfg.Server.DefaultMode
	}

	var words []counter.Word
	if req.List != "" {
		wl, err := s.loadList(req.List)
		if err != nil {
			return nil, err
		}
		words = wl.Words
		if opts.CacheKey == "" {
			opts.CacheKey = wl.Key()
		}
	} else {
		for _, entry := range req.Words {
			if w, ok := dictionary.ParseEntry(entry); ok {
				words = append(words, w)
			}
		}
		// a cached counter can be reused without resending its words
		if len(words) == 0 && (opts.CacheKey == "" || s.registry.Get(opts.CacheKey) == nil) {
			return nil, badRequest("missing 'words' or 'list' parameter")
		}
	}
	if err := s.checkWords(words); err != nil {
		return nil, err
	}

	start := time.Now()
	res := counter.CountAll(s.registry, words, req.Text, opts)
	return CountResponse{
		ID:        req.ID,
		Count:     res.Count,
		Value:     res.Value,
		Mode:      res.Mode,
		Matches:   res.Matches,
		Counters:  res.Counters,
		Values:    res.Values,
		Key:       opts.CacheKey,
		TimeTaken: time.Since(start).Microseconds(),
	}, nil
}

func (s *Server) loadList(name string) (*dictionary.WordList, error) {
	if s.loader == nil {
		return nil, badRequest("no words directory configured")
	}
	return s.loader.Load(name)
}

// handleLoadWords loads one list, or every list when none is named, and
// builds its counter so the first count does not pay for it.
func (s *Server) handleLoadWords(req Request) (any, error) {
	var lists []*dictionary.WordList
	if req.List != "" {
		wl, err := s.loadList(req.List)
		if err != nil {
			return nil, err
		}
		lists = append(lists, wl)
	} else {
		if s.loader == nil {
			return nil, badRequest("no words directory configured")
		}
		all, err := s.loader.LoadAll()
		if err != nil {
			return nil, err
		}
		lists = all
	}

	resp := StatusResponse{ID: req.ID, Status: "ok"}
	for _, wl := range lists {
		if err := s.checkWords(wl.Words); err != nil {
			if req.List != "" {
				return nil, err
			}
			log.Warnf("Skipping word list %s: %v", wl.Name, err)
			continue
		}
		s.registry.GetOrCreate(wl.Key(), func(c *counter.Counter) {
			wl.Fill(c)
			if d := s.cfg.Counter.ExtraDelimiters; d != "" {
				c.SetAlphabet(d, true)
			}
			if w := s.cfg.Counter.ExtraWordChars; w != "" {
				c.SetAlphabet(w, false)
			}
		})
		resp.Names = append(resp.Names, wl.Name)
		resp.Words += len(wl.Words)
		if len(lists) == 1 {
			resp.Key = wl.Key()
		}
	}
	return resp, nil
}

func (s *Server) handleGeo(req Request) (any, error) {
	resp := GeoResponse{ID: req.ID}
	switch req.Action {
	case "geo_encode":
		if req.Lat == nil || req.Lon == nil {
			return nil, badRequest("missing 'lat' or 'lon' parameter")
		}
		precision := req.Precision
		if precision <= 0 {
			precision = s.cfg.Geo.Precision
		}
		resp.Hash = geohash.Encode(*req.Lat, *req.Lon, precision)

	case "geo_decode":
		d, err := geohash.Decode(req.Hash)
		if err != nil {
			return nil, err
		}
		resp.Decoded = d[:]

	case "geo_adjacent":
		h, err := geohash.AdjacentName(req.Hash, req.Direction)
		if err != nil {
			return nil, err
		}
		resp.Hash = h

	case "geo_grid", "geo_row":
		steps := s.cfg.Geo.GridSteps
		if req.Steps != nil {
			steps = *req.Steps
		}
		if steps < 0 || steps > s.cfg.Geo.MaxGridSteps {
			return nil, badRequest("steps must be between 0 and %d", s.cfg.Geo.MaxGridSteps)
		}
		if req.Action == "geo_row" {
			row, err := geohash.Row(req.Hash, steps)
			if err != nil {
				return nil, err
			}
			resp.Hashes = row
			break
		}
		grid, err := geohash.Grid(req.Hash, steps)
		if err != nil {
			return nil, err
		}
		resp.Grid = grid

	case "geo_bbox":
		if req.Lat == nil || req.Lon == nil {
			return nil, badRequest("missing 'lat' or 'lon' parameter")
		}
		box := geohash.BoundingBox(*req.Lat, *req.Lon, req.Km)
		resp.Box = []float64{box.LatMin, box.LatMax, box.LonMin, box.LonMax}
	}
	return resp, nil
}

func (s *Server) handleDistance(req Request) (any, error) {
	if len(req.Coords) != 4 {
		return nil, badRequest("'coords' needs lat1, lon1, lat2, lon2")
	}
	resp := DistanceResponse{ID: req.ID}
	if km, ok := geohash.DistanceStrings(req.Coords[0], req.Coords[1], req.Coords[2], req.Coords[3]); ok {
		resp.Km = &km
	}
	return resp, nil
}

func (s *Server) handleCache(req Request) (any, error) {
	resp := CacheResponse{ID: req.ID}
	needsKey := req.Action != "lru_keys" && req.Action != "lru_clear" && req.Action != "lru_stats"
	if needsKey && req.Key == "" {
		return nil, badRequest("missing 'key' parameter")
	}

	switch req.Action {
	case "lru_get":
		resp.Value, resp.Found = s.cache.Get(req.Key)
	case "lru_put":
		s.cache.Set(req.Key, req.Value)
		resp.Found = true
	case "lru_incr":
		resp.Value = s.cache.Incr(req.Key, req.Delta)
		resp.Found = true
	case "lru_del":
		resp.Found = s.cache.Exists(req.Key)
		s.cache.Del(req.Key)
	case "lru_exists":
		resp.Found = s.cache.Exists(req.Key)
	case "lru_keys":
		resp.Keys = s.cache.Keys(req.Prefix)
	case "lru_clear":
		s.cache.Clear()
	case "lru_stats":
		stats := s.cache.Stats()
		resp.Stats = &stats
	}
	return resp, nil
}
