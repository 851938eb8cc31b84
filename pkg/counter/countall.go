package counter

// Options tunes CountAll.
type Options struct {
	// CacheKey stores the built counter in the registry; empty disables caching.
	CacheKey string
	// Delimiters are extra bytes that end a word.
	Delimiters string
	// NonDelimiters are extra bytes that belong inside a word.
	NonDelimiters string
	// Mode is an aggregation mode name; unknown names mean SUM.
	Mode string
}

// CountAll counts every word of words in text.
//
// With a cache key the registry's counter for that key is reused and the
// words and alphabet options only apply when it is first built. The mode
// applies per call.
func CountAll(reg *Registry, words []Word, text string, opts Options) Result {
	build := func(c *Counter) {
		c.AddWords(words...)
		if opts.Delimiters != "" {
			c.SetAlphabet(opts.Delimiters, true)
		}
		if opts.NonDelimiters != "" {
			c.SetAlphabet(opts.NonDelimiters, false)
		}
	}

	var c *Counter
	if reg == nil || opts.CacheKey == "" {
		c = New("")
		build(c)
	} else {
		c, _ = reg.GetOrCreate(opts.CacheKey, build)
	}
	return c.MatchMode(text, opts.Mode)
}
