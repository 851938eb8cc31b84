package counter

import (
	"math"
	"strconv"

	"github.com/bastiangx/wordmatch/internal/utils"
)

// Result is a snapshot of one search. Matches, Counters and Values list
// only the words that matched at least once, in word-list order.
type Result struct {
	Count    int
	Value    int64
	Mode     string
	Matches  []string
	Counters []int
	Values   []int64
}

// Search counts bounded matches of every word in text and aggregates them
// with the counter's mode. It builds the automaton on first use and returns
// the total match count; per-word counts and the score are available from
// Counters and Value until the next search.
func (c *Counter) Search(text string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search(text)
	c.aggregate(c.mode)
	return c.count
}

// Match searches text and returns the result snapshot atomically.
func (c *Counter) Match(text string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.match(text, c.mode)
}

// MatchMode is Match with a per-call mode override. An unknown name falls
// back to the counter's own mode, leaving it unchanged.
func (c *Counter) MatchMode(text, mode string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.mode
	if parsed, ok := ParseMode(mode); ok {
		m = parsed
	}
	return c.match(text, m)
}

func (c *Counter) match(text string, m Mode) Result {
	c.search(text)
	c.aggregate(m)
	res := Result{
		Count: c.count,
		Value: c.value,
		Mode:  m.String(),
	}
	for j, n := range c.counters {
		if n == 0 {
			continue
		}
		w := c.words[j]
		label := w.Text
		if w.Weight != 0 {
			label += "/" + strconv.FormatInt(w.Weight, 10)
		}
		v := w.Weight
		if !m.WeightOnly() {
			v *= int64(n)
		}
		res.Matches = append(res.Matches, label)
		res.Counters = append(res.Counters, n)
		res.Values = append(res.Values, v)
	}
	return res
}

// search runs one pass over text. State starts at the root on every call.
func (c *Counter) search(text string) {
	if cap(c.counters) >= len(c.words) {
		c.counters = c.counters[:len(c.words)]
		clear(c.counters)
	} else {
		c.counters = make([]int, len(c.words))
	}
	c.count = 0
	c.value = 0
	// no word fits, so the tables need not be built
	if len(text) == 0 || len(c.words) == 0 || len(text) < c.shortest {
		return
	}
	if !c.prepared {
		c.prepare()
	}

	state := 0
	for i := 0; i < len(text); i++ {
		state = c.step(state, utils.ToLowerASCII(text[i]))
		out := c.outputs[state]
		if out == nil {
			continue
		}
		end := i + 1
		out.each(func(j int) {
			word := c.words[j].Text
			start := end - len(word)
			if start < 0 || !c.alphabet.Bounded(text, start, end) {
				return
			}
			// outputs merged through fail links are re-checked against the original bytes
			if !utils.EqualFoldASCII(text[start:end], word) {
				return
			}
			c.counters[j]++
			c.count++
		})
	}
}

// aggregate folds the per-word counts of the last search into c.value.
//
// MIN and MAX variants start from +inf and -inf. MUL and MULV start from
// zero like every other mode, so their score is always 0.
func (c *Counter) aggregate(m Mode) {
	c.value = 0
	if c.count == 0 {
		return
	}
	switch m {
	case ModeMin, ModeMinV:
		c.value = math.MaxInt64
	case ModeMax, ModeMaxV:
		c.value = math.MinInt64
	}

loop:
	for j, n := range c.counters {
		if n == 0 {
			continue
		}
		weight := c.words[j].Weight
		v := weight * int64(n)
		switch m {
		case ModeSumV, ModeAvgV:
			c.value += weight
		case ModeMin:
			c.value = min(c.value, v)
		case ModeMinV:
			c.value = min(c.value, weight)
		case ModeMax:
			c.value = max(c.value, v)
		case ModeMaxV:
			c.value = max(c.value, weight)
		case ModeMul:
			c.value *= v
		case ModeMulV:
			c.value *= weight
		case ModeAny:
			c.value = v
			break loop
		case ModeAnyV:
			c.value = weight
			break loop
		default:
			c.value += v
		}
	}

	switch m {
	case ModeAvg, ModeAvgV:
		c.value /= int64(c.count)
	case ModeAny:
		if c.value == 0 && c.words[0].Weight != 0 {
			c.value = c.words[0].Weight * int64(c.count)
		}
	case ModeAnyV:
		if c.value == 0 && c.words[0].Weight != 0 {
			c.value = c.words[0].Weight
		}
	}
}
