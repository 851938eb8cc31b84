package counter

import (
	"github.com/bastiangx/wordmatch/internal/utils"
	"github.com/charmbracelet/log"
)

const alphabetSize = 256

// Prepare builds the automaton if it is not built yet.
func (c *Counter) Prepare() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.prepared {
		c.prepare()
	}
}

// Prepared reports whether the automaton is built for the current word list.
func (c *Counter) Prepared() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prepared
}

// States returns the number of automaton states in use, 0 before Prepare.
func (c *Counter) States() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states
}

// prepare builds the goto, fail and output functions. Words are inserted
// lowercased; the root gets a self loop for every byte without an edge.
func (c *Counter) prepare() {
	maxStates := 1
	for _, w := range c.words {
		maxStates += len(w.Text)
	}

	gotos := make([]int32, maxStates*alphabetSize)
	for i := range gotos {
		gotos[i] = -1
	}
	fails := make([]int32, maxStates)
	for i := range fails {
		fails[i] = -1
	}
	outputs := make([]wordSet, maxStates)

	states := 1
	for j, w := range c.words {
		state := 0
		for i := 0; i < len(w.Text); i++ {
			b := int(utils.ToLowerASCII(w.Text[i]))
			next := gotos[state*alphabetSize+b]
			if next < 0 {
				next = int32(states)
				gotos[state*alphabetSize+b] = next
				states++
			}
			state = int(next)
		}
		outputs[state].set(j)
	}

	for b := 0; b < alphabetSize; b++ {
		if gotos[b] < 0 {
			gotos[b] = 0
		}
	}

	// breadth first over the trie, depth one fails to the root
	queue := make([]int32, 0, states)
	fails[0] = 0
	for b := 0; b < alphabetSize; b++ {
		if s := gotos[b]; s != 0 {
			fails[s] = 0
			queue = append(queue, s)
		}
	}
	for head := 0; head < len(queue); head++ {
		r := int(queue[head])
		for b := 0; b < alphabetSize; b++ {
			s := gotos[r*alphabetSize+b]
			if s < 0 {
				continue
			}
			queue = append(queue, s)
			f := int(fails[r])
			for gotos[f*alphabetSize+b] < 0 {
				f = int(fails[f])
			}
			fails[s] = gotos[f*alphabetSize+b]
			outputs[s].or(outputs[fails[s]])
		}
	}

	c.gotos = gotos[:states*alphabetSize]
	c.fails = fails[:states]
	c.outputs = outputs[:states]
	c.states = states
	c.prepared = true
	log.Debugf("Built automaton %q: %d words, %d states", c.name, len(c.words), states)
}

// step follows goto edges from state on byte b, falling back along fail links.
func (c *Counter) step(state int, b byte) int {
	for c.gotos[state*alphabetSize+int(b)] < 0 {
		state = int(c.fails[state])
	}
	return int(c.gotos[state*alphabetSize+int(b)])
}
