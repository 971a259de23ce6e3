package trie

import (
	"fmt"

	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/core/ports/driven"
)

// Ensure Trie implements the interface.
var _ driven.SearchIndex = (*Trie)(nil)

// noSymbol stands for a query rune outside the alphabet. It never equals
// an edge, so a query holding one only matches if the rune is never reached.
const noSymbol = -1

// frame is a pending visit: a node and how much of the query is consumed.
type frame struct {
	n   *node
	pos int
}

// Trie is a depth-pruned subsequence trie.
type Trie struct {
	alphabet *domain.Alphabet
	root     *node
	nodes    int

	// Scratch buffers reused across calls.
	visit []frame
	sweep []*node
}

// New creates an empty trie over alphabet.
func New(alphabet *domain.Alphabet) *Trie {
	return &Trie{
		alphabet: alphabet,
		root:     newNode(),
		nodes:    1,
	}
}

// Builder adapts New to driven.IndexBuilder.
func Builder(alphabet *domain.Alphabet) driven.SearchIndex {
	return New(alphabet)
}

// Add inserts values for id. All values are checked against the alphabet
// before anything is inserted.
func (t *Trie) Add(id uint64, values []string) error {
	paths := make([][]int, 0, len(values))
	for _, v := range values {
		p, err := t.path(v)
		if err != nil {
			return fmt.Errorf("index record %d: %w", id, err)
		}
		paths = append(paths, p)
	}
	for _, p := range paths {
		t.insert(id, p)
	}
	return nil
}

// insert walks and extends the exact path of p, marking every node.
func (t *Trie) insert(id uint64, p []int) {
	n := t.root
	remaining := len(p)
	n.mark(id, remaining)
	for _, sym := range p {
		c, created := n.child(sym, t.alphabet.Size())
		if created {
			t.nodes++
		}
		remaining--
		c.mark(id, remaining)
		n = c
	}
}

// Search returns the ids matching every query. Each query after the first
// is searched with the ids matched so far as its filter.
func (t *Trie) Search(queries []string, filter domain.IDSet) domain.IDSet {
	if len(queries) == 0 {
		return domain.NewIDSet()
	}
	result := filter
	for _, q := range queries {
		result = t.searchOne(t.query(q), result)
		if len(result) == 0 {
			break
		}
	}
	return result
}

// searchOne returns the ids, restricted to filter, for which q is a
// subsequence of an inserted string.
func (t *Trie) searchOne(q []int, filter domain.IDSet) domain.IDSet {
	out := domain.NewIDSet()
	t.visit = append(t.visit[:0], frame{n: t.root})
	for len(t.visit) > 0 {
		f := t.visit[len(t.visit)-1]
		t.visit = t.visit[:len(t.visit)-1]

		remaining := len(q) - f.pos
		depth, ok := f.n.reach(filter)
		if !ok || depth < remaining {
			continue
		}
		if remaining == 0 {
			f.n.collect(out, filter)
			continue
		}

		want := q[f.pos]
		for sym, c := range f.n.children {
			if c == nil {
				continue
			}
			if sym == want {
				t.visit = append(t.visit, frame{n: c, pos: f.pos + 1})
			} else {
				t.visit = append(t.visit, frame{n: c, pos: f.pos})
			}
		}
	}
	// Drop node references so deleted subtrees are not pinned by the buffer.
	clear(t.visit[:cap(t.visit)])
	return out
}

// Delete removes id, descending only into nodes that held it.
func (t *Trie) Delete(id uint64) {
	t.sweep = append(t.sweep[:0], t.root)
	for len(t.sweep) > 0 {
		n := t.sweep[len(t.sweep)-1]
		t.sweep = t.sweep[:len(t.sweep)-1]
		if !n.unmark(id) {
			continue
		}
		for _, c := range n.children {
			if c != nil {
				t.sweep = append(t.sweep, c)
			}
		}
	}
	clear(t.sweep[:cap(t.sweep)])
}

// Len returns the number of ids currently indexed.
func (t *Trie) Len() int {
	return len(t.root.depths)
}

// Nodes returns the number of nodes, root included.
func (t *Trie) Nodes() int {
	return t.nodes
}

// path converts an inserted string to alphabet positions.
func (t *Trie) path(s string) ([]int, error) {
	p := make([]int, 0, len(s))
	for _, r := range s {
		i, ok := t.alphabet.Index(r)
		if !ok {
			return nil, fmt.Errorf("%q contains symbol %q outside the alphabet: %w", s, r, domain.ErrInvalidInput)
		}
		p = append(p, i)
	}
	return p, nil
}

// query converts a query string to alphabet positions, mapping unknown
// runes to noSymbol.
func (t *Trie) query(s string) []int {
	q := make([]int, 0, len(s))
	for _, r := range s {
		i, ok := t.alphabet.Index(r)
		if !ok {
			i = noSymbol
		}
		q = append(q, i)
	}
	return q
}
