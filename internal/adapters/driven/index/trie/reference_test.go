package trie

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/swamp/internal/core/domain"
)

// refNode is a trie node with a plain id set marker. It backs two reference
// variants: unpruned search and match-pruned search. Neither is shipped;
// they exist to cross-check the depth-pruned Trie.
type refNode struct {
	children map[rune]*refNode
	ids      domain.IDSet
}

func newRefNode() *refNode {
	return &refNode{children: make(map[rune]*refNode), ids: domain.NewIDSet()}
}

type refTrie struct {
	root  *refNode
	prune bool
}

func newRefTrie(prune bool) *refTrie {
	return &refTrie{root: newRefNode(), prune: prune}
}

func (r *refTrie) add(id uint64, values []string) {
	for _, v := range values {
		n := r.root
		n.ids.Add(id)
		for _, c := range v {
			next, ok := n.children[c]
			if !ok {
				next = newRefNode()
				n.children[c] = next
			}
			next.ids.Add(id)
			n = next
		}
	}
}

func (r *refTrie) searchOne(q []rune, filter domain.IDSet) domain.IDSet {
	out := domain.NewIDSet()
	type pending struct {
		n *refNode
		q []rune
	}
	stack := []pending{{r.root, q}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r.prune && filter != nil && !p.n.ids.Intersects(filter) {
			continue
		}
		if len(p.q) == 0 {
			out.AddAll(p.n.ids)
			continue
		}
		for c, child := range p.n.children {
			if c == p.q[0] {
				stack = append(stack, pending{child, p.q[1:]})
			} else {
				stack = append(stack, pending{child, p.q})
			}
		}
	}
	return out
}

func (r *refTrie) search(queries []string, filter domain.IDSet) domain.IDSet {
	if len(queries) == 0 {
		return domain.NewIDSet()
	}
	var result domain.IDSet
	for i, q := range queries {
		var f domain.IDSet
		if r.prune {
			f = result
			if i == 0 {
				f = filter
			}
		}
		matched := r.searchOne([]rune(q), f)
		if i == 0 {
			result = matched
		} else {
			result = result.Intersect(matched)
		}
	}
	if filter != nil {
		result = result.Intersect(filter)
	}
	return result
}

func (r *refTrie) delete(id uint64) {
	stack := []*refNode{r.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.ids.Remove(id) {
			for _, c := range n.children {
				stack = append(stack, c)
			}
		}
	}
}

// bruteForce answers queries straight from the inserted strings.
type bruteForce map[uint64][]string

func (b bruteForce) search(queries []string) domain.IDSet {
	out := domain.NewIDSet()
	if len(queries) == 0 {
		return out
	}
	for id, values := range b {
		all := true
		for _, q := range queries {
			if !domain.AnySubsequence(values, q) {
				all = false
				break
			}
		}
		if all {
			out.Add(id)
		}
	}
	return out
}

func randomString(rng *rand.Rand, symbols string, maxLen int) string {
	n := rng.Intn(maxLen + 1)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(symbols[rng.Intn(len(symbols))])
	}
	return sb.String()
}

func TestTrie_AgreesWithReferenceVariants(t *testing.T) {
	const symbols = "abc-"
	rng := rand.New(rand.NewSource(20261019))

	for round := 0; round < 20; round++ {
		tr := New(domain.MustAlphabet(symbols))
		unpruned := newRefTrie(false)
		pruned := newRefTrie(true)
		oracle := bruteForce{}

		records := 10 + rng.Intn(30)
		for id := uint64(0); id < uint64(records); id++ {
			values := make([]string, 1+rng.Intn(3))
			for i := range values {
				values[i] = randomString(rng, symbols, 7)
			}
			require.NoError(t, tr.Add(id, values))
			unpruned.add(id, values)
			pruned.add(id, values)
			oracle[id] = append(oracle[id], values...)
		}

		// Delete roughly a quarter of the records.
		for id := uint64(0); id < uint64(records); id++ {
			if rng.Intn(4) == 0 {
				tr.Delete(id)
				unpruned.delete(id)
				pruned.delete(id)
				delete(oracle, id)
			}
		}

		for qi := 0; qi < 40; qi++ {
			queries := make([]string, 1+rng.Intn(3))
			for i := range queries {
				queries[i] = randomString(rng, symbols, 4)
			}

			want := oracle.search(queries)
			assert.Equal(t, want.Sorted(), tr.Search(queries, nil).Sorted(), "depth-pruned %q", queries)
			assert.Equal(t, want.Sorted(), unpruned.search(queries, nil).Sorted(), "unpruned %q", queries)
			assert.Equal(t, want.Sorted(), pruned.search(queries, nil).Sorted(), "match-pruned %q", queries)
		}
	}
}

func TestTrie_SingleTermMatchesIsSubsequence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := newTestTrie(t)
	oracle := bruteForce{}

	for id := uint64(0); id < 60; id++ {
		values := []string{randomString(rng, "abcdefgh-", 10)}
		if values[0] == "" {
			values[0] = "a"
		}
		require.NoError(t, tr.Add(id, values))
		oracle[id] = values
	}

	for i := 0; i < 200; i++ {
		q := randomString(rng, "abcdefgh-", 5)
		assert.Equal(t, oracle.search([]string{q}).Sorted(), tr.Search([]string{q}, nil).Sorted(), "query %q", q)
	}
}

func TestTrie_TermOrderDoesNotMatter(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	tr := New(domain.MustAlphabet("xyz"))
	for id := uint64(0); id < 50; id++ {
		require.NoError(t, tr.Add(id, []string{randomString(rng, "xyz", 6), randomString(rng, "xyz", 6)}))
	}

	for i := 0; i < 50; i++ {
		a := randomString(rng, "xyz", 3)
		b := randomString(rng, "xyz", 3)

		ab := tr.Search([]string{a, b}, nil)
		ba := tr.Search([]string{b, a}, nil)
		separate := tr.Search([]string{a}, nil).Intersect(tr.Search([]string{b}, nil))

		assert.True(t, ab.Equal(ba), "%q %q", a, b)
		assert.True(t, ab.Equal(separate), "%q %q", a, b)
	}
}

func TestTrie_FilteredSearchMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tr := New(domain.MustAlphabet("ab"))
	ref := newRefTrie(true)
	for id := uint64(0); id < 30; id++ {
		values := []string{randomString(rng, "ab", 5)}
		require.NoError(t, tr.Add(id, values))
		ref.add(id, values)
	}

	for i := 0; i < 50; i++ {
		filter := domain.NewIDSet()
		for id := uint64(0); id < 30; id++ {
			if rng.Intn(3) == 0 {
				filter.Add(id)
			}
		}
		q := []string{randomString(rng, "ab", 3)}
		assert.Equal(t, ref.search(q, filter).Sorted(), tr.Search(q, filter).Sorted(), "query %q", q)
	}
}
