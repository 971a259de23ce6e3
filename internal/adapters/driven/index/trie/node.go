package trie

import "github.com/custodia-labs/swamp/internal/core/domain"

// node is one prefix of the inserted strings.
type node struct {
	// children is indexed by alphabet position and allocated on first use.
	children []*node

	// depths maps each id passing through this node to the longest number
	// of symbols remaining below it for that id.
	depths map[uint64]int

	// maxDepth caches the largest value in depths.
	maxDepth int
}

func newNode() *node {
	return &node{depths: make(map[uint64]int)}
}

// child returns the child at alphabet position i, creating it if needed.
// created reports whether a new node was allocated.
func (n *node) child(i, width int) (c *node, created bool) {
	if n.children == nil {
		n.children = make([]*node, width)
	}
	if n.children[i] == nil {
		n.children[i] = newNode()
		return n.children[i], true
	}
	return n.children[i], false
}

// mark records that id reaches this node with depth symbols left.
func (n *node) mark(id uint64, depth int) {
	if cur, ok := n.depths[id]; ok && cur >= depth {
		return
	}
	n.depths[id] = depth
	if depth > n.maxDepth {
		n.maxDepth = depth
	}
}

// unmark removes id and reports whether it was present.
func (n *node) unmark(id uint64) bool {
	depth, ok := n.depths[id]
	if !ok {
		return false
	}
	delete(n.depths, id)
	if depth == n.maxDepth {
		n.maxDepth = 0
		for _, d := range n.depths {
			if d > n.maxDepth {
				n.maxDepth = d
			}
		}
	}
	return true
}

// reach returns the deepest remaining path over the ids that pass the
// filter. ok is false when no id passes.
func (n *node) reach(filter domain.IDSet) (depth int, ok bool) {
	if filter == nil {
		return n.maxDepth, len(n.depths) > 0
	}
	if len(filter) < len(n.depths) {
		for id := range filter {
			if d, hit := n.depths[id]; hit {
				ok = true
				if d > depth {
					depth = d
				}
			}
		}
		return depth, ok
	}
	for id, d := range n.depths {
		if _, hit := filter[id]; hit {
			ok = true
			if d > depth {
				depth = d
			}
		}
	}
	return depth, ok
}

// collect adds the ids of this node that pass the filter to out.
func (n *node) collect(out, filter domain.IDSet) {
	if filter == nil {
		for id := range n.depths {
			out[id] = struct{}{}
		}
		return
	}
	if len(filter) < len(n.depths) {
		for id := range filter {
			if _, hit := n.depths[id]; hit {
				out[id] = struct{}{}
			}
		}
		return
	}
	for id := range n.depths {
		if _, hit := filter[id]; hit {
			out[id] = struct{}{}
		}
	}
}
