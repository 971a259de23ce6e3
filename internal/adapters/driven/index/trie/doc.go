// Package trie provides the depth-pruned subsequence trie, the production
// implementation of driven.SearchIndex.
//
// Strings are inserted along their exact character path. A query is a
// subsequence of some inserted string iff a walk from the root exists that
// consumes the query's next symbol when the edge matches it and otherwise
// keeps the query unchanged. Search explores all such walks with an explicit
// stack.
//
// # Markers
//
// Every node maps each id whose strings pass through it to the longest
// number of symbols still available below the node for that id. A node's ids
// are a superset of each child's ids, so:
//
//   - once the query is exhausted, the node's ids are the answer for that
//     branch and nothing below needs visiting;
//   - a node whose ids miss the running filter is pruned;
//   - a node whose deepest remaining path is shorter than the remaining query
//     is pruned;
//   - deleting an id only descends where the id was present.
//
// Nodes are never removed. Deleting an id leaves the node structure in place.
//
// # Thread Safety
//
// A Trie is not safe for concurrent use. Search reuses a traversal stack
// owned by the Trie, so even concurrent searches must be serialised.
package trie
