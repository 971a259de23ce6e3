// Package domain defines the core business entities for swamp.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A todo item with description words, tags and a done flag
//   - Term: A single search term, either a description word or a tag
//   - IDSet: A set of record ids, the currency of every index operation
//   - Alphabet: The ordered symbol set an index accepts
//
// It also holds IsSubsequence, the matching rule every index must agree with.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
