package domain

// IsSubsequence reports whether the runes of subsequence appear in
// sequence in the same order, not necessarily contiguously.
// The empty subsequence matches every sequence.
func IsSubsequence(sequence, subsequence string) bool {
	want := []rune(subsequence)
	if len(want) == 0 {
		return true
	}
	next := 0
	for _, r := range sequence {
		if r == want[next] {
			next++
			if next == len(want) {
				return true
			}
		}
	}
	return false
}

// AnySubsequence reports whether query is a subsequence of at least one
// of the candidates.
func AnySubsequence(candidates []string, query string) bool {
	for _, c := range candidates {
		if IsSubsequence(c, query) {
			return true
		}
	}
	return false
}
