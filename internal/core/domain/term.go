package domain

// TermKind selects which field a search term is matched against.
type TermKind int

// Available term kinds.
const (
	// TermWord matches against description words.
	TermWord TermKind = iota

	// TermTag matches against tags.
	TermTag
)

// String returns the string representation.
func (k TermKind) String() string {
	switch k {
	case TermWord:
		return "word"
	case TermTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Term is one search term of a query.
type Term struct {
	Kind TermKind
	Text string
}

// Word returns a description word term.
func Word(text string) Term {
	return Term{Kind: TermWord, Text: text}
}

// Tag returns a tag term. The text must not carry the leading '#'.
func Tag(text string) Term {
	return Term{Kind: TermTag, Text: text}
}

// String renders the term the way it is written on a search line.
func (t Term) String() string {
	if t.Kind == TermTag {
		return "#" + t.Text
	}
	return t.Text
}

// PartitionTerms splits terms into word texts and tag texts,
// preserving the relative order within each kind.
func PartitionTerms(terms []Term) (words, tags []string) {
	for _, t := range terms {
		switch t.Kind {
		case TermWord:
			words = append(words, t.Text)
		case TermTag:
			tags = append(tags, t.Text)
		}
	}
	return words, tags
}
