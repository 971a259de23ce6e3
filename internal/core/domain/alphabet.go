package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultAlphabet is the symbol set of the line protocol:
// lower-case ASCII letters plus '-'.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz-"

// reservedSymbols separate tokens on a command line and can never be
// part of a word or tag.
const reservedSymbols = " \t#\"\r\n"

// Alphabet is an ordered, duplicate-free set of symbols.
// The position of a symbol is its index in the definition string.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an alphabet from the symbols of def, in order.
func NewAlphabet(def string) (*Alphabet, error) {
	if def == "" {
		return nil, fmt.Errorf("alphabet is empty: %w", ErrInvalidInput)
	}
	if !utf8.ValidString(def) {
		return nil, fmt.Errorf("alphabet is not valid UTF-8: %w", ErrInvalidInput)
	}

	a := &Alphabet{
		symbols: make([]rune, 0, len(def)),
		index:   make(map[rune]int, len(def)),
	}
	for _, r := range def {
		if strings.ContainsRune(reservedSymbols, r) {
			return nil, fmt.Errorf("alphabet contains reserved symbol %q: %w", r, ErrInvalidInput)
		}
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("alphabet contains %q twice: %w", r, ErrInvalidInput)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error.
// Intended for package-level defaults and tests.
func MustAlphabet(def string) *Alphabet {
	a, err := NewAlphabet(def)
	if err != nil {
		panic(err)
	}
	return a
}

// Size returns the number of symbols.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Index returns the position of r, or false if r is not a symbol.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Symbol returns the symbol at position i.
func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

// Contains reports whether r is a symbol of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Validate checks that s is non-empty and made only of alphabet symbols.
func (a *Alphabet) Validate(s string) error {
	if s == "" {
		return fmt.Errorf("empty string: %w", ErrInvalidInput)
	}
	for _, r := range s {
		if !a.Contains(r) {
			return fmt.Errorf("%q contains symbol %q outside the alphabet: %w", s, r, ErrInvalidInput)
		}
	}
	return nil
}

// String returns the definition string.
func (a *Alphabet) String() string {
	return string(a.symbols)
}
