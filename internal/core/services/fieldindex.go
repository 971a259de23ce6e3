package services

import (
	"fmt"

	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/core/ports/driven"
)

// FieldIndex keeps one search index per record field.
type FieldIndex struct {
	alphabet *domain.Alphabet
	words    driven.SearchIndex
	tags     driven.SearchIndex
}

// NewFieldIndex builds empty word and tag indexes with factory.
func NewFieldIndex(
	factory driven.IndexFactory,
	strategy domain.IndexStrategy,
	alphabet *domain.Alphabet,
) (*FieldIndex, error) {
	words, err := factory.Create(strategy, alphabet)
	if err != nil {
		return nil, fmt.Errorf("word index: %w", err)
	}
	tags, err := factory.Create(strategy, alphabet)
	if err != nil {
		return nil, fmt.Errorf("tag index: %w", err)
	}
	return &FieldIndex{
		alphabet: alphabet,
		words:    words,
		tags:     tags,
	}, nil
}

// Validate checks every word and tag against the alphabet.
func (f *FieldIndex) Validate(words, tags []string) error {
	for _, w := range words {
		if err := f.alphabet.Validate(w); err != nil {
			return fmt.Errorf("word: %w", err)
		}
	}
	for _, t := range tags {
		if err := f.alphabet.Validate(t); err != nil {
			return fmt.Errorf("tag #%s: %w", t, err)
		}
	}
	return nil
}

// Add indexes the words and tags of r.
// Both fields are validated first so a rejected record leaves no trace.
func (f *FieldIndex) Add(r domain.Record) error {
	if err := f.Validate(r.Words, r.Tags); err != nil {
		return err
	}
	if err := f.words.Add(r.ID, r.Words); err != nil {
		return err
	}
	if len(r.Tags) > 0 {
		if err := f.tags.Add(r.ID, r.Tags); err != nil {
			f.words.Delete(r.ID)
			return err
		}
	}
	return nil
}

// Delete removes id from both indexes.
func (f *FieldIndex) Delete(id uint64) {
	f.words.Delete(id)
	f.tags.Delete(id)
}

// Words returns the word index.
func (f *FieldIndex) Words() driven.SearchIndex { return f.words }

// Tags returns the tag index.
func (f *FieldIndex) Tags() driven.SearchIndex { return f.tags }

// Alphabet returns the alphabet both indexes accept.
func (f *FieldIndex) Alphabet() *domain.Alphabet { return f.alphabet }
