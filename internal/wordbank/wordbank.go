// Package wordbank owns the canonical word list and derives display entries.
package wordbank

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/verte-zerg/wordmatch/internal/model"
)

const placeholderBase = "https://placehold.co/300x300?text="

var defaultWords = []string{
	"cafe",
	"shop",
	"school",
	"park",
	"library",
	"hospital",
	"bank",
	"bakery",
	"zoo",
	"museum",
	"cinema",
	"supermarket",
	"bus stop",
	"car park",
	"swimming pool",
}

// DefaultWords returns a copy of the built-in word list.
func DefaultWords() []string {
	return append([]string(nil), defaultWords...)
}

// ImageLookup resolves a word to a user supplied image locator.
type ImageLookup interface {
	Lookup(word string) (string, bool)
}

// Bank holds the ordered word list. It does not validate words; callers
// sanitize before SetWords.
type Bank struct {
	words []string
}

// New returns a Bank holding words.
func New(words []string) *Bank {
	b := &Bank{}
	b.SetWords(words)
	return b
}

// SetWords replaces the word list.
func (b *Bank) SetWords(words []string) {
	b.words = append([]string(nil), words...)
}

// Words returns a copy of the word list.
func (b *Bank) Words() []string {
	return append([]string(nil), b.words...)
}

// Len returns the number of words.
func (b *Bank) Len() int {
	return len(b.words)
}

// DeriveItems maps every word to a fresh entry with a placeholder image.
// IDs change on every call.
func (b *Bank) DeriveItems() []model.WordEntry {
	entries := make([]model.WordEntry, len(b.words))
	for i, w := range b.words {
		entries[i] = model.WordEntry{
			ID:       uuid.NewString(),
			Word:     w,
			ImageRef: PlaceholderImage(w),
		}
	}
	return entries
}

// PlaceholderImage returns the deterministic placeholder locator for word.
func PlaceholderImage(word string) string {
	return placeholderBase + url.QueryEscape(word)
}

// ResolveImages returns a copy of entries with overridden images applied.
func ResolveImages(entries []model.WordEntry, lookup ImageLookup) []model.WordEntry {
	out := make([]model.WordEntry, len(entries))
	copy(out, entries)
	if lookup == nil {
		return out
	}
	for i := range out {
		if ref, ok := lookup.Lookup(out[i].Word); ok {
			out[i].ImageRef = ref
		}
	}
	return out
}
