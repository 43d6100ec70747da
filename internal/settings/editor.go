// Package settings holds the word list editor behind the settings screen.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/wordmatch/internal/importer"
	"github.com/verte-zerg/wordmatch/internal/wordbank"
)

// ErrEmptyList is returned by Apply when the working copy has no words.
var ErrEmptyList = errors.New("word list is empty")

// Editor is a working copy of the word list, one word per line. Nothing
// reaches the bank or the store until Apply.
type Editor struct {
	bank *wordbank.Bank
	kv   wordbank.KV
	text string

	// ImportFile reads a word file; defaults to importer.File.
	ImportFile func(path string) ([]string, error)
}

// NewEditor opens a working copy of bank. kv may be nil, in which case
// Apply only updates the bank.
func NewEditor(bank *wordbank.Bank, kv wordbank.KV) *Editor {
	e := &Editor{bank: bank, kv: kv, ImportFile: importer.File}
	e.Revert()
	return e
}

// Text returns the working copy.
func (e *Editor) Text() string {
	return e.text
}

// SetText replaces the working copy.
func (e *Editor) SetText(text string) {
	e.text = text
}

// Words returns the working copy as it would be applied.
func (e *Editor) Words() []string {
	return wordbank.Sanitize(wordbank.SplitLines(e.text))
}

// Dirty reports whether the working copy differs from the bank.
func (e *Editor) Dirty() bool {
	return strings.Join(e.Words(), "\n") != strings.Join(e.bank.Words(), "\n")
}

// Import replaces the working copy with the words read from path. On error
// the working copy is left unchanged.
func (e *Editor) Import(path string) (int, error) {
	words, err := e.ImportFile(path)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", path, err)
	}
	e.text = strings.Join(words, "\n")
	return len(words), nil
}

// Apply sanitizes the working copy, installs it in the bank and persists
// it. It returns the applied list.
func (e *Editor) Apply(ctx context.Context) ([]string, error) {
	words := e.Words()
	if len(words) == 0 {
		return nil, ErrEmptyList
	}
	e.bank.SetWords(words)
	e.text = strings.Join(words, "\n")
	if e.kv == nil {
		return words, nil
	}
	if err := wordbank.Save(ctx, e.kv, words); err != nil {
		return words, err
	}
	return words, nil
}

// Reset loads the built-in words into the working copy.
func (e *Editor) Reset() {
	e.text = strings.Join(wordbank.DefaultWords(), "\n")
}

// Revert discards edits and reloads the bank's words.
func (e *Editor) Revert() {
	e.text = strings.Join(e.bank.Words(), "\n")
}
