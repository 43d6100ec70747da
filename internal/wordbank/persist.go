package wordbank

import (
	"context"
	"encoding/json"
	"fmt"
)

// StorageKey is the settings key holding the serialized word list.
const StorageKey = "words"

// KV is a flat key/value store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Load reads the persisted word list. Missing, unreadable or invalid data
// yields the default list; the error is returned for logging only.
func Load(ctx context.Context, kv KV) ([]string, error) {
	raw, ok, err := kv.Get(ctx, StorageKey)
	if err != nil {
		return DefaultWords(), fmt.Errorf("failed to read word list: %w", err)
	}
	if !ok {
		return DefaultWords(), nil
	}
	var words []string
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		return DefaultWords(), fmt.Errorf("failed to decode word list: %w", err)
	}
	words = Sanitize(words)
	if len(words) == 0 {
		return DefaultWords(), nil
	}
	return words, nil
}

// Save persists the word list.
func Save(ctx context.Context, kv KV, words []string) error {
	if words == nil {
		words = []string{}
	}
	raw, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to encode word list: %w", err)
	}
	if err := kv.Put(ctx, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}
