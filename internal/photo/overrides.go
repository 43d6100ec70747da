package photo

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Overrides maps a word, exactly as stored, to a user supplied image locator.
// It lives for one session and is never persisted.
type Overrides struct {
	mu   sync.RWMutex
	refs map[string]string
}

// NewOverrides returns an empty override map.
func NewOverrides() *Overrides {
	return &Overrides{refs: map[string]string{}}
}

// Set associates word with ref, replacing any earlier override.
func (o *Overrides) Set(word, ref string) {
	o.mu.Lock()
	o.refs[word] = ref
	o.mu.Unlock()
}

// Lookup returns the override for word.
func (o *Overrides) Lookup(word string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	ref, ok := o.refs[word]
	return ref, ok
}

// Len returns the number of overridden words.
func (o *Overrides) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.refs)
}

// Words returns the overridden words in sorted order.
func (o *Overrides) Words() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]string, 0, len(o.refs))
	for w := range o.refs {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

const blobScheme = "blob:"

// Blob is an in-memory copy of an imported file.
type Blob struct {
	Name        string
	ContentType string
	Data        []byte
}

// Blobs keeps imported file contents in memory for the session.
type Blobs struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

// NewBlobs returns an empty blob store.
func NewBlobs() *Blobs {
	return &Blobs{blobs: map[string]Blob{}}
}

// Put stores data and returns its locator.
func (b *Blobs) Put(name string, data []byte) string {
	ref := blobScheme + uuid.NewString()
	blob := Blob{
		Name:        name,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}
	b.mu.Lock()
	b.blobs[ref] = blob
	b.mu.Unlock()
	return ref
}

// Get returns the blob behind ref.
func (b *Blobs) Get(ref string) (Blob, bool) {
	if !strings.HasPrefix(ref, blobScheme) {
		return Blob{}, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	blob, ok := b.blobs[ref]
	return blob, ok
}

// IsBlobRef reports whether ref points into a blob store.
func IsBlobRef(ref string) bool {
	return strings.HasPrefix(ref, blobScheme)
}
