// Package shuffle provides the random ordering helpers used by every play mode.
package shuffle

import (
	"math/rand"
	"time"
)

// Shuffler owns the random source used for ordering and picking.
type Shuffler struct {
	rnd *rand.Rand
}

// New returns a Shuffler seeded with the current time.
func New() *Shuffler {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Shuffler with a fixed seed.
func NewSeeded(seed int64) *Shuffler {
	return &Shuffler{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform int in [0, n).
func (s *Shuffler) Intn(n int) int {
	return s.rnd.Intn(n)
}

// Shuffle returns a shuffled copy of items using the Durstenfeld variant of
// Fisher–Yates. The input is not modified.
func Shuffle[T any](s *Shuffler, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Perm returns a shuffled permutation of 0..n-1.
func Perm(s *Shuffler, n int) []int {
	return Shuffle(s, Identity(n))
}

// Identity returns 0..n-1 in order.
func Identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// PickOne returns a uniformly chosen element. ok is false for an empty slice.
func PickOne[T any](s *Shuffler, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[s.rnd.Intn(len(items))], true
}

// Sample returns up to n elements chosen uniformly without replacement.
func Sample[T any](s *Shuffler, items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < n; i++ {
		j := i + s.rnd.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
