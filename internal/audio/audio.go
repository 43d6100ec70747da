// Package audio voices short feedback phrases. It is optional: every
// failure is logged and swallowed so play never waits on sound.
package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Fixed feedback phrases.
const (
	PhraseCorrect = "Well done!"
	PhraseWrong   = "Try again"
)

// DefaultCacheSize is the number of clips kept in memory.
const DefaultCacheSize = 64

// Service fetches, caches and plays phrases. It is safe for concurrent use.
type Service struct {
	synth    Synthesizer
	player   Player
	cache    *lru.Cache[string, []byte]
	group    singleflight.Group
	cacheDir string
	logger   *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCacheDir keeps synthesized clips on disk under dir.
func WithCacheDir(dir string) Option {
	return func(s *Service) {
		s.cacheDir = dir
	}
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New builds a service. A nil synth disables speech.
func New(synth Synthesizer, player Player, cacheSize int, opts ...Option) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio cache: %w", err)
	}
	if player == nil {
		player = Nop{}
	}
	s := &Service{
		synth:  synth,
		player: player,
		cache:  cache,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Enabled reports whether the service can produce sound.
func (s *Service) Enabled() bool {
	return s != nil && s.synth != nil
}

// Fetch returns the clip for phrase from memory, disk or the synthesizer.
// Concurrent fetches of one phrase share a single request.
func (s *Service) Fetch(ctx context.Context, phrase string) ([]byte, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("audio is disabled")
	}
	key := cacheKey(phrase)
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		if data, ok := s.readDisk(key); ok {
			s.cache.Add(key, data)
			return data, nil
		}
		data, err := s.synth.Synthesize(ctx, phrase)
		if err != nil {
			return nil, err
		}
		s.cache.Add(key, data)
		s.writeDisk(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Speak fetches and plays phrase. Failures are logged, never returned.
func (s *Service) Speak(ctx context.Context, phrase string) {
	if !s.Enabled() {
		return
	}
	data, err := s.Fetch(ctx, phrase)
	if err != nil {
		s.logger.Printf("audio: fetch %q: %v", phrase, err)
		return
	}
	if err := s.player.Play(ctx, data); err != nil {
		s.logger.Printf("audio: play %q: %v", phrase, err)
	}
}

// Cached returns the number of clips held in memory.
func (s *Service) Cached() int {
	if s == nil {
		return 0
	}
	return s.cache.Len()
}

func cacheKey(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

func (s *Service) diskPath(key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(s.cacheDir, "phrase_"+name+".mp3")
}

func (s *Service) readDisk(key string) ([]byte, bool) {
	if s.cacheDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(s.diskPath(key))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (s *Service) writeDisk(key string, data []byte) {
	if s.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		s.logger.Printf("audio: cache dir: %v", err)
		return
	}
	if err := os.WriteFile(s.diskPath(key), data, 0o644); err != nil {
		s.logger.Printf("audio: cache write: %v", err)
	}
}
