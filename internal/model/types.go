// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode identifies one of the play modes.
type Mode string

// Play modes.
const (
	ModeDrag     Mode = "drag"
	ModeChoice   Mode = "choice"
	ModeSpelling Mode = "spelling"
)

// Modes lists the play modes in menu order.
func Modes() []Mode {
	return []Mode{ModeDrag, ModeChoice, ModeSpelling}
}

// ParseMode resolves a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDrag:
		return ModeDrag, nil
	case ModeChoice:
		return ModeChoice, nil
	case ModeSpelling:
		return ModeSpelling, nil
	}
	return "", fmt.Errorf("unknown mode %q (want drag, choice or spelling)", s)
}

// Title returns a display label for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeDrag:
		return "Match the pictures"
	case ModeChoice:
		return "Pick the word"
	case ModeSpelling:
		return "Spell the word"
	}
	return string(m)
}

// WordEntry is one word and picture pairing shown to the player.
// IDs are only stable within one derivation of the word list.
type WordEntry struct {
	ID       string
	Word     string
	ImageRef string
}

// Config defines play settings.
type Config struct {
	Mode     Mode
	Random   bool
	Hint     bool
	PhotoDir string
}

// AudioConfig defines the optional spoken feedback.
type AudioConfig struct {
	Enabled   bool
	Endpoint  string
	Lang      string
	Player    string
	CacheSize int
	CacheDir  string
}

// StatsConfig defines filters for the history report.
// Window is the moving-average window for trends.
type StatsConfig struct {
	Mode   Mode
	Since  *time.Time
	Last   int
	Window int
}

// RoundRecord captures a finished round.
type RoundRecord struct {
	StartedAt time.Time
	EndedAt   time.Time
	Mode      Mode
	Random    bool
	Hint      bool
	Entries   int
	Mistakes  int
}

// RoundAggregate is a stored round as read back for reporting.
type RoundAggregate struct {
	RoundID    int64
	Mode       Mode
	EndedAt    time.Time
	Entries    int
	Mistakes   int
	DurationMs int64
}
