package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Player plays audio bytes.
type Player interface {
	Play(ctx context.Context, data []byte) error
}

// CommandPlayer writes the clip to a temporary file and runs an external
// player on it, e.g. "mpg123 -q" or "afplay".
type CommandPlayer struct {
	Command string
	TempDir string
}

// Play runs the player and waits for it to exit.
func (p CommandPlayer) Play(ctx context.Context, data []byte) error {
	parts := strings.Fields(p.Command)
	if len(parts) == 0 {
		return fmt.Errorf("player command is empty")
	}
	file, err := os.CreateTemp(p.TempDir, "wordmatch-*.mp3")
	if err != nil {
		return fmt.Errorf("failed to create clip file: %w", err)
	}
	path := file.Name()
	defer func() {
		if rerr := os.Remove(path); rerr != nil {
			// Best-effort temp cleanup.
			_ = rerr
		}
	}()
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write clip file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write clip file: %w", err)
	}
	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], path)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("player %s failed: %w: %s", parts[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Nop discards audio.
type Nop struct{}

// Play does nothing.
func (Nop) Play(context.Context, []byte) error {
	return nil
}
