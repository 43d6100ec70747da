package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/wordmatch/internal/config"
	"github.com/verte-zerg/wordmatch/internal/wordbank"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("wordmatch %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func isolateXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	if cfg.Game.Mode != nil || cfg.Audio.Enabled != nil || cfg.Photos.Dir != nil {
		t.Fatalf("commented template should set nothing, got %+v", cfg)
	}
	for _, section := range []string{"[game]", "[audio]", "[photos]", "cache-size"} {
		if !strings.Contains(defaultConfigTemplate(), section) {
			t.Fatalf("template missing %s", section)
		}
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("mode", "choice"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	fromFile := "spelling"
	applyStringConfig(cmd, "mode", &playMode, &fromFile)
	if playMode != "choice" {
		t.Fatalf("flag should win, got %q", playMode)
	}

	hint := true
	playHint = false
	applyBoolConfig(cmd, "hint", &playHint, &hint)
	if !playHint {
		t.Fatalf("config value should apply when flag is unset")
	}
	applyBoolConfig(cmd, "random", &playRandom, nil)
	if playRandom {
		t.Fatalf("nil config value should leave the default")
	}
}

func TestResolveAudioConfig(t *testing.T) {
	isolateXDG(t)
	lang := "de"
	size := 8
	cfg := resolveAudioConfig(config.AudioConfig{Lang: &lang, CacheSize: &size}, true)
	if !cfg.Enabled || cfg.Lang != "de" || cfg.CacheSize != 8 {
		t.Fatalf("unexpected audio config %+v", cfg)
	}
	if cfg.Endpoint != defaultTTSEndpoint || cfg.Player != defaultPlayer {
		t.Fatalf("expected defaults for unset keys, got %+v", cfg)
	}
	if cfg.CacheDir != config.DefaultAudioCacheDir() {
		t.Fatalf("unexpected cache dir %q", cfg.CacheDir)
	}

	svc, err := newAudioService(resolveAudioConfig(config.AudioConfig{}, false))
	if err != nil || svc != nil {
		t.Fatalf("disabled audio should yield no service, got %v %v", svc, err)
	}
}

func TestWordsImportListReset(t *testing.T) {
	dir := isolateXDG(t)
	list := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(list, []byte("apple\n\n  pear \n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}

	runCLI(t, "words", "import", list)
	if out := runCLI(t, "words", "list"); out != "apple\npear\n" {
		t.Fatalf("unexpected list after import: %q", out)
	}

	runCLI(t, "words", "reset")
	out := runCLI(t, "words", "list")
	want := strings.Join(wordbank.DefaultWords(), "\n") + "\n"
	if out != want {
		t.Fatalf("expected default words after reset, got %q", out)
	}
}

func TestPhotosPreview(t *testing.T) {
	dir := isolateXDG(t)
	photos := filepath.Join(dir, "photos")
	if err := os.MkdirAll(photos, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"cafe.jpg", "zoo-trip.png", "notes.txt", "zebra.gif"} {
		if err := os.WriteFile(filepath.Join(photos, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	out := runCLI(t, "photos", photos)
	for _, want := range []string{"cafe.jpg -> cafe", "zoo-trip.png -> zoo", "zebra.gif (no match)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "notes.txt") {
		t.Fatalf("non-image files should be skipped:\n%s", out)
	}
}

func TestStatsPlainEmptyHistory(t *testing.T) {
	isolateXDG(t)
	statsMode, statsSince, statsLast, statsWindow = "", "", 0, defaultTrendWindow
	out := runCLI(t, "stats", "--plain")
	if out == "" {
		t.Fatalf("expected a report even without rounds")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := expandHome("~/pics"); got != filepath.Join(home, "pics") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := expandHome("/abs/pics"); got != "/abs/pics" {
		t.Fatalf("absolute path changed: %q", got)
	}
}
