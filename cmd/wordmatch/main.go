// Package main provides the CLI entrypoint for wordmatch.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wordmatch/internal/audio"
	"github.com/verte-zerg/wordmatch/internal/config"
	"github.com/verte-zerg/wordmatch/internal/importer"
	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/photo"
	"github.com/verte-zerg/wordmatch/internal/stats"
	"github.com/verte-zerg/wordmatch/internal/statsui"
	"github.com/verte-zerg/wordmatch/internal/store"
	"github.com/verte-zerg/wordmatch/internal/tui"
	"github.com/verte-zerg/wordmatch/internal/wordbank"
)

const (
	defaultTTSEndpoint = "https://translate.google.com/translate_tts?client=tw-ob"
	defaultTTSLang     = "en"
	defaultPlayer      = "mpg123 -q"
	defaultTrendWindow = 5
	debugEnv           = "WORDMATCH_DEBUG"
)

var (
	playMode   string
	playRandom bool
	playHint   bool
	playPhotos string
	playAudio  bool

	statsMode   string
	statsSince  string
	statsLast   int
	statsWindow int
	statsPlain  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordmatch",
		Short:         "Picture and word matching game for children",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playMode, "mode", "", "start right away in a mode (drag, choice, spelling)")
	rootCmd.Flags().BoolVar(&playRandom, "random", false, "shuffle the play order")
	rootCmd.Flags().BoolVar(&playHint, "hint", false, "show the word under each picture")
	rootCmd.Flags().StringVar(&playPhotos, "photos", "", "directory of photos named after the words")
	rootCmd.Flags().BoolVar(&playAudio, "audio", false, "speak feedback through the configured TTS endpoint")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newPhotosCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Game.Mode)
	applyBoolConfig(cmd, "random", &playRandom, fileCfg.Game.Random)
	applyBoolConfig(cmd, "hint", &playHint, fileCfg.Game.Hint)
	applyStringConfig(cmd, "photos", &playPhotos, fileCfg.Photos.Dir)
	applyBoolConfig(cmd, "audio", &playAudio, fileCfg.Audio.Enabled)

	cfg := model.Config{
		Random:   playRandom,
		Hint:     playHint,
		PhotoDir: expandHome(playPhotos),
	}
	if strings.TrimSpace(playMode) != "" {
		mode, err := model.ParseMode(playMode)
		if err != nil {
			return fmt.Errorf("invalid --mode: %w", err)
		}
		cfg.Mode = mode
	}
	if cfg.PhotoDir != "" {
		if info, err := os.Stat(cfg.PhotoDir); err != nil || !info.IsDir() {
			return fmt.Errorf("--photos must be an existing directory: %s", cfg.PhotoDir)
		}
	}
	audioCfg := resolveAudioConfig(fileCfg.Audio, playAudio)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	words, err := wordbank.Load(context.Background(), st)
	if err != nil {
		logErrf("%v; using the default words\n", err)
	}

	logFile, err := redirectLog()
	if err != nil {
		return err
	}
	if logFile != nil {
		defer func() {
			if cerr := logFile.Close(); cerr != nil {
				logErrf("failed to close debug log: %v\n", cerr)
			}
		}()
	}

	speech, err := newAudioService(audioCfg)
	if err != nil {
		return err
	}

	m := tui.NewModel(cfg, tui.Deps{
		Bank:    wordbank.New(words),
		KV:      st,
		History: st,
		Audio:   speech,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// redirectLog keeps the std logger off the terminal while the TUI owns it.
func redirectLog() (*os.File, error) {
	if os.Getenv(debugEnv) == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "wordmatch")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return f, nil
}

func resolveAudioConfig(fileCfg config.AudioConfig, enabled bool) model.AudioConfig {
	cfg := model.AudioConfig{
		Enabled:   enabled,
		Endpoint:  defaultTTSEndpoint,
		Lang:      defaultTTSLang,
		Player:    defaultPlayer,
		CacheSize: audio.DefaultCacheSize,
		CacheDir:  config.DefaultAudioCacheDir(),
	}
	if fileCfg.Endpoint != nil {
		cfg.Endpoint = *fileCfg.Endpoint
	}
	if fileCfg.Lang != nil {
		cfg.Lang = *fileCfg.Lang
	}
	if fileCfg.Player != nil {
		cfg.Player = *fileCfg.Player
	}
	if fileCfg.CacheSize != nil {
		cfg.CacheSize = *fileCfg.CacheSize
	}
	return cfg
}

// newAudioService returns nil when speech is off; a nil service is silent.
func newAudioService(cfg model.AudioConfig) (*audio.Service, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("audio is enabled but no endpoint is configured")
	}
	player := audio.CommandPlayer{Command: cfg.Player}
	svc, err := audio.New(
		audio.NewHTTPSynthesizer(cfg.Endpoint, cfg.Lang),
		player,
		cfg.CacheSize,
		audio.WithCacheDir(cfg.CacheDir),
		audio.WithLogger(log.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up audio: %w", err)
	}
	return svc, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Show or change the saved word list",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the saved word list",
		Args:  cobra.NoArgs,
		RunE:  runWordsListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import FILE",
		Short: "Replace the word list from a .xlsx, .csv or .txt file",
		Args:  cobra.ExactArgs(1),
		RunE:  runWordsImportCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in word list",
		Args:  cobra.NoArgs,
		RunE:  runWordsResetCmd,
	})
	return cmd
}

func runWordsListCmd(cmd *cobra.Command, _ []string) error {
	return withStore(func(st *store.Store) error {
		words, err := wordbank.Load(cmd.Context(), st)
		if err != nil {
			logErrf("%v; showing the default words\n", err)
		}
		for _, w := range words {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), w); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	})
}

func runWordsImportCmd(cmd *cobra.Command, args []string) error {
	words, err := importer.File(args[0])
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}
	return withStore(func(st *store.Store) error {
		if err := wordbank.Save(cmd.Context(), st, words); err != nil {
			return err
		}
		logErrf("Saved %d words\n", len(words))
		return nil
	})
}

func runWordsResetCmd(cmd *cobra.Command, _ []string) error {
	return withStore(func(st *store.Store) error {
		if err := st.Delete(cmd.Context(), wordbank.StorageKey); err != nil {
			return fmt.Errorf("failed to reset word list: %w", err)
		}
		logErrf("Restored %d default words\n", len(wordbank.DefaultWords()))
		return nil
	})
}

func newPhotosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "photos DIR",
		Short: "Show which photos in DIR would be attached to which words",
		Args:  cobra.ExactArgs(1),
		RunE:  runPhotosCmd,
	}
}

func runPhotosCmd(cmd *cobra.Command, args []string) error {
	dir := expandHome(args[0])
	files, err := photo.DirSource{Dir: dir}.Files(cmd.Context())
	if err != nil {
		return err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return withStore(func(st *store.Store) error {
		words, err := wordbank.Load(cmd.Context(), st)
		if err != nil {
			logErrf("%v; matching against the default words\n", err)
		}
		out := cmd.OutOrStdout()
		assignments := photo.Preview(names, words)
		matched := map[string]bool{}
		for _, a := range assignments {
			matched[a.File] = true
			if _, err := fmt.Fprintf(out, "%s -> %s\n", a.File, a.Word); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		for _, name := range names {
			if matched[name] {
				continue
			}
			if _, err := fmt.Fprintf(out, "%s (no match)\n", name); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if len(names) == 0 {
			logErrln("No images found in", dir)
		}
		return nil
	})
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show round history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter (drag, choice, spelling)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&statsWindow, "window", defaultTrendWindow, "moving average window for the accuracy trend")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}

	cfg := model.StatsConfig{
		Since:  sinceTime,
		Last:   statsLast,
		Window: statsWindow,
	}
	if statsMode != "" {
		mode, err := model.ParseMode(statsMode)
		if err != nil {
			return fmt.Errorf("invalid --mode: %w", err)
		}
		cfg.Mode = mode
	}

	return withStore(func(st *store.Store) error {
		if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
			report, err := stats.BuildReport(cmd.Context(), st, cfg)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			out := cmd.OutOrStdout()
			if err := stats.RenderSummary(out, report); err != nil {
				return err
			}
			return stats.RenderTrend(out, report.Rounds, cfg.Window, stats.TerminalWidth())
		}
		program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	})
}

func withStore(fn func(st *store.Store) error) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(st)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordmatch configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# mode = "drag"           # Start right away in drag, choice or spelling
# random = false          # Shuffle the play order
# hint = false            # Show the word under each picture

[audio]
# enabled = false         # Speak "%s" / "%s" after answers
# endpoint = %q
# lang = %q
# player = %q      # Command that plays an mp3 file
# cache-size = %d         # Clips kept in memory

[photos]
# dir = "~/Pictures/wordmatch"   # Photos named after the words
`,
		audio.PhraseCorrect,
		audio.PhraseWrong,
		defaultTTSEndpoint,
		defaultTTSLang,
		defaultPlayer,
		audio.DefaultCacheSize,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		_ = err
	}
}
