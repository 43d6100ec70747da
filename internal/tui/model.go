// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordmatch/internal/audio"
	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/photo"
	"github.com/verte-zerg/wordmatch/internal/round"
	"github.com/verte-zerg/wordmatch/internal/shuffle"
	"github.com/verte-zerg/wordmatch/internal/wordbank"
)

type screen int

const (
	screenHome screen = iota
	screenPlay
	screenSettings
)

const (
	indent       = 2
	speakTimeout = 15 * time.Second
	storeTimeout = 5 * time.Second
)

// HistoryRecorder stores finished rounds.
type HistoryRecorder interface {
	InsertRound(ctx context.Context, rec model.RoundRecord) (int64, error)
}

// Deps are the collaborators shared by every screen. Zero fields get
// in-memory defaults.
type Deps struct {
	Bank      *wordbank.Bank
	KV        wordbank.KV
	History   HistoryRecorder
	Audio     *audio.Service
	Overrides *photo.Overrides
	Blobs     *photo.Blobs
	Shuffler  *shuffle.Shuffler
	Now       func() time.Time
}

type timerMsg struct {
	serial int
	timer  round.Timer
}

type recordedMsg struct {
	err error
}

type photosImportedMsg struct {
	dir string
	res photo.Result
	err error
}

// Model implements the Bubble Tea game UI.
type Model struct {
	deps   Deps
	config model.Config
	keys   keyMap
	help   help.Model
	tick   func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

	width  int
	height int

	screen    screen
	homeIndex int

	ctrl    round.Controller
	serial  int
	drag    dragState
	choice  choiceState
	prompt  *finishPrompt
	pending []round.Summary

	gesture  *round.Gesture
	pressHit *hit

	settings *settingsScreen

	notice    string
	noticeErr bool
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#8FB3FF"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#52C41A"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#FF4D4F"))
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3A"))
	cardStyle     = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Align(lipgloss.Center)
)

// NewModel constructs the game UI. A non-empty cfg.Mode starts that mode
// right away instead of showing the home menu.
func NewModel(cfg model.Config, deps Deps) *Model {
	if deps.Bank == nil {
		deps.Bank = wordbank.New(wordbank.DefaultWords())
	}
	if deps.Overrides == nil {
		deps.Overrides = photo.NewOverrides()
	}
	if deps.Blobs == nil {
		deps.Blobs = photo.NewBlobs()
	}
	if deps.Shuffler == nil {
		deps.Shuffler = shuffle.New()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	m := &Model{
		deps:    deps,
		config:  cfg,
		keys:    defaultKeyMap(),
		help:    help.New(),
		tick:    tea.Tick,
		gesture: round.NewGesture(round.DefaultDragThreshold),
	}
	if cfg.Mode != "" {
		m.startRound(cfg.Mode)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.config.PhotoDir == "" {
		return nil
	}
	return m.importPhotos(m.config.PhotoDir)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.settings != nil {
			m.settings.resize(m.width, m.height)
		}
		return m, nil
	case timerMsg:
		if m.ctrl == nil || msg.serial != m.serial {
			return m, nil
		}
		m.ctrl.Fire(msg.timer)
		m.syncChoice()
		return m, m.flushFinished()
	case recordedMsg:
		if msg.err != nil {
			log.Printf("failed to save round: %v", msg.err)
			m.setNotice(fmt.Sprintf("Round not saved: %v", msg.err), true)
		}
		return m, nil
	case photosImportedMsg:
		m.photosImported(msg)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenHome:
			return m, m.updateHome(msg)
		case screenPlay:
			return m, m.updatePlay(msg)
		case screenSettings:
			return m, m.updateSettings(msg)
		}
	case tea.MouseMsg:
		return m, m.updateMouse(tea.MouseEvent(msg))
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body []string
	if m.screen == screenSettings && m.settings != nil {
		body = strings.Split(m.settingsView(), "\n")
	} else {
		body = m.layout().lines
	}
	footer := m.help.View(m.helpKeys())
	if m.width == 0 || m.height == 0 {
		return strings.Join(body, "\n") + "\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	return fitLines(body, m.width, max(1, m.height-footerHeight)) + "\n" + footerStyle.Render(footer)
}

// layout renders the home or play screen together with its hit boxes.
func (m *Model) layout() *layout {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if m.screen == screenPlay && m.ctrl != nil {
		return m.playLayout(width)
	}
	return m.homeLayout(width)
}

func (m *Model) helpKeys() helpKeys {
	k := m.keys
	switch m.screen {
	case screenSettings:
		return helpKeys{k.NextField, k.Apply, k.Defaults, k.Back, k.Quit}
	case screenPlay:
		if m.prompt != nil {
			return helpKeys{k.Left, k.Right, k.Select, k.Quit}
		}
		switch m.ctrl.(type) {
		case *round.Drag:
			return helpKeys{k.Left, k.Right, k.Up, k.Select, k.Random, k.Hint, k.Restart, k.Back}
		case *round.Spelling:
			return helpKeys{k.Left, k.Right, k.Submit, k.Prev, k.Next, k.Random, k.Hint, k.Back}
		}
		return helpKeys{k.Left, k.Right, k.Select, k.Prev, k.Next, k.Random, k.Hint, k.Back}
	}
	return helpKeys{k.Up, k.Down, k.Select, k.Quit}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return errorStyle.Render(m.notice)
	}
	return mutedStyle.Render(m.notice)
}

// startRound derives fresh entries and opens a round of mode.
func (m *Model) startRound(mode model.Mode) {
	m.serial++
	serial := m.serial
	entries := wordbank.ResolveImages(m.deps.Bank.DeriveItems(), m.deps.Overrides)
	opts := round.Options{
		Shuffler: m.deps.Shuffler,
		Random:   m.config.Random,
		Hint:     m.config.Hint,
		Now:      m.deps.Now,
		OnFinish: func(s round.Summary) {
			if serial != m.serial {
				return
			}
			m.pending = append(m.pending, s)
			m.prompt = &finishPrompt{summary: s}
		},
	}
	switch mode {
	case model.ModeChoice:
		m.ctrl = round.NewChoice(entries, opts)
	case model.ModeSpelling:
		m.ctrl = round.NewSpelling(entries, opts)
	default:
		mode = model.ModeDrag
		m.ctrl = round.NewDrag(entries, opts)
	}
	m.config.Mode = mode
	m.resetPlayState()
	m.screen = screenPlay
	m.notice = ""
}

func (m *Model) resetPlayState() {
	m.drag = dragState{}
	m.choice = choiceState{pos: -1}
	m.prompt = nil
	m.pressHit = nil
	m.gesture.Cancel()
	m.syncChoice()
}

// leaveRound drops the current round; its pending timers become stale.
func (m *Model) leaveRound() {
	m.serial++
	m.ctrl = nil
	m.prompt = nil
	m.screen = screenHome
}

func (m *Model) scheduleTimer(t round.Timer) tea.Cmd {
	serial := m.serial
	return m.tick(t.After, func(time.Time) tea.Msg {
		return timerMsg{serial: serial, timer: t}
	})
}

// handleResult turns a controller result into follow-up commands.
func (m *Model) handleResult(res round.Result) tea.Cmd {
	var cmds []tea.Cmd
	if res.Timer != nil {
		cmds = append(cmds, m.scheduleTimer(*res.Timer))
	}
	if res.Announce {
		switch res.Outcome {
		case round.OutcomeCorrect:
			cmds = append(cmds, m.speak(audio.PhraseCorrect))
		case round.OutcomeWrong:
			cmds = append(cmds, m.speak(audio.PhraseWrong))
		}
	}
	cmds = append(cmds, m.flushFinished())
	return tea.Batch(cmds...)
}

func (m *Model) speak(phrase string) tea.Cmd {
	svc := m.deps.Audio
	if !svc.Enabled() {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
		defer cancel()
		svc.Speak(ctx, phrase)
		return nil
	}
}

// flushFinished hands finished rounds to the history store.
func (m *Model) flushFinished() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	summaries := m.pending
	m.pending = nil
	hist := m.deps.History
	if hist == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		for _, s := range summaries {
			rec := model.RoundRecord{
				StartedAt: s.StartedAt,
				EndedAt:   s.EndedAt,
				Mode:      s.Mode,
				Random:    s.Random,
				Hint:      s.Hint,
				Entries:   s.Entries,
				Mistakes:  s.Mistakes,
			}
			if _, err := hist.InsertRound(ctx, rec); err != nil {
				return recordedMsg{err: err}
			}
		}
		return recordedMsg{}
	}
}

func (m *Model) importPhotos(dir string) tea.Cmd {
	words := m.deps.Bank.Words()
	overrides := m.deps.Overrides
	blobs := m.deps.Blobs
	return func() tea.Msg {
		res, err := photo.Import(context.Background(), photo.DirSource{Dir: dir}, words, overrides, blobs)
		return photosImportedMsg{dir: dir, res: res, err: err}
	}
}

func (m *Model) photosImported(msg photosImportedMsg) {
	switch {
	case msg.err != nil:
		log.Printf("photo import from %s failed: %v", msg.dir, msg.err)
		m.setNotice(fmt.Sprintf("Photo import failed: %v", msg.err), true)
	case len(msg.res.Assigned) == 0:
		m.setNotice("No photo matched any word", false)
	default:
		text := fmt.Sprintf("Attached %d photo(s)", len(msg.res.Assigned))
		if n := len(msg.res.Skipped); n > 0 {
			text += fmt.Sprintf(", %d unreadable", n)
			for _, err := range msg.res.Skipped {
				log.Printf("photo skipped: %v", err)
			}
		}
		m.setNotice(text, false)
	}
}

func (m *Model) renderStatus() string {
	if m.ctrl == nil {
		return ""
	}
	done, total := m.ctrl.Progress()
	segments := []string{
		fmt.Sprintf("Progress %d/%d", done, total),
		fmt.Sprintf("Mistakes %d", m.ctrl.Mistakes()),
		"Random " + onOff(m.ctrl.Random()),
		"Hint " + onOff(m.ctrl.Hint()),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
