package tui

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/photo"
	"github.com/verte-zerg/wordmatch/internal/round"
	"github.com/verte-zerg/wordmatch/internal/shuffle"
	"github.com/verte-zerg/wordmatch/internal/wordbank"
)

type memHistory struct {
	recs []model.RoundRecord
}

func (h *memHistory) InsertRound(_ context.Context, rec model.RoundRecord) (int64, error) {
	h.recs = append(h.recs, rec)
	return int64(len(h.recs)), nil
}

type memKV map[string]string

func (kv memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := kv[key]
	return v, ok, nil
}

func (kv memKV) Put(_ context.Context, key, value string) error {
	kv[key] = value
	return nil
}

func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return fn(time.Time{})
	}
}

func newTestModel(t *testing.T, words []string) *Model {
	t.Helper()
	m := NewModel(model.Config{}, Deps{
		Bank:     wordbank.New(words),
		KV:       memKV{},
		History:  &memHistory{},
		Shuffler: shuffle.NewSeeded(7),
	})
	m.tick = immediateTick
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func history(m *Model) []model.RoundRecord {
	return m.deps.History.(*memHistory).recs
}

// drain runs cmd and every command it leads to, feeding messages back
// into the model. Ticks fire immediately.
func drain(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, follow := m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func indexOf(items []string, want string) int {
	for i, s := range items {
		if s == want {
			return i
		}
	}
	return -1
}

func clickAt(m *Model, x, y int) tea.Cmd {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	return cmd
}

func TestHomeOpensModes(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog", "sun"})
	if m.screen != screenHome {
		t.Fatalf("expected home screen")
	}
	press(m, keyOf(tea.KeyDown))
	press(m, keyOf(tea.KeyEnter))
	if _, ok := m.ctrl.(*round.Choice); !ok || m.screen != screenPlay {
		t.Fatalf("expected choice round, got %T", m.ctrl)
	}

	press(m, keyOf(tea.KeyEsc))
	if m.screen != screenHome || m.ctrl != nil {
		t.Fatalf("expected esc to return home")
	}
	press(m, runes("3"))
	if _, ok := m.ctrl.(*round.Spelling); !ok {
		t.Fatalf("expected spelling round, got %T", m.ctrl)
	}
}

func TestHomeMouseClick(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog", "sun"})
	b, ok := m.layout().box(zoneMenu, 0)
	if !ok {
		t.Fatalf("expected menu box")
	}
	clickAt(m, b.x+1, b.line)
	if _, ok := m.ctrl.(*round.Drag); !ok {
		t.Fatalf("expected drag round, got %T", m.ctrl)
	}
}

func TestStartModeFromConfig(t *testing.T) {
	m := NewModel(model.Config{Mode: model.ModeSpelling, Hint: true}, Deps{Bank: wordbank.New([]string{"cat"})})
	if m.screen != screenPlay || !m.ctrl.Hint() {
		t.Fatalf("expected spelling round with hint on")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, []string{"cat"})
	cmd := press(m, keyOf(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestChoiceRoundRecordsHistory(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog", "sun"})
	m.startRound(model.ModeChoice)
	c := m.ctrl.(*round.Choice)

	for i := 0; i < 3; i++ {
		cur, ok := c.Current()
		if !ok {
			t.Fatalf("round finished early at %d", i)
		}
		idx := indexOf(c.Options(), cur.Word)
		if idx < 0 {
			t.Fatalf("current word %q not offered", cur.Word)
		}
		drain(m, press(m, runes(string(rune('1'+idx)))))
	}

	if !c.Finished() || m.prompt == nil {
		t.Fatalf("expected finished round with prompt")
	}
	recs := history(m)
	if len(recs) != 1 {
		t.Fatalf("expected 1 stored round, got %d", len(recs))
	}
	if recs[0].Mode != model.ModeChoice || recs[0].Entries != 3 || recs[0].Mistakes != 0 {
		t.Fatalf("unexpected record %+v", recs[0])
	}
	if !strings.Contains(m.View(), "All done!") {
		t.Fatalf("expected finished prompt in view")
	}
}

func TestChoiceWrongAnswerReverts(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog", "sun"})
	m.startRound(model.ModeChoice)
	c := m.ctrl.(*round.Choice)
	cur, _ := c.Current()
	wrong := -1
	for i, w := range c.Options() {
		if w != cur.Word {
			wrong = i
			break
		}
	}

	cmd := press(m, runes(string(rune('1'+wrong))))
	if c.Feedback() != round.FeedbackWrong || c.Mistakes() != 1 {
		t.Fatalf("expected wrong feedback and one mistake")
	}
	drain(m, cmd)
	if c.Feedback() != round.FeedbackIdle {
		t.Fatalf("expected feedback to revert, got %v", c.Feedback())
	}
	if pos := c.Position(); pos != 0 {
		t.Fatalf("expected to stay on first entry, got %d", pos)
	}
}

func TestPromptChoices(t *testing.T) {
	m := newTestModel(t, []string{"cat"})
	m.startRound(model.ModeChoice)
	c := m.ctrl.(*round.Choice)
	drain(m, press(m, runes("1")))
	if m.prompt == nil {
		t.Fatalf("expected prompt")
	}

	press(m, keyOf(tea.KeyEnter))
	if m.prompt != nil || c.Finished() {
		t.Fatalf("expected play again to restart the round")
	}

	drain(m, press(m, runes("1")))
	press(m, keyOf(tea.KeyRight))
	press(m, keyOf(tea.KeyRight))
	press(m, keyOf(tea.KeyEnter))
	if m.screen != screenHome {
		t.Fatalf("expected home after choosing Home")
	}
	if len(history(m)) != 2 {
		t.Fatalf("expected 2 stored rounds, got %d", len(history(m)))
	}
}

func TestStaleTimerIgnoredAfterLeaving(t *testing.T) {
	m := newTestModel(t, []string{"cat"})
	m.startRound(model.ModeChoice)
	cmd := press(m, runes("1"))
	press(m, keyOf(tea.KeyEsc))

	drain(m, cmd)
	if m.screen != screenHome || m.ctrl != nil {
		t.Fatalf("expected to stay home")
	}
	if len(history(m)) != 0 {
		t.Fatalf("expected no stored round")
	}
}

func TestSpellingRoundByTyping(t *testing.T) {
	m := newTestModel(t, []string{"apple", "bus stop"})
	m.startRound(model.ModeSpelling)
	s := m.ctrl.(*round.Spelling)

	for i := 0; i < 2; i++ {
		var typed []rune
		for _, cell := range s.Puzzle().Cells {
			if cell.Editable() {
				typed = append(typed, cell.Target)
			}
		}
		drain(m, press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: typed}))
	}

	if !s.Finished() {
		t.Fatalf("expected finished spelling round")
	}
	recs := history(m)
	if len(recs) != 1 || recs[0].Mode != model.ModeSpelling {
		t.Fatalf("unexpected history %+v", recs)
	}
}

func TestSpellingBackspaceAndClick(t *testing.T) {
	m := newTestModel(t, []string{"elephant"})
	m.startRound(model.ModeSpelling)
	s := m.ctrl.(*round.Spelling)

	first := s.Puzzle().Focus
	press(m, runes("x"))
	if s.Puzzle().Cells[first].Value != 'x' {
		t.Fatalf("expected x typed into focused cell")
	}

	b, ok := m.layout().box(zoneCells, first)
	if !ok {
		t.Fatalf("expected cell box")
	}
	clickAt(m, b.x, b.line)
	if s.Puzzle().Focus != first {
		t.Fatalf("expected click to focus cell %d, got %d", first, s.Puzzle().Focus)
	}
	press(m, keyOf(tea.KeyBackspace))
	if s.Puzzle().Cells[first].Filled() {
		t.Fatalf("expected backspace to clear the cell")
	}
}

func dragTargetIndex(d *round.Drag, word string, match bool) int {
	for i, e := range d.Targets() {
		if (e.Word == word) == match && !d.Matched(e.ID) {
			return i
		}
	}
	return -1
}

func TestDragKeyboardMatch(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog", "sun"})
	m.startRound(model.ModeDrag)
	d := m.ctrl.(*round.Drag)
	word := d.Pool()[0]
	j := dragTargetIndex(d, word, true)

	press(m, keyOf(tea.KeyEnter))
	if !m.drag.hasSel || !m.drag.onTargets {
		t.Fatalf("expected word picked and cursor on pictures")
	}
	for i := 0; i < j; i++ {
		press(m, keyOf(tea.KeyRight))
	}
	drain(m, press(m, keyOf(tea.KeyEnter)))

	if !d.Matched(d.Targets()[j].ID) {
		t.Fatalf("expected %q matched", word)
	}
	if len(d.Pool()) != 2 || m.drag.hasSel {
		t.Fatalf("expected pool to shrink and selection to clear")
	}
}

func TestDragWrongDropFlashes(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog", "sun"})
	m.startRound(model.ModeDrag)
	d := m.ctrl.(*round.Drag)
	word := d.Pool()[0]
	j := dragTargetIndex(d, word, false)

	press(m, keyOf(tea.KeyEnter))
	for i := 0; i < j; i++ {
		press(m, keyOf(tea.KeyRight))
	}
	cmd := press(m, keyOf(tea.KeyEnter))
	if d.ErrorWord() != word || d.Mistakes() != 1 {
		t.Fatalf("expected error flash for %q", word)
	}
	drain(m, cmd)
	if d.ErrorWord() != "" {
		t.Fatalf("expected flash to clear")
	}
}

func TestDragMouseGestureFinishesRound(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog"})
	m.startRound(model.ModeDrag)
	d := m.ctrl.(*round.Drag)

	for len(d.Pool()) > 0 {
		word := d.Pool()[0]
		j := dragTargetIndex(d, word, true)
		l := m.layout()
		from, ok := l.box(zonePool, 0)
		if !ok {
			t.Fatalf("expected pool box")
		}
		to, ok := l.box(zoneTargets, j)
		if !ok {
			t.Fatalf("expected target box")
		}
		m.Update(tea.MouseMsg{X: from.x + 1, Y: from.line, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		m.Update(tea.MouseMsg{X: to.x + 1, Y: to.line, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
		if !m.gesture.SuppressScroll() {
			t.Fatalf("expected drag to be recognized")
		}
		_, cmd := m.Update(tea.MouseMsg{X: to.x + 1, Y: to.line, Action: tea.MouseActionRelease})
		drain(m, cmd)
	}

	if !d.Finished() || m.prompt == nil {
		t.Fatalf("expected finished drag round")
	}
	recs := history(m)
	if len(recs) != 1 || recs[0].Mode != model.ModeDrag || recs[0].Entries != 2 {
		t.Fatalf("unexpected history %+v", recs)
	}
}

func TestDragClickSelectsThenDrops(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog"})
	m.startRound(model.ModeDrag)
	d := m.ctrl.(*round.Drag)
	word := d.Pool()[1]
	j := dragTargetIndex(d, word, true)

	from, _ := m.layout().box(zonePool, 1)
	clickAt(m, from.x, from.line)
	if !m.drag.hasSel || m.drag.selIndex != 1 {
		t.Fatalf("expected click to pick word 1")
	}
	to, _ := m.layout().box(zoneTargets, j)
	drain(m, clickAt(m, to.x, to.line))
	if !d.Matched(d.Targets()[j].ID) {
		t.Fatalf("expected click drop to match %q", word)
	}
}

func TestToggleKeys(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog", "sun"})
	m.startRound(model.ModeChoice)
	c := m.ctrl.(*round.Choice)
	c.GoNext()
	cur, _ := c.Current()
	press(m, keyOf(tea.KeyCtrlT))
	press(m, keyOf(tea.KeyCtrlR))
	if !m.ctrl.Hint() || !m.ctrl.Random() {
		t.Fatalf("expected hint and random on")
	}
	if after, _ := c.Current(); after != cur || c.Position() != 1 {
		t.Fatalf("random toggle lost progress: %+v pos=%d", after, c.Position())
	}
	if !m.config.Hint || !m.config.Random {
		t.Fatalf("expected toggles to carry into the next round")
	}
	if !strings.Contains(m.View(), "Hint on") {
		t.Fatalf("expected status to show hint on")
	}
}

func TestSettingsApplyPersists(t *testing.T) {
	m := newTestModel(t, []string{"cat"})
	m.openSettings()
	m.settings.words.SetValue("cat\n dog \n\nsun")
	press(m, keyOf(tea.KeyCtrlS))

	want := []string{"cat", "dog", "sun"}
	if got := m.deps.Bank.Words(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	loaded, err := wordbank.Load(context.Background(), m.deps.KV)
	if err != nil || !reflect.DeepEqual(loaded, want) {
		t.Fatalf("expected persisted %v, got %v (%v)", want, loaded, err)
	}
	if m.settings.words.Value() != "cat\ndog\nsun" {
		t.Fatalf("expected normalized text, got %q", m.settings.words.Value())
	}

	press(m, keyOf(tea.KeyEsc))
	if m.screen != screenHome || m.settings != nil {
		t.Fatalf("expected esc to close settings")
	}
}

func TestSettingsRejectsEmptyList(t *testing.T) {
	m := newTestModel(t, []string{"cat"})
	m.openSettings()
	m.settings.words.SetValue("  \n")
	press(m, keyOf(tea.KeyCtrlS))
	if !m.noticeErr {
		t.Fatalf("expected error notice")
	}
	if got := m.deps.Bank.Words(); len(got) != 1 {
		t.Fatalf("expected bank unchanged, got %v", got)
	}
}

func TestSettingsImportFile(t *testing.T) {
	m := newTestModel(t, []string{"cat"})
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("moon\nstar\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	m.openSettings()
	m.settings.setFocus(fieldImport)
	m.settings.importPath.SetValue(path)
	press(m, keyOf(tea.KeyEnter))

	if m.settings.words.Value() != "moon\nstar" {
		t.Fatalf("expected imported words in editor, got %q", m.settings.words.Value())
	}
	if got := m.deps.Bank.Words(); len(got) != 1 || got[0] != "cat" {
		t.Fatalf("expected bank untouched before apply, got %v", got)
	}

	m.settings.importPath.SetValue(filepath.Join(t.TempDir(), "missing.csv"))
	press(m, keyOf(tea.KeyEnter))
	if !m.noticeErr || m.settings.words.Value() != "moon\nstar" {
		t.Fatalf("expected failed import to keep the working copy")
	}
}

func TestPhotoImportAttachesPicture(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog"})
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Cat.png"), []byte("\x89PNG\r\n\x1a\n"), 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}
	m.Update(m.importPhotos(dir)())

	ref, ok := m.deps.Overrides.Lookup("cat")
	if !ok || !photo.IsBlobRef(ref) {
		t.Fatalf("expected cat override, got %q %v", ref, ok)
	}
	if !strings.Contains(m.notice, "Attached 1 photo") {
		t.Fatalf("unexpected notice %q", m.notice)
	}

	m.startRound(model.ModeChoice)
	c := m.ctrl.(*round.Choice)
	for _, e := range c.Entries() {
		want := unknownGlyph
		if e.Word == "cat" {
			want = photoGlyph
		}
		if got := pictureLabel(e, m.deps.Blobs); got != want {
			t.Fatalf("picture for %q: expected %q, got %q", e.Word, want, got)
		}
	}
}

func TestInitImportsConfiguredPhotos(t *testing.T) {
	m := NewModel(model.Config{PhotoDir: t.TempDir()}, Deps{Bank: wordbank.New([]string{"cat"})})
	cmd := m.Init()
	if cmd == nil {
		t.Fatalf("expected photo import command")
	}
	m.Update(cmd())
	if m.notice != "No photo matched any word" {
		t.Fatalf("unexpected notice %q", m.notice)
	}
}
