// Package round implements the play-mode state machines. A Round owns the
// play order, position, toggles, transient feedback and the finished flag;
// Drag, Choice and Spelling add their mode-specific rules on top.
//
// Rounds are not safe for concurrent use. Deferred transitions are handed
// to the caller as Timers; the caller waits Timer.After and passes the timer
// back to Fire on the same goroutine that drives the round.
package round

import (
	"sort"
	"time"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/shuffle"
)

// Delays for deferred transitions.
const (
	ErrorFlashDuration   = 500 * time.Millisecond
	DragFinishDelay      = time.Second
	ChoiceAdvanceDelay   = 600 * time.Millisecond
	WrongRevertDelay     = 500 * time.Millisecond
	SpellingAdvanceDelay = 800 * time.Millisecond
)

// Feedback is the short-lived state shown after an answer.
type Feedback int

// Feedback states.
const (
	FeedbackIdle Feedback = iota
	FeedbackCorrect
	FeedbackWrong
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackWrong:
		return "wrong"
	}
	return "idle"
}

// TimerKind names a deferred transition.
type TimerKind int

// Timer kinds.
const (
	KindFlash TimerKind = iota
	KindFinish
	KindRevert
	KindAdvance
	kindCount
)

// Timer asks the caller to call Fire after After has elapsed. A timer is
// stale once a newer timer of the same kind was issued, the position
// changed or the round restarted; firing a stale timer does nothing.
type Timer struct {
	Kind  TimerKind
	After time.Duration
	Seq   uint64
}

// Outcome classifies the effect of an intent.
type Outcome int

// Outcomes.
const (
	OutcomeIgnored Outcome = iota
	OutcomeProgress
	OutcomeCorrect
	OutcomeWrong
)

// Result is returned by every answering intent.
type Result struct {
	Outcome Outcome
	// Timer is nil when nothing has to be scheduled.
	Timer *Timer
	// Announce is set when feedback should be voiced.
	Announce bool
}

// Summary describes a finished round.
type Summary struct {
	Mode      model.Mode
	Entries   int
	Mistakes  int
	Random    bool
	Hint      bool
	StartedAt time.Time
	EndedAt   time.Time
}

// Options configures a new round.
type Options struct {
	Shuffler *shuffle.Shuffler
	Random   bool
	Hint     bool
	Now      func() time.Time
	// OnFinish is called once each time the round becomes finished.
	OnFinish func(Summary)
}

// Controller is the surface shared by every mode.
type Controller interface {
	Mode() model.Mode
	Entries() []model.WordEntry
	SetEntries(entries []model.WordEntry)
	Restart()
	ToggleRandom()
	ToggleHint()
	Random() bool
	Hint() bool
	Feedback() Feedback
	Finished() bool
	Mistakes() int
	Progress() (done, total int)
	Fire(t Timer) bool
}

type strategy interface {
	mode() model.Mode
	begin()
	arrive()
	reorder()
	expire(kind TimerKind)
	progress() (done, total int)
}

// Round holds the state common to all modes.
type Round struct {
	impl strategy

	entries  []model.WordEntry
	order    []int
	pos      int
	random   bool
	hint     bool
	feedback Feedback
	finished bool
	gens     [kindCount]uint64

	mistakes  int
	startedAt time.Time

	shuf     *shuffle.Shuffler
	now      func() time.Time
	onFinish func(Summary)
}

func (r *Round) setup(impl strategy, entries []model.WordEntry, opts Options) {
	r.impl = impl
	r.shuf = opts.Shuffler
	if r.shuf == nil {
		r.shuf = shuffle.New()
	}
	r.now = opts.Now
	if r.now == nil {
		r.now = time.Now
	}
	r.onFinish = opts.OnFinish
	r.random = opts.Random
	r.hint = opts.Hint
	r.entries = append([]model.WordEntry(nil), entries...)
	r.Restart()
}

// Mode returns the play mode.
func (r *Round) Mode() model.Mode {
	return r.impl.mode()
}

// Entries returns the entries in their canonical order.
func (r *Round) Entries() []model.WordEntry {
	return append([]model.WordEntry(nil), r.entries...)
}

// SetEntries replaces the item list and starts over. Entry ids held from
// the previous list are no longer valid.
func (r *Round) SetEntries(entries []model.WordEntry) {
	r.entries = append([]model.WordEntry(nil), entries...)
	r.Restart()
}

// Restart rebuilds the play order and resets progress.
func (r *Round) Restart() {
	for k := range r.gens {
		r.gens[k]++
	}
	r.finished = false
	r.feedback = FeedbackIdle
	r.mistakes = 0
	r.startedAt = r.now()
	r.order = r.buildOrder()
	r.pos = 0
	r.impl.begin()
}

// ToggleRandom flips random ordering.
func (r *Round) ToggleRandom() {
	r.random = !r.random
	r.impl.reorder()
}

// ToggleHint flips the hint display.
func (r *Round) ToggleHint() {
	r.hint = !r.hint
}

// Random reports whether random ordering is on.
func (r *Round) Random() bool {
	return r.random
}

// Hint reports whether hints are on.
func (r *Round) Hint() bool {
	return r.hint
}

// Feedback returns the current transient feedback.
func (r *Round) Feedback() Feedback {
	return r.feedback
}

// Finished reports whether every entry is resolved.
func (r *Round) Finished() bool {
	return r.finished
}

// Mistakes returns the wrong answers given in this round.
func (r *Round) Mistakes() int {
	return r.mistakes
}

// Progress returns resolved and total entry counts.
func (r *Round) Progress() (int, int) {
	return r.impl.progress()
}

// Fire applies a deferred transition. It returns false for stale timers.
func (r *Round) Fire(t Timer) bool {
	if t.Kind < 0 || t.Kind >= kindCount || t.Seq != r.gens[t.Kind] {
		return false
	}
	r.gens[t.Kind]++
	r.impl.expire(t.Kind)
	return true
}

func (r *Round) schedule(kind TimerKind, after time.Duration) *Timer {
	r.gens[kind]++
	return &Timer{Kind: kind, After: after, Seq: r.gens[kind]}
}

func (r *Round) cancel(kinds ...TimerKind) {
	for _, k := range kinds {
		r.gens[k]++
	}
}

func (r *Round) buildOrder() []int {
	if r.random {
		return shuffle.Perm(r.shuf, len(r.entries))
	}
	return shuffle.Identity(len(r.entries))
}

// reorderRemaining rebuilds the order of the slots after the current one.
// Played slots and the current entry stay where they are, so progress,
// mistakes and pending transitions survive a random toggle.
func (r *Round) reorderRemaining() {
	if r.pos < 0 || r.pos >= len(r.order) {
		r.order = r.buildOrder()
		return
	}
	rest := append([]int(nil), r.order[r.pos+1:]...)
	if r.random {
		rest = shuffle.Shuffle(r.shuf, rest)
	} else {
		sort.Ints(rest)
	}
	r.order = append(r.order[:r.pos+1:r.pos+1], rest...)
}

func (r *Round) finish() {
	if r.finished {
		return
	}
	r.finished = true
	r.feedback = FeedbackIdle
	if r.onFinish == nil {
		return
	}
	r.onFinish(Summary{
		Mode:      r.impl.mode(),
		Entries:   len(r.entries),
		Mistakes:  r.mistakes,
		Random:    r.random,
		Hint:      r.hint,
		StartedAt: r.startedAt,
		EndedAt:   r.now(),
	})
}

// Position returns the current slot in the play order.
func (r *Round) Position() int {
	return r.pos
}

// Len returns the number of entries.
func (r *Round) Len() int {
	return len(r.entries)
}

// Current returns the entry at the current position.
func (r *Round) Current() (model.WordEntry, bool) {
	if r.finished || r.pos < 0 || r.pos >= len(r.order) {
		return model.WordEntry{}, false
	}
	return r.entries[r.order[r.pos]], true
}

func (r *Round) advance() {
	if r.pos >= len(r.order)-1 {
		r.finish()
		return
	}
	r.pos++
	r.impl.arrive()
}

func (r *Round) step(delta int) bool {
	if r.finished {
		return false
	}
	next := r.pos + delta
	if next < 0 || next >= len(r.order) {
		return false
	}
	r.pos = next
	r.feedback = FeedbackIdle
	r.cancel(KindAdvance, KindRevert)
	r.impl.arrive()
	return true
}
