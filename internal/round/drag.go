package round

import (
	"strings"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/shuffle"
)

// Drag is the drag-to-match mode. There is no current item: any unmatched
// target may receive any word from the remaining pool.
type Drag struct {
	Round

	matched   map[string]bool
	pool      []string
	flash     string
	finishing bool
}

var _ Controller = (*Drag)(nil)

// NewDrag starts a drag round over entries.
func NewDrag(entries []model.WordEntry, opts Options) *Drag {
	d := &Drag{}
	d.setup(d, entries, opts)
	return d
}

func (d *Drag) mode() model.Mode {
	return model.ModeDrag
}

func (d *Drag) begin() {
	d.matched = map[string]bool{}
	words := make([]string, len(d.entries))
	for i, e := range d.entries {
		words[i] = e.Word
	}
	d.pool = shuffle.Shuffle(d.shuf, words)
	d.flash = ""
	d.finishing = false
}

func (d *Drag) arrive() {}

// reorder changes only the display order; matches and the pool are kept.
func (d *Drag) reorder() {
	d.order = d.buildOrder()
}

func (d *Drag) expire(kind TimerKind) {
	switch kind {
	case KindFlash:
		d.flash = ""
		if d.feedback == FeedbackWrong {
			d.feedback = FeedbackIdle
		}
	case KindFinish:
		d.finish()
	}
}

func (d *Drag) progress() (int, int) {
	return len(d.matched), len(d.entries)
}

// Targets returns the drop targets in display order.
func (d *Drag) Targets() []model.WordEntry {
	out := make([]model.WordEntry, len(d.order))
	for i, idx := range d.order {
		out[i] = d.entries[idx]
	}
	return out
}

// Pool returns the words still waiting to be placed.
func (d *Drag) Pool() []string {
	return append([]string(nil), d.pool...)
}

// Matched reports whether the target with id has been matched.
func (d *Drag) Matched(id string) bool {
	return d.matched[id]
}

// ErrorWord returns the word of the last wrong drop while its flash lasts.
func (d *Drag) ErrorWord() string {
	return d.flash
}

// AttemptMatch drops word onto the target with targetID.
func (d *Drag) AttemptMatch(word, targetID string) Result {
	if d.finished || d.finishing {
		return Result{}
	}
	target, ok := d.entryByID(targetID)
	if !ok || d.matched[targetID] {
		return Result{}
	}
	// Words already matched or never offered cannot be wrong.
	slot := d.poolIndex(word)
	if slot < 0 {
		return Result{}
	}
	if !strings.EqualFold(word, target.Word) {
		d.mistakes++
		d.flash = word
		d.feedback = FeedbackWrong
		return Result{
			Outcome:  OutcomeWrong,
			Timer:    d.schedule(KindFlash, ErrorFlashDuration),
			Announce: true,
		}
	}
	d.matched[targetID] = true
	d.pool = append(d.pool[:slot], d.pool[slot+1:]...)
	res := Result{Outcome: OutcomeCorrect, Announce: true}
	if len(d.matched) == len(d.entries) {
		d.finishing = true
		res.Timer = d.schedule(KindFinish, DragFinishDelay)
	}
	return res
}

// Finishing reports whether every target is matched and the finish
// transition is pending.
func (d *Drag) Finishing() bool {
	return d.finishing && !d.finished
}

func (d *Drag) entryByID(id string) (model.WordEntry, bool) {
	for _, e := range d.entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.WordEntry{}, false
}

func (d *Drag) poolIndex(word string) int {
	for i, w := range d.pool {
		if w == word {
			return i
		}
	}
	for i, w := range d.pool {
		if strings.EqualFold(w, word) {
			return i
		}
	}
	return -1
}
