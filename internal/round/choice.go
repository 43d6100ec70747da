package round

import (
	"strings"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/shuffle"
)

// MaxDistractors is the number of wrong options offered when the word list
// is large enough.
const MaxDistractors = 2

// Choice is the multiple-choice mode.
type Choice struct {
	Round

	options []string
}

var _ Controller = (*Choice)(nil)

// NewChoice starts a choice round over entries.
func NewChoice(entries []model.WordEntry, opts Options) *Choice {
	c := &Choice{}
	c.setup(c, entries, opts)
	return c
}

func (c *Choice) mode() model.Mode {
	return model.ModeChoice
}

func (c *Choice) begin() {
	c.arrive()
}

func (c *Choice) arrive() {
	c.options = nil
	cur, ok := c.Current()
	if !ok {
		return
	}
	distractors := shuffle.Sample(c.shuf, distractorPool(c.entries, cur.Word), MaxDistractors)
	c.options = shuffle.Shuffle(c.shuf, append([]string{cur.Word}, distractors...))
}

// reorder keeps the current question and reorders the ones still to come.
func (c *Choice) reorder() {
	c.reorderRemaining()
}

func (c *Choice) expire(kind TimerKind) {
	switch kind {
	case KindRevert:
		if c.feedback == FeedbackWrong {
			c.feedback = FeedbackIdle
		}
	case KindAdvance:
		c.feedback = FeedbackIdle
		c.advance()
	}
}

func (c *Choice) progress() (int, int) {
	if c.finished {
		return len(c.entries), len(c.entries)
	}
	return c.pos, len(c.entries)
}

// Options returns the words offered for the current entry.
func (c *Choice) Options() []string {
	return append([]string(nil), c.options...)
}

// Choose answers the current entry with word.
func (c *Choice) Choose(word string) Result {
	if c.finished || c.feedback == FeedbackCorrect {
		return Result{}
	}
	cur, ok := c.Current()
	if !ok {
		return Result{}
	}
	if strings.EqualFold(word, cur.Word) {
		c.feedback = FeedbackCorrect
		c.cancel(KindRevert)
		return Result{
			Outcome:  OutcomeCorrect,
			Timer:    c.schedule(KindAdvance, ChoiceAdvanceDelay),
			Announce: true,
		}
	}
	c.mistakes++
	c.feedback = FeedbackWrong
	return Result{
		Outcome:  OutcomeWrong,
		Timer:    c.schedule(KindRevert, WrongRevertDelay),
		Announce: true,
	}
}

// GoPrev moves back one entry. It does nothing at the first entry.
func (c *Choice) GoPrev() bool {
	return c.step(-1)
}

// GoNext moves forward one entry. It does nothing at the last entry.
func (c *Choice) GoNext() bool {
	return c.step(1)
}

// distractorPool returns the other words of the list, without duplicates,
// compared case-insensitively, excluding the current word.
func distractorPool(entries []model.WordEntry, current string) []string {
	seen := map[string]struct{}{strings.ToLower(current): {}}
	pool := make([]string, 0, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e.Word)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		pool = append(pool, e.Word)
	}
	return pool
}
