package round

import (
	"strings"

	"github.com/verte-zerg/wordmatch/internal/model"
)

// Spelling is the fill-in-the-letters mode.
type Spelling struct {
	Round

	puzzle Puzzle
	// announced is set once the current wrong state has been voiced and
	// cleared by the next edit.
	announced bool
}

var _ Controller = (*Spelling)(nil)

// NewSpelling starts a spelling round over entries.
func NewSpelling(entries []model.WordEntry, opts Options) *Spelling {
	s := &Spelling{}
	s.setup(s, entries, opts)
	return s
}

func (s *Spelling) mode() model.Mode {
	return model.ModeSpelling
}

func (s *Spelling) begin() {
	s.arrive()
}

func (s *Spelling) arrive() {
	s.announced = false
	cur, ok := s.Current()
	if !ok {
		s.puzzle = Puzzle{}
		return
	}
	s.puzzle = NewPuzzle(cur.Word, s.shuf)
}

func (s *Spelling) reorder() {
	s.reorderRemaining()
}

func (s *Spelling) expire(kind TimerKind) {
	if kind == KindAdvance {
		s.feedback = FeedbackIdle
		s.advance()
	}
}

func (s *Spelling) progress() (int, int) {
	if s.finished {
		return len(s.entries), len(s.entries)
	}
	return s.pos, len(s.entries)
}

// Puzzle returns a copy of the current board.
func (s *Spelling) Puzzle() Puzzle {
	p := s.puzzle
	p.Cells = append([]Cell(nil), s.puzzle.Cells...)
	return p
}

func (s *Spelling) locked() bool {
	return s.finished || s.feedback == FeedbackCorrect
}

// InputChar writes c into the focused cell.
func (s *Spelling) InputChar(c rune) Result {
	if s.locked() || !s.puzzle.editable(s.puzzle.Focus) {
		return Result{}
	}
	s.puzzle.Cells[s.puzzle.Focus].Value = c
	s.edited()
	if s.puzzle.Complete() {
		return s.check()
	}
	if next := s.puzzle.nextEditableWrap(s.puzzle.Focus); next >= 0 {
		s.puzzle.Focus = next
	}
	return Result{Outcome: OutcomeProgress}
}

// Backspace clears the focused cell. Focus does not move.
func (s *Spelling) Backspace() Result {
	if s.locked() || !s.puzzle.editable(s.puzzle.Focus) {
		return Result{}
	}
	s.puzzle.Cells[s.puzzle.Focus].Value = 0
	s.edited()
	return Result{Outcome: OutcomeProgress}
}

// Submit checks a fully filled board without editing it. Focus stays put.
func (s *Spelling) Submit() Result {
	if s.locked() || len(s.puzzle.Cells) == 0 || !s.puzzle.Complete() {
		return Result{}
	}
	focus := s.puzzle.Focus
	res := s.check()
	if res.Outcome == OutcomeWrong {
		s.puzzle.Focus = focus
	}
	return res
}

// FocusCell moves the focus to cell i if it is editable.
func (s *Spelling) FocusCell(i int) bool {
	if s.locked() || !s.puzzle.editable(i) {
		return false
	}
	s.puzzle.Focus = i
	return true
}

// MoveFocus moves the focus to the nearest editable cell in the direction
// of delta, without wrapping.
func (s *Spelling) MoveFocus(delta int) bool {
	if s.locked() || delta == 0 {
		return false
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	for i := s.puzzle.Focus + step; i >= 0 && i < len(s.puzzle.Cells); i += step {
		if s.puzzle.Cells[i].Editable() {
			s.puzzle.Focus = i
			return true
		}
	}
	return false
}

// GoPrev moves back one entry.
func (s *Spelling) GoPrev() bool {
	return s.step(-1)
}

// GoNext moves forward one entry.
func (s *Spelling) GoNext() bool {
	return s.step(1)
}

func (s *Spelling) edited() {
	s.announced = false
	if s.feedback == FeedbackWrong {
		s.feedback = FeedbackIdle
	}
}

func (s *Spelling) check() Result {
	cur, ok := s.Current()
	if !ok {
		return Result{}
	}
	if strings.EqualFold(s.puzzle.String(), cur.Word) {
		s.feedback = FeedbackCorrect
		return Result{
			Outcome:  OutcomeCorrect,
			Timer:    s.schedule(KindAdvance, SpellingAdvanceDelay),
			Announce: true,
		}
	}
	s.feedback = FeedbackWrong
	res := Result{Outcome: OutcomeWrong}
	if !s.announced {
		s.announced = true
		s.mistakes++
		res.Announce = true
	}
	next := s.puzzle.nextBlankAhead(s.puzzle.Focus)
	if next < 0 {
		next = s.nextEditableAhead(s.puzzle.Focus)
	}
	if next < 0 {
		next = s.puzzle.firstEditable()
	}
	if next >= 0 {
		s.puzzle.Focus = next
	}
	return res
}

func (s *Spelling) nextEditableAhead(i int) int {
	for j := i + 1; j < len(s.puzzle.Cells); j++ {
		if s.puzzle.Cells[j].Editable() {
			return j
		}
	}
	return -1
}
