package round

import (
	"strings"
	"unicode"

	"github.com/verte-zerg/wordmatch/internal/shuffle"
)

// MaxReveals is the number of letters pre-filled for longer words.
const MaxReveals = 2

// CellKind classifies a puzzle cell.
type CellKind int

// Cell kinds.
const (
	CellBlank CellKind = iota
	CellFixed
	CellSpace
)

// Cell is one character slot of a spelling puzzle.
type Cell struct {
	Kind   CellKind
	Target rune
	// Value is 0 while the cell is empty.
	Value rune
}

// Editable reports whether the player may type into the cell.
func (c Cell) Editable() bool {
	return c.Kind == CellBlank
}

// Filled reports whether the cell holds a character.
func (c Cell) Filled() bool {
	return c.Value != 0
}

// Puzzle is the per-word spelling board.
type Puzzle struct {
	Cells []Cell
	Focus int
}

// NewPuzzle builds the board for word. Spaces are pre-filled and locked.
// Words with more than two letters get min(2, letters-1) random letters
// revealed; shorter words get none.
func NewPuzzle(word string, s *shuffle.Shuffler) Puzzle {
	runes := []rune(word)
	cells := make([]Cell, len(runes))
	letters := make([]int, 0, len(runes))
	for i, r := range runes {
		if unicode.IsSpace(r) {
			cells[i] = Cell{Kind: CellSpace, Target: r, Value: r}
			continue
		}
		cells[i] = Cell{Kind: CellBlank, Target: r}
		letters = append(letters, i)
	}
	if len(letters) > MaxReveals {
		reveals := MaxReveals
		if len(letters)-1 < reveals {
			reveals = len(letters) - 1
		}
		for _, i := range shuffle.Sample(s, letters, reveals) {
			cells[i].Kind = CellFixed
			cells[i].Value = cells[i].Target
		}
	}
	p := Puzzle{Cells: cells}
	p.Focus = p.firstBlank()
	if p.Focus < 0 {
		p.Focus = 0
	}
	return p
}

// Reveals counts the fixed cells.
func (p Puzzle) Reveals() int {
	n := 0
	for _, c := range p.Cells {
		if c.Kind == CellFixed {
			n++
		}
	}
	return n
}

// Complete reports whether every cell holds a character.
func (p Puzzle) Complete() bool {
	for _, c := range p.Cells {
		if !c.Filled() {
			return false
		}
	}
	return true
}

// String assembles the current cell values, empty cells as '_'.
func (p Puzzle) String() string {
	var b strings.Builder
	for _, c := range p.Cells {
		if c.Filled() {
			b.WriteRune(c.Value)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

func (p Puzzle) editable(i int) bool {
	return i >= 0 && i < len(p.Cells) && p.Cells[i].Editable()
}

func (p Puzzle) firstBlank() int {
	for i, c := range p.Cells {
		if c.Editable() && !c.Filled() {
			return i
		}
	}
	return -1
}

func (p Puzzle) firstEditable() int {
	for i, c := range p.Cells {
		if c.Editable() {
			return i
		}
	}
	return -1
}

// nextEditableWrap searches forward from after i and wraps around the board.
func (p Puzzle) nextEditableWrap(i int) int {
	n := len(p.Cells)
	for k := 1; k <= n; k++ {
		j := (i + k) % n
		if p.Cells[j].Editable() {
			return j
		}
	}
	return -1
}

// nextBlankAhead searches forward from after i without wrapping.
func (p Puzzle) nextBlankAhead(i int) int {
	for j := i + 1; j < len(p.Cells); j++ {
		if p.Cells[j].Editable() && !p.Cells[j].Filled() {
			return j
		}
	}
	return -1
}
