package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/round"
)

const zoneOptions = "options"

type choiceState struct {
	// pos is the round position the cursor belongs to.
	pos    int
	cursor int
	picked string
}

// syncChoice resets the option cursor when the current entry changed.
func (m *Model) syncChoice() {
	c, ok := m.ctrl.(*round.Choice)
	if !ok || c.Position() == m.choice.pos {
		return
	}
	m.choice = choiceState{pos: c.Position()}
}

func (m *Model) updateChoice(c *round.Choice, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.moveChoiceCursor(c, -1)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.NextField):
		m.moveChoiceCursor(c, 1)
	case key.Matches(msg, m.keys.Prev):
		c.GoPrev()
		m.syncChoice()
	case key.Matches(msg, m.keys.Next):
		c.GoNext()
		m.syncChoice()
	case key.Matches(msg, m.keys.Select):
		return m.choose(c, m.choice.cursor)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		if r := msg.Runes[0]; r >= '1' && r <= '9' {
			i := int(r - '1')
			if i < len(c.Options()) {
				m.choice.cursor = i
				return m.choose(c, i)
			}
		}
	}
	return nil
}

func (m *Model) moveChoiceCursor(c *round.Choice, delta int) {
	n := len(c.Options())
	if n == 0 {
		return
	}
	m.choice.cursor = (m.choice.cursor + delta + n) % n
}

func (m *Model) choose(c *round.Choice, i int) tea.Cmd {
	opts := c.Options()
	if i < 0 || i >= len(opts) {
		return nil
	}
	res := c.Choose(opts[i])
	if res.Outcome != round.OutcomeIgnored {
		m.choice.picked = opts[i]
	}
	m.syncChoice()
	return m.handleResult(res)
}

func (m *Model) choiceBody(l *layout, c *round.Choice, width int) {
	cur, ok := c.Current()
	if !ok {
		l.add(indentLines(textStyle.Render("Every picture is named!")))
		return
	}
	l.add(indentLines(m.pictureCard(cur, c.Hint())))
	l.blank()
	l.add(indentLines(mutedStyle.Render("Which word goes with the picture?")))
	opts := c.Options()
	chips := make([]chip, len(opts))
	for i, w := range opts {
		style := chipStyle
		switch {
		case w == m.choice.picked && c.Feedback() == round.FeedbackCorrect:
			style = correctStyle
		case w == m.choice.picked && c.Feedback() == round.FeedbackWrong:
			style = wrongStyle
		case i == m.choice.cursor:
			style = cursorStyle
		}
		chips[i] = chip{label: fmt.Sprintf("%d %s", i+1, w), style: style}
	}
	l.addChips(zoneOptions, chips, indent, width, 2)
}

// pictureCard draws the current entry's picture, captioned with the word
// when hints are on.
func (m *Model) pictureCard(e model.WordEntry, hint bool) string {
	caption := "?"
	if hint {
		caption = e.Word
	}
	return cardStyle.Render(pictureLabel(e, m.deps.Blobs) + "\n" + caption)
}
