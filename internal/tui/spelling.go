package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordmatch/internal/round"
)

const zoneCells = "cells"

var fixedCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Background(lipgloss.Color("#2A2A2A"))

func (m *Model) updateSpelling(s *round.Spelling, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Prev):
		s.GoPrev()
	case key.Matches(msg, m.keys.Next):
		s.GoNext()
	case key.Matches(msg, m.keys.Left):
		s.MoveFocus(-1)
	case key.Matches(msg, m.keys.Right):
		s.MoveFocus(1)
	case key.Matches(msg, m.keys.Submit):
		return m.handleResult(s.Submit())
	case msg.Type == tea.KeyBackspace, msg.Type == tea.KeyDelete:
		return m.handleResult(s.Backspace())
	case msg.Type == tea.KeyRunes && !msg.Alt:
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			if unicode.IsSpace(r) || !unicode.IsPrint(r) {
				continue
			}
			cmds = append(cmds, m.handleResult(s.InputChar(r)))
		}
		return tea.Batch(cmds...)
	}
	return nil
}

func (m *Model) spellingBody(l *layout, s *round.Spelling, width int) {
	cur, ok := s.Current()
	if !ok {
		l.add(indentLines(textStyle.Render("Every word is spelled!")))
		return
	}
	l.add(indentLines(m.pictureCard(cur, s.Hint())))
	l.blank()
	p := s.Puzzle()
	chips := make([]chip, len(p.Cells))
	for i, cell := range p.Cells {
		label := "_"
		if cell.Filled() {
			label = string(cell.Value)
		}
		style := chipStyle
		switch {
		case cell.Kind == round.CellSpace:
			style = lipgloss.NewStyle()
		case s.Feedback() == round.FeedbackCorrect:
			style = correctStyle
		case cell.Kind == round.CellFixed:
			style = fixedCellStyle
		case i == p.Focus:
			style = cursorStyle
		case s.Feedback() == round.FeedbackWrong:
			style = wrongStyle
		}
		chips[i] = chip{label: label, style: style}
	}
	l.addChips(zoneCells, chips, indent, width, 0)
	switch s.Feedback() {
	case round.FeedbackWrong:
		l.blank()
		l.add(indentLines(errorStyle.Render("Not quite. Fix a letter and try again.")))
	case round.FeedbackCorrect:
		l.blank()
		l.add(indentLines(titleStyle.Render("Well done!")))
	}
}
