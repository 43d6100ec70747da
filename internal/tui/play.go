package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordmatch/internal/round"
)

const zonePrompt = "prompt"

// Finished prompt choices.
const (
	promptAgain = iota
	promptStay
	promptHome
)

var promptLabels = []string{"Play again", "Stay here", "Home"}

type finishPrompt struct {
	summary round.Summary
	index   int
}

func (m *Model) updatePlay(msg tea.KeyMsg) tea.Cmd {
	if m.prompt != nil {
		return m.updatePrompt(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.drag.hasSel {
			m.drag.hasSel = false
			m.drag.onTargets = false
			return nil
		}
		m.leaveRound()
		return nil
	case key.Matches(msg, m.keys.Random):
		m.ctrl.ToggleRandom()
		m.config.Random = m.ctrl.Random()
		return nil
	case key.Matches(msg, m.keys.Hint):
		m.ctrl.ToggleHint()
		m.config.Hint = m.ctrl.Hint()
		return nil
	case key.Matches(msg, m.keys.Restart):
		m.ctrl.Restart()
		m.resetPlayState()
		return nil
	}
	switch c := m.ctrl.(type) {
	case *round.Drag:
		return m.updateDrag(c, msg)
	case *round.Choice:
		return m.updateChoice(c, msg)
	case *round.Spelling:
		return m.updateSpelling(c, msg)
	}
	return nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	n := len(promptLabels)
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.PrevField):
		m.prompt.index = (m.prompt.index - 1 + n) % n
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.NextField):
		m.prompt.index = (m.prompt.index + 1) % n
	case key.Matches(msg, m.keys.Select):
		return m.choosePrompt(m.prompt.index)
	case key.Matches(msg, m.keys.Back):
		return m.choosePrompt(promptStay)
	}
	return nil
}

func (m *Model) choosePrompt(i int) tea.Cmd {
	switch i {
	case promptAgain:
		m.ctrl.Restart()
		m.resetPlayState()
	case promptStay:
		m.prompt = nil
	case promptHome:
		m.leaveRound()
	}
	return nil
}

func (m *Model) playLayout(width int) *layout {
	l := newLayout()
	l.add(titleStyle.Render(m.ctrl.Mode().Title()))
	l.add(m.renderStatus())
	l.blank()
	switch c := m.ctrl.(type) {
	case *round.Drag:
		m.dragBody(l, c, width)
	case *round.Choice:
		m.choiceBody(l, c, width)
	case *round.Spelling:
		m.spellingBody(l, c, width)
	}
	if m.prompt != nil {
		l.blank()
		m.promptBody(l, width)
	}
	if notice := m.renderNotice(); notice != "" {
		l.blank()
		l.add(indentLines(notice))
	}
	return l
}

func (m *Model) promptBody(l *layout, width int) {
	s := m.prompt.summary
	l.add(indentLines(titleStyle.Render("All done!")))
	l.add(indentLines(textStyle.Render(fmt.Sprintf("%d words, %d mistakes", s.Entries, s.Mistakes))))
	chips := make([]chip, len(promptLabels))
	for i, label := range promptLabels {
		style := chipStyle
		if i == m.prompt.index {
			style = cursorStyle
		}
		chips[i] = chip{label: label, style: style}
	}
	l.addChips(zonePrompt, chips, indent, width, 2)
}

func (m *Model) updateMouse(ev tea.MouseEvent) tea.Cmd {
	if m.screen == screenSettings {
		return nil
	}
	if ev.IsWheel() {
		if m.gesture.SuppressScroll() {
			return nil
		}
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-1)
		case tea.MouseButtonWheelDown:
			m.scroll(1)
		}
		return nil
	}
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return nil
		}
		m.gesture.Press(ev.X, ev.Y)
		m.pressHit = nil
		if h, ok := m.layout().hitAt(ev.X, ev.Y); ok {
			m.pressHit = &h
		}
	case tea.MouseActionMotion:
		m.gesture.Move(ev.X, ev.Y)
	case tea.MouseActionRelease:
		if !m.gesture.Active() {
			return nil
		}
		x, y, dragged := m.gesture.Release(ev.X, ev.Y)
		pressed := m.pressHit
		m.pressHit = nil
		if pressed == nil {
			return nil
		}
		if !dragged {
			return m.click(*pressed)
		}
		target, ok := m.layout().hitAt(x, y)
		if !ok {
			return nil
		}
		return m.drop(*pressed, target)
	}
	return nil
}

func (m *Model) click(h hit) tea.Cmd {
	if m.screen == screenHome {
		if h.zone == zoneMenu {
			m.homeIndex = h.index
			return m.openMenuItem(h.index)
		}
		return nil
	}
	if m.prompt != nil {
		if h.zone == zonePrompt {
			return m.choosePrompt(h.index)
		}
		return nil
	}
	switch c := m.ctrl.(type) {
	case *round.Drag:
		return m.clickDrag(c, h)
	case *round.Choice:
		if h.zone == zoneOptions {
			m.choice.cursor = h.index
			return m.choose(c, h.index)
		}
	case *round.Spelling:
		if h.zone == zoneCells {
			c.FocusCell(h.index)
		}
	}
	return nil
}

func (m *Model) drop(from, to hit) tea.Cmd {
	d, ok := m.ctrl.(*round.Drag)
	if !ok || m.prompt != nil || from.zone != zonePool || to.zone != zoneTargets {
		return nil
	}
	pool := d.Pool()
	targets := d.Targets()
	if from.index >= len(pool) || to.index >= len(targets) {
		return nil
	}
	return m.dropWord(d, pool[from.index], targets[to.index].ID)
}

func (m *Model) scroll(delta int) {
	switch m.screen {
	case screenHome:
		n := len(homeMenu())
		m.homeIndex = (m.homeIndex + delta + n) % n
	case screenPlay:
		if m.prompt != nil {
			return
		}
		switch c := m.ctrl.(type) {
		case *round.Drag:
			m.moveDragCursor(c, delta)
		case *round.Choice:
			m.moveChoiceCursor(c, delta)
		case *round.Spelling:
			c.MoveFocus(delta)
		}
	}
}

func indentLines(s string) string {
	pad := strings.Repeat(" ", indent)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
