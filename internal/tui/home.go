package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordmatch/internal/model"
)

const zoneMenu = "menu"

type menuItem struct {
	label string
	mode  model.Mode
	open  func(m *Model) tea.Cmd
}

func homeMenu() []menuItem {
	items := make([]menuItem, 0, len(model.Modes())+2)
	for _, mode := range model.Modes() {
		items = append(items, menuItem{label: mode.Title(), mode: mode})
	}
	items = append(items,
		menuItem{label: "Settings", open: (*Model).openSettings},
		menuItem{label: "Quit", open: func(*Model) tea.Cmd { return tea.Quit }},
	)
	return items
}

func (m *Model) updateHome(msg tea.KeyMsg) tea.Cmd {
	items := homeMenu()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.homeIndex = (m.homeIndex - 1 + len(items)) % len(items)
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.NextField):
		m.homeIndex = (m.homeIndex + 1) % len(items)
	case key.Matches(msg, m.keys.Select):
		return m.openMenuItem(m.homeIndex)
	case msg.String() == "q":
		return tea.Quit
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		if r := msg.Runes[0]; r >= '1' && int(r-'1') < len(items) {
			m.homeIndex = int(r - '1')
			return m.openMenuItem(m.homeIndex)
		}
	}
	return nil
}

func (m *Model) openMenuItem(i int) tea.Cmd {
	items := homeMenu()
	if i < 0 || i >= len(items) {
		return nil
	}
	item := items[i]
	if item.open != nil {
		return item.open(m)
	}
	m.startRound(item.mode)
	return nil
}

func (m *Model) homeLayout(width int) *layout {
	l := newLayout()
	l.add(titleStyle.Render("wordmatch"))
	l.add(mutedStyle.Render(fmt.Sprintf("%d words in the list", m.deps.Bank.Len())))
	l.blank()
	for i, item := range homeMenu() {
		style := chipStyle
		if i == m.homeIndex {
			style = cursorStyle
		}
		label := fmt.Sprintf("%d  %s", i+1, item.label)
		l.addChips(zoneMenu, []chip{{label: label, style: style}}, indent, width, 0)
		// One item per line, so the chip index restarts at 0.
		boxes := l.boxes[zoneMenu]
		boxes[len(boxes)-1].index = i
	}
	l.blank()
	if notice := m.renderNotice(); notice != "" {
		l.add(notice)
	}
	return l
}
