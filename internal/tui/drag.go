package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordmatch/internal/round"
)

const (
	zonePool    = "pool"
	zoneTargets = "targets"
)

// dragState is the keyboard cursor of the drag screen. A word is picked
// from the pool first, then dropped on a picture.
type dragState struct {
	onTargets   bool
	poolIndex   int
	targetIndex int
	hasSel      bool
	selIndex    int
}

func (m *Model) updateDrag(d *round.Drag, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveDragCursor(d, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveDragCursor(d, 1)
	case key.Matches(msg, m.keys.Up):
		m.drag.onTargets = true
		m.clampDrag(d)
	case key.Matches(msg, m.keys.Down):
		m.drag.onTargets = false
		m.clampDrag(d)
	case key.Matches(msg, m.keys.NextField):
		m.drag.onTargets = !m.drag.onTargets
		m.clampDrag(d)
	case key.Matches(msg, m.keys.Select):
		if !m.drag.onTargets {
			if len(d.Pool()) == 0 {
				return nil
			}
			m.drag.hasSel = true
			m.drag.selIndex = m.drag.poolIndex
			m.drag.onTargets = true
			m.clampDrag(d)
			return nil
		}
		if !m.drag.hasSel {
			return nil
		}
		pool := d.Pool()
		targets := d.Targets()
		if m.drag.selIndex >= len(pool) || m.drag.targetIndex >= len(targets) {
			return nil
		}
		return m.dropWord(d, pool[m.drag.selIndex], targets[m.drag.targetIndex].ID)
	}
	return nil
}

func (m *Model) moveDragCursor(d *round.Drag, delta int) {
	if m.drag.onTargets {
		m.drag.targetIndex += delta
	} else {
		m.drag.poolIndex += delta
	}
	m.clampDrag(d)
}

func (m *Model) clampDrag(d *round.Drag) {
	m.drag.poolIndex = clamp(m.drag.poolIndex, len(d.Pool()))
	m.drag.targetIndex = clamp(m.drag.targetIndex, len(d.Targets()))
}

func (m *Model) clickDrag(d *round.Drag, h hit) tea.Cmd {
	switch h.zone {
	case zonePool:
		m.drag.poolIndex = h.index
		m.drag.hasSel = true
		m.drag.selIndex = h.index
		m.drag.onTargets = true
		m.clampDrag(d)
	case zoneTargets:
		m.drag.targetIndex = h.index
		m.drag.onTargets = true
		pool := d.Pool()
		targets := d.Targets()
		if !m.drag.hasSel || m.drag.selIndex >= len(pool) || h.index >= len(targets) {
			return nil
		}
		return m.dropWord(d, pool[m.drag.selIndex], targets[h.index].ID)
	}
	return nil
}

func (m *Model) dropWord(d *round.Drag, word, targetID string) tea.Cmd {
	res := d.AttemptMatch(word, targetID)
	if res.Outcome == round.OutcomeIgnored {
		return nil
	}
	m.drag.hasSel = false
	m.drag.onTargets = false
	m.clampDrag(d)
	return m.handleResult(res)
}

func (m *Model) dragBody(l *layout, d *round.Drag, width int) {
	l.add(indentLines(mutedStyle.Render("Pictures")))
	targets := d.Targets()
	chips := make([]chip, len(targets))
	for i, e := range targets {
		caption := "?"
		style := chipStyle
		switch {
		case d.Matched(e.ID):
			caption = e.Word + " ✓"
			style = correctStyle
		case d.Hint():
			caption = e.Word
		}
		if m.drag.onTargets && i == m.drag.targetIndex && !d.Matched(e.ID) {
			style = cursorStyle
		}
		chips[i] = chip{label: pictureLabel(e, m.deps.Blobs) + " " + caption, style: style}
	}
	l.addChips(zoneTargets, chips, indent, width, 1)
	l.blank()

	l.add(indentLines(mutedStyle.Render("Words")))
	pool := d.Pool()
	if len(pool) == 0 {
		l.add(indentLines(textStyle.Render("Everything is matched!")))
		return
	}
	flash := d.ErrorWord()
	chips = make([]chip, len(pool))
	for i, w := range pool {
		style := chipStyle
		switch {
		case flash != "" && w == flash:
			style = wrongStyle
		case m.drag.hasSel && i == m.drag.selIndex:
			style = selectedStyle
		case !m.drag.onTargets && i == m.drag.poolIndex:
			style = cursorStyle
		}
		chips[i] = chip{label: w, style: style}
	}
	l.addChips(zonePool, chips, indent, width, 1)
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
