package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// chip is one clickable label: a word, a picture target, a menu entry or a
// spelling cell.
type chip struct {
	label string
	style lipgloss.Style
}

func (c chip) width() int {
	return runewidth.StringWidth(c.label) + 2
}

func (c chip) render() string {
	return c.style.Render(" " + c.label + " ")
}

// chipBox is where a chip landed after wrapping. line is relative to the
// first wrapped line.
type chipBox struct {
	index int
	line  int
	x     int
	width int
}

// wrapChips lays chips out left to right, separated by gap columns, and
// starts a new line when the next chip would cross width. A chip wider than
// width gets a line of its own.
func wrapChips(chips []chip, width, gap int) ([]string, []chipBox) {
	if len(chips) == 0 {
		return nil, nil
	}
	var lines []string
	boxes := make([]chipBox, 0, len(chips))
	var line strings.Builder
	x := 0
	for i, c := range chips {
		w := c.width()
		if x > 0 && width > 0 && x+gap+w > width {
			lines = append(lines, line.String())
			line.Reset()
			x = 0
		}
		if x > 0 {
			line.WriteString(strings.Repeat(" ", gap))
			x += gap
		}
		boxes = append(boxes, chipBox{index: i, line: len(lines), x: x, width: w})
		line.WriteString(c.render())
		x += w
	}
	lines = append(lines, line.String())
	return lines, boxes
}

// hit names the chip under a mouse position.
type hit struct {
	zone  string
	index int
}

// layout is a rendered screen body plus the absolute position of every
// clickable chip. View and mouse hit testing share it.
type layout struct {
	lines []string
	boxes map[string][]chipBox
}

func newLayout() *layout {
	return &layout{boxes: map[string][]chipBox{}}
}

func (l *layout) add(s string) {
	l.lines = append(l.lines, strings.Split(s, "\n")...)
}

func (l *layout) blank() {
	l.lines = append(l.lines, "")
}

// addChips wraps chips into width and records their boxes under zone.
func (l *layout) addChips(zone string, chips []chip, indent, width, gap int) {
	lines, boxes := wrapChips(chips, width-indent, gap)
	top := len(l.lines)
	pad := strings.Repeat(" ", indent)
	for _, line := range lines {
		l.lines = append(l.lines, pad+line)
	}
	for _, b := range boxes {
		b.line += top
		b.x += indent
		l.boxes[zone] = append(l.boxes[zone], b)
	}
}

func (l *layout) hitAt(x, y int) (hit, bool) {
	for zone, boxes := range l.boxes {
		for _, b := range boxes {
			if b.line == y && x >= b.x && x < b.x+b.width {
				return hit{zone: zone, index: b.index}, true
			}
		}
	}
	return hit{}, false
}

// box returns the position of chip index in zone.
func (l *layout) box(zone string, index int) (chipBox, bool) {
	for _, b := range l.boxes[zone] {
		if b.index == index {
			return b, true
		}
	}
	return chipBox{}, false
}

func padLine(line string, width int) string {
	if lineWidth := lipgloss.Width(line); lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(lines []string, width, height int) string {
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, 0, max(height, len(lines)))
	for _, line := range lines {
		out = append(out, padLine(line, width))
	}
	for len(out) < height {
		out = append(out, strings.Repeat(" ", max(width, 0)))
	}
	return strings.Join(out, "\n")
}
