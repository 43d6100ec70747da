package round

// DefaultDragThreshold is the movement, in terminal cells, after which a
// press becomes a drag.
const DefaultDragThreshold = 1

// Gesture tells an intentional drag apart from a click or a scroll.
type Gesture struct {
	Threshold int

	active   bool
	dragging bool
	startX   int
	startY   int
	lastX    int
	lastY    int
}

// NewGesture returns a tracker with the given threshold. Non-positive
// thresholds fall back to DefaultDragThreshold.
func NewGesture(threshold int) *Gesture {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &Gesture{Threshold: threshold}
}

// Press starts tracking at x, y.
func (g *Gesture) Press(x, y int) {
	g.active = true
	g.dragging = false
	g.startX, g.startY = x, y
	g.lastX, g.lastY = x, y
}

// Move records motion and reports whether the gesture is now a drag.
func (g *Gesture) Move(x, y int) bool {
	if !g.active {
		return false
	}
	g.lastX, g.lastY = x, y
	if !g.dragging && (abs(x-g.startX) > g.Threshold || abs(y-g.startY) > g.Threshold) {
		g.dragging = true
	}
	return g.dragging
}

// Release ends the gesture. It returns the last position and whether the
// gesture was a drag.
func (g *Gesture) Release(x, y int) (int, int, bool) {
	if !g.active {
		return x, y, false
	}
	g.Move(x, y)
	drag := g.dragging
	g.active = false
	g.dragging = false
	return g.lastX, g.lastY, drag
}

// Cancel drops the gesture without reporting it.
func (g *Gesture) Cancel() {
	g.active = false
	g.dragging = false
}

// Active reports whether a press is being tracked.
func (g *Gesture) Active() bool {
	return g.active
}

// SuppressScroll reports whether wheel and scroll events should be
// swallowed because a drag is in progress.
func (g *Gesture) SuppressScroll() bool {
	return g.active && g.dragging
}

// Start returns the press position.
func (g *Gesture) Start() (int, int) {
	return g.startX, g.startY
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
