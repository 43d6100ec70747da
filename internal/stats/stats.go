package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/wordmatch/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
)

// Summary aggregates a set of rounds.
type Summary struct {
	Rounds         int
	Entries        int
	Mistakes       int
	AvgAccuracy    float64
	BestAccuracy   float64
	SecondsPerWord float64
}

// RoundMetrics computes first-try accuracy and seconds per word for a round.
func RoundMetrics(r model.RoundAggregate) (accuracy, secondsPerWord float64) {
	if den := r.Entries + r.Mistakes; den > 0 {
		accuracy = float64(r.Entries) / float64(den)
	}
	if r.Entries > 0 && r.DurationMs > 0 {
		secondsPerWord = float64(r.DurationMs) / 1000.0 / float64(r.Entries)
	}
	return accuracy, secondsPerWord
}

// Summarize aggregates rounds.
func Summarize(rounds []model.RoundAggregate) Summary {
	s := Summary{Rounds: len(rounds)}
	if len(rounds) == 0 {
		return s
	}
	var totalAcc, totalSecs float64
	timed := 0
	for _, r := range rounds {
		s.Entries += r.Entries
		s.Mistakes += r.Mistakes
		acc, secs := RoundMetrics(r)
		totalAcc += acc
		if acc > s.BestAccuracy {
			s.BestAccuracy = acc
		}
		if secs > 0 {
			totalSecs += secs
			timed++
		}
	}
	s.AvgAccuracy = totalAcc / float64(len(rounds))
	if timed > 0 {
		s.SecondsPerWord = totalSecs / float64(timed)
	}
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return terminalWidthBackup
}

// RenderSummary prints totals and a per-mode table.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	t := report.Total
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", t.Rounds),
		fmt.Sprintf("Words: %d", t.Entries),
		fmt.Sprintf("Mistakes: %d", t.Mistakes),
		fmt.Sprintf("Avg Accuracy: %.2f%%", t.AvgAccuracy*100),
		fmt.Sprintf("Best Accuracy: %.2f%%", t.BestAccuracy*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	headers := []string{"Mode", "Rounds", "Mistakes", "Accuracy", "Sec/Word"}
	var rows [][]string
	for _, mode := range model.Modes() {
		s, ok := report.ByMode[mode]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			string(mode),
			fmt.Sprintf("%d", s.Rounds),
			fmt.Sprintf("%d", s.Mistakes),
			fmt.Sprintf("%.2f%%", s.AvgAccuracy*100),
			fmt.Sprintf("%.1f", s.SecondsPerWord),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints an accuracy sparkline over the most recent rounds that
// fit in width columns.
func RenderTrend(w io.Writer, rounds []model.RoundAggregate, window, width int) error {
	if len(rounds) == 0 {
		return nil
	}
	const label = "Accuracy trend: "
	room := width - len(label)
	if room < 1 {
		room = 1
	}
	accs := make([]float64, len(rounds))
	for i, r := range rounds {
		accs[i], _ = RoundMetrics(r)
	}
	accs = MovingAverage(accs, window)
	if len(accs) > room {
		accs = accs[len(accs)-room:]
	}
	_, err := fmt.Fprintf(w, "%s%s\n", label, Sparkline(accs))
	return err
}
