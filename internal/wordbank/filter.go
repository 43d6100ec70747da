package wordbank

import "strings"

// Sanitize trims every line and drops blank ones, keeping order.
func Sanitize(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		w := strings.TrimSpace(line)
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

// SplitLines splits editor text into lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
