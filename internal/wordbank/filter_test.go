package wordbank

import "testing"

func TestSanitizeTrimsAndDropsBlanks(t *testing.T) {
	got := Sanitize([]string{"  cafe ", "", "   ", "\tbus stop", "shop"})
	want := []string{"cafe", "bus stop", "shop"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("a\r\nb\nc")
	if len(lines) != 3 || lines[0] != "a" || lines[1] != "b" || lines[2] != "c" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}
