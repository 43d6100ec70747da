package round

import (
	"testing"
	"time"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/shuffle"
)

func entriesOf(words ...string) []model.WordEntry {
	out := make([]model.WordEntry, len(words))
	for i, w := range words {
		out[i] = model.WordEntry{ID: string(rune('a' + i)), Word: w}
	}
	return out
}

type finishRecorder struct {
	calls []Summary
}

func (f *finishRecorder) options(seed int64) Options {
	clock := time.Unix(100, 0)
	return Options{
		Shuffler: shuffle.NewSeeded(seed),
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
		OnFinish: func(s Summary) {
			f.calls = append(f.calls, s)
		},
	}
}

func mustTimer(t *testing.T, res Result, kind TimerKind) Timer {
	t.Helper()
	if res.Timer == nil {
		t.Fatalf("expected %v timer, got none", kind)
	}
	if res.Timer.Kind != kind {
		t.Fatalf("expected timer kind %v, got %v", kind, res.Timer.Kind)
	}
	return *res.Timer
}
