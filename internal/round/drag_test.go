package round

import "testing"

func TestDragWrongDropFlashesAndReverts(t *testing.T) {
	rec := &finishRecorder{}
	d := NewDrag(entriesOf("cafe", "shop", "zoo"), rec.options(1))

	res := d.AttemptMatch("shop", "a")
	if res.Outcome != OutcomeWrong || !res.Announce {
		t.Fatalf("expected announced wrong, got %+v", res)
	}
	timer := mustTimer(t, res, KindFlash)
	if timer.After != ErrorFlashDuration {
		t.Fatalf("expected flash of %v, got %v", ErrorFlashDuration, timer.After)
	}
	if d.Feedback() != FeedbackWrong || d.ErrorWord() != "shop" {
		t.Fatalf("expected flash on shop, got %v %q", d.Feedback(), d.ErrorWord())
	}
	if d.Matched("a") || len(d.Pool()) != 3 {
		t.Fatalf("wrong drop changed state: matched=%v pool=%v", d.Matched("a"), d.Pool())
	}
	if !d.Fire(timer) {
		t.Fatalf("expected flash timer to fire")
	}
	if d.Feedback() != FeedbackIdle || d.ErrorWord() != "" {
		t.Fatalf("expected flash cleared, got %v %q", d.Feedback(), d.ErrorWord())
	}
	if d.Mistakes() != 1 {
		t.Fatalf("expected 1 mistake, got %d", d.Mistakes())
	}
}

func TestDragNewerFlashSupersedesOlder(t *testing.T) {
	rec := &finishRecorder{}
	d := NewDrag(entriesOf("cafe", "shop", "zoo"), rec.options(1))

	first := mustTimer(t, d.AttemptMatch("shop", "a"), KindFlash)
	second := mustTimer(t, d.AttemptMatch("zoo", "a"), KindFlash)
	if d.Fire(first) {
		t.Fatalf("expected superseded timer to be stale")
	}
	if d.ErrorWord() != "zoo" {
		t.Fatalf("expected zoo flash to survive, got %q", d.ErrorWord())
	}
	if !d.Fire(second) {
		t.Fatalf("expected latest timer to fire")
	}
}

func TestDragFinishesOnceInAnyOrder(t *testing.T) {
	rec := &finishRecorder{}
	d := NewDrag(entriesOf("cafe", "shop", "zoo"), rec.options(5))

	for _, step := range []struct{ word, id string }{{"zoo", "c"}, {"CAFE", "a"}} {
		res := d.AttemptMatch(step.word, step.id)
		if res.Outcome != OutcomeCorrect || res.Timer != nil {
			t.Fatalf("expected plain correct for %s, got %+v", step.word, res)
		}
	}
	if done, total := d.Progress(); done != 2 || total != 3 {
		t.Fatalf("expected 2/3, got %d/%d", done, total)
	}
	if res := d.AttemptMatch("cafe", "a"); res.Outcome != OutcomeIgnored {
		t.Fatalf("expected matched target to be ignored, got %+v", res)
	}

	res := d.AttemptMatch("shop", "b")
	finish := mustTimer(t, res, KindFinish)
	if !d.Finishing() || d.Finished() {
		t.Fatalf("expected pending finish")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("finish reported before delay")
	}
	if !d.Fire(finish) {
		t.Fatalf("expected finish timer to fire")
	}
	if d.Fire(finish) {
		t.Fatalf("expected finish timer to fire once")
	}
	if !d.Finished() || len(rec.calls) != 1 {
		t.Fatalf("expected one finish, got finished=%v calls=%d", d.Finished(), len(rec.calls))
	}
	if rec.calls[0].Entries != 3 || rec.calls[0].Mode != "drag" {
		t.Fatalf("unexpected summary %+v", rec.calls[0])
	}
	if res := d.AttemptMatch("cafe", "a"); res.Outcome != OutcomeIgnored {
		t.Fatalf("expected input ignored after finish")
	}
}

func TestDragUnknownWordOrTargetIgnored(t *testing.T) {
	rec := &finishRecorder{}
	d := NewDrag(entriesOf("cafe", "shop"), rec.options(1))
	if res := d.AttemptMatch("bank", "a"); res.Outcome != OutcomeIgnored {
		t.Fatalf("expected word outside pool ignored, got %+v", res)
	}
	if res := d.AttemptMatch("cafe", "zz"); res.Outcome != OutcomeIgnored {
		t.Fatalf("expected unknown target ignored, got %+v", res)
	}
	if d.Mistakes() != 0 {
		t.Fatalf("ignored drops must not count")
	}
}

func TestDragToggleRandomKeepsMatches(t *testing.T) {
	rec := &finishRecorder{}
	d := NewDrag(entriesOf("cafe", "shop", "zoo", "park"), rec.options(3))
	d.AttemptMatch("shop", "b")
	d.ToggleRandom()
	if !d.Random() {
		t.Fatalf("expected random on")
	}
	if !d.Matched("b") || len(d.Pool()) != 3 {
		t.Fatalf("toggle lost progress: pool=%v", d.Pool())
	}
	if len(d.Targets()) != 4 {
		t.Fatalf("expected 4 targets, got %d", len(d.Targets()))
	}
	d.Restart()
	if d.Matched("b") || len(d.Pool()) != 4 {
		t.Fatalf("restart kept progress")
	}
}

func TestDragDuplicateWords(t *testing.T) {
	rec := &finishRecorder{}
	d := NewDrag(entriesOf("zoo", "zoo"), rec.options(1))
	d.AttemptMatch("zoo", "a")
	res := d.AttemptMatch("zoo", "b")
	if res.Outcome != OutcomeCorrect || res.Timer == nil {
		t.Fatalf("expected second duplicate to complete the round, got %+v", res)
	}
}

func TestDragDropsOutsideThePoolAreIgnored(t *testing.T) {
	rec := &finishRecorder{}
	d := NewDrag(entriesOf("cafe", "shop", "zoo"), rec.options(2))
	if res := d.AttemptMatch("shop", "b"); res.Outcome != OutcomeCorrect {
		t.Fatalf("expected shop to match, got %+v", res)
	}

	for _, step := range []struct{ word, id string }{
		{"shop", "a"},   // already matched word onto an open target
		{"cafe", "b"},   // pool word onto an already matched target
		{"banana", "c"}, // word that was never in the list
		{"zoo", "x"},    // unknown target
	} {
		res := d.AttemptMatch(step.word, step.id)
		if res.Outcome != OutcomeIgnored || res.Timer != nil || res.Announce {
			t.Fatalf("%s -> %s: expected no-op, got %+v", step.word, step.id, res)
		}
	}
	if d.Mistakes() != 0 || d.ErrorWord() != "" || d.Feedback() != FeedbackIdle {
		t.Fatalf("ignored drops left a trace: mistakes=%d flash=%q", d.Mistakes(), d.ErrorWord())
	}
	if len(d.Pool()) != 2 || !d.Matched("b") || d.Matched("a") {
		t.Fatalf("ignored drops changed the board: pool=%v", d.Pool())
	}
}
