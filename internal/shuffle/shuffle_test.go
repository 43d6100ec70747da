package shuffle

import (
	"sort"
	"strings"
	"testing"
)

func TestShuffleIsPermutationAndKeepsInput(t *testing.T) {
	s := NewSeeded(1)
	for n := 0; n < 12; n++ {
		in := make([]int, n)
		for i := range in {
			in[i] = i % 4
		}
		orig := append([]int(nil), in...)
		out := Shuffle(s, in)
		if len(out) != len(in) {
			t.Fatalf("len %d: got %d elements", n, len(out))
		}
		for i := range in {
			if in[i] != orig[i] {
				t.Fatalf("input mutated at %d: %v vs %v", i, in, orig)
			}
		}
		sorted := append([]int(nil), out...)
		sort.Ints(sorted)
		want := append([]int(nil), orig...)
		sort.Ints(want)
		for i := range want {
			if sorted[i] != want[i] {
				t.Fatalf("not a permutation: %v from %v", out, orig)
			}
		}
	}
}

func TestShuffleUniformOverPermutations(t *testing.T) {
	s := NewSeeded(42)
	const trials = 60000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		out := Shuffle(s, []string{"a", "b", "c"})
		counts[strings.Join(out, "")]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected all 6 permutations, got %v", counts)
	}
	expected := float64(trials) / 6
	for perm, c := range counts {
		dev := (float64(c) - expected) / expected
		if dev < -0.05 || dev > 0.05 {
			t.Fatalf("permutation %s count %d deviates %.3f from %0.f", perm, c, dev, expected)
		}
	}
}

func TestPickOne(t *testing.T) {
	s := NewSeeded(7)
	if _, ok := PickOne(s, []string{}); ok {
		t.Fatalf("expected no pick from empty slice")
	}
	counts := map[string]int{}
	items := []string{"x", "y", "z", "w"}
	for i := 0; i < 40000; i++ {
		v, ok := PickOne(s, items)
		if !ok {
			t.Fatalf("expected a pick")
		}
		counts[v]++
	}
	for _, it := range items {
		if c := counts[it]; c < 9000 || c > 11000 {
			t.Fatalf("pick of %q skewed: %d", it, c)
		}
	}
}

func TestSample(t *testing.T) {
	s := NewSeeded(3)
	items := []string{"a", "b", "c", "d"}
	got := Sample(s, items, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %v", got)
	}
	if got[0] == got[1] {
		t.Fatalf("expected distinct items, got %v", got)
	}
	if all := Sample(s, items, 10); len(all) != 4 {
		t.Fatalf("expected sample capped at 4, got %v", all)
	}
	if none := Sample(s, []string{}, 2); len(none) != 0 {
		t.Fatalf("expected empty sample, got %v", none)
	}
	if items[0] != "a" || items[3] != "d" {
		t.Fatalf("sample mutated input: %v", items)
	}
}

func TestPerm(t *testing.T) {
	s := NewSeeded(9)
	p := Perm(s, 5)
	seen := map[int]bool{}
	for _, v := range p {
		if v < 0 || v >= 5 || seen[v] {
			t.Fatalf("invalid permutation %v", p)
		}
		seen[v] = true
	}
	id := Identity(3)
	if id[0] != 0 || id[1] != 1 || id[2] != 2 {
		t.Fatalf("unexpected identity %v", id)
	}
}
