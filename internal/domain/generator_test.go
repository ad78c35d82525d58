package domain

import (
	"strings"
	"testing"
)

func collect(t *testing.T, g *Generator, n int) []string {
	t.Helper()
	var out []string
	for len(out) < n {
		c, ok := g.Next()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}

func TestGeneratorFirstCandidates(t *testing.T) {
	g, err := NewGenerator(1, 2)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	got := collect(t, g, 3)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGeneratorSkipsLoneDot(t *testing.T) {
	g, err := NewGenerator(1, 1)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	all := collect(t, g, 100)
	// The full alphabet minus ".", which breaks the edge rule at length 1.
	if len(all) != len(Alphabet)-1 {
		t.Fatalf("expected %d candidates, got %d", len(Alphabet)-1, len(all))
	}
	for _, c := range all {
		if c == "." {
			t.Fatalf("generator emitted lone dot")
		}
	}
	if _, ok := g.Next(); ok {
		t.Fatalf("expected exhausted generator")
	}
}

func TestGeneratorEmitsOnlyValidCandidates(t *testing.T) {
	g, err := NewGenerator(1, 3)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	seen := map[string]struct{}{}
	prev := ""
	for {
		c, ok := g.Next()
		if !ok {
			break
		}
		if !IsValidCandidate(c, 1, 3) {
			t.Fatalf("generator emitted invalid candidate %q", c)
		}
		if strings.Contains(c, "..") {
			t.Fatalf("generator emitted %q with double dot", c)
		}
		if _, dup := seen[c]; dup {
			t.Fatalf("generator emitted %q twice", c)
		}
		seen[c] = struct{}{}
		if prev != "" && !enumLess(prev, c) {
			t.Fatalf("order violation: %q before %q", prev, c)
		}
		prev = c
	}

	if len(seen) == 0 {
		t.Fatalf("generator emitted nothing")
	}
}

// enumLess orders by length first, then position in Alphabet (not byte value).
func enumLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := 0; i < len(a); i++ {
		pa := strings.IndexByte(Alphabet, a[i])
		pb := strings.IndexByte(Alphabet, b[i])
		if pa != pb {
			return pa < pb
		}
	}
	return false
}

func TestGeneratorStartAfterResumes(t *testing.T) {
	full, err := NewGenerator(1, 2)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	reference := collect(t, full, 2000)

	// Resume after the 10th candidate and expect the identical suffix.
	resumed, err := NewGenerator(1, 2)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	if err := resumed.StartAfter(reference[9]); err != nil {
		t.Fatalf("StartAfter: %v", err)
	}

	suffix := collect(t, resumed, 2000)
	if len(suffix) != len(reference)-10 {
		t.Fatalf("resumed sequence has %d candidates, want %d", len(suffix), len(reference)-10)
	}
	for i, c := range suffix {
		if c != reference[10+i] {
			t.Fatalf("resumed candidate %d = %q, want %q", i, c, reference[10+i])
		}
	}
}

func TestGeneratorStartAfterLengthRollover(t *testing.T) {
	g, err := NewGenerator(1, 2)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	// "_" is the last length-1 raw product; the next candidate is "aa".
	if err := g.StartAfter("_"); err != nil {
		t.Fatalf("StartAfter: %v", err)
	}
	c, ok := g.Next()
	if !ok || c != "aa" {
		t.Fatalf("Next after rollover = %q (ok=%v), want \"aa\"", c, ok)
	}
}

func TestGeneratorStartAfterSkipsInvalidRawProducts(t *testing.T) {
	g, err := NewGenerator(2, 2)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	// "a." is a raw product that validation rejects; resume lands on "a_".
	if err := g.StartAfter("a."); err != nil {
		t.Fatalf("StartAfter: %v", err)
	}
	c, ok := g.Next()
	if !ok || c != "a_" {
		t.Fatalf("Next = %q (ok=%v), want \"a_\"", c, ok)
	}
}

func TestGeneratorStartAfterRejectsBadInput(t *testing.T) {
	g, err := NewGenerator(1, 2)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	if err := g.StartAfter("abc"); err == nil {
		t.Fatalf("expected error for candidate outside length window")
	}
	if err := g.StartAfter("A"); err == nil {
		t.Fatalf("expected error for candidate outside alphabet")
	}
}

func TestNewGeneratorRejectsBadWindow(t *testing.T) {
	if _, err := NewGenerator(0, 4); err == nil {
		t.Fatalf("expected error for min below platform minimum")
	}
	if _, err := NewGenerator(1, 31); err == nil {
		t.Fatalf("expected error for max above platform maximum")
	}
	if _, err := NewGenerator(3, 2); err == nil {
		t.Fatalf("expected error for inverted window")
	}
}
