package outfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var out []string
	for _, line := range strings.Split(string(b), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func TestAppendWritesOnePerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "available.txt")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	for _, name := range []string{"ab", "cd", "ef"} {
		if err := a.Append(name); err != nil {
			t.Fatalf("Append(%q): %v", name, err)
		}
	}

	lines := readLines(t, path)
	if len(lines) != 3 || lines[0] != "ab" || lines[2] != "ef" {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestAppendDeduplicatesWithinRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "available.txt")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	if err := a.Append("ab"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := a.Append("ab"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if lines := readLines(t, path); len(lines) != 1 {
		t.Fatalf("expected 1 line, got %v", lines)
	}
}

func TestAppendDeduplicatesAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "available.txt")

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := a.Append("ab"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A resumed run must not write the same name again.
	b, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()
	if err := b.Append("ab"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Append("cd"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 || lines[0] != "ab" || lines[1] != "cd" {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestAppendConcurrentNoInterleaving(t *testing.T) {
	path := filepath.Join(t.TempDir(), "available.txt")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	names := make([]string, 0, 50)
	for c := 'a'; c <= 'z'; c++ {
		names = append(names, "name_"+string(c))
	}

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			if err := a.Append(n); err != nil {
				t.Errorf("Append(%q): %v", n, err)
			}
		}(name)
	}
	wg.Wait()

	lines := readLines(t, path)
	if len(lines) != len(names) {
		t.Fatalf("expected %d lines, got %d", len(names), len(lines))
	}
	sort.Strings(lines)
	for i, want := range names {
		if lines[i] != want {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestAppendAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "available.txt")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.Append("ab"); err == nil {
		t.Fatalf("expected error appending to closed sink")
	}
}
