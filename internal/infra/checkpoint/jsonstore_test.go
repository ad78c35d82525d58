package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewJSONStore(t.TempDir())

	if err := s.Save("abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "abc" {
		t.Fatalf("Load = %q, want %q", got, "abc")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewJSONStore(t.TempDir())
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "" {
		t.Fatalf("Load = %q, want empty", got)
	}
}

func TestSaveCreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".gramhound")
	s := NewJSONStore(dir)
	if err := s.Save("zz"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "checkpoint.json")); err != nil {
		t.Fatalf("checkpoint file missing: %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := NewJSONStore(t.TempDir())
	if err := s.Save("aa"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("ab"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "ab" {
		t.Fatalf("Load = %q, want %q", got, "ab")
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONStore(dir)
	if err := s.Save("ab"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("temp file %q left behind", e.Name())
		}
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "checkpoint.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := NewJSONStore(dir)
	if _, err := s.Load(); err == nil {
		t.Fatalf("expected decode error")
	}
}
