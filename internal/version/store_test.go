package version

import (
	"testing"
	"time"
)

func TestCommitWritesContentAndSidecar(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	ver, err := store.Commit("projects/p1/card.md", []byte("hello"), "initial commit", now)
	if err != nil {
		t.Fatal(err)
	}
	if ver != "v20260115_103000" {
		t.Errorf("got version %q", ver)
	}

	content, err := store.Read("projects/p1/card.md", ver)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "hello" {
		t.Errorf("got %q", content)
	}
}

func TestCommitCollisionAppendsSuffix(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewStore(dir)
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	v1, err := store.Commit("card.md", []byte("a"), "first", now)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := store.Commit("card.md", []byte("b"), "second", now)
	if err != nil {
		t.Fatal(err)
	}
	if v1 == v2 {
		t.Fatal("expected collision to produce a distinct version tag")
	}
	if v2 != v1+"_1" {
		t.Errorf("got %q, want %q", v2, v1+"_1")
	}
}

func TestReadMissingVersionReturnsNilNoError(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewStore(dir)
	content, err := store.Read("card.md", "v99999999_000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != nil {
		t.Errorf("expected nil content for missing version, got %q", content)
	}
}

func TestHistorySortsDescendingAndTruncates(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewStore(dir)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.Commit("card.md", []byte("v"), "msg", base.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatal(err)
		}
	}

	history, err := store.History("card.md", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("got %d entries, want 3", len(history))
	}
	for i := 0; i+1 < len(history); i++ {
		if history[i].Meta.Date < history[i+1].Meta.Date {
			t.Errorf("history not sorted descending at index %d", i)
		}
	}
}

func TestHistoryNoDuplicates(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewStore(dir)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Commit("card.md", []byte("a"), "m1", now)
	store.Commit("card.md", []byte("b"), "m2", now.Add(time.Second))

	history, _ := store.History("card.md", DefaultHistoryLimit)
	seen := make(map[string]bool)
	for _, h := range history {
		if seen[h.Version] {
			t.Fatalf("duplicate version %q in history", h.Version)
		}
		seen[h.Version] = true
	}
}
