package profile

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "coldpitch", "profile.json")
	store := NewStore(path, zap.NewNop())

	want := domain.Profile{
		FullName:       "Jane Doe",
		UniversityName: "State University",
		Major:          "Computer Science",
		KeySkills:      "Go, SQL",
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := store.Load()
	if got != want {
		t.Fatalf("round trip mismatch: %+v != %+v", got, want)
	}
}

func TestStoreLoadMissingFileReturnsZeroProfile(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	if got := store.Load(); got != (domain.Profile{}) {
		t.Fatalf("expected zero profile, got %+v", got)
	}
}

func TestStoreLoadCorruptFileReturnsZeroProfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	store := NewStore(path, zap.NewNop())
	if got := store.Load(); got != (domain.Profile{}) {
		t.Fatalf("expected zero profile, got %+v", got)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.json")
	store := NewStore(path, zap.NewNop())

	if err := store.Save(domain.Profile{FullName: "First"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(domain.Profile{FullName: "Second"}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if got := store.Load().FullName; got != "Second" {
		t.Fatalf("expected overwrite, got %q", got)
	}

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the profile file, found %d entries", len(entries))
	}
}

func TestStoreSaveWithoutPathFails(t *testing.T) {
	t.Parallel()

	store := NewStore("", zap.NewNop())
	if err := store.Save(domain.Profile{}); err == nil {
		t.Fatalf("expected error without a path")
	}
	if got := store.Load(); got != (domain.Profile{}) {
		t.Fatalf("expected zero profile, got %+v", got)
	}
}
