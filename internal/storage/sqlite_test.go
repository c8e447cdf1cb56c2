// internal/storage/sqlite_test.go
package storage

import (
	"path/filepath"
	"testing"

	"logdeck/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenPath() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPrefsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	p := engine.Prefs{
		Service:           "api",
		Tail:              250,
		Level:             "ERROR",
		TextFilter:        "timeout",
		ContainerOverride: "myproj-api-1",
	}
	if err := store.SavePrefs(p); err != nil {
		t.Fatalf("SavePrefs() error: %v", err)
	}

	got, ok, err := store.LoadPrefs("api")
	if err != nil {
		t.Fatalf("LoadPrefs() error: %v", err)
	}
	if !ok {
		t.Fatal("LoadPrefs() ok = false, want true")
	}
	if got != p {
		t.Errorf("LoadPrefs() = %+v, want %+v", got, p)
	}
}

func TestLoadPrefsUnknownService(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.LoadPrefs("ghost")
	if err != nil {
		t.Fatalf("LoadPrefs() error: %v", err)
	}
	if ok {
		t.Error("LoadPrefs() ok = true for unknown service")
	}
}

func TestSavePrefsUpserts(t *testing.T) {
	store := openTestStore(t)

	first := engine.Prefs{Service: "api", Tail: 100, Level: "ANY"}
	second := engine.Prefs{Service: "api", Tail: 900, Level: "WARN", TextFilter: "disk"}

	if err := store.SavePrefs(first); err != nil {
		t.Fatal(err)
	}
	if err := store.SavePrefs(second); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.LoadPrefs("api")
	if err != nil || !ok {
		t.Fatalf("LoadPrefs() = %v, %v", ok, err)
	}
	if got != second {
		t.Errorf("LoadPrefs() = %+v, want %+v", got, second)
	}
}
