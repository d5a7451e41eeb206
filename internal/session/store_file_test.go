package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileStore(path)

	if _, ok := store.Load(); ok {
		t.Error("Load on a fresh store should report absent")
	}

	store.Save("tok-1")
	tok, ok := store.Load()
	if !ok || tok != "tok-1" {
		t.Errorf("Load = %q ok=%v, want tok-1", tok, ok)
	}

	store.Save("tok-2")
	tok, _ = store.Load()
	if tok != "tok-2" {
		t.Errorf("Load after overwrite = %q, want tok-2", tok)
	}

	store.Clear()
	if _, ok := store.Load(); ok {
		t.Error("Load after Clear should report absent")
	}
	store.Clear() // clearing again is fine
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	NewFileStore(path).Save("tok-persist")

	tok, ok := NewFileStore(path).Load()
	if !ok || tok != "tok-persist" {
		t.Errorf("Load from new store = %q ok=%v, want persisted token", tok, ok)
	}
}

func TestFileStore_OwnerOnlyPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	NewFileStore(path).Save("tok-secret")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}
}

func TestFileStore_CorruptFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := NewFileStore(path).Load(); ok {
		t.Error("corrupt file should load as absent")
	}
}

func TestFileStore_EmptyTokenTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte(`{"token":"  "}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := NewFileStore(path).Load(); ok {
		t.Error("blank token should load as absent")
	}
}

func TestFileStore_SaveFailureIsNonFatal(t *testing.T) {
	// Parent path is a file, so MkdirAll fails; Save must swallow it.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewFileStore(filepath.Join(blocker, "token.json"))
	store.Save("tok") // must not panic
	if _, ok := store.Load(); ok {
		t.Error("Load should report absent when persistence failed")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Load(); ok {
		t.Error("fresh memory store should be empty")
	}
	store.Save("tok")
	if tok, ok := store.Load(); !ok || tok != "tok" {
		t.Errorf("Load = %q ok=%v, want tok", tok, ok)
	}
	store.Clear()
	if _, ok := store.Load(); ok {
		t.Error("cleared memory store should be empty")
	}
}
