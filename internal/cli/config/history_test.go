package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/yndnr/netconf-cli/internal/core/domain"
)

type fakeEditor struct {
	loaded  []string
	saved   []string
	loadErr error
	saveErr error
}

func (e *fakeEditor) LoadHistory(path string) error {
	e.loaded = append(e.loaded, path)
	return e.loadErr
}

func (e *fakeEditor) SaveHistory(path string) error {
	e.saved = append(e.saved, path)
	return e.saveErr
}

func TestHistoryStore_LoadMissingCreatesPlaceholder(t *testing.T) {
	dir := t.TempDir()
	editor := &fakeEditor{}
	h := NewHistoryStore(editor)

	if err := h.Load(dir); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, HistoryFile))
	if err != nil {
		t.Fatalf("placeholder not created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("placeholder size = %d, want 0", info.Size())
	}
	if len(editor.loaded) != 0 {
		t.Errorf("LoadHistory called %d times for a new file, want 0", len(editor.loaded))
	}
}

func TestHistoryStore_LoadExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, HistoryFile)
	if err := os.WriteFile(path, []byte("connect\n"), 0600); err != nil {
		t.Fatal(err)
	}
	editor := &fakeEditor{}
	h := NewHistoryStore(editor)

	if err := h.Load(dir); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(editor.loaded) != 1 || editor.loaded[0] != path {
		t.Errorf("LoadHistory calls = %v, want [%s]", editor.loaded, path)
	}
}

func TestHistoryStore_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, HistoryFile), nil, 0600); err != nil {
		t.Fatal(err)
	}

	t.Run("inaccessible", func(t *testing.T) {
		editor := &fakeEditor{}
		h := &HistoryStore{
			Editor: editor,
			Access: func(string, AccessMode) error { return unix.EACCES },
		}
		if err := h.Load(dir); !errors.Is(err, domain.ErrHistoryLoad) {
			t.Errorf("Load() error = %v, want ErrHistoryLoad", err)
		}
		if len(editor.loaded) != 0 {
			t.Error("LoadHistory called for an inaccessible file")
		}
	})

	t.Run("editor failure", func(t *testing.T) {
		h := NewHistoryStore(&fakeEditor{loadErr: errors.New("bad encoding")})
		if err := h.Load(dir); !errors.Is(err, domain.ErrHistoryLoad) {
			t.Errorf("Load() error = %v, want ErrHistoryLoad", err)
		}
	})
}

func TestHistoryStore_Save(t *testing.T) {
	dir := t.TempDir()
	editor := &fakeEditor{}
	h := NewHistoryStore(editor)

	if err := h.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	path := filepath.Join(dir, HistoryFile)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("history file not created: %v", err)
	}
	if len(editor.saved) != 1 || editor.saved[0] != path {
		t.Errorf("SaveHistory calls = %v, want [%s]", editor.saved, path)
	}

	h.Editor = &fakeEditor{saveErr: errors.New("disk full")}
	if err := h.Save(dir); !errors.Is(err, domain.ErrHistorySave) {
		t.Errorf("Save() error = %v, want ErrHistorySave", err)
	}
}

func TestHistoryStore_NilEditor(t *testing.T) {
	dir := t.TempDir()
	h := &HistoryStore{}
	if err := h.Load(dir); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if err := h.Save(dir); err != nil {
		t.Errorf("Save() error = %v", err)
	}
}
