package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/yndnr/netconf-cli/internal/core/domain"
)

// HistoryFile is the name of the history file in the configuration directory.
const HistoryFile = "history"

// FilePerm is the mode used to create placeholder files.
const FilePerm os.FileMode = 0666

// LineEditor owns the command history and its on-disk format.
type LineEditor interface {
	LoadHistory(path string) error
	SaveHistory(path string) error
}

// HistoryStore makes sure the history file exists and delegates reading
// and writing it to the line editor.
type HistoryStore struct {
	Editor LineEditor
	Access AccessFunc
}

// NewHistoryStore creates a HistoryStore for editor.
func NewHistoryStore(editor LineEditor) *HistoryStore {
	return &HistoryStore{Editor: editor}
}

// Path returns the history file path inside dir.
func (h *HistoryStore) Path(dir string) string {
	return filepath.Join(dir, HistoryFile)
}

// Load reads the history file in dir into the line editor. A missing file
// is replaced by an empty placeholder and nothing is loaded.
func (h *HistoryStore) Load(dir string) error {
	path := h.Path(dir)

	err := h.access(path, unix.R_OK)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := createPlaceholder(path); err != nil {
			return domain.ErrHistoryLoad.WithDetails(path).WithCause(err)
		}
		return nil
	case err != nil:
		return domain.ErrHistoryLoad.WithDetails(path).WithCause(err)
	}

	if h.Editor == nil {
		return nil
	}
	if err := h.Editor.LoadHistory(path); err != nil {
		return domain.ErrHistoryLoad.WithDetails(path).WithCause(err)
	}
	return nil
}

// Save writes the line editor's history to the history file in dir.
func (h *HistoryStore) Save(dir string) error {
	path := h.Path(dir)

	if err := h.access(path, unix.R_OK|unix.W_OK); errors.Is(err, fs.ErrNotExist) {
		// The editor's own write reports the failure if this does not work.
		_ = createPlaceholder(path)
	}

	if h.Editor == nil {
		return nil
	}
	if err := h.Editor.SaveHistory(path); err != nil {
		return domain.ErrHistorySave.WithDetails(path).WithCause(err)
	}
	return nil
}

func (h *HistoryStore) access(path string, mode AccessMode) error {
	if h.Access != nil {
		return h.Access(path, mode)
	}
	return unixAccess(path, mode)
}

// createPlaceholder creates an empty file at path, leaving an existing
// file untouched.
func createPlaceholder(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, FilePerm)
	if err != nil {
		return err
	}
	return f.Close()
}
