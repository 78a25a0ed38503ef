package repl

import (
	"bufio"
	"os"
	"sync"
)

// DefaultMaxSize is the number of entries kept when none is configured.
const DefaultMaxSize = 1000

const historyFilePerm os.FileMode = 0666

// History manages command history for the REPL.
// It is safe for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []string
	maxSize int
}

// NewHistory creates a History keeping at most maxSize entries.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &History{
		entries: make([]string, 0),
		maxSize: maxSize,
	}
}

// Add adds a command to history, evicting the oldest entry when full.
func (h *History) Add(cmd string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.add(cmd)
}

func (h *History) add(cmd string) {
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

// Get returns the history entry at index (0 = most recent).
func (h *History) Get(index int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.entries[:0]
}

// LoadHistory appends the entries stored in the file at path, one per
// line, oldest first. Blank lines are skipped.
func (h *History) LoadHistory(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			h.add(line)
		}
	}
	return scanner.Err()
}

// SaveHistory replaces the file at path with the current entries.
func (h *History) SaveHistory(path string) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, historyFilePerm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	h.mu.Lock()
	defer h.mu.Unlock()

	w := bufio.NewWriter(file)
	for _, entry := range h.entries {
		if _, err := w.WriteString(entry + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
