package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore persists entries as JSON files in a directory, one file per
// key. Best-effort local storage: callers treat any fault as a miss.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a disk-backed store rooted at dir
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Get retrieves an entry by key
func (s *DiskStore) Get(key string) (*Entry, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, &StorageError{Op: "read", Err: err}
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, &StorageError{Op: "decode", Err: err}
	}

	return &entry, true, nil
}

// Put stores an entry, replacing any existing entry for the same key
func (s *DiskStore) Put(entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &StorageError{Op: "mkdir", Err: err}
	}

	if err := os.WriteFile(s.path(entry.Key), data, 0644); err != nil {
		return &StorageError{Op: "write", Err: err}
	}

	return nil
}

// Delete removes an entry; no-op when absent
func (s *DiskStore) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return &StorageError{Op: "delete", Err: err}
	}
	return nil
}

// Clear removes all entries
func (s *DiskStore) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	return nil
}

// Entries returns a snapshot of all live entries
func (s *DiskStore) Entries() ([]*Entry, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Op: "list", Err: err}
	}

	var entries []*Entry
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, de.Name()))
		if err != nil {
			continue // Entry may have been removed concurrently
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// path maps a cache key to its file. Keys contain ':' which is not
// portable in filenames.
func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.json", strings.ReplaceAll(key, ":", "_")))
}
