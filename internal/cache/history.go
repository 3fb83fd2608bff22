package cache

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chaguan/chaguan/internal/model"
)

// HistoryRecord is one user-visible verification outcome. The history log
// is append-only and never consulted by the cache path.
type HistoryRecord struct {
	ID         int           `json:"id"`
	Claim      string        `json:"claim"`
	Verdict    model.Verdict `json:"verdict"`
	Confidence float64       `json:"confidence"`
	Summary    string        `json:"summary"`
	URL        string        `json:"url,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// History is an append-only JSONL log of verification outcomes
type History struct {
	path string

	mu     sync.Mutex
	nextID int
}

// NewHistory opens (or creates on first append) the history log at path
func NewHistory(path string) *History {
	h := &History{path: path, nextID: 1}
	if records, err := h.load(); err == nil && len(records) > 0 {
		h.nextID = records[len(records)-1].ID + 1
	}
	return h
}

// Append adds a record to the log
func (h *History) Append(rec HistoryRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec.ID = h.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = nowFunc()
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return &StorageError{Op: "history mkdir", Err: err}
	}

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &StorageError{Op: "history open", Err: err}
	}
	defer func() { _ = f.Close() }()

	data, err := json.Marshal(rec)
	if err != nil {
		return &StorageError{Op: "history encode", Err: err}
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return &StorageError{Op: "history write", Err: err}
	}

	h.nextID++
	return nil
}

// Recent returns up to n records, newest last
func (h *History) Recent(n int) ([]HistoryRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	records, err := h.load()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

// load reads all records; missing file means empty history
func (h *History) load() ([]HistoryRecord, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Op: "history open", Err: err}
	}
	defer func() { _ = f.Close() }()

	var records []HistoryRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec HistoryRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue // Skip torn writes
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &StorageError{Op: "history read", Err: err}
	}

	return records, nil
}
