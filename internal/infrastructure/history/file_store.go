package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/pkg/filesystem"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// FileStore appends run records to a jsonl file. It serves as the
// fallback when the SQLite store cannot open its database.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a run log under ~/.serpkit/history/runs.jsonl.
func NewFileStore() *FileStore {
	return &FileStore{
		path: filepath.Join(filesystem.UserHomeDir(), ".serpkit", "history", "runs.jsonl"),
	}
}

// Save implements ports.RunRecorder.
func (f *FileStore) Save(record domain.RunRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = file.Write(append(b, '\n'))
	return err
}

// Records returns run entries, newest first (limit/search optional).
func (f *FileStore) Records(limit int, search string) ([]domain.RunRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var records []domain.RunRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec domain.RunRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		if search != "" && !strings.Contains(rec.RootKeyword, search) {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// Newest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Clear removes the log file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// PruneOlderThan rewrites the file keeping only recent records.
func (f *FileStore) PruneOlderThan(days int) error {
	records, err := f.Records(0, "")
	if err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	var kept []domain.RunRecord
	for _, rec := range records {
		if rec.Timestamp.After(cutoff) {
			kept = append(kept, rec)
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := os.Create(f.path)
	if err != nil {
		return err
	}
	defer file.Close()
	// Records() reversed the order; restore append order on disk.
	for i := len(kept) - 1; i >= 0; i-- {
		b, err := json.Marshal(kept[i])
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// ExportJSON copies the log to dest as JSONL.
func (f *FileStore) ExportJSON(dest string) error {
	records, err := f.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.RunRecorder = (*FileStore)(nil)
