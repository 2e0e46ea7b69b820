package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/pkg/filesystem"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// SQLiteStore persists the run log in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.serpkit/history/runs.db database.
func NewSQLiteStore() *SQLiteStore {
	path := filepath.Join(filesystem.UserHomeDir(), ".serpkit", "history", "runs.db")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		// fallback to file store
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		command TEXT,
		root_keyword TEXT,
		language_code TEXT,
		location_code INTEGER,
		requests_used INTEGER,
		result_count INTEGER,
		success INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

func (s *SQLiteStore) fallback() *FileStore {
	return &FileStore{path: strings.TrimSuffix(s.path, ".db") + ".jsonl"}
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.RunRecord) error {
	if s.db == nil {
		return s.fallback().Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO runs
		(timestamp, command, root_keyword, language_code, location_code, requests_used, result_count, success, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.Format(time.RFC3339),
		record.Command,
		record.RootKeyword,
		record.LanguageCode,
		record.LocationCode,
		record.RequestsUsed,
		record.ResultCount,
		boolToInt(record.Success),
		record.DurationMS,
	)
	return err
}

// Records returns run entries (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.RunRecord, error) {
	if s.db == nil {
		return s.fallback().Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, command, root_keyword, language_code, location_code, requests_used, result_count, success, duration_ms FROM runs")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE root_keyword LIKE ?")
		args = append(args, "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var ts string
		var success int
		if err := rows.Scan(&ts, &rec.Command, &rec.RootKeyword, &rec.LanguageCode, &rec.LocationCode, &rec.RequestsUsed, &rec.ResultCount, &success, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all run entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

// PruneOlderThan removes entries older than the given number of days.
func (s *SQLiteStore) PruneOlderThan(days int) error {
	if s.db == nil {
		return s.fallback().PruneOlderThan(days)
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format(time.RFC3339)
	_, err := s.db.Exec("DELETE FROM runs WHERE datetime(timestamp) < datetime(?)", cutoff)
	return err
}

// ExportJSON writes the runs table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
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

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.RunRecorder = (*SQLiteStore)(nil)
