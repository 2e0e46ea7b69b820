package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/serpkit-go/internal/domain"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	return &FileStore{path: filepath.Join(t.TempDir(), "runs.jsonl")}
}

func record(keyword string, age time.Duration) domain.RunRecord {
	return domain.RunRecord{
		Timestamp:   time.Now().UTC().Add(-age),
		Command:     "paa",
		RootKeyword: keyword,
		ResultCount: 3,
		Success:     true,
	}
}

func TestFileStoreSaveAndRecordsNewestFirst(t *testing.T) {
	store := testStore(t)
	for _, kw := range []string{"first", "second", "third"} {
		if err := store.Save(record(kw, 0)); err != nil {
			t.Fatalf("Save(%q) error = %v", kw, err)
		}
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].RootKeyword != "third" || records[2].RootKeyword != "first" {
		t.Errorf("order = [%s %s %s], want newest first",
			records[0].RootKeyword, records[1].RootKeyword, records[2].RootKeyword)
	}
}

func TestFileStoreSearchAndLimit(t *testing.T) {
	store := testStore(t)
	for _, kw := range []string{"pizza dough", "pizza oven", "sourdough"} {
		if err := store.Save(record(kw, 0)); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.Records(0, "pizza")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("search matched %d records, want 2", len(records))
	}

	limited, err := store.Records(1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].RootKeyword != "sourdough" {
		t.Errorf("limit 1 = %+v, want newest entry only", limited)
	}
}

func TestFileStorePruneOlderThan(t *testing.T) {
	store := testStore(t)
	if err := store.Save(record("old", 100*24*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(record("recent", time.Hour)); err != nil {
		t.Fatal(err)
	}

	if err := store.PruneOlderThan(30); err != nil {
		t.Fatalf("PruneOlderThan() error = %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].RootKeyword != "recent" {
		t.Errorf("after prune = %+v, want only the recent record", records)
	}
}

func TestFileStoreClearMissingFileIsNoError(t *testing.T) {
	store := testStore(t)
	if err := store.Clear(); err != nil {
		t.Errorf("Clear() on missing file = %v, want nil", err)
	}
	records, err := store.Records(0, "")
	if err != nil || records != nil {
		t.Errorf("Records() after clear = %v, %v", records, err)
	}
}

func TestFileStoreExportJSON(t *testing.T) {
	store := testStore(t)
	if err := store.Save(record("kw", 0)); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(t.TempDir(), "export.jsonl")
	if err := store.ExportJSON(dest); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	copied := &FileStore{path: dest}
	records, err := copied.Records(0, "")
	if err != nil || len(records) != 1 {
		t.Errorf("exported records = %v, %v", records, err)
	}
}
