package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadKeywordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.txt")
	content := "keyword\nbest pizza\n\n# comment line\nbest pasta\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	keywords, err := ReadKeywordsFile(path)
	if err != nil {
		t.Fatalf("ReadKeywordsFile() error = %v", err)
	}
	want := []string{"best pizza", "best pasta"}
	if diff := cmp.Diff(want, keywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestReadKeywordsFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.txt")
	if err := os.WriteFile(path, []byte("\n# only comments\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadKeywordsFile(path); err == nil {
		t.Error("expected error for file without keywords")
	}
}

func TestSplitAndTrimCSV(t *testing.T) {
	got := SplitAndTrimCSV(" a, b ,, c ")
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if SplitAndTrimCSV("") != nil {
		t.Error("empty input should return nil")
	}
}

func TestNestedMapHelpers(t *testing.T) {
	root := map[string]interface{}{
		"defaults": map[string]interface{}{"language": "en"},
	}

	if ok := SetNestedMapValue(root, []string{"defaults", "max_questions"}, 40); !ok {
		t.Fatal("SetNestedMapValue failed")
	}
	value, found := TraverseNestedMap(root, []string{"defaults", "max_questions"})
	if !found || value != 40 {
		t.Errorf("TraverseNestedMap = %v, %v", value, found)
	}
	if _, found := TraverseNestedMap(root, []string{"defaults", "missing"}); found {
		t.Error("missing key reported as found")
	}
}
