package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileAbsentIsEmptyCorpus(t *testing.T) {
	got, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty corpus, got %d passages", len(got))
	}
}

func TestLoadFileReadsRecordsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.json")
	data := `[
  {"content": "customer segmentation and target market basics", "chapter": 3},
  {"content": "pricing strategy for small shops"}
]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(got))
	}
	if got[0].ID != 0 || got[1].ID != 1 {
		t.Fatalf("ids not assigned in order: %d, %d", got[0].ID, got[1].ID)
	}
	if got[1].Content != "pricing strategy for small shops" {
		t.Fatalf("unexpected content: %q", got[1].Content)
	}
}

func TestParseSkipsRecordsWithoutContent(t *testing.T) {
	data := `[
  {"content": "keep me"},
  {"title": "no content field"},
  {"content": "   "},
  {"content": "keep me too"}
]`
	got, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected malformed records skipped, got %d passages", len(got))
	}
	if got[0].Content != "keep me" || got[1].Content != "keep me too" {
		t.Fatalf("unexpected passages: %+v", got)
	}
	if got[1].ID != 1 {
		t.Fatalf("ids must be dense after skipping, got %d", got[1].ID)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatalf("expected error")
	}
}
