package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testCatalogJSON = `{
  "Science": {
    "Space": [
      {"difficulty": "easy", "question": "q1", "answer": "a1"},
      {"difficulty": "hard", "question": "q2", "answer": "a2"}
    ],
    "Biology": [
      {"difficulty": "extreme", "question": "q3", "answer": "a3"}
    ]
  },
  "History": {
    "Ancient World": [
      {"difficulty": "easy", "question": "q4", "answer": "a4", "choices": ["a", "b", "c"]}
    ]
  }
}`

func writeTestCatalog(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestFileCatalogAssignsSortedIDs(t *testing.T) {
	c, err := newFileCatalog(writeTestCatalog(t, testCatalogJSON), 500)
	if err != nil {
		t.Fatalf("newFileCatalog: %v", err)
	}

	infos, err := c.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}

	// Groups and titles walk in sorted order, so IDs are stable across
	// loads of the same file.
	want := []CategoryInfo{
		{ID: "m1", Group: "History", Title: "Ancient World", Cost: 500},
		{ID: "m2", Group: "Science", Title: "Biology", Cost: 500},
		{ID: "m3", Group: "Science", Title: "Space", Cost: 500},
	}
	if len(infos) != len(want) {
		t.Fatalf("categories = %d, want %d", len(infos), len(want))
	}
	for i, info := range infos {
		if info != want[i] {
			t.Errorf("category %d = %+v, want %+v", i, info, want[i])
		}
	}
}

func TestFileCatalogLoadQuestions(t *testing.T) {
	c, err := newFileCatalog(writeTestCatalog(t, testCatalogJSON), 500)
	if err != nil {
		t.Fatalf("newFileCatalog: %v", err)
	}

	bank, err := c.LoadQuestions("m3")
	if err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if len(bank) != 2 {
		t.Fatalf("bank size = %d, want 2", len(bank))
	}
	if bank[0].Question != "q1" || bank[1].Difficulty != "hard" {
		t.Fatalf("unexpected bank contents: %+v", bank)
	}

	choices, err := c.LoadQuestions("m1")
	if err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if len(choices[0].Choices) != 3 {
		t.Fatalf("choices = %v, want 3 entries", choices[0].Choices)
	}

	if _, err := c.LoadQuestions("m9"); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("unknown category: err = %v, want ErrCatalogUnavailable", err)
	}
}

func TestFileCatalogRejectsBadInput(t *testing.T) {
	if _, err := newFileCatalog(filepath.Join(t.TempDir(), "missing.json"), 500); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("missing file: err = %v, want ErrCatalogUnavailable", err)
	}

	if _, err := newFileCatalog(writeTestCatalog(t, "not json"), 500); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("malformed file: err = %v, want ErrCatalogUnavailable", err)
	}
}

func TestLoadCatalogDegradesToPlaceholder(t *testing.T) {
	cfg := &Config{
		questions:    filepath.Join(t.TempDir(), "missing.json"),
		categoryCost: 500,
	}

	src := loadCatalog(cfg)
	if _, ok := src.(placeholderCatalog); !ok {
		t.Fatalf("source = %T, want placeholderCatalog", src)
	}

	infos, err := src.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(infos) == 0 {
		t.Fatal("placeholder catalog lists no categories")
	}
	if infos[0].Cost != 500 {
		t.Fatalf("placeholder cost = %d, want the configured cost", infos[0].Cost)
	}

	bank, err := src.LoadQuestions(infos[0].ID)
	if err != nil || len(bank) == 0 {
		t.Fatalf("placeholder bank: %v (%d questions)", err, len(bank))
	}
}

func TestPlaceholderQuestion(t *testing.T) {
	q := placeholderQuestion("Space", ValueHard)
	if q.Difficulty != "hard" {
		t.Fatalf("difficulty = %q, want hard", q.Difficulty)
	}
	if q.Question == "" || q.Answer == "" {
		t.Fatalf("placeholder incomplete: %+v", q)
	}
}
