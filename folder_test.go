package main

import (
	"os"
	"path/filepath"
	"testing"
)

// writeDeckFolder lays out a complete, valid deck folder and returns its
// root. Tests mutate it from there to provoke specific failures.
func writeDeckFolder(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"config.yaml": `masterDeckName: Master
modelName: basic
modelNameDescriptive: Basic Card
fields:
  - question
  - answer
  - sentenceAudio
urlCheck:
  enabled: false
`,
		"card/front.html": "<b>{{question}}</b>",
		"card/back.html":  "{{FrontSide}}<hr>{{answer}}",
		"card/style.css":  ".card { font-family: sans-serif; }",
		"decks/A.csv":     "question;answer;sentenceAudio\nQ1;A1;\nQ2;A2;\n",
		"decks/B.csv":     "question;answer;sentenceAudio\nQ3;A3;\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return root
}

func TestFolderConfigPath(t *testing.T) {
	root := writeDeckFolder(t)
	folder := NewFolder(root)

	path, err := folder.ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error = %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("ConfigPath() = %s, want config.yaml", path)
	}

	// .yml is accepted as fallback.
	os.Rename(filepath.Join(root, "config.yaml"), filepath.Join(root, "config.yml"))
	path, err = folder.ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error after rename = %v", err)
	}
	if filepath.Base(path) != "config.yml" {
		t.Errorf("ConfigPath() = %s, want config.yml", path)
	}

	os.Remove(filepath.Join(root, "config.yml"))
	if _, err := folder.ConfigPath(); err == nil {
		t.Error("ConfigPath() expected error with no config file")
	}
}

func TestFolderCardTemplates(t *testing.T) {
	folder := NewFolder(writeDeckFolder(t))

	templates, err := folder.CardTemplates()
	if err != nil {
		t.Fatalf("CardTemplates() error = %v", err)
	}
	if templates.Front != "<b>{{question}}</b>" {
		t.Errorf("Front = %q", templates.Front)
	}
	if templates.CSS == "" {
		t.Error("CSS should not be empty")
	}
}

func TestFolderLoadDecksOrder(t *testing.T) {
	root := writeDeckFolder(t)
	folder := NewFolder(root)

	decks, err := folder.LoadDecks([]string{"question", "answer"})
	if err != nil {
		t.Fatalf("LoadDecks() error = %v", err)
	}

	if len(decks) != 2 {
		t.Fatalf("got %d decks, want 2", len(decks))
	}
	if decks[0].Name != "A" || decks[1].Name != "B" {
		t.Errorf("deck order = %s, %s; want A, B", decks[0].Name, decks[1].Name)
	}
	if len(decks[0].Notes) != 2 || len(decks[1].Notes) != 1 {
		t.Errorf("note counts = %d, %d; want 2, 1", len(decks[0].Notes), len(decks[1].Notes))
	}
}

func TestFolderLoadDecksEmpty(t *testing.T) {
	root := writeDeckFolder(t)
	os.Remove(filepath.Join(root, "decks", "A.csv"))
	os.Remove(filepath.Join(root, "decks", "B.csv"))

	if _, err := NewFolder(root).LoadDecks([]string{"question"}); err == nil {
		t.Error("LoadDecks() expected error for empty decks directory")
	}
}
