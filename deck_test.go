package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDeckCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestReadSubdeckFieldIntersection(t *testing.T) {
	// Column order differs from the configured field order and the CSV
	// carries an extra column; notes must contain exactly the
	// header/fields intersection.
	csv := "answer;comment;question\nB1;ignore me;Q1\nB2;also ignored;Q2\n"
	path := writeDeckCSV(t, "animals.csv", csv)

	deck, err := ReadSubdeck(path, []string{"question", "answer", "sentenceAudio"})
	if err != nil {
		t.Fatalf("ReadSubdeck() error = %v", err)
	}

	if deck.Name != "animals" {
		t.Errorf("deck.Name = %q, want %q", deck.Name, "animals")
	}
	if len(deck.Notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(deck.Notes))
	}

	note := deck.Notes[0]
	if len(note) != 2 {
		t.Errorf("note has %d fields, want 2: %v", len(note), note)
	}
	if note["question"] != "Q1" || note["answer"] != "B1" {
		t.Errorf("note = %v, want question=Q1 answer=B1", note)
	}
	if _, ok := note["comment"]; ok {
		t.Error("unconfigured column 'comment' should be dropped")
	}
	if _, ok := note["sentenceAudio"]; ok {
		t.Error("configured field absent from header should not appear in note")
	}
}

func TestReadSubdeckWrongDelimiter(t *testing.T) {
	csv := "question,answer\nQ1,A1\n"
	path := writeDeckCSV(t, "comma.csv", csv)

	_, err := ReadSubdeck(path, []string{"question", "answer"})
	if err == nil {
		t.Fatal("ReadSubdeck() expected error for ',' delimiter")
	}

	var formatErr *CSVFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error = %T, want *CSVFormatError", err)
	}
	if formatErr.File != "comma.csv" {
		t.Errorf("CSVFormatError.File = %q, want %q", formatErr.File, "comma.csv")
	}
}

func TestReadSubdeckColumnCountMismatch(t *testing.T) {
	csv := "question;answer\nQ1;A1\nQ2\nQ3;A3\n"
	path := writeDeckCSV(t, "ragged.csv", csv)

	_, err := ReadSubdeck(path, []string{"question", "answer"})
	if err == nil {
		t.Fatal("ReadSubdeck() expected error for ragged row")
	}

	var formatErr *CSVFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error = %T, want *CSVFormatError", err)
	}
	if formatErr.Row != 2 {
		t.Errorf("CSVFormatError.Row = %d, want 2", formatErr.Row)
	}
}

func TestReadSubdeckEmptyFile(t *testing.T) {
	path := writeDeckCSV(t, "empty.csv", "")

	_, err := ReadSubdeck(path, []string{"question"})
	var formatErr *CSVFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error = %v, want *CSVFormatError", err)
	}
}

func TestReadSubdeckHeaderOnly(t *testing.T) {
	path := writeDeckCSV(t, "headeronly.csv", "question;answer\n")

	deck, err := ReadSubdeck(path, []string{"question", "answer"})
	if err != nil {
		t.Fatalf("ReadSubdeck() error = %v", err)
	}
	if len(deck.Notes) != 0 {
		t.Errorf("got %d notes, want 0", len(deck.Notes))
	}
}
