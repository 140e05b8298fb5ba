package main

// Note holds a single flashcard's field values, keyed by field name.
// Only configured fields are retained; unmatched CSV columns are dropped.
type Note map[string]string

// Subdeck is the set of notes read from one CSV file. Its name is the
// file's base name and becomes "<masterDeckName>::<name>" remotely.
type Subdeck struct {
	Name  string
	Notes []Note
}

// CardTemplates holds the three card rendering files from the card/ folder.
type CardTemplates struct {
	Front string
	Back  string
	CSS   string
}

// NoteStatus represents the outcome of submitting a single note
type NoteStatus string

const (
	NoteCreated NoteStatus = "created"
	NoteFailed  NoteStatus = "failed"
)

// NoteResult tracks the outcome of each submitted note. Row counts data
// rows from 1, excluding the CSV header.
type NoteResult struct {
	Deck         string
	Row          int
	Status       NoteStatus
	Error        error
	DroppedMedia []string
}
