package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVFormatError reports a malformed deck CSV: wrong delimiter or a row
// whose column count differs from the header. Row is 0 for header-level
// problems, otherwise the 1-based data row number.
type CSVFormatError struct {
	File   string
	Row    int
	Reason string
}

func (e *CSVFormatError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: %s", e.File, e.Row, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// ReadSubdeck parses one deck CSV into a Subdeck named after the file's
// base name. The file must use ';' as delimiter with the first row as
// header. Each note keeps exactly the columns whose header matches a
// configured field; other columns are ignored.
func ReadSubdeck(path string, fields []string) (*Subdeck, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck CSV: %w", err)
	}
	defer file.Close()

	deck, err := parseSubdeck(file, fields)
	if err != nil {
		var formatErr *CSVFormatError
		if errors.As(err, &formatErr) {
			formatErr.File = filepath.Base(path)
		}
		return nil, err
	}

	deck.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return deck, nil
}

func parseSubdeck(r io.Reader, fields []string) (*Subdeck, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &CSVFormatError{Reason: "file is empty"}
	}
	if err != nil {
		return nil, &CSVFormatError{Reason: fmt.Sprintf("reading header: %v", err)}
	}

	// A single-column header containing ',' means the file almost
	// certainly uses the wrong delimiter.
	if len(header) == 1 && strings.Contains(header[0], ",") {
		return nil, &CSVFormatError{Reason: "expected ';' as delimiter, found ','"}
	}

	configured := make(map[string]bool, len(fields))
	for _, field := range fields {
		configured[field] = true
	}

	deck := &Subdeck{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &CSVFormatError{
				Row:    row,
				Reason: fmt.Sprintf("expected %d columns: %v", len(header), err),
			}
		}

		note := make(Note)
		for i, column := range header {
			if configured[column] {
				note[column] = record[i]
			}
		}
		deck.Notes = append(deck.Notes, note)
	}
	return deck, nil
}
