package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
)

// Assembler drives the remote deck API: model, decks, notes, export.
// Model and deck failures are fatal; note failures are collected and the
// run continues with the remaining notes.
type Assembler struct {
	client  DeckClient
	cfg     *Config
	checker *MediaChecker
}

// NewAssembler wires an assembler over a deck API client.
func NewAssembler(client DeckClient, cfg *Config, checker *MediaChecker) *Assembler {
	return &Assembler{client: client, cfg: cfg, checker: checker}
}

// Run materializes every subdeck remotely and exports the master deck to
// exportPath. It returns per-note results alongside any fatal error; on a
// fatal error the results cover the notes submitted so far.
func (a *Assembler) Run(decks []*Subdeck, templates *CardTemplates, exportPath string) ([]NoteResult, error) {
	color.Yellow("[?] Checking remote API permissions...")
	if err := a.client.RequestPermission(); err != nil {
		return nil, err
	}
	color.Green("[i] Permissions have been granted.")

	color.Yellow("[+] Creating model %q...", a.cfg.ModelName)
	if err := a.client.CreateModel(Model{
		Name:            a.cfg.ModelName,
		DescriptiveName: a.cfg.ModelNameDescriptive,
		Fields:          a.cfg.Fields,
		Templates:       templates,
	}); err != nil {
		return nil, fmt.Errorf("creating model: %w", err)
	}

	if err := a.client.CreateDeck(a.cfg.MasterDeckName); err != nil {
		return nil, fmt.Errorf("creating deck %s: %w", a.cfg.MasterDeckName, err)
	}

	var results []NoteResult
	for _, deck := range decks {
		deckName := a.cfg.MasterDeckName + "::" + deck.Name
		color.Cyan("[i] Processing deck: %s", deck.Name)

		if err := a.client.CreateDeck(deckName); err != nil {
			return results, fmt.Errorf("creating deck %s: %w", deckName, err)
		}

		for i, note := range deck.Notes {
			result := NoteResult{Deck: deck.Name, Row: i + 1, Status: NoteCreated}
			payload := a.buildNote(deckName, note, &result)

			if err := a.client.AddNote(payload); err != nil {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					// Transport-level failure, nothing further will succeed.
					return results, fmt.Errorf("deck %s row %d: %w", deck.Name, result.Row, err)
				}
				result.Status = NoteFailed
				result.Error = apiErr
				color.Red("[X]   > Note %d not created: %v", result.Row, apiErr)
			}
			results = append(results, result)
		}
	}

	color.Cyan("[i] Exporting deck to %q", exportPath)
	if err := a.client.ExportDeck(a.cfg.MasterDeckName, exportPath); err != nil {
		return results, fmt.Errorf("exporting deck: %w", err)
	}
	return results, nil
}

// buildNote maps a note's fields onto the wire payload. Text fields copy
// through; media fields become download-by-URL references, dropped when
// the precheck marks them invalid.
func (a *Assembler) buildNote(deckName string, note Note, result *NoteResult) NotePayload {
	payload := NotePayload{
		DeckName:  deckName,
		ModelName: a.cfg.ModelName,
		Fields:    make(map[string]string),
	}

	for _, field := range a.cfg.Fields {
		value, ok := note[field]
		if !ok {
			continue
		}

		kind := ClassifyField(field)
		if kind == MediaNone {
			payload.Fields[field] = value
			continue
		}
		if value == "" {
			continue
		}

		check := a.checker.Check(value, kind)
		if check.Status == CheckInvalid {
			result.DroppedMedia = append(result.DroppedMedia, field)
			color.Red("[X]   > Not able to use %q for %s: %s", value, field, check.Reason)
			continue
		}

		filename, err := mediaFilename(value)
		if err != nil {
			result.DroppedMedia = append(result.DroppedMedia, field)
			color.Red("[X]   > Not able to use %q for %s: %v", value, field, err)
			continue
		}

		ref := MediaRef{URL: value, Filename: filename, Fields: []string{field}}
		switch kind {
		case MediaImage:
			payload.Picture = append(payload.Picture, ref)
		case MediaAudio:
			payload.Audio = append(payload.Audio, ref)
		}
	}
	return payload
}

// SummarizeResults prints the end-of-run note summary and returns the
// number of failed notes.
func SummarizeResults(results []NoteResult) int {
	failed := 0
	for _, result := range results {
		if result.Status == NoteFailed {
			failed++
		}
	}

	if failed > 0 {
		color.Red("[X] %d of %d notes were not created:", failed, len(results))
		for _, result := range results {
			if result.Status == NoteFailed {
				color.Red("[X]   > %s row %d: %v", result.Deck, result.Row, result.Error)
			}
		}
	} else {
		color.Green("[i] All %d notes created.", len(results))
	}
	return failed
}
