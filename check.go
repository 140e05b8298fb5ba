package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// DeckSummary is one row of the check report: a readable deck, its note
// count and which of its columns carry media.
type DeckSummary struct {
	Name        string
	Notes       int
	MediaFields []string
}

// CheckReport collects everything the pre-flight pass found. Problems are
// accumulated rather than returned first-error-only so one run surfaces
// every violation.
type CheckReport struct {
	Problems []string
	Decks    []DeckSummary
}

func (r *CheckReport) problemf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// OK reports whether the folder passed every check.
func (r *CheckReport) OK() bool {
	return len(r.Problems) == 0
}

// CheckFolder validates a deck folder without touching the network:
// configuration, card templates, decks directory and each CSV's header
// and rows.
func CheckFolder(root string) *CheckReport {
	report := &CheckReport{}
	folder := NewFolder(root)

	if _, err := os.Stat(root); err != nil {
		report.problemf("folder %s does not exist", root)
		return report
	}

	var cfg *Config
	configPath, err := folder.ConfigPath()
	if err != nil {
		report.problemf("%v", err)
	} else if cfg, err = LoadConfig(configPath); err != nil {
		report.problemf("%v", err)
	}

	for _, name := range cardFiles {
		if _, err := os.Stat(filepath.Join(folder.CardDir(), name)); err != nil {
			report.problemf("missing card template card/%s", name)
		}
	}

	files, err := folder.DeckFiles()
	if err != nil {
		report.problemf("%v", err)
		return report
	}
	if len(files) == 0 {
		report.problemf("no CSV files found in %s", folder.DecksDir())
	}

	if cfg == nil {
		return report
	}

	for _, file := range files {
		deck, err := ReadSubdeck(file, cfg.Fields)
		if err != nil {
			report.problemf("%v", err)
			continue
		}
		report.checkDeckFields(file, deck, cfg.Fields)
	}
	return report
}

// checkDeckFields verifies every configured field appears in the CSV; the
// reader tolerates missing columns, but notes missing fields cannot render
// their cards.
func (r *CheckReport) checkDeckFields(file string, deck *Subdeck, fields []string) {
	summary := DeckSummary{Name: deck.Name, Notes: len(deck.Notes)}

	for _, field := range fields {
		if ClassifyField(field) != MediaNone {
			summary.MediaFields = append(summary.MediaFields, field)
		}
		if len(deck.Notes) == 0 {
			continue
		}
		if _, ok := deck.Notes[0][field]; !ok {
			r.problemf("%s: configured field %q not present in CSV header", filepath.Base(file), field)
		}
	}
	r.Decks = append(r.Decks, summary)
}

// RenderSummary renders the per-deck table shown after a clean check.
func (r *CheckReport) RenderSummary() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Deck", "Notes", "Media fields"})
	for _, deck := range r.Decks {
		media := "-"
		if len(deck.MediaFields) > 0 {
			media = strings.Join(deck.MediaFields, ", ")
		}
		tw.AppendRow(table.Row{deck.Name, deck.Notes, media})
	}
	return tw.Render()
}
