package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Names of the card template files expected under card/.
var cardFiles = []string{"front.html", "back.html", "style.css"}

// Folder resolves the fixed layout of a deck folder:
// config.yaml|yml, card/, decks/*.csv and the optional assets/ directory.
type Folder struct {
	Root string
}

func NewFolder(root string) Folder {
	return Folder{Root: root}
}

// ConfigPath returns the path of config.yaml, falling back to config.yml.
func (f Folder) ConfigPath() (string, error) {
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(f.Root, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no config.yaml or config.yml in %s", f.Root)
}

func (f Folder) CardDir() string {
	return filepath.Join(f.Root, "card")
}

func (f Folder) DecksDir() string {
	return filepath.Join(f.Root, "decks")
}

func (f Folder) AssetsDir() string {
	return filepath.Join(f.Root, "assets")
}

// LoadConfig locates and loads the folder's configuration file.
func (f Folder) LoadConfig() (*Config, error) {
	path, err := f.ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfig(path)
}

// CardTemplates reads front.html, back.html and style.css from card/.
func (f Folder) CardTemplates() (*CardTemplates, error) {
	contents := make([]string, len(cardFiles))
	for i, name := range cardFiles {
		data, err := os.ReadFile(filepath.Join(f.CardDir(), name))
		if err != nil {
			return nil, fmt.Errorf("reading card template: %w", err)
		}
		contents[i] = string(data)
	}
	return &CardTemplates{Front: contents[0], Back: contents[1], CSS: contents[2]}, nil
}

// DeckFiles lists the CSV files under decks/ in lexical order, so runs are
// deterministic regardless of directory read order.
func (f Folder) DeckFiles() ([]string, error) {
	entries, err := os.ReadDir(f.DecksDir())
	if err != nil {
		return nil, fmt.Errorf("reading decks directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		files = append(files, filepath.Join(f.DecksDir(), entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadDecks reads every CSV under decks/ into a Subdeck.
func (f Folder) LoadDecks(fields []string) ([]*Subdeck, error) {
	files, err := f.DeckFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", f.DecksDir())
	}

	decks := make([]*Subdeck, 0, len(files))
	for _, file := range files {
		deck, err := ReadSubdeck(file, fields)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	return decks, nil
}
