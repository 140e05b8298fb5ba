package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "cardforge",
	Short:         "Build flashcard decks from CSV files and card templates",
	Long:          `cardforge converts a folder of CSV files and HTML/CSS card templates into a flashcard deck, exported through an AnkiConnect-compatible API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var checkCmd = &cobra.Command{
	Use:   "check <folder>",
	Short: "Validate folder layout and configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report := CheckFolder(args[0])
		if !report.OK() {
			for _, problem := range report.Problems {
				color.Red("[X] %s", problem)
			}
			return fmt.Errorf("%d problem(s) found in %s", len(report.Problems), args[0])
		}

		fmt.Println(report.RenderSummary())
		color.Green("[i] %s looks good.", args[0])
		return nil
	},
}

var assembleCmd = &cobra.Command{
	Use:   "assemble <folder> <export-path> <host>",
	Short: "Build the deck via the remote API and export it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssemble(args[0], args[1], args[2])
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <folder> [deck]",
	Short: "Render the first note of a deck as markdown",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName := ""
		if len(args) > 1 {
			deckName = args[1]
		}
		return runPreview(args[0], deckName)
	},
}

func runAssemble(root, exportPath, host string) error {
	folder := NewFolder(root)

	cfg, err := folder.LoadConfig()
	if err != nil {
		return err
	}
	templates, err := folder.CardTemplates()
	if err != nil {
		return err
	}
	decks, err := folder.LoadDecks(cfg.Fields)
	if err != nil {
		return err
	}

	if cfg.WebserverEnabled {
		server := NewAssetServer(folder.AssetsDir(), cfg.WebserverPort)
		go func() {
			if err := server.Start(); err != nil {
				color.Red("[X] Asset server: %v", err)
			}
		}()
		color.Cyan("[i] Webserver enabled, listening on port %d", cfg.WebserverPort)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(ctx)
		}()
	}

	checker := NewMediaChecker(cfg.URLCheckEnabled, cfg.URLCheckTimeout)
	assembler := NewAssembler(NewAnkiClient(host), cfg, checker)

	results, err := assembler.Run(decks, templates, exportPath)
	SummarizeResults(results)
	if err != nil {
		return err
	}

	color.Green("[i] All done.")
	return nil
}

func runPreview(root, deckName string) error {
	folder := NewFolder(root)

	cfg, err := folder.LoadConfig()
	if err != nil {
		return err
	}
	templates, err := folder.CardTemplates()
	if err != nil {
		return err
	}
	decks, err := folder.LoadDecks(cfg.Fields)
	if err != nil {
		return err
	}

	deck := decks[0]
	if deckName != "" {
		deck = nil
		for _, d := range decks {
			if d.Name == deckName {
				deck = d
				break
			}
		}
		if deck == nil {
			return fmt.Errorf("no deck named %q in %s", deckName, folder.DecksDir())
		}
	}
	if len(deck.Notes) == 0 {
		return fmt.Errorf("deck %q has no notes", deck.Name)
	}

	preview, err := RenderPreview(templates, deck.Notes[0], cfg.Fields)
	if err != nil {
		return err
	}

	color.Cyan("[i] Deck %s, note 1", deck.Name)
	fmt.Println("--- Front ---")
	fmt.Println(preview.Front)
	fmt.Println("--- Back ---")
	fmt.Println(preview.Back)
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(previewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("[X] %v", err)
		os.Exit(1)
	}
}
