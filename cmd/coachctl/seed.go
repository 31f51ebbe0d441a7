package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zatekoja/coachplan/internal/adapters/database"
	"github.com/zatekoja/coachplan/internal/domain/entities"
)

//go:embed catalog.json
var defaultCatalog []byte

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the plan tables and load the exercise catalog",
	Long: `Apply the schema and insert every catalog exercise that is not present yet.

Exercises are matched by normalized title, so running seed twice inserts nothing
the second time. After a successful insert every running API instance is told
to drop its catalog cache.

EXAMPLES:

  coachctl seed                        # Built-in catalog
  coachctl seed --file exercises.json  # JSON array of {title, muscle_group, level, video_url, equipment}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := loadCatalog(seedFile)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		if err := database.ApplySchema(ctx, s.pg); err != nil {
			return err
		}

		inserted, err := s.rawCatalog.InsertMissing(ctx, entries)
		if err != nil {
			return err
		}
		if inserted > 0 {
			if err := s.catalogSync.Invalidate(ctx); err != nil {
				color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}

		color.New(color.FgGreen).Printf("✓ %d exercises inserted", inserted)
		fmt.Printf(" (%d in file)\n", len(entries))
		return nil
	},
}

func loadCatalog(path string) ([]entities.CatalogEntry, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = raw
	}

	var entries []entities.CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return entries, nil
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "catalog JSON file (defaults to the built-in catalog)")
	rootCmd.AddCommand(seedCmd)
}
