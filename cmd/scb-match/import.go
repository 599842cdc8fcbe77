package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/praktikjakt/scb-match/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <matches.yaml>",
	Short: "Import hand-verified matches from a review pass",
	Long: `Import loads a YAML file of manually verified matches and stores them
with a full score. Companies that already have a stored match are left
untouched, so re-importing the same file is safe.

File format:

    - company_id: 42
      org_nr: 5560360793
      name: Arla Plast AB
      city: Borensberg`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("db", "", "path to the companies SQLite database")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	matches, err := store.LoadManualMatches(args[0])
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "nothing to import")
		return nil
	}

	db, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := db.ImportManual(context.Background(), matches)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "imported %d match(es), skipped %d already matched\n",
		summary.Inserted, summary.Skipped)
	return nil
}
