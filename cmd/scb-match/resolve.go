package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/praktikjakt/scb-match/internal/registry"
	"github.com/praktikjakt/scb-match/internal/report"
	"github.com/praktikjakt/scb-match/internal/resolve"
	"github.com/praktikjakt/scb-match/internal/store"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve unmatched companies against the register",
	Long: `Resolve loads companies without a stored match, searches the register
with name variants, and stores the best candidate when it clears the
fuzzy-score threshold. Unresolved records (low score, no candidates, or
API failure on every variant) are exported to a CSV for review.

Interrupting a run is safe: matches are written one record at a time
and an interrupted record leaves nothing behind.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("db", "", "path to the companies SQLite database")
	resolveCmd.Flags().String("cert", "", "client certificate: cert.pem or 'cert.pem,key.pem'")
	resolveCmd.Flags().Int("limit", 0, "maximum number of companies to process (0 = all)")
	resolveCmd.Flags().Int("min-score", 85, "base fuzzy-score threshold for acceptance")
	resolveCmd.Flags().String("only-type", "", "comma-separated company types to include")
	resolveCmd.Flags().Bool("dry-run", false, "resolve without writing matches")
	resolveCmd.Flags().String("issues-csv", "scb_issues.csv", "path for the unresolved-records CSV")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	limit, _ := cmd.Flags().GetInt("limit")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	issuesPath, _ := cmd.Flags().GetString("issues-csv")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.Unmatched(ctx, cfg.Match.OnlyTypes, limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "resolving %d companies (dry-run: %v)\n\n", len(records), dryRun)

	client, err := registry.New(cfg.Registry)
	if err != nil {
		return err
	}

	resolver := &resolve.Resolver{Searcher: client, BaseThreshold: cfg.Match.BaseThreshold}
	summary, issues, err := resolver.Run(ctx, records, db, dryRun, os.Stdout)
	if err != nil {
		return err
	}

	if len(issues) > 0 {
		if err := report.WriteCSVFile(issuesPath, issues); err != nil {
			return fmt.Errorf("writing issues CSV: %w", err)
		}
		fmt.Fprintf(os.Stdout, "issues exported to %s\n", issuesPath)
	}

	if summary.APIFailures > 0 {
		return fmt.Errorf("%d record(s) failed on every variant", summary.APIFailures)
	}
	return nil
}
