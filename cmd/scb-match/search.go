package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/praktikjakt/scb-match/internal/fuzzy"
	"github.com/praktikjakt/scb-match/internal/normalize"
	"github.com/praktikjakt/scb-match/internal/registry"
	"github.com/praktikjakt/scb-match/internal/variant"
)

var searchCmd = &cobra.Command{
	Use:   "search <company name>",
	Short: "Search the register for one company name",
	Long: `Search expands a company name into its search variants, queries the
register with each, and prints every candidate scored against the source
name. Useful for diagnosing why a record did not resolve.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("cert", "", "client certificate: cert.pem or 'cert.pem,key.pem'")
	searchCmd.Flags().Bool("raw", false, "query the name as-is without variant expansion")

	rootCmd.AddCommand(searchCmd)
}

type scoredCandidate struct {
	name    string
	city    string
	orgNr   string
	score   int
	variant string
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	raw, _ := cmd.Flags().GetBool("raw")
	name := args[0]

	client, err := registry.New(cfg.Registry)
	if err != nil {
		return err
	}

	variants := []string{name}
	if !raw {
		variants = variant.Generate(name)
	}

	ctx := context.Background()
	source := normalize.Name(name)
	seen := map[string]bool{}
	var results []scoredCandidate

	for _, v := range variants {
		candidates, err := client.Search(ctx, v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: variant %q: %v\n", v, err)
			continue
		}
		for _, c := range candidates {
			key := c.OrgNr + "|" + c.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			results = append(results, scoredCandidate{
				name:    c.Name,
				city:    c.City,
				orgNr:   c.OrgNr,
				score:   fuzzy.Score(source, normalize.Name(c.Name)),
				variant: v,
			})
		}
	}

	if len(results) == 0 {
		fmt.Fprintf(os.Stdout, "no candidates for %q\n", name)
		return nil
	}

	sort.Slice(results, func(i, j int) bool { return results[i].score > results[j].score })

	threshold := fuzzy.MinScore(name, cfg.Match.BaseThreshold)
	fmt.Fprintf(os.Stdout, "%d candidate(s) for %q (threshold %d):\n", len(results), name, threshold)
	for _, r := range results {
		marker := " "
		if r.score >= threshold {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %3d  %-40s %-20s %s  via %q\n",
			marker, r.score, r.name, r.city, r.orgNr, r.variant)
	}
	return nil
}
