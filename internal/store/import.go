// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/praktikjakt/scb-match/pkg/types"
)

// ManualMatch is one hand-verified match from a review pass, read from
// a YAML file.
type ManualMatch struct {
	CompanyID int64  `yaml:"company_id"`
	OrgNr     string `yaml:"org_nr"`
	Name      string `yaml:"name"`
	City      string `yaml:"city,omitempty"`
}

// ImportSummary counts the results of a manual import.
type ImportSummary struct {
	Inserted int
	Skipped  int
}

// LoadManualMatches reads a YAML file of manual matches.
func LoadManualMatches(path string) ([]ManualMatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manual matches: %w", err)
	}
	var matches []ManualMatch
	if err := yaml.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("parsing manual matches: %w", err)
	}
	return matches, nil
}

// ImportManual stores hand-verified matches through the same idempotent
// path as resolved ones. Manual matches carry score 100. Companies that
// already have a match are counted as skipped.
func (s *Store) ImportManual(ctx context.Context, matches []ManualMatch) (ImportSummary, error) {
	var summary ImportSummary

	for _, m := range matches {
		if m.CompanyID == 0 || m.Name == "" {
			return summary, fmt.Errorf("manual match needs company_id and name, got %+v", m)
		}

		exists, err := s.HasMatch(ctx, m.CompanyID)
		if err != nil {
			return summary, err
		}
		if exists {
			summary.Skipped++
			continue
		}

		outcome := types.Outcome{
			Status:    types.StatusAccepted,
			Candidate: &types.Candidate{Name: m.Name, OrgNr: m.OrgNr, City: m.City},
			Score:     100,
			Variant:   "manual",
		}
		if err := s.SaveMatch(ctx, m.CompanyID, outcome); err != nil {
			return summary, err
		}
		summary.Inserted++
	}

	return summary, nil
}
