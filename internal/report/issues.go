// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report exports unresolved outcomes for offline review. Every
// record that did not produce an accepted match becomes one CSV row; the
// engine never decides what happens to them.
package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/praktikjakt/scb-match/pkg/types"
)

// Issue is one review row for a record that resolved without an
// accepted match.
type Issue struct {
	ID            int64
	Name          string
	Reason        string
	Score         string
	BestCandidate string
	City          string
	VariantUsed   string
}

// FromOutcome converts an unresolved outcome into an Issue. The second
// return value is false for accepted outcomes, which are stored, not
// reported.
func FromOutcome(rec types.SourceRecord, o types.Outcome) (Issue, bool) {
	if o.Accepted() {
		return Issue{}, false
	}

	issue := Issue{
		ID:     rec.ID,
		Name:   rec.Name,
		Reason: string(o.Status),
	}
	if o.Candidate != nil {
		issue.Score = strconv.Itoa(o.Score)
		issue.BestCandidate = o.Candidate.Name
		issue.City = o.Candidate.City
		issue.VariantUsed = o.Variant
	}
	return issue, true
}

var csvHeader = []string{"id", "name", "reason", "score", "best_candidate", "city", "variant_used"}

// WriteCSV writes issues with a header row.
func WriteCSV(w io.Writer, issues []Issue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, i := range issues {
		row := []string{
			strconv.FormatInt(i.ID, 10),
			i.Name, i.Reason, i.Score, i.BestCandidate, i.City, i.VariantUsed,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes issues to path, creating or truncating it.
func WriteCSVFile(path string, issues []Issue) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, issues); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
