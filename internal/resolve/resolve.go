// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve orchestrates matching one source record against the
// company register: variant expansion, per-variant search, pooled
// scoring, and threshold-based classification. A batch runner processes
// many records sequentially and persists accepted matches.
package resolve

import (
	"context"
	"fmt"
	"io"

	"github.com/praktikjakt/scb-match/internal/fuzzy"
	"github.com/praktikjakt/scb-match/internal/normalize"
	"github.com/praktikjakt/scb-match/internal/report"
	"github.com/praktikjakt/scb-match/internal/variant"
	"github.com/praktikjakt/scb-match/pkg/types"
)

// Searcher is the register client surface the resolver needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.Candidate, error)
}

// Store persists accepted matches. SaveMatch must be a no-op when a
// match for the record already exists.
type Store interface {
	HasMatch(ctx context.Context, recordID int64) (bool, error)
	SaveMatch(ctx context.Context, recordID int64, outcome types.Outcome) error
}

// Resolver matches source records against the register.
type Resolver struct {
	Searcher Searcher

	// BaseThreshold is the minimum acceptance score before the
	// length-dependent floor (default 85).
	BaseThreshold int
}

const defaultBaseThreshold = 85

func (r *Resolver) base() int {
	if r.BaseThreshold > 0 {
		return r.BaseThreshold
	}
	return defaultBaseThreshold
}

// pooled is one candidate tagged with the search variant that found it.
type pooled struct {
	candidate types.Candidate
	variant   string
}

// Resolve matches one source record. Variants are searched sequentially;
// a variant's terminal API failure is logged to w and skipped, never
// aborting the record. The outcome distinguishes an empty register
// (no_candidates) from a register we could not ask (api_error).
func (r *Resolver) Resolve(ctx context.Context, rec types.SourceRecord, w io.Writer) types.Outcome {
	variants := variant.Generate(rec.Name)

	var pool []pooled
	completed := 0

	for _, v := range variants {
		if ctx.Err() != nil {
			return types.Outcome{Status: types.StatusAPIFailure}
		}

		candidates, err := r.Searcher.Search(ctx, v)
		if err != nil {
			fmt.Fprintf(w, "  warning: variant %q: %v\n", v, err)
			continue
		}
		completed++
		for _, c := range candidates {
			pool = append(pool, pooled{candidate: c, variant: v})
		}
	}

	if len(pool) == 0 {
		if completed == 0 {
			return types.Outcome{Status: types.StatusAPIFailure}
		}
		return types.Outcome{Status: types.StatusNoCandidates}
	}

	source := normalize.Name(rec.Name)
	bestIdx, bestScore := 0, -1
	for i, p := range pool {
		// Source name first; the score is not symmetric.
		score := fuzzy.Score(source, normalize.Name(p.candidate.Name))
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	best := pool[bestIdx]
	status := types.StatusLowScore
	if bestScore >= fuzzy.MinScore(rec.Name, r.base()) {
		status = types.StatusAccepted
	}
	return types.Outcome{
		Status:    status,
		Candidate: &best.candidate,
		Score:     bestScore,
		Variant:   best.variant,
	}
}

// Summary counts the outcomes of a batch run.
type Summary struct {
	Matched      int
	LowScore     int
	NoCandidates int
	APIFailures  int
	Skipped      int
}

// Total returns the number of records processed.
func (s Summary) Total() int {
	return s.Matched + s.LowScore + s.NoCandidates + s.APIFailures + s.Skipped
}

// Run resolves records sequentially, persisting accepted matches through
// store (unless dryRun) and collecting review issues for everything
// else. Records that already have a stored match are skipped. Per-record
// progress goes to w.
func (r *Resolver) Run(ctx context.Context, records []types.SourceRecord, store Store, dryRun bool, w io.Writer) (Summary, []report.Issue, error) {
	var summary Summary
	var issues []report.Issue

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, issues, err
		}

		if store != nil {
			exists, err := store.HasMatch(ctx, rec.ID)
			if err != nil {
				return summary, issues, fmt.Errorf("checking match for id=%d: %w", rec.ID, err)
			}
			if exists {
				summary.Skipped++
				fmt.Fprintf(w, "skipped id=%d %q (already matched)\n", rec.ID, rec.Name)
				continue
			}
		}

		outcome := r.Resolve(ctx, rec, w)

		switch outcome.Status {
		case types.StatusAccepted:
			summary.Matched++
			fmt.Fprintf(w, "match   id=%d score=%d %q -> %q (%s)\n",
				rec.ID, outcome.Score, rec.Name, outcome.Candidate.Name, outcome.Candidate.City)
			if !dryRun && store != nil {
				if err := store.SaveMatch(ctx, rec.ID, outcome); err != nil {
					return summary, issues, fmt.Errorf("saving match for id=%d: %w", rec.ID, err)
				}
			}

		case types.StatusLowScore:
			summary.LowScore++
			fmt.Fprintf(w, "low     id=%d score=%d %q best=%q\n",
				rec.ID, outcome.Score, rec.Name, outcome.Candidate.Name)

		case types.StatusNoCandidates:
			summary.NoCandidates++
			fmt.Fprintf(w, "nohit   id=%d %q\n", rec.ID, rec.Name)

		case types.StatusAPIFailure:
			summary.APIFailures++
			fmt.Fprintf(w, "error   id=%d %q (all variants failed)\n", rec.ID, rec.Name)
		}

		if issue, ok := report.FromOutcome(rec, outcome); ok {
			issues = append(issues, issue)
		}
	}

	fmt.Fprintf(w, "\nmatched: %d, low score: %d, no candidates: %d, api errors: %d, skipped: %d\n",
		summary.Matched, summary.LowScore, summary.NoCandidates, summary.APIFailures, summary.Skipped)

	return summary, issues, nil
}
