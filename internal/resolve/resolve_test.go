package resolve

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praktikjakt/scb-match/pkg/types"
)

// fakeSearcher returns scripted candidates per exact query string and
// records the queries it saw. Unknown queries return no candidates.
type fakeSearcher struct {
	results map[string][]types.Candidate
	errs    map[string]error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]types.Candidate, error) {
	f.queries = append(f.queries, query)
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.results[query], nil
}

type fakeStore struct {
	existing map[int64]bool
	saved    map[int64]types.Outcome
}

func newFakeStore(existing ...int64) *fakeStore {
	s := &fakeStore{existing: make(map[int64]bool), saved: make(map[int64]types.Outcome)}
	for _, id := range existing {
		s.existing[id] = true
	}
	return s
}

func (s *fakeStore) HasMatch(_ context.Context, id int64) (bool, error) {
	return s.existing[id], nil
}

func (s *fakeStore) SaveMatch(_ context.Context, id int64, o types.Outcome) error {
	if s.existing[id] {
		return nil
	}
	s.existing[id] = true
	s.saved[id] = o
	return nil
}

func TestResolveAcceptsSuffixStrippedMatch(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]types.Candidate{
		"Arlaplast": {
			{Name: "Arla Foods AB", City: "Stockholm"},
			{Name: "Arla Plast AB", City: "Stockholm", OrgNr: "556131-7034"},
		},
	}}
	r := &Resolver{Searcher: searcher}

	out := r.Resolve(context.Background(), types.SourceRecord{ID: 1, Name: "Arlaplast"}, &bytes.Buffer{})

	assert.Equal(t, types.StatusAccepted, out.Status)
	require.NotNil(t, out.Candidate)
	assert.Equal(t, "Arla Plast AB", out.Candidate.Name)
	assert.GreaterOrEqual(t, out.Score, 92)
	assert.Equal(t, "Arlaplast", out.Variant)
}

func TestResolveAcronymVariantFindsMatch(t *testing.T) {
	// No hit for the bare acronym; the register knows "CEVT AB".
	searcher := &fakeSearcher{results: map[string][]types.Candidate{
		"CEVT AB": {{Name: "CEVT AB", City: "Göteborg"}},
	}}
	r := &Resolver{Searcher: searcher}

	out := r.Resolve(context.Background(), types.SourceRecord{ID: 2, Name: "CEVT"}, &bytes.Buffer{})

	assert.Equal(t, types.StatusAccepted, out.Status)
	assert.Equal(t, 100, out.Score)
	assert.Equal(t, "CEVT AB", out.Variant)
	// First variant tried is always the verbatim name.
	assert.Equal(t, "CEVT", searcher.queries[0])
}

func TestResolveNoCandidates(t *testing.T) {
	r := &Resolver{Searcher: &fakeSearcher{}}
	out := r.Resolve(context.Background(), types.SourceRecord{ID: 3, Name: "Fiktiva Bolaget"}, &bytes.Buffer{})
	assert.Equal(t, types.StatusNoCandidates, out.Status)
	assert.Nil(t, out.Candidate)
}

func TestResolveLowScoreSurfacesBestCandidate(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]types.Candidate{
		"Svenska Kullagerfabriken": {{Name: "Atlas Copco Industriteknik AB", City: "Nacka"}},
	}}
	r := &Resolver{Searcher: searcher}

	out := r.Resolve(context.Background(), types.SourceRecord{ID: 4, Name: "Svenska Kullagerfabriken"}, &bytes.Buffer{})

	assert.Equal(t, types.StatusLowScore, out.Status)
	require.NotNil(t, out.Candidate)
	assert.Equal(t, "Atlas Copco Industriteknik AB", out.Candidate.Name)
	assert.Less(t, out.Score, 85)
}

func TestResolveAllVariantsFailedIsAPIFailure(t *testing.T) {
	boom := assert.AnError
	searcher := &fakeSearcher{errs: map[string]error{}}
	// Every variant of the name fails terminally.
	for _, v := range []string{"Einride", "Einride AB", "Einride Aktiebolag"} {
		searcher.errs[v] = boom
	}
	r := &Resolver{Searcher: searcher}

	var log bytes.Buffer
	out := r.Resolve(context.Background(), types.SourceRecord{ID: 5, Name: "Einride"}, &log)

	assert.Equal(t, types.StatusAPIFailure, out.Status)
	assert.Contains(t, log.String(), "warning")
}

func TestResolveOneVariantFailureDoesNotAbort(t *testing.T) {
	searcher := &fakeSearcher{
		errs: map[string]error{"Einride": assert.AnError},
		results: map[string][]types.Candidate{
			"Einride AB": {{Name: "Einride AB", City: "Stockholm"}},
		},
	}
	r := &Resolver{Searcher: searcher}

	out := r.Resolve(context.Background(), types.SourceRecord{ID: 6, Name: "Einride"}, &bytes.Buffer{})

	assert.Equal(t, types.StatusAccepted, out.Status)
	assert.Equal(t, "Einride AB", out.Variant)
}

func TestResolveTieKeepsFirstSeen(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]types.Candidate{
		"Polarbröd": {
			{Name: "Polarbröd AB", City: "Älvsbyn"},
			{Name: "Polarbröd AB", City: "Stockholm"},
		},
	}}
	r := &Resolver{Searcher: searcher}

	out := r.Resolve(context.Background(), types.SourceRecord{ID: 7, Name: "Polarbröd"}, &bytes.Buffer{})

	require.NotNil(t, out.Candidate)
	assert.Equal(t, "Älvsbyn", out.Candidate.City)
}

func TestRunPersistsAndSkips(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]types.Candidate{
		"Arlaplast": {{Name: "Arla Plast AB", City: "Borensberg"}},
	}}
	r := &Resolver{Searcher: searcher}
	store := newFakeStore(11)

	records := []types.SourceRecord{
		{ID: 10, Name: "Arlaplast"},
		{ID: 11, Name: "Redan Matchad AB"},
		{ID: 12, Name: "Okända Bolaget XYZ"},
	}

	var log bytes.Buffer
	summary, issues, err := r.Run(context.Background(), records, store, false, &log)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Matched)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.NoCandidates)
	assert.Equal(t, 3, summary.Total())

	require.Contains(t, store.saved, int64(10))
	assert.NotContains(t, store.saved, int64(11))

	require.Len(t, issues, 1)
	assert.Equal(t, int64(12), issues[0].ID)
	assert.Equal(t, "no_candidates", issues[0].Reason)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]types.Candidate{
		"Arlaplast": {{Name: "Arla Plast AB", City: "Borensberg"}},
	}}
	r := &Resolver{Searcher: searcher}
	store := newFakeStore()

	summary, _, err := r.Run(context.Background(),
		[]types.SourceRecord{{ID: 20, Name: "Arlaplast"}}, store, true, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Matched)
	assert.Empty(t, store.saved)
}

func TestRunLowScoreDoesNotStore(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]types.Candidate{
		"Svenska Kullagerfabriken": {{Name: "Atlas Copco Industriteknik AB"}},
	}}
	r := &Resolver{Searcher: searcher}
	store := newFakeStore()

	summary, issues, err := r.Run(context.Background(),
		[]types.SourceRecord{{ID: 30, Name: "Svenska Kullagerfabriken"}}, store, false, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.LowScore)
	assert.Empty(t, store.saved)
	require.Len(t, issues, 1)
	assert.Equal(t, "low_score", issues[0].Reason)
	assert.Equal(t, "Atlas Copco Industriteknik AB", issues[0].BestCandidate)
}
