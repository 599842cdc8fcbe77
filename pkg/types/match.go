package types

// SourceRecord is one company row from the internal database. Owned by
// the caller; the matching engine never mutates it.
type SourceRecord struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Optional hints carried along for triage output.
	Website string `json:"website,omitempty" yaml:"website,omitempty"`
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Candidate is one company record returned by the register for a search
// query, mapped from the API's Swedish field names at the client
// boundary. All fields except Name are pass-through for persistence and
// triage.
type Candidate struct {
	Name       string `json:"name" yaml:"name"`
	OrgNr      string `json:"org_nr" yaml:"org_nr"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	Street     string `json:"street,omitempty" yaml:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	Industry   string `json:"industry,omitempty" yaml:"industry,omitempty"`
	SizeClass  string `json:"size_class,omitempty" yaml:"size_class,omitempty"`
	LegalForm  string `json:"legal_form,omitempty" yaml:"legal_form,omitempty"`
	Status     string `json:"status,omitempty" yaml:"status,omitempty"`
	Phone      string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// OutcomeStatus classifies the result of resolving one source record.
type OutcomeStatus string

const (
	// StatusAccepted means the best candidate met the threshold.
	StatusAccepted OutcomeStatus = "accepted"

	// StatusLowScore means candidates were found but the best one fell
	// below the threshold. The candidate is surfaced for review rather
	// than discarded.
	StatusLowScore OutcomeStatus = "low_score"

	// StatusNoCandidates means at least one variant search completed
	// and the register returned nothing for any of them.
	StatusNoCandidates OutcomeStatus = "no_candidates"

	// StatusAPIFailure means every variant search failed terminally, so
	// nothing is known about the register's contents for this record.
	StatusAPIFailure OutcomeStatus = "api_error"
)

// Outcome is the externally visible result of resolving one source
// record. Candidate is set for accepted and low_score outcomes.
type Outcome struct {
	Status    OutcomeStatus `json:"status" yaml:"status"`
	Candidate *Candidate    `json:"candidate,omitempty" yaml:"candidate,omitempty"`
	Score     int           `json:"score,omitempty" yaml:"score,omitempty"`

	// Variant is the search string that produced the best candidate.
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// Accepted reports whether the outcome is a stored match.
func (o Outcome) Accepted() bool {
	return o.Status == StatusAccepted
}
