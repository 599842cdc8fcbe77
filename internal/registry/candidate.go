// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"encoding/json"
	"strings"

	"github.com/praktikjakt/scb-match/pkg/types"
)

// scbCompany mirrors one company object in the register's response. The
// API uses Swedish field names; everything downstream works on the typed
// Candidate produced by toCandidate.
type scbCompany struct {
	Name          string `json:"Företagsnamn"`
	OrgNr         string `json:"OrgNr"`
	PeOrgNr       string `json:"PeOrgNr"`
	Street        string `json:"Gatuadress"`
	PostalCode    string `json:"PostNr"`
	City          string `json:"PostOrt"`
	CityAlt       string `json:"Postort"`
	Industry      string `json:"Bransch_1"`
	SizeClass     string `json:"Storleksklass"`
	LegalForm     string `json:"Juridisk form"`
	CompanyStatus string `json:"Företagsstatus"`
	Phone         string `json:"Telefon"`
}

func (c scbCompany) toCandidate() types.Candidate {
	orgNr := c.OrgNr
	if orgNr == "" {
		// PeOrgNr carries a 12-digit form with a "16" century prefix.
		orgNr = strings.TrimPrefix(c.PeOrgNr, "16")
	}
	city := c.City
	if city == "" {
		city = c.CityAlt
	}
	return types.Candidate{
		Name:       strings.TrimSpace(c.Name),
		OrgNr:      orgNr,
		City:       city,
		Street:     c.Street,
		PostalCode: c.PostalCode,
		Industry:   c.Industry,
		SizeClass:  c.SizeClass,
		LegalForm:  c.LegalForm,
		Status:     c.CompanyStatus,
		Phone:      c.Phone,
	}
}

// decodeCandidates parses a register response body. The API returns a
// bare JSON list; a {"value": [...]} wrapper is accepted as a fallback
// in case the format changes.
func decodeCandidates(body []byte) ([]types.Candidate, error) {
	var companies []scbCompany
	if err := json.Unmarshal(body, &companies); err != nil {
		var wrapped struct {
			Value []scbCompany `json:"value"`
		}
		if err2 := json.Unmarshal(body, &wrapped); err2 != nil {
			return nil, err
		}
		companies = wrapped.Value
	}

	candidates := make([]types.Candidate, 0, len(companies))
	for _, c := range companies {
		candidates = append(candidates, c.toCandidate())
	}
	return candidates, nil
}
