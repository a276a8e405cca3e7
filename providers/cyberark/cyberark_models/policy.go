package cyberarkmodels

// SCAPolicyList is the envelope returned by the SCA policy listing. The
// service reports its own total alongside the page of hits; TotalCount
// prefers the reported figure and falls back to counting the page.
type SCAPolicyList struct {
	Hits  []SCAPolicy `json:"hits"`
	Total int         `json:"total"`
}

func (l *SCAPolicyList) TotalCount() int {
	if l == nil {
		return 0
	}
	if l.Total > 0 {
		return l.Total
	}
	return len(l.Hits)
}

// SCAPolicy carries the display fields of a Secure Cloud Access policy.
// Fields outside the display set are ignored on decode.
type SCAPolicy struct {
	PolicyID    string `json:"policyId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      int    `json:"status"`
}

const scaStatusActive = 1

// StatusLabel maps the numeric SCA status to its display form.
func (p SCAPolicy) StatusLabel() string {
	if p.Status == scaStatusActive {
		return "Active"
	}
	return "Inactive"
}

// SIAPolicyList is the envelope returned by the SIA policy listing on the
// uap host.
type SIAPolicyList struct {
	Results []SIAPolicy `json:"results"`
	Total   int         `json:"total"`
}

func (l *SIAPolicyList) TotalCount() int {
	if l == nil {
		return 0
	}
	if l.Total > 0 {
		return l.Total
	}
	return len(l.Results)
}

// SIAPolicy wraps the metadata block that carries the display fields of a
// Secure Infrastructure Access policy.
type SIAPolicy struct {
	Metadata SIAMetadata `json:"metadata"`
}

type SIAMetadata struct {
	PolicyID    string    `json:"policyId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      SIAStatus `json:"status"`
}

type SIAStatus struct {
	Status string `json:"status"`
}
