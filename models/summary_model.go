package models

import "fmt"

// RetrievalSummary carries the per-domain policy counts for the final report.
type RetrievalSummary struct {
	SCATotal int
	SIATotal int
}

func NewRetrievalSummary(scaTotal int, siaTotal int) *RetrievalSummary {
	return &RetrievalSummary{
		SCATotal: scaTotal,
		SIATotal: siaTotal,
	}
}

func (r *RetrievalSummary) Total() int {
	return r.SCATotal + r.SIATotal
}

func (r *RetrievalSummary) String() string {
	return fmt.Sprintf("TOTAL: %d SCA + %d SIA = %d policies", r.SCATotal, r.SIATotal, r.Total())
}
