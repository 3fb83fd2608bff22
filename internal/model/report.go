package model

import "time"

// PageReport summarizes one page scan: the claims detected and how their
// verification turned out.
type PageReport struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
	Segments  int       `json:"segments"`
	Claims    []*Claim  `json:"claims"`
}

// CountByStatus returns how many claims ended in the given status
func (r *PageReport) CountByStatus(status VerificationStatus) int {
	count := 0
	for _, claim := range r.Claims {
		if claim.Status == status {
			count++
		}
	}
	return count
}

// CountOffline returns how many claims fell back to the offline verdict
func (r *PageReport) CountOffline() int {
	count := 0
	for _, claim := range r.Claims {
		if claim.Result != nil && claim.Result.Offline {
			count++
		}
	}
	return count
}
