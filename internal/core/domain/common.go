package domain

import "time"

// BranchAll is the branch filter value that selects every branch.
const BranchAll = "ALL"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Period identifies one accounting month, used by the depreciation and
// payroll jobs as their idempotency key.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Key returns the period as a sortable integer (e.g. 202509).
func (p Period) Key() int {
	return p.Year*100 + p.Month
}

// End returns the last day of the period at midnight UTC.
func (p Period) End() time.Time {
	return time.Date(p.Year, time.Month(p.Month)+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// Previous returns the preceding month.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Valid reports whether the period describes a real month.
func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}
