package dto

import "time"

// ReportRangeParams is the shared query contract for period reports:
// a branch filter ("ALL" for every branch) and a date range.
type ReportRangeParams struct {
	BranchID  string    `form:"branchID,default=ALL"`
	StartDate time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02"`
}

// ReportAsOfParams is the query contract for point-in-time reports.
type ReportAsOfParams struct {
	BranchID string    `form:"branchID,default=ALL"`
	AsOf     time.Time `form:"asOf" time_format:"2006-01-02"`
}

// GeneralLedgerParams is the query contract for the general ledger report.
type GeneralLedgerParams struct {
	AccountID string    `form:"accountID" binding:"required"`
	BranchID  string    `form:"branchID,default=ALL"`
	StartDate time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02"`
}
