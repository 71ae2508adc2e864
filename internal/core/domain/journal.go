package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalSource tags the business event that produced a journal.
type JournalSource string

const (
	SourceManual            JournalSource = "MANUAL"
	SourceSale              JournalSource = "SALE"
	SourcePurchase          JournalSource = "PURCHASE"
	SourcePayableSettlement JournalSource = "PAYABLE_SETTLEMENT"
	SourceAssetAcquisition  JournalSource = "ASSET_ACQUISITION"
	SourceAssetDisposal     JournalSource = "ASSET_DISPOSAL"
	SourceDepreciation      JournalSource = "DEPRECIATION"
	SourcePayroll           JournalSource = "PAYROLL"
	SourcePayrollSettlement JournalSource = "PAYROLL_SETTLEMENT"
)

// Journal represents a single, balanced, branch-scoped financial event
// composed of multiple transactions. Journals are immutable once posted;
// corrections are made via new entries.
type Journal struct {
	JournalID   string          `json:"journalID"`   // Primary Key (UUID)
	BranchID    string          `json:"branchID"`    // Branch the event belongs to (Not Null)
	JournalDate time.Time       `json:"journalDate"` // Date the event occurred
	Description string          `json:"description"`
	Source      JournalSource   `json:"source"` // Producing event type
	Amount      decimal.Decimal `json:"amount"` // Debit-side total, the economic value of the event
	AuditFields

	Transactions []Transaction `json:"transactions,omitempty"` // Loaded on demand
}
