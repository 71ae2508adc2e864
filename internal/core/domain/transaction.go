package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction represents a single line item within a Journal, affecting one account.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`   // Primary Key (UUID)
	JournalID       string          `json:"journalID"`       // FK -> Journal.journalID (Not Null)
	AccountID       string          `json:"accountID"`       // FK -> Account.accountID (Not Null)
	Amount          decimal.Decimal `json:"amount"`          // Positive value; precise decimal type
	TransactionType TransactionType `json:"transactionType"` // DEBIT or CREDIT (Not Null)
	Notes           string          `json:"notes"`           // Nullable
	AuditFields

	// Denormalized journal fields, populated on reads that join the journal.
	JournalDate        time.Time `json:"journalDate,omitempty"`
	JournalDescription string    `json:"journalDescription,omitempty"`
	BranchID           string    `json:"branchID,omitempty"`
}
