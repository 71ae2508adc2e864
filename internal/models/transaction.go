package models

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

// Transaction represents a single journal line affecting one account.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	JournalID       string          `db:"journal_id"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType TransactionType `db:"transaction_type"`
	Notes           string          `db:"notes"`
	AuditFields

	// Joined journal columns, populated by read queries only.
	JournalDate        time.Time `db:"journal_date"`
	JournalDescription string    `db:"journal_description"`
	BranchID           string    `db:"branch_id"`
}
