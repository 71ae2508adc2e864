package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents a single, balanced financial event composed of multiple
// transactions. Rows are insert-only.
type Journal struct {
	JournalID   string          `db:"journal_id"`
	BranchID    string          `db:"branch_id"`
	JournalDate time.Time       `db:"journal_date"`
	Description string          `db:"description"`
	Source      string          `db:"source"`
	Amount      decimal.Decimal `db:"amount"`
	AuditFields
}
