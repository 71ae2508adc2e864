package models

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// Account represents a chart-of-accounts row.
// payment_role carries a partial unique index so a non-NONE role can be held
// by at most one account.
type Account struct {
	AccountID   string          `db:"account_id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	Category    AccountCategory `db:"category"`
	PaymentRole string          `db:"payment_role"`
	Description string          `db:"description"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
