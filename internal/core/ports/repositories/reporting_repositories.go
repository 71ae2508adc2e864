package repositories

import (
	"context"
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-only scans the reporting engine is
// built on. Every method aggregates over journal lines joined to journals
// and accounts; no cached balances exist anywhere.
type ReportingRepository interface {
	// GetAccountActivityBefore sums the debit and credit totals of one
	// account strictly before a date.
	GetAccountActivityBefore(ctx context.Context, accountID string, branchID string, before time.Time) (debit, credit decimal.Decimal, err error)

	// GetLedgerRows retrieves the lines of one account within a date range
	// in chronological order, with journal fields joined.
	GetLedgerRows(ctx context.Context, accountID string, branchID string, from, to time.Time) ([]domain.Transaction, error)

	// GetTrialBalanceData retrieves per-account debit/credit totals as of a date.
	GetTrialBalanceData(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves normal-side net amounts for revenue and
	// expense accounts over a period.
	GetProfitAndLossData(ctx context.Context, branchID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error)

	// GetBalanceSheetData retrieves normal-side net balances for asset,
	// liability and equity accounts as of a date.
	GetBalanceSheetData(ctx context.Context, branchID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error)

	// GetCashCounterLegs retrieves the non-cash legs of every journal in the
	// range that also moves a cash account (payment role CASH_RECEIPT).
	GetCashCounterLegs(ctx context.Context, branchID string, from, to time.Time) ([]domain.CashCounterLeg, error)

	// GetCashActivityBefore sums debit and credit totals across all cash
	// accounts strictly before a date.
	GetCashActivityBefore(ctx context.Context, branchID string, before time.Time) (debit, credit decimal.Decimal, err error)
}
