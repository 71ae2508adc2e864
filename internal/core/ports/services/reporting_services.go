package services

import (
	"context"
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// Every figure is derived from the journal alone; nothing is read from
// stored balances.
type ReportingService interface {
	// TrialBalance generates a trial balance as of a specific date.
	TrialBalance(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GeneralLedger reconstructs one account's activity with running balance.
	GeneralLedger(ctx context.Context, accountID string, branchID string, from, to time.Time) (*domain.GeneralLedgerReport, error)

	// ProfitAndLoss generates a profit and loss report for a specific period.
	ProfitAndLoss(ctx context.Context, branchID string, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet as of a specific date.
	BalanceSheet(ctx context.Context, branchID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// CashFlow generates a cash flow statement for a specific period.
	CashFlow(ctx context.Context, branchID string, from, to time.Time) (*domain.CashFlowReport, error)
}
