package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/utils/accounting"
)

// reportingService derives every financial report by replaying journal lines.
// There are no cached balances anywhere; each figure is recomputed from the
// immutable journal on demand.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func normalizeBranch(branchID string) string {
	if branchID == "" {
		return domain.BranchAll
	}
	return branchID
}

// TrialBalance returns per-account debit and credit totals as of a date.
// A correct ledger always closes: total debits equal total credits.
func (s *reportingService) TrialBalance(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, normalizeBranch(branchID), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}
	return rows, nil
}

// GeneralLedger reconstructs one account's movements over a range with a
// running balance. The beginning balance is the normal-side signed sum of all
// activity strictly before the range.
func (s *reportingService) GeneralLedger(ctx context.Context, accountID string, branchID string, from, to time.Time) (*domain.GeneralLedgerReport, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	branchID = normalizeBranch(branchID)

	debitBefore, creditBefore, err := s.reportingRepo.GetAccountActivityBefore(ctx, accountID, branchID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to compute beginning balance: %w", err)
	}
	beginning := debitBefore.Sub(creditBefore)
	if account.Category.NormalSide() == domain.Credit {
		beginning = creditBefore.Sub(debitBefore)
	}

	transactions, err := s.reportingRepo.GetLedgerRows(ctx, accountID, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger rows: %w", err)
	}

	report := &domain.GeneralLedgerReport{
		AccountID:        account.AccountID,
		AccountCode:      account.Code,
		AccountName:      account.Name,
		Category:         account.Category,
		BeginningBalance: beginning,
		Rows:             make([]domain.GeneralLedgerRow, 0, len(transactions)),
	}

	running := beginning
	for _, txn := range transactions {
		signed, err := accounting.CalculateSignedAmount(txn, account.Category)
		if err != nil {
			return nil, err
		}
		running = running.Add(signed)

		row := domain.GeneralLedgerRow{
			JournalID:      txn.JournalID,
			Date:           txn.JournalDate,
			Description:    txn.JournalDescription,
			BranchID:       txn.BranchID,
			RunningBalance: running,
		}
		if txn.TransactionType == domain.Debit {
			row.Debit = txn.Amount
		} else {
			row.Credit = txn.Amount
		}
		report.Rows = append(report.Rows, row)
	}
	report.EndingBalance = running
	return report, nil
}

// ProfitAndLoss sums revenue and expense activity over a period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, branchID string, from, to time.Time) (*domain.PAndLReport, error) {
	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, normalizeBranch(branchID), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute profit and loss: %w", err)
	}

	report := &domain.PAndLReport{
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, row := range revenue {
		report.TotalRevenue = report.TotalRevenue.Add(row.NetAmount)
	}
	for _, row := range expenses {
		report.TotalExpenses = report.TotalExpenses.Add(row.NetAmount)
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}

// BalanceSheet returns asset, liability and equity balances as of a date.
// Net income since the start of the fiscal year is injected as a synthetic
// "Current Year Earnings" equity line so the sheet closes:
// assets == liabilities + equity.
func (s *reportingService) BalanceSheet(ctx context.Context, branchID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	branchID = normalizeBranch(branchID)

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, branchID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance sheet: %w", err)
	}

	fiscalYearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	pnl, err := s.ProfitAndLoss(ctx, branchID, fiscalYearStart, asOf)
	if err != nil {
		return nil, err
	}
	if !pnl.NetIncome.IsZero() {
		equity = append(equity, domain.AccountAmount{
			Name:      "Current Year Earnings",
			NetAmount: pnl.NetIncome,
		})
	}

	report := &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, row := range assets {
		report.TotalAssets = report.TotalAssets.Add(row.NetAmount)
	}
	for _, row := range liabilities {
		report.TotalLiabilities = report.TotalLiabilities.Add(row.NetAmount)
	}
	for _, row := range equity {
		report.TotalEquity = report.TotalEquity.Add(row.NetAmount)
	}
	return report, nil
}

// CashFlow builds an indirect-method cash flow statement. Operating activity
// is the period's net income; investing and financing are classified from
// the counter-legs of journals that moved the cash account.
func (s *reportingService) CashFlow(ctx context.Context, branchID string, from, to time.Time) (*domain.CashFlowReport, error) {
	branchID = normalizeBranch(branchID)

	pnl, err := s.ProfitAndLoss(ctx, branchID, from, to)
	if err != nil {
		return nil, err
	}

	legs, err := s.reportingRepo.GetCashCounterLegs(ctx, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cash counter legs: %w", err)
	}

	investing := decimal.Zero
	financing := decimal.Zero
	for _, leg := range legs {
		// A credited counter-leg means cash came in; a debited one means
		// cash went out.
		value := leg.Amount
		if leg.TransactionType == domain.Debit {
			value = value.Neg()
		}
		switch leg.Category {
		case domain.Asset:
			investing = investing.Add(value)
		case domain.Liability, domain.Equity:
			financing = financing.Add(value)
		default:
			// Revenue and expense movements are already inside net income.
		}
	}

	debitBefore, creditBefore, err := s.reportingRepo.GetCashActivityBefore(ctx, branchID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to compute beginning cash balance: %w", err)
	}
	beginning := debitBefore.Sub(creditBefore)

	report := &domain.CashFlowReport{
		OperatingTotal:       pnl.NetIncome,
		InvestingTotal:       investing,
		FinancingTotal:       financing,
		BeginningCashBalance: beginning,
	}
	report.NetCashChange = report.OperatingTotal.Add(investing).Add(financing)
	report.EndingCashBalance = beginning.Add(report.NetCashChange)
	return report, nil
}
