package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface. Every
// query aggregates over journal lines; no balance column exists anywhere.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountActivityBefore sums debit and credit totals of one account
// strictly before a date.
func (r *reportingRepository) GetAccountActivityBefore(ctx context.Context, accountID string, branchID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE 0 END), 0) AS total_debit,
			COALESCE(SUM(CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE 0 END), 0) AS total_credit
		FROM transactions t
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE t.account_id = $1
			AND ($2 = 'ALL' OR j.branch_id = $2)
			AND j.journal_date < $3
	`
	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, branchID, before).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying account activity before %s: %w", before.Format(time.DateOnly), err)
	}
	return debit, credit, nil
}

// GetLedgerRows retrieves one account's lines within a range in
// chronological order, with journal fields joined.
func (r *reportingRepository) GetLedgerRows(ctx context.Context, accountID string, branchID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.journal_id, t.account_id, t.amount, t.transaction_type, t.notes,
		       t.created_at, t.last_updated_at, j.journal_date, j.description, j.branch_id
		FROM transactions t
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE t.account_id = $1
			AND ($2 = 'ALL' OR j.branch_id = $2)
			AND j.journal_date BETWEEN $3 AND $4
		ORDER BY j.journal_date, t.created_at, t.transaction_id
	`
	rows, err := r.Pool.Query(ctx, query, accountID, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger rows: %w", err)
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// GetTrialBalanceData retrieves per-account debit/credit totals as of a date.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name AS account_name,
			a.category,
			SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE 0 END) AS total_debit,
			SUM(CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE 0 END) AS total_credit
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.journal_date <= $1
			AND ($2 = 'ALL' OR j.branch_id = $2)
		GROUP BY a.account_id, a.code, a.name, a.category
		ORDER BY a.code
	`
	rows, err := r.Pool.Query(ctx, query, asOf, branchID)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var category string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&category,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.Category = domain.AccountCategory(category)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetProfitAndLossData retrieves normal-side net amounts for revenue and
// expense accounts over a period.
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, branchID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.category,
			a.account_id,
			a.code,
			a.name,
			SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END) AS net
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.journal_date BETWEEN $1 AND $2
			AND ($3 = 'ALL' OR j.branch_id = $3)
			AND a.category IN ('REVENUE', 'EXPENSE')
		GROUP BY a.category, a.account_id, a.code, a.name
		ORDER BY a.code
	`
	rows, err := r.Pool.Query(ctx, query, from, to, branchID)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	revenue := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}
	for rows.Next() {
		var category, accountID, code, name string
		var net decimal.Decimal

		if err := rows.Scan(&category, &accountID, &code, &name, &net); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID: accountID,
			Code:      code,
			Name:      name,
		}
		// The query nets debit-positive; revenue grows on the credit side, so
		// its sign flips to read naturally.
		if category == string(domain.Revenue) {
			accountAmount.NetAmount = net.Neg()
			revenue = append(revenue, accountAmount)
		} else {
			accountAmount.NetAmount = net
			expenses = append(expenses, accountAmount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}
	return revenue, expenses, nil
}

// GetBalanceSheetData retrieves normal-side net balances for asset, liability
// and equity accounts as of a date.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, branchID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.category,
			a.account_id,
			a.code,
			a.name,
			SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END) AS net
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.journal_date <= $1
			AND ($2 = 'ALL' OR j.branch_id = $2)
			AND a.category IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.category, a.account_id, a.code, a.name
		ORDER BY a.code
	`
	rows, err := r.Pool.Query(ctx, query, asOf, branchID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	assets := []domain.AccountAmount{}
	liabilities := []domain.AccountAmount{}
	equity := []domain.AccountAmount{}
	for rows.Next() {
		var category, accountID, code, name string
		var net decimal.Decimal

		if err := rows.Scan(&category, &accountID, &code, &name, &net); err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID: accountID,
			Code:      code,
			Name:      name,
			NetAmount: net,
		}
		switch category {
		case string(domain.Asset):
			assets = append(assets, accountAmount)
		case string(domain.Liability):
			accountAmount.NetAmount = net.Neg()
			liabilities = append(liabilities, accountAmount)
		case string(domain.Equity):
			accountAmount.NetAmount = net.Neg()
			equity = append(equity, accountAmount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}
	return assets, liabilities, equity, nil
}

// GetCashCounterLegs retrieves the non-cash legs of every journal in the
// range that also moves a cash account.
func (r *reportingRepository) GetCashCounterLegs(ctx context.Context, branchID string, from, to time.Time) ([]domain.CashCounterLeg, error) {
	query := `
		SELECT t.journal_id, a.category, t.transaction_type, t.amount
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE a.payment_role <> 'CASH_RECEIPT'
			AND ($1 = 'ALL' OR j.branch_id = $1)
			AND j.journal_date BETWEEN $2 AND $3
			AND EXISTS (
				SELECT 1
				FROM transactions tc
				JOIN accounts ac ON tc.account_id = ac.account_id
				WHERE tc.journal_id = t.journal_id
					AND ac.payment_role = 'CASH_RECEIPT'
			)
		ORDER BY j.journal_date, t.created_at
	`
	rows, err := r.Pool.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying cash counter legs: %w", err)
	}
	defer rows.Close()

	legs := []domain.CashCounterLeg{}
	for rows.Next() {
		var leg domain.CashCounterLeg
		var category, txnType string
		if err := rows.Scan(&leg.JournalID, &category, &txnType, &leg.Amount); err != nil {
			return nil, fmt.Errorf("error scanning cash counter leg row: %w", err)
		}
		leg.Category = domain.AccountCategory(category)
		leg.TransactionType = domain.TransactionType(txnType)
		legs = append(legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash counter leg rows: %w", err)
	}
	return legs, nil
}

// GetCashActivityBefore sums debit and credit totals across cash accounts
// strictly before a date.
func (r *reportingRepository) GetCashActivityBefore(ctx context.Context, branchID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE 0 END), 0) AS total_debit,
			COALESCE(SUM(CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE 0 END), 0) AS total_credit
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE a.payment_role = 'CASH_RECEIPT'
			AND ($1 = 'ALL' OR j.branch_id = $1)
			AND j.journal_date < $2
	`
	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, branchID, before).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying cash activity before %s: %w", before.Format(time.DateOnly), err)
	}
	return debit, credit, nil
}
