package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	"github.com/medifin/clinic_ledger_app/internal/models"
	"github.com/medifin/clinic_ledger_app/internal/utils/mapping"
)

const payrollRunColumns = `run_id, branch_id, year, month, status, total_earnings, total_deductions, total_net_pay, created_at, last_updated_at`

type PgxPayrollRepository struct {
	BaseRepository
}

// newPgxPayrollRepository creates a new repository for payroll data.
func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryWithTx {
	return &PgxPayrollRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PayrollRepositoryWithTx = (*PgxPayrollRepository)(nil)

// ListActiveEmployees retrieves every active employee.
func (r *PgxPayrollRepository) ListActiveEmployees(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT employee_id, branch_id, name, is_active, created_at, last_updated_at
		FROM employees
		WHERE is_active = TRUE
		ORDER BY employee_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		var m models.Employee
		if err := rows.Scan(&m.EmployeeID, &m.BranchID, &m.Name, &m.IsActive, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, mapping.ToDomainEmployee(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", rows.Err())
	}
	return employees, nil
}

// ListSalaryComponents retrieves components for the given employees, grouped
// by employee ID.
func (r *PgxPayrollRepository) ListSalaryComponents(ctx context.Context, employeeIDs []string) (map[string][]domain.SalaryComponent, error) {
	if len(employeeIDs) == 0 {
		return map[string][]domain.SalaryComponent{}, nil
	}

	query := `
		SELECT component_id, employee_id, name, component_type, amount, created_at, last_updated_at
		FROM salary_components
		WHERE employee_id = ANY($1)
		ORDER BY employee_id, component_id;
	`
	rows, err := r.Pool.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary components: %w", err)
	}
	defer rows.Close()

	componentsByEmployee := make(map[string][]domain.SalaryComponent)
	for rows.Next() {
		var m models.SalaryComponent
		if err := rows.Scan(&m.ComponentID, &m.EmployeeID, &m.Name, &m.Type, &m.Amount, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary component row: %w", err)
		}
		componentsByEmployee[m.EmployeeID] = append(componentsByEmployee[m.EmployeeID], mapping.ToDomainSalaryComponent(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating salary component rows: %w", rows.Err())
	}
	return componentsByEmployee, nil
}

func (r *PgxPayrollRepository) findRun(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, period domain.Period, lock bool) (*domain.PayrollRun, error) {
	query := `SELECT ` + payrollRunColumns + ` FROM payroll_runs WHERE year = $1 AND month = $2`
	if lock {
		query += ` FOR UPDATE`
	}
	query += `;`

	var m models.PayrollRun
	err := q.QueryRow(ctx, query, period.Year, period.Month).Scan(
		&m.RunID,
		&m.BranchID,
		&m.Year,
		&m.Month,
		&m.Status,
		&m.TotalEarnings,
		&m.TotalDeductions,
		&m.TotalNetPay,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payroll run for %04d-%02d: %w", period.Year, period.Month, err)
	}

	itemQuery := `
		SELECT item_id, run_id, employee_id, earnings, deductions, net_pay
		FROM payroll_items
		WHERE run_id = $1
		ORDER BY employee_id;
	`
	rows, err := q.Query(ctx, itemQuery, m.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll items for run %s: %w", m.RunID, err)
	}
	defer rows.Close()

	run := mapping.ToDomainPayrollRun(m)
	for rows.Next() {
		var mi models.PayrollItem
		if err := rows.Scan(&mi.ItemID, &mi.RunID, &mi.EmployeeID, &mi.Earnings, &mi.Deductions, &mi.NetPay); err != nil {
			return nil, fmt.Errorf("failed to scan payroll item row: %w", err)
		}
		run.Items = append(run.Items, mapping.ToDomainPayrollItem(mi))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payroll item rows: %w", rows.Err())
	}
	return &run, nil
}

// FindRunByPeriod retrieves the run for a period, with its items.
func (r *PgxPayrollRepository) FindRunByPeriod(ctx context.Context, period domain.Period) (*domain.PayrollRun, error) {
	return r.findRun(ctx, r.Pool, period, false)
}

// FindRunByPeriodForUpdate retrieves the run and locks its row.
func (r *PgxPayrollRepository) FindRunByPeriodForUpdate(ctx context.Context, tx pgx.Tx, period domain.Period) (*domain.PayrollRun, error) {
	return r.findRun(ctx, tx, period, true)
}

// SaveRunInTx persists a run and its items. The unique (year, month) index
// surfaces a concurrent run for the same period as ErrDuplicate.
func (r *PgxPayrollRepository) SaveRunInTx(ctx context.Context, tx pgx.Tx, run domain.PayrollRun, items []domain.PayrollItem) error {
	m := mapping.ToModelPayrollRun(run)

	runQuery := `
		INSERT INTO payroll_runs (` + payrollRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, runQuery,
		m.RunID,
		m.BranchID,
		m.Year,
		m.Month,
		m.Status,
		m.TotalEarnings,
		m.TotalDeductions,
		m.TotalNetPay,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payroll run for %04d-%02d", apperrors.ErrDuplicate, m.Year, m.Month)
		}
		return fmt.Errorf("failed to save payroll run %s: %w", m.RunID, err)
	}

	itemQuery := `
		INSERT INTO payroll_items (item_id, run_id, employee_id, earnings, deductions, net_pay)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		mi := mapping.ToModelPayrollItem(item)
		batch.Queue(itemQuery, mi.ItemID, mi.RunID, mi.EmployeeID, mi.Earnings, mi.Deductions, mi.NetPay)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert payroll item %d for run %s: %w", i, m.RunID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close payroll item batch: %w", err)
	}
	return batchErr
}

// MarkRunPaidInTx flips an unpaid run to PAID.
func (r *PgxPayrollRepository) MarkRunPaidInTx(ctx context.Context, tx pgx.Tx, runID string, updatedAt time.Time) error {
	query := `
		UPDATE payroll_runs
		SET status = 'PAID', last_updated_at = $2
		WHERE run_id = $1 AND status = 'UNPAID';
	`
	cmdTag, err := tx.Exec(ctx, query, runID, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to mark payroll run %s paid: %w", runID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payroll run %s is not unpaid", apperrors.ErrConflict, runID)
	}
	return nil
}
