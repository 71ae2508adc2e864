package repositories

import (
	"context"
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PayrollReader defines read operations for payroll data. Employee and
// salary component master data is owned by the HR module; this core only
// reads it.
type PayrollReader interface {
	// ListActiveEmployees retrieves every active employee.
	ListActiveEmployees(ctx context.Context) ([]domain.Employee, error)

	// ListSalaryComponents retrieves salary components for the given
	// employees, grouped by employee ID.
	ListSalaryComponents(ctx context.Context, employeeIDs []string) (map[string][]domain.SalaryComponent, error)

	// FindRunByPeriod retrieves the payroll run for a period, with items.
	FindRunByPeriod(ctx context.Context, period domain.Period) (*domain.PayrollRun, error)

	// FindRunByPeriodForUpdate retrieves the run and locks its row within the
	// given transaction.
	FindRunByPeriodForUpdate(ctx context.Context, tx pgx.Tx, period domain.Period) (*domain.PayrollRun, error)
}

// PayrollWriter defines write operations for payroll data.
type PayrollWriter interface {
	// SaveRunInTx persists a run and its items inside the given transaction.
	// The unique (year, month) index makes a second run for the same period
	// fail with apperrors.ErrDuplicate.
	SaveRunInTx(ctx context.Context, tx pgx.Tx, run domain.PayrollRun, items []domain.PayrollItem) error

	// MarkRunPaidInTx flips an unpaid run to PAID. Returns
	// apperrors.ErrConflict when the run is not unpaid.
	MarkRunPaidInTx(ctx context.Context, tx pgx.Tx, runID string, updatedAt time.Time) error
}

// PayrollRepositoryFacade combines all payroll-related repository interfaces.
type PayrollRepositoryFacade interface {
	PayrollReader
	PayrollWriter
}

// PayrollRepositoryWithTx extends PayrollRepositoryFacade with transaction capabilities.
type PayrollRepositoryWithTx interface {
	PayrollRepositoryFacade
	TransactionManager
}
