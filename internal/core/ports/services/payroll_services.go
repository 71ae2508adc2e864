package services

import (
	"context"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

// PayrollReaderSvc defines read operations for payroll runs
type PayrollReaderSvc interface {
	// GetRunByPeriod retrieves the payroll run for a (year, month), if any.
	GetRunByPeriod(ctx context.Context, period domain.Period) (*domain.PayrollRun, error)
}

// PayrollWriterSvc defines write operations for payroll runs
type PayrollWriterSvc interface {
	// RunPayroll computes pay for all active employees and posts the payroll
	// accrual journal. At most one run may exist per (year, month).
	RunPayroll(ctx context.Context, req dto.RunPayrollRequest) (*domain.PayrollRun, *domain.Journal, error)

	// SettlePayroll pays out an unpaid run and posts the settlement journal.
	SettlePayroll(ctx context.Context, req dto.SettlePayrollRequest) (*domain.Journal, error)
}

// PayrollSvcFacade combines all payroll-related service interfaces
type PayrollSvcFacade interface {
	PayrollReaderSvc
	PayrollWriterSvc
}
