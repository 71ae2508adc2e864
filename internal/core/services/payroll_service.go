package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

var (
	// ErrPeriodAlreadyProcessed is returned when payroll has already been run
	// for the requested (year, month).
	ErrPeriodAlreadyProcessed = errors.New("payroll already processed for this period")

	// ErrNoActiveEmployees is returned when a run finds nobody to pay.
	ErrNoActiveEmployees = errors.New("no active employees to process")
)

// payrollService translates payroll events into ledger entries. Employee and
// salary component master data is read-only here; it belongs to HR.
type payrollService struct {
	BaseService
	payrollRepo portsrepo.PayrollRepositoryWithTx
	journalSvc  portssvc.JournalWriterSvc
	roles       portssvc.RoleResolverSvc
	// creditNetPay switches the accrual credit from gross earnings to net
	// pay. Gross is the default for compatibility with imported books.
	creditNetPay bool
}

// NewPayrollService creates a new payroll service.
func NewPayrollService(payrollRepo portsrepo.PayrollRepositoryWithTx, journalSvc portssvc.JournalWriterSvc, roles portssvc.RoleResolverSvc, creditNetPay bool) portssvc.PayrollSvcFacade {
	return &payrollService{
		payrollRepo:  payrollRepo,
		journalSvc:   journalSvc,
		roles:        roles,
		creditNetPay: creditNetPay,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// GetRunByPeriod retrieves the payroll run for a period, with its items.
func (s *payrollService) GetRunByPeriod(ctx context.Context, period domain.Period) (*domain.PayrollRun, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: invalid period %d-%d", apperrors.ErrValidation, period.Year, period.Month)
	}
	return s.payrollRepo.FindRunByPeriod(ctx, period)
}

// RunPayroll computes pay for every active employee and posts the accrual
// journal. The unique (year, month) index guarantees at most one run per
// period even under concurrent requests.
func (s *payrollService) RunPayroll(ctx context.Context, req dto.RunPayrollRequest) (*domain.PayrollRun, *domain.Journal, error) {
	period := domain.Period{Year: req.Year, Month: req.Month}
	if !period.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid period %d-%d", apperrors.ErrValidation, req.Year, req.Month)
	}

	employees, err := s.payrollRepo.ListActiveEmployees(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, nil, ErrNoActiveEmployees
	}

	employeeIDs := make([]string, len(employees))
	for i, emp := range employees {
		employeeIDs[i] = emp.EmployeeID
	}
	componentsByEmployee, err := s.payrollRepo.ListSalaryComponents(ctx, employeeIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list salary components: %w", err)
	}

	now := time.Now().UTC()
	runID := uuid.NewString()
	totalEarnings := decimal.Zero
	totalDeductions := decimal.Zero
	items := make([]domain.PayrollItem, 0, len(employees))
	for _, emp := range employees {
		earnings := decimal.Zero
		deductions := decimal.Zero
		for _, comp := range componentsByEmployee[emp.EmployeeID] {
			switch comp.Type {
			case domain.ComponentEarning:
				earnings = earnings.Add(comp.Amount)
			case domain.ComponentDeduction:
				deductions = deductions.Add(comp.Amount)
			}
		}
		items = append(items, domain.PayrollItem{
			ItemID:     uuid.NewString(),
			RunID:      runID,
			EmployeeID: emp.EmployeeID,
			Earnings:   earnings,
			Deductions: deductions,
			NetPay:     earnings.Sub(deductions),
		})
		totalEarnings = totalEarnings.Add(earnings)
		totalDeductions = totalDeductions.Add(deductions)
	}
	totalNetPay := totalEarnings.Sub(totalDeductions)
	if totalEarnings.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: no earnings configured for any active employee", apperrors.ErrValidation)
	}

	run := domain.PayrollRun{
		RunID:           runID,
		BranchID:        req.BranchID,
		Period:          period,
		Status:          domain.PayrollUnpaid,
		TotalEarnings:   totalEarnings,
		TotalDeductions: totalDeductions,
		TotalNetPay:     totalNetPay,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
		Items: items,
	}

	expenseAccount, err := s.roles.ResolveRole(ctx, domain.RoleSalaryExpense)
	if err != nil {
		return nil, nil, err
	}
	payableAccount, err := s.roles.ResolveRole(ctx, domain.RoleSalaryPayable)
	if err != nil {
		return nil, nil, err
	}

	accrualAmount := totalEarnings
	if s.creditNetPay {
		accrualAmount = totalNetPay
	}

	tx, err := s.payrollRepo.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.payrollRepo.Rollback(ctx, tx)
	}()

	if err := s.payrollRepo.SaveRunInTx(ctx, tx, run, items); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, fmt.Errorf("%w: %04d-%02d", ErrPeriodAlreadyProcessed, req.Year, req.Month)
		}
		s.LogError(ctx, err, "failed to save payroll run", slog.String("run_id", runID))
		return nil, nil, fmt.Errorf("failed to save payroll run: %w", err)
	}

	journal, err := s.journalSvc.PostJournalInTx(ctx, tx, dto.PostJournalRequest{
		BranchID:    req.BranchID,
		Date:        period.End(),
		Description: fmt.Sprintf("Payroll for %04d-%02d", req.Year, req.Month),
		Source:      domain.SourcePayroll,
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: expenseAccount.AccountID, Amount: accrualAmount, TransactionType: domain.Debit},
			{AccountID: payableAccount.AccountID, Amount: accrualAmount, TransactionType: domain.Credit},
		},
	})
	if err != nil {
		return nil, nil, err
	}
	if err := s.payrollRepo.Commit(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit payroll run: %w", err)
	}

	s.LogInfo(ctx, "payroll run posted",
		slog.String("run_id", runID),
		slog.String("journal_id", journal.JournalID),
		slog.Int("employees", len(items)),
		slog.String("total_net_pay", totalNetPay.String()))
	return &run, journal, nil
}

// SettlePayroll pays out an unpaid run: salary payable is debited and cash
// credited for the total net pay, and the run flips to PAID.
func (s *payrollService) SettlePayroll(ctx context.Context, req dto.SettlePayrollRequest) (*domain.Journal, error) {
	period := domain.Period{Year: req.Year, Month: req.Month}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: invalid period %d-%d", apperrors.ErrValidation, req.Year, req.Month)
	}

	payableAccount, err := s.roles.ResolveRole(ctx, domain.RoleSalaryPayable)
	if err != nil {
		return nil, err
	}
	cashAccount, err := s.roles.ResolveRole(ctx, domain.RoleCashReceipt)
	if err != nil {
		return nil, err
	}

	tx, err := s.payrollRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.payrollRepo.Rollback(ctx, tx)
	}()

	run, err := s.payrollRepo.FindRunByPeriodForUpdate(ctx, tx, period)
	if err != nil {
		return nil, err
	}
	if run.Status != domain.PayrollUnpaid {
		return nil, fmt.Errorf("%w: payroll for %04d-%02d is already %s", apperrors.ErrConflict, req.Year, req.Month, run.Status)
	}

	if err := s.payrollRepo.MarkRunPaidInTx(ctx, tx, run.RunID, time.Now().UTC()); err != nil {
		return nil, err
	}
	journal, err := s.journalSvc.PostJournalInTx(ctx, tx, dto.PostJournalRequest{
		BranchID:    run.BranchID,
		Date:        req.PaymentDate,
		Description: fmt.Sprintf("Payroll settlement for %04d-%02d", req.Year, req.Month),
		Source:      domain.SourcePayrollSettlement,
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: payableAccount.AccountID, Amount: run.TotalNetPay, TransactionType: domain.Debit},
			{AccountID: cashAccount.AccountID, Amount: run.TotalNetPay, TransactionType: domain.Credit},
		},
	})
	if err != nil {
		return nil, err
	}
	if err := s.payrollRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit payroll settlement: %w", err)
	}

	s.LogInfo(ctx, "payroll settled",
		slog.String("run_id", run.RunID),
		slog.String("journal_id", journal.JournalID),
		slog.String("amount", run.TotalNetPay.String()))
	return journal, nil
}
