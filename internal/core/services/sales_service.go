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

// ErrAmountMismatch is returned when a settlement amount does not equal the
// invoice total. Partial payments are not supported.
var ErrAmountMismatch = errors.New("payment amount does not match invoice total")

// salesService translates clinic invoice settlement into ledger entries.
type salesService struct {
	BaseService
	saleRepo   portsrepo.SaleInvoiceRepositoryWithTx
	journalSvc portssvc.JournalWriterSvc
	roles      portssvc.RoleResolverSvc
}

// NewSalesService creates a new sales service.
func NewSalesService(saleRepo portsrepo.SaleInvoiceRepositoryWithTx, journalSvc portssvc.JournalWriterSvc, roles portssvc.RoleResolverSvc) portssvc.SalesSvcFacade {
	return &salesService{
		saleRepo:   saleRepo,
		journalSvc: journalSvc,
		roles:      roles,
	}
}

var _ portssvc.SalesSvcFacade = (*salesService)(nil)

// GetInvoiceByID retrieves an invoice with its lines.
func (s *salesService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.SaleInvoice, error) {
	return s.saleRepo.FindInvoiceByID(ctx, invoiceID)
}

// CreateInvoice persists a new unpaid invoice. Revenue is recognized at
// settlement, so no journal is posted here.
func (s *salesService) CreateInvoice(ctx context.Context, req dto.CreateSaleInvoiceRequest) (*domain.SaleInvoice, error) {
	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	total := decimal.Zero
	lines := make([]domain.SaleInvoiceLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line amount must be positive", apperrors.ErrValidation)
		}
		lines[i] = domain.SaleInvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: lineReq.Description,
			Amount:      lineReq.Amount,
			DrugID:      lineReq.DrugID,
		}
		total = total.Add(lineReq.Amount)
	}

	invoice := domain.SaleInvoice{
		InvoiceID:   invoiceID,
		BranchID:    req.BranchID,
		InvoiceDate: req.InvoiceDate,
		Total:       total,
		Status:      domain.InvoiceUnpaid,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.saleRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "failed to save sale invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	return &invoice, nil
}

// SettleInvoice marks an unpaid invoice paid and posts the sale journal in
// the same transaction: cash is debited for the full amount, and revenue is
// credited split between drug lines and service lines.
func (s *salesService) SettleInvoice(ctx context.Context, invoiceID string, req dto.SettleSaleInvoiceRequest) (*domain.Journal, error) {
	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.saleRepo.Rollback(ctx, tx)
	}()

	invoice, err := s.saleRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceUnpaid {
		return nil, fmt.Errorf("%w: invoice %s is already %s", apperrors.ErrConflict, invoiceID, invoice.Status)
	}
	if !req.AmountPaid.Equal(invoice.Total) {
		return nil, fmt.Errorf("%w: paid %s, invoice total %s", ErrAmountMismatch, req.AmountPaid.String(), invoice.Total.String())
	}

	drugTotal := decimal.Zero
	serviceTotal := decimal.Zero
	for _, line := range invoice.Lines {
		if line.DrugID != nil {
			drugTotal = drugTotal.Add(line.Amount)
		} else {
			serviceTotal = serviceTotal.Add(line.Amount)
		}
	}

	cashAccount, err := s.roles.ResolveRole(ctx, domain.RoleCashReceipt)
	if err != nil {
		return nil, err
	}

	journalReq := dto.PostJournalRequest{
		BranchID:    invoice.BranchID,
		Date:        req.PaymentDate,
		Description: fmt.Sprintf("Sale settlement for invoice %s", invoiceID),
		Source:      domain.SourceSale,
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: cashAccount.AccountID, Amount: invoice.Total, TransactionType: domain.Debit},
		},
	}
	if serviceTotal.GreaterThan(decimal.Zero) {
		serviceAccount, err := s.roles.ResolveRole(ctx, domain.RoleServiceRevenue)
		if err != nil {
			return nil, err
		}
		journalReq.Transactions = append(journalReq.Transactions, dto.CreateTransactionRequest{
			AccountID:       serviceAccount.AccountID,
			Amount:          serviceTotal,
			TransactionType: domain.Credit,
		})
	}
	if drugTotal.GreaterThan(decimal.Zero) {
		drugAccount, err := s.roles.ResolveRole(ctx, domain.RoleDrugRevenue)
		if err != nil {
			return nil, err
		}
		journalReq.Transactions = append(journalReq.Transactions, dto.CreateTransactionRequest{
			AccountID:       drugAccount.AccountID,
			Amount:          drugTotal,
			TransactionType: domain.Credit,
		})
	}

	if err := s.saleRepo.MarkInvoicePaidInTx(ctx, tx, invoiceID, time.Now().UTC()); err != nil {
		return nil, err
	}
	journal, err := s.journalSvc.PostJournalInTx(ctx, tx, journalReq)
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit sale settlement: %w", err)
	}

	s.LogInfo(ctx, "sale invoice settled",
		slog.String("invoice_id", invoiceID),
		slog.String("journal_id", journal.JournalID),
		slog.String("amount", invoice.Total.String()))
	return journal, nil
}
