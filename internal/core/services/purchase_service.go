package services

import (
	"context"
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

// purchaseService translates inventory purchase events into ledger entries.
type purchaseService struct {
	BaseService
	purchaseRepo portsrepo.PurchaseInvoiceRepositoryWithTx
	journalSvc   portssvc.JournalWriterSvc
	roles        portssvc.RoleResolverSvc
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseInvoiceRepositoryWithTx, journalSvc portssvc.JournalWriterSvc, roles portssvc.RoleResolverSvc) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		journalSvc:   journalSvc,
		roles:        roles,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// GetInvoiceByID retrieves a purchase invoice.
func (s *purchaseService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error) {
	return s.purchaseRepo.FindInvoiceByID(ctx, invoiceID)
}

// ReceivePurchase records a supplier invoice and posts the receipt journal:
// inventory is debited, and either cash or accounts payable is credited
// depending on the payment method. Cash purchases are marked paid at once.
func (s *purchaseService) ReceivePurchase(ctx context.Context, req dto.ReceivePurchaseRequest) (*domain.PurchaseInvoice, *domain.Journal, error) {
	if req.Total.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: purchase total must be positive", apperrors.ErrValidation)
	}

	inventoryAccount, err := s.roles.ResolveRole(ctx, domain.RoleInventoryAsset)
	if err != nil {
		return nil, nil, err
	}
	creditRole := domain.RoleAccountsPayable
	status := domain.InvoiceUnpaid
	if req.PaymentMethod == domain.PaymentCash {
		creditRole = domain.RoleCashReceipt
		status = domain.InvoicePaid
	}
	creditAccount, err := s.roles.ResolveRole(ctx, creditRole)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	invoice := domain.PurchaseInvoice{
		InvoiceID:     uuid.NewString(),
		BranchID:      req.BranchID,
		SupplierName:  req.SupplierName,
		InvoiceDate:   req.InvoiceDate,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.purchaseRepo.Rollback(ctx, tx)
	}()

	if err := s.purchaseRepo.SaveInvoiceInTx(ctx, tx, invoice); err != nil {
		s.LogError(ctx, err, "failed to save purchase invoice", slog.String("invoice_id", invoice.InvoiceID))
		return nil, nil, fmt.Errorf("failed to save purchase invoice: %w", err)
	}

	journal, err := s.journalSvc.PostJournalInTx(ctx, tx, dto.PostJournalRequest{
		BranchID:    req.BranchID,
		Date:        req.InvoiceDate,
		Description: fmt.Sprintf("Inventory purchase from %s", req.SupplierName),
		Source:      domain.SourcePurchase,
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: inventoryAccount.AccountID, Amount: req.Total, TransactionType: domain.Debit},
			{AccountID: creditAccount.AccountID, Amount: req.Total, TransactionType: domain.Credit},
		},
	})
	if err != nil {
		return nil, nil, err
	}
	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit purchase receipt: %w", err)
	}

	s.LogInfo(ctx, "purchase received",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("journal_id", journal.JournalID),
		slog.String("payment_method", string(req.PaymentMethod)))
	return &invoice, journal, nil
}

// SettlePayable pays off an unpaid credit purchase: accounts payable is
// debited and cash credited, and the invoice flips to PAID.
func (s *purchaseService) SettlePayable(ctx context.Context, invoiceID string, req dto.SettlePayableRequest) (*domain.Journal, error) {
	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.purchaseRepo.Rollback(ctx, tx)
	}()

	invoice, err := s.purchaseRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceUnpaid {
		return nil, fmt.Errorf("%w: invoice %s is already %s", apperrors.ErrConflict, invoiceID, invoice.Status)
	}
	if invoice.PaymentMethod != domain.PaymentCredit {
		return nil, fmt.Errorf("%w: invoice %s was not purchased on credit", apperrors.ErrValidation, invoiceID)
	}

	payableAccount, err := s.roles.ResolveRole(ctx, domain.RoleAccountsPayable)
	if err != nil {
		return nil, err
	}
	cashAccount, err := s.roles.ResolveRole(ctx, domain.RoleCashReceipt)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.MarkInvoicePaidInTx(ctx, tx, invoiceID, time.Now().UTC()); err != nil {
		return nil, err
	}
	journal, err := s.journalSvc.PostJournalInTx(ctx, tx, dto.PostJournalRequest{
		BranchID:    invoice.BranchID,
		Date:        req.PaymentDate,
		Description: fmt.Sprintf("Payable settlement for invoice %s (%s)", invoiceID, invoice.SupplierName),
		Source:      domain.SourcePayableSettlement,
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: payableAccount.AccountID, Amount: invoice.Total, TransactionType: domain.Debit},
			{AccountID: cashAccount.AccountID, Amount: invoice.Total, TransactionType: domain.Credit},
		},
	})
	if err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit payable settlement: %w", err)
	}

	s.LogInfo(ctx, "payable settled",
		slog.String("invoice_id", invoiceID),
		slog.String("journal_id", journal.JournalID),
		slog.String("amount", invoice.Total.String()))
	return journal, nil
}
