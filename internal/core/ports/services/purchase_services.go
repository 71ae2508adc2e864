package services

import (
	"context"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

// PurchaseReaderSvc defines read operations for purchase invoices
type PurchaseReaderSvc interface {
	// GetInvoiceByID retrieves a purchase invoice.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error)
}

// PurchaseWriterSvc defines write operations for purchase invoices
type PurchaseWriterSvc interface {
	// ReceivePurchase records a supplier invoice and posts the receipt
	// journal. Cash purchases are marked paid immediately.
	ReceivePurchase(ctx context.Context, req dto.ReceivePurchaseRequest) (*domain.PurchaseInvoice, *domain.Journal, error)

	// SettlePayable pays off an unpaid credit purchase and posts the
	// settlement journal.
	SettlePayable(ctx context.Context, invoiceID string, req dto.SettlePayableRequest) (*domain.Journal, error)
}

// PurchaseSvcFacade combines all purchase-related service interfaces
type PurchaseSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
}
