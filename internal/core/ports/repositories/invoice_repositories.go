package repositories

import (
	"context"
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SaleInvoiceRepositoryFacade defines storage operations for clinic invoices.
type SaleInvoiceRepositoryFacade interface {
	// SaveInvoice persists a new unpaid invoice and its lines.
	SaveInvoice(ctx context.Context, invoice domain.SaleInvoice) error

	// FindInvoiceByID retrieves an invoice with its lines.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.SaleInvoice, error)

	// FindInvoiceByIDForUpdate retrieves an invoice with its lines and locks
	// the invoice row within the given transaction.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.SaleInvoice, error)

	// MarkInvoicePaidInTx flips an unpaid invoice to PAID. Returns
	// apperrors.ErrConflict when the invoice is not unpaid.
	MarkInvoicePaidInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedAt time.Time) error
}

// SaleInvoiceRepositoryWithTx extends the facade with transaction capabilities.
type SaleInvoiceRepositoryWithTx interface {
	SaleInvoiceRepositoryFacade
	TransactionManager
}

// PurchaseInvoiceRepositoryFacade defines storage operations for supplier invoices.
type PurchaseInvoiceRepositoryFacade interface {
	// SaveInvoiceInTx persists a new purchase invoice inside the given transaction.
	SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.PurchaseInvoice) error

	// FindInvoiceByID retrieves a purchase invoice.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error)

	// FindInvoiceByIDForUpdate retrieves a purchase invoice and locks its row
	// within the given transaction.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.PurchaseInvoice, error)

	// MarkInvoicePaidInTx flips an unpaid invoice to PAID. Returns
	// apperrors.ErrConflict when the invoice is not unpaid.
	MarkInvoicePaidInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedAt time.Time) error
}

// PurchaseInvoiceRepositoryWithTx extends the facade with transaction capabilities.
type PurchaseInvoiceRepositoryWithTx interface {
	PurchaseInvoiceRepositoryFacade
	TransactionManager
}
