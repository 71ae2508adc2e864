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

const purchaseColumns = `invoice_id, branch_id, supplier_name, invoice_date, total, payment_method, status, created_at, last_updated_at`

type PgxPurchaseInvoiceRepository struct {
	BaseRepository
}

// newPgxPurchaseInvoiceRepository creates a new repository for supplier invoices.
func newPgxPurchaseInvoiceRepository(pool *pgxpool.Pool) portsrepo.PurchaseInvoiceRepositoryWithTx {
	return &PgxPurchaseInvoiceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseInvoiceRepositoryWithTx = (*PgxPurchaseInvoiceRepository)(nil)

func scanPurchaseInvoice(row interface{ Scan(dest ...any) error }) (models.PurchaseInvoice, error) {
	var m models.PurchaseInvoice
	err := row.Scan(
		&m.InvoiceID,
		&m.BranchID,
		&m.SupplierName,
		&m.InvoiceDate,
		&m.Total,
		&m.PaymentMethod,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveInvoiceInTx persists a new purchase invoice inside the caller's
// transaction.
func (r *PgxPurchaseInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.PurchaseInvoice) error {
	m := mapping.ToModelPurchaseInvoice(invoice)

	query := `
		INSERT INTO purchase_invoices (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.BranchID,
		m.SupplierName,
		m.InvoiceDate,
		m.Total,
		m.PaymentMethod,
		m.Status,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: purchase invoice %s", apperrors.ErrDuplicate, m.InvoiceID)
		}
		return fmt.Errorf("failed to save purchase invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves a purchase invoice by its ID.
func (r *PgxPurchaseInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchase_invoices WHERE invoice_id = $1;`

	m, err := scanPurchaseInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase invoice %s: %w", invoiceID, err)
	}
	d := mapping.ToDomainPurchaseInvoice(m)
	return &d, nil
}

// FindInvoiceByIDForUpdate retrieves a purchase invoice and locks its row.
func (r *PgxPurchaseInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.PurchaseInvoice, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchase_invoices WHERE invoice_id = $1 FOR UPDATE;`

	m, err := scanPurchaseInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase invoice %s for update: %w", invoiceID, err)
	}
	d := mapping.ToDomainPurchaseInvoice(m)
	return &d, nil
}

// MarkInvoicePaidInTx flips an unpaid invoice to PAID.
func (r *PgxPurchaseInvoiceRepository) MarkInvoicePaidInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedAt time.Time) error {
	query := `
		UPDATE purchase_invoices
		SET status = 'PAID', last_updated_at = $2
		WHERE invoice_id = $1 AND status = 'UNPAID';
	`
	cmdTag, err := tx.Exec(ctx, query, invoiceID, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to mark purchase invoice %s paid: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase invoice %s is not unpaid", apperrors.ErrConflict, invoiceID)
	}
	return nil
}
