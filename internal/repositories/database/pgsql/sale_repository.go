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

type PgxSaleInvoiceRepository struct {
	BaseRepository
}

// newPgxSaleInvoiceRepository creates a new repository for clinic invoices.
func newPgxSaleInvoiceRepository(pool *pgxpool.Pool) portsrepo.SaleInvoiceRepositoryWithTx {
	return &PgxSaleInvoiceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleInvoiceRepositoryWithTx = (*PgxSaleInvoiceRepository)(nil)

// SaveInvoice persists a new invoice and its lines in one transaction.
func (r *PgxSaleInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.SaleInvoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	m := mapping.ToModelSaleInvoice(invoice)
	invoiceQuery := `
		INSERT INTO sale_invoices (invoice_id, branch_id, invoice_date, total, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		m.InvoiceID,
		m.BranchID,
		m.InvoiceDate,
		m.Total,
		m.Status,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, m.InvoiceID)
		}
		return fmt.Errorf("failed to save sale invoice %s: %w", m.InvoiceID, err)
	}

	lineQuery := `
		INSERT INTO sale_invoice_lines (line_id, invoice_id, description, amount, drug_id)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, line := range invoice.Lines {
		ml := mapping.ToModelSaleInvoiceLine(line)
		batch.Queue(lineQuery, ml.LineID, ml.InvoiceID, ml.Description, ml.Amount, ml.DrugID)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert invoice line %d for invoice %s: %w", i, m.InvoiceID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close invoice line batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSaleInvoiceRepository) findInvoice(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, invoiceID string, lock bool) (*domain.SaleInvoice, error) {
	query := `
		SELECT invoice_id, branch_id, invoice_date, total, status, created_at, last_updated_at
		FROM sale_invoices
		WHERE invoice_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	query += `;`

	var m models.SaleInvoice
	err := q.QueryRow(ctx, query, invoiceID).Scan(
		&m.InvoiceID,
		&m.BranchID,
		&m.InvoiceDate,
		&m.Total,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale invoice %s: %w", invoiceID, err)
	}

	lineQuery := `
		SELECT line_id, invoice_id, description, amount, drug_id
		FROM sale_invoice_lines
		WHERE invoice_id = $1
		ORDER BY line_id;
	`
	rows, err := q.Query(ctx, lineQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	invoice := mapping.ToDomainSaleInvoice(m)
	for rows.Next() {
		var ml models.SaleInvoiceLine
		if err := rows.Scan(&ml.LineID, &ml.InvoiceID, &ml.Description, &ml.Amount, &ml.DrugID); err != nil {
			return nil, fmt.Errorf("failed to scan invoice line row: %w", err)
		}
		invoice.Lines = append(invoice.Lines, mapping.ToDomainSaleInvoiceLine(ml))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice line rows: %w", rows.Err())
	}
	return &invoice, nil
}

// FindInvoiceByID retrieves an invoice with its lines.
func (r *PgxSaleInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.SaleInvoice, error) {
	return r.findInvoice(ctx, r.Pool, invoiceID, false)
}

// FindInvoiceByIDForUpdate retrieves an invoice with its lines and locks the
// invoice row.
func (r *PgxSaleInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.SaleInvoice, error) {
	return r.findInvoice(ctx, tx, invoiceID, true)
}

// MarkInvoicePaidInTx flips an unpaid invoice to PAID.
func (r *PgxSaleInvoiceRepository) MarkInvoicePaidInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedAt time.Time) error {
	query := `
		UPDATE sale_invoices
		SET status = 'PAID', last_updated_at = $2
		WHERE invoice_id = $1 AND status = 'UNPAID';
	`
	cmdTag, err := tx.Exec(ctx, query, invoiceID, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to mark sale invoice %s paid: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale invoice %s is not unpaid", apperrors.ErrConflict, invoiceID)
	}
	return nil
}
