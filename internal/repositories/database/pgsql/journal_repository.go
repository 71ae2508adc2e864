package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	"github.com/medifin/clinic_ledger_app/internal/models"
	"github.com/medifin/clinic_ledger_app/internal/utils/mapping"
	"github.com/medifin/clinic_ledger_app/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveJournalInTx persists a journal and its lines inside the caller's
// transaction. The lines go through a single batch round trip.
func (r *PgxJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, transactions []domain.Transaction) error {
	m := mapping.ToModelJournal(journal)

	journalQuery := `
		INSERT INTO journals (journal_id, branch_id, journal_date, description, source, amount, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, journalQuery,
		m.JournalID,
		m.BranchID,
		m.JournalDate,
		m.Description,
		m.Source,
		m.Amount,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", m.JournalID, err)
	}

	txnQuery := `
		INSERT INTO transactions (transaction_id, journal_id, account_id, amount, transaction_type, notes, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, txn := range transactions {
		mt := mapping.ToModelTransaction(txn)
		batch.Queue(txnQuery,
			mt.TransactionID,
			mt.JournalID,
			mt.AccountID,
			mt.Amount,
			mt.TransactionType,
			mt.Notes,
			mt.CreatedAt,
			mt.LastUpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert transaction %d for journal %s: %w", i, m.JournalID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close transaction insert batch: %w", err)
	}
	return batchErr
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `
		SELECT journal_id, branch_id, journal_date, description, source, amount, created_at, last_updated_at
		FROM journals
		WHERE journal_id = $1;
	`
	var m models.Journal
	err := r.Pool.QueryRow(ctx, query, journalID).Scan(
		&m.JournalID,
		&m.BranchID,
		&m.JournalDate,
		&m.Description,
		&m.Source,
		&m.Amount,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	d := mapping.ToDomainJournal(m)
	return &d, nil
}

// ListJournals retrieves a page of journals newest first using keyset
// pagination on (journal_date, created_at). The branch filter accepts "ALL".
func (r *PgxJournalRepository) ListJournals(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT journal_id, branch_id, journal_date, description, source, amount, created_at, last_updated_at
		FROM journals
		WHERE ($1 = 'ALL' OR branch_id = $1)
	`
	args := []any{branchID}
	if nextToken != nil && *nextToken != "" {
		journalDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (journal_date, created_at) < ($2, $3)`
		args = append(args, journalDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY journal_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		var m models.Journal
		err := rows.Scan(
			&m.JournalID,
			&m.BranchID,
			&m.JournalDate,
			&m.Description,
			&m.Source,
			&m.Amount,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating journal rows: %w", rows.Err())
	}

	var token *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[limit-1]
		encoded := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		token = &encoded
	}
	return journals, token, nil
}

// FindTransactionsByJournalID retrieves all lines of one journal.
func (r *PgxJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.journal_id, t.account_id, t.amount, t.transaction_type, t.notes,
		       t.created_at, t.last_updated_at, j.journal_date, j.description, j.branch_id
		FROM transactions t
		JOIN journals j ON j.journal_id = t.journal_id
		WHERE t.journal_id = $1
		ORDER BY t.created_at, t.transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// ListTransactionsByAccountID retrieves a page of one account's lines newest
// first, with the journal fields joined for display.
func (r *PgxJournalRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, branchID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT t.transaction_id, t.journal_id, t.account_id, t.amount, t.transaction_type, t.notes,
		       t.created_at, t.last_updated_at, j.journal_date, j.description, j.branch_id
		FROM transactions t
		JOIN journals j ON j.journal_id = t.journal_id
		WHERE t.account_id = $1 AND ($2 = 'ALL' OR j.branch_id = $2)
	`
	args := []any{accountID, branchID}
	if nextToken != nil && *nextToken != "" {
		journalDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (j.journal_date, t.created_at) < ($3, $4)`
		args = append(args, journalDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY j.journal_date DESC, t.created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	transactions, err := scanTransactionRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[limit-1]
		encoded := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		token = &encoded
	}
	return transactions, token, nil
}

func scanTransactionRows(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.JournalID,
			&m.AccountID,
			&m.Amount,
			&m.TransactionType,
			&m.Notes,
			&m.CreatedAt,
			&m.LastUpdatedAt,
			&m.JournalDate,
			&m.JournalDescription,
			&m.BranchID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return transactions, nil
}
