package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	"github.com/medifin/clinic_ledger_app/internal/models"
	"github.com/medifin/clinic_ledger_app/internal/utils/mapping"
)

const accountColumns = `account_id, code, name, category, payment_role, description, is_active, created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row interface{ Scan(dest ...any) error }) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.Category,
		&m.PaymentRole,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveAccount inserts a new account. The unique index on code and the
// partial unique index on payment_role surface as ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Category,
		m.PaymentRole,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if violatedConstraint(err) == "idx_accounts_payment_role" {
				return fmt.Errorf("%w %s", apperrors.ErrDuplicateKeyRole, m.PaymentRole)
			}
			return fmt.Errorf("%w %s", apperrors.ErrDuplicateKeyCode, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves an account by its unique chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByRole retrieves the unique account holding a payment role.
func (r *PgxAccountRepository) FindAccountByRole(ctx context.Context, role domain.PaymentRole) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE payment_role = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, string(role)))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by role %s: %w", role, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. IDs without a
// matching row are simply absent from the result map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves a paginated list of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}
	return accounts, nil
}

// UpdateAccount updates an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET code = $2, name = $3, category = $4, payment_role = $5, description = $6, is_active = $7, last_updated_at = $8
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Category,
		m.PaymentRole,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if violatedConstraint(err) == "idx_accounts_payment_role" {
				return fmt.Errorf("%w %s", apperrors.ErrDuplicateKeyRole, m.PaymentRole)
			}
			return fmt.Errorf("%w %s", apperrors.ErrDuplicateKeyCode, m.Code)
		}
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account. The foreign key from transactions
// surfaces as ErrConflict when journal lines still reference it.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	query := `DELETE FROM accounts WHERE account_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, accountID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: account %s is referenced by journal lines", apperrors.ErrConflict, accountID)
		}
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasTransactions reports whether any journal line references the account.
func (r *PgxAccountRepository) HasTransactions(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE account_id = $1);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check transactions for account %s: %w", accountID, err)
	}
	return exists, nil
}
