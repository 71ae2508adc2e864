package repositories

import (
	"context"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its human-assigned code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountByRole retrieves the unique account holding a payment role.
	// Returns apperrors.ErrNotFound when the role is unmapped.
	FindAccountByRole(ctx context.Context, role domain.PaymentRole) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. The storage layer rejects the delete
	// when journal lines still reference the account.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountUsageChecker reports whether journal history references an account.
type AccountUsageChecker interface {
	// HasTransactions reports whether any journal line references the account.
	HasTransactions(ctx context.Context, accountID string) (bool, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountUsageChecker
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
