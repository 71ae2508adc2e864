package services

import (
	"context"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its unique chart code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account that has no journal activity. It fails
	// when journal lines reference the account; deactivation goes through
	// UpdateAccount.
	DeleteAccount(ctx context.Context, accountID string) error
}

// RoleResolverSvc maps payment roles to their designated ledger accounts.
// Translators depend on this rather than on hardcoded account codes.
type RoleResolverSvc interface {
	// ResolveRole returns the active account bound to the given payment role.
	ResolveRole(ctx context.Context, role domain.PaymentRole) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	RoleResolverSvc
}
