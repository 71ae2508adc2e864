package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

var (
	ErrDuplicateCode        = errors.New("account code already exists")
	ErrDuplicateRoleMapping = errors.New("payment role is already mapped to another account")
	ErrAccountInUse         = errors.New("account is referenced by journal entries")
	ErrUnmappedRole         = errors.New("payment role is not mapped to any active account")
)

// accountService manages the chart of accounts and the payment-role registry.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after checking the uniqueness of its
// code and, when set, its payment role.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	role := req.PaymentRole
	if role == "" {
		role = domain.RoleNone
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: code %s", ErrDuplicateCode, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	if role != domain.RoleNone {
		if existing, err := s.accountRepo.FindAccountByRole(ctx, role); err == nil && existing != nil {
			return nil, fmt.Errorf("%w: role %s held by account %s", ErrDuplicateRoleMapping, role, existing.AccountID)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check payment role: %w", err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		Category:    req.Category,
		PaymentRole: role,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		// The unique indexes close the race left open by the pre-checks.
		if errors.Is(err, apperrors.ErrDuplicateKeyRole) {
			return nil, fmt.Errorf("%w: role %s", ErrDuplicateRoleMapping, role)
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: code %s", ErrDuplicateCode, req.Code)
		}
		s.LogError(ctx, err, "failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount updates account details. Recategorizing an account that is
// already referenced by journal lines is rejected because it would rewrite
// the meaning of history.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != account.Code {
		if existing, err := s.accountRepo.FindAccountByCode(ctx, *req.Code); err == nil && existing != nil {
			return nil, fmt.Errorf("%w: code %s", ErrDuplicateCode, *req.Code)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check account code: %w", err)
		}
		account.Code = *req.Code
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Category != nil && *req.Category != account.Category {
		used, err := s.accountRepo.HasTransactions(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check account usage: %w", err)
		}
		if used {
			return nil, fmt.Errorf("%w: cannot change category of account %s", ErrAccountInUse, accountID)
		}
		account.Category = *req.Category
	}
	if req.PaymentRole != nil && *req.PaymentRole != account.PaymentRole {
		if *req.PaymentRole != domain.RoleNone {
			if existing, err := s.accountRepo.FindAccountByRole(ctx, *req.PaymentRole); err == nil && existing != nil && existing.AccountID != accountID {
				return nil, fmt.Errorf("%w: role %s held by account %s", ErrDuplicateRoleMapping, *req.PaymentRole, existing.AccountID)
			} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to check payment role: %w", err)
			}
		}
		account.PaymentRole = *req.PaymentRole
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	account.LastUpdatedAt = time.Now().UTC()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKeyRole) {
			return nil, fmt.Errorf("%w: role %s", ErrDuplicateRoleMapping, account.PaymentRole)
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: code %s", ErrDuplicateCode, account.Code)
		}
		s.LogError(ctx, err, "failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeleteAccount removes an account that has never been posted to. An account
// referenced by journal lines cannot be deleted; journal history is immutable,
// so such accounts are deactivated through UpdateAccount instead.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	used, err := s.accountRepo.HasTransactions(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if used {
		return fmt.Errorf("%w: account %s", ErrAccountInUse, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		// A posting may have landed between the check and the delete; the
		// foreign key surfaces it as a conflict.
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: account %s", ErrAccountInUse, accountID)
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.LogInfo(ctx, "account deleted", slog.String("account_id", accountID))
	return nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByCode retrieves an account by its chart code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

// ListAccounts retrieves a page of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return &dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)}, nil
}

// ResolveRole returns the active account currently holding a payment role.
// Translators fail fast on an unmapped role rather than posting a partial
// journal.
func (s *accountService) ResolveRole(ctx context.Context, role domain.PaymentRole) (*domain.Account, error) {
	if role == domain.RoleNone || role == "" {
		return nil, fmt.Errorf("%w: role must not be NONE", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByRole(ctx, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnmappedRole, role)
		}
		return nil, fmt.Errorf("failed to resolve payment role %s: %w", role, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s is mapped to inactive account %s", ErrUnmappedRole, role, account.AccountID)
	}
	return account, nil
}
