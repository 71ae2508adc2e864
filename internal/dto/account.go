package dto

import (
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code        string                 `json:"code" binding:"required"`
	Name        string                 `json:"name" binding:"required"`
	Category    domain.AccountCategory `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	PaymentRole domain.PaymentRole     `json:"paymentRole" binding:"omitempty,oneof=NONE CASH_RECEIPT ACCOUNTS_PAYABLE FIXED_ASSET ACCUMULATED_DEPRECIATION DEPRECIATION_EXPENSE INVENTORY_ASSET SERVICE_REVENUE DRUG_REVENUE SALARY_EXPENSE SALARY_PAYABLE ASSET_DISPOSAL_LOSS"`
	Description string                 `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Code        *string                 `json:"code"`
	Name        *string                 `json:"name"`
	Category    *domain.AccountCategory `json:"category" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	PaymentRole *domain.PaymentRole     `json:"paymentRole" binding:"omitempty,oneof=NONE CASH_RECEIPT ACCOUNTS_PAYABLE FIXED_ASSET ACCUMULATED_DEPRECIATION DEPRECIATION_EXPENSE INVENTORY_ASSET SERVICE_REVENUE DRUG_REVENUE SALARY_EXPENSE SALARY_PAYABLE ASSET_DISPOSAL_LOSS"`
	Description *string                 `json:"description"`
	IsActive    *bool                   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string                 `json:"accountID"`
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	Category      domain.AccountCategory `json:"category"`
	PaymentRole   domain.PaymentRole     `json:"paymentRole"`
	Description   string                 `json:"description"`
	IsActive      bool                   `json:"isActive"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		Category:      acc.Category,
		PaymentRole:   acc.PaymentRole,
		Description:   acc.Description,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to responses.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
