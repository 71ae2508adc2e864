package domain

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// PaymentRole is a singleton tag identifying the functional purpose of an
// account so translators can resolve e.g. "the cash account" without
// hardcoding an account id. At most one account may hold a non-NONE role.
type PaymentRole string

const (
	RoleNone                    PaymentRole = "NONE"
	RoleCashReceipt             PaymentRole = "CASH_RECEIPT"
	RoleAccountsPayable         PaymentRole = "ACCOUNTS_PAYABLE"
	RoleFixedAsset              PaymentRole = "FIXED_ASSET"
	RoleAccumulatedDepreciation PaymentRole = "ACCUMULATED_DEPRECIATION"
	RoleDepreciationExpense     PaymentRole = "DEPRECIATION_EXPENSE"
	RoleInventoryAsset          PaymentRole = "INVENTORY_ASSET"
	RoleServiceRevenue          PaymentRole = "SERVICE_REVENUE"
	RoleDrugRevenue             PaymentRole = "DRUG_REVENUE"
	RoleSalaryExpense           PaymentRole = "SALARY_EXPENSE"
	RoleSalaryPayable           PaymentRole = "SALARY_PAYABLE"
	RoleAssetDisposalLoss       PaymentRole = "ASSET_DISPOSAL_LOSS"
)

// Account represents a node in the chart of accounts.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	Code        string          `json:"code"`        // Unique, human-assigned, sortable
	Name        string          `json:"name"`        // User-defined name
	Category    AccountCategory `json:"category"`    // ASSET, LIABILITY, etc.
	PaymentRole PaymentRole     `json:"paymentRole"` // Singleton role mapping, NONE by default
	Description string          `json:"description"` // Nullable user description
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// NormalSide returns the transaction type on which increases to this
// account's category are recorded.
func (c AccountCategory) NormalSide() TransactionType {
	switch c {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}
