package domain

import "github.com/shopspring/decimal"

// SalaryComponentType distinguishes earnings from deductions.
type SalaryComponentType string

const (
	ComponentEarning   SalaryComponentType = "EARNING"
	ComponentDeduction SalaryComponentType = "DEDUCTION"
)

// PayrollStatus is the settlement state of a payroll run.
type PayrollStatus string

const (
	PayrollUnpaid PayrollStatus = "UNPAID"
	PayrollPaid   PayrollStatus = "PAID"
)

// Employee is a payroll subject. Employee master data is owned by the HR
// module; the ledger core only reads it.
type Employee struct {
	EmployeeID string `json:"employeeID"`
	BranchID   string `json:"branchID"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// SalaryComponent is one recurring earning or deduction on an employee's
// salary structure.
type SalaryComponent struct {
	ComponentID string              `json:"componentID"`
	EmployeeID  string              `json:"employeeID"`
	Name        string              `json:"name"`
	Type        SalaryComponentType `json:"type"`
	Amount      decimal.Decimal     `json:"amount"`
	AuditFields
}

// PayrollRun is one processed payroll period. At most one run may exist per
// (year, month); the uniqueness is enforced by the storage layer.
type PayrollRun struct {
	RunID           string          `json:"runID"`
	BranchID        string          `json:"branchID"`
	Period          Period          `json:"period"`
	Status          PayrollStatus   `json:"status"`
	TotalEarnings   decimal.Decimal `json:"totalEarnings"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalNetPay     decimal.Decimal `json:"totalNetPay"`
	AuditFields

	Items []PayrollItem `json:"items,omitempty"`
}

// PayrollItem is the computed pay for one employee within a run.
type PayrollItem struct {
	ItemID     string          `json:"itemID"`
	RunID      string          `json:"runID"`
	EmployeeID string          `json:"employeeID"`
	Earnings   decimal.Decimal `json:"earnings"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"netPay"`
}
