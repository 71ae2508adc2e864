package models

import "github.com/shopspring/decimal"

// Employee is HR master data, read-only for the ledger core.
type Employee struct {
	EmployeeID string `db:"employee_id"`
	BranchID   string `db:"branch_id"`
	Name       string `db:"name"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// SalaryComponent is one recurring earning or deduction for an employee.
type SalaryComponent struct {
	ComponentID string          `db:"component_id"`
	EmployeeID  string          `db:"employee_id"`
	Name        string          `db:"name"`
	Type        string          `db:"component_type"`
	Amount      decimal.Decimal `db:"amount"`
	AuditFields
}

// PayrollRun is one processed payroll period; (year, month) is unique.
type PayrollRun struct {
	RunID           string          `db:"run_id"`
	BranchID        string          `db:"branch_id"`
	Year            int             `db:"year"`
	Month           int             `db:"month"`
	Status          string          `db:"status"`
	TotalEarnings   decimal.Decimal `db:"total_earnings"`
	TotalDeductions decimal.Decimal `db:"total_deductions"`
	TotalNetPay     decimal.Decimal `db:"total_net_pay"`
	AuditFields
}

// PayrollItem is the computed pay for one employee within a run.
type PayrollItem struct {
	ItemID     string          `db:"item_id"`
	RunID      string          `db:"run_id"`
	EmployeeID string          `db:"employee_id"`
	Earnings   decimal.Decimal `db:"earnings"`
	Deductions decimal.Decimal `db:"deductions"`
	NetPay     decimal.Decimal `db:"net_pay"`
}
