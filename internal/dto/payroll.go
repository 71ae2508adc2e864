package dto

import (
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RunPayrollRequest is the payroll run event payload. At most one run may
// exist per (year, month).
type RunPayrollRequest struct {
	BranchID string `json:"branchID" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Month    int    `json:"month" binding:"required,min=1,max=12"`
}

// SettlePayrollRequest is the payroll settlement event payload.
type SettlePayrollRequest struct {
	Year        int       `json:"year" binding:"required"`
	Month       int       `json:"month" binding:"required,min=1,max=12"`
	PaymentDate time.Time `json:"paymentDate" binding:"required"`
}

// PayrollItemResponse is the computed pay for one employee.
type PayrollItemResponse struct {
	ItemID     string          `json:"itemID"`
	EmployeeID string          `json:"employeeID"`
	Earnings   decimal.Decimal `json:"earnings"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"netPay"`
}

// PayrollRunResponse defines the data returned for a payroll run.
type PayrollRunResponse struct {
	RunID           string                `json:"runID"`
	BranchID        string                `json:"branchID"`
	Year            int                   `json:"year"`
	Month           int                   `json:"month"`
	Status          domain.PayrollStatus  `json:"status"`
	TotalEarnings   decimal.Decimal       `json:"totalEarnings"`
	TotalDeductions decimal.Decimal       `json:"totalDeductions"`
	TotalNetPay     decimal.Decimal       `json:"totalNetPay"`
	Items           []PayrollItemResponse `json:"items,omitempty"`
}

// ToPayrollRunResponse converts a domain.PayrollRun to its response.
func ToPayrollRunResponse(run *domain.PayrollRun) PayrollRunResponse {
	resp := PayrollRunResponse{
		RunID:           run.RunID,
		BranchID:        run.BranchID,
		Year:            run.Period.Year,
		Month:           run.Period.Month,
		Status:          run.Status,
		TotalEarnings:   run.TotalEarnings,
		TotalDeductions: run.TotalDeductions,
		TotalNetPay:     run.TotalNetPay,
	}
	for _, item := range run.Items {
		resp.Items = append(resp.Items, PayrollItemResponse{
			ItemID:     item.ItemID,
			EmployeeID: item.EmployeeID,
			Earnings:   item.Earnings,
			Deductions: item.Deductions,
			NetPay:     item.NetPay,
		})
	}
	return resp
}
