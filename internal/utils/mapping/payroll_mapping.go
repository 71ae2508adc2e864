package mapping

import (
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/models"
)

// ToDomainEmployee converts a model Employee to its domain type.
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:  m.EmployeeID,
		BranchID:    m.BranchID,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSalaryComponent converts a model SalaryComponent to its domain type.
func ToDomainSalaryComponent(m models.SalaryComponent) domain.SalaryComponent {
	return domain.SalaryComponent{
		ComponentID: m.ComponentID,
		EmployeeID:  m.EmployeeID,
		Name:        m.Name,
		Type:        domain.SalaryComponentType(m.Type),
		Amount:      m.Amount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayrollRun converts a domain PayrollRun to its model.
func ToModelPayrollRun(d domain.PayrollRun) models.PayrollRun {
	return models.PayrollRun{
		RunID:           d.RunID,
		BranchID:        d.BranchID,
		Year:            d.Period.Year,
		Month:           d.Period.Month,
		Status:          string(d.Status),
		TotalEarnings:   d.TotalEarnings,
		TotalDeductions: d.TotalDeductions,
		TotalNetPay:     d.TotalNetPay,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollRun converts a model PayrollRun to its domain type.
func ToDomainPayrollRun(m models.PayrollRun) domain.PayrollRun {
	return domain.PayrollRun{
		RunID:           m.RunID,
		BranchID:        m.BranchID,
		Period:          domain.Period{Year: m.Year, Month: m.Month},
		Status:          domain.PayrollStatus(m.Status),
		TotalEarnings:   m.TotalEarnings,
		TotalDeductions: m.TotalDeductions,
		TotalNetPay:     m.TotalNetPay,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayrollItem converts a domain PayrollItem to its model.
func ToModelPayrollItem(d domain.PayrollItem) models.PayrollItem {
	return models.PayrollItem{
		ItemID:     d.ItemID,
		RunID:      d.RunID,
		EmployeeID: d.EmployeeID,
		Earnings:   d.Earnings,
		Deductions: d.Deductions,
		NetPay:     d.NetPay,
	}
}

// ToDomainPayrollItem converts a model PayrollItem to its domain type.
func ToDomainPayrollItem(m models.PayrollItem) domain.PayrollItem {
	return domain.PayrollItem{
		ItemID:     m.ItemID,
		RunID:      m.RunID,
		EmployeeID: m.EmployeeID,
		Earnings:   m.Earnings,
		Deductions: m.Deductions,
		NetPay:     m.NetPay,
	}
}
