package mapping

import (
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/models"
)

// ToModelSaleInvoice converts a domain SaleInvoice to a model SaleInvoice.
func ToModelSaleInvoice(d domain.SaleInvoice) models.SaleInvoice {
	return models.SaleInvoice{
		InvoiceID:   d.InvoiceID,
		BranchID:    d.BranchID,
		InvoiceDate: d.InvoiceDate,
		Total:       d.Total,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSaleInvoice converts a model SaleInvoice to a domain SaleInvoice.
func ToDomainSaleInvoice(m models.SaleInvoice) domain.SaleInvoice {
	return domain.SaleInvoice{
		InvoiceID:   m.InvoiceID,
		BranchID:    m.BranchID,
		InvoiceDate: m.InvoiceDate,
		Total:       m.Total,
		Status:      domain.InvoiceStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSaleInvoiceLine converts a domain SaleInvoiceLine to its model.
func ToModelSaleInvoiceLine(d domain.SaleInvoiceLine) models.SaleInvoiceLine {
	return models.SaleInvoiceLine{
		LineID:      d.LineID,
		InvoiceID:   d.InvoiceID,
		Description: d.Description,
		Amount:      d.Amount,
		DrugID:      d.DrugID,
	}
}

// ToDomainSaleInvoiceLine converts a model SaleInvoiceLine to its domain type.
func ToDomainSaleInvoiceLine(m models.SaleInvoiceLine) domain.SaleInvoiceLine {
	return domain.SaleInvoiceLine{
		LineID:      m.LineID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Amount:      m.Amount,
		DrugID:      m.DrugID,
	}
}

// ToModelPurchaseInvoice converts a domain PurchaseInvoice to its model.
func ToModelPurchaseInvoice(d domain.PurchaseInvoice) models.PurchaseInvoice {
	return models.PurchaseInvoice{
		InvoiceID:     d.InvoiceID,
		BranchID:      d.BranchID,
		SupplierName:  d.SupplierName,
		InvoiceDate:   d.InvoiceDate,
		Total:         d.Total,
		PaymentMethod: string(d.PaymentMethod),
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchaseInvoice converts a model PurchaseInvoice to its domain type.
func ToDomainPurchaseInvoice(m models.PurchaseInvoice) domain.PurchaseInvoice {
	return domain.PurchaseInvoice{
		InvoiceID:     m.InvoiceID,
		BranchID:      m.BranchID,
		SupplierName:  m.SupplierName,
		InvoiceDate:   m.InvoiceDate,
		Total:         m.Total,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Status:        domain.InvoiceStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
