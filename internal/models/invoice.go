package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleInvoice is a clinic invoice row.
type SaleInvoice struct {
	InvoiceID   string          `db:"invoice_id"`
	BranchID    string          `db:"branch_id"`
	InvoiceDate time.Time       `db:"invoice_date"`
	Total       decimal.Decimal `db:"total"`
	Status      string          `db:"status"`
	AuditFields
}

// SaleInvoiceLine is one billed item; drug_id is null for service lines.
type SaleInvoiceLine struct {
	LineID      string          `db:"line_id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	DrugID      *string         `db:"drug_id"`
}

// PurchaseInvoice is a supplier invoice row.
type PurchaseInvoice struct {
	InvoiceID     string          `db:"invoice_id"`
	BranchID      string          `db:"branch_id"`
	SupplierName  string          `db:"supplier_name"`
	InvoiceDate   time.Time       `db:"invoice_date"`
	Total         decimal.Decimal `db:"total"`
	PaymentMethod string          `db:"payment_method"`
	Status        string          `db:"status"`
	AuditFields
}
