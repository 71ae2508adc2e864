package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the payment state of a sale or purchase invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "UNPAID"
	InvoicePaid   InvoiceStatus = "PAID"
)

// SaleInvoiceLine is one billed item on a clinic invoice. A line belongs to
// the drug-revenue bucket iff it references a drug.
type SaleInvoiceLine struct {
	LineID      string          `json:"lineID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DrugID      *string         `json:"drugID,omitempty"` // Nil for service lines
}

// SaleInvoice is a clinic invoice produced by the billing workflows and
// settled through the ledger core.
type SaleInvoice struct {
	InvoiceID   string            `json:"invoiceID"`
	BranchID    string            `json:"branchID"`
	InvoiceDate time.Time         `json:"invoiceDate"`
	Total       decimal.Decimal   `json:"total"`
	Status      InvoiceStatus     `json:"status"`
	Lines       []SaleInvoiceLine `json:"lines,omitempty"`
	AuditFields
}

// PurchaseInvoice is a supplier invoice for inventory received.
type PurchaseInvoice struct {
	InvoiceID     string          `json:"invoiceID"`
	BranchID      string          `json:"branchID"`
	SupplierName  string          `json:"supplierName"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Status        InvoiceStatus   `json:"status"`
	AuditFields
}
