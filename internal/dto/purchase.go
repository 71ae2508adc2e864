package dto

import (
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceivePurchaseRequest is the purchase receipt event payload.
type ReceivePurchaseRequest struct {
	BranchID      string               `json:"branchID" binding:"required"`
	SupplierName  string               `json:"supplierName" binding:"required"`
	InvoiceDate   time.Time            `json:"invoiceDate" binding:"required"`
	Total         decimal.Decimal      `json:"total" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH CREDIT"`
}

// SettlePayableRequest is the accounts-payable settlement event payload.
type SettlePayableRequest struct {
	PaymentDate time.Time `json:"paymentDate" binding:"required"`
}

// PurchaseInvoiceResponse defines the data returned for a purchase invoice.
type PurchaseInvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	BranchID      string               `json:"branchID"`
	SupplierName  string               `json:"supplierName"`
	InvoiceDate   time.Time            `json:"invoiceDate"`
	Total         decimal.Decimal      `json:"total"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Status        domain.InvoiceStatus `json:"status"`
}

// ToPurchaseInvoiceResponse converts a domain.PurchaseInvoice to its response.
func ToPurchaseInvoiceResponse(inv *domain.PurchaseInvoice) PurchaseInvoiceResponse {
	return PurchaseInvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		BranchID:      inv.BranchID,
		SupplierName:  inv.SupplierName,
		InvoiceDate:   inv.InvoiceDate,
		Total:         inv.Total,
		PaymentMethod: inv.PaymentMethod,
		Status:        inv.Status,
	}
}
