package dto

import (
	"time"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleInvoiceLineRequest is one billed item on a new invoice.
type CreateSaleInvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DrugID      *string         `json:"drugID"`
}

// CreateSaleInvoiceRequest creates an unpaid clinic invoice. No journal is
// posted until settlement.
type CreateSaleInvoiceRequest struct {
	BranchID    string                         `json:"branchID" binding:"required"`
	InvoiceDate time.Time                      `json:"invoiceDate" binding:"required"`
	Lines       []CreateSaleInvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SettleSaleInvoiceRequest is the sale settlement event payload. AmountPaid
// must equal the invoice total exactly; partial payments are rejected.
type SettleSaleInvoiceRequest struct {
	AmountPaid  decimal.Decimal `json:"amountPaid" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
}

// SaleInvoiceLineResponse is one line of an invoice response.
type SaleInvoiceLineResponse struct {
	LineID      string          `json:"lineID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DrugID      *string         `json:"drugID,omitempty"`
}

// SaleInvoiceResponse defines the data returned for a clinic invoice.
type SaleInvoiceResponse struct {
	InvoiceID   string                    `json:"invoiceID"`
	BranchID    string                    `json:"branchID"`
	InvoiceDate time.Time                 `json:"invoiceDate"`
	Total       decimal.Decimal           `json:"total"`
	Status      domain.InvoiceStatus      `json:"status"`
	Lines       []SaleInvoiceLineResponse `json:"lines,omitempty"`
}

// ToSaleInvoiceResponse converts a domain.SaleInvoice to its response.
func ToSaleInvoiceResponse(inv *domain.SaleInvoice) SaleInvoiceResponse {
	resp := SaleInvoiceResponse{
		InvoiceID:   inv.InvoiceID,
		BranchID:    inv.BranchID,
		InvoiceDate: inv.InvoiceDate,
		Total:       inv.Total,
		Status:      inv.Status,
	}
	for _, line := range inv.Lines {
		resp.Lines = append(resp.Lines, SaleInvoiceLineResponse{
			LineID:      line.LineID,
			Description: line.Description,
			Amount:      line.Amount,
			DrugID:      line.DrugID,
		})
	}
	return resp
}
