package services

import (
	"context"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

// SalesReaderSvc defines read operations for clinic invoices
type SalesReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its lines.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.SaleInvoice, error)
}

// SalesWriterSvc defines write operations for clinic invoices
type SalesWriterSvc interface {
	// CreateInvoice persists a new unpaid invoice. No journal is posted.
	CreateInvoice(ctx context.Context, req dto.CreateSaleInvoiceRequest) (*domain.SaleInvoice, error)

	// SettleInvoice marks the invoice paid and posts the sale journal,
	// splitting revenue between drug and service lines.
	SettleInvoice(ctx context.Context, invoiceID string, req dto.SettleSaleInvoiceRequest) (*domain.Journal, error)
}

// SalesSvcFacade combines all sales-related service interfaces
type SalesSvcFacade interface {
	SalesReaderSvc
	SalesWriterSvc
}
