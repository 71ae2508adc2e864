package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/core/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
	"github.com/medifin/clinic_ledger_app/internal/middleware"
)

// saleHandler handles HTTP requests for clinic invoices.
type saleHandler struct {
	salesService portssvc.SalesSvcFacade
}

// newSaleHandler creates a new saleHandler.
func newSaleHandler(ss portssvc.SalesSvcFacade) *saleHandler {
	return &saleHandler{
		salesService: ss,
	}
}

// registerSaleRoutes registers routes related to sale invoices.
func registerSaleRoutes(rg *gin.RouterGroup, salesService portssvc.SalesSvcFacade) {
	h := newSaleHandler(salesService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createInvoice)
		sales.GET("/:id", h.getInvoice)
		sales.POST("/:id/settle", h.settleInvoice)
	}
}

// createInvoice godoc
// @Summary Create a clinic invoice
// @Description Creates an unpaid invoice; no ledger entry is posted until settlement
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateSaleInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.SaleInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /sales [post]
func (h *saleHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create invoice", slog.String("branch_id", req.BranchID), slog.Int("line_count", len(req.Lines)))

	invoice, err := h.salesService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		}
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToSaleInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Tags sales
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.SaleInvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /sales/{id} [get]
func (h *saleHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	invoice, err := h.salesService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to get invoice from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleInvoiceResponse(invoice))
}

// settleInvoice godoc
// @Summary Settle an invoice
// @Description Marks the invoice paid and posts the sale journal, splitting
// @Description revenue between service and drug lines
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   settlement body dto.SettleSaleInvoiceRequest true "Settlement details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Amount mismatch or invalid input"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice already paid"
// @Router /sales/{id}/settle [post]
func (h *saleHandler) settleInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	var req dto.SettleSaleInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("invoice_id", invoiceID))
	logger.Info("Received request to settle invoice", slog.String("amount_paid", req.AmountPaid.String()))

	journal, err := h.salesService.SettleInvoice(c.Request.Context(), invoiceID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for settlement")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, services.ErrAmountMismatch) || errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrUnmappedRole) {
			logger.Warn("Validation error settling invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Invoice not in a settleable state", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to settle invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle invoice"})
		}
		return
	}

	logger.Info("Invoice settled successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}
