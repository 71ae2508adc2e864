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

// purchaseHandler handles HTTP requests for supplier invoices.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

// newPurchaseHandler creates a new purchaseHandler.
func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{
		purchaseService: ps,
	}
}

// registerPurchaseRoutes registers routes related to purchase invoices.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.receivePurchase)
		purchases.GET("/:id", h.getInvoice)
		purchases.POST("/:id/settle", h.settlePayable)
	}
}

// receivePurchase godoc
// @Summary Record a supplier invoice
// @Description Records the purchase and posts the receipt journal. Cash
// @Description purchases credit cash directly; credit purchases raise a payable.
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.ReceivePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /purchases [post]
func (h *purchaseHandler) receivePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceivePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReceivePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to record purchase",
		slog.String("branch_id", req.BranchID),
		slog.String("supplier", req.SupplierName),
		slog.String("payment_method", string(req.PaymentMethod)))

	invoice, journal, err := h.purchaseService.ReceivePurchase(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrUnmappedRole) {
			logger.Warn("Validation error recording purchase", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record purchase in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record purchase"})
		}
		return
	}

	logger.Info("Purchase recorded successfully",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, gin.H{
		"invoice": dto.ToPurchaseInvoiceResponse(invoice),
		"journal": dto.ToJournalResponse(journal),
	})
}

// getInvoice godoc
// @Summary Get a purchase invoice by ID
// @Tags purchases
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.PurchaseInvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /purchases/{id} [get]
func (h *purchaseHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	invoice, err := h.purchaseService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Purchase invoice not found", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase invoice not found"})
		} else {
			logger.Error("Failed to get purchase invoice from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseInvoiceResponse(invoice))
}

// settlePayable godoc
// @Summary Settle a credit purchase
// @Description Pays off an unpaid credit purchase and posts the settlement journal
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   settlement body dto.SettlePayableRequest true "Settlement details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invoice was not a credit purchase"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice already paid"
// @Router /purchases/{id}/settle [post]
func (h *purchaseHandler) settlePayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	var req dto.SettlePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettlePayable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("invoice_id", invoiceID))
	logger.Info("Received request to settle payable")

	journal, err := h.purchaseService.SettlePayable(c.Request.Context(), invoiceID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Purchase invoice not found for settlement")
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase invoice not found"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrUnmappedRole) {
			logger.Warn("Validation error settling payable", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Payable not in a settleable state", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to settle payable in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle payable"})
		}
		return
	}

	logger.Info("Payable settled successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}
