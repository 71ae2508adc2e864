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

// journalHandler handles HTTP requests for journal entries and their lines.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:id", h.getJournal)
	}

	// Account-centric view of the same data
	rg.GET("/accounts/:id/transactions", h.listAccountTransactions)
}

// postJournal godoc
// @Summary Post a manual journal entry
// @Description Validates and persists a balanced double-entry journal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.PostJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Unbalanced or otherwise invalid journal"
// @Router /journals [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to post journal", slog.String("branch_id", req.BranchID), slog.Int("line_count", len(req.Transactions)))

	journal, err := h.journalService.PostJournal(c.Request.Context(), req)
	if err != nil {
		var unbalanced *services.UnbalancedJournalError
		if errors.As(err, &unbalanced) {
			logger.Warn("Unbalanced journal rejected",
				slog.String("debit_total", unbalanced.DebitTotal.String()),
				slog.String("credit_total", unbalanced.CreditTotal.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": unbalanced.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrAccountNotFound) || errors.Is(err, services.ErrAccountInactive) {
			logger.Warn("Validation error posting journal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to post journal in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal"})
		}
		return
	}

	logger.Info("Journal posted successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal entry by ID
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal not found", slog.String("journal_id", journalID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		} else {
			logger.Error("Failed to get journal from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Description Retrieves journals newest-first with token-based pagination
// @Tags journals
// @Produce  json
// @Param   branchID query string false "Branch filter" default(ALL)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token from a previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list journals from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journals"})
		}
		return
	}

	logger.Info("Journals listed successfully", slog.Int("count", len(resp.Journals)))
	c.JSON(http.StatusOK, resp)
}

// listAccountTransactions godoc
// @Summary List journal lines for one account
// @Tags journals
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   branchID query string false "Branch filter" default(ALL)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/transactions [get]
func (h *journalHandler) listAccountTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAccountTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListTransactionsByAccount(c.Request.Context(), accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for transaction listing", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list account transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
