package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/core/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
	"github.com/medifin/clinic_ledger_app/internal/middleware"
)

// payrollHandler handles HTTP requests for payroll runs.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(ps portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{
		payrollService: ps,
	}
}

// registerPayrollRoutes registers routes related to payroll.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	payroll := rg.Group("/payroll")
	{
		payroll.POST("/runs", h.runPayroll)
		payroll.GET("/runs/:year/:month", h.getRun)
		payroll.POST("/settlements", h.settlePayroll)
	}
}

// runPayroll godoc
// @Summary Run payroll for a month
// @Description Computes pay for all active employees and posts the accrual journal
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   run body dto.RunPayrollRequest true "Payroll period"
// @Success 201 {object} dto.PayrollRunResponse
// @Failure 400 {object} map[string]string "Invalid input or no active employees"
// @Failure 409 {object} map[string]string "Payroll already processed for this period"
// @Router /payroll/runs [post]
func (h *payrollHandler) runPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RunPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RunPayroll", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.Int("year", req.Year), slog.Int("month", req.Month))
	logger.Info("Received request to run payroll")

	run, journal, err := h.payrollService.RunPayroll(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrPeriodAlreadyProcessed) {
			logger.Warn("Payroll period already processed")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, services.ErrNoActiveEmployees) || errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrUnmappedRole) {
			logger.Warn("Validation error running payroll", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to run payroll in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run payroll"})
		}
		return
	}

	logger.Info("Payroll run completed",
		slog.String("run_id", run.RunID),
		slog.String("journal_id", journal.JournalID),
		slog.String("total_net_pay", run.TotalNetPay.String()))
	c.JSON(http.StatusCreated, dto.ToPayrollRunResponse(run))
}

// getRun godoc
// @Summary Get the payroll run for a month
// @Tags payroll
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.PayrollRunResponse
// @Failure 404 {object} map[string]string "No run for this period"
// @Router /payroll/runs/{year}/{month} [get]
func (h *payrollHandler) getRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	run, err := h.payrollService.GetRunByPeriod(c.Request.Context(), domain.Period{Year: year, Month: month})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll run not found", slog.Int("year", year), slog.Int("month", month))
			c.JSON(http.StatusNotFound, gin.H{"error": "No payroll run for this period"})
		} else {
			logger.Error("Failed to get payroll run from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payroll run"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}

// settlePayroll godoc
// @Summary Settle a payroll run
// @Description Pays out an unpaid run and posts the settlement journal
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   settlement body dto.SettlePayrollRequest true "Settlement details"
// @Success 201 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "No run for this period"
// @Failure 409 {object} map[string]string "Run already paid"
// @Router /payroll/settlements [post]
func (h *payrollHandler) settlePayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SettlePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettlePayroll", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.Int("year", req.Year), slog.Int("month", req.Month))
	logger.Info("Received request to settle payroll")

	journal, err := h.payrollService.SettlePayroll(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll run not found for settlement")
			c.JSON(http.StatusNotFound, gin.H{"error": "No payroll run for this period"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrUnmappedRole) {
			logger.Warn("Validation error settling payroll", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Payroll run not in a settleable state", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to settle payroll in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle payroll"})
		}
		return
	}

	logger.Info("Payroll settled successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}
