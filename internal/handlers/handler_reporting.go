package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
	"github.com/medifin/clinic_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/general-ledger", h.getGeneralLedger)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/cash-flow", h.getCashFlow)
	}
}

// defaultRange fills an unset report range with the current month to date.
func defaultRange(params *dto.ReportRangeParams) {
	now := time.Now().UTC()
	if params.EndDate.IsZero() {
		params.EndDate = now
	}
	if params.StartDate.IsZero() {
		params.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance as of a specific date
// @Tags reports
// @Produce json
// @Param branchID query string false "Branch filter" default(ALL)
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {array} domain.TrialBalanceRow
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportAsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query params for trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters. Use YYYY-MM-DD dates"})
		return
	}
	if params.AsOf.IsZero() {
		params.AsOf = time.Now().UTC()
	}

	logger = logger.With(slog.String("branch_id", params.BranchID), slog.Time("as_of", params.AsOf))
	logger.Info("Received request to generate trial balance report")

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), params.BranchID, params.AsOf)
	if err != nil {
		logger.Error("Failed to generate trial balance report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance report"})
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, gin.H{"asOf": params.AsOf.Format("2006-01-02"), "rows": rows})
}

// getGeneralLedger godoc
// @Summary Generate general ledger report
// @Description Reconstructs one account's activity with a running balance
// @Tags reports
// @Produce json
// @Param accountID query string true "Account ID"
// @Param branchID query string false "Branch filter" default(ALL)
// @Param startDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param endDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.GeneralLedgerReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.GeneralLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query params for general ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	now := time.Now().UTC()
	if params.EndDate.IsZero() {
		params.EndDate = now
	}
	if params.StartDate.IsZero() {
		params.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	logger = logger.With(slog.String("account_id", params.AccountID), slog.String("branch_id", params.BranchID))
	logger.Info("Received request to generate general ledger report")

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), params.AccountID, params.BranchID, params.StartDate, params.EndDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for general ledger")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to generate general ledger report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate general ledger report"})
		}
		return
	}

	logger.Info("General ledger report generated successfully", slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, report)
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Generates a profit and loss report for a specific period
// @Tags reports
// @Produce json
// @Param branchID query string false "Branch filter" default(ALL)
// @Param startDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param endDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.PAndLReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query params for profit and loss", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters. Use YYYY-MM-DD dates"})
		return
	}
	defaultRange(&params)

	logger = logger.With(slog.String("branch_id", params.BranchID))
	logger.Info("Received request to generate profit and loss report")

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), params.BranchID, params.StartDate, params.EndDate)
	if err != nil {
		logger.Error("Failed to generate profit and loss report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate profit and loss report"})
		return
	}

	logger.Info("Profit and loss report generated successfully", slog.String("net_income", report.NetIncome.String()))
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Generates a balance sheet as of a specific date, with
// @Description current-year earnings injected as a synthetic equity line
// @Tags reports
// @Produce json
// @Param branchID query string false "Branch filter" default(ALL)
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportAsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query params for balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters. Use YYYY-MM-DD dates"})
		return
	}
	if params.AsOf.IsZero() {
		params.AsOf = time.Now().UTC()
	}

	logger = logger.With(slog.String("branch_id", params.BranchID), slog.Time("as_of", params.AsOf))
	logger.Info("Received request to generate balance sheet report")

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), params.BranchID, params.AsOf)
	if err != nil {
		logger.Error("Failed to generate balance sheet report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate balance sheet report"})
		return
	}

	logger.Info("Balance sheet report generated successfully",
		slog.String("total_assets", report.TotalAssets.String()))
	c.JSON(http.StatusOK, report)
}

// getCashFlow godoc
// @Summary Generate cash flow report
// @Description Generates an indirect-method cash flow statement for a period
// @Tags reports
// @Produce json
// @Param branchID query string false "Branch filter" default(ALL)
// @Param startDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param endDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.CashFlowReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query params for cash flow", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters. Use YYYY-MM-DD dates"})
		return
	}
	defaultRange(&params)

	logger = logger.With(slog.String("branch_id", params.BranchID))
	logger.Info("Received request to generate cash flow report")

	report, err := h.reportingService.CashFlow(c.Request.Context(), params.BranchID, params.StartDate, params.EndDate)
	if err != nil {
		logger.Error("Failed to generate cash flow report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate cash flow report"})
		return
	}

	logger.Info("Cash flow report generated successfully",
		slog.String("net_cash_change", report.NetCashChange.String()))
	c.JSON(http.StatusOK, report)
}
