package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medifin/clinic_ledger_app/internal/apperrors"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/core/services"
	"github.com/medifin/clinic_ledger_app/internal/dto"
	"github.com/medifin/clinic_ledger_app/internal/middleware"
)

// assetHandler handles HTTP requests for fixed assets.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

// newAssetHandler creates a new assetHandler.
func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{
		assetService: as,
	}
}

// registerAssetRoutes registers routes related to fixed assets.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.acquireAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:id", h.getAsset)
		assets.POST("/:id/dispose", h.disposeAsset)
		assets.POST("/depreciation-runs", h.runDepreciation)
	}
}

// acquireAsset godoc
// @Summary Acquire a fixed asset
// @Description Registers the asset and posts the acquisition journal
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   asset body dto.AcquireAssetRequest true "Asset details"
// @Success 201 {object} dto.FixedAssetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /assets [post]
func (h *assetHandler) acquireAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AcquireAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AcquireAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to acquire asset",
		slog.String("branch_id", req.BranchID),
		slog.String("asset_name", req.Name),
		slog.String("price", req.Price.String()))

	asset, journal, err := h.assetService.AcquireAsset(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrUnmappedRole) {
			logger.Warn("Validation error acquiring asset", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to acquire asset in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to acquire asset"})
		}
		return
	}

	logger.Info("Asset acquired successfully",
		slog.String("asset_id", asset.AssetID),
		slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, gin.H{
		"asset":   dto.ToFixedAssetResponse(asset, time.Now()),
		"journal": dto.ToJournalResponse(journal),
	})
}

// getAsset godoc
// @Summary Get a fixed asset by ID
// @Description Returns the asset with depreciation figures derived as of today
// @Tags assets
// @Produce  json
// @Param   id path string true "Asset ID"
// @Success 200 {object} dto.FixedAssetResponse
// @Failure 404 {object} map[string]string "Asset not found"
// @Router /assets/{id} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	asset, err := h.assetService.GetAssetByID(c.Request.Context(), assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Asset not found", slog.String("asset_id", assetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			logger.Error("Failed to get asset from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFixedAssetResponse(asset, time.Now()))
}

// listAssets godoc
// @Summary List fixed assets
// @Tags assets
// @Produce  json
// @Param   branchID query string false "Branch filter" default(ALL)
// @Success 200 {array} dto.FixedAssetResponse
// @Router /assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.DefaultQuery("branchID", domain.BranchAll)

	assets, err := h.assetService.ListAssets(c.Request.Context(), branchID)
	if err != nil {
		logger.Error("Failed to list assets from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": dto.ToFixedAssetResponses(assets, time.Now())})
}

// disposeAsset godoc
// @Summary Dispose of a fixed asset
// @Description Writes off the asset at its current book value and posts the disposal journal
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   id path string true "Asset ID"
// @Param   disposal body dto.DisposeAssetRequest true "Disposal details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 409 {object} map[string]string "Asset already disposed"
// @Router /assets/{id}/dispose [post]
func (h *assetHandler) disposeAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	var req dto.DisposeAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DisposeAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("asset_id", assetID))
	logger.Info("Received request to dispose asset")

	journal, err := h.assetService.DisposeAsset(c.Request.Context(), assetID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Asset not found for disposal")
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrUnmappedRole) {
			logger.Warn("Validation error disposing asset", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Asset not in a disposable state", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to dispose asset in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispose asset"})
		}
		return
	}

	logger.Info("Asset disposed successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// runDepreciation godoc
// @Summary Run monthly depreciation
// @Description Posts one depreciation journal per branch for the given month.
// @Description Assets that already covered the period are skipped, so re-runs are safe.
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   period body dto.RunDepreciationRequest true "Depreciation period"
// @Success 200 {object} dto.DepreciationRunResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Router /assets/depreciation-runs [post]
func (h *assetHandler) runDepreciation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RunDepreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RunDepreciation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.Int("year", req.Year), slog.Int("month", req.Month))
	logger.Info("Received request to run depreciation")

	resp, err := h.assetService.RunDepreciation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrUnmappedRole) {
			logger.Warn("Validation error running depreciation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to run depreciation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run depreciation"})
		}
		return
	}

	logger.Info("Depreciation run completed",
		slog.Int("assets_processed", resp.AssetsProcessed),
		slog.Int("branch_count", len(resp.Branches)))
	c.JSON(http.StatusOK, resp)
}
