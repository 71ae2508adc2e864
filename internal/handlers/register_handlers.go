package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerSaleRoutes(v1, services.Sales)
	registerPurchaseRoutes(v1, services.Purchase)
	registerAssetRoutes(v1, services.Asset)
	registerPayrollRoutes(v1, services.Payroll)
	registerReportingRoutes(v1, services.Reporting)
}
