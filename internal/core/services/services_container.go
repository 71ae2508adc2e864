package services

import (
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/medifin/clinic_ledger_app/internal/core/ports/services"
	"github.com/medifin/clinic_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first: every translator resolves payment roles through it.
	container.Account = NewAccountService(repos.AccountRepo)

	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)

	// Event translators share the journal writer so each business event and
	// its ledger entry commit in one transaction.
	container.Sales = NewSalesService(repos.SaleRepo, container.Journal, container.Account)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo, container.Journal, container.Account)
	container.Asset = NewAssetService(repos.AssetRepo, container.Journal, container.Account)
	container.Payroll = NewPayrollService(repos.PayrollRepo, container.Journal, container.Account, cfg.PayrollCreditNetPay)

	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.JournalSvcFacade  = (*journalService)(nil)
	_ portssvc.SalesSvcFacade    = (*salesService)(nil)
	_ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)
	_ portssvc.AssetSvcFacade    = (*assetService)(nil)
	_ portssvc.PayrollSvcFacade  = (*payrollService)(nil)
	_ portssvc.ReportingService  = (*reportingService)(nil)
)
