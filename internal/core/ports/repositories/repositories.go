package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryWithTx
	JournalRepo   JournalRepositoryWithTx
	AssetRepo     AssetRepositoryWithTx
	SaleRepo      SaleInvoiceRepositoryWithTx
	PurchaseRepo  PurchaseInvoiceRepositoryWithTx
	PayrollRepo   PayrollRepositoryWithTx
	ReportingRepo ReportingRepository
}
