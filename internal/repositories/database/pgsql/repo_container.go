package pgsql

import (
	portsrepo "github.com/medifin/clinic_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		AssetRepo:     newPgxAssetRepository(dbPool),
		SaleRepo:      newPgxSaleInvoiceRepository(dbPool),
		PurchaseRepo:  newPgxPurchaseInvoiceRepository(dbPool),
		PayrollRepo:   newPgxPayrollRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
