package repositories

import (
	"context"

	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals for a branch filter
	// using token-based pagination. BranchAll selects every branch.
	ListJournals(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data. Journals are
// insert-only; there is no update or delete path.
type JournalWriter interface {
	// SaveJournalInTx persists a journal and its transactions inside the
	// given storage transaction, so the caller can bundle the post with the
	// domain mutation that produced it.
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, transactions []domain.Transaction) error
}

// TransactionReader defines read operations for journal line data.
type TransactionReader interface {
	// FindTransactionsByJournalID retrieves all lines of a single journal.
	FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a paginated list of lines for a
	// specific account using token-based pagination.
	ListTransactionsByAccountID(ctx context.Context, accountID string, branchID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	TransactionReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
