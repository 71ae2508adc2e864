package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/medifin/clinic_ledger_app/internal/core/domain"
	"github.com/medifin/clinic_ledger_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal with its transactions.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// PostJournal validates and persists a balanced journal entry.
	PostJournal(ctx context.Context, req dto.PostJournalRequest) (*domain.Journal, error)

	// PostJournalInTx validates and persists a journal inside an existing
	// transaction so translators can commit domain state and ledger entry
	// atomically.
	PostJournalInTx(ctx context.Context, tx pgx.Tx, req dto.PostJournalRequest) (*domain.Journal, error)
}

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// ListTransactionsByAccount retrieves transactions for a specific account.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	TransactionReaderSvc
}
